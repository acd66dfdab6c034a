// Package books exposes the plain CRUD surface over the book record store.
// Quantity only ever changes through the lending coordinator once a book
// exists; these handlers are pass-through persistence.
package books

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/protim1451/library-lending-api/internal/api/httpx"
	"github.com/protim1451/library-lending-api/internal/lending"
	"github.com/protim1451/library-lending-api/internal/models"
	storebooks "github.com/protim1451/library-lending-api/internal/store/books"
	"github.com/protim1451/library-lending-api/internal/validate"
)

func Create(st *storebooks.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		var body bookBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			httpx.ErrorJSON(w, http.StatusBadRequest, "invalid JSON")
			return
		}
		name, err := validate.RequireBounded("name", body.Name, 1, 200)
		if err != nil {
			httpx.ErrorJSON(w, http.StatusBadRequest, err.Error())
			return
		}

		b, err := st.Create(r.Context(), models.Book{
			Name:        name,
			Author:      body.Author,
			Image:       body.Image,
			Category:    body.Category,
			Rating:      body.Rating,
			Description: body.Description,
			Quantity:    int(body.Quantity),
		})
		if err != nil {
			httpx.ErrorJSON(w, http.StatusInternalServerError, "Failed to add book")
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, b)
	}
}

func List(st *storebooks.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := st.List(r.Context())
		if err != nil {
			httpx.ErrorJSON(w, http.StatusInternalServerError, "Failed to fetch books")
			return
		}
		if out == nil {
			out = []models.Book{}
		}
		httpx.OK(w, out)
	}
}

func ListByCategory(st *storebooks.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := st.ListByCategory(r.Context(), r.PathValue("category"))
		if err != nil {
			httpx.ErrorJSON(w, http.StatusInternalServerError, "Failed to fetch books by category")
			return
		}
		if out == nil {
			out = []models.Book{}
		}
		httpx.OK(w, out)
	}
}

func Get(st *storebooks.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := st.GetByID(r.Context(), r.PathValue("id"))
		if err != nil {
			if errors.Is(err, lending.ErrNotFound) {
				httpx.ErrorJSON(w, http.StatusNotFound, "Book not found")
				return
			}
			httpx.ErrorJSON(w, http.StatusInternalServerError, "Failed to fetch book details")
			return
		}
		httpx.OK(w, b)
	}
}

func Put(st *storebooks.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		var body bookBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			httpx.ErrorJSON(w, http.StatusBadRequest, "invalid JSON")
			return
		}
		name, err := validate.RequireBounded("name", body.Name, 1, 200)
		if err != nil {
			httpx.ErrorJSON(w, http.StatusBadRequest, err.Error())
			return
		}

		b, err := st.Update(r.Context(), r.PathValue("id"), models.Book{
			Name:        name,
			Author:      body.Author,
			Image:       body.Image,
			Category:    body.Category,
			Rating:      body.Rating,
			Description: body.Description,
			Quantity:    int(body.Quantity),
		})
		if err != nil {
			if errors.Is(err, lending.ErrNotFound) {
				httpx.ErrorJSON(w, http.StatusNotFound, "Book not found")
				return
			}
			httpx.ErrorJSON(w, http.StatusInternalServerError, "Failed to update book")
			return
		}
		httpx.OK(w, map[string]any{"message": "Book updated successfully", "book": b})
	}
}

func Delete(st *storebooks.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := st.Delete(r.Context(), r.PathValue("id")); err != nil {
			if errors.Is(err, lending.ErrNotFound) {
				httpx.ErrorJSON(w, http.StatusNotFound, "Book not found")
				return
			}
			httpx.ErrorJSON(w, http.StatusInternalServerError, "Failed to delete book")
			return
		}
		httpx.OK(w, map[string]any{"deleted": true})
	}
}
