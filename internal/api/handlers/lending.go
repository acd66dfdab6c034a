package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/protim1451/library-lending-api/internal/api/httpx"
	"github.com/protim1451/library-lending-api/internal/lending"
	"github.com/protim1451/library-lending-api/internal/metrics/lendqueue"
	"github.com/protim1451/library-lending-api/internal/models"
	"github.com/protim1451/library-lending-api/internal/validate"
)

// BorrowHandler serves POST /borrow/{id}. The body carries borrower identity
// plus the book display fields the client already has; they end up snapshotted
// on the ledger entry.
func BorrowHandler(co *lending.Coordinator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		bookID := r.PathValue("id")

		var body struct {
			UserID     string `json:"userId"`
			UserEmail  string `json:"userEmail"`
			UserName   string `json:"userName"`
			ReturnDate string `json:"returnDate"`
			BorrowDate string `json:"borrowDate"`
			Name       string `json:"name"`
			Image      string `json:"image"`
			Category   string `json:"category"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			httpx.ErrorJSON(w, http.StatusBadRequest, "invalid JSON")
			return
		}
		email, err := validate.RequireEmail("userEmail", body.UserEmail)
		if err != nil {
			httpx.ErrorJSON(w, http.StatusBadRequest, err.Error())
			return
		}

		res, err := co.Borrow(r.Context(), bookID, lending.BorrowRequest{
			UserID:     body.UserID,
			UserEmail:  email,
			UserName:   body.UserName,
			BorrowDate: body.BorrowDate,
			ReturnDate: body.ReturnDate,
			Name:       body.Name,
			Image:      body.Image,
			Category:   body.Category,
		})
		if err != nil {
			writeLendingError(w, err, "Book not found", "Failed to borrow book")
			return
		}

		lendqueue.Enqueue(bookID, email, lendqueue.ActionBorrow)
		httpx.OK(w, res)
	}
}

// ReturnHandler serves POST /return.
func ReturnHandler(co *lending.Coordinator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		var body struct {
			BookID    string `json:"bookId"`
			UserEmail string `json:"userEmail"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			httpx.ErrorJSON(w, http.StatusBadRequest, "invalid JSON")
			return
		}

		res, err := co.Return(r.Context(), body.BookID, body.UserEmail)
		if err != nil {
			writeLendingError(w, err, "Borrow record not found", "Failed to return book")
			return
		}

		lendqueue.Enqueue(body.BookID, body.UserEmail, lendqueue.ActionReturn)
		httpx.OK(w, res)
	}
}

// BorrowedHandler serves GET /borrowed/{email}.
func BorrowedHandler(co *lending.Coordinator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := r.PathValue("email")
		recs, err := co.Borrowed(r.Context(), email)
		if err != nil {
			writeLendingError(w, err, "not found", "Failed to fetch borrowed books")
			return
		}
		if recs == nil {
			recs = []models.BorrowRecord{}
		}
		httpx.OK(w, recs)
	}
}

// writeLendingError maps the coordinator taxonomy onto the wire: expected
// outcomes are 4xx, broken invariants and unreachable stores are 5xx and have
// already been logged where they were detected.
func writeLendingError(w http.ResponseWriter, err error, notFoundMsg, failMsg string) {
	switch {
	case errors.Is(err, lending.ErrNotFound):
		httpx.ErrorJSON(w, http.StatusNotFound, notFoundMsg)
	case errors.Is(err, lending.ErrUnavailable):
		// ErrConflict wraps ErrUnavailable; same outcome for the caller
		httpx.ErrorJSON(w, http.StatusBadRequest, "Book not available for borrowing")
	default:
		log.Printf("[LENDING] request failed: %v", err)
		httpx.ErrorJSON(w, http.StatusInternalServerError, failMsg)
	}
}
