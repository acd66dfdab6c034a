package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/protim1451/library-lending-api/internal/api/httpx"
	"github.com/protim1451/library-lending-api/internal/models"
	"github.com/protim1451/library-lending-api/internal/validate"
)

func CreateUserHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		var body struct {
			Name     string `json:"name"`
			Email    string `json:"email"`
			PhotoURL string `json:"photoURL"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			httpx.ErrorJSON(w, http.StatusBadRequest, "invalid JSON")
			return
		}

		email, err := validate.RequireEmail("email", body.Email)
		if err != nil {
			httpx.ErrorJSON(w, http.StatusBadRequest, err.Error())
			return
		}

		var u models.User
		u.Name = body.Name
		u.Email = email
		u.PhotoURL = body.PhotoURL
		err = db.QueryRowContext(r.Context(), `
			INSERT INTO users (name, email, photo_url)
			VALUES ($1, $2, $3)
			ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name, photo_url = EXCLUDED.photo_url
			RETURNING id::text, created_at`,
			u.Name, u.Email, u.PhotoURL,
		).Scan(&u.ID, &u.CreatedAt)
		if err != nil {
			httpx.ErrorJSON(w, http.StatusInternalServerError, "Failed to save user")
			return
		}

		httpx.WriteJSON(w, http.StatusCreated, u)
	}
}

func ListUsersHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := db.QueryContext(r.Context(),
			`SELECT id::text, name, email, COALESCE(photo_url,''), created_at FROM users ORDER BY created_at`)
		if err != nil {
			httpx.ErrorJSON(w, http.StatusInternalServerError, "Failed to fetch users")
			return
		}
		defer rows.Close()

		out := []models.User{}
		for rows.Next() {
			var u models.User
			if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PhotoURL, &u.CreatedAt); err != nil {
				httpx.ErrorJSON(w, http.StatusInternalServerError, "Failed to fetch users")
				return
			}
			out = append(out, u)
		}
		if err := rows.Err(); err != nil {
			httpx.ErrorJSON(w, http.StatusInternalServerError, "Failed to fetch users")
			return
		}
		httpx.OK(w, out)
	}
}
