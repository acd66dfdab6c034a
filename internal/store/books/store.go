// Package books owns the book records table, including the quantity counter
// the lending coordinator mutates through guarded conditional updates.
package books

import (
	"database/sql"

	"github.com/protim1451/library-lending-api/internal/models"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store { return &Store{db: db} }

const bookCols = `id::text, name, COALESCE(author,''), COALESCE(image,''), COALESCE(category,''), COALESCE(rating,''), COALESCE(description,''), quantity, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBook(rs rowScanner) (models.Book, error) {
	var b models.Book
	err := rs.Scan(&b.ID, &b.Name, &b.Author, &b.Image, &b.Category, &b.Rating, &b.Description, &b.Quantity, &b.CreatedAt)
	return b, err
}
