package books

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/protim1451/library-lending-api/internal/models"
	"github.com/protim1451/library-lending-api/internal/store/dbx"
	"github.com/protim1451/library-lending-api/internal/store/shared"
)

// Create inserts a book. Quantity is expected to be already coerced to a
// non-negative int by the facade; a negative value is clamped to 0 here so
// the CHECK constraint can never fire on ingest.
func (s *Store) Create(ctx context.Context, b models.Book) (models.Book, error) {
	b.Name = strings.TrimSpace(b.Name)
	if b.Name == "" {
		return models.Book{}, errors.New("name is required")
	}
	if b.Quantity < 0 {
		b.Quantity = 0
	}

	err := s.db.QueryRowContext(ctx, `
		INSERT INTO books (name, author, image, category, rating, description, quantity)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id::text, created_at`,
		b.Name, b.Author, b.Image, b.Category, b.Rating, b.Description, b.Quantity,
	).Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		return models.Book{}, shared.Classify("books.create", err)
	}
	return b, nil
}

// Update replaces the descriptive fields and quantity of one book.
func (s *Store) Update(ctx context.Context, id string, b models.Book) (models.Book, error) {
	if !shared.IsUUID(id) {
		return models.Book{}, shared.Classify("books.update", sql.ErrNoRows)
	}
	if b.Quantity < 0 {
		b.Quantity = 0
	}

	row := s.db.QueryRowContext(ctx, `
		UPDATE books
		SET name=$1, author=$2, image=$3, category=$4, rating=$5, description=$6, quantity=$7
		WHERE id = $8
		RETURNING `+bookCols,
		b.Name, b.Author, b.Image, b.Category, b.Rating, b.Description, b.Quantity, id)
	out, err := scanBook(row)
	if err != nil {
		return models.Book{}, shared.Classify("books.update", err)
	}
	return out, nil
}

// Delete removes a book together with any ledger rows still pointing at it,
// so the FK can't strand a half-deleted book.
func (s *Store) Delete(ctx context.Context, id string) error {
	if !shared.IsUUID(id) {
		return shared.Classify("books.delete", sql.ErrNoRows)
	}
	err := dbx.WithinTx(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM borrows WHERE book_id = $1`, id); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM books WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return sql.ErrNoRows
		}
		return nil
	})
	return shared.Classify("books.delete", err)
}
