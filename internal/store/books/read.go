package books

import (
	"context"
	"database/sql"

	"github.com/protim1451/library-lending-api/internal/models"
	"github.com/protim1451/library-lending-api/internal/store/shared"
)

func (s *Store) GetByID(ctx context.Context, id string) (models.Book, error) {
	if !shared.IsUUID(id) {
		// a malformed id can never match a row; skip the round trip
		return models.Book{}, shared.Classify("books.get", sql.ErrNoRows)
	}
	row := s.db.QueryRowContext(ctx, `SELECT `+bookCols+` FROM books WHERE id = $1`, id)
	b, err := scanBook(row)
	if err != nil {
		return models.Book{}, shared.Classify("books.get", err)
	}
	return b, nil
}

func (s *Store) List(ctx context.Context) ([]models.Book, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+bookCols+` FROM books ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, shared.Classify("books.list", err)
	}
	defer rows.Close()

	var out []models.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, shared.Classify("books.list", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, shared.Classify("books.list", err)
	}
	return out, nil
}

// ListByCategory matches on the normalized category so URL segments like
// "Science%20Fiction" and "science fiction" hit the same rows.
func (s *Store) ListByCategory(ctx context.Context, category string) ([]models.Book, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+bookCols+` FROM books WHERE lower(category) = $1 ORDER BY created_at DESC, id`,
		shared.NormalizeCategory(category))
	if err != nil {
		return nil, shared.Classify("books.list_category", err)
	}
	defer rows.Close()

	var out []models.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, shared.Classify("books.list_category", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, shared.Classify("books.list_category", err)
	}
	return out, nil
}
