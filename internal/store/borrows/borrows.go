// Package borrows owns the ledger of outstanding loans: one row per borrowed
// copy, inserted on borrow and deleted on return, never updated in between.
package borrows

import (
	"context"
	"database/sql"

	"github.com/protim1451/library-lending-api/internal/models"
	"github.com/protim1451/library-lending-api/internal/store/shared"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store { return &Store{db: db} }

const recCols = `id::text, book_id::text, COALESCE(user_id,''), user_email, COALESCE(user_name,''),
	COALESCE(borrow_date,''), COALESCE(return_date,''), COALESCE(name,''), COALESCE(image,''), COALESCE(category,'')`

func scanRecord(rs interface{ Scan(...any) error }) (models.BorrowRecord, error) {
	var r models.BorrowRecord
	err := rs.Scan(&r.ID, &r.BookID, &r.UserID, &r.UserEmail, &r.UserName,
		&r.BorrowDate, &r.ReturnDate, &r.Name, &r.Image, &r.Category)
	return r, err
}

func (s *Store) Insert(ctx context.Context, rec models.BorrowRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO borrows (id, book_id, user_id, user_email, user_name, borrow_date, return_date, name, image, category)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		rec.ID, rec.BookID, rec.UserID, rec.UserEmail, rec.UserName,
		rec.BorrowDate, rec.ReturnDate, rec.Name, rec.Image, rec.Category)
	if err != nil {
		return shared.Classify("borrows.insert", err)
	}
	return nil
}

// DeleteOne removes exactly one record for (bookID, userEmail), the oldest
// one when the pair has several outstanding loans, and returns it. Deleting
// all matches would hand back more copies than were returned.
func (s *Store) DeleteOne(ctx context.Context, bookID, userEmail string) (models.BorrowRecord, error) {
	if !shared.IsUUID(bookID) {
		return models.BorrowRecord{}, shared.Classify("borrows.delete_one", sql.ErrNoRows)
	}
	row := s.db.QueryRowContext(ctx, `
		DELETE FROM borrows
		WHERE id = (
			SELECT id FROM borrows
			WHERE book_id = $1 AND user_email = $2
			ORDER BY created_at, id
			LIMIT 1
		)
		RETURNING `+recCols, bookID, userEmail)
	rec, err := scanRecord(row)
	if err != nil {
		return models.BorrowRecord{}, shared.Classify("borrows.delete_one", err)
	}
	return rec, nil
}

func (s *Store) ListByEmail(ctx context.Context, userEmail string) ([]models.BorrowRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+recCols+` FROM borrows WHERE user_email = $1 ORDER BY created_at DESC, id`, userEmail)
	if err != nil {
		return nil, shared.Classify("borrows.list", err)
	}
	defer rows.Close()

	var out []models.BorrowRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, shared.Classify("borrows.list", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, shared.Classify("borrows.list", err)
	}
	return out, nil
}
