package books

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/protim1451/library-lending-api/internal/lending"
	"github.com/protim1451/library-lending-api/internal/store/shared"
)

// DecrementIfAvailable takes one copy iff at least one is still available at
// write time. The guard lives in the WHERE clause, so concurrent callers race
// on a single atomic read-modify-write instead of read-then-write; "no row
// matched" means the last copy was already gone.
func (s *Store) DecrementIfAvailable(ctx context.Context, id string) (int, error) {
	var remaining int
	err := s.db.QueryRowContext(ctx, `
		UPDATE books SET quantity = quantity - 1
		WHERE id = $1 AND quantity > 0
		RETURNING quantity`, id,
	).Scan(&remaining)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("books.decrement: %w", lending.ErrUnavailable)
	}
	if err != nil {
		return 0, shared.Classify("books.decrement", err)
	}
	return remaining, nil
}

// IncrementQuantity gives one copy back unconditionally.
func (s *Store) IncrementQuantity(ctx context.Context, id string) (int, error) {
	var quantity int
	err := s.db.QueryRowContext(ctx, `
		UPDATE books SET quantity = quantity + 1
		WHERE id = $1
		RETURNING quantity`, id,
	).Scan(&quantity)
	if err != nil {
		return 0, shared.Classify("books.increment", err)
	}
	return quantity, nil
}
