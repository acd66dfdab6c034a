package shared

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/protim1451/library-lending-api/internal/lending"
)

// Classify maps driver errors onto the lending taxonomy so callers never see
// raw SQLSTATE. sql.ErrNoRows stays NotFound; connection-class failures
// (SQLSTATE 08xxx, dial errors, closed pools) become StoreUnavailable; the
// rest pass through wrapped.
func Classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, lending.ErrNotFound)
	}
	if isUnreachable(err) {
		return fmt.Errorf("%s: %w: %v", op, lending.ErrStoreUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isUnreachable(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, "08") {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	if errors.Is(err, sql.ErrConnDone) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	return false
}
