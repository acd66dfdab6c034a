package lending

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound: the book, or the borrow record on return, does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnavailable: zero copies left; nothing was mutated.
	ErrUnavailable = errors.New("book not available for borrowing")

	// ErrConflict: the guarded decrement matched no row because a concurrent
	// borrow took the last copy between our read and our write. Wraps
	// ErrUnavailable so callers can treat both as one outcome.
	ErrConflict = fmt.Errorf("%w: lost update race", ErrUnavailable)

	// ErrInconsistentState: a compensating write failed after a primary write
	// succeeded. The conservation invariant is broken until repaired; always
	// logged before being returned.
	ErrInconsistentState = errors.New("inconsistent lending state")

	// ErrStoreUnavailable: the persistence layer could not be reached.
	ErrStoreUnavailable = errors.New("store unavailable")
)
