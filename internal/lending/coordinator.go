package lending

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/protim1451/library-lending-api/internal/models"
)

// BookStore is the slice of the book record store the coordinator needs.
// DecrementIfAvailable must be a single atomic read-modify-write: decrement by
// one only if quantity is still > 0 at write time, reporting ErrUnavailable
// when the guard does not hold.
type BookStore interface {
	GetByID(ctx context.Context, id string) (models.Book, error)
	DecrementIfAvailable(ctx context.Context, id string) (remaining int, err error)
	IncrementQuantity(ctx context.Context, id string) (quantity int, err error)
}

// BorrowLedger holds the active borrow records. DeleteOne removes exactly one
// record matching (bookID, userEmail) and returns it, ErrNotFound if none.
type BorrowLedger interface {
	Insert(ctx context.Context, rec models.BorrowRecord) error
	DeleteOne(ctx context.Context, bookID, userEmail string) (models.BorrowRecord, error)
	ListByEmail(ctx context.Context, userEmail string) ([]models.BorrowRecord, error)
}

// BorrowRequest carries borrower identity plus the display fields the client
// sends along; they are snapshotted into the ledger entry verbatim.
type BorrowRequest struct {
	UserID     string
	UserEmail  string
	UserName   string
	BorrowDate string
	ReturnDate string
	Name       string
	Image      string
	Category   string
}

// BorrowResult is the composite of the two writes a borrow performs.
type BorrowResult struct {
	Record    models.BorrowRecord `json:"borrow"`
	Remaining int                 `json:"remaining"`
}

// ReturnResult reports the removed record and the quantity after re-increment.
type ReturnResult struct {
	Returned models.BorrowRecord `json:"returned"`
	Quantity int                 `json:"quantity"`
}

// Coordinator orchestrates borrow and return as compound operations against
// the book store and the borrow ledger. It owns no state; consistency comes
// from the store's guarded conditional updates plus compensation on partial
// failure, not from in-process locking.
type Coordinator struct {
	books  BookStore
	ledger BorrowLedger
}

func New(books BookStore, ledger BorrowLedger) *Coordinator {
	return &Coordinator{books: books, ledger: ledger}
}

// Borrow takes one copy of bookID for the requesting user. On success exactly
// one book row is decremented and exactly one ledger entry exists; on any
// failure path nothing is mutated (a failed ledger insert re-increments the
// book before returning).
func (c *Coordinator) Borrow(ctx context.Context, bookID string, req BorrowRequest) (BorrowResult, error) {
	if bookID == "" || strings.TrimSpace(req.UserEmail) == "" {
		return BorrowResult{}, fmt.Errorf("%w: book id and user email are required", ErrNotFound)
	}

	book, err := c.books.GetByID(ctx, bookID)
	if err != nil {
		return BorrowResult{}, err
	}
	if book.Quantity <= 0 {
		return BorrowResult{}, ErrUnavailable
	}

	remaining, err := c.books.DecrementIfAvailable(ctx, bookID)
	if err != nil {
		if errors.Is(err, ErrUnavailable) {
			// We saw quantity > 0 a moment ago, so some concurrent borrow won
			// the last copy. Same outcome for the caller, distinct in logs.
			log.Printf("[LENDING] guarded decrement lost race book=%s user=%s", bookID, req.UserEmail)
			return BorrowResult{}, ErrConflict
		}
		return BorrowResult{}, err
	}

	rec := models.BorrowRecord{
		ID:         uuid.NewString(),
		BookID:     bookID,
		UserID:     req.UserID,
		UserEmail:  req.UserEmail,
		UserName:   req.UserName,
		BorrowDate: req.BorrowDate,
		ReturnDate: req.ReturnDate,
		Name:       req.Name,
		Image:      req.Image,
		Category:   req.Category,
	}
	if req.Name == "" {
		rec.Name = book.Name
	}
	if req.Image == "" {
		rec.Image = book.Image
	}
	if req.Category == "" {
		rec.Category = book.Category
	}

	if err := c.ledger.Insert(ctx, rec); err != nil {
		// The decrement already landed; undo it so quantity and the ledger
		// cannot drift apart. If the undo also fails the invariant is broken
		// and must be surfaced loudly, not swallowed.
		if _, incErr := c.books.IncrementQuantity(ctx, bookID); incErr != nil {
			log.Printf("[INCONSISTENT] borrow compensation failed book=%s user=%s insert=%v increment=%v",
				bookID, req.UserEmail, err, incErr)
			return BorrowResult{}, fmt.Errorf("%w: ledger insert and compensating increment both failed for book %s", ErrInconsistentState, bookID)
		}
		log.Printf("[LENDING] ledger insert failed, decrement compensated book=%s user=%s err=%v", bookID, req.UserEmail, err)
		return BorrowResult{}, err
	}

	return BorrowResult{Record: rec, Remaining: remaining}, nil
}

// Return removes the oldest borrow record matching (bookID, userEmail) and
// gives the copy back. The ledger deletion is the operation of record; a
// second return for the same loan finds nothing and fails ErrNotFound.
func (c *Coordinator) Return(ctx context.Context, bookID, userEmail string) (ReturnResult, error) {
	if bookID == "" || strings.TrimSpace(userEmail) == "" {
		return ReturnResult{}, fmt.Errorf("%w: book id and user email are required", ErrNotFound)
	}

	rec, err := c.ledger.DeleteOne(ctx, bookID, userEmail)
	if err != nil {
		return ReturnResult{}, err
	}

	qty, err := c.books.IncrementQuantity(ctx, bookID)
	if err != nil {
		// The record is already gone; quantity is now understated by one.
		// Broken invariant, not a bad request.
		log.Printf("[INCONSISTENT] return increment failed after ledger delete book=%s user=%s record=%s err=%v",
			bookID, userEmail, rec.ID, err)
		return ReturnResult{}, fmt.Errorf("%w: quantity increment failed after deleting record %s", ErrInconsistentState, rec.ID)
	}

	return ReturnResult{Returned: rec, Quantity: qty}, nil
}

// Borrowed lists the active loans held by userEmail.
func (c *Coordinator) Borrowed(ctx context.Context, userEmail string) ([]models.BorrowRecord, error) {
	return c.ledger.ListByEmail(ctx, userEmail)
}
