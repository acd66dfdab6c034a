package books_test

import (
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/protim1451/library-lending-api/internal/lending"
	books "github.com/protim1451/library-lending-api/internal/store/books"
)

const bookID = "0b0e7d0e-9f2a-4c83-b1c5-5f7a2d6e4a10"

var decrementRe = regexp.QuoteMeta(`UPDATE books SET quantity = quantity - 1`)
var incrementRe = regexp.QuoteMeta(`UPDATE books SET quantity = quantity + 1`)

func TestDecrementIfAvailable_TakesLastCopy(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	store := books.New(db)

	mock.ExpectQuery(decrementRe).
		WithArgs(bookID).
		WillReturnRows(sqlmock.NewRows([]string{"quantity"}).AddRow(0))

	remaining, err := store.DecrementIfAvailable(t.Context(), bookID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if remaining != 0 {
		t.Fatalf("want remaining=0; got %d", remaining)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestDecrementIfAvailable_GuardFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	store := books.New(db)

	// no row matched the guard: quantity was already 0 at write time
	mock.ExpectQuery(decrementRe).
		WithArgs(bookID).
		WillReturnRows(sqlmock.NewRows([]string{"quantity"}))

	_, err = store.DecrementIfAvailable(t.Context(), bookID)
	if !errors.Is(err, lending.ErrUnavailable) {
		t.Fatalf("want ErrUnavailable; got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestIncrementQuantity(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	store := books.New(db)

	mock.ExpectQuery(incrementRe).
		WithArgs(bookID).
		WillReturnRows(sqlmock.NewRows([]string{"quantity"}).AddRow(3))

	quantity, err := store.IncrementQuantity(t.Context(), bookID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if quantity != 3 {
		t.Fatalf("want quantity=3; got %d", quantity)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestIncrementQuantity_BookMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	store := books.New(db)

	mock.ExpectQuery(incrementRe).
		WithArgs(bookID).
		WillReturnRows(sqlmock.NewRows([]string{"quantity"}))

	_, err = store.IncrementQuantity(t.Context(), bookID)
	if !errors.Is(err, lending.ErrNotFound) {
		t.Fatalf("want ErrNotFound; got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestGetByID_MalformedID(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	store := books.New(db)

	// never hits the database
	_, err = store.GetByID(t.Context(), "not-a-uuid")
	if !errors.Is(err, lending.ErrNotFound) {
		t.Fatalf("want ErrNotFound; got %v", err)
	}
}
