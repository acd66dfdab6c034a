package borrows_test

import (
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/protim1451/library-lending-api/internal/lending"
	"github.com/protim1451/library-lending-api/internal/models"
	"github.com/protim1451/library-lending-api/internal/store/borrows"
)

const (
	bookID   = "0b0e7d0e-9f2a-4c83-b1c5-5f7a2d6e4a10"
	recordID = "7f2c1a9e-3d44-4b6a-9a01-2c8f5e6d7b21"
)

func recordRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "book_id", "user_id", "user_email", "user_name",
		"borrow_date", "return_date", "name", "image", "category",
	})
}

func TestInsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	store := borrows.New(db)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO borrows`)).
		WithArgs(recordID, bookID, "u-1", "a@example.com", "Reader",
			"2024-06-01", "2024-06-15", "The Name of the Wind", "img", "fantasy").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = store.Insert(t.Context(), models.BorrowRecord{
		ID:         recordID,
		BookID:     bookID,
		UserID:     "u-1",
		UserEmail:  "a@example.com",
		UserName:   "Reader",
		BorrowDate: "2024-06-01",
		ReturnDate: "2024-06-15",
		Name:       "The Name of the Wind",
		Image:      "img",
		Category:   "fantasy",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestDeleteOne_RemovesOldestMatch(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	store := borrows.New(db)

	// the subselect picks one id; only that row is deleted and returned
	mock.ExpectQuery(regexp.QuoteMeta(`DELETE FROM borrows`)).
		WithArgs(bookID, "a@example.com").
		WillReturnRows(recordRows().AddRow(
			recordID, bookID, "u-1", "a@example.com", "Reader",
			"2024-06-01", "2024-06-15", "The Name of the Wind", "img", "fantasy",
		))

	rec, err := store.DeleteOne(t.Context(), bookID, "a@example.com")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if rec.ID != recordID || rec.UserEmail != "a@example.com" {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestDeleteOne_NoMatch(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	store := borrows.New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`DELETE FROM borrows`)).
		WithArgs(bookID, "nobody@example.com").
		WillReturnRows(recordRows())

	_, err = store.DeleteOne(t.Context(), bookID, "nobody@example.com")
	if !errors.Is(err, lending.ErrNotFound) {
		t.Fatalf("want ErrNotFound; got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestListByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	store := borrows.New(db)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM borrows WHERE user_email = $1`)).
		WithArgs("a@example.com").
		WillReturnRows(recordRows().
			AddRow(recordID, bookID, "", "a@example.com", "", "2024-06-01", "2024-06-15", "n", "i", "c").
			AddRow("8a3c1a9e-3d44-4b6a-9a01-2c8f5e6d7b22", bookID, "", "a@example.com", "", "2024-06-02", "2024-06-16", "n", "i", "c"))

	recs, err := store.ListByEmail(t.Context(), "a@example.com")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("want 2 records; got %d", len(recs))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
