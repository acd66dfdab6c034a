package router

import (
	"database/sql"
	"net/http"

	"github.com/redis/go-redis/v9"

	"github.com/protim1451/library-lending-api/internal/api/handlers"
	"github.com/protim1451/library-lending-api/internal/api/handlers/books"
	"github.com/protim1451/library-lending-api/internal/lending"
	storebooks "github.com/protim1451/library-lending-api/internal/store/books"
	"github.com/protim1451/library-lending-api/internal/store/borrows"
)

// Router wires the REST surface. Paths are pinned to what the deployed
// frontend already calls; renaming any of them is a breaking change.
func Router(db *sql.DB, rdb *redis.Client) http.Handler {
	bookStore := storebooks.New(db)
	ledger := borrows.New(db)
	coordinator := lending.New(bookStore, ledger)

	mux := http.NewServeMux()

	// Root
	mux.HandleFunc("GET /{$}", handlers.RootHandler)

	// Users
	mux.Handle("POST /user", handlers.CreateUserHandler(db))
	mux.Handle("GET /user", handlers.ListUsersHandler(db))

	// Books (method-specific + 1.22 patterns)
	mux.Handle("POST /book", books.Create(bookStore))
	mux.Handle("GET /books", books.List(bookStore))
	mux.Handle("GET /books/{id}", books.Get(bookStore))
	mux.Handle("PUT /books/{id}", books.Put(bookStore))
	mux.Handle("DELETE /books/{id}", books.Delete(bookStore))
	mux.Handle("GET /books/category/{category}", books.ListByCategory(bookStore))

	// Categories
	mux.Handle("GET /categories", handlers.CategoriesHandler(db, rdb))

	// Lending
	mux.Handle("POST /borrow/{id}", handlers.BorrowHandler(coordinator))
	mux.Handle("POST /return", handlers.ReturnHandler(coordinator))
	mux.Handle("GET /borrowed/{email}", handlers.BorrowedHandler(coordinator))

	return mux
}
