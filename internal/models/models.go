package models

import "time"

type Book struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Author   string `json:"author,omitempty"`
	Image    string `json:"image,omitempty"`
	Category string `json:"category,omitempty"`
	Rating   string `json:"rating,omitempty"`
	// Short description shown on the card; opaque payload.
	Description string `json:"description,omitempty"`
	// Available (not-borrowed) copies. Never negative.
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"-"`
}

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	PhotoURL  string    `json:"photoURL,omitempty"`
	CreatedAt time.Time `json:"-"`
}

// BorrowRecord is one outstanding loan. Book display fields are copied in at
// borrow time so the borrowed-books view needs no join; the record is a
// self-contained snapshot, immutable between insert and delete.
type BorrowRecord struct {
	ID         string `json:"id"`
	BookID     string `json:"bookId"`
	UserID     string `json:"userId,omitempty"`
	UserEmail  string `json:"userEmail"`
	UserName   string `json:"userName,omitempty"`
	BorrowDate string `json:"borrowDate,omitempty"`
	ReturnDate string `json:"returnDate,omitempty"`

	// snapshot of the book at borrow time
	Name     string `json:"name,omitempty"`
	Image    string `json:"image,omitempty"`
	Category string `json:"category,omitempty"`
}
