package models

import "time"

// Book is the persistence model for the books table.
type Book struct {
	BookID          string    `db:"book_id"`
	Title           string    `db:"title"`
	Author          string    `db:"author"`
	PublicationYear int       `db:"publication_year"`
	TotalCopies     int       `db:"total_copies"`
	AvailableCopies int       `db:"available_copies"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

// Borrowing is one row of the borrowings join table. A single row backs
// both the user's borrowed-book entry and the book's borrower entry.
type Borrowing struct {
	BookID     string    `db:"book_id"`
	UserID     string    `db:"user_id"`
	BorrowDate time.Time `db:"borrow_date"`
}
