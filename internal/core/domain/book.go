package domain

import "time"

// Book represents one title in the library inventory. AvailableCopies is
// always kept within [0, TotalCopies]; the pgsql repository enforces this
// with conditional updates so concurrent borrows cannot overdraw it.
type Book struct {
	BookID          string         `json:"bookId"` // External code, e.g. ISBN
	Title           string         `json:"title"`
	Author          string         `json:"author"`
	PublicationYear int            `json:"publicationYear"`
	TotalCopies     int            `json:"totalCopies"`
	AvailableCopies int            `json:"availableCopies"`
	BorrowedBy      []BorrowRecord `json:"borrowedBy"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

// BorrowRecord is one entry in a book's borrower list.
type BorrowRecord struct {
	UserID     string    `json:"userId"`
	BorrowDate time.Time `json:"borrowDate"`
}
