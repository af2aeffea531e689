package dto

import (
	"time"

	"github.com/openlibro/library_management_app/internal/core/domain"
)

// AddBookRequest carries the fields required to add a book to the inventory.
// AvailableCopies is a pointer so a legitimate value of 0 (all copies out)
// survives the required check instead of being rejected as missing.
type AddBookRequest struct {
	BookID          string `json:"bookId" binding:"required"`
	Title           string `json:"title" binding:"required"`
	Author          string `json:"author" binding:"required"`
	PublicationYear int    `json:"publicationYear" binding:"required"`
	TotalCopies     int    `json:"totalCopies" binding:"required,min=1"`
	AvailableCopies *int   `json:"availableCopies" binding:"required,gte=0"`
}

// BookResponse is the sanitized book representation.
type BookResponse struct {
	BookID          string                 `json:"bookId"`
	Title           string                 `json:"title"`
	Author          string                 `json:"author"`
	PublicationYear int                    `json:"publicationYear"`
	TotalCopies     int                    `json:"totalCopies"`
	AvailableCopies int                    `json:"availableCopies"`
	BorrowedBy      []BorrowRecordResponse `json:"borrowedBy"`
	CreatedAt       time.Time              `json:"createdAt"`
	UpdatedAt       time.Time              `json:"updatedAt"`
}

// BorrowRecordResponse is one borrower entry on a book response.
type BorrowRecordResponse struct {
	UserID     string    `json:"userId"`
	BorrowDate time.Time `json:"borrowDate"`
}

// ListBooksResponse wraps the list of available books.
type ListBooksResponse struct {
	Books []BookResponse `json:"books"`
}

// ToBookResponse converts a domain.Book to its response form.
func ToBookResponse(book *domain.Book) BookResponse {
	borrowers := make([]BorrowRecordResponse, len(book.BorrowedBy))
	for i, b := range book.BorrowedBy {
		borrowers[i] = BorrowRecordResponse{
			UserID:     b.UserID,
			BorrowDate: b.BorrowDate,
		}
	}
	return BookResponse{
		BookID:          book.BookID,
		Title:           book.Title,
		Author:          book.Author,
		PublicationYear: book.PublicationYear,
		TotalCopies:     book.TotalCopies,
		AvailableCopies: book.AvailableCopies,
		BorrowedBy:      borrowers,
		CreatedAt:       book.CreatedAt,
		UpdatedAt:       book.UpdatedAt,
	}
}

// ToListBooksResponse converts a slice of domain.Book to the list response.
func ToListBooksResponse(books []domain.Book) ListBooksResponse {
	responses := make([]BookResponse, len(books))
	for i := range books {
		responses[i] = ToBookResponse(&books[i])
	}
	return ListBooksResponse{Books: responses}
}
