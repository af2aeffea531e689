package repositories

import (
	"context"
	"time"

	"github.com/openlibro/library_management_app/internal/core/domain"
)

// BookReader defines read operations for book data
type BookReader interface {
	// FindBookByID retrieves a book by its external identifier, including
	// the borrower list.
	FindBookByID(ctx context.Context, bookID string) (*domain.Book, error)

	// FindAvailableBooks retrieves all books with available copies > 0.
	FindAvailableBooks(ctx context.Context) ([]domain.Book, error)
}

// BookWriter defines write operations for book data
type BookWriter interface {
	// SaveBook persists a new book.
	SaveBook(ctx context.Context, book domain.Book) error

	// BorrowBook atomically decrements the book's available copies and
	// records the borrowing for the user. The decrement is a conditional
	// update applied server-side, so concurrent borrows can never drive the
	// count negative.
	BorrowBook(ctx context.Context, bookID, userID string, borrowDate time.Time) error

	// ReturnBook atomically removes the user's borrowing record and
	// increments the book's available copies, never exceeding total copies.
	ReturnBook(ctx context.Context, bookID, userID string) error
}

// BookRepositoryFacade combines all book-related repository interfaces
type BookRepositoryFacade interface {
	BookReader
	BookWriter
}
