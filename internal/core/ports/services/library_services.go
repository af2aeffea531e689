package services

import (
	"context"

	"github.com/openlibro/library_management_app/internal/core/domain"
	"github.com/openlibro/library_management_app/internal/dto"
)

// LibrarySvcFacade defines the inventory ledger operations. Every operation
// requires an authenticated requester, identified by requesterID.
type LibrarySvcFacade interface {
	// AddBook validates the request and persists a new book.
	AddBook(ctx context.Context, requesterID string, req dto.AddBookRequest) (*domain.Book, error)

	// BorrowBook decrements the book's available copies and records the
	// borrowing for the requester, returning the updated book.
	BorrowBook(ctx context.Context, requesterID, bookID string) (*domain.Book, error)

	// ReturnBook removes the requester's borrowing and increments the book's
	// available copies, returning the updated book.
	ReturnBook(ctx context.Context, requesterID, bookID string) (*domain.Book, error)

	// ListAvailableBooks returns all books with available copies > 0.
	ListAvailableBooks(ctx context.Context) ([]domain.Book, error)
}
