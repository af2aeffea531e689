package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/openlibro/library_management_app/internal/apperrors"
	"github.com/openlibro/library_management_app/internal/core/domain"
	portsrepo "github.com/openlibro/library_management_app/internal/core/ports/repositories"
	portssvc "github.com/openlibro/library_management_app/internal/core/ports/services"
	"github.com/openlibro/library_management_app/internal/dto"
)

// libraryService implements LibrarySvcFacade: the inventory ledger over the
// book and user repositories.
type libraryService struct {
	bookRepo portsrepo.BookRepositoryFacade
	userRepo portsrepo.UserRepositoryFacade
}

// NewLibraryService creates a new instance of libraryService.
func NewLibraryService(bookRepo portsrepo.BookRepositoryFacade, userRepo portsrepo.UserRepositoryFacade) portssvc.LibrarySvcFacade {
	return &libraryService{
		bookRepo: bookRepo,
		userRepo: userRepo,
	}
}

// requireUser re-checks that the requester still exists. The middleware has
// already authorized the token, but a deleted account must not keep writing
// to the ledger for the remainder of its token lifetime.
func (s *libraryService) requireUser(ctx context.Context, requesterID string) error {
	if _, err := s.userRepo.FindUserByID(ctx, requesterID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewUnauthorized("user authentication failed or user not registered")
		}
		return apperrors.NewInternal("failed to verify requester", err)
	}
	return nil
}

// AddBook validates the request and persists a new book. AvailableCopies
// arrives as a pointer so an explicit 0 passes the presence check; it must
// still not exceed TotalCopies.
func (s *libraryService) AddBook(ctx context.Context, requesterID string, req dto.AddBookRequest) (*domain.Book, error) {
	if err := s.requireUser(ctx, requesterID); err != nil {
		return nil, err
	}

	bookID := strings.TrimSpace(req.BookID)
	title := strings.TrimSpace(req.Title)
	author := strings.TrimSpace(req.Author)
	if bookID == "" || title == "" || author == "" || req.PublicationYear == 0 || req.AvailableCopies == nil {
		return nil, apperrors.NewValidation("all fields are required")
	}
	if req.TotalCopies < 1 {
		return nil, apperrors.NewValidation("total copies must be at least 1")
	}
	if *req.AvailableCopies < 0 || *req.AvailableCopies > req.TotalCopies {
		return nil, apperrors.NewValidation("available copies must be between 0 and total copies")
	}

	now := time.Now()
	book := domain.Book{
		BookID:          bookID,
		Title:           title,
		Author:          author,
		PublicationYear: req.PublicationYear,
		TotalCopies:     req.TotalCopies,
		AvailableCopies: *req.AvailableCopies,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.bookRepo.SaveBook(ctx, book); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewDuplicate("book already exists")
		}
		return nil, apperrors.NewInternal("error while adding the book", err)
	}

	created, err := s.bookRepo.FindBookByID(ctx, book.BookID)
	if err != nil {
		return nil, apperrors.NewInternal("error while adding the book", err)
	}
	return created, nil
}

// BorrowBook records a borrowing for the requester and returns the updated
// book. The copy decrement happens as an atomic conditional update in the
// repository, so concurrent borrows of the last copy cannot both succeed.
func (s *libraryService) BorrowBook(ctx context.Context, requesterID, bookID string) (*domain.Book, error) {
	if err := s.requireUser(ctx, requesterID); err != nil {
		return nil, err
	}

	if err := s.bookRepo.BorrowBook(ctx, bookID, requesterID, time.Now()); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			return nil, apperrors.NewNotFound("book not found")
		case errors.Is(err, apperrors.ErrNoCopiesAvailable):
			return nil, apperrors.NewNoCopiesAvailable("no copies of the book are available")
		case errors.Is(err, apperrors.ErrDuplicate):
			return nil, apperrors.NewDuplicate("book already borrowed by the user")
		}
		return nil, apperrors.NewInternal("error while borrowing the book", err)
	}

	book, err := s.bookRepo.FindBookByID(ctx, bookID)
	if err != nil {
		return nil, apperrors.NewInternal("error while borrowing the book", err)
	}
	return book, nil
}

// ReturnBook removes the requester's borrowing and returns the updated book.
func (s *libraryService) ReturnBook(ctx context.Context, requesterID, bookID string) (*domain.Book, error) {
	if err := s.requireUser(ctx, requesterID); err != nil {
		return nil, err
	}

	if err := s.bookRepo.ReturnBook(ctx, bookID, requesterID); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotBorrowed):
			return nil, apperrors.NewNotBorrowed("book is not borrowed by the user")
		case errors.Is(err, apperrors.ErrInternal):
			return nil, apperrors.NewInternal("book inventory is inconsistent", err)
		}
		return nil, apperrors.NewInternal("error while returning the book", err)
	}

	book, err := s.bookRepo.FindBookByID(ctx, bookID)
	if err != nil {
		return nil, apperrors.NewInternal("error while returning the book", err)
	}
	return book, nil
}

// ListAvailableBooks returns all books with at least one available copy.
func (s *libraryService) ListAvailableBooks(ctx context.Context) ([]domain.Book, error) {
	books, err := s.bookRepo.FindAvailableBooks(ctx)
	if err != nil {
		return nil, apperrors.NewInternal("failed to list available books", err)
	}
	return books, nil
}
