package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/openlibro/library_management_app/internal/apperrors"
	"github.com/openlibro/library_management_app/internal/core/domain"
	portsrepo "github.com/openlibro/library_management_app/internal/core/ports/repositories"
	"github.com/openlibro/library_management_app/internal/models"
)

type PgxBookRepository struct {
	db *pgxpool.Pool
}

func newPgxBookRepository(db *pgxpool.Pool) portsrepo.BookRepositoryFacade {
	return &PgxBookRepository{db: db}
}

// Ensure PgxBookRepository implements portsrepo.BookRepositoryFacade
var _ portsrepo.BookRepositoryFacade = (*PgxBookRepository)(nil)

// Helper to convert models.Book plus its borrowings to domain.Book
func toDomainBook(m models.Book, borrowings []models.Borrowing) domain.Book {
	borrowers := make([]domain.BorrowRecord, len(borrowings))
	for i, b := range borrowings {
		borrowers[i] = domain.BorrowRecord{
			UserID:     b.UserID,
			BorrowDate: b.BorrowDate,
		}
	}
	return domain.Book{
		BookID:          m.BookID,
		Title:           m.Title,
		Author:          m.Author,
		PublicationYear: m.PublicationYear,
		TotalCopies:     m.TotalCopies,
		AvailableCopies: m.AvailableCopies,
		BorrowedBy:      borrowers,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func (r *PgxBookRepository) SaveBook(ctx context.Context, book domain.Book) error {
	query := `
        INSERT INTO books (book_id, title, author, publication_year, total_copies, available_copies, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
    `
	_, err := r.db.Exec(ctx, query,
		book.BookID,
		book.Title,
		book.Author,
		book.PublicationYear,
		book.TotalCopies,
		book.AvailableCopies,
		book.CreatedAt,
		book.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save book: %w", err)
	}
	return nil
}

func (r *PgxBookRepository) FindBookByID(ctx context.Context, bookID string) (*domain.Book, error) {
	query := `
		SELECT book_id, title, author, publication_year, total_copies, available_copies, created_at, updated_at
		FROM books
		WHERE book_id = $1;
	`
	var modelBook models.Book
	err := r.db.QueryRow(ctx, query, bookID).Scan(
		&modelBook.BookID,
		&modelBook.Title,
		&modelBook.Author,
		&modelBook.PublicationYear,
		&modelBook.TotalCopies,
		&modelBook.AvailableCopies,
		&modelBook.CreatedAt,
		&modelBook.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find book by ID %s: %w", bookID, err)
	}

	borrowings, err := r.findBorrowingsByBook(ctx, modelBook.BookID)
	if err != nil {
		return nil, err
	}

	domainBook := toDomainBook(modelBook, borrowings)
	return &domainBook, nil
}

func (r *PgxBookRepository) FindAvailableBooks(ctx context.Context) ([]domain.Book, error) {
	query := `
        SELECT book_id, title, author, publication_year, total_copies, available_copies, created_at, updated_at
        FROM books
        WHERE available_copies > 0
        ORDER BY created_at;
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query available books: %w", err)
	}
	defer rows.Close()

	modelBooks := []models.Book{}
	for rows.Next() {
		var modelBook models.Book
		err := rows.Scan(
			&modelBook.BookID,
			&modelBook.Title,
			&modelBook.Author,
			&modelBook.PublicationYear,
			&modelBook.TotalCopies,
			&modelBook.AvailableCopies,
			&modelBook.CreatedAt,
			&modelBook.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book row: %w", err)
		}
		modelBooks = append(modelBooks, modelBook)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating book rows: %w", rows.Err())
	}

	books := make([]domain.Book, len(modelBooks))
	for i, m := range modelBooks {
		borrowings, err := r.findBorrowingsByBook(ctx, m.BookID)
		if err != nil {
			return nil, err
		}
		books[i] = toDomainBook(m, borrowings)
	}
	return books, nil
}

// BorrowBook inserts the borrowing row and applies the copy decrement as a
// single conditional update inside one transaction. The insert runs first:
// a foreign-key violation distinguishes a missing book, and the unique
// constraint on (book_id, user_id) rejects a second concurrent or repeated
// borrow by the same user.
func (r *PgxBookRepository) BorrowBook(ctx context.Context, bookID, userID string, borrowDate time.Time) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin borrow transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	insertQuery := `
        INSERT INTO borrowings (book_id, user_id, borrow_date)
        VALUES ($1, $2, $3);
    `
	if _, err := tx.Exec(ctx, insertQuery, bookID, userID, borrowDate); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgerrcode.UniqueViolation:
				return apperrors.ErrDuplicate
			case pgerrcode.ForeignKeyViolation:
				return apperrors.ErrNotFound
			}
		}
		return fmt.Errorf("failed to insert borrowing: %w", err)
	}

	// Decrement only if a copy is actually available; under concurrency the
	// row lock serializes competing borrows and the losers see zero rows.
	updateQuery := `
        UPDATE books
        SET available_copies = available_copies - 1, updated_at = $2
        WHERE book_id = $1 AND available_copies > 0;
    `
	cmdTag, err := tx.Exec(ctx, updateQuery, bookID, borrowDate)
	if err != nil {
		return fmt.Errorf("failed to decrement available copies: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		// The insert already proved the book exists, so this is exhaustion.
		return apperrors.ErrNoCopiesAvailable
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit borrow transaction: %w", err)
	}
	return nil
}

// ReturnBook removes the borrowing row and applies the copy increment in one
// transaction. The increment is guarded so available copies can never exceed
// total copies; hitting that guard means the ledger is inconsistent and the
// whole transaction rolls back.
func (r *PgxBookRepository) ReturnBook(ctx context.Context, bookID, userID string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin return transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	deleteQuery := `
        DELETE FROM borrowings
        WHERE book_id = $1 AND user_id = $2;
    `
	cmdTag, err := tx.Exec(ctx, deleteQuery, bookID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete borrowing: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotBorrowed
	}

	updateQuery := `
        UPDATE books
        SET available_copies = available_copies + 1, updated_at = now()
        WHERE book_id = $1 AND available_copies < total_copies;
    `
	cmdTag, err = tx.Exec(ctx, updateQuery, bookID)
	if err != nil {
		return fmt.Errorf("failed to increment available copies: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("available copies would exceed total copies for book %s: %w", bookID, apperrors.ErrInternal)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit return transaction: %w", err)
	}
	return nil
}

func (r *PgxBookRepository) findBorrowingsByBook(ctx context.Context, bookID string) ([]models.Borrowing, error) {
	query := `
        SELECT book_id, user_id, borrow_date
        FROM borrowings
        WHERE book_id = $1
        ORDER BY borrow_date;
    `
	rows, err := r.db.Query(ctx, query, bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to query borrowings for book %s: %w", bookID, err)
	}
	defer rows.Close()

	borrowings := []models.Borrowing{}
	for rows.Next() {
		var b models.Borrowing
		if err := rows.Scan(&b.BookID, &b.UserID, &b.BorrowDate); err != nil {
			return nil, fmt.Errorf("failed to scan borrowing row: %w", err)
		}
		borrowings = append(borrowings, b)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating borrowing rows: %w", rows.Err())
	}
	return borrowings, nil
}
