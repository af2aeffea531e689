package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/openlibro/library_management_app/internal/apperrors"
	"github.com/openlibro/library_management_app/internal/core/domain"
	portsrepo "github.com/openlibro/library_management_app/internal/core/ports/repositories"
	"github.com/openlibro/library_management_app/internal/models"
)

type PgxUserRepository struct {
	db *pgxpool.Pool
}

func newPgxUserRepository(db *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{db: db}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

// Helper to convert models.User plus its borrowings to domain.User
func toDomainUser(m models.User, borrowings []models.Borrowing) domain.User {
	borrowed := make([]domain.BorrowedBook, len(borrowings))
	for i, b := range borrowings {
		borrowed[i] = domain.BorrowedBook{
			BookID:     b.BookID,
			BorrowDate: b.BorrowDate,
		}
	}
	var refreshToken *string
	if m.RefreshToken.Valid {
		token := m.RefreshToken.String
		refreshToken = &token
	}
	return domain.User{
		UserID:        m.UserID,
		Username:      m.Username,
		Email:         m.Email,
		Fullname:      m.Fullname,
		PasswordHash:  m.PasswordHash,
		RefreshToken:  refreshToken,
		BorrowedBooks: borrowed,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	query := `
        INSERT INTO users (user_id, username, email, fullname, password_hash, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7);
    `
	_, err := r.db.Exec(ctx, query,
		user.UserID,
		user.Username,
		user.Email,
		user.Fullname,
		user.PasswordHash,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `
		SELECT user_id, username, email, fullname, password_hash, refresh_token, created_at, updated_at
		FROM users
		WHERE user_id = $1;
	`
	var modelUser models.User
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&modelUser.UserID,
		&modelUser.Username,
		&modelUser.Email,
		&modelUser.Fullname,
		&modelUser.PasswordHash,
		&modelUser.RefreshToken,
		&modelUser.CreatedAt,
		&modelUser.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by ID %s: %w", userID, err)
	}

	borrowings, err := r.findBorrowingsByUser(ctx, modelUser.UserID)
	if err != nil {
		return nil, err
	}

	domainUser := toDomainUser(modelUser, borrowings)
	return &domainUser, nil
}

func (r *PgxUserRepository) FindUserByUsernameOrEmail(ctx context.Context, username, email string) (*domain.User, error) {
	query := `
		SELECT user_id, username, email, fullname, password_hash, refresh_token, created_at, updated_at
		FROM users
		WHERE username = $1 OR email = $2;
	`
	var modelUser models.User
	err := r.db.QueryRow(ctx, query, username, email).Scan(
		&modelUser.UserID,
		&modelUser.Username,
		&modelUser.Email,
		&modelUser.Fullname,
		&modelUser.PasswordHash,
		&modelUser.RefreshToken,
		&modelUser.CreatedAt,
		&modelUser.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by username or email: %w", err)
	}

	borrowings, err := r.findBorrowingsByUser(ctx, modelUser.UserID)
	if err != nil {
		return nil, err
	}

	domainUser := toDomainUser(modelUser, borrowings)
	return &domainUser, nil
}

// UpdateRefreshToken is a targeted single-column update; a nil token clears
// the stored value. The rest of the record is never revalidated or touched.
func (r *PgxUserRepository) UpdateRefreshToken(ctx context.Context, userID string, refreshToken *string) error {
	query := `
        UPDATE users
        SET refresh_token = $1, updated_at = now()
        WHERE user_id = $2;
    `
	cmdTag, err := r.db.Exec(ctx, query, refreshToken, userID)
	if err != nil {
		return fmt.Errorf("failed to update refresh token: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxUserRepository) findBorrowingsByUser(ctx context.Context, userID string) ([]models.Borrowing, error) {
	query := `
        SELECT book_id, user_id, borrow_date
        FROM borrowings
        WHERE user_id = $1
        ORDER BY borrow_date;
    `
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query borrowings for user %s: %w", userID, err)
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
