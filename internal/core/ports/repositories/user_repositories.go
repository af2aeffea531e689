package repositories

import (
	"context"

	"github.com/openlibro/library_management_app/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID, including the
	// borrowed-book list.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByUsernameOrEmail retrieves a user matching either the given
	// username or the given email.
	FindUserByUsernameOrEmail(ctx context.Context, username, email string) (*domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateRefreshToken sets or clears (nil) the stored refresh token for a
	// user. This is a targeted single-column update; it never touches or
	// revalidates the rest of the record.
	UpdateRefreshToken(ctx context.Context, userID string, refreshToken *string) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
