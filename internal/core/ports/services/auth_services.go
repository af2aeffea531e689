package services

import (
	"context"

	"github.com/openlibro/library_management_app/internal/core/domain"
	"github.com/openlibro/library_management_app/internal/dto"
)

// AuthSvcFacade defines the authentication/session lifecycle operations.
type AuthSvcFacade interface {
	// Register validates the request, hashes the password, and creates the
	// user. Returns the created user re-read from the store.
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)

	// Login verifies credentials, issues an access/refresh token pair, and
	// persists the refresh token on the user record.
	Login(ctx context.Context, req dto.LoginRequest) (*domain.User, *domain.TokenPair, error)

	// Logout clears the stored refresh token for the user. Idempotent.
	Logout(ctx context.Context, userID string) error

	// Refresh validates a refresh token against the stored one and rotates
	// the token pair.
	Refresh(ctx context.Context, refreshToken string) (*domain.User, *domain.TokenPair, error)

	// Authorize verifies an access token and returns the user it belongs to.
	Authorize(ctx context.Context, accessToken string) (*domain.User, error)
}

// TokenSvcFacade defines the interface for token issuance and verification.
type TokenSvcFacade interface {
	// GenerateTokenPair issues a fresh access and refresh token for the user.
	GenerateTokenPair(ctx context.Context, user *domain.User) (*domain.TokenPair, error)

	// VerifyAccessToken checks signature and expiry and returns the embedded user ID.
	VerifyAccessToken(ctx context.Context, tokenString string) (string, error)

	// VerifyRefreshToken checks signature and expiry and returns the embedded user ID.
	VerifyRefreshToken(ctx context.Context, tokenString string) (string, error)
}
