package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/openlibro/library_management_app/internal/apperrors"
	"github.com/openlibro/library_management_app/internal/core/domain"
	portsrepo "github.com/openlibro/library_management_app/internal/core/ports/repositories"
	portssvc "github.com/openlibro/library_management_app/internal/core/ports/services"
	"github.com/openlibro/library_management_app/internal/dto"
	"github.com/openlibro/library_management_app/internal/utils"
)

// authService implements AuthSvcFacade: registration, login, logout, token
// refresh, and per-request authorization.
type authService struct {
	userRepo portsrepo.UserRepositoryFacade
	tokenSvc portssvc.TokenSvcFacade
}

// NewAuthService creates a new instance of authService.
func NewAuthService(userRepo portsrepo.UserRepositoryFacade, tokenSvc portssvc.TokenSvcFacade) portssvc.AuthSvcFacade {
	return &authService{
		userRepo: userRepo,
		tokenSvc: tokenSvc,
	}
}

// Register creates a new user. The password is hashed explicitly here,
// before the write, rather than as a persistence-layer side effect, so
// re-saving a user can never re-hash an already hashed value.
func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	username := strings.ToLower(strings.TrimSpace(req.Username))
	fullname := strings.TrimSpace(req.Fullname)
	password := strings.TrimSpace(req.Password)

	if email == "" || username == "" || fullname == "" || password == "" {
		return nil, apperrors.NewValidation("all fields are required")
	}

	existing, err := s.userRepo.FindUserByUsernameOrEmail(ctx, username, email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, apperrors.NewInternal("failed to check for existing user", err)
	}
	if existing != nil {
		return nil, apperrors.NewDuplicate("user already exists")
	}

	passwordHash, err := utils.HashPassword(password)
	if err != nil {
		return nil, apperrors.NewInternal("failed to hash password", err)
	}

	now := time.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     username,
		Email:        email,
		Fullname:     fullname,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewDuplicate("user already exists")
		}
		return nil, apperrors.NewInternal("failed to create user", err)
	}

	// Re-read the created record as a consistency check; the returned user
	// is what clients see, sanitized by the dto layer.
	created, err := s.userRepo.FindUserByID(ctx, user.UserID)
	if err != nil {
		return nil, apperrors.NewInternal("something went wrong while registering the user", err)
	}
	return created, nil
}

// Login verifies credentials by username or email and issues a token pair.
// The refresh token is persisted on the user record via a targeted update so
// it can be invalidated server-side.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*domain.User, *domain.TokenPair, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if username == "" && email == "" {
		return nil, nil, apperrors.NewValidation("username or email is required")
	}

	user, err := s.userRepo.FindUserByUsernameOrEmail(ctx, username, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, apperrors.NewNotFound("user with the username or email not found")
		}
		return nil, nil, apperrors.NewInternal("failed to look up user", err)
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, nil, apperrors.NewUnauthorized("password entered is incorrect")
	}

	pair, err := s.tokenSvc.GenerateTokenPair(ctx, user)
	if err != nil {
		return nil, nil, apperrors.NewInternal("something went wrong while generating access token and refresh token", err)
	}

	if err := s.userRepo.UpdateRefreshToken(ctx, user.UserID, &pair.RefreshToken); err != nil {
		return nil, nil, apperrors.NewInternal("failed to persist refresh token", err)
	}
	user.RefreshToken = &pair.RefreshToken

	return user, pair, nil
}

// Logout clears the stored refresh token. Clearing an already cleared token
// is a no-op, which makes the operation idempotent.
func (s *authService) Logout(ctx context.Context, userID string) error {
	if err := s.userRepo.UpdateRefreshToken(ctx, userID, nil); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewUnauthorized("invalid access token")
		}
		return apperrors.NewInternal("failed to clear refresh token", err)
	}
	return nil
}

// Refresh validates a refresh token against the stored one and rotates the
// pair. A token that no longer matches the stored value has been invalidated
// by logout or superseded by a newer login.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*domain.User, *domain.TokenPair, error) {
	userID, err := s.tokenSvc.VerifyRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, nil, err
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, nil, apperrors.NewUnauthorized("invalid refresh token")
	}
	if user.RefreshToken == nil || *user.RefreshToken != refreshToken {
		return nil, nil, apperrors.NewUnauthorized("invalid refresh token")
	}

	pair, err := s.tokenSvc.GenerateTokenPair(ctx, user)
	if err != nil {
		return nil, nil, apperrors.NewInternal("something went wrong while generating access token and refresh token", err)
	}
	if err := s.userRepo.UpdateRefreshToken(ctx, user.UserID, &pair.RefreshToken); err != nil {
		return nil, nil, apperrors.NewInternal("failed to persist refresh token", err)
	}
	user.RefreshToken = &pair.RefreshToken

	return user, pair, nil
}

// Authorize verifies an access token and returns the user it belongs to.
// A valid token whose user no longer exists is as invalid as a tampered one.
func (s *authService) Authorize(ctx context.Context, accessToken string) (*domain.User, error) {
	userID, err := s.tokenSvc.VerifyAccessToken(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, apperrors.NewUnauthorized("invalid access token")
	}
	return user, nil
}
