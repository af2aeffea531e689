package services

import (
	"context"
	"fmt"

	"github.com/openlibro/library_management_app/internal/apperrors"
	"github.com/openlibro/library_management_app/internal/core/domain"
	portssvc "github.com/openlibro/library_management_app/internal/core/ports/services"
	"github.com/openlibro/library_management_app/internal/platform/config"
	"github.com/openlibro/library_management_app/internal/utils"
)

// tokenService implements TokenSvcFacade. It only needs the application
// configuration for the two secrets, the expiry durations, and the issuer.
type tokenService struct {
	cfg *config.Config
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config) portssvc.TokenSvcFacade {
	return &tokenService{cfg: cfg}
}

// GenerateTokenPair issues a fresh access and refresh token for the user.
// Access tokens embed the user's identity claims; refresh tokens carry only
// the user id, and the two are signed with distinct secrets.
func (s *tokenService) GenerateTokenPair(ctx context.Context, user *domain.User) (*domain.TokenPair, error) {
	accessToken, err := utils.GenerateAccessToken(
		user.UserID, user.Username, user.Fullname, user.Email,
		s.cfg.AccessTokenSecret, s.cfg.AccessTokenExpiryDuration, s.cfg.JWTIssuer,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := utils.GenerateRefreshToken(
		user.UserID, s.cfg.RefreshTokenSecret, s.cfg.RefreshTokenExpiryDuration, s.cfg.JWTIssuer,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// VerifyAccessToken checks signature and expiry and returns the embedded
// user id. Any verification failure, including expiry, surfaces as a single
// authentication error so callers cannot distinguish token faults.
func (s *tokenService) VerifyAccessToken(ctx context.Context, tokenString string) (string, error) {
	claims, err := utils.ParseAccessToken(tokenString, s.cfg.AccessTokenSecret)
	if err != nil {
		return "", apperrors.NewUnauthorized("invalid access token")
	}
	if claims.Subject == "" {
		return "", apperrors.NewUnauthorized("invalid access token")
	}
	return claims.Subject, nil
}

// VerifyRefreshToken checks signature and expiry and returns the embedded user id.
func (s *tokenService) VerifyRefreshToken(ctx context.Context, tokenString string) (string, error) {
	claims, err := utils.ParseRefreshToken(tokenString, s.cfg.RefreshTokenSecret)
	if err != nil {
		return "", apperrors.NewUnauthorized("invalid refresh token")
	}
	if claims.Subject == "" {
		return "", apperrors.NewUnauthorized("invalid refresh token")
	}
	return claims.Subject, nil
}
