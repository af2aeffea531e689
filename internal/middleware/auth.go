package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	portssvc "github.com/openlibro/library_management_app/internal/core/ports/services"
	"github.com/openlibro/library_management_app/internal/dto"
)

// AccessTokenCookieName is the cookie carrying the access token.
const AccessTokenCookieName = "accessToken"

// RefreshTokenCookieName is the cookie carrying the refresh token.
const RefreshTokenCookieName = "refreshToken"

// AuthMiddleware creates a Gin middleware handler that authorizes requests.
// The access token is read from the accessToken cookie first, falling back
// to the Authorization: Bearer header for clients without cookies. The
// authorized user is attached to the Gin context for downstream handlers.
func AuthMiddleware(authSvc portssvc.AuthSvcFacade) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		token := extractAccessToken(c)
		if token == "" {
			logger.Warn("No access token in cookie or Authorization header")
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(http.StatusUnauthorized, "unauthorized request", nil))
			return
		}

		user, err := authSvc.Authorize(c.Request.Context(), token)
		if err != nil {
			logger.Warn("Access token rejected", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(http.StatusUnauthorized, "invalid access token", nil))
			return
		}

		c.Set(string(currentUserKey), user)

		// Enrich the request-scoped logger with the user id
		enrichedLogger := logger.With(slog.String("user_id", user.UserID))
		ctx := context.WithValue(c.Request.Context(), loggerKey, enrichedLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// extractAccessToken returns the token from the accessToken cookie, or from
// the Authorization header when no cookie is present. Cookie takes precedence.
func extractAccessToken(c *gin.Context) string {
	if cookie, err := c.Cookie(AccessTokenCookieName); err == nil && cookie != "" {
		return cookie
	}
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}
	return parts[1]
}
