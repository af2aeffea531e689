package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/openlibro/library_management_app/internal/core/domain"
)

// currentUserKey is the key used to store the authenticated user in the Gin
// context. Using a custom type prevents collisions.
const currentUserKey = contextKey("currentUser")

// GetUserFromContext retrieves the authenticated user placed in the context
// by AuthMiddleware. It returns the user and a boolean indicating if it was
// found.
func GetUserFromContext(c *gin.Context) (*domain.User, bool) {
	userVal, exists := c.Get(string(currentUserKey))
	if !exists {
		return nil, false
	}
	user, ok := userVal.(*domain.User)
	if !ok {
		return nil, false
	}
	return user, true
}

// GetUserIDFromContext retrieves the authenticated user's ID from the Gin context.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	user, ok := GetUserFromContext(c)
	if !ok {
		return "", false
	}
	return user.UserID, true
}
