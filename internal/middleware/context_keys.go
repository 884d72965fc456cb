package middleware

import (
	"context"

	"github.com/boardhub/board_backend/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// userIDKey is the key used to store the authenticated user's ID.
const userIDKey = contextKey("userID")

// userRoleKey holds the role once RequireAdmin has loaded the user.
const userRoleKey = contextKey("userRole")

// WithUserID returns a copy of ctx carrying the authenticated user ID.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserIDFromContext retrieves the authenticated user ID from the request context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (int64, bool) {
	userID, ok := c.Request.Context().Value(userIDKey).(int64)
	return userID, ok
}

// GetUserRoleFromContext returns the role stored by RequireAdmin.
func GetUserRoleFromContext(c *gin.Context) (domain.Role, bool) {
	role, ok := c.Request.Context().Value(userRoleKey).(domain.Role)
	return role, ok
}
