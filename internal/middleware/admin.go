package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/boardhub/board_backend/internal/apperrors"
	"github.com/boardhub/board_backend/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// UserLookup loads the user behind an authenticated request.
type UserLookup interface {
	GetUserByID(ctx context.Context, userID int64) (*domain.User, error)
}

// RequireAdmin rejects requests whose authenticated user is not an admin.
// It must run after AuthMiddleware. The role is read from persistence on
// every request, so a demotion takes effect immediately.
func RequireAdmin(users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		userID, ok := GetUserIDFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		user, err := users.GetUserByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
				return
			}
			logger.Error("Failed to load user for admin check", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		if !user.IsAdmin() {
			logger.Warn("Admin permission required", slog.String("role", string(user.Role)))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin permission required"})
			return
		}

		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), userRoleKey, user.Role))
		c.Next()
	}
}
