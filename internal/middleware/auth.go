package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/boardhub/board_backend/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// TokenVerifier verifies access tokens.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string, kind domain.TokenKind) (*domain.TokenClaims, error)
}

// AuthMiddleware creates a Gin middleware handler that validates bearer access tokens.
func AuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		tokenString, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			logger.Warn("Authorization header missing or malformed")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		claims, err := verifier.VerifyToken(c.Request.Context(), tokenString, domain.TokenKindAccess)
		if err != nil {
			logger.Warn("Invalid token", slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		enrichedLogger := logger.With(slog.Int64("user_id", claims.UserID))
		ctx := WithUserID(c.Request.Context(), claims.UserID)
		ctx = WithLogger(ctx, enrichedLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}
