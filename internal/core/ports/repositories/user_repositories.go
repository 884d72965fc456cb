package repositories

import (
	"context"
	"time"

	"github.com/boardhub/board_backend/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID int64) (*domain.User, error)

	// FindUserByEmail retrieves a user by their unique email address.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user and fills in its generated ID.
	SaveUser(ctx context.Context, user *domain.User) error

	// UpdateUser updates an existing user's profile fields and role.
	UpdateUser(ctx context.Context, user domain.User) error
}

// UserSessionStore persists the single active refresh token of a user.
type UserSessionStore interface {
	// UpdateRefreshToken replaces the stored refresh token hash and its expiry.
	UpdateRefreshToken(ctx context.Context, userID int64, refreshTokenHash string, refreshTokenExpiryTime time.Time) error

	// ClearRefreshToken removes the stored refresh token, revoking the session.
	ClearRefreshToken(ctx context.Context, userID int64) error
}

// UserLifecycleManager defines operations for managing user lifecycle
type UserLifecycleManager interface {
	// DeleteUser removes a user and everything they authored.
	DeleteUser(ctx context.Context, userID int64) error
}

// UserRepositoryFacade combines all user-related repository interfaces
// This is a facade for clients that need access to all operations
type UserRepositoryFacade interface {
	UserReader
	UserWriter
	UserSessionStore
	UserLifecycleManager
}
