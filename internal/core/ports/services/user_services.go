package services

import (
	"context"

	"github.com/boardhub/board_backend/internal/core/domain"
	"github.com/boardhub/board_backend/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID int64) (*domain.User, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// CreateUser registers a new user with the user role.
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)

	// UpdateUser updates the requesting user's own account. The role cannot be changed here.
	UpdateUser(ctx context.Context, userID int64, req dto.UpdateUserRequest, requestingUserID int64) (*domain.User, error)
}

// UserLifecycleSvc defines operations for managing user lifecycle
type UserLifecycleSvc interface {
	// DeleteUser deletes the requesting user's own account.
	DeleteUser(ctx context.Context, userID int64, requestingUserID int64) error
}

// UserAuthSvc defines operations for user authentication
type UserAuthSvc interface {
	// AuthenticateUser authenticates a user with email and password.
	AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error)
}

// UserAdminSvc defines operations available to admins on any account.
type UserAdminSvc interface {
	AdminUpdateUser(ctx context.Context, userID int64, req dto.AdminUpdateUserRequest) (*domain.User, error)
	AdminDeleteUser(ctx context.Context, userID int64) error
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserLifecycleSvc
	UserAuthSvc
	UserAdminSvc
}
