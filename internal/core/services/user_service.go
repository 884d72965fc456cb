package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/boardhub/board_backend/internal/apperrors"
	"github.com/boardhub/board_backend/internal/core/domain"
	portsrepo "github.com/boardhub/board_backend/internal/core/ports/repositories"
	portssvc "github.com/boardhub/board_backend/internal/core/ports/services"
	"github.com/boardhub/board_backend/internal/dto"
	"github.com/boardhub/board_backend/internal/utils"
)

type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
	cleaner  *PostCleaner
}

// UserServiceOption is a functional option for configuring the user service.
type UserServiceOption func(*userService)

// WithUserPostCleaner releases index entries and blobs of the posts a user delete cascades to.
func WithUserPostCleaner(cleaner *PostCleaner) UserServiceOption {
	return func(s *userService) {
		s.cleaner = cleaner
	}
}

// NewUserService creates a new user service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, opts ...UserServiceOption) portssvc.UserSvcFacade {
	s := &userService{userRepo: userRepo}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	email := normalizeEmail(req.Email)

	if _, err := s.userRepo.FindUserByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("email %s is already registered: %w", email, apperrors.ErrDuplicate)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check existing email")
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        email,
		PasswordHash: hash,
		Nickname:     strings.TrimSpace(req.Nickname),
		Role:         domain.RoleUser,
		Timestamps: domain.Timestamps{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save user")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.LogInfo(ctx, "User created", slog.Int64("user_id", user.UserID))
	return user, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get user", slog.Int64("user_id", userID))
		}
		return nil, fmt.Errorf("failed to get user by ID in service: %w", err)
	}
	return user, nil
}

func (s *userService) UpdateUser(ctx context.Context, userID int64, req dto.UpdateUserRequest, requestingUserID int64) (*domain.User, error) {
	if userID != requestingUserID {
		return nil, fmt.Errorf("user %d may not update user %d: %w", requestingUserID, userID, apperrors.ErrForbidden)
	}
	return s.applyUpdate(ctx, userID, req, nil)
}

func (s *userService) AdminUpdateUser(ctx context.Context, userID int64, req dto.AdminUpdateUserRequest) (*domain.User, error) {
	if req.Role != nil && !req.Role.IsValid() {
		return nil, fmt.Errorf("unknown role %q: %w", *req.Role, apperrors.ErrValidation)
	}
	return s.applyUpdate(ctx, userID, req.UpdateUserRequest, req.Role)
}

// applyUpdate changes the provided fields. role is only non-nil on the admin path.
func (s *userService) applyUpdate(ctx context.Context, userID int64, req dto.UpdateUserRequest, role *domain.Role) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user %d for update: %w", userID, err)
	}

	if req.Email != nil {
		user.Email = normalizeEmail(*req.Email)
	}
	if req.Nickname != nil {
		user.Nickname = strings.TrimSpace(*req.Nickname)
	}
	if req.Password != nil {
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			s.LogError(ctx, err, "Failed to hash password")
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = hash
	}
	if role != nil {
		user.Role = *role
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) && !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to update user", slog.Int64("user_id", userID))
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.LogInfo(ctx, "User updated", slog.Int64("user_id", userID))
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, userID int64, requestingUserID int64) error {
	if userID != requestingUserID {
		return fmt.Errorf("user %d may not delete user %d: %w", requestingUserID, userID, apperrors.ErrForbidden)
	}
	return s.AdminDeleteUser(ctx, userID)
}

// AdminDeleteUser removes the user together with the posts they authored.
func (s *userService) AdminDeleteUser(ctx context.Context, userID int64) error {
	var posts []domain.Post
	if s.cleaner != nil {
		var err error
		if posts, err = s.cleaner.postsByAuthor(ctx, userID); err != nil {
			s.LogError(ctx, err, "Failed to list posts before user delete", slog.Int64("user_id", userID))
			return err
		}
	}

	if err := s.userRepo.DeleteUser(ctx, userID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete user", slog.Int64("user_id", userID))
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if s.cleaner != nil {
		s.cleaner.release(ctx, posts)
	}
	s.LogInfo(ctx, "User deleted", slog.Int64("user_id", userID))
	return nil
}

// AuthenticateUser checks email and password. Both an unknown email and a
// wrong password yield ErrInvalidCredentials.
func (s *userService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		s.LogError(ctx, err, "Failed to load user for authentication")
		return nil, fmt.Errorf("failed to authenticate user: %w", err)
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		s.LogWarn(ctx, "Password mismatch", slog.Int64("user_id", user.UserID))
		return nil, apperrors.ErrInvalidCredentials
	}
	return user, nil
}
