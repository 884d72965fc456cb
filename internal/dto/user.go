package dto

import (
	"github.com/boardhub/board_backend/internal/core/domain"
)

// CreateUserRequest is the signup payload.
type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,password"`
	Nickname string `json:"nickname" binding:"required,max=50"`
}

// UpdateUserRequest defines the data a user may change on their own account.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateUserRequest struct {
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,password"`
	Nickname *string `json:"nickname" binding:"omitempty,min=1,max=50"`
}

// AdminUpdateUserRequest additionally allows changing the role.
type AdminUpdateUserRequest struct {
	UpdateUserRequest
	Role *domain.Role `json:"role" binding:"omitempty,oneof=user admin"`
}

// SignupResponse is returned after a successful signup.
type SignupResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}
