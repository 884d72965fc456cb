package dto

import (
	"time"

	"github.com/boardhub/board_backend/internal/core/domain"
)

type UserResponse struct {
	UserID    int64       `json:"id"`
	Email     string      `json:"email"`
	Nickname  string      `json:"nickname"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"createdAt"`
}

func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:    user.UserID,
		Email:     user.Email,
		Nickname:  user.Nickname,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}
