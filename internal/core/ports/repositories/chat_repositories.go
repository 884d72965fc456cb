package repositories

import (
	"context"

	"github.com/boardhub/board_backend/internal/core/domain"
)

// ChatMessageRepository persists chat room history.
type ChatMessageRepository interface {
	SaveMessage(ctx context.Context, msg domain.ChatMessage) error

	// ListRoomMessages returns a room's history in timestamp order.
	ListRoomMessages(ctx context.Context, room string) ([]domain.ChatMessage, error)
}
