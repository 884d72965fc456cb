package pgsql

import (
	"context"
	"fmt"

	"github.com/boardhub/board_backend/internal/core/domain"
	portsrepo "github.com/boardhub/board_backend/internal/core/ports/repositories"
	"github.com/boardhub/board_backend/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxChatMessageRepository struct {
	BaseRepository
}

func newPgxChatMessageRepository(db *pgxpool.Pool) portsrepo.ChatMessageRepository {
	return &PgxChatMessageRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.ChatMessageRepository = (*PgxChatMessageRepository)(nil)

func (r *PgxChatMessageRepository) SaveMessage(ctx context.Context, msg domain.ChatMessage) error {
	query := `
        INSERT INTO chat_messages (message_id, room, sender, content, sent_at)
        VALUES ($1, $2, $3, $4, $5);
    `
	if _, err := r.Pool.Exec(ctx, query, msg.ID, msg.Room, msg.Sender, msg.Content, msg.Timestamp); err != nil {
		return fmt.Errorf("failed to save chat message: %w", err)
	}
	return nil
}

func (r *PgxChatMessageRepository) ListRoomMessages(ctx context.Context, room string) ([]domain.ChatMessage, error) {
	query := `
        SELECT message_id, room, sender, content, sent_at
        FROM chat_messages
        WHERE room = $1
        ORDER BY sent_at, message_id;
    `
	rows, err := r.Pool.Query(ctx, query, room)
	if err != nil {
		return nil, fmt.Errorf("failed to query chat messages for room %s: %w", room, err)
	}
	defer rows.Close()

	messages := []domain.ChatMessage{}
	for rows.Next() {
		var m models.ChatMessage
		if err := rows.Scan(&m.MessageID, &m.Room, &m.Sender, &m.Content, &m.SentAt); err != nil {
			return nil, fmt.Errorf("failed to scan chat message row: %w", err)
		}
		messages = append(messages, domain.ChatMessage{
			ID:        m.MessageID,
			Room:      m.Room,
			Sender:    m.Sender,
			Content:   m.Content,
			Timestamp: m.SentAt,
		})
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating chat message rows: %w", rows.Err())
	}
	return messages, nil
}
