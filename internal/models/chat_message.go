package models

import "time"

// ChatMessage is a row of the chat_messages table.
type ChatMessage struct {
	MessageID string    `db:"message_id"`
	Room      string    `db:"room"`
	Sender    string    `db:"sender"`
	Content   string    `db:"content"`
	SentAt    time.Time `db:"sent_at"`
}
