package domain

import "time"

// ChatBotSender is the sender name used for join/leave announcements.
const ChatBotSender = "Notification Bot"

// ChatMessage is a message relayed to, and persisted for, a chat room.
type ChatMessage struct {
	ID        string    `json:"id"`
	Room      string    `json:"-"`
	Sender    string    `json:"sender"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}
