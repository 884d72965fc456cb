package dto

import "github.com/boardhub/board_backend/internal/core/domain"

// Chat event types exchanged over the websocket.
const (
	ChatEventJoinRoom    = "JOIN_ROOM"
	ChatEventSendMessage = "SEND_MESSAGE"
	ChatEventLeaveRoom   = "LEAVE_ROOM"
)

// ChatClientEvent is a frame sent by a chat client.
type ChatClientEvent struct {
	Type    string `json:"type"`
	Room    string `json:"room"`
	Message string `json:"message,omitempty"`
}

// ChatServerEvent is a frame pushed to chat clients.
type ChatServerEvent struct {
	Type    string             `json:"type"`
	Room    string             `json:"room"`
	Message domain.ChatMessage `json:"message"`
}
