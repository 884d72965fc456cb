package services

import (
	"context"

	"github.com/boardhub/board_backend/internal/dto"
)

// ChatSubscriber receives frames for the rooms it has joined.
type ChatSubscriber interface {
	Nickname() string
	// Send queues a frame for delivery; it must not block the hub.
	Send(event dto.ChatServerEvent)
}

// ChatSvcFacade is the chat hub relaying messages between room members.
type ChatSvcFacade interface {
	// NewNickname returns a random anonymous nickname.
	NewNickname() string
	HandleEvent(ctx context.Context, sub ChatSubscriber, event dto.ChatClientEvent) error
	// Disconnect removes the subscriber from every room.
	Disconnect(sub ChatSubscriber)
}
