package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/boardhub/board_backend/internal/apperrors"
	"github.com/boardhub/board_backend/internal/core/domain"
	portsrepo "github.com/boardhub/board_backend/internal/core/ports/repositories"
	portssvc "github.com/boardhub/board_backend/internal/core/ports/services"
	"github.com/boardhub/board_backend/internal/dto"
	"github.com/boardhub/board_backend/internal/utils"
	"github.com/google/uuid"
)

var (
	nicknameAdjectives = []string{"Swift", "Sleepy", "Happy", "Gloomy", "Brave"}
	nicknameAnimals    = []string{"Lion", "Tiger", "Rabbit", "Turtle", "Eagle"}
)

// chatHub relays chat events between subscribers in the same room.
type chatHub struct {
	BaseService
	repo portsrepo.ChatMessageRepository
	now  func() time.Time

	mu    sync.RWMutex
	rooms map[string]map[portssvc.ChatSubscriber]struct{}
}

// NewChatService creates the chat hub.
func NewChatService(repo portsrepo.ChatMessageRepository) portssvc.ChatSvcFacade {
	return &chatHub{
		repo:  repo,
		now:   func() time.Time { return time.Now().UTC() },
		rooms: make(map[string]map[portssvc.ChatSubscriber]struct{}),
	}
}

var _ portssvc.ChatSvcFacade = (*chatHub)(nil)

func (h *chatHub) NewNickname() string {
	return utils.RandomChoice(nicknameAdjectives) + " " + utils.RandomChoice(nicknameAnimals)
}

func (h *chatHub) HandleEvent(ctx context.Context, sub portssvc.ChatSubscriber, event dto.ChatClientEvent) error {
	room := strings.TrimSpace(event.Room)
	if room == "" {
		return fmt.Errorf("room is required: %w", apperrors.ErrValidation)
	}

	switch event.Type {
	case dto.ChatEventJoinRoom:
		return h.join(ctx, sub, room)
	case dto.ChatEventSendMessage:
		content := strings.TrimSpace(event.Message)
		if content == "" {
			return fmt.Errorf("message is required: %w", apperrors.ErrValidation)
		}
		msg := h.newMessage(room, sub.Nickname(), content)
		if err := h.repo.SaveMessage(ctx, msg); err != nil {
			return fmt.Errorf("failed to save chat message: %w", err)
		}
		h.broadcast(room, msg)
		return nil
	case dto.ChatEventLeaveRoom:
		return h.leave(ctx, sub, room)
	default:
		return fmt.Errorf("unknown chat event %q: %w", event.Type, apperrors.ErrValidation)
	}
}

func (h *chatHub) join(ctx context.Context, sub portssvc.ChatSubscriber, room string) error {
	h.mu.Lock()
	members, ok := h.rooms[room]
	if !ok {
		members = make(map[portssvc.ChatSubscriber]struct{})
		h.rooms[room] = members
	}
	members[sub] = struct{}{}
	h.mu.Unlock()

	history, err := h.repo.ListRoomMessages(ctx, room)
	if err != nil {
		h.removeFromRoom(sub, room)
		return fmt.Errorf("failed to load chat history: %w", err)
	}
	for _, msg := range history {
		sub.Send(dto.ChatServerEvent{Type: dto.ChatEventSendMessage, Room: room, Message: msg})
	}

	welcome := h.newMessage(room, domain.ChatBotSender, fmt.Sprintf("New user %s has joined.", sub.Nickname()))
	if err := h.repo.SaveMessage(ctx, welcome); err != nil {
		return fmt.Errorf("failed to save welcome message: %w", err)
	}
	h.broadcast(room, welcome)

	h.LogDebug(ctx, "Chat room joined", slog.String("room", room), slog.String("nickname", sub.Nickname()))
	return nil
}

func (h *chatHub) leave(ctx context.Context, sub portssvc.ChatSubscriber, room string) error {
	farewell := h.newMessage(room, domain.ChatBotSender, fmt.Sprintf("%s has left the room.", sub.Nickname()))
	h.broadcast(room, farewell)

	h.removeFromRoom(sub, room)

	if err := h.repo.SaveMessage(ctx, farewell); err != nil {
		return fmt.Errorf("failed to save leave message: %w", err)
	}
	return nil
}

func (h *chatHub) Disconnect(sub portssvc.ChatSubscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for room, members := range h.rooms {
		delete(members, sub)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
}

func (h *chatHub) removeFromRoom(sub portssvc.ChatSubscriber, room string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if members, ok := h.rooms[room]; ok {
		delete(members, sub)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
}

func (h *chatHub) newMessage(room, sender, content string) domain.ChatMessage {
	return domain.ChatMessage{
		ID:        uuid.NewString(),
		Room:      room,
		Sender:    sender,
		Content:   content,
		Timestamp: h.now(),
	}
}

// broadcast delivers msg to a snapshot of the room's members.
func (h *chatHub) broadcast(room string, msg domain.ChatMessage) {
	h.mu.RLock()
	members := make([]portssvc.ChatSubscriber, 0, len(h.rooms[room]))
	for sub := range h.rooms[room] {
		members = append(members, sub)
	}
	h.mu.RUnlock()

	event := dto.ChatServerEvent{Type: dto.ChatEventSendMessage, Room: room, Message: msg}
	for _, sub := range members {
		sub.Send(event)
	}
}
