package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	portssvc "github.com/boardhub/board_backend/internal/core/ports/services"
	"github.com/boardhub/board_backend/internal/dto"
	"github.com/boardhub/board_backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a frame to the peer.
	chatWriteWait = 10 * time.Second

	// Time allowed to read the next pong from the peer.
	chatPongWait = 60 * time.Second

	// Must be shorter than chatPongWait.
	chatPingPeriod = (chatPongWait * 9) / 10

	chatMaxMessageSize = 4096
	chatSendBuffer     = 64
)

type chatHandler struct {
	hub      portssvc.ChatSvcFacade
	upgrader websocket.Upgrader
}

func registerChatRoutes(r *gin.Engine, hub portssvc.ChatSvcFacade, allowedOrigins []string) {
	h := newChatHandler(hub, allowedOrigins)
	r.GET("/ws/chat", h.serveWS)
}

func newChatHandler(hub portssvc.ChatSvcFacade, allowedOrigins []string) *chatHandler {
	return &chatHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

// originChecker accepts same-host requests, requests without an Origin
// header and the configured CORS origins ("*" allows any).
func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		set[o] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		if _, ok := set["*"]; ok {
			return true
		}
		if _, ok := set[origin]; ok {
			return true
		}
		return origin == "http://"+r.Host || origin == "https://"+r.Host
	}
}

// serveWS godoc
// @Summary Chat websocket
// @Description Upgrades to a websocket. Clients send {type, room, message} frames with type
// @Description JOIN_ROOM, SEND_MESSAGE or LEAVE_ROOM and receive SEND_MESSAGE frames.
// @Tags chat
// @Success 101 "Switching Protocols"
// @Router /ws/chat [get]
func (h *chatHandler) serveWS(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already answered the client.
		logger.Warn("Websocket upgrade failed", slog.String("error", err.Error()))
		return
	}

	client := newChatClient(conn, h.hub.NewNickname(), logger)
	client.logger.Info("Chat client connected")

	go client.writePump()
	client.readPump(c.Request.Context(), h.hub)

	client.logger.Info("Chat client disconnected")
}

// chatClient is a websocket connection subscribed to the hub.
type chatClient struct {
	conn     *websocket.Conn
	nickname string
	logger   *slog.Logger

	send      chan dto.ChatServerEvent
	done      chan struct{}
	closeOnce sync.Once
}

var _ portssvc.ChatSubscriber = (*chatClient)(nil)

func newChatClient(conn *websocket.Conn, nickname string, logger *slog.Logger) *chatClient {
	return &chatClient{
		conn:     conn,
		nickname: nickname,
		logger:   logger.With(slog.String("nickname", nickname)),
		send:     make(chan dto.ChatServerEvent, chatSendBuffer),
		done:     make(chan struct{}),
	}
}

func (cl *chatClient) Nickname() string {
	return cl.nickname
}

// Send queues event without blocking. Frames for a client whose buffer is
// full are dropped.
func (cl *chatClient) Send(event dto.ChatServerEvent) {
	select {
	case <-cl.done:
		return
	default:
	}
	select {
	case cl.send <- event:
	default:
		cl.logger.Warn("Chat send buffer full, dropping frame", slog.String("room", event.Room))
	}
}

func (cl *chatClient) close() {
	cl.closeOnce.Do(func() {
		close(cl.done)
	})
}

// readPump decodes client frames and hands them to the hub until the
// connection fails.
func (cl *chatClient) readPump(ctx context.Context, hub portssvc.ChatSvcFacade) {
	defer func() {
		hub.Disconnect(cl)
		cl.close()
		cl.conn.Close()
	}()

	cl.conn.SetReadLimit(chatMaxMessageSize)
	_ = cl.conn.SetReadDeadline(time.Now().Add(chatPongWait))
	cl.conn.SetPongHandler(func(string) error {
		return cl.conn.SetReadDeadline(time.Now().Add(chatPongWait))
	})

	for {
		_, raw, err := cl.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				cl.logger.Warn("Chat connection closed unexpectedly", slog.String("error", err.Error()))
			}
			return
		}

		var event dto.ChatClientEvent
		if err := json.Unmarshal(raw, &event); err != nil {
			cl.logger.Warn("Malformed chat frame", slog.String("error", err.Error()))
			continue
		}
		if err := hub.HandleEvent(ctx, cl, event); err != nil {
			cl.logger.Warn("Chat event rejected", slog.String("type", event.Type), slog.String("error", err.Error()))
		}
	}
}

// writePump is the only writer on the connection.
func (cl *chatClient) writePump() {
	ticker := time.NewTicker(chatPingPeriod)
	defer func() {
		ticker.Stop()
		cl.conn.Close()
	}()

	for {
		select {
		case event := <-cl.send:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(chatWriteWait))
			if err := cl.conn.WriteJSON(event); err != nil {
				cl.logger.Warn("Failed to write chat frame", slog.String("error", err.Error()))
				return
			}
		case <-ticker.C:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(chatWriteWait))
			if err := cl.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-cl.done:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(chatWriteWait))
			_ = cl.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}
