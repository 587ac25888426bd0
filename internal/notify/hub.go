package notify

import (
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"admin-dashboard/internal/domain/notification"
	"admin-dashboard/internal/logger"
)

// Hub tracks websocket connections per user and pushes new notifications to
// them as they are created. Connections are registered by the stream handler
// and removed on write failure or disconnect.
type Hub struct {
	mu      sync.RWMutex
	clients map[uuid.UUID]map[*websocket.Conn]struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[uuid.UUID]map[*websocket.Conn]struct{}),
	}
}

func (h *Hub) Register(userID uuid.UUID, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns, ok := h.clients[userID]
	if !ok {
		conns = make(map[*websocket.Conn]struct{})
		h.clients[userID] = conns
	}
	conns[conn] = struct{}{}
}

func (h *Hub) Unregister(userID uuid.UUID, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns, ok := h.clients[userID]
	if !ok {
		return
	}
	delete(conns, conn)
	if len(conns) == 0 {
		delete(h.clients, userID)
	}
}

// Publish sends a notification to every open connection of its recipient.
// Failed connections are dropped; delivery is best-effort.
func (h *Hub) Publish(n *notification.Notification) {
	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.clients[n.UserID]))
	for conn := range h.clients[n.UserID] {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	for _, conn := range conns {
		if err := conn.WriteJSON(n); err != nil {
			logger.Debug("Dropping dead websocket connection",
				zap.String("user_id", n.UserID.String()),
				zap.Error(err),
			)
			_ = conn.Close()
			h.Unregister(n.UserID, conn)
		}
	}
}
