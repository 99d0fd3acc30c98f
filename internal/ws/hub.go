package ws

import (
	"context"
	"sync"

	"github.com/gorilla/websocket"

	"hivewatch/internal/logging"
	"hivewatch/internal/models"
)

const maxConnectionsPerUser = 10

// Hub manages WebSocket connections per user and fans events out to all of a
// user's open dashboard clients.
type Hub struct {
	connections map[string]map[*websocket.Conn]bool
	mutex       sync.Mutex
	logger      *logging.Logger
}

func NewHub(logger *logging.Logger) *Hub {
	return &Hub{
		connections: make(map[string]map[*websocket.Conn]bool),
		logger:      logger,
	}
}

// Add registers a connection for a user.
func (h *Hub) Add(userID string, conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if _, exists := h.connections[userID]; !exists {
		h.connections[userID] = make(map[*websocket.Conn]bool)
	}
	if len(h.connections[userID]) >= maxConnectionsPerUser {
		h.logger.Warnf("Max connections reached for user %s", userID)
		return
	}
	h.connections[userID][conn] = true
	h.logger.Infof("Added WebSocket connection for user %s (total: %d)", userID, len(h.connections[userID]))
}

// Remove drops a connection for a user.
func (h *Hub) Remove(userID string, conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if conns, exists := h.connections[userID]; exists {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(h.connections, userID)
		}
		h.logger.Infof("Removed WebSocket connection for user %s (remaining: %d)", userID, len(conns))
	}
}

// Broadcast sends an event to all of a user's connections. Failed
// connections are dropped.
func (h *Hub) Broadcast(userID string, event interface{}) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	conns, exists := h.connections[userID]
	if !exists {
		return
	}
	for conn := range conns {
		if err := conn.WriteJSON(event); err != nil {
			h.logger.Errorf("Failed to send WebSocket event to user %s: %v", userID, err)
			delete(conns, conn)
		}
	}
	if len(conns) == 0 {
		delete(h.connections, userID)
	}
}

// notificationEvent wraps a notification for the live feed.
type notificationEvent struct {
	Kind         string              `json:"kind"`
	Notification models.Notification `json:"notification"`
}

// NotificationChannel adapts the hub to the alert manager's channel
// interface so new notifications appear without polling.
type NotificationChannel struct {
	hub *Hub
}

func NewNotificationChannel(hub *Hub) *NotificationChannel {
	return &NotificationChannel{hub: hub}
}

func (c *NotificationChannel) Publish(_ context.Context, n models.Notification) error {
	c.hub.Broadcast(n.UserID, notificationEvent{Kind: "notification", Notification: n})
	return nil
}
