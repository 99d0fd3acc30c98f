package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"hivewatch/internal/logging"
	"hivewatch/internal/ws"
)

type Handler struct {
	store  Store
	hub    *ws.Hub
	logger *logging.Logger
}

func NewHandler(store Store, hub *ws.Hub, logger *logging.Logger) *Handler {
	return &Handler{store: store, hub: hub, logger: logger}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// ServeWS upgrades the connection and keeps it registered in the hub until
// the client disconnects.
func (h *Handler) ServeWS(c *gin.Context) {
	userID := c.Param("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing user_id"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Errorf("WebSocket upgrade failed for user %s: %v", userID, err)
		return
	}

	h.hub.Add(userID, conn)
	defer func() {
		h.hub.Remove(userID, conn)
		conn.Close()
	}()

	// Drain reads to detect disconnects; clients only receive.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Notifications

func (h *Handler) GetNotificationsByUserID(c *gin.Context) {
	userID := c.Param("user_id")
	notifications, err := h.store.GetNotificationsByUserID(c.Request.Context(), userID)
	if err != nil {
		h.logger.Errorf("Failed to get notifications for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get notifications"})
		return
	}
	h.logger.Infof("Retrieved %d notifications for user %s", len(notifications), userID)
	c.JSON(http.StatusOK, notifications)
}

func (h *Handler) MarkNotificationRead(c *gin.Context) {
	id := c.Param("id")
	if err := h.store.MarkNotificationRead(c.Request.Context(), id); err != nil {
		h.logger.Errorf("Failed to mark notification %s read: %v", id, err)
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked read"})
}

func (h *Handler) MarkAllNotificationsRead(c *gin.Context) {
	userID := c.Param("user_id")
	if err := h.store.MarkAllNotificationsRead(c.Request.Context(), userID); err != nil {
		h.logger.Errorf("Failed to mark notifications read for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark notifications read"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked read"})
}

func (h *Handler) DeleteNotification(c *gin.Context) {
	id := c.Param("id")
	if err := h.store.DeleteNotification(c.Request.Context(), id); err != nil {
		h.logger.Errorf("Failed to delete notification %s: %v", id, err)
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification deleted"})
}

// Telemetry history

func (h *Handler) GetTelemetryHistory(c *gin.Context) {
	hiveID := c.Param("hive_id")
	limit := 8
	if v, err := parsePositiveInt(c.Query("limit")); err == nil {
		limit = v
	}

	snapshots, err := h.store.GetRecentSnapshots(c.Request.Context(), hiveID, limit)
	if err != nil {
		h.logger.Errorf("Failed to get telemetry history for hive %s: %v", hiveID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get telemetry history"})
		return
	}
	c.JSON(http.StatusOK, snapshots)
}
