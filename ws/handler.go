package ws

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"vfxhub_backend/internal/logger"
	"vfxhub_backend/pkg/apperrors"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Same-origin enforcement is handled by the reverse proxy.
		return true
	},
}

// Handler upgrades an authenticated request to a live event stream.
type Handler struct {
	manager *WebSocketManager
}

func NewHandler(manager *WebSocketManager) *Handler {
	return &Handler{manager: manager}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/ws", h.Serve)
}

func (h *Handler) Serve(c *gin.Context) {
	userIDVal, exists := c.Get("userID")
	userID, ok := userIDVal.(string)
	if !exists || !ok || userID == "" {
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("User not authenticated"))
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.WithError(err).Warn("ws upgrade failed", "user_id", userID)
		return
	}

	client := newClient(userID, conn, h.manager)
	h.manager.register <- client

	go client.writePump()
	go client.readPump()
}
