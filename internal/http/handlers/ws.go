package handlers

import (
	"net/http"

	"wallet_backend/internal/logger"
	"wallet_backend/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Auth happens via the JWT middleware; cross-origin browsers are allowed
	// because the token, not the origin, is the credential.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WS upgrades the connection and streams balance events for the
// authenticated user until the client disconnects.
func (h *Handler) WS(hub *ws.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := getUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warn("ws upgrade failed", "user_id", userID, "error", err)
			return
		}

		client := ws.NewClient(userID, conn, hub)
		hub.Register(client)
		logger.Debug("ws client connected", "user_id", userID)

		client.Run()
	}
}
