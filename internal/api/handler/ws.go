package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"gosocial/backend/internal/chat"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allows connections from any origin. Tighten for production.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeChat is the persistent channel endpoint, addressed by peer username.
// The credential travels in the jwt-token cookie set at sign-in: a missing
// cookie rejects the handshake as a policy violation, an invalid one as an
// authorization failure, and an unknown (or self) peer as not found. All
// rejections happen before the upgrade, so no room or registry state exists
// on any rejection path.
func (h *Handler) ServeChat(c *gin.Context) {
	credential, err := c.Cookie(tokenCookieName)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "credential cookie missing"})
		return
	}

	session, err := chat.NewSession(h.Auth, h.Storage, h.Storage, credential, c.Param("username"))
	if err != nil {
		switch {
		case errors.Is(err, chat.ErrUnauthenticated):
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token or expired"})
		case errors.Is(err, chat.ErrPeerNotFound):
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "peer not found"})
		default:
			log.Printf("ERROR: chat session setup failed: %v", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to open chat"})
		}
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the handshake error response.
		log.Printf("ERROR: websocket upgrade failed for user %d: %v", session.Self.ID, err)
		return
	}

	client := chat.NewWebSocketClient(conn, h.Registry, session, h.Storage)

	userID := session.Self.ID
	client.SetOnClose(func() {
		if err := h.Storage.MarkOffline(userID); err != nil {
			log.Printf("WARNING: failed to clear presence for user %d: %v", userID, err)
		}
	})

	h.Registry.Join(session.RoomKey(), client)
	if err := h.Storage.MarkOnline(userID); err != nil {
		log.Printf("WARNING: failed to mark user %d online: %v", userID, err)
	}

	client.Run()
}
