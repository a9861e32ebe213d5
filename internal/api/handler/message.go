package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"gosocial/backend/internal/chat"
)

type sendMessageRequest struct {
	RecipientUserID uint   `json:"recipient_user_id" binding:"required"`
	Body            string `json:"body" binding:"required"`
}

// SendMessage appends one message to the room shared with the recipient,
// creating the room on first contact.
func (h *Handler) SendMessage(c *gin.Context) {
	user := currentUser(c)

	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"data": gin.H{"errors": []string{err.Error()}}})
		return
	}

	peer, err := h.Storage.FindUserByID(req.RecipientUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(c)
			return
		}
		serverError(c)
		return
	}
	if peer.ID == user.ID {
		notFound(c)
		return
	}

	room, err := h.Storage.ResolveRoom(user.ID, peer.ID)
	if err != nil {
		serverError(c)
		return
	}
	if _, err := h.Storage.AppendMessage(room, user.ID, peer.ID, req.Body); err != nil {
		serverError(c)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": 201, "username": peer.Username, "body": req.Body})
}

// Conversation returns the full directional history with the named peer. The
// room is created on first view, as the chat page has always done.
func (h *Handler) Conversation(c *gin.Context) {
	user := currentUser(c)

	peer, err := h.Storage.FindUserByUsername(c.Param("username"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(c)
			return
		}
		serverError(c)
		return
	}
	if peer.ID == user.ID {
		notFound(c)
		return
	}

	room, err := h.Storage.ResolveRoom(user.ID, peer.ID)
	if err != nil {
		serverError(c)
		return
	}
	messages, err := h.Storage.RoomMessages(room.ID)
	if err != nil {
		serverError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": chat.BuildConversation(peer, messages)})
}

// PeerOnline reports whether the named user currently has an open channel.
func (h *Handler) PeerOnline(c *gin.Context) {
	peer, err := h.Storage.FindUserByUsername(c.Param("username"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(c)
			return
		}
		serverError(c)
		return
	}

	online, err := h.Storage.IsOnline(peer.ID)
	if err != nil {
		serverError(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"username": peer.Username, "online": online})
}
