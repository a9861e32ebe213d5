package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"gosocial/backend/internal/models"
)

const userContextKey = "current_user"

// RequireAuth validates the Bearer token and stores the account on the gin
// context for downstream handlers.
func (h *Handler) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization token missing"})
			return
		}

		user, err := h.Auth.Authenticate(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token or expired"})
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

func currentUser(c *gin.Context) *models.User {
	user, _ := c.MustGet(userContextKey).(*models.User)
	return user
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"status": 404, "data": gin.H{"errors": "page not found"}})
}

func serverError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, gin.H{"status": 500, "data": gin.H{"errors": "server error"}})
}
