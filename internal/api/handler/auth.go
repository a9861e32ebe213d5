package handler

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"gosocial/backend/internal/auth"
	"gosocial/backend/internal/models"
)

// tokenCookieName is the cookie carrying the credential for the websocket
// handshake, where no Authorization header is available.
const tokenCookieName = "jwt-token"

type signUpRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Username  string `json:"username" binding:"required,min=3,max=150"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// SignUp registers a new account.
func (h *Handler) SignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"data": gin.H{"errors": []string{err.Error()}}})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		serverError(c)
		return
	}

	user := &models.User{
		Email:     req.Email,
		Username:  req.Username,
		Password:  hash,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	if err := h.Storage.CreateUser(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusBadRequest, gin.H{"data": gin.H{"errors": []string{"this username or email is already in use"}}})
			return
		}
		log.Printf("ERROR: failed to create user %q: %v", req.Username, err)
		serverError(c)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": 201, "data": gin.H{"messages": []string{"user successfully created"}}})
}

type signInRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SignIn verifies the password and issues a bearer token. The token is also
// mirrored into the jwt-token cookie so the websocket handshake can pick it
// up without a header.
func (h *Handler) SignIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"data": gin.H{"errors": []string{err.Error()}}})
		return
	}

	user, err := h.Storage.FindUserByUsername(req.Username)
	if err != nil || !auth.CheckPassword(req.Password, user.Password) {
		c.JSON(http.StatusBadRequest, gin.H{"data": gin.H{"errors": []string{"username or password is incorrect"}}})
		return
	}

	token, err := h.Auth.Tokens.Issue(user)
	if err != nil {
		log.Printf("ERROR: failed to issue token for user %d: %v", user.ID, err)
		serverError(c)
		return
	}

	now := time.Now()
	user.LastEntrance = &now
	if err := h.Storage.SaveUser(user); err != nil {
		log.Printf("WARNING: failed to record last entrance for user %d: %v", user.ID, err)
	}

	c.SetCookie(tokenCookieName, token, int(h.Auth.Tokens.Lifetime().Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"access_token": token, "token_type": "bearer"})
}
