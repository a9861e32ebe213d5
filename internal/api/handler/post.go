package handler

import (
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"gosocial/backend/internal/models"
)

// staticRoot is where uploaded post images land, served under /static.
const staticRoot = "static"

var allowedImageExt = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".svg":  true,
}

// saveUpload stores the uploaded image under the user's static directory with
// a generated name, returning the public path.
func (h *Handler) saveUpload(c *gin.Context, file *multipart.FileHeader, username string) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExt[ext] {
		return "", fmt.Errorf("file must be an image")
	}

	dir := filepath.Join(staticRoot, "user_posts", username)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, uuid.New().String()+ext)
	if err := c.SaveUploadedFile(file, path); err != nil {
		return "", err
	}
	return path, nil
}

// AllPosts returns the public feed, optionally filtered by author username
// and sorted by creation time ("ascending"/"descending").
func (h *Handler) AllPosts(c *gin.Context) {
	posts, err := h.Storage.AllPosts(c.Query("user"), c.Query("created"))
	if err != nil {
		serverError(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": 200, "data": gin.H{"posts": posts}})
}

// MyPosts returns the caller's own posts.
func (h *Handler) MyPosts(c *gin.Context) {
	posts, err := h.Storage.PostsByUser(currentUser(c).ID)
	if err != nil {
		serverError(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": 200, "data": gin.H{"posts": posts}})
}

// MyPost returns one of the caller's posts by id.
func (h *Handler) MyPost(c *gin.Context) {
	post, ok := h.ownPost(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": 200, "data": gin.H{"posts": post}})
}

// CreatePost stores a new post, with an optional image upload.
func (h *Handler) CreatePost(c *gin.Context) {
	user := currentUser(c)

	text := c.PostForm("text")
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"data": gin.H{"errors": []string{"text is required"}}})
		return
	}

	var imagePath string
	if file, err := c.FormFile("image"); err == nil {
		imagePath, err = h.saveUpload(c, file, user.Username)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"data": gin.H{"errors": []string{err.Error()}}})
			return
		}
	}

	post := &models.Post{Text: text, UserID: user.ID, ImagePath: imagePath}
	if err := h.Storage.CreatePost(post); err != nil {
		log.Printf("ERROR: failed to create post for user %d: %v", user.ID, err)
		serverError(c)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": 201, "data": gin.H{"message": "resource created successfully", "post": post}})
}

// UpdatePost replaces the text and/or image of one of the caller's posts.
// Omitted fields keep their current value.
func (h *Handler) UpdatePost(c *gin.Context) {
	user := currentUser(c)
	post, ok := h.ownPost(c)
	if !ok {
		return
	}

	if text := c.PostForm("text"); text != "" {
		post.Text = text
	}
	if file, err := c.FormFile("image"); err == nil {
		imagePath, err := h.saveUpload(c, file, user.Username)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"data": gin.H{"errors": []string{err.Error()}}})
			return
		}
		post.ImagePath = imagePath
	}

	if err := h.Storage.SavePost(post); err != nil {
		serverError(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": 204, "data": gin.H{"message": "resource updated successfully", "post": post}})
}

// DeletePost removes one of the caller's posts.
func (h *Handler) DeletePost(c *gin.Context) {
	post, ok := h.ownPost(c)
	if !ok {
		return
	}
	if err := h.Storage.DeletePost(post); err != nil {
		serverError(c)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": 202, "data": gin.H{"message": "resource deleted successfully", "post": post}})
}

// ownPost loads the post addressed by the :id param, scoped to the caller.
// On failure the response is already written and ok is false.
func (h *Handler) ownPost(c *gin.Context) (*models.Post, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		notFound(c)
		return nil, false
	}

	post, err := h.Storage.PostByID(uint(id), currentUser(c).ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			notFound(c)
		} else {
			serverError(c)
		}
		return nil, false
	}
	return post, true
}
