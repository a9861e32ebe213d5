package handler

import (
	"github.com/gin-gonic/gin"

	"gosocial/backend/internal/auth"
	"gosocial/backend/internal/chat"
	"gosocial/backend/internal/storage"
)

// Handler carries the shared service graph for every HTTP endpoint.
type Handler struct {
	Storage  storage.Storage
	Auth     *auth.Service
	Registry *chat.Registry
}

// New wires a handler over the storage, identity verifier and connection
// registry.
func New(s storage.Storage, a *auth.Service, r *chat.Registry) *Handler {
	return &Handler{Storage: s, Auth: a, Registry: r}
}

// RegisterRoutes mounts the full API surface on the engine.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/user/sign-up", h.SignUp)
	r.POST("/user/sign-in", h.SignIn)

	chatRoutes := r.Group("/chat")
	// The websocket endpoint authenticates through the handshake cookie, not
	// the Authorization header.
	chatRoutes.GET("/ws/:username", h.ServeChat)
	chatAuthed := chatRoutes.Group("", h.RequireAuth())
	chatAuthed.POST("/send", h.SendMessage)
	chatAuthed.GET("/get/:username", h.Conversation)
	chatAuthed.GET("/online/:username", h.PeerOnline)

	pages := r.Group("/page", h.RequireAuth())
	pages.GET("/posts", h.AllPosts)
	pages.GET("/my-posts", h.MyPosts)
	pages.GET("/my-post/:id", h.MyPost)
	pages.POST("/create-post", h.CreatePost)
	pages.PUT("/update-post/:id", h.UpdatePost)
	pages.DELETE("/delete-post/:id", h.DeletePost)

	profiles := r.Group("/profile", h.RequireAuth())
	profiles.GET("/all", h.Profiles)
	profiles.GET("/get/:user_id", h.ProfileByUser)
	profiles.GET("/self", h.SelfProfile)
	profiles.PUT("/update", h.UpdateProfile)
}
