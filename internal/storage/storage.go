package storage

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"gosocial/backend/internal/models"
)

// ErrSelfRoom is returned when both sides of a room would be the same user.
var ErrSelfRoom = errors.New("storage: a room requires two distinct users")

// Storage is the persistence surface consumed by the handlers, the chat core
// and the admin CLI.
type Storage interface {
	CreateUser(user *models.User) error
	SaveUser(user *models.User) error
	FindUserByID(id uint) (*models.User, error)
	FindUserByUsername(username string) (*models.User, error)

	ResolveRoom(userA, userB uint) (*models.Room, error)
	AppendMessage(room *models.Room, senderID, recipientID uint, body string) (*models.Message, error)
	RoomMessages(roomID uint) ([]models.Message, error)

	MarkOnline(userID uint) error
	MarkOffline(userID uint) error
	IsOnline(userID uint) (bool, error)

	CreatePost(post *models.Post) error
	SavePost(post *models.Post) error
	DeletePost(post *models.Post) error
	PostByID(id, userID uint) (*models.Post, error)
	PostsByUser(userID uint) ([]models.Post, error)
	AllPosts(filterUsername, sortCreated string) ([]models.Post, error)

	CreateProfile(userID uint) (*models.Profile, error)
	SaveProfile(profile *models.Profile) error
	ProfileByUserID(userID uint) (*models.Profile, error)
	Profiles() ([]models.Profile, error)

	Stats() (users, rooms, messages int64, err error)
}

// Service implements Storage on PostgreSQL through GORM, with Redis carrying
// the ephemeral presence set. Redis may be nil for tools that only need the
// database (e.g. the admin CLI).
type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewService wires a storage service over an open database handle and an
// optional Redis client.
func NewService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}

// CreateUser inserts a new account. A duplicate username or email surfaces as
// gorm.ErrDuplicatedKey for the caller to translate.
func (s *Service) CreateUser(user *models.User) error {
	return s.DB.Create(user).Error
}

// SaveUser persists updated account fields.
func (s *Service) SaveUser(user *models.User) error {
	return s.DB.Save(user).Error
}

// FindUserByID loads an account by primary key.
func (s *Service) FindUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindUserByUsername loads an account by its unique username.
func (s *Service) FindUserByUsername(username string) (*models.User, error) {
	var user models.User
	if err := s.DB.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
