package storage

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"gosocial/backend/internal/models"
)

// CreatePost inserts a new post.
func (s *Service) CreatePost(post *models.Post) error {
	return s.DB.Create(post).Error
}

// SavePost persists updated post fields.
func (s *Service) SavePost(post *models.Post) error {
	return s.DB.Save(post).Error
}

// DeletePost removes the post.
func (s *Service) DeletePost(post *models.Post) error {
	return s.DB.Delete(post).Error
}

// PostByID loads one post scoped to its owner, so users cannot read or edit
// someone else's post through the owner endpoints.
func (s *Service) PostByID(id, userID uint) (*models.Post, error) {
	var post models.Post
	if err := s.DB.Where("id = ? AND user_id = ?", id, userID).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// PostsByUser returns the user's own posts, newest last.
func (s *Service) PostsByUser(userID uint) ([]models.Post, error) {
	var posts []models.Post
	err := s.DB.Where("user_id = ?", userID).Order("created_at asc").Find(&posts).Error
	if err != nil {
		log.Printf("ERROR: failed to load posts for user %d: %v", userID, err)
		return nil, err
	}
	return posts, nil
}

// AllPosts returns the public feed with the author preloaded. An unknown
// filter username yields an empty feed rather than an error, matching the
// page behavior. sortCreated accepts "ascending" or "descending".
func (s *Service) AllPosts(filterUsername, sortCreated string) ([]models.Post, error) {
	query := s.DB.Model(&models.Post{}).Preload("User")

	if filterUsername != "" {
		author, err := s.FindUserByUsername(filterUsername)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return []models.Post{}, nil
			}
			return nil, err
		}
		query = query.Where("user_id = ?", author.ID)
	}

	switch sortCreated {
	case "descending":
		query = query.Order("created_at desc")
	case "ascending":
		query = query.Order("created_at asc")
	}

	var posts []models.Post
	if err := query.Find(&posts).Error; err != nil {
		log.Printf("ERROR: failed to load post feed: %v", err)
		return nil, err
	}
	return posts, nil
}

// CreateProfile inserts the empty profile row for a user and returns it.
func (s *Service) CreateProfile(userID uint) (*models.Profile, error) {
	profile := models.Profile{UserID: userID}
	if err := s.DB.Create(&profile).Error; err != nil {
		return nil, err
	}
	return s.ProfileByUserID(userID)
}

// SaveProfile persists updated profile fields.
func (s *Service) SaveProfile(profile *models.Profile) error {
	return s.DB.Save(profile).Error
}

// ProfileByUserID loads a profile with its user preloaded.
func (s *Service) ProfileByUserID(userID uint) (*models.Profile, error) {
	var profile models.Profile
	if err := s.DB.Preload("User").Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// Profiles returns every profile with its user preloaded.
func (s *Service) Profiles() ([]models.Profile, error) {
	var profiles []models.Profile
	if err := s.DB.Preload("User").Find(&profiles).Error; err != nil {
		log.Printf("ERROR: failed to load profiles: %v", err)
		return nil, err
	}
	return profiles, nil
}

// Stats reports table counts for the admin CLI.
func (s *Service) Stats() (users, rooms, messages int64, err error) {
	if err = s.DB.Model(&models.User{}).Count(&users).Error; err != nil {
		return
	}
	if err = s.DB.Model(&models.Room{}).Count(&rooms).Error; err != nil {
		return
	}
	err = s.DB.Model(&models.Message{}).Count(&messages).Error
	return
}
