package models

import "time"

// Post is a short text entry on a user's page, optionally with an image.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Text      string    `gorm:"size:250;not null" json:"text"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      *User     `json:"user,omitempty"`
	ImagePath string    `json:"image_path,omitempty"`
	CreatedAt time.Time `json:"created"`
}
