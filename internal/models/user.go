package models

import "time"

// User is a registered account. Username and email are unique; Password
// holds the bcrypt hash and is never serialized.
type User struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	Email           string     `gorm:"size:254;not null;uniqueIndex" json:"email"`
	Username        string     `gorm:"size:150;not null;uniqueIndex" json:"username"`
	Password        string     `gorm:"not null" json:"-"`
	FirstName       string     `gorm:"size:150" json:"first_name,omitempty"`
	LastName        string     `gorm:"size:150" json:"last_name,omitempty"`
	Active          bool       `gorm:"default:false" json:"active"`
	IsAdministrator bool       `gorm:"default:false" json:"-"`
	CreatedAt       time.Time  `json:"created"`
	LastEntrance    *time.Time `json:"last_entrance,omitempty"`
}
