package models

import (
	"time"

	"github.com/lib/pq"
)

// Profile extends a user with optional personal details. It is created lazily
// on the first self-view, so a missing row is not an error for the owner.
type Profile struct {
	ID                    uint           `gorm:"primaryKey" json:"profile_id"`
	UserID                uint           `gorm:"not null;uniqueIndex" json:"user_id"`
	User                  *User          `json:"-"`
	DateOfBirth           *time.Time     `json:"date_of_birth,omitempty"`
	Photography           string         `json:"photography,omitempty"`
	CityOfBirth           string         `gorm:"size:150" json:"city_of_birth,omitempty"`
	CityOfResidence       string         `gorm:"size:150" json:"city_of_residence,omitempty"`
	FamilyStatus          string         `gorm:"size:150" json:"family_status,omitempty"`
	Interests             pq.StringArray `gorm:"type:text[]" json:"interests,omitempty"`
	AdditionalInformation string         `gorm:"type:text" json:"additional_information,omitempty"`
}
