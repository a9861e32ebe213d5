package models

import "time"

// Message is one append-only chat entry owned by its room.
type Message struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	SenderID    uint      `gorm:"not null;index" json:"sender_id"`
	RecipientID uint      `gorm:"not null" json:"recipient_id"`
	RoomID      uint      `gorm:"not null;index" json:"room_id"`
	Body        string    `gorm:"type:text;not null" json:"body"`
	CreatedAt   time.Time `json:"created"`
}
