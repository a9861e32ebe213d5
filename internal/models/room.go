package models

import (
	"strconv"
	"time"
)

// Room is the persistent conversation container for exactly one unordered
// pair of users. Participants are fixed at creation and UserAID always holds
// the lower id, so the composite unique index rules out a second room for the
// same pair in either order.
type Room struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserAID   uint      `gorm:"not null;uniqueIndex:idx_room_pair" json:"user_a_id"`
	UserBID   uint      `gorm:"not null;uniqueIndex:idx_room_pair" json:"user_b_id"`
	CreatedAt time.Time `json:"created"`
}

// Key returns the stable identifier under which live connections for this
// room are registered.
func (r *Room) Key() string {
	return "room:" + strconv.FormatUint(uint64(r.ID), 10)
}
