package storage

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"gosocial/backend/internal/models"
)

// normalizePair orders a room's participant ids so that the same unordered
// pair always maps to the same row.
func normalizePair(a, b uint) (uint, uint) {
	if b < a {
		return b, a
	}
	return a, b
}

// ResolveRoom returns the room shared by the two users, creating it on first
// contact. Two connections may race here before the row exists; the composite
// unique index on the normalized pair makes the loser's insert fail with
// gorm.ErrDuplicatedKey, which is answered by a re-fetch instead of an error.
func (s *Service) ResolveRoom(userA, userB uint) (*models.Room, error) {
	if userA == userB {
		return nil, ErrSelfRoom
	}
	lo, hi := normalizePair(userA, userB)

	room, err := s.roomByPair(lo, hi)
	if err == nil {
		return room, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	created := models.Room{UserAID: lo, UserBID: hi}
	if err := s.DB.Create(&created).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return s.roomByPair(lo, hi)
		}
		log.Printf("ERROR: failed to create room for users %d/%d: %v", lo, hi, err)
		return nil, err
	}
	return &created, nil
}

func (s *Service) roomByPair(lo, hi uint) (*models.Room, error) {
	var room models.Room
	if err := s.DB.Where("user_a_id = ? AND user_b_id = ?", lo, hi).First(&room).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

// AppendMessage durably stores one message in the room. The row is committed
// before the call returns, so fan-out never runs ahead of persistence.
func (s *Service) AppendMessage(room *models.Room, senderID, recipientID uint, body string) (*models.Message, error) {
	msg := models.Message{
		SenderID:    senderID,
		RecipientID: recipientID,
		RoomID:      room.ID,
		Body:        body,
	}
	if err := s.DB.Create(&msg).Error; err != nil {
		log.Printf("ERROR: failed to append message to room %d: %v", room.ID, err)
		return nil, err
	}
	return &msg, nil
}

// RoomMessages returns the room's full history in creation order, ties broken
// by id.
func (s *Service) RoomMessages(roomID uint) ([]models.Message, error) {
	var messages []models.Message
	err := s.DB.Where("room_id = ?", roomID).
		Order("created_at asc, id asc").
		Find(&messages).Error
	if err != nil {
		log.Printf("ERROR: failed to load messages for room %d: %v", roomID, err)
		return nil, err
	}
	return messages, nil
}
