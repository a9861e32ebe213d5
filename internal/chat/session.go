package chat

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"gosocial/backend/internal/models"
)

// Verifier authenticates a raw bearer credential.
type Verifier interface {
	Authenticate(credential string) (*models.User, error)
}

// UserDirectory resolves chat peers by username.
type UserDirectory interface {
	FindUserByUsername(username string) (*models.User, error)
}

// RoomResolver finds or lazily creates the room shared by two users.
type RoomResolver interface {
	ResolveRoom(userA, userB uint) (*models.Room, error)
}

// Session binds one authenticated connection to a peer and their shared room.
// It is immutable once built; the room key is derived exactly once and reused
// for every join, leave and broadcast of the connection.
type Session struct {
	Self *models.User
	Peer *models.User
	Room *models.Room

	roomKey string
}

// NewSession runs the connection handshake in order: verify the credential,
// resolve the peer, then find or create the shared room. It fails with
// ErrUnauthenticated before anything else is looked at, and with
// ErrPeerNotFound for unknown peers and for attempts to chat with oneself.
func NewSession(verifier Verifier, users UserDirectory, rooms RoomResolver, credential, peerUsername string) (*Session, error) {
	self, err := verifier.Authenticate(credential)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}

	peer, err := users.FindUserByUsername(peerUsername)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPeerNotFound
		}
		return nil, err
	}
	if peer.ID == self.ID {
		return nil, ErrPeerNotFound
	}

	room, err := rooms.ResolveRoom(self.ID, peer.ID)
	if err != nil {
		return nil, err
	}

	return &Session{
		Self:    self,
		Peer:    peer,
		Room:    room,
		roomKey: room.Key(),
	}, nil
}

// RoomKey returns the registry key of the session's room.
func (s *Session) RoomKey() string {
	return s.roomKey
}
