package chat

import (
	"fmt"
	"log"
	"sync"

	"gosocial/backend/internal/models"
)

// PersistFunc durably stores an inbound message before any fan-out happens.
// The gateway binds it to the store's AppendMessage with the session's peer
// as recipient.
type PersistFunc func(room *models.Room, senderID uint, body string) (*models.Message, error)

// Registry is the process-wide table of live channels per room key. It is
// shared mutable state touched by every connection goroutine and guarded by a
// single mutex; it holds nothing persistent and starts empty on every boot.
type Registry struct {
	mu    sync.Mutex
	rooms map[string]map[Client]struct{}
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{rooms: make(map[string]map[Client]struct{})}
}

// Join registers the channel under the room key. The transport handshake has
// already completed by the time a client joins.
func (r *Registry) Join(roomKey string, c Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	members := r.rooms[roomKey]
	if members == nil {
		members = make(map[Client]struct{})
		r.rooms[roomKey] = members
	}
	members[c] = struct{}{}
}

// Leave removes the channel from the room. Calling it twice, or for a channel
// that never joined, is a no-op: disconnect handling may race with explicit
// teardown and neither caller must fail.
func (r *Registry) Leave(roomKey string, c Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	members, ok := r.rooms[roomKey]
	if !ok {
		return
	}
	delete(members, c)
	if len(members) == 0 {
		delete(r.rooms, roomKey)
	}
}

// RoomSize reports how many channels are currently joined to the room key.
func (r *Registry) RoomSize(roomKey string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rooms[roomKey])
}

// Broadcast persists the message and fans it out to every channel joined to
// the room. The origin channel receives the event tagged "self", every other
// channel "peer". Nothing is emitted when persistence fails. A channel whose
// send buffer is unavailable is dropped from the room and closed without
// aborting delivery to the remaining members; there is no acknowledgement or
// retry.
func (r *Registry) Broadcast(roomKey string, origin Client, room *models.Room, senderID uint, body string, persist PersistFunc) error {
	if _, err := persist(room, senderID, body); err != nil {
		return fmt.Errorf("persist message for %s: %w", roomKey, err)
	}

	r.mu.Lock()
	members := r.rooms[roomKey]
	var failed []Client
	for member := range members {
		ev := models.Delivery{Origin: models.OriginPeer, Body: body}
		if member == origin {
			ev.Origin = models.OriginSelf
		}
		select {
		case member.GetSendChannel() <- ev:
		default:
			delete(members, member)
			failed = append(failed, member)
		}
	}
	if len(members) == 0 {
		delete(r.rooms, roomKey)
	}
	r.mu.Unlock()

	// Closing happens outside the lock; the client's own Leave then finds no
	// entry and is a no-op.
	for _, member := range failed {
		log.Printf("chat: dropping unresponsive channel of user %d from %s", member.GetUserID(), roomKey)
		member.Close()
	}
	return nil
}
