package chat

import "gosocial/backend/internal/models"

// Client is one live channel joined to a room. It abstracts the underlying
// transport so the registry can manage any connection type uniformly.
type Client interface {
	// GetUserID returns the id of the authenticated user behind the channel.
	GetUserID() uint
	// GetRoomKey returns the key of the room this channel is joined to. A
	// channel belongs to at most one room for its whole lifetime.
	GetRoomKey() string

	// GetSendChannel returns the channel the registry delivers outbound
	// events through. Deliveries are consumed in FIFO order by the client's
	// write pump.
	GetSendChannel() chan<- models.Delivery

	// Run starts the client's read and write pumps.
	Run()
	// Close tears the channel down. Safe to call more than once and from any
	// goroutine: disconnect handling may race with registry cleanup.
	Close()
}
