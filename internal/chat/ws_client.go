package chat

import (
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"gosocial/backend/internal/models"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBufferSize = 256
)

// MessageStore is the persistence surface the gateway binds broadcasts to.
type MessageStore interface {
	AppendMessage(room *models.Room, senderID, recipientID uint, body string) (*models.Message, error)
}

// WebSocketClient is the gorilla-backed Client for one open chat channel.
// Inbound frames are raw message bodies; outbound frames are JSON Delivery
// events.
type WebSocketClient struct {
	Conn     *websocket.Conn
	Registry *Registry
	Session  *Session
	Store    MessageStore
	Send     chan models.Delivery

	closeOnce sync.Once
	onClose   func()
}

// NewWebSocketClient builds a client for an upgraded connection. The caller
// still has to Join the registry and call Run.
func NewWebSocketClient(conn *websocket.Conn, registry *Registry, session *Session, store MessageStore) *WebSocketClient {
	return &WebSocketClient{
		Conn:     conn,
		Registry: registry,
		Session:  session,
		Store:    store,
		Send:     make(chan models.Delivery, sendBufferSize),
	}
}

// SetOnClose registers a hook that runs exactly once during teardown, after
// the registry entry is gone. The gateway uses it to clear presence.
func (c *WebSocketClient) SetOnClose(fn func()) {
	c.onClose = fn
}

func (c *WebSocketClient) GetUserID() uint { return c.Session.Self.ID }

func (c *WebSocketClient) GetRoomKey() string { return c.Session.RoomKey() }

func (c *WebSocketClient) GetSendChannel() chan<- models.Delivery { return c.Send }

// Run starts both pumps and returns immediately; the connection lives until
// the transport drops or the registry closes the client.
func (c *WebSocketClient) Run() {
	go c.writePump()
	go c.readPump()
}

// Close tears the channel down at most once: registry entry first, then the
// send channel (which stops the write pump), then the transport.
func (c *WebSocketClient) Close() {
	c.closeOnce.Do(func() {
		c.Registry.Leave(c.GetRoomKey(), c)
		close(c.Send)
		c.Conn.Close()
		if c.onClose != nil {
			c.onClose()
		}
	})
}

// persist is the session-bound PersistFunc: the recipient of everything sent
// over this channel is the other participant of the session.
func (c *WebSocketClient) persist(room *models.Room, senderID uint, body string) (*models.Message, error) {
	return c.Store.AppendMessage(room, senderID, c.Session.Peer.ID, body)
}

// readPump blocks on inbound frames and broadcasts each one. It owns the
// read side of the connection and guarantees the teardown path runs no matter
// how the loop exits.
func (c *WebSocketClient) readPump() {
	defer c.Close()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, payload, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("chat: read error for user %d: %v", c.GetUserID(), err)
			}
			return
		}

		err = c.Registry.Broadcast(c.GetRoomKey(), c, c.Session.Room, c.Session.Self.ID, string(payload), c.persist)
		if err != nil {
			// The message is lost but the channel stays open; the sender may
			// simply send again.
			log.Printf("chat: broadcast failed for user %d in %s: %v", c.GetUserID(), c.GetRoomKey(), err)
		}
	}
}

// writePump drains the send buffer into the connection in FIFO order and
// keeps the transport alive with pings.
func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case ev, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteJSON(ev); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
