package models

import "time"

// Delivery origins as seen by a connected channel.
const (
	OriginSelf = "self"
	OriginPeer = "peer"
)

// Delivery is one outbound chat frame: Origin is "self" on the sender's own
// channel and "peer" on every other channel of the room.
type Delivery struct {
	Origin string `json:"origin"`
	Body   string `json:"body"`
}

// Directions of a rendered conversation entry relative to the requester.
const (
	DirectionIncoming = "incoming"
	DirectionOutgoing = "outgoing"
)

// ConversationMessage is a single entry of the conversation endpoint payload.
type ConversationMessage struct {
	Type    string    `json:"type"`
	Body    string    `json:"body"`
	Created time.Time `json:"created"`
}
