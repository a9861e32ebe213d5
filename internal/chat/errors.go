package chat

import "errors"

// Connection-fatal errors of the chat core. Authentication and peer
// resolution failures close the connection attempt before any registry or
// room state exists; persistence failures stay per-message and are reported
// by Registry.Broadcast instead.
var (
	// ErrUnauthenticated means the credential was missing or failed
	// verification.
	ErrUnauthenticated = errors.New("chat: missing or invalid credential")
	// ErrPeerNotFound means the target user does not exist, or is the caller
	// themself: a user cannot open a room with themself.
	ErrPeerNotFound = errors.New("chat: peer not found")
)
