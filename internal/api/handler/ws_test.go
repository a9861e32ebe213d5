package handler_test

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gosocial/backend/internal/models"
)

// dialChat opens a channel to the named peer, authenticating with the cookie
// credential. The caller owns the returned connection.
func (env *testEnv) dialChat(t *testing.T, token, peer string) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	url := "ws" + strings.TrimPrefix(env.Server.URL, "http") + "/chat/ws/" + peer
	header := http.Header{}
	if token != "" {
		header.Set("Cookie", "jwt-token="+token)
	}
	conn, resp, err := websocket.DefaultDialer.Dial(url, header)
	if conn != nil {
		t.Cleanup(func() { conn.Close() })
	}
	return conn, resp, err
}

func readDelivery(t *testing.T, conn *websocket.Conn) models.Delivery {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var d models.Delivery
	require.NoError(t, conn.ReadJSON(&d))
	return d
}

func TestChatWebSocket_EndToEnd(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")

	aliceConn, _, err := env.dialChat(t, env.tokenFor(t, alice), "bob")
	require.NoError(t, err)
	bobConn, _, err := env.dialChat(t, env.tokenFor(t, bob), "alice")
	require.NoError(t, err)

	// Both handshakes resolve the same room regardless of who dialed whom.
	room, err := env.Store.ResolveRoom(alice.ID, bob.ID)
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		return env.Registry.RoomSize(room.Key()) == 2
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, aliceConn.WriteMessage(websocket.TextMessage, []byte("hi")))

	// The sender's own channel echoes the frame tagged self, the peer's
	// channel gets it tagged peer.
	got := readDelivery(t, aliceConn)
	assert.Equal(t, models.Delivery{Origin: models.OriginSelf, Body: "hi"}, got)
	got = readDelivery(t, bobConn)
	assert.Equal(t, models.Delivery{Origin: models.OriginPeer, Body: "hi"}, got)

	// Persistence happened before any delivery, so the row is visible now.
	messages, err := env.Store.RoomMessages(room.ID)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, alice.ID, messages[0].SenderID)
	assert.Equal(t, bob.ID, messages[0].RecipientID)
	assert.Equal(t, "hi", messages[0].Body)

	// Closing one channel leaves the other registered.
	require.NoError(t, aliceConn.Close())
	require.Eventually(t, func() bool {
		return env.Registry.RoomSize(room.Key()) == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestChatWebSocket_SecondSenderChannel(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	aliceToken := env.tokenFor(t, alice)

	// Alice opens the same conversation from two devices.
	first, _, err := env.dialChat(t, aliceToken, "bob")
	require.NoError(t, err)
	second, _, err := env.dialChat(t, aliceToken, "bob")
	require.NoError(t, err)

	room, err := env.Store.ResolveRoom(alice.ID, bob.ID)
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		return env.Registry.RoomSize(room.Key()) == 2
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, first.WriteMessage(websocket.TextMessage, []byte("hello")))

	// Origin is per channel, not per user: only the sending channel sees self.
	assert.Equal(t, models.OriginSelf, readDelivery(t, first).Origin)
	assert.Equal(t, models.OriginPeer, readDelivery(t, second).Origin)
}

func TestChatWebSocket_HandshakeRejections(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice")
	env.createUser(t, "bob")
	aliceToken := env.tokenFor(t, alice)

	tests := []struct {
		name       string
		token      string
		peer       string
		wantStatus int
	}{
		{"missing cookie", "", "bob", http.StatusForbidden},
		{"invalid token", "not-a-token", "bob", http.StatusUnauthorized},
		{"unknown peer", aliceToken, "nobody", http.StatusNotFound},
		{"self as peer", aliceToken, "alice", http.StatusNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			conn, resp, err := env.dialChat(t, tc.token, tc.peer)
			require.Error(t, err)
			require.Nil(t, conn)
			require.NotNil(t, resp)
			assert.Equal(t, tc.wantStatus, resp.StatusCode)
		})
	}

	// Rejected handshakes leave no room behind.
	var count int64
	require.NoError(t, env.Store.DB.Model(&models.Room{}).Count(&count).Error)
	assert.Zero(t, count)
}
