package chat_test

import (
	"github.com/stretchr/testify/mock"

	"gosocial/backend/internal/chat"
	"gosocial/backend/internal/models"
)

// mockClient is a plain test double for the chat.Client interface with a
// buffered receive channel standing in for the write pump.
type mockClient struct {
	userID  uint
	roomKey string
	Recv    chan models.Delivery
	closed  int
}

var _ chat.Client = (*mockClient)(nil)

func newMockClient(userID uint, roomKey string, buffer int) *mockClient {
	return &mockClient{
		userID:  userID,
		roomKey: roomKey,
		Recv:    make(chan models.Delivery, buffer),
	}
}

func (c *mockClient) GetUserID() uint                           { return c.userID }
func (c *mockClient) GetRoomKey() string                        { return c.roomKey }
func (c *mockClient) GetSendChannel() chan<- models.Delivery    { return c.Recv }
func (c *mockClient) Run()                                      {}
func (c *mockClient) Close()                                    { c.closed++ }

// drain empties the receive channel and returns everything delivered so far.
func (c *mockClient) drain() []models.Delivery {
	var events []models.Delivery
	for {
		select {
		case ev := <-c.Recv:
			events = append(events, ev)
		default:
			return events
		}
	}
}

// MockVerifier is a testify double for the chat.Verifier interface.
type MockVerifier struct {
	mock.Mock
}

var _ chat.Verifier = (*MockVerifier)(nil)

func (m *MockVerifier) Authenticate(credential string) (*models.User, error) {
	args := m.Called(credential)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockDirectory is a testify double for the chat.UserDirectory interface.
type MockDirectory struct {
	mock.Mock
}

var _ chat.UserDirectory = (*MockDirectory)(nil)

func (m *MockDirectory) FindUserByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockRooms is a testify double for the chat.RoomResolver interface.
type MockRooms struct {
	mock.Mock
}

var _ chat.RoomResolver = (*MockRooms)(nil)

func (m *MockRooms) ResolveRoom(userA, userB uint) (*models.Room, error) {
	args := m.Called(userA, userB)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Room), args.Error(1)
}
