package storage_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"gosocial/backend/internal/models"
	"gosocial/backend/internal/storage"
)

// newTestService opens a throwaway in-memory database. TranslateError is on,
// as in production, so unique violations surface as gorm.ErrDuplicatedKey.
func newTestService(t *testing.T) *storage.Service {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Room{}, &models.Message{}))

	return storage.NewService(db, nil)
}

func TestResolveRoom_SamePairEitherOrder(t *testing.T) {
	svc := newTestService(t)

	first, err := svc.ResolveRoom(1, 2)
	require.NoError(t, err)

	second, err := svc.ResolveRoom(2, 1)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	// The stored pair is normalized: lower id first.
	assert.Equal(t, uint(1), first.UserAID)
	assert.Equal(t, uint(2), first.UserBID)

	// Repeated resolution never multiplies rooms.
	for i := 0; i < 5; i++ {
		room, err := svc.ResolveRoom(1, 2)
		require.NoError(t, err)
		assert.Equal(t, first.ID, room.ID)
	}
	var count int64
	require.NoError(t, svc.DB.Model(&models.Room{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestResolveRoom_SelfPairRejected(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.ResolveRoom(7, 7)
	require.ErrorIs(t, err, storage.ErrSelfRoom)
}

func TestResolveRoom_PairUniquenessEnforcedByIndex(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.ResolveRoom(1, 2)
	require.NoError(t, err)

	// A raw duplicate insert of the normalized pair is refused by the index,
	// which is what makes the resolve-or-create race safe.
	err = svc.DB.Create(&models.Room{UserAID: 1, UserBID: 2}).Error
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestAppendMessage_OrderAndCount(t *testing.T) {
	svc := newTestService(t)

	room, err := svc.ResolveRoom(1, 2)
	require.NoError(t, err)

	bodies := []string{"one", "two", "three", "four", "five"}
	for i, body := range bodies {
		msg, err := svc.AppendMessage(room, 1, 2, body)
		require.NoError(t, err)
		assert.NotZero(t, msg.ID)

		// The n-th read returns exactly n messages.
		messages, err := svc.RoomMessages(room.ID)
		require.NoError(t, err)
		require.Len(t, messages, i+1)
	}

	messages, err := svc.RoomMessages(room.ID)
	require.NoError(t, err)
	require.Len(t, messages, len(bodies))
	for i, msg := range messages {
		assert.Equal(t, bodies[i], msg.Body)
		if i > 0 {
			prev := messages[i-1]
			assert.False(t, msg.CreatedAt.Before(prev.CreatedAt))
			assert.Greater(t, msg.ID, prev.ID)
		}
	}
}

func TestRoomMessages_ScopedToRoom(t *testing.T) {
	svc := newTestService(t)

	roomAB, err := svc.ResolveRoom(1, 2)
	require.NoError(t, err)
	roomAC, err := svc.ResolveRoom(1, 3)
	require.NoError(t, err)

	_, err = svc.AppendMessage(roomAB, 1, 2, "for bob")
	require.NoError(t, err)
	_, err = svc.AppendMessage(roomAC, 1, 3, "for carol")
	require.NoError(t, err)

	messages, err := svc.RoomMessages(roomAB.ID)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "for bob", messages[0].Body)
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	svc := newTestService(t)

	require.NoError(t, svc.CreateUser(&models.User{
		Email:    "alice@example.com",
		Username: "alice",
		Password: "hash",
	}))

	err := svc.CreateUser(&models.User{
		Email:    "alice2@example.com",
		Username: "alice",
		Password: "hash",
	})
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestFindUser(t *testing.T) {
	svc := newTestService(t)

	require.NoError(t, svc.CreateUser(&models.User{
		Email:    "alice@example.com",
		Username: "alice",
		Password: "hash",
	}))

	byName, err := svc.FindUserByUsername("alice")
	require.NoError(t, err)

	byID, err := svc.FindUserByID(byName.ID)
	require.NoError(t, err)
	assert.Equal(t, byName.ID, byID.ID)

	_, err = svc.FindUserByUsername("ghost")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestPresence_NoRedisIsNoop(t *testing.T) {
	svc := newTestService(t)

	require.NoError(t, svc.MarkOnline(1))
	online, err := svc.IsOnline(1)
	require.NoError(t, err)
	assert.False(t, online)
	require.NoError(t, svc.MarkOffline(1))
}
