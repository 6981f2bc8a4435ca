package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/earnbuddy/backend/internal/models"
	"github.com/earnbuddy/backend/internal/realtime"
)

func newTestRoomService(t *testing.T) (*MemoryRoomService, *MemoryStore) {
	t.Helper()
	store := newTestStore(t)
	hub := realtime.NewHub(zap.NewNop())
	return NewMemoryRoomService(store, hub, zap.NewNop()), store
}

func TestCreateRoom_AddsCreatorBackReference(t *testing.T) {
	ctx := context.Background()
	rooms, store := newTestRoomService(t)
	profiles := NewMemoryProfileService(store)
	mustCreateProfile(t, store, "creator", "Creator", nil)

	room, err := rooms.CreateRoom(ctx, &models.CreateRoomRequest{
		Name:      "React Developers",
		Members:   []string{"creator"},
		CreatedBy: "creator",
		IsPrivate: true,
	})
	require.NoError(t, err)

	profile, err := profiles.GetUserProfile(ctx, "creator")
	require.NoError(t, err)
	assert.Contains(t, profile.JoinedRooms, room.ID)
}

func TestSendMessage_OrderingAndLastActivity(t *testing.T) {
	ctx := context.Background()
	rooms, _ := newTestRoomService(t)

	room, err := rooms.CreateRoom(ctx, &models.CreateRoomRequest{
		Name:      "general",
		Members:   []string{"u1"},
		CreatedBy: "u1",
	})
	require.NoError(t, err)

	var last *models.Message
	for _, content := range []string{"first", "second", "third"} {
		last, err = rooms.SendMessage(ctx, &models.SendMessageRequest{
			RoomID:   room.ID,
			SenderID: "u1",
			Content:  content,
		})
		require.NoError(t, err)
	}

	msgs, err := rooms.GetRoomMessages(ctx, room.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	for i := 1; i < len(msgs); i++ {
		assert.False(t, msgs[i].Timestamp.Before(msgs[i-1].Timestamp), "messages must be timestamp-ascending")
	}

	// Re-reads of same-instant messages keep a stable order.
	again, err := rooms.GetRoomMessages(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, msgs, again)

	list, err := rooms.GetRooms(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, last.Timestamp, list[0].LastActivity)
}

func TestSendMessage_RoomNotFound(t *testing.T) {
	rooms, _ := newTestRoomService(t)

	_, err := rooms.SendMessage(context.Background(), &models.SendMessageRequest{
		RoomID:   "missing",
		SenderID: "u1",
		Content:  "hi",
	})
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestSendMessage_DefaultsToTextType(t *testing.T) {
	ctx := context.Background()
	rooms, _ := newTestRoomService(t)

	room, err := rooms.CreateRoom(ctx, &models.CreateRoomRequest{Name: "general", CreatedBy: "u1"})
	require.NoError(t, err)

	msg, err := rooms.SendMessage(ctx, &models.SendMessageRequest{RoomID: room.ID, SenderID: "u1", Content: "hi"})
	require.NoError(t, err)
	assert.Equal(t, models.MessageTypeText, msg.Type)
}

func TestSubscribeToRoomMessages_DeliversSnapshotThenChanges(t *testing.T) {
	ctx := context.Background()
	rooms, _ := newTestRoomService(t)

	room, err := rooms.CreateRoom(ctx, &models.CreateRoomRequest{Name: "general", CreatedBy: "u1"})
	require.NoError(t, err)

	updates := make(chan []models.Message, 8)
	unsub, err := rooms.SubscribeToRoomMessages(ctx, room.ID, func(msgs []models.Message) {
		updates <- msgs
	})
	require.NoError(t, err)
	defer unsub()

	assert.Empty(t, recvMessages(t, updates))

	_, err = rooms.SendMessage(ctx, &models.SendMessageRequest{RoomID: room.ID, SenderID: "u1", Content: "hi"})
	require.NoError(t, err)

	got := recvMessages(t, updates)
	require.Len(t, got, 1)
	assert.Equal(t, "hi", got[0].Content)
}

func TestSubscribeToRoomMessages_UnsubscribeStopsDelivery(t *testing.T) {
	ctx := context.Background()
	rooms, _ := newTestRoomService(t)

	room, err := rooms.CreateRoom(ctx, &models.CreateRoomRequest{Name: "general", CreatedBy: "u1"})
	require.NoError(t, err)

	updates := make(chan []models.Message, 8)
	unsub, err := rooms.SubscribeToRoomMessages(ctx, room.ID, func(msgs []models.Message) {
		updates <- msgs
	})
	require.NoError(t, err)

	recvMessages(t, updates)
	unsub()

	_, err = rooms.SendMessage(ctx, &models.SendMessageRequest{RoomID: room.ID, SenderID: "u1", Content: "hi"})
	require.NoError(t, err)

	select {
	case <-updates:
		t.Fatal("received delivery after unsubscribe")
	case <-time.After(100 * time.Millisecond):
	}
}

func recvMessages(t *testing.T, ch <-chan []models.Message) []models.Message {
	t.Helper()
	select {
	case msgs := <-ch:
		return msgs
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for subscription delivery")
		return nil
	}
}
