package state

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/earnbuddy/backend/internal/models"
	"github.com/earnbuddy/backend/internal/realtime"
	"github.com/earnbuddy/backend/internal/services"
)

func newTestStore(t *testing.T) *services.MemoryStore {
	t.Helper()
	store, err := services.NewMemoryStore("", zap.NewNop())
	require.NoError(t, err)
	return store
}

func seedProfile(t *testing.T, store *services.MemoryStore, uid string) {
	t.Helper()
	profiles := services.NewMemoryProfileService(store)
	profile := &models.UserProfile{UID: uid, Email: uid + "@example.com", DisplayName: uid}
	require.NoError(t, profiles.CreateUserProfile(context.Background(), profile))
}

func TestPodsState_LoadAndJoin(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	pods := services.NewMemoryPodService(store)
	seedProfile(t, store, "ada")

	st := NewPodsState(pods)
	st.Load(ctx)
	require.NoError(t, st.Err())
	assert.False(t, st.Loading())
	assert.Empty(t, st.Data())

	st.CreatePod(ctx, &models.CreatePodRequest{Name: "AI Builders", Members: []string{"ada"}})
	require.NoError(t, st.Err())
	require.Len(t, st.Data(), 1)

	seedProfile(t, store, "bob")
	st.JoinPod(ctx, st.Data()[0].ID, "bob")
	require.NoError(t, st.Err())
	assert.Equal(t, 2, st.Data()[0].MemberCount, "founding member plus joiner")
}

func TestPodsState_MutationErrorIsCaptured(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	pods := services.NewMemoryPodService(store)

	st := NewPodsState(pods)
	st.Load(ctx)
	require.NoError(t, st.Err())

	st.JoinPod(ctx, "missing-pod", "ada")
	assert.ErrorIs(t, st.Err(), services.ErrPodNotFound)

	// A later successful mutation clears the captured error.
	seedProfile(t, store, "ada")
	st.CreatePod(ctx, &models.CreatePodRequest{Name: "Web3 Pioneers", Members: []string{"ada"}})
	assert.NoError(t, st.Err())
}

func TestNotificationsState_SubscriptionAndUnread(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := newTestStore(t)
	hub := realtime.NewHub(zap.NewNop())
	notifications := services.NewMemoryNotificationService(store, hub, zap.NewNop())

	st := NewNotificationsState(notifications, "ada")
	st.Start(ctx)
	defer st.Stop()
	require.NoError(t, st.Err())

	_, err := notifications.CreateNotification(ctx, &models.CreateNotificationRequest{
		UserID: "ada",
		Type:   models.NotificationPodActivity,
		Title:  "New post",
	})
	require.NoError(t, err)

	waitFor(t, func() bool { return st.UnreadCount() == 1 })

	list := st.Data()
	require.Len(t, list, 1)
	st.MarkAsRead(ctx, list[0].ID)
	require.NoError(t, st.Err())

	waitFor(t, func() bool { return st.UnreadCount() == 0 })
}

func TestNotificationsState_MarkAsReadErrorIsCaptured(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := newTestStore(t)
	hub := realtime.NewHub(zap.NewNop())
	notifications := services.NewMemoryNotificationService(store, hub, zap.NewNop())

	st := NewNotificationsState(notifications, "ada")
	st.Start(ctx)
	defer st.Stop()

	st.MarkAsRead(ctx, "missing")
	assert.ErrorIs(t, st.Err(), services.ErrNotificationNotFound)
}

func TestRoomMessagesState_SubscriptionUpdatesData(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := newTestStore(t)
	hub := realtime.NewHub(zap.NewNop())
	rooms := services.NewMemoryRoomService(store, hub, zap.NewNop())

	room, err := rooms.CreateRoom(ctx, &models.CreateRoomRequest{Name: "general", CreatedBy: "ada"})
	require.NoError(t, err)

	st := NewRoomMessagesState(rooms, room.ID)
	st.Start(ctx)
	defer st.Stop()
	require.NoError(t, st.Err())

	st.SendMessage(ctx, &models.SendMessageRequest{RoomID: room.ID, SenderID: "ada", Content: "hello"})
	require.NoError(t, st.Err())

	waitFor(t, func() bool { return len(st.Data()) == 1 })
	assert.Equal(t, "hello", st.Data()[0].Content)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}
