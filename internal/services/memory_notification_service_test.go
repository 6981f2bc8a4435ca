package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/earnbuddy/backend/internal/models"
	"github.com/earnbuddy/backend/internal/realtime"
)

func newTestNotificationService(t *testing.T) *MemoryNotificationService {
	t.Helper()
	return NewMemoryNotificationService(newTestStore(t), realtime.NewHub(zap.NewNop()), zap.NewNop())
}

func createNotifications(t *testing.T, svc *MemoryNotificationService, userID string, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		_, err := svc.CreateNotification(context.Background(), &models.CreateNotificationRequest{
			UserID:  userID,
			Type:    models.NotificationPodActivity,
			Title:   fmt.Sprintf("update %d", i),
			Message: "something happened",
		})
		require.NoError(t, err)
	}
}

func TestCreateNotification_StartsUnseen(t *testing.T) {
	svc := newTestNotificationService(t)

	n, err := svc.CreateNotification(context.Background(), &models.CreateNotificationRequest{
		UserID:    "ada-uid",
		Type:      models.NotificationGigApplication,
		Title:     "Application sent",
		Message:   "Your application was submitted.",
		RelatedID: "gig-1",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, n.ID)
	assert.False(t, n.Seen)
	assert.Equal(t, "gig-1", n.RelatedID)
	assert.False(t, n.Timestamp.IsZero())
}

func TestGetUserNotifications_NewestFirstAndScoped(t *testing.T) {
	ctx := context.Background()
	svc := newTestNotificationService(t)

	createNotifications(t, svc, "ada-uid", 3)
	createNotifications(t, svc, "bob-uid", 1)

	got, err := svc.GetUserNotifications(ctx, "ada-uid")
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i := 1; i < len(got); i++ {
		assert.False(t, got[i-1].Timestamp.Before(got[i].Timestamp), "notifications are newest first")
	}
	for _, n := range got {
		assert.Equal(t, "ada-uid", n.UserID)
	}
}

func TestGetUserNotifications_CappedAtFifty(t *testing.T) {
	svc := newTestNotificationService(t)
	createNotifications(t, svc, "ada-uid", notificationFetchLimit+5)

	got, err := svc.GetUserNotifications(context.Background(), "ada-uid")
	require.NoError(t, err)
	assert.Len(t, got, notificationFetchLimit)
}

func TestMarkNotificationAsRead(t *testing.T) {
	ctx := context.Background()
	svc := newTestNotificationService(t)

	n, err := svc.CreateNotification(ctx, &models.CreateNotificationRequest{
		UserID: "ada-uid",
		Type:   models.NotificationStatusChange,
		Title:  "Status changed",
	})
	require.NoError(t, err)

	require.NoError(t, svc.MarkNotificationAsRead(ctx, n.ID))

	got, err := svc.GetUserNotifications(ctx, "ada-uid")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].Seen)
}

func TestMarkNotificationAsRead_NotFound(t *testing.T) {
	svc := newTestNotificationService(t)
	err := svc.MarkNotificationAsRead(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotificationNotFound)
}

func TestSubscribeToUserNotifications_DeliversAndCaps(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	svc := newTestNotificationService(t)

	createNotifications(t, svc, "ada-uid", notificationSubscribeLimit+10)

	updates := make(chan []models.Notification, 8)
	unsub, err := svc.SubscribeToUserNotifications(ctx, "ada-uid", func(list []models.Notification) {
		updates <- list
	})
	require.NoError(t, err)
	defer unsub()

	first := recvNotifications(t, updates)
	assert.Len(t, first, notificationSubscribeLimit, "live feed is capped")

	_, err = svc.CreateNotification(ctx, &models.CreateNotificationRequest{
		UserID: "ada-uid",
		Type:   models.NotificationRoomMessage,
		Title:  "New message",
	})
	require.NoError(t, err)

	deadline := time.After(2 * time.Second)
	for {
		var next []models.Notification
		select {
		case next = <-updates:
		case <-deadline:
			t.Fatal("timed out waiting for the new notification to appear")
		}
		if len(next) > 0 && next[0].Title == "New message" {
			return
		}
	}
}

func recvNotifications(t *testing.T, ch <-chan []models.Notification) []models.Notification {
	t.Helper()
	select {
	case list := <-ch:
		return list
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for notification snapshot")
		return nil
	}
}
