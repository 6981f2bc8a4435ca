package state

import (
	"context"

	"github.com/earnbuddy/backend/internal/models"
	"github.com/earnbuddy/backend/internal/services"
)

// NotificationsState tracks one user's notification inbox through the live
// subscription.
type NotificationsState struct {
	container[models.Notification]
	svc    services.NotificationService
	userID string
	unsub  services.UnsubscribeFunc
}

func NewNotificationsState(svc services.NotificationService, userID string) *NotificationsState {
	return &NotificationsState{svc: svc, userID: userID}
}

func (s *NotificationsState) Start(ctx context.Context) {
	s.begin()
	unsub, err := s.svc.SubscribeToUserNotifications(ctx, s.userID, func(ns []models.Notification) {
		s.replace(ns)
	})
	if err != nil {
		s.finish(nil, err)
		return
	}
	s.unsub = unsub
}

func (s *NotificationsState) Stop() {
	if s.unsub != nil {
		s.unsub()
		s.unsub = nil
	}
}

func (s *NotificationsState) MarkAsRead(ctx context.Context, notificationID string) {
	s.mutateOnly(ctx, func(ctx context.Context) error {
		return s.svc.MarkNotificationAsRead(ctx, notificationID)
	})
}

// UnreadCount is a projection over the current list, recomputed on demand and
// never stored.
func (s *NotificationsState) UnreadCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, n := range s.data {
		if !n.Seen {
			count++
		}
	}
	return count
}
