package services

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/earnbuddy/backend/internal/models"
	"github.com/earnbuddy/backend/internal/realtime"
)

type MemoryNotificationService struct {
	store  *MemoryStore
	hub    *realtime.Hub
	logger *zap.Logger
}

func NewMemoryNotificationService(store *MemoryStore, hub *realtime.Hub, logger *zap.Logger) *MemoryNotificationService {
	return &MemoryNotificationService{store: store, hub: hub, logger: logger}
}

func (s *MemoryNotificationService) CreateNotification(ctx context.Context, req *models.CreateNotificationRequest) (*models.Notification, error) {
	s.store.mu.Lock()

	n := &models.Notification{
		ID:        uuid.New().String(),
		UserID:    req.UserID,
		Type:      req.Type,
		Title:     req.Title,
		Message:   req.Message,
		Seen:      false,
		Timestamp: time.Now().UTC(),
		RelatedID: req.RelatedID,
	}
	s.store.data.Notifications[n.ID] = n
	s.store.persist()
	s.store.mu.Unlock()

	s.hub.Publish(realtime.NotifyTopic(req.UserID))

	out := *n
	return &out, nil
}

func (s *MemoryNotificationService) GetUserNotifications(ctx context.Context, userID string) ([]models.Notification, error) {
	return s.fetch(userID, notificationFetchLimit), nil
}

func (s *MemoryNotificationService) MarkNotificationAsRead(ctx context.Context, notificationID string) error {
	s.store.mu.Lock()

	n, ok := s.store.data.Notifications[notificationID]
	if !ok {
		s.store.mu.Unlock()
		return ErrNotificationNotFound
	}
	n.Seen = true
	s.store.persist()
	userID := n.UserID
	s.store.mu.Unlock()

	s.hub.Publish(realtime.NotifyTopic(userID))
	return nil
}

func (s *MemoryNotificationService) SubscribeToUserNotifications(ctx context.Context, userID string, handler func([]models.Notification)) (UnsubscribeFunc, error) {
	return subscribeFullList(ctx, s.hub, realtime.NotifyTopic(userID), s.logger, func(ctx context.Context) ([]models.Notification, error) {
		return s.fetch(userID, notificationSubscribeLimit), nil
	}, handler), nil
}

func (s *MemoryNotificationService) fetch(userID string, limit int) []models.Notification {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	out := make([]models.Notification, 0)
	for _, n := range s.store.data.Notifications {
		if n.UserID == userID {
			out = append(out, *n)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.After(out[j].Timestamp)
		}
		return out[i].ID < out[j].ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
