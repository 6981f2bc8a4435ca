package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/earnbuddy/backend/internal/models"
	"github.com/earnbuddy/backend/internal/realtime"
)

type MongoNotificationService struct {
	db     *mongo.Database
	hub    *realtime.Hub
	logger *zap.Logger
}

func NewMongoNotificationService(ctx context.Context, db *mongo.Database, hub *realtime.Hub, logger *zap.Logger) *MongoNotificationService {
	s := &MongoNotificationService{db: db, hub: hub, logger: logger}

	if db != nil {
		_, _ = db.Collection("notifications").Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "timestamp", Value: -1}},
		})
	}

	return s
}

func (s *MongoNotificationService) notifications() (*mongo.Collection, error) {
	if s.db == nil {
		return nil, ErrStoreNotInitialized
	}
	return s.db.Collection("notifications"), nil
}

func (s *MongoNotificationService) CreateNotification(ctx context.Context, req *models.CreateNotificationRequest) (*models.Notification, error) {
	col, err := s.notifications()
	if err != nil {
		return nil, err
	}

	n := models.Notification{
		ID:        uuid.New().String(),
		UserID:    req.UserID,
		Type:      req.Type,
		Title:     req.Title,
		Message:   req.Message,
		Seen:      false,
		Timestamp: time.Now().UTC(),
		RelatedID: req.RelatedID,
	}

	if _, err := col.InsertOne(ctx, n); err != nil {
		return nil, fmt.Errorf("create notification: %w", err)
	}

	s.hub.Publish(realtime.NotifyTopic(req.UserID))
	return &n, nil
}

func (s *MongoNotificationService) GetUserNotifications(ctx context.Context, userID string) ([]models.Notification, error) {
	return s.fetch(ctx, userID, notificationFetchLimit)
}

func (s *MongoNotificationService) MarkNotificationAsRead(ctx context.Context, notificationID string) error {
	col, err := s.notifications()
	if err != nil {
		return err
	}

	var n models.Notification
	err = col.FindOneAndUpdate(ctx,
		bson.M{"_id": notificationID},
		bson.M{"$set": bson.M{"seen": true}},
	).Decode(&n)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return ErrNotificationNotFound
		}
		return fmt.Errorf("mark notification read: %w", err)
	}

	s.hub.Publish(realtime.NotifyTopic(n.UserID))
	return nil
}

func (s *MongoNotificationService) SubscribeToUserNotifications(ctx context.Context, userID string, handler func([]models.Notification)) (UnsubscribeFunc, error) {
	if s.db == nil {
		return nil, ErrStoreNotInitialized
	}
	// The live feed is capped tighter than the one-shot fetch.
	return subscribeFullList(ctx, s.hub, realtime.NotifyTopic(userID), s.logger, func(ctx context.Context) ([]models.Notification, error) {
		return s.fetch(ctx, userID, notificationSubscribeLimit)
	}, handler), nil
}

func (s *MongoNotificationService) fetch(ctx context.Context, userID string, limit int) ([]models.Notification, error) {
	col, err := s.notifications()
	if err != nil {
		return nil, err
	}

	cur, err := col.Find(ctx,
		bson.M{"user_id": userID},
		options.Find().
			SetSort(bson.D{{Key: "timestamp", Value: -1}}).
			SetLimit(int64(limit)),
	)
	if err != nil {
		return nil, fmt.Errorf("get notifications: %w", err)
	}
	defer cur.Close(ctx)

	out := make([]models.Notification, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode notifications: %w", err)
	}
	return out, nil
}
