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

type MongoRoomService struct {
	db     *mongo.Database
	hub    *realtime.Hub
	logger *zap.Logger
}

func NewMongoRoomService(ctx context.Context, db *mongo.Database, hub *realtime.Hub, logger *zap.Logger) *MongoRoomService {
	s := &MongoRoomService{db: db, hub: hub, logger: logger}

	if db != nil {
		_, _ = db.Collection("rooms").Indexes().CreateMany(ctx, []mongo.IndexModel{
			{Keys: bson.D{{Key: "members", Value: 1}, {Key: "last_activity", Value: -1}}},
			{Keys: bson.D{{Key: "created_by", Value: 1}}},
		})
		_, _ = db.Collection("messages").Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: "room_id", Value: 1}, {Key: "timestamp", Value: 1}},
		})
	}

	return s
}

func (s *MongoRoomService) rooms() (*mongo.Collection, error) {
	if s.db == nil {
		return nil, ErrStoreNotInitialized
	}
	return s.db.Collection("rooms"), nil
}

func (s *MongoRoomService) messages() (*mongo.Collection, error) {
	if s.db == nil {
		return nil, ErrStoreNotInitialized
	}
	return s.db.Collection("messages"), nil
}

func (s *MongoRoomService) users() (*mongo.Collection, error) {
	if s.db == nil {
		return nil, ErrStoreNotInitialized
	}
	return s.db.Collection("users"), nil
}

// CreateRoom inserts the room and records it on the creator's joinedRooms.
// The inserted document is removed again if the profile write fails.
func (s *MongoRoomService) CreateRoom(ctx context.Context, req *models.CreateRoomRequest) (*models.Room, error) {
	rooms, err := s.rooms()
	if err != nil {
		return nil, err
	}
	users, err := s.users()
	if err != nil {
		return nil, err
	}

	members := req.Members
	if members == nil {
		members = []string{}
	}

	now := time.Now().UTC()
	room := models.Room{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Description:  req.Description,
		Members:      members,
		CreatedBy:    req.CreatedBy,
		IsPrivate:    req.IsPrivate,
		Messages:     []string{},
		CreatedAt:    now,
		LastActivity: now,
	}

	if _, err := rooms.InsertOne(ctx, room); err != nil {
		return nil, fmt.Errorf("create room: %w", err)
	}

	if _, err := users.UpdateOne(ctx,
		bson.M{"_id": req.CreatedBy},
		bson.M{"$addToSet": bson.M{"joined_rooms": room.ID}},
	); err != nil {
		if _, undoErr := rooms.DeleteOne(ctx, bson.M{"_id": room.ID}); undoErr != nil {
			s.logger.Error("create room rollback failed", zap.String("room_id", room.ID), zap.Error(undoErr))
		}
		return nil, fmt.Errorf("create room profile update: %w", err)
	}

	return &room, nil
}

func (s *MongoRoomService) GetRooms(ctx context.Context, userID string) ([]models.Room, error) {
	col, err := s.rooms()
	if err != nil {
		return nil, err
	}

	cur, err := col.Find(ctx,
		bson.M{"members": userID},
		options.Find().SetSort(bson.D{{Key: "last_activity", Value: -1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("get rooms: %w", err)
	}
	defer cur.Close(ctx)

	rooms := make([]models.Room, 0)
	if err := cur.All(ctx, &rooms); err != nil {
		return nil, fmt.Errorf("decode rooms: %w", err)
	}
	return rooms, nil
}

// JoinRoom pairs the room-side and profile-side membership writes the same
// way JoinPod does, without a member counter.
func (s *MongoRoomService) JoinRoom(ctx context.Context, roomID, userID string) error {
	rooms, err := s.rooms()
	if err != nil {
		return err
	}
	users, err := s.users()
	if err != nil {
		return err
	}

	res, err := rooms.UpdateOne(ctx,
		bson.M{"_id": roomID},
		bson.M{"$addToSet": bson.M{"members": userID}},
	)
	if err != nil {
		return fmt.Errorf("join room: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrRoomNotFound
	}

	if _, err := users.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$addToSet": bson.M{"joined_rooms": roomID}},
	); err != nil {
		if res.ModifiedCount > 0 {
			if _, undoErr := rooms.UpdateOne(ctx,
				bson.M{"_id": roomID},
				bson.M{"$pull": bson.M{"members": userID}},
			); undoErr != nil {
				s.logger.Error("join room rollback failed",
					zap.String("room_id", roomID),
					zap.String("user_id", userID),
					zap.Error(undoErr),
				)
			}
		}
		return fmt.Errorf("join room profile update: %w", err)
	}

	return nil
}

// SendMessage stores the message, bumps the room's lastActivity to the same
// server time, and wakes the room's subscribers. A failed bump is logged but
// does not unsend the message.
func (s *MongoRoomService) SendMessage(ctx context.Context, req *models.SendMessageRequest) (*models.Message, error) {
	messages, err := s.messages()
	if err != nil {
		return nil, err
	}
	rooms, err := s.rooms()
	if err != nil {
		return nil, err
	}

	msgType := req.Type
	if msgType == "" {
		msgType = models.MessageTypeText
	}

	msg := models.Message{
		ID:         uuid.New().String(),
		RoomID:     req.RoomID,
		SenderID:   req.SenderID,
		Content:    req.Content,
		Type:       msgType,
		Attachment: req.Attachment,
		Timestamp:  time.Now().UTC(),
	}

	if _, err := messages.InsertOne(ctx, msg); err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}

	if _, err := rooms.UpdateOne(ctx,
		bson.M{"_id": req.RoomID},
		bson.M{"$set": bson.M{"last_activity": msg.Timestamp}},
	); err != nil {
		s.logger.Warn("last activity bump failed",
			zap.String("room_id", req.RoomID),
			zap.Error(err),
		)
	}

	s.hub.Publish(realtime.RoomTopic(req.RoomID))
	return &msg, nil
}

func (s *MongoRoomService) GetRoomMessages(ctx context.Context, roomID string) ([]models.Message, error) {
	col, err := s.messages()
	if err != nil {
		return nil, err
	}

	cur, err := col.Find(ctx,
		bson.M{"room_id": roomID},
		options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("get room messages: %w", err)
	}
	defer cur.Close(ctx)

	msgs := make([]models.Message, 0)
	if err := cur.All(ctx, &msgs); err != nil {
		return nil, fmt.Errorf("decode messages: %w", err)
	}
	return msgs, nil
}

func (s *MongoRoomService) SubscribeToRoomMessages(ctx context.Context, roomID string, handler func([]models.Message)) (UnsubscribeFunc, error) {
	if s.db == nil {
		return nil, ErrStoreNotInitialized
	}
	return subscribeFullList(ctx, s.hub, realtime.RoomTopic(roomID), s.logger, func(ctx context.Context) ([]models.Message, error) {
		return s.GetRoomMessages(ctx, roomID)
	}, handler), nil
}
