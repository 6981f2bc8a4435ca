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

type MemoryRoomService struct {
	store  *MemoryStore
	hub    *realtime.Hub
	logger *zap.Logger
}

func NewMemoryRoomService(store *MemoryStore, hub *realtime.Hub, logger *zap.Logger) *MemoryRoomService {
	return &MemoryRoomService{store: store, hub: hub, logger: logger}
}

func cloneRoom(r *models.Room) *models.Room {
	out := *r
	out.Members = copyStrings(r.Members)
	out.Messages = copyStrings(r.Messages)
	return &out
}

func cloneMessage(m *models.Message) models.Message {
	out := *m
	if m.Attachment != nil {
		att := *m.Attachment
		out.Attachment = &att
	}
	return out
}

func (s *MemoryRoomService) CreateRoom(ctx context.Context, req *models.CreateRoomRequest) (*models.Room, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	now := time.Now().UTC()
	room := &models.Room{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Description:  req.Description,
		Members:      copyStrings(req.Members),
		CreatedBy:    req.CreatedBy,
		IsPrivate:    req.IsPrivate,
		Messages:     []string{},
		CreatedAt:    now,
		LastActivity: now,
	}

	s.store.data.Rooms[room.ID] = room

	if profile, ok := s.store.data.Profiles[req.CreatedBy]; ok {
		if !containsString(profile.JoinedRooms, room.ID) {
			profile.JoinedRooms = append(profile.JoinedRooms, room.ID)
		}
	}

	s.store.persist()
	return cloneRoom(room), nil
}

func (s *MemoryRoomService) GetRooms(ctx context.Context, userID string) ([]models.Room, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	out := make([]models.Room, 0)
	for _, room := range s.store.data.Rooms {
		if containsString(room.Members, userID) {
			out = append(out, *cloneRoom(room))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].LastActivity.Equal(out[j].LastActivity) {
			return out[i].LastActivity.After(out[j].LastActivity)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *MemoryRoomService) JoinRoom(ctx context.Context, roomID, userID string) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	room, ok := s.store.data.Rooms[roomID]
	if !ok {
		return ErrRoomNotFound
	}

	if !containsString(room.Members, userID) {
		room.Members = append(room.Members, userID)
	}
	if profile, ok := s.store.data.Profiles[userID]; ok {
		if !containsString(profile.JoinedRooms, roomID) {
			profile.JoinedRooms = append(profile.JoinedRooms, roomID)
		}
	}

	s.store.persist()
	return nil
}

func (s *MemoryRoomService) SendMessage(ctx context.Context, req *models.SendMessageRequest) (*models.Message, error) {
	s.store.mu.Lock()

	room, ok := s.store.data.Rooms[req.RoomID]
	if !ok {
		s.store.mu.Unlock()
		return nil, ErrRoomNotFound
	}

	msgType := req.Type
	if msgType == "" {
		msgType = models.MessageTypeText
	}

	msg := &models.Message{
		ID:         uuid.New().String(),
		RoomID:     req.RoomID,
		SenderID:   req.SenderID,
		Content:    req.Content,
		Type:       msgType,
		Attachment: req.Attachment,
		Timestamp:  time.Now().UTC(),
	}

	s.store.data.Messages[msg.ID] = msg
	room.LastActivity = msg.Timestamp
	s.store.persist()
	s.store.mu.Unlock()

	// Publish outside the lock: subscribers refetch, which takes the read lock.
	s.hub.Publish(realtime.RoomTopic(req.RoomID))

	out := cloneMessage(msg)
	return &out, nil
}

func (s *MemoryRoomService) GetRoomMessages(ctx context.Context, roomID string) ([]models.Message, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	out := make([]models.Message, 0)
	for _, msg := range s.store.data.Messages {
		if msg.RoomID == roomID {
			out = append(out, cloneMessage(msg))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.Before(out[j].Timestamp)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *MemoryRoomService) SubscribeToRoomMessages(ctx context.Context, roomID string, handler func([]models.Message)) (UnsubscribeFunc, error) {
	return subscribeFullList(ctx, s.hub, realtime.RoomTopic(roomID), s.logger, func(ctx context.Context) ([]models.Message, error) {
		return s.GetRoomMessages(ctx, roomID)
	}, handler), nil
}
