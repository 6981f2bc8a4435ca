package state

import (
	"context"

	"github.com/earnbuddy/backend/internal/models"
	"github.com/earnbuddy/backend/internal/services"
)

// RoomsState tracks the rooms a user belongs to.
type RoomsState struct {
	container[models.Room]
	svc    services.RoomService
	userID string
}

func NewRoomsState(svc services.RoomService, userID string) *RoomsState {
	return &RoomsState{svc: svc, userID: userID}
}

func (s *RoomsState) fetch(ctx context.Context) ([]models.Room, error) {
	return s.svc.GetRooms(ctx, s.userID)
}

func (s *RoomsState) Load(ctx context.Context) {
	s.load(ctx, s.fetch)
}

func (s *RoomsState) CreateRoom(ctx context.Context, req *models.CreateRoomRequest) {
	s.mutate(ctx, func(ctx context.Context) error {
		_, err := s.svc.CreateRoom(ctx, req)
		return err
	}, s.fetch)
}

func (s *RoomsState) JoinRoom(ctx context.Context, roomID string) {
	s.mutate(ctx, func(ctx context.Context) error {
		return s.svc.JoinRoom(ctx, roomID, s.userID)
	}, s.fetch)
}
