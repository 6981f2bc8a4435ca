package state

import (
	"context"

	"github.com/earnbuddy/backend/internal/models"
	"github.com/earnbuddy/backend/internal/services"
)

// RoomMessagesState tracks one room's message stream. Data is kept current by
// the live subscription, so SendMessage does not refetch.
type RoomMessagesState struct {
	container[models.Message]
	svc    services.RoomService
	roomID string
	unsub  services.UnsubscribeFunc
}

func NewRoomMessagesState(svc services.RoomService, roomID string) *RoomMessagesState {
	return &RoomMessagesState{svc: svc, roomID: roomID}
}

// Start opens the subscription. The first callback delivers the current
// message list, which also clears the loading flag.
func (s *RoomMessagesState) Start(ctx context.Context) {
	s.begin()
	unsub, err := s.svc.SubscribeToRoomMessages(ctx, s.roomID, func(msgs []models.Message) {
		s.replace(msgs)
	})
	if err != nil {
		s.finish(nil, err)
		return
	}
	s.unsub = unsub
}

// Stop closes the subscription. The last delivered list remains readable.
func (s *RoomMessagesState) Stop() {
	if s.unsub != nil {
		s.unsub()
		s.unsub = nil
	}
}

func (s *RoomMessagesState) SendMessage(ctx context.Context, req *models.SendMessageRequest) {
	s.mutateOnly(ctx, func(ctx context.Context) error {
		_, err := s.svc.SendMessage(ctx, req)
		return err
	})
}
