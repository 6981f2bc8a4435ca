package state

import (
	"context"

	"github.com/earnbuddy/backend/internal/models"
	"github.com/earnbuddy/backend/internal/services"
)

// PodsState tracks the full pod list.
type PodsState struct {
	container[models.Pod]
	svc services.PodService
}

func NewPodsState(svc services.PodService) *PodsState {
	return &PodsState{svc: svc}
}

func (s *PodsState) Load(ctx context.Context) {
	s.load(ctx, s.svc.GetPods)
}

func (s *PodsState) CreatePod(ctx context.Context, req *models.CreatePodRequest) {
	s.mutate(ctx, func(ctx context.Context) error {
		_, err := s.svc.CreatePod(ctx, req)
		return err
	}, s.svc.GetPods)
}

func (s *PodsState) JoinPod(ctx context.Context, podID, userID string) {
	s.mutate(ctx, func(ctx context.Context) error {
		return s.svc.JoinPod(ctx, podID, userID)
	}, s.svc.GetPods)
}

func (s *PodsState) LeavePod(ctx context.Context, podID, userID string) {
	s.mutate(ctx, func(ctx context.Context) error {
		return s.svc.LeavePod(ctx, podID, userID)
	}, s.svc.GetPods)
}
