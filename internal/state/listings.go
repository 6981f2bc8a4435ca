package state

import (
	"context"

	"github.com/earnbuddy/backend/internal/models"
	"github.com/earnbuddy/backend/internal/services"
)

// StartupsState tracks the active startup listings.
type StartupsState struct {
	container[models.Startup]
	svc services.StartupService
}

func NewStartupsState(svc services.StartupService) *StartupsState {
	return &StartupsState{svc: svc}
}

func (s *StartupsState) Load(ctx context.Context) {
	s.load(ctx, s.svc.GetStartups)
}

func (s *StartupsState) CreateStartup(ctx context.Context, req *models.CreateStartupRequest) {
	s.mutate(ctx, func(ctx context.Context) error {
		_, err := s.svc.CreateStartup(ctx, req)
		return err
	}, s.svc.GetStartups)
}

func (s *StartupsState) ApplyToStartup(ctx context.Context, startupID, userID string, app *models.ApplicationRequest) {
	s.mutate(ctx, func(ctx context.Context) error {
		return s.svc.ApplyToStartup(ctx, startupID, userID, app)
	}, s.svc.GetStartups)
}

// GigsState mirrors StartupsState for freelance gigs.
type GigsState struct {
	container[models.FreelanceGig]
	svc services.GigService
}

func NewGigsState(svc services.GigService) *GigsState {
	return &GigsState{svc: svc}
}

func (s *GigsState) Load(ctx context.Context) {
	s.load(ctx, s.svc.GetGigs)
}

func (s *GigsState) CreateGig(ctx context.Context, req *models.CreateGigRequest) {
	s.mutate(ctx, func(ctx context.Context) error {
		_, err := s.svc.CreateGig(ctx, req)
		return err
	}, s.svc.GetGigs)
}

func (s *GigsState) ApplyToGig(ctx context.Context, gigID, userID string, app *models.ApplicationRequest) {
	s.mutate(ctx, func(ctx context.Context) error {
		return s.svc.ApplyToGig(ctx, gigID, userID, app)
	}, s.svc.GetGigs)
}
