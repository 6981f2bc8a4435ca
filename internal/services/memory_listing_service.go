package services

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/earnbuddy/backend/internal/models"
)

// Local-backend implementations of StartupService and GigService. The two
// mirror each other the same way the Mongo pair does.

type MemoryStartupService struct {
	store *MemoryStore
}

func NewMemoryStartupService(store *MemoryStore) *MemoryStartupService {
	return &MemoryStartupService{store: store}
}

type MemoryGigService struct {
	store *MemoryStore
}

func NewMemoryGigService(store *MemoryStore) *MemoryGigService {
	return &MemoryGigService{store: store}
}

func cloneApplications(apps []models.Application) []models.Application {
	out := make([]models.Application, len(apps))
	for i, a := range apps {
		out[i] = a
		if a.UserProfile != nil {
			snap := *a.UserProfile
			snap.Skills = copyStrings(a.UserProfile.Skills)
			out[i].UserProfile = &snap
		}
	}
	return out
}

func cloneStartup(st *models.Startup) *models.Startup {
	out := *st
	out.Applicants = cloneApplications(st.Applicants)
	out.Requirements = copyStrings(st.Requirements)
	return &out
}

func cloneGig(g *models.FreelanceGig) *models.FreelanceGig {
	out := *g
	out.Applicants = cloneApplications(g.Applicants)
	out.Tags = copyStrings(g.Tags)
	out.Requirements = copyStrings(g.Requirements)
	return &out
}

// buildApplication freezes the applicant's current profile into a snapshot.
// The skills slice is copied so later profile edits cannot reach back into
// an already-submitted application.
func buildApplication(profile *models.UserProfile, app *models.ApplicationRequest, now time.Time) models.Application {
	application := models.Application{
		UserID:    profile.UID,
		AppliedAt: now,
		Status:    models.ApplicationPending,
		UserProfile: &models.ApplicantSnapshot{
			Name:              profile.DisplayName,
			Email:             profile.Email,
			Avatar:            profile.PhotoURL,
			Skills:            copyStrings(profile.Skills),
			Rating:            profile.Rating,
			CompletedProjects: profile.CompletedProjects,
		},
	}
	if app != nil {
		application.CoverLetter = app.CoverLetter
		application.Portfolio = app.Portfolio
	}
	return application
}

func (s *MemoryStartupService) CreateStartup(ctx context.Context, req *models.CreateStartupRequest) (*models.Startup, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	status := req.Status
	if status == "" {
		status = models.StartupActive
	}

	now := time.Now().UTC()
	startup := &models.Startup{
		ID:             uuid.New().String(),
		Name:           req.Name,
		Description:    req.Description,
		Industry:       req.Industry,
		Stage:          req.Stage,
		Location:       req.Location,
		CreatedBy:      req.CreatedBy,
		Applicants:     []models.Application{},
		ApplicantCount: 0,
		Status:         status,
		Funding:        req.Funding,
		Equity:         req.Equity,
		Requirements:   copyStrings(req.Requirements),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	s.store.data.Startups[startup.ID] = startup

	if profile, ok := s.store.data.Profiles[req.CreatedBy]; ok {
		if !containsString(profile.PostedStartups, startup.ID) {
			profile.PostedStartups = append(profile.PostedStartups, startup.ID)
		}
	}

	s.store.persist()
	return cloneStartup(startup), nil
}

func (s *MemoryStartupService) GetStartups(ctx context.Context) ([]models.Startup, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	out := make([]models.Startup, 0, len(s.store.data.Startups))
	for _, st := range s.store.data.Startups {
		out = append(out, *cloneStartup(st))
	}
	sortStartupsByCreated(out)
	return out, nil
}

func (s *MemoryStartupService) ApplyToStartup(ctx context.Context, startupID, userID string, app *models.ApplicationRequest) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	startup, ok := s.store.data.Startups[startupID]
	if !ok {
		return ErrStartupNotFound
	}
	profile, ok := s.store.data.Profiles[userID]
	if !ok {
		return ErrProfileNotFound
	}

	now := time.Now().UTC()
	startup.Applicants = append(startup.Applicants, buildApplication(profile, app, now))
	startup.ApplicantCount++
	startup.UpdatedAt = now

	profile.AppliedStartups = append(profile.AppliedStartups, models.AppliedStartup{
		StartupID: startupID,
		AppliedAt: now,
		Status:    string(models.ApplicationPending),
	})

	s.store.persist()
	return nil
}

func (s *MemoryStartupService) GetUserPostedStartups(ctx context.Context, userID string) ([]models.Startup, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	out := make([]models.Startup, 0)
	for _, st := range s.store.data.Startups {
		if st.CreatedBy == userID {
			out = append(out, *cloneStartup(st))
		}
	}
	sortStartupsByCreated(out)
	return out, nil
}

func (s *MemoryStartupService) GetBookmarkedStartups(ctx context.Context, ids []string) ([]models.Startup, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	out := make([]models.Startup, 0, len(ids))
	for _, id := range ids {
		if st, ok := s.store.data.Startups[id]; ok {
			out = append(out, *cloneStartup(st))
		}
	}
	return out, nil
}

func sortStartupsByCreated(list []models.Startup) {
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID < list[j].ID
	})
}

func (s *MemoryGigService) CreateGig(ctx context.Context, req *models.CreateGigRequest) (*models.FreelanceGig, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	status := req.Status
	if status == "" {
		status = models.GigOpen
	}

	now := time.Now().UTC()
	gig := &models.FreelanceGig{
		ID:             uuid.New().String(),
		Title:          req.Title,
		Description:    req.Description,
		Tags:           copyStrings(req.Tags),
		Budget:         req.Budget,
		Duration:       req.Duration,
		PostedBy:       req.PostedBy,
		Applicants:     []models.Application{},
		ApplicantCount: 0,
		Status:         status,
		Requirements:   copyStrings(req.Requirements),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	s.store.data.Gigs[gig.ID] = gig

	if profile, ok := s.store.data.Profiles[req.PostedBy]; ok {
		if !containsString(profile.PostedGigs, gig.ID) {
			profile.PostedGigs = append(profile.PostedGigs, gig.ID)
		}
	}

	s.store.persist()
	return cloneGig(gig), nil
}

func (s *MemoryGigService) GetGigs(ctx context.Context) ([]models.FreelanceGig, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	out := make([]models.FreelanceGig, 0, len(s.store.data.Gigs))
	for _, gig := range s.store.data.Gigs {
		out = append(out, *cloneGig(gig))
	}
	sortGigsByCreated(out)
	return out, nil
}

func (s *MemoryGigService) ApplyToGig(ctx context.Context, gigID, userID string, app *models.ApplicationRequest) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	gig, ok := s.store.data.Gigs[gigID]
	if !ok {
		return ErrGigNotFound
	}
	profile, ok := s.store.data.Profiles[userID]
	if !ok {
		return ErrProfileNotFound
	}

	now := time.Now().UTC()
	gig.Applicants = append(gig.Applicants, buildApplication(profile, app, now))
	gig.ApplicantCount++
	gig.UpdatedAt = now

	profile.AppliedGigs = append(profile.AppliedGigs, models.AppliedGig{
		GigID:     gigID,
		AppliedAt: now,
		Status:    string(models.ApplicationPending),
	})

	s.store.persist()
	return nil
}

func (s *MemoryGigService) GetUserPostedGigs(ctx context.Context, userID string) ([]models.FreelanceGig, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	out := make([]models.FreelanceGig, 0)
	for _, gig := range s.store.data.Gigs {
		if gig.PostedBy == userID {
			out = append(out, *cloneGig(gig))
		}
	}
	sortGigsByCreated(out)
	return out, nil
}

func (s *MemoryGigService) GetBookmarkedGigs(ctx context.Context, ids []string) ([]models.FreelanceGig, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	out := make([]models.FreelanceGig, 0, len(ids))
	for _, id := range ids {
		if gig, ok := s.store.data.Gigs[id]; ok {
			out = append(out, *cloneGig(gig))
		}
	}
	return out, nil
}

func sortGigsByCreated(list []models.FreelanceGig) {
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID < list[j].ID
	})
}
