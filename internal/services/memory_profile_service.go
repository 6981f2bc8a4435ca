package services

import (
	"context"
	"time"

	"github.com/earnbuddy/backend/internal/models"
)

type MemoryProfileService struct {
	store *MemoryStore
}

func NewMemoryProfileService(store *MemoryStore) *MemoryProfileService {
	return &MemoryProfileService{store: store}
}

func cloneProfile(p *models.UserProfile) *models.UserProfile {
	out := *p
	out.Skills = copyStrings(p.Skills)
	out.Interests = copyStrings(p.Interests)
	out.JoinedPods = copyStrings(p.JoinedPods)
	out.JoinedRooms = copyStrings(p.JoinedRooms)
	out.PostedStartups = copyStrings(p.PostedStartups)
	out.PostedGigs = copyStrings(p.PostedGigs)
	out.AppliedGigs = append([]models.AppliedGig{}, p.AppliedGigs...)
	out.AppliedStartups = append([]models.AppliedStartup{}, p.AppliedStartups...)
	out.BookmarkedGigs = copyStrings(p.BookmarkedGigs)
	out.BookmarkedStartups = copyStrings(p.BookmarkedStartups)
	out.Bookmarks = copyStrings(p.Bookmarks)
	out.ActivityLog = append([]map[string]any{}, p.ActivityLog...)
	return &out
}

func (s *MemoryProfileService) CreateUserProfile(ctx context.Context, profile *models.UserProfile) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	doc := cloneProfile(profile)
	// Application and bookmark state can never be seeded at creation time.
	doc.AppliedGigs = []models.AppliedGig{}
	doc.AppliedStartups = []models.AppliedStartup{}
	doc.BookmarkedGigs = []string{}
	doc.BookmarkedStartups = []string{}
	doc.JoinDate = time.Now().UTC()

	if doc.Skills == nil {
		doc.Skills = []string{}
	}
	if doc.Interests == nil {
		doc.Interests = []string{}
	}
	if doc.JoinedPods == nil {
		doc.JoinedPods = []string{}
	}
	if doc.JoinedRooms == nil {
		doc.JoinedRooms = []string{}
	}
	if doc.PostedStartups == nil {
		doc.PostedStartups = []string{}
	}
	if doc.PostedGigs == nil {
		doc.PostedGigs = []string{}
	}
	if doc.Bookmarks == nil {
		doc.Bookmarks = []string{}
	}
	if doc.ActivityLog == nil {
		doc.ActivityLog = []map[string]any{}
	}

	s.store.data.Profiles[doc.UID] = doc
	s.store.persist()

	*profile = *cloneProfile(doc)
	return nil
}

func (s *MemoryProfileService) GetUserProfile(ctx context.Context, uid string) (*models.UserProfile, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	profile, ok := s.store.data.Profiles[uid]
	if !ok {
		return nil, ErrProfileNotFound
	}
	return cloneProfile(profile), nil
}

func (s *MemoryProfileService) UpdateUserProfile(ctx context.Context, uid string, req *models.UpdateProfileRequest) (*models.UserProfile, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	profile, ok := s.store.data.Profiles[uid]
	if !ok {
		return nil, ErrProfileNotFound
	}

	if req.DisplayName != nil {
		profile.DisplayName = *req.DisplayName
	}
	if req.PhotoURL != nil {
		profile.PhotoURL = *req.PhotoURL
	}
	if req.Bio != nil {
		profile.Bio = *req.Bio
	}
	if req.Skills != nil {
		profile.Skills = copyStrings(*req.Skills)
	}
	if req.Interests != nil {
		profile.Interests = copyStrings(*req.Interests)
	}
	if req.Location != nil {
		profile.Location = *req.Location
	}

	s.store.persist()
	return cloneProfile(profile), nil
}

func (s *MemoryProfileService) BookmarkGig(ctx context.Context, gigID, userID string) error {
	return s.bookmark(userID, gigID, true, false)
}

func (s *MemoryProfileService) UnbookmarkGig(ctx context.Context, gigID, userID string) error {
	return s.bookmark(userID, gigID, false, false)
}

func (s *MemoryProfileService) BookmarkStartup(ctx context.Context, startupID, userID string) error {
	return s.bookmark(userID, startupID, true, true)
}

func (s *MemoryProfileService) UnbookmarkStartup(ctx context.Context, startupID, userID string) error {
	return s.bookmark(userID, startupID, false, true)
}

func (s *MemoryProfileService) bookmark(userID, id string, add, startup bool) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	profile, ok := s.store.data.Profiles[userID]
	if !ok {
		return ErrProfileNotFound
	}

	list := &profile.BookmarkedGigs
	if startup {
		list = &profile.BookmarkedStartups
	}

	if add {
		if !containsString(*list, id) {
			*list = append(*list, id)
		}
	} else {
		*list = removeString(*list, id)
	}

	s.store.persist()
	return nil
}
