package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/earnbuddy/backend/internal/models"
)

func TestCreateUserProfile_ResetsApplicationState(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	svc := NewMemoryProfileService(store)

	before := time.Now().UTC()
	profile := &models.UserProfile{
		UID:         "ada-uid",
		Email:       "a@x.com",
		DisplayName: "Ada",
		Skills:      []string{"Go"},
		AppliedGigs: []models.AppliedGig{{GigID: "stale"}},
		AppliedStartups: []models.AppliedStartup{
			{StartupID: "stale"},
		},
		BookmarkedGigs:     []string{"stale"},
		BookmarkedStartups: []string{"stale"},
	}
	require.NoError(t, svc.CreateUserProfile(ctx, profile))

	got, err := svc.GetUserProfile(ctx, "ada-uid")
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.DisplayName)
	assert.Equal(t, []string{"Go"}, got.Skills)
	assert.Empty(t, got.AppliedGigs)
	assert.Empty(t, got.AppliedStartups)
	assert.Empty(t, got.BookmarkedGigs)
	assert.Empty(t, got.BookmarkedStartups)
	assert.Zero(t, got.Rating)
	assert.False(t, got.JoinDate.Before(before), "join date is stamped at creation")
}

func TestUpdateUserProfile_PartialUpdate(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	svc := NewMemoryProfileService(store)
	mustCreateProfile(t, store, "ada-uid", "Ada", []string{"Go"})

	bio := "Building things"
	got, err := svc.UpdateUserProfile(ctx, "ada-uid", &models.UpdateProfileRequest{Bio: &bio})
	require.NoError(t, err)

	assert.Equal(t, "Building things", got.Bio)
	assert.Equal(t, "Ada", got.DisplayName, "fields left nil are untouched")
	assert.Equal(t, []string{"Go"}, got.Skills)
}

func TestUpdateUserProfile_NotFound(t *testing.T) {
	svc := NewMemoryProfileService(newTestStore(t))

	name := "Ghost"
	_, err := svc.UpdateUserProfile(context.Background(), "ghost", &models.UpdateProfileRequest{DisplayName: &name})
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestBookmarkGig_ToggleIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	svc := NewMemoryProfileService(store)
	mustCreateProfile(t, store, "ada-uid", "Ada", nil)

	require.NoError(t, svc.BookmarkGig(ctx, "gig-1", "ada-uid"))
	require.NoError(t, svc.BookmarkGig(ctx, "gig-1", "ada-uid"))

	got, err := svc.GetUserProfile(ctx, "ada-uid")
	require.NoError(t, err)
	assert.Equal(t, []string{"gig-1"}, got.BookmarkedGigs)

	require.NoError(t, svc.UnbookmarkGig(ctx, "gig-1", "ada-uid"))
	require.NoError(t, svc.UnbookmarkGig(ctx, "gig-1", "ada-uid"))

	got, err = svc.GetUserProfile(ctx, "ada-uid")
	require.NoError(t, err)
	assert.Empty(t, got.BookmarkedGigs)
}

func TestBookmarkStartup_SeparateList(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	svc := NewMemoryProfileService(store)
	mustCreateProfile(t, store, "ada-uid", "Ada", nil)

	require.NoError(t, svc.BookmarkStartup(ctx, "st-1", "ada-uid"))

	got, err := svc.GetUserProfile(ctx, "ada-uid")
	require.NoError(t, err)
	assert.Equal(t, []string{"st-1"}, got.BookmarkedStartups)
	assert.Empty(t, got.BookmarkedGigs)
}

func TestBookmarkGig_ProfileNotFound(t *testing.T) {
	svc := NewMemoryProfileService(newTestStore(t))
	err := svc.BookmarkGig(context.Background(), "gig-1", "ghost")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}
