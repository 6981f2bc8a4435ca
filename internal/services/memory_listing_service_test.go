package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/earnbuddy/backend/internal/models"
)

func TestApplyToGig_ApplicantCountConsistency(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	gigs := NewMemoryGigService(store)
	profiles := NewMemoryProfileService(store)

	mustCreateProfile(t, store, "ada-uid", "Ada", []string{"Go"})
	mustCreateProfile(t, store, "bob-uid", "Bob", nil)

	gig, err := gigs.CreateGig(ctx, &models.CreateGigRequest{Title: "Frontend Dev", PostedBy: "poster"})
	require.NoError(t, err)

	require.NoError(t, gigs.ApplyToGig(ctx, gig.ID, "ada-uid", &models.ApplicationRequest{}))

	list, err := gigs.GetGigs(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 1, list[0].ApplicantCount)
	assert.Len(t, list[0].Applicants, list[0].ApplicantCount)
	assert.Equal(t, models.ApplicationPending, list[0].Applicants[0].Status)

	require.NoError(t, gigs.ApplyToGig(ctx, gig.ID, "bob-uid", nil))

	list, err = gigs.GetGigs(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, list[0].ApplicantCount)
	assert.Len(t, list[0].Applicants, 2)

	profile, err := profiles.GetUserProfile(ctx, "ada-uid")
	require.NoError(t, err)
	require.Len(t, profile.AppliedGigs, 1)
	assert.Equal(t, gig.ID, profile.AppliedGigs[0].GigID)
	assert.Equal(t, string(models.ApplicationPending), profile.AppliedGigs[0].Status)
}

func TestApplyToGig_SnapshotImmutableAfterProfileEdit(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	gigs := NewMemoryGigService(store)
	profiles := NewMemoryProfileService(store)

	mustCreateProfile(t, store, "ada-uid", "Ada", []string{"Go", "React"})

	gig, err := gigs.CreateGig(ctx, &models.CreateGigRequest{Title: "Backend Dev", PostedBy: "poster"})
	require.NoError(t, err)
	require.NoError(t, gigs.ApplyToGig(ctx, gig.ID, "ada-uid", nil))

	newSkills := []string{"Rust"}
	_, err = profiles.UpdateUserProfile(ctx, "ada-uid", &models.UpdateProfileRequest{Skills: &newSkills})
	require.NoError(t, err)

	list, err := gigs.GetGigs(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Len(t, list[0].Applicants, 1)
	snap := list[0].Applicants[0].UserProfile
	require.NotNil(t, snap)
	assert.Equal(t, []string{"Go", "React"}, snap.Skills, "snapshot keeps the skills frozen at apply time")
}

func TestApplyToGig_RequiresProfile(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	gigs := NewMemoryGigService(store)

	gig, err := gigs.CreateGig(ctx, &models.CreateGigRequest{Title: "Dev", PostedBy: "poster"})
	require.NoError(t, err)

	err = gigs.ApplyToGig(ctx, gig.ID, "ghost", nil)
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestApplyToGig_GigNotFound(t *testing.T) {
	store := newTestStore(t)
	gigs := NewMemoryGigService(store)
	mustCreateProfile(t, store, "ada-uid", "Ada", nil)

	err := gigs.ApplyToGig(context.Background(), "missing", "ada-uid", nil)
	assert.ErrorIs(t, err, ErrGigNotFound)
}

func TestGetBookmarkedGigs_SkipsMissingIDs(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	gigs := NewMemoryGigService(store)

	gig, err := gigs.CreateGig(ctx, &models.CreateGigRequest{Title: "Dev", PostedBy: "poster"})
	require.NoError(t, err)

	got, err := gigs.GetBookmarkedGigs(ctx, []string{gig.ID, "deleted-1", "deleted-2"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, gig.ID, got[0].ID)
}

func TestCreateGig_AddsPostedBackReference(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	gigs := NewMemoryGigService(store)
	profiles := NewMemoryProfileService(store)
	mustCreateProfile(t, store, "poster", "Poster", nil)

	gig, err := gigs.CreateGig(ctx, &models.CreateGigRequest{Title: "Dev", PostedBy: "poster"})
	require.NoError(t, err)

	profile, err := profiles.GetUserProfile(ctx, "poster")
	require.NoError(t, err)
	assert.Contains(t, profile.PostedGigs, gig.ID)

	posted, err := gigs.GetUserPostedGigs(ctx, "poster")
	require.NoError(t, err)
	require.Len(t, posted, 1)
	assert.Equal(t, gig.ID, posted[0].ID)
}

func TestCreateGig_DefaultsToOpenStatus(t *testing.T) {
	gigs := NewMemoryGigService(newTestStore(t))

	gig, err := gigs.CreateGig(context.Background(), &models.CreateGigRequest{Title: "Dev", PostedBy: "poster"})
	require.NoError(t, err)
	assert.Equal(t, models.GigOpen, gig.Status)
}

func TestApplyToStartup_CountAndProfileRecord(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	startups := NewMemoryStartupService(store)
	profiles := NewMemoryProfileService(store)

	mustCreateProfile(t, store, "ada-uid", "Ada", nil)

	st, err := startups.CreateStartup(ctx, &models.CreateStartupRequest{Name: "HealthTech", CreatedBy: "founder"})
	require.NoError(t, err)
	require.NoError(t, startups.ApplyToStartup(ctx, st.ID, "ada-uid", &models.ApplicationRequest{CoverLetter: "hi"}))

	list, err := startups.GetStartups(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 1, list[0].ApplicantCount)
	require.Len(t, list[0].Applicants, 1)
	assert.Equal(t, "hi", list[0].Applicants[0].CoverLetter)

	profile, err := profiles.GetUserProfile(ctx, "ada-uid")
	require.NoError(t, err)
	require.Len(t, profile.AppliedStartups, 1)
	assert.Equal(t, st.ID, profile.AppliedStartups[0].StartupID)
}

func TestCreateStartup_AddsPostedBackReference(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	startups := NewMemoryStartupService(store)
	profiles := NewMemoryProfileService(store)
	mustCreateProfile(t, store, "founder", "Founder", nil)

	st, err := startups.CreateStartup(ctx, &models.CreateStartupRequest{Name: "EcoWear", CreatedBy: "founder"})
	require.NoError(t, err)

	profile, err := profiles.GetUserProfile(ctx, "founder")
	require.NoError(t, err)
	assert.Contains(t, profile.PostedStartups, st.ID)
}

func TestGetBookmarkedStartups_SkipsMissingIDs(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	startups := NewMemoryStartupService(store)

	st, err := startups.CreateStartup(ctx, &models.CreateStartupRequest{Name: "LearnSphere", CreatedBy: "founder"})
	require.NoError(t, err)

	got, err := startups.GetBookmarkedStartups(ctx, []string{"gone", st.ID})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, st.ID, got[0].ID)
}
