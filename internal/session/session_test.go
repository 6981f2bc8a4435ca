package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/earnbuddy/backend/internal/models"
	"github.com/earnbuddy/backend/internal/services"
)

// unreadyProvider stands in for a Firebase provider that was never configured.
type unreadyProvider struct{}

func (unreadyProvider) Ready() bool { return false }
func (unreadyProvider) OnIdentityChanged(func(*Identity)) func() {
	return func() {}
}
func (unreadyProvider) SignInWithEmail(context.Context, string, string) (*Identity, error) {
	return nil, ErrProviderNotConfigured
}
func (unreadyProvider) SignUpWithEmail(context.Context, string, string, string) (*Identity, error) {
	return nil, ErrProviderNotConfigured
}
func (unreadyProvider) SignOut(context.Context) error { return ErrProviderNotConfigured }

type sessionFixture struct {
	session  *Session
	provider *LocalProvider
	profiles *services.MemoryProfileService
	pods     *services.MemoryPodService
}

func newSessionFixture(t *testing.T, seedFn func(context.Context) error) *sessionFixture {
	t.Helper()
	store, err := services.NewMemoryStore("", zap.NewNop())
	require.NoError(t, err)

	f := &sessionFixture{
		provider: NewLocalProvider(),
		profiles: services.NewMemoryProfileService(store),
		pods:     services.NewMemoryPodService(store),
	}
	f.session = NewSession(context.Background(), f.provider, f.profiles, f.pods, seedFn, zap.NewNop())
	t.Cleanup(f.session.Close)
	return f
}

func TestSession_FirstSignInCreatesProfile(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture(t, nil)

	assert.False(t, f.session.Loading())
	assert.Nil(t, f.session.CurrentIdentity())

	require.NoError(t, f.session.SignUpWithEmail(ctx, "ada@example.com", "hunter22", "Ada"))

	identity := f.session.CurrentIdentity()
	require.NotNil(t, identity)
	profile := f.session.Profile()
	require.NotNil(t, profile)
	assert.Equal(t, identity.UID, profile.UID)
	assert.Equal(t, "Ada", profile.DisplayName)
	assert.Equal(t, "$0", profile.TotalEarnings)
	assert.False(t, profile.JoinDate.IsZero())
}

func TestSession_SecondSignInReusesProfile(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture(t, nil)

	require.NoError(t, f.session.SignUpWithEmail(ctx, "ada@example.com", "hunter22", "Ada"))
	uid := f.session.CurrentIdentity().UID

	bio := "Building things"
	require.NoError(t, f.session.UpdateProfile(ctx, &models.UpdateProfileRequest{Bio: &bio}))

	require.NoError(t, f.session.SignOut(ctx))
	assert.Nil(t, f.session.CurrentIdentity())
	assert.Nil(t, f.session.Profile())

	require.NoError(t, f.session.SignInWithEmail(ctx, "ada@example.com", "hunter22"))

	profile := f.session.Profile()
	require.NotNil(t, profile)
	assert.Equal(t, uid, profile.UID)
	assert.Equal(t, "Building things", profile.Bio, "existing profile is reused, not recreated")
}

func TestSession_BlankDisplayNameFallsBack(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture(t, nil)

	require.NoError(t, f.session.SignUpWithEmail(ctx, "ada@example.com", "hunter22", ""))

	profile := f.session.Profile()
	require.NotNil(t, profile)
	assert.Equal(t, "Anonymous User", profile.DisplayName)
}

func TestSession_SeedRunsOncePerSession(t *testing.T) {
	ctx := context.Background()
	seeds := 0
	f := newSessionFixture(t, func(context.Context) error {
		seeds++
		return nil
	})

	require.NoError(t, f.session.SignUpWithEmail(ctx, "ada@example.com", "hunter22", "Ada"))
	assert.Equal(t, 1, seeds)

	require.NoError(t, f.session.SignOut(ctx))
	require.NoError(t, f.session.SignInWithEmail(ctx, "ada@example.com", "hunter22"))
	assert.Equal(t, 1, seeds, "the seeder never runs twice in one session")
}

func TestSession_SeedSkippedWhenPodsExist(t *testing.T) {
	ctx := context.Background()
	seeds := 0
	f := newSessionFixture(t, func(context.Context) error {
		seeds++
		return nil
	})

	_, err := f.pods.CreatePod(ctx, &models.CreatePodRequest{Name: "AI Builders"})
	require.NoError(t, err)

	require.NoError(t, f.session.SignUpWithEmail(ctx, "ada@example.com", "hunter22", "Ada"))
	assert.Zero(t, seeds)
}

func TestSession_SeedFailureIsSuppressed(t *testing.T) {
	ctx := context.Background()
	f := newSessionFixture(t, func(context.Context) error {
		return assert.AnError
	})

	require.NoError(t, f.session.SignUpWithEmail(ctx, "ada@example.com", "hunter22", "Ada"))
	require.NotNil(t, f.session.Profile(), "a broken seeder must not block sign-in")
}

func TestSession_UnreadyProviderStaysAnonymous(t *testing.T) {
	store, err := services.NewMemoryStore("", zap.NewNop())
	require.NoError(t, err)

	s := NewSession(context.Background(), unreadyProvider{}, services.NewMemoryProfileService(store), services.NewMemoryPodService(store), nil, zap.NewNop())
	defer s.Close()

	assert.False(t, s.Ready())
	assert.False(t, s.Loading())
	assert.Nil(t, s.CurrentIdentity())
	assert.Nil(t, s.Profile())
}

func TestSession_UpdateProfileRequiresSignIn(t *testing.T) {
	f := newSessionFixture(t, nil)

	bio := "nope"
	err := f.session.UpdateProfile(context.Background(), &models.UpdateProfileRequest{Bio: &bio})
	assert.Error(t, err)
}
