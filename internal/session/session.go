package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/earnbuddy/backend/internal/models"
	"github.com/earnbuddy/backend/internal/services"
)

// Session tracks the current identity and its profile document. It is an
// explicit dependency handed to whoever needs it, never a package global, so
// tests can plug in a fake provider.
//
// Lifecycle: a session starts loading; once the provider reports its first
// identity resolution (or the provider is not configured at all) loading goes
// false and stays false. An unconfigured provider leaves the session
// anonymous forever.
type Session struct {
	provider IdentityProvider
	profiles services.ProfileService
	pods     services.PodService
	seedFn   func(context.Context) error
	logger   *zap.Logger

	ctx   context.Context
	unsub func()

	mu       sync.RWMutex
	identity *Identity
	profile  *models.UserProfile
	loading  bool
	seeded   bool
}

// NewSession wires the session and subscribes it to identity changes.
// seedFn, when non-nil, is run best-effort after the first sign-in if the
// pod collection is empty; its failures are logged and suppressed.
func NewSession(ctx context.Context, provider IdentityProvider, profiles services.ProfileService, pods services.PodService, seedFn func(context.Context) error, logger *zap.Logger) *Session {
	s := &Session{
		provider: provider,
		profiles: profiles,
		pods:     pods,
		seedFn:   seedFn,
		logger:   logger,
		ctx:      ctx,
		loading:  true,
	}

	if !provider.Ready() {
		s.loading = false
		return s
	}

	s.unsub = provider.OnIdentityChanged(s.onIdentityChanged)
	// No provider event arrives until someone signs in; the anonymous state
	// is already resolved.
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
	return s
}

// Close detaches the session from the provider's event stream.
func (s *Session) Close() {
	if s.unsub != nil {
		s.unsub()
	}
}

func (s *Session) Ready() bool { return s.provider.Ready() }

func (s *Session) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Session) CurrentIdentity() *Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return nil
	}
	out := *s.identity
	return &out
}

func (s *Session) Profile() *models.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

func (s *Session) SignInWithEmail(ctx context.Context, email, password string) error {
	_, err := s.provider.SignInWithEmail(ctx, email, password)
	return err
}

func (s *Session) SignUpWithEmail(ctx context.Context, email, password, displayName string) error {
	_, err := s.provider.SignUpWithEmail(ctx, email, password, displayName)
	return err
}

func (s *Session) SignOut(ctx context.Context) error {
	return s.provider.SignOut(ctx)
}

// UpdateProfile applies the partial update and refreshes the cached profile.
func (s *Session) UpdateProfile(ctx context.Context, req *models.UpdateProfileRequest) error {
	s.mu.RLock()
	identity := s.identity
	s.mu.RUnlock()
	if identity == nil {
		return errors.New("not signed in")
	}

	updated, err := s.profiles.UpdateUserProfile(ctx, identity.UID, req)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.identity != nil && s.identity.UID == identity.UID {
		s.profile = updated
	}
	s.mu.Unlock()
	return nil
}

func (s *Session) onIdentityChanged(identity *Identity) {
	if identity == nil {
		s.mu.Lock()
		s.identity = nil
		s.profile = nil
		s.loading = false
		s.mu.Unlock()
		return
	}

	profile, err := s.resolveProfile(s.ctx, identity)
	if err != nil {
		s.logger.Error("resolving profile failed", zap.String("uid", identity.UID), zap.Error(err))
	}

	s.mu.Lock()
	s.identity = identity
	s.profile = profile
	s.loading = false
	s.mu.Unlock()

	s.seedIfNeeded(s.ctx)
}

// resolveProfile returns the identity's profile, synthesizing and persisting
// a fresh one on first sign-in. Calling it twice for the same identity never
// creates a second document.
func (s *Session) resolveProfile(ctx context.Context, identity *Identity) (*models.UserProfile, error) {
	existing, err := s.profiles.GetUserProfile(ctx, identity.UID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, services.ErrProfileNotFound) {
		return nil, err
	}

	displayName := identity.DisplayName
	if displayName == "" {
		displayName = "Anonymous User"
	}
	profile := &models.UserProfile{
		UID:           identity.UID,
		Email:         identity.Email,
		DisplayName:   displayName,
		PhotoURL:      identity.PhotoURL,
		Rating:        0,
		TotalEarnings: "$0",
	}
	if err := s.profiles.CreateUserProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("creating profile: %w", err)
	}
	return s.profiles.GetUserProfile(ctx, identity.UID)
}

// seedIfNeeded runs the sample-data seeder once per session, only when the
// pod collection is empty. Failures (permission rules, unreachable store) are
// logged and suppressed, and the once-flag is set regardless so the session
// never loops on a broken seeder.
func (s *Session) seedIfNeeded(ctx context.Context) {
	s.mu.Lock()
	if s.seeded || s.seedFn == nil {
		s.mu.Unlock()
		return
	}
	s.seeded = true
	s.mu.Unlock()

	pods, err := s.pods.GetPods(ctx)
	if err != nil {
		s.logger.Warn("could not check for existing pods, skipping seed", zap.Error(err))
		return
	}
	if len(pods) > 0 {
		return
	}
	if err := s.seedFn(ctx); err != nil {
		s.logger.Warn("seeding sample data failed", zap.Error(err))
	}
}
