package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/earnbuddy/backend/internal/models"
)

func newTestStore(t *testing.T) *MemoryStore {
	t.Helper()
	store, err := NewMemoryStore("", zap.NewNop())
	require.NoError(t, err)
	return store
}

func mustCreateProfile(t *testing.T, store *MemoryStore, uid, displayName string, skills []string) *models.UserProfile {
	t.Helper()
	svc := NewMemoryProfileService(store)
	profile := &models.UserProfile{
		UID:         uid,
		Email:       uid + "@example.com",
		DisplayName: displayName,
		Skills:      skills,
	}
	require.NoError(t, svc.CreateUserProfile(context.Background(), profile))
	return profile
}
