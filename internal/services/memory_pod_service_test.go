package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/earnbuddy/backend/internal/models"
)

func TestJoinPod_MembershipSymmetry(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	pods := NewMemoryPodService(store)
	profiles := NewMemoryProfileService(store)

	mustCreateProfile(t, store, "ada-uid", "Ada", nil)

	pod, err := pods.CreatePod(ctx, &models.CreatePodRequest{Name: "AI Builders", Slug: "ai-builders"})
	require.NoError(t, err)
	assert.Equal(t, 0, pod.MemberCount)

	require.NoError(t, pods.JoinPod(ctx, pod.ID, "ada-uid"))

	got, err := pods.GetPod(ctx, pod.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"ada-uid"}, got.Members)
	assert.Equal(t, 1, got.MemberCount)
	assert.Len(t, got.Members, got.MemberCount)

	profile, err := profiles.GetUserProfile(ctx, "ada-uid")
	require.NoError(t, err)
	assert.Contains(t, profile.JoinedPods, pod.ID)

	require.NoError(t, pods.LeavePod(ctx, pod.ID, "ada-uid"))

	got, err = pods.GetPod(ctx, pod.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Members)
	assert.Equal(t, 0, got.MemberCount)

	profile, err = profiles.GetUserProfile(ctx, "ada-uid")
	require.NoError(t, err)
	assert.NotContains(t, profile.JoinedPods, pod.ID)
}

func TestJoinPod_RepeatJoinDoesNotDriftCount(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	pods := NewMemoryPodService(store)

	pod, err := pods.CreatePod(ctx, &models.CreatePodRequest{Name: "Web3 Pioneers", Slug: "web3-pioneers"})
	require.NoError(t, err)

	require.NoError(t, pods.JoinPod(ctx, pod.ID, "u1"))
	require.NoError(t, pods.JoinPod(ctx, pod.ID, "u1"))

	got, err := pods.GetPod(ctx, pod.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, got.Members)
	assert.Equal(t, 1, got.MemberCount)
}

func TestLeavePod_NonMemberIsNoop(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	pods := NewMemoryPodService(store)

	pod, err := pods.CreatePod(ctx, &models.CreatePodRequest{Name: "Climate Tech", Slug: "climate-tech"})
	require.NoError(t, err)
	require.NoError(t, pods.JoinPod(ctx, pod.ID, "u1"))

	require.NoError(t, pods.LeavePod(ctx, pod.ID, "stranger"))

	got, err := pods.GetPod(ctx, pod.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.MemberCount)
}

func TestJoinPod_NotFound(t *testing.T) {
	store := newTestStore(t)
	pods := NewMemoryPodService(store)

	err := pods.JoinPod(context.Background(), "missing", "u1")
	assert.ErrorIs(t, err, ErrPodNotFound)
}

func TestGetPod_NotFound(t *testing.T) {
	store := newTestStore(t)
	pods := NewMemoryPodService(store)

	_, err := pods.GetPod(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrPodNotFound)
}
