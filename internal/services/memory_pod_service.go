package services

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/earnbuddy/backend/internal/models"
)

// MemoryPodService is the local-backend PodService. It upholds the same
// pairing rules as the Mongo implementation but inside one lock, so partial
// updates cannot be observed.
type MemoryPodService struct {
	store *MemoryStore
}

func NewMemoryPodService(store *MemoryStore) *MemoryPodService {
	return &MemoryPodService{store: store}
}

func clonePod(p *models.Pod) *models.Pod {
	out := *p
	out.Members = copyStrings(p.Members)
	out.Posts = copyStrings(p.Posts)
	out.Events = append([]models.PodEvent(nil), p.Events...)
	out.PinnedResources = append([]models.PinnedResource(nil), p.PinnedResources...)
	return &out
}

func (s *MemoryPodService) CreatePod(ctx context.Context, req *models.CreatePodRequest) (*models.Pod, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	members := copyStrings(req.Members)
	events := append([]models.PodEvent{}, req.Events...)
	resources := append([]models.PinnedResource{}, req.PinnedResources...)

	pod := &models.Pod{
		ID:              uuid.New().String(),
		Name:            req.Name,
		Slug:            req.Slug,
		Description:     req.Description,
		Theme:           req.Theme,
		Icon:            req.Icon,
		Members:         members,
		Posts:           []string{},
		Events:          events,
		PinnedResources: resources,
		MemberCount:     len(members),
		IsActive:        req.IsActive,
		CreatedAt:       time.Now().UTC(),
	}

	s.store.data.Pods[pod.ID] = pod
	s.store.persist()
	return clonePod(pod), nil
}

func (s *MemoryPodService) GetPods(ctx context.Context) ([]models.Pod, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	out := make([]models.Pod, 0, len(s.store.data.Pods))
	for _, pod := range s.store.data.Pods {
		out = append(out, *clonePod(pod))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *MemoryPodService) GetPod(ctx context.Context, id string) (*models.Pod, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	pod, ok := s.store.data.Pods[id]
	if !ok {
		return nil, ErrPodNotFound
	}
	return clonePod(pod), nil
}

func (s *MemoryPodService) JoinPod(ctx context.Context, podID, userID string) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	pod, ok := s.store.data.Pods[podID]
	if !ok {
		return ErrPodNotFound
	}

	if !containsString(pod.Members, userID) {
		pod.Members = append(pod.Members, userID)
		pod.MemberCount++
	}

	if profile, ok := s.store.data.Profiles[userID]; ok {
		if !containsString(profile.JoinedPods, podID) {
			profile.JoinedPods = append(profile.JoinedPods, podID)
		}
	}

	s.store.persist()
	return nil
}

func (s *MemoryPodService) LeavePod(ctx context.Context, podID, userID string) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	pod, ok := s.store.data.Pods[podID]
	if !ok {
		return ErrPodNotFound
	}

	if containsString(pod.Members, userID) {
		pod.Members = removeString(pod.Members, userID)
		pod.MemberCount--
	}

	if profile, ok := s.store.data.Profiles[userID]; ok {
		profile.JoinedPods = removeString(profile.JoinedPods, podID)
	}

	s.store.persist()
	return nil
}
