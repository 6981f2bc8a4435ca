package state

import (
	"context"

	"github.com/earnbuddy/backend/internal/models"
	"github.com/earnbuddy/backend/internal/services"
)

// PodPostsState tracks the posts of one pod.
type PodPostsState struct {
	container[models.Post]
	svc   services.PostService
	podID string
}

func NewPodPostsState(svc services.PostService, podID string) *PodPostsState {
	return &PodPostsState{svc: svc, podID: podID}
}

func (s *PodPostsState) fetch(ctx context.Context) ([]models.Post, error) {
	return s.svc.GetPodPosts(ctx, s.podID)
}

func (s *PodPostsState) Load(ctx context.Context) {
	s.load(ctx, s.fetch)
}

func (s *PodPostsState) CreatePost(ctx context.Context, req *models.CreatePostRequest) {
	s.mutate(ctx, func(ctx context.Context) error {
		_, err := s.svc.CreatePost(ctx, req)
		return err
	}, s.fetch)
}

func (s *PodPostsState) LikePost(ctx context.Context, postID, userID string) {
	s.mutate(ctx, func(ctx context.Context) error {
		return s.svc.LikePost(ctx, postID, userID)
	}, s.fetch)
}

func (s *PodPostsState) UnlikePost(ctx context.Context, postID, userID string) {
	s.mutate(ctx, func(ctx context.Context) error {
		return s.svc.UnlikePost(ctx, postID, userID)
	}, s.fetch)
}

func (s *PodPostsState) BookmarkPost(ctx context.Context, postID, userID string) {
	s.mutate(ctx, func(ctx context.Context) error {
		return s.svc.BookmarkPost(ctx, postID, userID)
	}, s.fetch)
}

func (s *PodPostsState) CreateReply(ctx context.Context, postID, userID, content string) {
	s.mutate(ctx, func(ctx context.Context) error {
		_, err := s.svc.CreateReply(ctx, postID, userID, content)
		return err
	}, s.fetch)
}
