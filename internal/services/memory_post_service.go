package services

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/earnbuddy/backend/internal/models"
)

type MemoryPostService struct {
	store *MemoryStore
}

func NewMemoryPostService(store *MemoryStore) *MemoryPostService {
	return &MemoryPostService{store: store}
}

func clonePost(p *models.Post) *models.Post {
	out := *p
	out.Likes = copyStrings(p.Likes)
	out.Replies = copyStrings(p.Replies)
	out.Bookmarks = copyStrings(p.Bookmarks)
	return &out
}

func (s *MemoryPostService) CreatePost(ctx context.Context, req *models.CreatePostRequest) (*models.Post, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	now := time.Now().UTC()
	post := &models.Post{
		ID:        uuid.New().String(),
		PodID:     req.PodID,
		UserID:    req.UserID,
		Content:   req.Content,
		ImageURL:  req.ImageURL,
		Likes:     []string{},
		Replies:   []string{},
		Bookmarks: []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.store.data.Posts[post.ID] = post
	s.store.persist()
	return clonePost(post), nil
}

func (s *MemoryPostService) GetPodPosts(ctx context.Context, podID string) ([]models.Post, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	out := make([]models.Post, 0)
	for _, post := range s.store.data.Posts {
		if post.PodID == podID {
			out = append(out, *clonePost(post))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *MemoryPostService) LikePost(ctx context.Context, postID, userID string) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	post, ok := s.store.data.Posts[postID]
	if !ok {
		return ErrPostNotFound
	}
	if !containsString(post.Likes, userID) {
		post.Likes = append(post.Likes, userID)
	}

	s.store.persist()
	return nil
}

func (s *MemoryPostService) UnlikePost(ctx context.Context, postID, userID string) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	post, ok := s.store.data.Posts[postID]
	if !ok {
		return ErrPostNotFound
	}
	post.Likes = removeString(post.Likes, userID)

	s.store.persist()
	return nil
}

func (s *MemoryPostService) BookmarkPost(ctx context.Context, postID, userID string) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	post, ok := s.store.data.Posts[postID]
	if !ok {
		return ErrPostNotFound
	}
	if !containsString(post.Bookmarks, userID) {
		post.Bookmarks = append(post.Bookmarks, userID)
	}

	s.store.persist()
	return nil
}

func (s *MemoryPostService) CreateReply(ctx context.Context, postID, userID, content string) (*models.Reply, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	post, ok := s.store.data.Posts[postID]
	if !ok {
		return nil, ErrPostNotFound
	}

	reply := &models.Reply{
		ID:        uuid.New().String(),
		PostID:    postID,
		UserID:    userID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}

	s.store.data.Replies[reply.ID] = reply
	post.Replies = append(post.Replies, reply.ID)
	post.UpdatedAt = reply.CreatedAt

	s.store.persist()
	replyCopy := *reply
	return &replyCopy, nil
}

func (s *MemoryPostService) GetPostReplies(ctx context.Context, postID string) ([]models.Reply, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	out := make([]models.Reply, 0)
	for _, reply := range s.store.data.Replies {
		if reply.PostID == postID {
			out = append(out, *reply)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
