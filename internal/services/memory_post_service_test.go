package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/earnbuddy/backend/internal/models"
)

func newTestPost(t *testing.T, posts *MemoryPostService) *models.Post {
	t.Helper()
	post, err := posts.CreatePost(context.Background(), &models.CreatePostRequest{
		PodID:   "pod-1",
		UserID:  "author",
		Content: "hello",
	})
	require.NoError(t, err)
	return post
}

func TestLikePost_Idempotent(t *testing.T) {
	ctx := context.Background()
	posts := NewMemoryPostService(newTestStore(t))
	post := newTestPost(t, posts)

	require.NoError(t, posts.LikePost(ctx, post.ID, "u1"))
	require.NoError(t, posts.LikePost(ctx, post.ID, "u1"))

	list, err := posts.GetPodPosts(ctx, "pod-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, []string{"u1"}, list[0].Likes)
}

func TestUnlikePost_NonLikerIsNoop(t *testing.T) {
	ctx := context.Background()
	posts := NewMemoryPostService(newTestStore(t))
	post := newTestPost(t, posts)

	require.NoError(t, posts.LikePost(ctx, post.ID, "u1"))
	require.NoError(t, posts.UnlikePost(ctx, post.ID, "u2"))

	list, err := posts.GetPodPosts(ctx, "pod-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, []string{"u1"}, list[0].Likes)
}

func TestBookmarkPost_Idempotent(t *testing.T) {
	ctx := context.Background()
	posts := NewMemoryPostService(newTestStore(t))
	post := newTestPost(t, posts)

	require.NoError(t, posts.BookmarkPost(ctx, post.ID, "u1"))
	require.NoError(t, posts.BookmarkPost(ctx, post.ID, "u1"))

	list, err := posts.GetPodPosts(ctx, "pod-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, []string{"u1"}, list[0].Bookmarks)
}

func TestCreateReply_AttachesToPost(t *testing.T) {
	ctx := context.Background()
	posts := NewMemoryPostService(newTestStore(t))
	post := newTestPost(t, posts)

	reply, err := posts.CreateReply(ctx, post.ID, "u1", "nice work")
	require.NoError(t, err)
	assert.Equal(t, post.ID, reply.PostID)

	list, err := posts.GetPodPosts(ctx, "pod-1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Contains(t, list[0].Replies, reply.ID)

	replies, err := posts.GetPostReplies(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, replies, 1)
	assert.Equal(t, "nice work", replies[0].Content)
}

func TestCreateReply_PostNotFound(t *testing.T) {
	posts := NewMemoryPostService(newTestStore(t))

	_, err := posts.CreateReply(context.Background(), "missing", "u1", "hi")
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestLikePost_NotFound(t *testing.T) {
	posts := NewMemoryPostService(newTestStore(t))

	err := posts.LikePost(context.Background(), "missing", "u1")
	assert.ErrorIs(t, err, ErrPostNotFound)
}
