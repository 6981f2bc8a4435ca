package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/earnbuddy/backend/internal/models"
)

type MongoPostService struct {
	db     *mongo.Database
	logger *zap.Logger
}

func NewMongoPostService(ctx context.Context, db *mongo.Database, logger *zap.Logger) *MongoPostService {
	s := &MongoPostService{db: db, logger: logger}

	if db != nil {
		_, _ = db.Collection("posts").Indexes().CreateMany(ctx, []mongo.IndexModel{
			{Keys: bson.D{{Key: "pod_id", Value: 1}, {Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "user_id", Value: 1}}},
		})
		_, _ = db.Collection("replies").Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: "post_id", Value: 1}, {Key: "created_at", Value: 1}},
		})
	}

	return s
}

func (s *MongoPostService) posts() (*mongo.Collection, error) {
	if s.db == nil {
		return nil, ErrStoreNotInitialized
	}
	return s.db.Collection("posts"), nil
}

func (s *MongoPostService) replies() (*mongo.Collection, error) {
	if s.db == nil {
		return nil, ErrStoreNotInitialized
	}
	return s.db.Collection("replies"), nil
}

func (s *MongoPostService) CreatePost(ctx context.Context, req *models.CreatePostRequest) (*models.Post, error) {
	col, err := s.posts()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	post := models.Post{
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

	if _, err := col.InsertOne(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return &post, nil
}

func (s *MongoPostService) GetPodPosts(ctx context.Context, podID string) ([]models.Post, error) {
	col, err := s.posts()
	if err != nil {
		return nil, err
	}

	cur, err := col.Find(ctx,
		bson.M{"pod_id": podID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("get pod posts: %w", err)
	}
	defer cur.Close(ctx)

	posts := make([]models.Post, 0)
	if err := cur.All(ctx, &posts); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}
	return posts, nil
}

// LikePost is idempotent: $addToSet leaves the likes array untouched when the
// user already liked the post.
func (s *MongoPostService) LikePost(ctx context.Context, postID, userID string) error {
	col, err := s.posts()
	if err != nil {
		return err
	}

	res, err := col.UpdateOne(ctx,
		bson.M{"_id": postID},
		bson.M{"$addToSet": bson.M{"likes": userID}},
	)
	if err != nil {
		return fmt.Errorf("like post: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrPostNotFound
	}
	return nil
}

// UnlikePost on a non-liker is a no-op.
func (s *MongoPostService) UnlikePost(ctx context.Context, postID, userID string) error {
	col, err := s.posts()
	if err != nil {
		return err
	}

	res, err := col.UpdateOne(ctx,
		bson.M{"_id": postID},
		bson.M{"$pull": bson.M{"likes": userID}},
	)
	if err != nil {
		return fmt.Errorf("unlike post: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrPostNotFound
	}
	return nil
}

// BookmarkPost has no unbookmark counterpart; see the profile service for the
// symmetric gig/startup bookmark operations.
func (s *MongoPostService) BookmarkPost(ctx context.Context, postID, userID string) error {
	col, err := s.posts()
	if err != nil {
		return err
	}

	res, err := col.UpdateOne(ctx,
		bson.M{"_id": postID},
		bson.M{"$addToSet": bson.M{"bookmarks": userID}},
	)
	if err != nil {
		return fmt.Errorf("bookmark post: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrPostNotFound
	}
	return nil
}

// CreateReply stores the reply document and records its id on the parent
// post. The post-side write is rolled back if recording the reference fails.
func (s *MongoPostService) CreateReply(ctx context.Context, postID, userID, content string) (*models.Reply, error) {
	posts, err := s.posts()
	if err != nil {
		return nil, err
	}
	replies, err := s.replies()
	if err != nil {
		return nil, err
	}

	reply := models.Reply{
		ID:        uuid.New().String(),
		PostID:    postID,
		UserID:    userID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := replies.InsertOne(ctx, reply); err != nil {
		return nil, fmt.Errorf("create reply: %w", err)
	}

	res, err := posts.UpdateOne(ctx,
		bson.M{"_id": postID},
		bson.M{
			"$addToSet": bson.M{"replies": reply.ID},
			"$set":      bson.M{"updated_at": reply.CreatedAt},
		},
	)
	if err != nil || res.MatchedCount == 0 {
		if _, undoErr := replies.DeleteOne(ctx, bson.M{"_id": reply.ID}); undoErr != nil {
			s.logger.Error("reply rollback failed", zap.String("reply_id", reply.ID), zap.Error(undoErr))
		}
		if err != nil {
			return nil, fmt.Errorf("attach reply: %w", err)
		}
		return nil, ErrPostNotFound
	}

	return &reply, nil
}

func (s *MongoPostService) GetPostReplies(ctx context.Context, postID string) ([]models.Reply, error) {
	col, err := s.replies()
	if err != nil {
		return nil, err
	}

	cur, err := col.Find(ctx,
		bson.M{"post_id": postID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("get replies: %w", err)
	}
	defer cur.Close(ctx)

	out := make([]models.Reply, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode replies: %w", err)
	}
	return out, nil
}
