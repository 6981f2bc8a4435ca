package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/earnbuddy/backend/internal/models"
)

type MongoProfileService struct {
	db     *mongo.Database
	logger *zap.Logger
}

func NewMongoProfileService(ctx context.Context, db *mongo.Database, logger *zap.Logger) *MongoProfileService {
	s := &MongoProfileService{db: db, logger: logger}

	if db != nil {
		// Best-effort indexes. Profiles are keyed by auth UID so _id already
		// enforces one-profile-per-identity.
		_, _ = db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: "email", Value: 1}},
		})
	}

	return s
}

func (s *MongoProfileService) users() (*mongo.Collection, error) {
	if s.db == nil {
		return nil, ErrStoreNotInitialized
	}
	return s.db.Collection("users"), nil
}

// CreateUserProfile persists a fresh profile document keyed by UID. Whatever
// the caller passed, applied and bookmarked lists start empty and JoinDate is
// stamped here: initial application state cannot be seeded at creation time.
func (s *MongoProfileService) CreateUserProfile(ctx context.Context, profile *models.UserProfile) error {
	col, err := s.users()
	if err != nil {
		return err
	}

	doc := *profile
	doc.AppliedGigs = []models.AppliedGig{}
	doc.AppliedStartups = []models.AppliedStartup{}
	doc.BookmarkedGigs = []string{}
	doc.BookmarkedStartups = []string{}
	doc.JoinDate = time.Now().UTC()

	if doc.Skills == nil {
		doc.Skills = []string{}
	}
	if doc.Interests == nil {
		doc.Interests = []string{}
	}
	if doc.JoinedPods == nil {
		doc.JoinedPods = []string{}
	}
	if doc.JoinedRooms == nil {
		doc.JoinedRooms = []string{}
	}
	if doc.PostedStartups == nil {
		doc.PostedStartups = []string{}
	}
	if doc.PostedGigs == nil {
		doc.PostedGigs = []string{}
	}
	if doc.Bookmarks == nil {
		doc.Bookmarks = []string{}
	}
	if doc.ActivityLog == nil {
		doc.ActivityLog = []map[string]any{}
	}

	if _, err := col.ReplaceOne(ctx,
		bson.M{"_id": doc.UID},
		doc,
		options.Replace().SetUpsert(true),
	); err != nil {
		return fmt.Errorf("create profile: %w", err)
	}

	*profile = doc
	return nil
}

func (s *MongoProfileService) GetUserProfile(ctx context.Context, uid string) (*models.UserProfile, error) {
	col, err := s.users()
	if err != nil {
		return nil, err
	}

	var profile models.UserProfile
	if err := col.FindOne(ctx, bson.M{"_id": uid}).Decode(&profile); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// UpdateUserProfile applies the non-nil fields of req and returns the fresh
// document. List fields managed by other operations are not touchable here.
func (s *MongoProfileService) UpdateUserProfile(ctx context.Context, uid string, req *models.UpdateProfileRequest) (*models.UserProfile, error) {
	col, err := s.users()
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	if req.DisplayName != nil {
		set["display_name"] = *req.DisplayName
	}
	if req.PhotoURL != nil {
		set["photo_url"] = *req.PhotoURL
	}
	if req.Bio != nil {
		set["bio"] = *req.Bio
	}
	if req.Skills != nil {
		set["skills"] = *req.Skills
	}
	if req.Interests != nil {
		set["interests"] = *req.Interests
	}
	if req.Location != nil {
		set["location"] = *req.Location
	}

	if len(set) > 0 {
		res, err := col.UpdateOne(ctx, bson.M{"_id": uid}, bson.M{"$set": set})
		if err != nil {
			return nil, fmt.Errorf("update profile: %w", err)
		}
		if res.MatchedCount == 0 {
			return nil, ErrProfileNotFound
		}
	}

	return s.GetUserProfile(ctx, uid)
}

func (s *MongoProfileService) BookmarkGig(ctx context.Context, gigID, userID string) error {
	return s.bookmark(ctx, userID, "bookmarked_gigs", gigID, true)
}

func (s *MongoProfileService) UnbookmarkGig(ctx context.Context, gigID, userID string) error {
	return s.bookmark(ctx, userID, "bookmarked_gigs", gigID, false)
}

func (s *MongoProfileService) BookmarkStartup(ctx context.Context, startupID, userID string) error {
	return s.bookmark(ctx, userID, "bookmarked_startups", startupID, true)
}

func (s *MongoProfileService) UnbookmarkStartup(ctx context.Context, startupID, userID string) error {
	return s.bookmark(ctx, userID, "bookmarked_startups", startupID, false)
}

// bookmark set-adds or set-removes id on the given profile list. Both
// directions are idempotent.
func (s *MongoProfileService) bookmark(ctx context.Context, userID, field, id string, add bool) error {
	col, err := s.users()
	if err != nil {
		return err
	}

	var update bson.M
	if add {
		update = bson.M{"$addToSet": bson.M{field: id}}
	} else {
		update = bson.M{"$pull": bson.M{field: id}}
	}

	res, err := col.UpdateOne(ctx, bson.M{"_id": userID}, update)
	if err != nil {
		return fmt.Errorf("update %s: %w", field, err)
	}
	if res.MatchedCount == 0 {
		return ErrProfileNotFound
	}
	return nil
}
