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

// MongoGigService mirrors MongoStartupService; gigs and startups share the
// application mechanics but live in separate collections with their own
// field layouts.
type MongoGigService struct {
	db     *mongo.Database
	logger *zap.Logger
}

func NewMongoGigService(ctx context.Context, db *mongo.Database, logger *zap.Logger) *MongoGigService {
	s := &MongoGigService{db: db, logger: logger}

	if db != nil {
		_, _ = db.Collection("gigs").Indexes().CreateMany(ctx, []mongo.IndexModel{
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "posted_by", Value: 1}, {Key: "created_at", Value: -1}}},
		})
	}

	return s
}

func (s *MongoGigService) gigs() (*mongo.Collection, error) {
	if s.db == nil {
		return nil, ErrStoreNotInitialized
	}
	return s.db.Collection("gigs"), nil
}

func (s *MongoGigService) usersCol() (*mongo.Collection, error) {
	if s.db == nil {
		return nil, ErrStoreNotInitialized
	}
	return s.db.Collection("users"), nil
}

func (s *MongoGigService) CreateGig(ctx context.Context, req *models.CreateGigRequest) (*models.FreelanceGig, error) {
	gigs, err := s.gigs()
	if err != nil {
		return nil, err
	}
	users, err := s.usersCol()
	if err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = models.GigOpen
	}
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}
	requirements := req.Requirements
	if requirements == nil {
		requirements = []string{}
	}

	now := time.Now().UTC()
	gig := models.FreelanceGig{
		ID:             uuid.New().String(),
		Title:          req.Title,
		Description:    req.Description,
		Tags:           tags,
		Budget:         req.Budget,
		Duration:       req.Duration,
		PostedBy:       req.PostedBy,
		Applicants:     []models.Application{},
		ApplicantCount: 0,
		Status:         status,
		Requirements:   requirements,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if _, err := gigs.InsertOne(ctx, gig); err != nil {
		return nil, fmt.Errorf("create gig: %w", err)
	}

	if _, err := users.UpdateOne(ctx,
		bson.M{"_id": req.PostedBy},
		bson.M{"$addToSet": bson.M{"posted_gigs": gig.ID}},
	); err != nil {
		if _, undoErr := gigs.DeleteOne(ctx, bson.M{"_id": gig.ID}); undoErr != nil {
			s.logger.Error("create gig rollback failed", zap.String("gig_id", gig.ID), zap.Error(undoErr))
		}
		return nil, fmt.Errorf("create gig profile update: %w", err)
	}

	return &gig, nil
}

func (s *MongoGigService) GetGigs(ctx context.Context) ([]models.FreelanceGig, error) {
	col, err := s.gigs()
	if err != nil {
		return nil, err
	}

	cur, err := col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("get gigs: %w", err)
	}
	defer cur.Close(ctx)

	out := make([]models.FreelanceGig, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode gigs: %w", err)
	}
	return out, nil
}

func (s *MongoGigService) ApplyToGig(ctx context.Context, gigID, userID string, app *models.ApplicationRequest) error {
	gigs, err := s.gigs()
	if err != nil {
		return err
	}
	users, err := s.usersCol()
	if err != nil {
		return err
	}

	var profile models.UserProfile
	if err := users.FindOne(ctx, bson.M{"_id": userID}).Decode(&profile); err != nil {
		if err == mongo.ErrNoDocuments {
			return ErrProfileNotFound
		}
		return fmt.Errorf("load applicant profile: %w", err)
	}

	now := time.Now().UTC()
	application := models.Application{
		UserID:    userID,
		AppliedAt: now,
		Status:    models.ApplicationPending,
		UserProfile: &models.ApplicantSnapshot{
			Name:              profile.DisplayName,
			Email:             profile.Email,
			Avatar:            profile.PhotoURL,
			Skills:            profile.Skills,
			Rating:            profile.Rating,
			CompletedProjects: profile.CompletedProjects,
		},
	}
	if app != nil {
		application.CoverLetter = app.CoverLetter
		application.Portfolio = app.Portfolio
	}

	res, err := gigs.UpdateOne(ctx,
		bson.M{"_id": gigID},
		bson.M{
			"$push": bson.M{"applicants": application},
			"$inc":  bson.M{"applicant_count": 1},
			"$set":  bson.M{"updated_at": now},
		},
	)
	if err != nil {
		return fmt.Errorf("apply to gig: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrGigNotFound
	}

	record := models.AppliedGig{
		GigID:     gigID,
		AppliedAt: now,
		Status:    string(models.ApplicationPending),
	}
	if _, err := users.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$push": bson.M{"applied_gigs": record}},
	); err != nil {
		if _, undoErr := gigs.UpdateOne(ctx,
			bson.M{"_id": gigID},
			bson.M{
				"$pull": bson.M{"applicants": bson.M{"user_id": userID, "applied_at": now}},
				"$inc":  bson.M{"applicant_count": -1},
			},
		); undoErr != nil {
			s.logger.Error("apply to gig rollback failed",
				zap.String("gig_id", gigID),
				zap.String("user_id", userID),
				zap.Error(undoErr),
			)
		}
		return fmt.Errorf("apply to gig profile update: %w", err)
	}

	return nil
}

func (s *MongoGigService) GetUserPostedGigs(ctx context.Context, userID string) ([]models.FreelanceGig, error) {
	col, err := s.gigs()
	if err != nil {
		return nil, err
	}

	cur, err := col.Find(ctx,
		bson.M{"posted_by": userID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("get posted gigs: %w", err)
	}
	defer cur.Close(ctx)

	out := make([]models.FreelanceGig, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode gigs: %w", err)
	}
	return out, nil
}

func (s *MongoGigService) GetBookmarkedGigs(ctx context.Context, ids []string) ([]models.FreelanceGig, error) {
	col, err := s.gigs()
	if err != nil {
		return nil, err
	}

	out := make([]models.FreelanceGig, 0, len(ids))
	for _, id := range ids {
		var gig models.FreelanceGig
		if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&gig); err != nil {
			if err == mongo.ErrNoDocuments {
				continue
			}
			return nil, fmt.Errorf("get bookmarked gig %s: %w", id, err)
		}
		out = append(out, gig)
	}
	return out, nil
}
