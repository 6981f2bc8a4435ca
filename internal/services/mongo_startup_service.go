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

type MongoStartupService struct {
	db     *mongo.Database
	logger *zap.Logger
}

func NewMongoStartupService(ctx context.Context, db *mongo.Database, logger *zap.Logger) *MongoStartupService {
	s := &MongoStartupService{db: db, logger: logger}

	if db != nil {
		_, _ = db.Collection("startups").Indexes().CreateMany(ctx, []mongo.IndexModel{
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "created_by", Value: 1}, {Key: "created_at", Value: -1}}},
		})
	}

	return s
}

func (s *MongoStartupService) startups() (*mongo.Collection, error) {
	if s.db == nil {
		return nil, ErrStoreNotInitialized
	}
	return s.db.Collection("startups"), nil
}

func (s *MongoStartupService) usersCol() (*mongo.Collection, error) {
	if s.db == nil {
		return nil, ErrStoreNotInitialized
	}
	return s.db.Collection("users"), nil
}

// CreateStartup inserts the listing and records it on the creator's
// postedStartups, removing the listing again if the profile write fails.
func (s *MongoStartupService) CreateStartup(ctx context.Context, req *models.CreateStartupRequest) (*models.Startup, error) {
	startups, err := s.startups()
	if err != nil {
		return nil, err
	}
	users, err := s.usersCol()
	if err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = models.StartupActive
	}
	requirements := req.Requirements
	if requirements == nil {
		requirements = []string{}
	}

	now := time.Now().UTC()
	startup := models.Startup{
		ID:             uuid.New().String(),
		Name:           req.Name,
		Description:    req.Description,
		Industry:       req.Industry,
		Stage:          req.Stage,
		Location:       req.Location,
		CreatedBy:      req.CreatedBy,
		Applicants:     []models.Application{},
		ApplicantCount: 0,
		Status:         status,
		Funding:        req.Funding,
		Equity:         req.Equity,
		Requirements:   requirements,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if _, err := startups.InsertOne(ctx, startup); err != nil {
		return nil, fmt.Errorf("create startup: %w", err)
	}

	if _, err := users.UpdateOne(ctx,
		bson.M{"_id": req.CreatedBy},
		bson.M{"$addToSet": bson.M{"posted_startups": startup.ID}},
	); err != nil {
		if _, undoErr := startups.DeleteOne(ctx, bson.M{"_id": startup.ID}); undoErr != nil {
			s.logger.Error("create startup rollback failed", zap.String("startup_id", startup.ID), zap.Error(undoErr))
		}
		return nil, fmt.Errorf("create startup profile update: %w", err)
	}

	return &startup, nil
}

func (s *MongoStartupService) GetStartups(ctx context.Context) ([]models.Startup, error) {
	col, err := s.startups()
	if err != nil {
		return nil, err
	}

	cur, err := col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("get startups: %w", err)
	}
	defer cur.Close(ctx)

	out := make([]models.Startup, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode startups: %w", err)
	}
	return out, nil
}

// ApplyToStartup reads the applicant's profile, freezes a snapshot of it into
// the application, appends the application paired with the counter bump, and
// finally records the compact applied-record on the profile. The listing-side
// write is rolled back if the profile-side write fails.
func (s *MongoStartupService) ApplyToStartup(ctx context.Context, startupID, userID string, app *models.ApplicationRequest) error {
	startups, err := s.startups()
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

	res, err := startups.UpdateOne(ctx,
		bson.M{"_id": startupID},
		bson.M{
			"$push": bson.M{"applicants": application},
			"$inc":  bson.M{"applicant_count": 1},
			"$set":  bson.M{"updated_at": now},
		},
	)
	if err != nil {
		return fmt.Errorf("apply to startup: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrStartupNotFound
	}

	record := models.AppliedStartup{
		StartupID: startupID,
		AppliedAt: now,
		Status:    string(models.ApplicationPending),
	}
	if _, err := users.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$push": bson.M{"applied_startups": record}},
	); err != nil {
		if _, undoErr := startups.UpdateOne(ctx,
			bson.M{"_id": startupID},
			bson.M{
				"$pull": bson.M{"applicants": bson.M{"user_id": userID, "applied_at": now}},
				"$inc":  bson.M{"applicant_count": -1},
			},
		); undoErr != nil {
			s.logger.Error("apply to startup rollback failed",
				zap.String("startup_id", startupID),
				zap.String("user_id", userID),
				zap.Error(undoErr),
			)
		}
		return fmt.Errorf("apply to startup profile update: %w", err)
	}

	return nil
}

func (s *MongoStartupService) GetUserPostedStartups(ctx context.Context, userID string) ([]models.Startup, error) {
	col, err := s.startups()
	if err != nil {
		return nil, err
	}

	cur, err := col.Find(ctx,
		bson.M{"created_by": userID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("get posted startups: %w", err)
	}
	defer cur.Close(ctx)

	out := make([]models.Startup, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode startups: %w", err)
	}
	return out, nil
}

// GetBookmarkedStartups resolves each id with a point read, skipping ids that
// no longer exist. Stale bookmarks are tolerated, not errors.
func (s *MongoStartupService) GetBookmarkedStartups(ctx context.Context, ids []string) ([]models.Startup, error) {
	col, err := s.startups()
	if err != nil {
		return nil, err
	}

	out := make([]models.Startup, 0, len(ids))
	for _, id := range ids {
		var st models.Startup
		if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&st); err != nil {
			if err == mongo.ErrNoDocuments {
				continue
			}
			return nil, fmt.Errorf("get bookmarked startup %s: %w", id, err)
		}
		out = append(out, st)
	}
	return out, nil
}
