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

type MongoPodService struct {
	db     *mongo.Database
	logger *zap.Logger
}

func NewMongoPodService(ctx context.Context, db *mongo.Database, logger *zap.Logger) *MongoPodService {
	s := &MongoPodService{db: db, logger: logger}

	if db != nil {
		// Best-effort indexes.
		_, _ = db.Collection("pods").Indexes().CreateMany(ctx, []mongo.IndexModel{
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "members", Value: 1}}},
		})
	}

	return s
}

func (s *MongoPodService) pods() (*mongo.Collection, error) {
	if s.db == nil {
		return nil, ErrStoreNotInitialized
	}
	return s.db.Collection("pods"), nil
}

func (s *MongoPodService) users() (*mongo.Collection, error) {
	if s.db == nil {
		return nil, ErrStoreNotInitialized
	}
	return s.db.Collection("users"), nil
}

func (s *MongoPodService) CreatePod(ctx context.Context, req *models.CreatePodRequest) (*models.Pod, error) {
	col, err := s.pods()
	if err != nil {
		return nil, err
	}

	members := req.Members
	if members == nil {
		members = []string{}
	}
	events := req.Events
	if events == nil {
		events = []models.PodEvent{}
	}
	resources := req.PinnedResources
	if resources == nil {
		resources = []models.PinnedResource{}
	}

	pod := models.Pod{
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

	if _, err := col.InsertOne(ctx, pod); err != nil {
		return nil, fmt.Errorf("create pod: %w", err)
	}
	return &pod, nil
}

func (s *MongoPodService) GetPods(ctx context.Context) ([]models.Pod, error) {
	col, err := s.pods()
	if err != nil {
		return nil, err
	}

	cur, err := col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("get pods: %w", err)
	}
	defer cur.Close(ctx)

	pods := make([]models.Pod, 0)
	if err := cur.All(ctx, &pods); err != nil {
		return nil, fmt.Errorf("decode pods: %w", err)
	}
	return pods, nil
}

func (s *MongoPodService) GetPod(ctx context.Context, id string) (*models.Pod, error) {
	col, err := s.pods()
	if err != nil {
		return nil, err
	}

	var pod models.Pod
	if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&pod); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrPodNotFound
		}
		return nil, err
	}
	return &pod, nil
}

// JoinPod adds userID to the pod's member set and bumps the denormalized
// member count in one update, then records the pod on the user's profile.
// The count is only incremented when the membership array actually grows, so
// joining twice cannot drift the two apart. The profile write is a separate
// document update; if it fails the pod-side change is rolled back.
func (s *MongoPodService) JoinPod(ctx context.Context, podID, userID string) error {
	pods, err := s.pods()
	if err != nil {
		return err
	}
	users, err := s.users()
	if err != nil {
		return err
	}

	res, err := pods.UpdateOne(ctx,
		bson.M{"_id": podID, "members": bson.M{"$ne": userID}},
		bson.M{
			"$addToSet": bson.M{"members": userID},
			"$inc":      bson.M{"member_count": 1},
		},
	)
	if err != nil {
		return fmt.Errorf("join pod: %w", err)
	}
	if res.MatchedCount == 0 {
		// Either the pod is gone or the user is already a member.
		if _, err := s.GetPod(ctx, podID); err != nil {
			return err
		}
	}

	if _, err := users.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$addToSet": bson.M{"joined_pods": podID}},
	); err != nil {
		if res.ModifiedCount > 0 {
			if _, undoErr := pods.UpdateOne(ctx,
				bson.M{"_id": podID, "members": userID},
				bson.M{
					"$pull": bson.M{"members": userID},
					"$inc":  bson.M{"member_count": -1},
				},
			); undoErr != nil {
				s.logger.Error("join pod rollback failed",
					zap.String("pod_id", podID),
					zap.String("user_id", userID),
					zap.Error(undoErr),
				)
			}
		}
		return fmt.Errorf("join pod profile update: %w", err)
	}

	return nil
}

// LeavePod is the inverse of JoinPod with the same pairing and rollback rules.
func (s *MongoPodService) LeavePod(ctx context.Context, podID, userID string) error {
	pods, err := s.pods()
	if err != nil {
		return err
	}
	users, err := s.users()
	if err != nil {
		return err
	}

	res, err := pods.UpdateOne(ctx,
		bson.M{"_id": podID, "members": userID},
		bson.M{
			"$pull": bson.M{"members": userID},
			"$inc":  bson.M{"member_count": -1},
		},
	)
	if err != nil {
		return fmt.Errorf("leave pod: %w", err)
	}
	if res.MatchedCount == 0 {
		if _, err := s.GetPod(ctx, podID); err != nil {
			return err
		}
	}

	if _, err := users.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$pull": bson.M{"joined_pods": podID}},
	); err != nil {
		if res.ModifiedCount > 0 {
			if _, undoErr := pods.UpdateOne(ctx,
				bson.M{"_id": podID, "members": bson.M{"$ne": userID}},
				bson.M{
					"$addToSet": bson.M{"members": userID},
					"$inc":      bson.M{"member_count": 1},
				},
			); undoErr != nil {
				s.logger.Error("leave pod rollback failed",
					zap.String("pod_id", podID),
					zap.String("user_id", userID),
					zap.Error(undoErr),
				)
			}
		}
		return fmt.Errorf("leave pod profile update: %w", err)
	}

	return nil
}
