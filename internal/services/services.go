package services

import (
	"context"
	"errors"

	"github.com/earnbuddy/backend/internal/models"
)

var (
	// ErrStoreNotInitialized means the backing document store was never
	// configured. It is a configuration error, not a transient one: retrying
	// the operation cannot succeed.
	ErrStoreNotInitialized = errors.New("store not initialized")

	ErrPodNotFound          = errors.New("pod not found")
	ErrPostNotFound         = errors.New("post not found")
	ErrRoomNotFound         = errors.New("room not found")
	ErrStartupNotFound      = errors.New("startup not found")
	ErrGigNotFound          = errors.New("gig not found")
	ErrProfileNotFound      = errors.New("profile not found")
	ErrNotificationNotFound = errors.New("notification not found")
)

// Fixed result caps for notification reads. The one-shot fetch and the live
// subscription intentionally use different sizes.
const (
	notificationFetchLimit     = 50
	notificationSubscribeLimit = 20
)

// UnsubscribeFunc tears down a live subscription. It only stops future
// deliveries; a refresh already in flight may still invoke the handler once.
type UnsubscribeFunc func()

// PodService manages community groups and their membership.
type PodService interface {
	CreatePod(ctx context.Context, req *models.CreatePodRequest) (*models.Pod, error)
	GetPods(ctx context.Context) ([]models.Pod, error)
	GetPod(ctx context.Context, id string) (*models.Pod, error)
	JoinPod(ctx context.Context, podID, userID string) error
	LeavePod(ctx context.Context, podID, userID string) error
}

// PostService manages posts inside pods.
type PostService interface {
	CreatePost(ctx context.Context, req *models.CreatePostRequest) (*models.Post, error)
	GetPodPosts(ctx context.Context, podID string) ([]models.Post, error)
	LikePost(ctx context.Context, postID, userID string) error
	UnlikePost(ctx context.Context, postID, userID string) error
	BookmarkPost(ctx context.Context, postID, userID string) error
	CreateReply(ctx context.Context, postID, userID, content string) (*models.Reply, error)
	GetPostReplies(ctx context.Context, postID string) ([]models.Reply, error)
}

// RoomService manages collaboration rooms and their message streams.
type RoomService interface {
	CreateRoom(ctx context.Context, req *models.CreateRoomRequest) (*models.Room, error)
	GetRooms(ctx context.Context, userID string) ([]models.Room, error)
	JoinRoom(ctx context.Context, roomID, userID string) error
	SendMessage(ctx context.Context, req *models.SendMessageRequest) (*models.Message, error)
	GetRoomMessages(ctx context.Context, roomID string) ([]models.Message, error)

	// SubscribeToRoomMessages delivers the full, timestamp-ascending message
	// list for the room to handler: once immediately, then again after every
	// change. Each invocation replaces the previous list wholesale.
	SubscribeToRoomMessages(ctx context.Context, roomID string, handler func([]models.Message)) (UnsubscribeFunc, error)
}

// StartupService manages startup listings and applications to them.
type StartupService interface {
	CreateStartup(ctx context.Context, req *models.CreateStartupRequest) (*models.Startup, error)
	GetStartups(ctx context.Context) ([]models.Startup, error)
	ApplyToStartup(ctx context.Context, startupID, userID string, app *models.ApplicationRequest) error
	GetUserPostedStartups(ctx context.Context, userID string) ([]models.Startup, error)
	GetBookmarkedStartups(ctx context.Context, ids []string) ([]models.Startup, error)
}

// GigService mirrors StartupService for freelance gigs.
type GigService interface {
	CreateGig(ctx context.Context, req *models.CreateGigRequest) (*models.FreelanceGig, error)
	GetGigs(ctx context.Context) ([]models.FreelanceGig, error)
	ApplyToGig(ctx context.Context, gigID, userID string, app *models.ApplicationRequest) error
	GetUserPostedGigs(ctx context.Context, userID string) ([]models.FreelanceGig, error)
	GetBookmarkedGigs(ctx context.Context, ids []string) ([]models.FreelanceGig, error)
}

// ProfileService manages user profile documents and the bookmark lists that
// live on them.
type ProfileService interface {
	// CreateUserProfile persists a fresh profile. Applied and bookmarked
	// lists are always reset to empty and JoinDate is stamped server-side,
	// whatever the caller passed in.
	CreateUserProfile(ctx context.Context, profile *models.UserProfile) error
	GetUserProfile(ctx context.Context, uid string) (*models.UserProfile, error)
	UpdateUserProfile(ctx context.Context, uid string, req *models.UpdateProfileRequest) (*models.UserProfile, error)

	BookmarkGig(ctx context.Context, gigID, userID string) error
	UnbookmarkGig(ctx context.Context, gigID, userID string) error
	BookmarkStartup(ctx context.Context, startupID, userID string) error
	UnbookmarkStartup(ctx context.Context, startupID, userID string) error
}

// NotificationService manages per-user notification inboxes.
type NotificationService interface {
	CreateNotification(ctx context.Context, req *models.CreateNotificationRequest) (*models.Notification, error)
	GetUserNotifications(ctx context.Context, userID string) ([]models.Notification, error)
	MarkNotificationAsRead(ctx context.Context, notificationID string) error

	// SubscribeToUserNotifications delivers the newest notifications
	// (timestamp-descending, capped) to handler on every change, full-list
	// semantics as with room messages.
	SubscribeToUserNotifications(ctx context.Context, userID string, handler func([]models.Notification)) (UnsubscribeFunc, error)
}
