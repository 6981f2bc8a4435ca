package services

import (
	"sync"

	"go.uber.org/zap"

	"github.com/earnbuddy/backend/internal/models"
	"github.com/earnbuddy/backend/internal/storage"
)

// memoryData is the full document set of the local backend, shaped for JSON
// persistence.
type memoryData struct {
	Pods          map[string]*models.Pod          `json:"pods"`
	Posts         map[string]*models.Post         `json:"posts"`
	Replies       map[string]*models.Reply        `json:"replies"`
	Rooms         map[string]*models.Room         `json:"rooms"`
	Messages      map[string]*models.Message      `json:"messages"`
	Startups      map[string]*models.Startup      `json:"startups"`
	Gigs          map[string]*models.FreelanceGig `json:"gigs"`
	Profiles      map[string]*models.UserProfile  `json:"profiles"`
	Notifications map[string]*models.Notification `json:"notifications"`
}

// MemoryStore is the shared document set behind the in-memory service
// implementations. One lock guards every collection so the cross-document
// membership operations observe a consistent view; this backend trades
// concurrency for simplicity.
type MemoryStore struct {
	mu     sync.RWMutex
	data   memoryData
	file   *storage.JSONStore
	logger *zap.Logger
}

// NewMemoryStore builds the local backend. With a non-empty dataDir the
// document set is loaded from and saved to earnbuddy.json there; with an
// empty dataDir it is purely ephemeral (tests).
func NewMemoryStore(dataDir string, logger *zap.Logger) (*MemoryStore, error) {
	m := &MemoryStore{
		data: memoryData{
			Pods:          make(map[string]*models.Pod),
			Posts:         make(map[string]*models.Post),
			Replies:       make(map[string]*models.Reply),
			Rooms:         make(map[string]*models.Room),
			Messages:      make(map[string]*models.Message),
			Startups:      make(map[string]*models.Startup),
			Gigs:          make(map[string]*models.FreelanceGig),
			Profiles:      make(map[string]*models.UserProfile),
			Notifications: make(map[string]*models.Notification),
		},
		logger: logger,
	}

	if dataDir != "" {
		file, err := storage.NewJSONStore(dataDir, "earnbuddy.json")
		if err != nil {
			return nil, err
		}
		m.file = file
		if err := file.Load(&m.data); err != nil {
			return nil, err
		}
		// Maps absent from an older file come back nil after decode.
		if m.data.Pods == nil {
			m.data.Pods = make(map[string]*models.Pod)
		}
		if m.data.Posts == nil {
			m.data.Posts = make(map[string]*models.Post)
		}
		if m.data.Replies == nil {
			m.data.Replies = make(map[string]*models.Reply)
		}
		if m.data.Rooms == nil {
			m.data.Rooms = make(map[string]*models.Room)
		}
		if m.data.Messages == nil {
			m.data.Messages = make(map[string]*models.Message)
		}
		if m.data.Startups == nil {
			m.data.Startups = make(map[string]*models.Startup)
		}
		if m.data.Gigs == nil {
			m.data.Gigs = make(map[string]*models.FreelanceGig)
		}
		if m.data.Profiles == nil {
			m.data.Profiles = make(map[string]*models.UserProfile)
		}
		if m.data.Notifications == nil {
			m.data.Notifications = make(map[string]*models.Notification)
		}
	}

	return m, nil
}

// persist writes the current document set to disk. Callers hold the write
// lock. Persistence failures are logged, not surfaced: the in-memory state
// is already mutated and remains authoritative for the process lifetime.
func (m *MemoryStore) persist() {
	if m.file == nil {
		return
	}
	if err := m.file.Save(&m.data); err != nil {
		m.logger.Warn("memory store persist failed", zap.Error(err))
	}
}

// containsString reports set membership on an id list.
func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// removeString deletes s from list, preserving order.
func removeString(list []string, s string) []string {
	out := list[:0]
	for _, v := range list {
		if v != s {
			out = append(out, v)
		}
	}
	return out
}

func copyStrings(list []string) []string {
	out := make([]string, len(list))
	copy(out, list)
	return out
}
