package realtime

import (
	"sync"

	"go.uber.org/zap"
)

// Topic names. Subscriptions are keyed by entity, not by connection.
func RoomTopic(roomID string) string   { return "room:" + roomID }
func NotifyTopic(userID string) string { return "notify:" + userID }

type subscriber struct {
	signal chan struct{}
}

// Hub is an in-process change broker. Publishing a topic wakes every
// subscriber on it; wakeups are coalesced, so a subscriber that has not yet
// drained its signal sees at most one pending wakeup. Subscribers refetch the
// full result set on wakeup, which is what makes coalescing safe.
type Hub struct {
	mu     sync.RWMutex
	topics map[string]map[uint64]*subscriber
	nextID uint64
	logger *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		topics: make(map[string]map[uint64]*subscriber),
		logger: logger,
	}
}

// Subscribe registers interest in a topic. The returned channel receives a
// value whenever the topic is published. The returned func removes the
// subscription; after it returns no further wakeups are delivered.
func (h *Hub) Subscribe(topic string) (<-chan struct{}, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	id := h.nextID

	sub := &subscriber{signal: make(chan struct{}, 1)}
	if h.topics[topic] == nil {
		h.topics[topic] = make(map[uint64]*subscriber)
	}
	h.topics[topic][id] = sub

	h.logger.Debug("hub subscribe", zap.String("topic", topic), zap.Uint64("id", id))

	unsubscribe := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if subs, ok := h.topics[topic]; ok {
			delete(subs, id)
			if len(subs) == 0 {
				delete(h.topics, topic)
			}
		}
	}
	return sub.signal, unsubscribe
}

// Publish wakes all subscribers of a topic without blocking the publisher.
func (h *Hub) Publish(topic string) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, sub := range h.topics[topic] {
		select {
		case sub.signal <- struct{}{}:
		default:
			// wakeup already pending
		}
	}
}

// SubscriberCount reports how many subscribers a topic currently has.
func (h *Hub) SubscriberCount(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[topic])
}
