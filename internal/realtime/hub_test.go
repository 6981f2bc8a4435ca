package realtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPublish_WakesSubscriber(t *testing.T) {
	hub := NewHub(zap.NewNop())

	signal, unsub := hub.Subscribe(RoomTopic("r1"))
	defer unsub()

	hub.Publish(RoomTopic("r1"))

	select {
	case <-signal:
	case <-time.After(time.Second):
		t.Fatal("expected a wakeup after publish")
	}
}

func TestPublish_CoalescesPendingWakeups(t *testing.T) {
	hub := NewHub(zap.NewNop())

	signal, unsub := hub.Subscribe(RoomTopic("r1"))
	defer unsub()

	hub.Publish(RoomTopic("r1"))
	hub.Publish(RoomTopic("r1"))
	hub.Publish(RoomTopic("r1"))

	select {
	case <-signal:
	case <-time.After(time.Second):
		t.Fatal("expected a wakeup after publish")
	}

	select {
	case <-signal:
		t.Fatal("pending wakeups should coalesce to one")
	default:
	}
}

func TestPublish_ScopedToTopic(t *testing.T) {
	hub := NewHub(zap.NewNop())

	signal, unsub := hub.Subscribe(NotifyTopic("ada"))
	defer unsub()

	hub.Publish(NotifyTopic("bob"))

	select {
	case <-signal:
		t.Fatal("publish on another topic must not wake this subscriber")
	default:
	}
}

func TestUnsubscribe_StopsWakeups(t *testing.T) {
	hub := NewHub(zap.NewNop())

	signal, unsub := hub.Subscribe(RoomTopic("r1"))
	require.Equal(t, 1, hub.SubscriberCount(RoomTopic("r1")))

	unsub()
	assert.Equal(t, 0, hub.SubscriberCount(RoomTopic("r1")))

	hub.Publish(RoomTopic("r1"))

	select {
	case <-signal:
		t.Fatal("unsubscribed channel must not receive wakeups")
	default:
	}
}

func TestSubscriberCount_TracksMultiple(t *testing.T) {
	hub := NewHub(zap.NewNop())

	_, unsub1 := hub.Subscribe(RoomTopic("r1"))
	_, unsub2 := hub.Subscribe(RoomTopic("r1"))
	assert.Equal(t, 2, hub.SubscriberCount(RoomTopic("r1")))

	unsub1()
	assert.Equal(t, 1, hub.SubscriberCount(RoomTopic("r1")))
	unsub2()
	assert.Equal(t, 0, hub.SubscriberCount(RoomTopic("r1")))
}
