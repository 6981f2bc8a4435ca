package services

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/earnbuddy/backend/internal/realtime"
)

// subscribeFullList implements the push-subscription contract shared by room
// messages and notifications: the handler receives the complete, freshly
// fetched result set once immediately and then after every published change.
// Deliveries run on a single goroutine per subscription, so the handler never
// sees two lists concurrently or out of order. A failed refetch is logged and
// skipped; the next change triggers another attempt.
func subscribeFullList[T any](
	ctx context.Context,
	hub *realtime.Hub,
	topic string,
	logger *zap.Logger,
	fetch func(context.Context) ([]T, error),
	handler func([]T),
) UnsubscribeFunc {
	signal, drop := hub.Subscribe(topic)
	done := make(chan struct{})
	var once sync.Once

	unsubscribe := func() {
		once.Do(func() {
			drop()
			close(done)
		})
	}

	go func() {
		deliver := func() {
			list, err := fetch(ctx)
			if err != nil {
				logger.Warn("subscription refresh failed", zap.String("topic", topic), zap.Error(err))
				return
			}
			handler(list)
		}

		deliver()
		for {
			select {
			case <-ctx.Done():
				unsubscribe()
				return
			case <-done:
				return
			case <-signal:
				deliver()
			}
		}
	}()

	return unsubscribe
}
