// Package state provides per-entity view containers over the data services.
// Each container exposes the {data, loading, error} triple plus mutation
// wrappers. Mutations never return their error to the caller: failures are
// captured into the error field and the caller inspects it, matching the
// contract the presentation layer is written against.
package state

import (
	"context"
	"sync"
)

// container is the shared triple behind every state type.
type container[T any] struct {
	mu      sync.RWMutex
	data    []T
	loading bool
	err     error
}

func (c *container[T]) Data() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.data
}

func (c *container[T]) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

func (c *container[T]) Err() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.err
}

func (c *container[T]) begin() {
	c.mu.Lock()
	c.loading = true
	c.mu.Unlock()
}

func (c *container[T]) finish(data []T, err error) {
	c.mu.Lock()
	c.loading = false
	if err != nil {
		c.err = err
	} else {
		c.data = data
		c.err = nil
	}
	c.mu.Unlock()
}

func (c *container[T]) replace(data []T) {
	c.mu.Lock()
	c.data = data
	c.loading = false
	c.err = nil
	c.mu.Unlock()
}

func (c *container[T]) fail(err error) {
	c.mu.Lock()
	c.err = err
	c.mu.Unlock()
}

// load runs fetch and installs the result.
func (c *container[T]) load(ctx context.Context, fetch func(context.Context) ([]T, error)) {
	c.begin()
	data, err := fetch(ctx)
	c.finish(data, err)
}

// mutate runs op and then refreshes through fetch. An error from either step
// is swallowed into the error field.
func (c *container[T]) mutate(ctx context.Context, op func(context.Context) error, fetch func(context.Context) ([]T, error)) {
	if err := op(ctx); err != nil {
		c.fail(err)
		return
	}
	c.load(ctx, fetch)
}

// mutateOnly runs op without refetching, for containers whose data is kept
// current by a live subscription.
func (c *container[T]) mutateOnly(ctx context.Context, op func(context.Context) error) {
	if err := op(ctx); err != nil {
		c.fail(err)
	}
}
