// Package memory provides in-process adapter implementations, used in tests
// and single-node deployments.
package memory

import (
	"context"
	"sync"
	"time"
)

// Counter implements ports.CounterStore in memory.
// Safe for concurrent use.
type Counter struct {
	mu      sync.Mutex
	entries map[string]*window
	clock   func() time.Time
}

type window struct {
	count   int64
	expires time.Time
}

// NewCounter creates a new in-memory counter store.
func NewCounter() *Counter {
	return &Counter{
		entries: make(map[string]*window),
		clock:   time.Now,
	}
}

// Increment bumps the counter for key, starting a fresh window when none is
// active.
func (c *Counter) Increment(ctx context.Context, key string, windowLen time.Duration) (int64, time.Duration, error) {
	now := c.clock()

	c.mu.Lock()
	defer c.mu.Unlock()

	w, ok := c.entries[key]
	if !ok || now.After(w.expires) {
		w = &window{expires: now.Add(windowLen)}
		c.entries[key] = w
	}
	w.count++

	return w.count, w.expires.Sub(now), nil
}

// Reset removes the counter for key.
func (c *Counter) Reset(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}
