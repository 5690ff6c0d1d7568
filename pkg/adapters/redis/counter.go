// Package redis provides a Redis-backed rate-limit counter store.
package redis

import (
	"context"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"
)

// Counter implements ports.CounterStore using Redis. Counters share a fixed
// window per key: the first increment sets the TTL, later increments inherit
// it (EXPIRE NX), so the window does not slide.
type Counter struct {
	client *backend.Client
	prefix string
}

type Option func(*Counter)

// WithPrefix sets the key prefix for counters.
func WithPrefix(prefix string) Option {
	return func(c *Counter) {
		c.prefix = prefix
	}
}

// New creates a new Redis counter store with options.
func New(address, password string, db int, opts ...Option) *Counter {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis counter store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Counter {
	counter := &Counter{
		client: client,
		prefix: "gatepost:limit:",
	}

	for _, opt := range opts {
		opt(counter)
	}

	return counter
}

func (c *Counter) key(k string) string {
	return c.prefix + k
}

// Increment bumps the counter inside a transactional pipeline so the INCR,
// the window TTL and the TTL readback observe the same state.
func (c *Counter) Increment(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	pipe := c.client.TxPipeline()

	incr := pipe.Incr(ctx, c.key(key))
	pipe.ExpireNX(ctx, c.key(key), window)
	ttl := pipe.TTL(ctx, c.key(key))

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, 0, fmt.Errorf("redis increment %s: %w", key, err)
	}

	remaining := ttl.Val()
	if remaining < 0 {
		// Key without TTL (should not happen once EXPIRE NX ran); report the
		// full window rather than a negative sentinel.
		remaining = window
	}

	return incr.Val(), remaining, nil
}

// Reset removes the counter for key.
func (c *Counter) Reset(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.key(key)).Err(); err != nil {
		return fmt.Errorf("redis reset %s: %w", key, err)
	}
	return nil
}

// Close releases the underlying client.
func (c *Counter) Close() error {
	return c.client.Close()
}
