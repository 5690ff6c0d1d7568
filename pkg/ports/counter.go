package ports

import (
	"context"
	"time"
)

// CounterStore backs fixed-window rate limiting.
type CounterStore interface {
	// Increment bumps the counter for key, creating it with the window as TTL
	// when absent. It returns the count after the increment and the time left
	// in the current window.
	Increment(ctx context.Context, key string, window time.Duration) (count int64, remaining time.Duration, err error)

	// Reset removes the counter for key.
	Reset(ctx context.Context, key string) error
}
