package runtime

import (
	"context"
	"fmt"
	"time"

	"github.com/aretw0/gatepost/pkg/domain"
	"github.com/aretw0/gatepost/pkg/ports"
)

// defaultWindow applies when a route sets a limit but no expiration window.
const defaultWindow = time.Minute

// Limiter enforces per-route fixed-window rate limits through a CounterStore.
type Limiter struct {
	store ports.CounterStore
}

// LimitResult describes one rate-limit check.
type LimitResult struct {
	Limited   bool
	Limit     int
	Remaining int
	Reset     time.Duration
}

// NewLimiter creates a limiter over the given store.
func NewLimiter(store ports.CounterStore) *Limiter {
	return &Limiter{store: store}
}

// Check counts the request against the route's limit for the given client
// key. Routes without a limit always pass.
func (l *Limiter) Check(ctx context.Context, route *domain.Route, clientKey string) (LimitResult, error) {
	if !route.HasLimit() {
		return LimitResult{}, nil
	}

	window := route.RateLimitExpiration()
	if window <= 0 {
		window = defaultWindow
	}

	key := route.Name() + ":" + clientKey
	count, reset, err := l.store.Increment(ctx, key, window)
	if err != nil {
		return LimitResult{}, fmt.Errorf("rate limit %s: %w", key, err)
	}

	limit := route.RateLimit()
	remaining := limit - int(count)
	if remaining < 0 {
		remaining = 0
	}

	return LimitResult{
		Limited:   count > int64(limit),
		Limit:     limit,
		Remaining: remaining,
		Reset:     reset,
	}, nil
}
