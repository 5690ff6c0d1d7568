package runtime_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/gatepost/internal/runtime"
	"github.com/aretw0/gatepost/pkg/adapters/memory"
	"github.com/aretw0/gatepost/pkg/domain"
)

func limitedRoute(t *testing.T, limit, expires int) *domain.Route {
	t.Helper()
	raw := domain.RawRoute{
		URI:         "/posts",
		Methods:     []string{"GET"},
		OperationID: "listPosts",
		Action:      domain.Bag{"limit": limit, "expires": expires},
	}
	opts, err := raw.Action.Decode()
	require.NoError(t, err)
	return domain.NewRoute(raw, opts)
}

func TestLimiter_Check(t *testing.T) {
	limiter := runtime.NewLimiter(memory.NewCounter())
	ctx := context.Background()
	route := limitedRoute(t, 2, 60)

	res, err := limiter.Check(ctx, route, "alice")
	require.NoError(t, err)
	assert.False(t, res.Limited)
	assert.Equal(t, 2, res.Limit)
	assert.Equal(t, 1, res.Remaining)
	assert.Greater(t, res.Reset.Seconds(), 0.0)

	res, err = limiter.Check(ctx, route, "alice")
	require.NoError(t, err)
	assert.False(t, res.Limited)
	assert.Equal(t, 0, res.Remaining)

	res, err = limiter.Check(ctx, route, "alice")
	require.NoError(t, err)
	assert.True(t, res.Limited, "the third request in a 2-limit window is rejected")
	assert.Equal(t, 0, res.Remaining)
}

func TestLimiter_KeysAreIndependent(t *testing.T) {
	limiter := runtime.NewLimiter(memory.NewCounter())
	ctx := context.Background()
	route := limitedRoute(t, 1, 60)

	res, err := limiter.Check(ctx, route, "alice")
	require.NoError(t, err)
	assert.False(t, res.Limited)

	res, err = limiter.Check(ctx, route, "bob")
	require.NoError(t, err)
	assert.False(t, res.Limited, "clients do not share windows")
}

func TestLimiter_UnlimitedRoute(t *testing.T) {
	limiter := runtime.NewLimiter(memory.NewCounter())
	route := limitedRoute(t, 0, 0)

	for i := 0; i < 10; i++ {
		res, err := limiter.Check(context.Background(), route, "alice")
		require.NoError(t, err)
		assert.False(t, res.Limited)
	}
}
