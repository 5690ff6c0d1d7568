package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/gatepost/pkg/domain"
)

func TestNewRoute_Defaults(t *testing.T) {
	// A bag lacking version/protected/providers/limit/expires keys yields the
	// documented defaults on every accessor.
	raw := domain.RawRoute{
		URI:     "/users/{id}",
		Methods: []string{"get"},
		Action:  domain.Bag{"uses": "users@Show"},
	}
	opts, err := raw.Action.Decode()
	require.NoError(t, err)

	rt := domain.NewRoute(raw, opts)

	assert.Empty(t, rt.Versions())
	assert.False(t, rt.IsProtected())
	assert.Empty(t, rt.AuthProviders())
	assert.Empty(t, rt.Scopes())
	assert.Zero(t, rt.RateLimit())
	assert.Zero(t, rt.RateLimitExpiration())
	assert.False(t, rt.IsConditional())
	assert.False(t, rt.HasLimit())
	assert.Equal(t, "users@Show", rt.ControllerRef())
	assert.Equal(t, []string{"GET"}, rt.Methods())
	assert.True(t, rt.MatchesVersion("v1"), "no version constraint matches everything")
}

func TestNewRoute_BagValues(t *testing.T) {
	raw := domain.RawRoute{
		URI:         "/reports",
		Methods:     []string{"post"},
		OperationID: "createReport",
		Action: domain.Bag{
			"uses":      "reports@Create",
			"version":   []string{"v2", "v2"},
			"protected": true,
			"providers": []string{"jwt", "key"},
			"scopes":    []string{"reports:write"},
			"limit":     30,
			"expires":   60,
		},
	}
	opts, err := raw.Action.Decode()
	require.NoError(t, err)

	rt := domain.NewRoute(raw, opts)

	assert.Equal(t, "createReport", rt.Name())
	assert.Equal(t, []string{"v2"}, rt.Versions(), "versions are deduplicated")
	assert.True(t, rt.MatchesVersion("v2"))
	assert.False(t, rt.MatchesVersion("v1"))
	assert.True(t, rt.IsProtected())
	assert.Equal(t, []string{"jwt", "key"}, rt.AuthProviders())
	assert.Equal(t, []string{"reports:write"}, rt.Scopes())
	assert.Equal(t, 30, rt.RateLimit())
	assert.Equal(t, time.Minute, rt.RateLimitExpiration())
	assert.True(t, rt.HasLimit())
}

func TestRoute_Merging(t *testing.T) {
	raw := domain.RawRoute{
		URI:     "/posts",
		Methods: []string{"GET"},
		Action:  domain.Bag{"scopes": []string{"posts:read"}},
	}
	opts, err := raw.Action.Decode()
	require.NoError(t, err)
	rt := domain.NewRoute(raw, opts)

	rt.AddScopes("posts:read", "posts:list")
	rt.AddProviders("key")
	rt.SetLimit(10, 30*time.Second)

	assert.Equal(t, []string{"posts:read", "posts:list"}, rt.Scopes(), "merge keeps first-seen order and dedupes")
	assert.Equal(t, []string{"key"}, rt.AuthProviders())
	assert.Equal(t, 10, rt.RateLimit())
	assert.Equal(t, 30*time.Second, rt.RateLimitExpiration())
}

func TestRoute_ConditionalDefault(t *testing.T) {
	t.Run("gateway default applies when bag is silent", func(t *testing.T) {
		raw := domain.RawRoute{URI: "/a", Methods: []string{"GET"}, Action: domain.Bag{}}
		opts, err := raw.Action.Decode()
		require.NoError(t, err)
		rt := domain.NewRoute(raw, opts)
		rt.SetConditionalDefault(opts, true)
		assert.True(t, rt.IsConditional())
	})

	t.Run("bag value wins over gateway default", func(t *testing.T) {
		raw := domain.RawRoute{URI: "/a", Methods: []string{"GET"}, Action: domain.Bag{"conditional_request": false}}
		opts, err := raw.Action.Decode()
		require.NoError(t, err)
		rt := domain.NewRoute(raw, opts)
		rt.SetConditionalDefault(opts, true)
		assert.False(t, rt.IsConditional())
	})
}

func TestIdentity_HasScope(t *testing.T) {
	id := domain.Identity{Subject: "alice", Scopes: []string{"posts:read"}}
	assert.True(t, id.HasScope("posts:read"))
	assert.False(t, id.HasScope("posts:write"))
}
