package runtime_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/gatepost/internal/runtime"
	"github.com/aretw0/gatepost/pkg/domain"
	"github.com/aretw0/gatepost/pkg/ports"
)

func protectedRoute(t *testing.T, providers ...string) *domain.Route {
	t.Helper()
	raw := domain.RawRoute{
		URI:         "/secret",
		Methods:     []string{"GET"},
		OperationID: "secret",
		Action:      domain.Bag{"protected": true, "providers": providers},
	}
	opts, err := raw.Action.Decode()
	require.NoError(t, err)
	return domain.NewRoute(raw, opts)
}

func TestAuthenticator_ProviderOrder(t *testing.T) {
	auth := runtime.NewAuthenticator(nil)

	failing := ports.AuthProviderFunc(func(r *http.Request) (domain.Identity, error) {
		return domain.Identity{}, domain.ErrNoIdentity
	})
	passing := ports.AuthProviderFunc(func(r *http.Request) (domain.Identity, error) {
		return domain.Identity{Subject: "alice"}, nil
	})
	auth.Register("jwt", failing)
	auth.Register("key", passing)

	t.Run("route order is honored", func(t *testing.T) {
		id, err := auth.Authenticate(httptest.NewRequest("GET", "/secret", nil), protectedRoute(t, "jwt", "key"))
		require.NoError(t, err)
		assert.Equal(t, "alice", id.Subject)
	})

	t.Run("defaults apply when the route names none", func(t *testing.T) {
		id, err := auth.Authenticate(httptest.NewRequest("GET", "/secret", nil), protectedRoute(t))
		require.NoError(t, err)
		assert.Equal(t, "alice", id.Subject)
	})

	t.Run("every provider failing reports the last failure", func(t *testing.T) {
		_, err := auth.Authenticate(httptest.NewRequest("GET", "/secret", nil), protectedRoute(t, "jwt"))
		assert.ErrorIs(t, err, domain.ErrNoIdentity)
	})

	t.Run("unregistered provider names are skipped", func(t *testing.T) {
		id, err := auth.Authenticate(httptest.NewRequest("GET", "/secret", nil), protectedRoute(t, "saml", "key"))
		require.NoError(t, err)
		assert.Equal(t, "alice", id.Subject)
	})
}

func TestTokenProvider(t *testing.T) {
	provider := runtime.NewTokenProvider()
	provider.Add("s3cret", domain.Identity{Subject: "alice", Scopes: []string{"users:read"}})

	t.Run("bearer token", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("Authorization", "Bearer s3cret")
		id, err := provider.Authenticate(r)
		require.NoError(t, err)
		assert.Equal(t, "alice", id.Subject)
		assert.True(t, id.HasScope("users:read"))
	})

	t.Run("api key header", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("X-API-Key", "s3cret")
		_, err := provider.Authenticate(r)
		assert.NoError(t, err)
	})

	t.Run("missing credentials", func(t *testing.T) {
		_, err := provider.Authenticate(httptest.NewRequest("GET", "/", nil))
		assert.ErrorIs(t, err, domain.ErrNoIdentity)
	})

	t.Run("unknown token", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("X-API-Key", "wrong")
		_, err := provider.Authenticate(r)
		assert.Error(t, err)
	})
}
