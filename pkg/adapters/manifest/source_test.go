package manifest_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/gatepost/pkg/adapters/manifest"
)

const sampleManifest = `
routes:
  - path: /users/{id}
    methods: [GET]
    operation_id: showUser
    summary: Fetch a single user
    uses: users@Show
    version: v1
    protected: true
    scopes: [users:read]
    providers: [key]
    limit: 30
    expires: 60
  - path: /health
    methods: [GET, HEAD]
`

func TestManifestSource_Routes(t *testing.T) {
	src := manifest.FromBytes([]byte(sampleManifest))

	routes, err := src.Routes(context.Background())
	require.NoError(t, err)
	require.Len(t, routes, 2)

	user := routes[0]
	assert.Equal(t, "/users/{id}", user.URI)
	assert.Equal(t, []string{"GET"}, user.Methods)
	assert.Equal(t, "showUser", user.OperationID)
	assert.Equal(t, "Fetch a single user", user.Summary)

	opts, err := user.Action.Decode()
	require.NoError(t, err)
	assert.Equal(t, "users@Show", opts.Uses)
	assert.Equal(t, []string{"v1"}, opts.Versions)
	require.NotNil(t, opts.Protected)
	assert.True(t, *opts.Protected)
	assert.Equal(t, []string{"users:read"}, opts.Scopes)
	assert.Equal(t, []string{"key"}, opts.Providers)
	assert.Equal(t, 30, opts.Limit)
	assert.Equal(t, 60, opts.Expires)

	health := routes[1]
	assert.Equal(t, []string{"GET", "HEAD"}, health.Methods)
	assert.Empty(t, health.Action, "structural keys do not leak into the bag")
}

func TestManifestSource_NameAlias(t *testing.T) {
	src := manifest.FromBytes([]byte(`
routes:
  - path: /ping
    methods: [GET]
    name: ping
  - path: /pong
    methods: [GET]
    name: ignored
    operation_id: pong
`))

	routes, err := src.Routes(context.Background())
	require.NoError(t, err)
	require.Len(t, routes, 2)
	assert.Equal(t, "ping", routes[0].OperationID)
	assert.Equal(t, "pong", routes[1].OperationID, "operation_id wins over name")
	assert.Empty(t, routes[0].Action)
}

func TestManifestSource_Validation(t *testing.T) {
	t.Run("missing path", func(t *testing.T) {
		src := manifest.FromBytes([]byte("routes:\n  - methods: [GET]\n"))
		_, err := src.Routes(context.Background())
		assert.ErrorContains(t, err, "missing path")
	})

	t.Run("missing methods", func(t *testing.T) {
		src := manifest.FromBytes([]byte("routes:\n  - path: /a\n"))
		_, err := src.Routes(context.Background())
		assert.ErrorContains(t, err, "missing methods")
	})

	t.Run("bad yaml", func(t *testing.T) {
		src := manifest.FromBytes([]byte(":\t:"))
		_, err := src.Routes(context.Background())
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		src := manifest.New("/does/not/exist.yaml")
		_, err := src.Routes(context.Background())
		assert.Error(t, err)
	})
}
