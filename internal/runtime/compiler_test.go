package runtime_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/gatepost/internal/runtime"
	"github.com/aretw0/gatepost/pkg/adapters/memory"
	"github.com/aretw0/gatepost/pkg/domain"
	"github.com/aretw0/gatepost/pkg/ports"
)

// staticSource feeds fixed raw routes to the compiler.
type staticSource []domain.RawRoute

func (s staticSource) Routes(ctx context.Context) ([]domain.RawRoute, error) {
	return s, nil
}

// usersController contributes metadata through every capability interface.
type usersController struct {
	memory.Actions
}

func (usersController) ScopeRules() []domain.ScopeRule {
	return []domain.ScopeRule{
		{Scopes: []string{"users:read"}, MethodFilter: domain.MethodFilter{Only: []string{"Show", "Index"}}},
		{Scopes: []string{"users:admin"}, MethodFilter: domain.MethodFilter{Except: []string{"Show", "Index"}}},
	}
}

func (usersController) ProviderRules() []domain.ProviderRule {
	return []domain.ProviderRule{
		{Providers: []string{"jwt"}},
	}
}

func (usersController) LimitRules() []domain.LimitRule {
	return []domain.LimitRule{
		{Limit: 5, Expiration: 30 * time.Second, MethodFilter: domain.MethodFilter{Methods: []string{"Destroy"}}},
	}
}

func newUsersController() usersController {
	noop := func(w http.ResponseWriter, r *http.Request) {}
	return usersController{Actions: memory.Actions{
		"Show":    noop,
		"Index":   noop,
		"Destroy": noop,
	}}
}

func newRegistry() *memory.Registry {
	reg := memory.NewRegistry()
	reg.Register("users", newUsersController())
	return reg
}

func TestCompiler_BindsHandlerAndMergesRules(t *testing.T) {
	compiler := runtime.NewCompiler(newRegistry())

	source := staticSource{
		{URI: "/users/{id}", Methods: []string{"GET"}, OperationID: "showUser",
			Action: domain.Bag{"uses": "users@Show", "scopes": []string{"api"}}},
		{URI: "/users/{id}", Methods: []string{"DELETE"}, OperationID: "destroyUser",
			Action: domain.Bag{"uses": "users@Destroy", "limit": 100, "expires": 3600}},
	}

	routes, err := compiler.Compile(context.Background(), source)
	require.NoError(t, err)
	require.Len(t, routes, 2)

	show := routes[0]
	assert.NotNil(t, show.Handler())
	assert.Equal(t, []string{"api", "users:read"}, show.Scopes(), "route scopes merge with applicable controller rules")
	assert.NotContains(t, show.Scopes(), "users:admin", "except rule excludes Show")
	assert.Equal(t, []string{"jwt"}, show.AuthProviders(), "unfiltered rule applies to every action")

	destroy := routes[1]
	assert.Equal(t, []string{"users:admin"}, destroy.Scopes())
	assert.Equal(t, 5, destroy.RateLimit(), "controller limit rule overrides the bag")
	assert.Equal(t, 30*time.Second, destroy.RateLimitExpiration())
}

func TestCompiler_Errors(t *testing.T) {
	compiler := runtime.NewCompiler(newRegistry())

	t.Run("unknown controller", func(t *testing.T) {
		_, err := compiler.Compile(context.Background(), staticSource{
			{URI: "/a", Methods: []string{"GET"}, Action: domain.Bag{"uses": "ghosts@Show"}},
		})
		var ucErr *runtime.UnknownControllerError
		require.ErrorAs(t, err, &ucErr)
		assert.ErrorIs(t, err, ports.ErrUnknownController)
	})

	t.Run("malformed reference", func(t *testing.T) {
		_, err := compiler.Compile(context.Background(), staticSource{
			{URI: "/a", Methods: []string{"GET"}, Action: domain.Bag{"uses": "users"}},
		})
		assert.ErrorIs(t, err, ports.ErrMalformedRef)
	})

	t.Run("unknown action", func(t *testing.T) {
		_, err := compiler.Compile(context.Background(), staticSource{
			{URI: "/a", Methods: []string{"GET"}, OperationID: "approveUser",
				Action: domain.Bag{"uses": "users@Approve"}},
		})
		var uaErr *runtime.UnknownActionError
		require.ErrorAs(t, err, &uaErr)
		assert.Equal(t, "approveUser", uaErr.Route)
		assert.Equal(t, "Approve", uaErr.Action)
	})

	t.Run("duplicate route names", func(t *testing.T) {
		_, err := compiler.Compile(context.Background(), staticSource{
			{URI: "/a", Methods: []string{"GET"}, OperationID: "dup", Action: domain.Bag{}},
			{URI: "/b", Methods: []string{"GET"}, OperationID: "dup", Action: domain.Bag{}},
		})
		assert.ErrorContains(t, err, "duplicate route name")
	})
}

func TestCompiler_NilRegistrySkipsBinding(t *testing.T) {
	compiler := runtime.NewCompiler(nil, runtime.WithConditionalDefault(true))

	routes, err := compiler.Compile(context.Background(), staticSource{
		{URI: "/a", Methods: []string{"GET"}, Action: domain.Bag{"uses": "users@Show"}},
	})
	require.NoError(t, err)
	require.Len(t, routes, 1)
	assert.Nil(t, routes[0].Handler())
	assert.True(t, routes[0].IsConditional(), "gateway conditional default reaches compiled routes")
}
