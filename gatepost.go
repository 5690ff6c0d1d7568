package gatepost

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sort"

	httpAdapter "github.com/aretw0/gatepost/internal/adapters/http"
	"github.com/aretw0/gatepost/internal/logging"
	"github.com/aretw0/gatepost/internal/runtime"
	"github.com/aretw0/gatepost/pkg/adapters/memory"
	"github.com/aretw0/gatepost/pkg/domain"
	"github.com/aretw0/gatepost/pkg/ports"
)

// Version is the gatepost release version.
var Version = "0.4.0"

// Gateway is the high-level entry point for the gatepost library. It compiles
// one route source into the normalized model and serves it with the
// enforcement chain attached.
type Gateway struct {
	source   ports.RouteSource
	registry ports.ControllerRegistry
	store    ports.CounterStore
	logger   *slog.Logger

	vendor         string
	defaultVersion string
	conditional    bool

	providers        map[string]ports.AuthProvider
	defaultProviders []string

	routes     []*domain.Route
	negotiator *runtime.Negotiator
	auth       *runtime.Authenticator
	limiter    *runtime.Limiter
}

// Option defines a functional option for configuring the Gateway.
type Option func(*Gateway)

// WithRegistry injects the controller registry resolving "controller@Action"
// references. Without one, routes compile for introspection only.
func WithRegistry(registry ports.ControllerRegistry) Option {
	return func(g *Gateway) {
		g.registry = registry
	}
}

// WithCounterStore injects the rate-limit counter store. Defaults to the
// in-memory store; production multi-node deployments use the redis adapter.
func WithCounterStore(store ports.CounterStore) Option {
	return func(g *Gateway) {
		g.store = store
	}
}

// WithVendor sets the vendor tree used in version negotiation media types
// (application/vnd.<vendor>.<version>+json).
func WithVendor(vendor string) Option {
	return func(g *Gateway) {
		g.vendor = vendor
	}
}

// WithDefaultVersion sets the API version assumed when a request does not
// negotiate one.
func WithDefaultVersion(version string) Option {
	return func(g *Gateway) {
		g.defaultVersion = version
	}
}

// WithConditionalRequests sets the gateway-wide conditional-request default
// for routes whose bag does not decide it.
func WithConditionalRequests(v bool) Option {
	return func(g *Gateway) {
		g.conditional = v
	}
}

// WithAuthProvider registers an authentication provider under a name at
// construction time. Equivalent to calling RegisterAuthProvider afterwards.
func WithAuthProvider(name string, provider ports.AuthProvider) Option {
	return func(g *Gateway) {
		g.providers[name] = provider
	}
}

// WithDefaultProviders sets the provider order used by protected routes that
// do not name providers themselves.
func WithDefaultProviders(names ...string) Option {
	return func(g *Gateway) {
		g.defaultProviders = names
	}
}

// WithLogger injects the application logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Gateway) {
		g.logger = logger
	}
}

// New compiles the source and assembles a gateway.
func New(ctx context.Context, source ports.RouteSource, opts ...Option) (*Gateway, error) {
	g := &Gateway{
		source:         source,
		store:          memory.NewCounter(),
		logger:         logging.NewNop(),
		vendor:         "api",
		defaultVersion: "v1",
		providers:      make(map[string]ports.AuthProvider),
	}
	for _, opt := range opts {
		opt(g)
	}

	compiler := runtime.NewCompiler(g.registry,
		runtime.WithConditionalDefault(g.conditional),
		runtime.WithLogger(g.logger),
	)
	routes, err := compiler.Compile(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("compile routes: %w", err)
	}

	g.routes = routes
	g.negotiator = runtime.NewNegotiator(g.vendor, g.defaultVersion)
	g.auth = runtime.NewAuthenticator(g.logger)
	g.limiter = runtime.NewLimiter(g.store)

	// Sorted so implicit default-provider order is stable.
	names := make([]string, 0, len(g.providers))
	for name := range g.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		g.auth.Register(name, g.providers[name])
	}
	if len(g.defaultProviders) > 0 {
		g.auth.SetDefaults(g.defaultProviders...)
	}

	return g, nil
}

// Routes returns the compiled routes in source order.
func (g *Gateway) Routes() []*domain.Route {
	return g.routes
}

// Describe returns the compiled route with the given name.
func (g *Gateway) Describe(name string) (*domain.Route, error) {
	for _, rt := range g.routes {
		if rt.Name() == name {
			return rt, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrRouteNotFound, name)
}

// RegisterAuthProvider binds an authentication provider under a name.
// Providers must be registered before Handler is called on a serving host.
func (g *Gateway) RegisterAuthProvider(name string, provider ports.AuthProvider) {
	g.auth.Register(name, provider)
}

// SetDefaultProviders overrides the provider order used by protected routes
// that do not name providers themselves.
func (g *Gateway) SetDefaultProviders(names ...string) {
	g.auth.SetDefaults(names...)
}

// IdentityFrom returns the authenticated identity the enforcement chain
// attached to the request context, if any.
func IdentityFrom(ctx context.Context) (domain.Identity, bool) {
	return httpAdapter.IdentityFrom(ctx)
}

// Handler builds the HTTP handler serving the compiled routes, the
// introspection endpoints and /metrics.
func (g *Gateway) Handler() http.Handler {
	return httpAdapter.NewHandler(httpAdapter.Config{
		Routes:     g.routes,
		Negotiator: g.negotiator,
		Auth:       g.auth,
		Limiter:    g.limiter,
		Logger:     g.logger,
	})
}
