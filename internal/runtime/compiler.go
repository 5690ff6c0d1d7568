// Package runtime holds the gatepost core: route compilation and the
// enforcement primitives (version negotiation, authentication, rate
// limiting) that consume the compiled metadata.
package runtime

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/gatepost/internal/logging"
	"github.com/aretw0/gatepost/pkg/domain"
	"github.com/aretw0/gatepost/pkg/ports"
)

// Compiler normalizes raw source routes into the internal model: it decodes
// the action bag, binds the controller action, and merges controller-level
// scope/provider/limit rules through the method-filter policy.
type Compiler struct {
	registry           ports.ControllerRegistry
	conditionalDefault bool
	logger             *slog.Logger
}

// CompilerOption configures a Compiler.
type CompilerOption func(*Compiler)

// WithConditionalDefault sets the gateway-wide conditional-request default
// applied to routes whose bag does not set one.
func WithConditionalDefault(v bool) CompilerOption {
	return func(c *Compiler) {
		c.conditionalDefault = v
	}
}

// WithLogger injects the compiler's logger.
func WithLogger(logger *slog.Logger) CompilerOption {
	return func(c *Compiler) {
		c.logger = logger
	}
}

// NewCompiler creates a compiler. A nil registry skips controller binding,
// which is enough for introspection-only consumers (validate, routes).
func NewCompiler(registry ports.ControllerRegistry, opts ...CompilerOption) *Compiler {
	c := &Compiler{
		registry: registry,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile reads every route from the source and normalizes it. Route names
// must be unique within a gateway.
func (c *Compiler) Compile(ctx context.Context, source ports.RouteSource) ([]*domain.Route, error) {
	raws, err := source.Routes(ctx)
	if err != nil {
		return nil, fmt.Errorf("read route source: %w", err)
	}

	seen := make(map[string]struct{}, len(raws))
	routes := make([]*domain.Route, 0, len(raws))
	for _, raw := range raws {
		rt, err := c.compileOne(raw)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[rt.Name()]; dup {
			return nil, fmt.Errorf("duplicate route name %q", rt.Name())
		}
		seen[rt.Name()] = struct{}{}
		routes = append(routes, rt)

		c.logger.Debug("compiled route",
			"route", rt.Name(),
			"uri", rt.URI(),
			"protected", rt.IsProtected(),
			"scopes", rt.Scopes(),
		)
	}

	return routes, nil
}

func (c *Compiler) compileOne(raw domain.RawRoute) (*domain.Route, error) {
	opts, err := raw.Action.Decode()
	if err != nil {
		return nil, fmt.Errorf("route %s: %w", raw.Name(), err)
	}

	rt := domain.NewRoute(raw, opts)
	rt.SetConditionalDefault(opts, c.conditionalDefault)

	if opts.Uses == "" || c.registry == nil {
		return rt, nil
	}

	controller, action, err := c.registry.Resolve(opts.Uses)
	if err != nil {
		return nil, &UnknownControllerError{Route: raw.Name(), Ref: opts.Uses, Err: err}
	}

	handler, ok := controller.Action(action)
	if !ok {
		return nil, &UnknownActionError{Route: raw.Name(), Ref: opts.Uses, Action: action}
	}
	rt.BindHandler(handler)

	// Controller-contributed metadata applies only when the rule's method
	// filter selects the resolved action.
	if src, ok := controller.(domain.ScopeSource); ok {
		for _, rule := range src.ScopeRules() {
			if rule.AppliesTo(action) {
				rt.AddScopes(rule.Scopes...)
			}
		}
	}
	if src, ok := controller.(domain.ProviderSource); ok {
		for _, rule := range src.ProviderRules() {
			if rule.AppliesTo(action) {
				rt.AddProviders(rule.Providers...)
			}
		}
	}
	if src, ok := controller.(domain.LimitSource); ok {
		// The last applicable rule wins, overriding the bag's limit.
		for _, rule := range src.LimitRules() {
			if rule.AppliesTo(action) {
				rt.SetLimit(rule.Limit, rule.Expiration)
			}
		}
	}

	return rt, nil
}
