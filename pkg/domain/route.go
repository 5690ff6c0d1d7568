package domain

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// RawRoute is a route definition as produced by an upstream source. It has no
// lifecycle of its own; the compiler reads it into a Route and discards it.
type RawRoute struct {
	URI         string
	Methods     []string
	OperationID string
	Summary     string
	Description string
	Action      Bag
}

// Name returns the operation ID, or a "METHOD /path" fallback for sources
// that do not assign one.
func (r RawRoute) Name() string {
	if r.OperationID != "" {
		return r.OperationID
	}
	return strings.Join(r.Methods, ",") + " " + r.URI
}

// Route is the normalized route model. It is built once from a RawRoute plus
// controller-contributed rules and is immutable afterwards; enforcement reads
// it exclusively through the accessors.
type Route struct {
	name          string
	uri           string
	methods       []string
	summary       string
	description   string
	controllerRef string
	handler       http.Handler

	versions    []string
	protected   bool
	scopes      []string
	providers   []string
	limit       int
	expiration  time.Duration
	conditional bool
	middleware  []string
}

// NewRoute normalizes a raw route using its decoded bag options. Keys absent
// from the bag yield the documented defaults: no version constraint, not
// protected, no providers, no scopes, zero limit, zero expiration.
func NewRoute(raw RawRoute, opts Options) *Route {
	rt := &Route{
		name:          raw.Name(),
		uri:           raw.URI,
		methods:       upperMethods(raw.Methods),
		summary:       raw.Summary,
		description:   raw.Description,
		controllerRef: opts.Uses,
		versions:      dedupe(opts.Versions),
		scopes:        dedupe(opts.Scopes),
		providers:     dedupe(opts.Providers),
		limit:         opts.Limit,
		expiration:    time.Duration(opts.Expires) * time.Second,
		middleware:    opts.Middleware,
	}
	if opts.Protected != nil {
		rt.protected = *opts.Protected
	}
	if opts.Conditional != nil {
		rt.conditional = *opts.Conditional
	}
	return rt
}

// Name returns the route's unique name within its gateway.
func (r *Route) Name() string { return r.name }

// URI returns the path pattern, with parameters in {curly} form.
func (r *Route) URI() string { return r.uri }

// Methods returns the HTTP methods the route answers, uppercased.
func (r *Route) Methods() []string { return r.methods }

// Summary returns the source-provided one-line description, if any.
func (r *Route) Summary() string { return r.summary }

// Description returns the source-provided long description, if any.
func (r *Route) Description() string { return r.description }

// ControllerRef returns the "controller@Action" reference, or "" when the
// route is served by an inline handler.
func (r *Route) ControllerRef() string { return r.controllerRef }

// Handler returns the resolved HTTP handler. Nil until the route has been
// compiled against a controller registry.
func (r *Route) Handler() http.Handler { return r.handler }

// Versions returns the API versions the route serves. Empty means all.
func (r *Route) Versions() []string { return r.versions }

// MatchesVersion reports whether the route serves the given API version.
func (r *Route) MatchesVersion(version string) bool {
	if len(r.versions) == 0 {
		return true
	}
	return containsString(r.versions, version)
}

// IsProtected reports whether the route requires authentication.
func (r *Route) IsProtected() bool { return r.protected }

// Scopes returns the OAuth scopes required to access the route.
func (r *Route) Scopes() []string { return r.scopes }

// AuthProviders returns the providers allowed to authenticate the route,
// in preference order.
func (r *Route) AuthProviders() []string { return r.providers }

// RateLimit returns the allowed number of requests per window. Zero means
// the route is not rate limited.
func (r *Route) RateLimit() int { return r.limit }

// RateLimitExpiration returns the rate-limit window length.
func (r *Route) RateLimitExpiration() time.Duration { return r.expiration }

// HasLimit reports whether a positive rate limit is configured.
func (r *Route) HasLimit() bool { return r.limit > 0 }

// IsConditional reports whether responses on this route should honor
// conditional request headers (If-None-Match).
func (r *Route) IsConditional() bool { return r.conditional }

// Middleware returns source-declared middleware names, untouched.
func (r *Route) Middleware() []string { return r.middleware }

func (r *Route) String() string {
	return fmt.Sprintf("%s %s", strings.Join(r.methods, "|"), r.uri)
}

// BindHandler attaches the resolved handler. Called once by the compiler.
func (r *Route) BindHandler(h http.Handler) { r.handler = h }

// SetConditionalDefault applies the gateway-wide conditional-request default
// when the bag did not set one explicitly.
func (r *Route) SetConditionalDefault(opts Options, def bool) {
	if opts.Conditional == nil {
		r.conditional = def
	}
}

// AddScopes merges controller-contributed scopes into the route.
func (r *Route) AddScopes(scopes ...string) {
	r.scopes = dedupe(append(r.scopes, scopes...))
}

// AddProviders merges controller-contributed providers into the route.
func (r *Route) AddProviders(providers ...string) {
	r.providers = dedupe(append(r.providers, providers...))
}

// SetLimit overrides the route's rate limit and window.
func (r *Route) SetLimit(limit int, expiration time.Duration) {
	r.limit = limit
	r.expiration = expiration
}

// Identity is the authenticated caller produced by an auth provider.
type Identity struct {
	Subject string
	Scopes  []string
}

// HasScope reports whether the identity was granted the scope.
func (id Identity) HasScope(scope string) bool {
	return containsString(id.Scopes, scope)
}

func upperMethods(methods []string) []string {
	out := make([]string, 0, len(methods))
	for _, m := range methods {
		out = append(out, strings.ToUpper(strings.TrimSpace(m)))
	}
	return out
}

// dedupe removes duplicates preserving first-seen order.
func dedupe(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
