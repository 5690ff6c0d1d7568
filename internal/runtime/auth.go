package runtime

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/aretw0/gatepost/internal/logging"
	"github.com/aretw0/gatepost/pkg/domain"
	"github.com/aretw0/gatepost/pkg/ports"
)

// Authenticator runs the provider chain for protected routes. Providers are
// tried in the order the route lists them, falling back to the gateway-wide
// default order.
type Authenticator struct {
	mu        sync.RWMutex
	providers map[string]ports.AuthProvider
	defaults  []string
	logger    *slog.Logger
}

// NewAuthenticator creates an empty authenticator.
func NewAuthenticator(logger *slog.Logger) *Authenticator {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Authenticator{
		providers: make(map[string]ports.AuthProvider),
		logger:    logger,
	}
}

// Register binds a provider under a name.
func (a *Authenticator) Register(name string, provider ports.AuthProvider) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.providers[name] = provider
	if !containsName(a.defaults, name) {
		a.defaults = append(a.defaults, name)
	}
}

// SetDefaults overrides the fallback provider order for routes that do not
// name providers themselves.
func (a *Authenticator) SetDefaults(names ...string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.defaults = names
}

// Authenticate tries the route's providers against the request. The first
// identity wins; when every provider fails the last failure is reported.
func (a *Authenticator) Authenticate(r *http.Request, route *domain.Route) (domain.Identity, error) {
	names := route.AuthProviders()
	if len(names) == 0 {
		a.mu.RLock()
		names = append([]string(nil), a.defaults...)
		a.mu.RUnlock()
	}
	if len(names) == 0 {
		return domain.Identity{}, fmt.Errorf("route %s: %w", route.Name(), domain.ErrNoIdentity)
	}

	var lastErr error
	for _, name := range names {
		a.mu.RLock()
		provider, ok := a.providers[name]
		a.mu.RUnlock()
		if !ok {
			a.logger.Warn("route names unregistered auth provider", "route", route.Name(), "provider", name)
			continue
		}

		id, err := provider.Authenticate(r)
		if err == nil {
			return id, nil
		}
		lastErr = err
	}

	if lastErr == nil {
		lastErr = domain.ErrNoIdentity
	}
	return domain.Identity{}, fmt.Errorf("route %s: %w", route.Name(), lastErr)
}

// TokenProvider is a minimal AuthProvider mapping static tokens to
// identities. It reads "Authorization: Bearer <token>" and falls back to the
// X-API-Key header. Intended for tests and simple deployments; production
// hosts plug in their own providers.
type TokenProvider struct {
	mu     sync.RWMutex
	tokens map[string]domain.Identity
}

// NewTokenProvider creates an empty token provider.
func NewTokenProvider() *TokenProvider {
	return &TokenProvider{tokens: make(map[string]domain.Identity)}
}

// Add maps a token to an identity.
func (p *TokenProvider) Add(token string, id domain.Identity) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tokens[token] = id
}

// Authenticate implements ports.AuthProvider.
func (p *TokenProvider) Authenticate(r *http.Request) (domain.Identity, error) {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	if token == "" || token == r.Header.Get("Authorization") {
		token = r.Header.Get("X-API-Key")
	}
	if token == "" {
		return domain.Identity{}, domain.ErrNoIdentity
	}

	p.mu.RLock()
	id, ok := p.tokens[token]
	p.mu.RUnlock()
	if !ok {
		return domain.Identity{}, fmt.Errorf("unknown token")
	}
	return id, nil
}

func containsName(list []string, name string) bool {
	for _, v := range list {
		if v == name {
			return true
		}
	}
	return false
}
