package ports

import (
	"net/http"

	"github.com/aretw0/gatepost/pkg/domain"
)

// AuthProvider authenticates a request into an identity. Providers are
// registered under a name and tried in the order a route lists them.
type AuthProvider interface {
	Authenticate(r *http.Request) (domain.Identity, error)
}

// AuthProviderFunc adapts a function to the AuthProvider interface.
type AuthProviderFunc func(r *http.Request) (domain.Identity, error)

// Authenticate implements AuthProvider.
func (f AuthProviderFunc) Authenticate(r *http.Request) (domain.Identity, error) {
	return f(r)
}
