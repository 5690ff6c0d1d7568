package memory

import (
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/aretw0/gatepost/pkg/ports"
)

// Registry implements ports.ControllerRegistry in memory.
// Safe for concurrent use.
type Registry struct {
	mu          sync.RWMutex
	controllers map[string]ports.Controller
}

// NewRegistry creates a new in-memory controller registry.
func NewRegistry() *Registry {
	return &Registry{
		controllers: make(map[string]ports.Controller),
	}
}

// Register binds a controller under a name. Registering the same name twice
// replaces the earlier controller.
func (r *Registry) Register(name string, controller ports.Controller) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.controllers[name] = controller
}

// Resolve splits a "controller@Action" reference and returns the registered
// controller plus the action name.
func (r *Registry) Resolve(ref string) (ports.Controller, string, error) {
	name, action, ok := strings.Cut(ref, "@")
	if !ok || name == "" || action == "" {
		return nil, "", fmt.Errorf("%w: %q", ports.ErrMalformedRef, ref)
	}

	r.mu.RLock()
	controller, found := r.controllers[name]
	r.mu.RUnlock()

	if !found {
		return nil, "", fmt.Errorf("%w: %q", ports.ErrUnknownController, name)
	}

	return controller, action, nil
}

// Actions is a minimal Controller built from a map of named handlers, for
// hosts that do not need a struct-based controller.
type Actions map[string]http.HandlerFunc

// Action implements ports.Controller.
func (a Actions) Action(name string) (http.Handler, bool) {
	h, ok := a[name]
	if !ok {
		return nil, false
	}
	return h, true
}
