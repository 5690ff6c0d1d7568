// Package dto holds serialization views shared by the HTTP, MCP and CLI
// surfaces.
package dto

import "github.com/aretw0/gatepost/pkg/domain"

// RouteView is the wire representation of a compiled route.
type RouteView struct {
	Name        string   `json:"name"`
	URI         string   `json:"uri"`
	Methods     []string `json:"methods"`
	Versions    []string `json:"versions,omitempty"`
	Protected   bool     `json:"protected"`
	Scopes      []string `json:"scopes,omitempty"`
	Providers   []string `json:"providers,omitempty"`
	RateLimit   int      `json:"rate_limit,omitempty"`
	RateExpires int      `json:"rate_limit_expires,omitempty"` // seconds
	Conditional bool     `json:"conditional_request"`
	Uses        string   `json:"uses,omitempty"`
	Summary     string   `json:"summary,omitempty"`
	Description string   `json:"description,omitempty"`
}

// FromRoute maps a compiled route onto its view.
func FromRoute(rt *domain.Route) RouteView {
	return RouteView{
		Name:        rt.Name(),
		URI:         rt.URI(),
		Methods:     rt.Methods(),
		Versions:    rt.Versions(),
		Protected:   rt.IsProtected(),
		Scopes:      rt.Scopes(),
		Providers:   rt.AuthProviders(),
		RateLimit:   rt.RateLimit(),
		RateExpires: int(rt.RateLimitExpiration().Seconds()),
		Conditional: rt.IsConditional(),
		Uses:        rt.ControllerRef(),
		Summary:     rt.Summary(),
		Description: rt.Description(),
	}
}

// FromRoutes maps a route list onto views, preserving order.
func FromRoutes(routes []*domain.Route) []RouteView {
	views := make([]RouteView, 0, len(routes))
	for _, rt := range routes {
		views = append(views, FromRoute(rt))
	}
	return views
}
