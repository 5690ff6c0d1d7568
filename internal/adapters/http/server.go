// Package http mounts compiled routes on a chi router, wrapping each one in
// the enforcement chain that consumes the route's metadata accessors.
package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	oapiruntime "github.com/oapi-codegen/runtime"

	"github.com/aretw0/gatepost/internal/dto"
	"github.com/aretw0/gatepost/internal/logging"
	"github.com/aretw0/gatepost/internal/runtime"
	"github.com/aretw0/gatepost/pkg/domain"
)

// Server exposes compiled routes plus the introspection endpoints under
// /__gatepost/ and the Prometheus /metrics endpoint.
type Server struct {
	routes     []*domain.Route
	negotiator *runtime.Negotiator
	auth       *runtime.Authenticator
	limiter    *runtime.Limiter
	metrics    *Metrics
	logger     *slog.Logger
}

// Config wires the server's collaborators.
type Config struct {
	Routes     []*domain.Route
	Negotiator *runtime.Negotiator
	Auth       *runtime.Authenticator
	Limiter    *runtime.Limiter
	Logger     *slog.Logger
}

// NewHandler creates the HTTP handler for a compiled gateway.
func NewHandler(cfg Config) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	s := &Server{
		routes:     cfg.Routes,
		negotiator: cfg.Negotiator,
		auth:       cfg.Auth,
		limiter:    cfg.Limiter,
		metrics:    NewMetrics(),
		logger:     logger,
	}

	r := chi.NewRouter()

	for _, rt := range s.routes {
		if rt.Handler() == nil {
			s.logger.Warn("skipping route without handler", "route", rt.Name())
			continue
		}
		h := s.wrap(rt)
		for _, method := range rt.Methods() {
			r.Method(method, rt.URI(), h)
		}
	}

	r.Route("/__gatepost", func(r chi.Router) {
		r.Get("/routes", s.listRoutes)
		r.Get("/routes/{name}", s.showRoute)
	})
	r.Handle("/metrics", s.metrics.Handler())

	return enableCORS(r)
}

// listRoutesParams are the introspection filters, bound from the query
// string in OpenAPI "form" style.
type listRoutesParams struct {
	Version   *string
	Protected *bool
}

// listRoutes handles GET /__gatepost/routes.
func (s *Server) listRoutes(w http.ResponseWriter, r *http.Request) {
	var params listRoutesParams
	if err := oapiruntime.BindQueryParameter("form", true, false, "version", r.URL.Query(), &params.Version); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid version parameter")
		return
	}
	if err := oapiruntime.BindQueryParameter("form", true, false, "protected", r.URL.Query(), &params.Protected); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid protected parameter")
		return
	}

	views := make([]dto.RouteView, 0, len(s.routes))
	for _, rt := range s.routes {
		if params.Version != nil && !rt.MatchesVersion(*params.Version) {
			continue
		}
		if params.Protected != nil && rt.IsProtected() != *params.Protected {
			continue
		}
		views = append(views, dto.FromRoute(rt))
	}

	s.writeJSON(w, views)
}

// showRoute handles GET /__gatepost/routes/{name}.
func (s *Server) showRoute(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	for _, rt := range s.routes {
		if rt.Name() == name {
			s.writeJSON(w, dto.FromRoute(rt))
			return
		}
	}
	s.writeError(w, http.StatusNotFound, domain.ErrRouteNotFound.Error())
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-API-Key")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
