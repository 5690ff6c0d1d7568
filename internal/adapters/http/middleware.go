package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/aretw0/gatepost/pkg/domain"
)

type contextKey string

const identityKey contextKey = "gatepost.identity"

// IdentityFrom returns the identity the enforcement chain attached to the
// request, if any.
func IdentityFrom(ctx context.Context) (domain.Identity, bool) {
	id, ok := ctx.Value(identityKey).(domain.Identity)
	return id, ok
}

// wrap builds the enforcement chain around a route's handler: version match,
// authentication, scope check, rate limit, conditional requests. Order
// matters: rejected requests must not consume rate-limit quota before being
// counted against the right client.
func (s *Server) wrap(rt *domain.Route) http.Handler {
	handler := rt.Handler()
	if rt.IsConditional() {
		handler = conditionalHandler(handler)
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		defer func() {
			s.metrics.observe(rt.Name(), r.Method, rec.status, time.Since(start))
		}()

		version := s.negotiator.Negotiate(r)
		if !rt.MatchesVersion(version) {
			s.writeError(rec, http.StatusNotAcceptable,
				fmt.Sprintf("version %s is not served by this route", version))
			return
		}

		var identity domain.Identity
		if rt.IsProtected() {
			var err error
			identity, err = s.auth.Authenticate(r, rt)
			if err != nil {
				s.logger.Debug("authentication failed", "route", rt.Name(), "error", err)
				rec.Header().Set("WWW-Authenticate", "Bearer")
				s.writeError(rec, http.StatusUnauthorized, "authentication required")
				return
			}

			for _, scope := range rt.Scopes() {
				if !identity.HasScope(scope) {
					s.writeError(rec, http.StatusForbidden,
						fmt.Sprintf("missing required scope %q", scope))
					return
				}
			}

			r = r.WithContext(context.WithValue(r.Context(), identityKey, identity))
		}

		if rt.HasLimit() {
			key := identity.Subject
			if key == "" {
				key = clientIP(r)
			}

			res, err := s.limiter.Check(r.Context(), rt, key)
			switch {
			case err != nil:
				// A broken counter store must not take the API down; let the
				// request through and surface the failure in the logs.
				s.logger.Warn("rate limit check failed", "route", rt.Name(), "error", err)
			default:
				rec.Header().Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
				rec.Header().Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
				rec.Header().Set("X-RateLimit-Reset", strconv.Itoa(int(res.Reset.Seconds())))
				if res.Limited {
					s.metrics.limited(rt.Name())
					rec.Header().Set("Retry-After", strconv.Itoa(int(res.Reset.Seconds())))
					s.writeError(rec, http.StatusTooManyRequests, "rate limit exceeded")
					return
				}
			}
		}

		handler.ServeHTTP(rec, r)
	})
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]any{
		"message":     message,
		"status_code": status,
	}); err != nil {
		s.logger.Error("error response encode failed", "error", err)
	}
}

// clientIP strips the port from the remote address; rate limiting falls back
// to it for anonymous clients.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// statusRecorder captures the status code for metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (w *statusRecorder) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
