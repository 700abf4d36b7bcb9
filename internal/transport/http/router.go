// Package httptransport assembles the service router: shared middleware,
// public routes, the staff-only group and the operational endpoints.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	dErrors "respass/pkg/domain-errors"
	"respass/pkg/platform/httputil"
	authmw "respass/pkg/platform/middleware/auth"
	"respass/pkg/platform/middleware/cors"
	"respass/pkg/platform/middleware/jsonbody"
	"respass/pkg/platform/middleware/metadata"
	"respass/pkg/platform/middleware/request"
	"respass/pkg/platform/middleware/requesttime"
)

// StaffRoutes is implemented by handlers whose routes require a staff token.
type StaffRoutes interface {
	Register(r chi.Router)
}

// PublicRoutes is implemented by handlers with auth-exempt routes.
type PublicRoutes interface {
	RegisterPublic(r chi.Router)
}

// HealthCheck reports whether one dependency is usable.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// Deps is everything the router mounts.
type Deps struct {
	Logger    *slog.Logger
	Validator authmw.StaffValidator
	Metrics   http.Handler
	Health    []HealthCheck
	Public    []PublicRoutes
	Staff     []StaffRoutes
}

var errNoService = dErrors.New(dErrors.CodeNotFound, "No service on this path")

// NewRouter wires the middleware chain and every module's routes.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(request.RequestID)
	r.Use(request.Recovery(d.Logger))
	r.Use(metadata.ClientMetadata)
	r.Use(request.Logger(d.Logger))
	r.Use(requesttime.Middleware)
	r.Use(cors.Middleware)

	r.Get("/healthz", healthHandler(d.Health, d.Logger))
	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics)
	}

	r.Group(func(r chi.Router) {
		r.Use(jsonbody.Require)
		for _, m := range d.Public {
			m.RegisterPublic(r)
		}
		r.Group(func(r chi.Router) {
			r.Use(authmw.RequireStaff(d.Validator, d.Logger))
			for _, m := range d.Staff {
				m.Register(r)
			}
		})
	})

	notFound := func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteError(w, errNoService)
	}
	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)
	return r
}

func healthHandler(checks []HealthCheck, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := make(map[string]string, len(checks))
		healthy := true
		for _, c := range checks {
			if err := c.Check(r.Context()); err != nil {
				logger.WarnContext(r.Context(), "health check failed",
					"dependency", c.Name,
					"error", err,
				)
				status[c.Name] = "down"
				healthy = false
				continue
			}
			status[c.Name] = "up"
		}
		code := http.StatusOK
		if !healthy {
			code = http.StatusServiceUnavailable
		}
		httputil.WriteJSON(w, code, map[string]any{"healthy": healthy, "dependencies": status})
	}
}
