package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"

	"looview/internal/platform/metrics"
	"looview/internal/platform/middleware"
	"looview/pkg/platform/httputil"
	"looview/pkg/platform/middleware/metadata"
	"looview/pkg/platform/middleware/requesttime"
)

// Registrar is implemented by feature handlers.
type Registrar interface {
	Register(r chi.Router)
}

// HealthCheck reports whether a dependency is reachable.
type HealthCheck func(ctx context.Context) error

// Router wires the shared middleware chain in front of every feature
// handler. Handlers keep their own per-route middleware.
type Router struct {
	logger    *slog.Logger
	locales   middleware.LocaleNegotiator
	validator middleware.IdentityValidator
	checks    map[string]HealthCheck
	metrics   bool
}

type Option func(*Router)

// WithHealthCheck adds a named dependency check to GET /health.
func WithHealthCheck(name string, check HealthCheck) Option {
	return func(r *Router) { r.checks[name] = check }
}

// WithMetricsEndpoint exposes GET /metrics.
func WithMetricsEndpoint() Option {
	return func(r *Router) { r.metrics = true }
}

func NewRouter(logger *slog.Logger, locales middleware.LocaleNegotiator, validator middleware.IdentityValidator, opts ...Option) *Router {
	r := &Router{
		logger:    logger,
		locales:   locales,
		validator: validator,
		checks:    make(map[string]HealthCheck),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Handler builds the chi router with every registrar mounted.
func (rt *Router) Handler(registrars ...Registrar) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(rt.logger))
	r.Use(metadata.ClientMetadata)
	r.Use(requesttime.Middleware)
	r.Use(middleware.Logger(rt.logger))

	r.Get("/health", rt.handleHealth)
	if rt.metrics {
		r.Handle("/metrics", metrics.Handler())
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.Locale(rt.locales))
		r.Use(middleware.Authenticate(rt.validator, rt.logger))
		for _, reg := range registrars {
			reg.Register(r)
		}
	})
	return r
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func (rt *Router) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	names := make([]string, 0, len(rt.checks))
	for name := range rt.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	resp := healthResponse{Status: "ok"}
	status := http.StatusOK
	if len(names) > 0 {
		resp.Checks = make(map[string]string, len(names))
	}
	for _, name := range names {
		if err := rt.checks[name](ctx); err != nil {
			rt.logger.WarnContext(ctx, "health check failed",
				"request_id", middleware.GetRequestID(ctx),
				"check", name,
				"error", err,
			)
			resp.Checks[name] = "down"
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[name] = "ok"
	}
	httputil.WriteJSON(w, status, resp)
}
