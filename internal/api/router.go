package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	mw "github.com/kiranshivaraju/latencybench/internal/api/middleware"
	"github.com/kiranshivaraju/latencybench/internal/api/response"
	"github.com/kiranshivaraju/latencybench/internal/metrics"
)

// Dependencies holds all handler and middleware dependencies for the router.
type Dependencies struct {
	RateLimit *mw.RateLimit

	HealthHandler     http.HandlerFunc
	ReferenceHandler  http.HandlerFunc
	LatencyHandler    http.HandlerFunc
	TableHandler      http.HandlerFunc
	HistoryHandler    http.HandlerFunc
	TransitionHandler http.HandlerFunc

	DashboardPage http.HandlerFunc
	FAQPage       http.HandlerFunc

	MetricsHandler http.Handler
}

// NewRouter builds the Chi router with middleware stack and all routes.
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RealIP)
	r.Use(mw.RequestID)
	r.Use(mw.Logger)
	r.Use(mw.Recovery)
	r.Use(metrics.Middleware)

	// Operational endpoints are never rate limited
	r.Get("/api/v1/health", orNotImplemented(deps.HealthHandler))
	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	r.Group(func(r chi.Router) {
		if deps.RateLimit != nil {
			r.Use(deps.RateLimit.Limit)
		}

		r.Get("/", orNotImplemented(deps.DashboardPage))
		r.Get("/faq", orNotImplemented(deps.FAQPage))

		r.Get("/api/v1/reference", orNotImplemented(deps.ReferenceHandler))
		r.Get("/api/v1/latency", orNotImplemented(deps.LatencyHandler))
		r.Get("/api/v1/table", orNotImplemented(deps.TableHandler))
		r.Get("/api/v1/databases/{id}/history", orNotImplemented(deps.HistoryHandler))
		r.Get("/api/v1/view/transition", orNotImplemented(deps.TransitionHandler))
	})

	return r
}

// orNotImplemented returns the handler if non-nil, or a 501 placeholder.
func orNotImplemented(h http.HandlerFunc) http.HandlerFunc {
	if h != nil {
		return h
	}
	return func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, http.StatusNotImplemented, "NOT_IMPLEMENTED", "Endpoint not yet implemented", nil)
	}
}
