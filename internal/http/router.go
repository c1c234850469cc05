// Package httpapi assembles the public router: middleware chain, application
// routes, health, and metrics.
package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	apphandler "insureease/internal/application/handler"
	"insureease/internal/platform/metrics"
	"insureease/internal/platform/middleware"
)

// Options carries the router's collaborators. Metrics may be nil in tests.
type Options struct {
	Logger         *slog.Logger
	Metrics        *metrics.Metrics
	Applications   *apphandler.Handler
	RequestTimeout time.Duration
}

// NewRouter wires all public endpoints behind the shared middleware chain.
func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(opts.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(opts.Logger))
	r.Use(middleware.LatencyMiddleware(opts.Metrics))
	if opts.RequestTimeout > 0 {
		r.Use(middleware.Timeout(opts.RequestTimeout))
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.ContentTypeJSON)
		opts.Applications.Register(r)
	})

	return r
}
