package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterConfig carries the dependencies the router mounts.
type RouterConfig struct {
	Version  string
	Store    SignalStore
	Registry *prometheus.Registry
	Logger   *slog.Logger
}

// NewRouter assembles the API router.
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Route("/api", func(api chi.Router) {
		api.Mount("/health", NewHealthHandler(cfg.Version, cfg.Logger).Routes())
		api.Mount("/", NewSignalsHandler(cfg.Store, cfg.Logger).Routes())
	})

	if cfg.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(cfg.Registry, promhttp.HandlerOpts{}))
	}

	return r
}
