package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/cokeke26/cotizador/internal/app/config"
	"github.com/cokeke26/cotizador/internal/app/http/handlers"
	"github.com/cokeke26/cotizador/internal/app/http/middleware"
	"github.com/cokeke26/cotizador/internal/infra/metrics"
)

func NewRouter(cfg config.Config, log zerolog.Logger, reg *prometheus.Registry, m *metrics.Metrics, h *handlers.Handlers) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Instrument(m))

	r.Get("/health", h.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	r.Route("/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.InternalAuth(cfg.InternalToken))

			r.Post("/quotes", h.CreateQuote)
		})
	})

	return r
}
