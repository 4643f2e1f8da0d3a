package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/cokeke26/cotizador/internal/app/config"
	"github.com/cokeke26/cotizador/internal/app/http/handlers"
	"github.com/cokeke26/cotizador/internal/infra/metrics"
)

func newTestRouter() http.Handler {
	cfg := config.Config{InternalToken: "tok"}
	h := handlers.New(zerolog.Nop(), cfg, nil, nil, nil, nil)
	reg := prometheus.NewRegistry()
	return NewRouter(cfg, zerolog.Nop(), reg, metrics.New(reg), h)
}

func TestRouterHealthIsOpen(t *testing.T) {
	resp := httptest.NewRecorder()
	newTestRouter().ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "ok", resp.Body.String())
}

func TestRouterMetricsIsOpen(t *testing.T) {
	resp := httptest.NewRecorder()
	newTestRouter().ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestRouterQuotesRequiresToken(t *testing.T) {
	resp := httptest.NewRecorder()
	newTestRouter().ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/v1/quotes", nil))
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}
