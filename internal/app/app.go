package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/cokeke26/cotizador/internal/app/config"
	apphttp "github.com/cokeke26/cotizador/internal/app/http"
	"github.com/cokeke26/cotizador/internal/app/http/handlers"
	"github.com/cokeke26/cotizador/internal/domain/quote/pdf/gofpdf"
	"github.com/cokeke26/cotizador/internal/infra/db/postgres"
	"github.com/cokeke26/cotizador/internal/infra/metrics"
)

func Run(cfg config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	h := handlers.New(
		log,
		cfg,
		postgres.NewSequencer(db),
		postgres.NewQuoteRepo(db),
		gofpdf.New(log),
		m,
	)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           apphttp.NewRouter(cfg, log, reg, m, h),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
