package handlers

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/cokeke26/cotizador/internal/app/config"
	"github.com/cokeke26/cotizador/internal/domain/quote"
	"github.com/cokeke26/cotizador/internal/domain/quote/pdf"
	"github.com/cokeke26/cotizador/internal/infra/metrics"
)

// Sequencer assigns the next quote number for a year, collision-free under
// concurrent callers.
type Sequencer interface {
	NextNumber(ctx context.Context, year int) (int, string, error)
}

// QuoteStore persists a quote with its items transactionally.
type QuoteStore interface {
	Save(ctx context.Context, q quote.Quote, year, seq int) (int64, error)
}

type Handlers struct {
	Log       zerolog.Logger
	Cfg       config.Config
	Sequencer Sequencer
	Quotes    QuoteStore
	PDF       pdf.Generator
	Metrics   *metrics.Metrics
}

func New(log zerolog.Logger, cfg config.Config, seq Sequencer, quotes QuoteStore, gen pdf.Generator, m *metrics.Metrics) *Handlers {
	return &Handlers{
		Log:       log,
		Cfg:       cfg,
		Sequencer: seq,
		Quotes:    quotes,
		PDF:       gen,
		Metrics:   m,
	}
}
