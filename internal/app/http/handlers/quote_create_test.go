package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cokeke26/cotizador/internal/app/config"
	"github.com/cokeke26/cotizador/internal/domain/quote"
	"github.com/cokeke26/cotizador/internal/domain/quote/pdf"
)

type stubSequencer struct {
	year int
	err  error
}

func (s *stubSequencer) NextNumber(ctx context.Context, year int) (int, string, error) {
	if s.err != nil {
		return 0, "", s.err
	}
	s.year = year
	return 1, fmt.Sprintf("%d-0001", year), nil
}

type stubStore struct {
	saved *quote.Quote
	err   error
}

func (s *stubStore) Save(ctx context.Context, q quote.Quote, year, seq int) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	s.saved = &q
	return 7, nil
}

type stubGenerator struct {
	got *quote.Quote
	out []byte
	err error
}

func (g *stubGenerator) Generate(q quote.Quote) ([]byte, error) {
	if g.err != nil {
		return nil, g.err
	}
	g.got = &q
	return g.out, nil
}

func newTestHandlers(seq *stubSequencer, store *stubStore, gen *stubGenerator) *Handlers {
	cfg := config.Config{
		Brand: config.BrandConfig{
			Name:  "HIDRACODE SOLUTIONS",
			Email: "contacto.hidracode@gmail.com",
			Phone: "+56 9 4075 2095",
		},
	}
	return New(zerolog.Nop(), cfg, seq, store, gen, nil)
}

func postQuote(t *testing.T, h *Handlers, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/quotes", strings.NewReader(body))
	resp := httptest.NewRecorder()
	h.CreateQuote(resp, req)
	return resp
}

const validBody = `{
	"issue_date": "2026-08-30",
	"client": {"name": "Ana Pérez", "company": "Acme Ltda.", "email": "ana@acme.cl"},
	"items": [
		{"description": "Diseño de logo", "qty": 1, "unit_price": 50000},
		{"description": "Landing page", "qty": 1, "unit_price": 120000}
	],
	"discount_pct": 0,
	"notes": "Entrega en 5 días.",
	"validity_days": 10
}`

func TestCreateQuoteHappyPath(t *testing.T) {
	seq := &stubSequencer{}
	store := &stubStore{}
	gen := &stubGenerator{out: []byte("%PDF-stub")}
	h := newTestHandlers(seq, store, gen)

	resp := postQuote(t, h, validBody)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Equal(t, "application/pdf", resp.Header().Get("Content-Type"))
	assert.Contains(t, resp.Header().Get("Content-Disposition"), "cotizacion_2026-0001.pdf")
	assert.Equal(t, "%PDF-stub", resp.Body.String())

	assert.Equal(t, 2026, seq.year)
	require.NotNil(t, store.saved)
	assert.Equal(t, "2026-0001", store.saved.Number)
	assert.Len(t, store.saved.Items, 2)
	require.NotNil(t, gen.got)
	assert.Equal(t, "HIDRACODE SOLUTIONS", gen.got.Brand.Name)
}

func TestCreateQuoteBadJSON(t *testing.T) {
	h := newTestHandlers(&stubSequencer{}, &stubStore{}, &stubGenerator{out: []byte("x")})
	resp := postQuote(t, h, "{not json")
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestCreateQuoteMissingClientName(t *testing.T) {
	h := newTestHandlers(&stubSequencer{}, &stubStore{}, &stubGenerator{out: []byte("x")})
	body := `{"client": {"name": "   "}, "items": [{"description": "a", "qty": 1, "unit_price": 10}]}`
	resp := postQuote(t, h, body)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestCreateQuoteDiscountOutOfRange(t *testing.T) {
	h := newTestHandlers(&stubSequencer{}, &stubStore{}, &stubGenerator{out: []byte("x")})
	body := `{"client": {"name": "Ana"}, "items": [{"description": "a", "qty": 1, "unit_price": 10}], "discount_pct": 95}`
	resp := postQuote(t, h, body)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	body = strings.Replace(body, "95", "90", 1)
	resp = postQuote(t, h, body)
	assert.Equal(t, http.StatusOK, resp.Code, "90 is the accepted boundary")
}

func TestCreateQuoteFiltersInvalidRows(t *testing.T) {
	store := &stubStore{}
	h := newTestHandlers(&stubSequencer{}, store, &stubGenerator{out: []byte("x")})
	body := `{"client": {"name": "Ana"}, "items": [
		{"description": "  ", "qty": 1, "unit_price": 10},
		{"description": "vale", "qty": 0, "unit_price": 10},
		{"description": "vale", "qty": 2, "unit_price": 1500.50}
	]}`
	resp := postQuote(t, h, body)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	require.NotNil(t, store.saved)
	require.Len(t, store.saved.Items, 1)
	assert.Equal(t, "3001", store.saved.Items[0].LineTotal().String())
}

func TestCreateQuoteAllRowsFiltered(t *testing.T) {
	h := newTestHandlers(&stubSequencer{}, &stubStore{}, &stubGenerator{out: []byte("x")})
	body := `{"client": {"name": "Ana"}, "items": [{"description": "", "qty": 1, "unit_price": 10}]}`
	resp := postQuote(t, h, body)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestCreateQuoteSequencerFailure(t *testing.T) {
	store := &stubStore{}
	h := newTestHandlers(&stubSequencer{err: errors.New("db down")}, store, &stubGenerator{out: []byte("x")})
	resp := postQuote(t, h, validBody)
	assert.Equal(t, http.StatusBadGateway, resp.Code)
	assert.Nil(t, store.saved, "nothing is saved without an assigned number")
}

func TestCreateQuotePersistFailure(t *testing.T) {
	h := newTestHandlers(&stubSequencer{}, &stubStore{err: errors.New("tx failed")}, &stubGenerator{out: []byte("x")})
	resp := postQuote(t, h, validBody)
	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.NotContains(t, resp.Body.String(), "%PDF", "no partial document on failure")
}

func TestCreateQuoteLayoutOverflow(t *testing.T) {
	gen := &stubGenerator{err: fmt.Errorf("item: %w", pdf.ErrLayoutOverflow)}
	h := newTestHandlers(&stubSequencer{}, &stubStore{}, gen)
	resp := postQuote(t, h, validBody)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}
