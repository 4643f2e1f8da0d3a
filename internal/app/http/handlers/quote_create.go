package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cokeke26/cotizador/internal/domain/quote"
	"github.com/cokeke26/cotizador/internal/domain/quote/money"
	"github.com/cokeke26/cotizador/internal/domain/quote/pdf"
)

type CreateQuoteRequest struct {
	IssueDate string `json:"issue_date" validate:"omitempty,datetime=2006-01-02"`

	Brand *struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Phone string `json:"phone"`
	} `json:"brand"`

	Client struct {
		Name    string `json:"name" validate:"required"`
		Company string `json:"company"`
		Email   string `json:"email" validate:"omitempty,email"`
	} `json:"client"`

	Items []struct {
		Description string      `json:"description"`
		Qty         json.Number `json:"qty"`
		UnitPrice   json.Number `json:"unit_price"`
	} `json:"items" validate:"required,min=1"`

	DiscountPct  json.Number `json:"discount_pct"`
	Notes        string      `json:"notes"`
	ValidityDays int         `json:"validity_days" validate:"omitempty,min=1,max=60"`
}

// CreateQuote assigns the next correlative, saves the quote and streams the
// rendered PDF back. Saving happens before rendering; a quote is never
// handed out without its record.
func (h *Handlers) CreateQuote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateQuoteRequest
	if err := decodeJSON(r, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	discount := money.Parse(req.DiscountPct.String())
	if discount.IsNegative() || discount.GreaterThan(quote.MaxDiscountPct) {
		http.Error(w, "discount_pct must be between 0 and 90", http.StatusBadRequest)
		return
	}

	clientName := strings.TrimSpace(req.Client.Name)
	if clientName == "" {
		http.Error(w, "client name is required", http.StatusBadRequest)
		return
	}

	// Mirror the form behaviour: rows without a description or with a
	// non-positive quantity are dropped, not rejected.
	items := make([]quote.Item, 0, len(req.Items))
	for _, it := range req.Items {
		desc := strings.TrimSpace(it.Description)
		qty := money.Parse(it.Qty.String())
		if desc == "" || !qty.IsPositive() {
			continue
		}
		price := money.Parse(it.UnitPrice.String())
		if price.IsNegative() {
			http.Error(w, "unit_price must be >= 0", http.StatusBadRequest)
			return
		}
		items = append(items, quote.Item{Description: desc, Qty: qty, UnitPrice: price})
	}
	if len(items) == 0 {
		http.Error(w, "at least one item with a description and qty > 0 is required", http.StatusBadRequest)
		return
	}

	issueDate := time.Now()
	if req.IssueDate != "" {
		issueDate, _ = time.Parse("2006-01-02", req.IssueDate)
	}
	validity := req.ValidityDays
	if validity == 0 {
		validity = 10
	}

	brand := quote.Brand{
		Name:     h.Cfg.Brand.Name,
		Email:    h.Cfg.Brand.Email,
		Phone:    h.Cfg.Brand.Phone,
		LogoPath: h.Cfg.Brand.LogoPath,
	}
	if req.Brand != nil {
		if v := strings.TrimSpace(req.Brand.Name); v != "" {
			brand.Name = v
		}
		if v := strings.TrimSpace(req.Brand.Email); v != "" {
			brand.Email = v
		}
		if v := strings.TrimSpace(req.Brand.Phone); v != "" {
			brand.Phone = v
		}
	}

	seq, number, err := h.Sequencer.NextNumber(ctx, issueDate.Year())
	if err != nil {
		h.Log.Error().Err(err).Msg("assign quote number")
		h.Metrics.QuoteFailed("sequencer")
		http.Error(w, "quote number assignment failed", http.StatusBadGateway)
		return
	}

	q := quote.Quote{
		Number:    number,
		IssueDate: issueDate,
		Brand:     brand,
		Client: quote.Client{
			Name:    clientName,
			Company: strings.TrimSpace(req.Client.Company),
			Email:   strings.TrimSpace(req.Client.Email),
		},
		Items:        items,
		DiscountPct:  discount,
		Notes:        req.Notes,
		ValidityDays: validity,
	}

	id, err := h.Quotes.Save(ctx, q, issueDate.Year(), seq)
	if err != nil {
		h.Log.Error().Err(err).Str("quote", number).Msg("save quote")
		h.Metrics.QuoteFailed("persist")
		http.Error(w, "quote could not be saved", http.StatusInternalServerError)
		return
	}

	pdfBytes, err := h.PDF.Generate(q)
	switch {
	case errors.Is(err, quote.ErrNoItems):
		http.Error(w, "quote has no items", http.StatusBadRequest)
		return
	case errors.Is(err, pdf.ErrLayoutOverflow):
		h.Log.Warn().Err(err).Str("quote", number).Msg("quote layout overflow")
		h.Metrics.QuoteFailed("render")
		http.Error(w, "quote content does not fit on a page", http.StatusUnprocessableEntity)
		return
	case err != nil:
		h.Log.Error().Err(err).Str("quote", number).Msg("render quote pdf")
		h.Metrics.QuoteFailed("render")
		http.Error(w, "pdf generation failed", http.StatusInternalServerError)
		return
	}

	h.Metrics.QuoteCreated()
	h.Log.Info().Str("quote", number).Int64("id", id).Int("items", len(items)).Msg("quote created")

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "cotizacion_"+number+".pdf"))
	w.WriteHeader(http.StatusOK)
	w.Write(pdfBytes)
}
