package quote

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cokeke26/cotizador/internal/domain/quote/money"
)

// ErrNoItems rejects building or saving a quote without line items.
var ErrNoItems = errors.New("quote has no items")

type Quote struct {
	Number    string
	IssueDate time.Time
	Brand     Brand
	Client    Client
	Items     []Item

	DiscountPct  decimal.Decimal
	Notes        string
	ValidityDays int
}

type Brand struct {
	Name     string
	Email    string
	Phone    string
	LogoPath string
}

type Client struct {
	Name    string
	Company string
	Email   string
}

// Item is one quoted line. Qty and UnitPrice are exact decimals; the
// form layer guarantees Qty > 0 and a non-empty trimmed description.
type Item struct {
	Description string
	Qty         decimal.Decimal
	UnitPrice   decimal.Decimal
}

// LineTotal rounds at the line, not after aggregation, so printed line
// totals always sum exactly to the printed subtotal.
func (it Item) LineTotal() decimal.Decimal {
	return money.Round(it.Qty.Mul(it.UnitPrice))
}
