package quote

import (
	"github.com/shopspring/decimal"

	"github.com/cokeke26/cotizador/internal/domain/quote/money"
)

// TaxRate is the flat IVA applied to every quote.
var TaxRate = decimal.NewFromFloat(0.19)

// MaxDiscountPct bounds the discount accepted from the form layer.
var MaxDiscountPct = decimal.NewFromInt(90)

var hundred = decimal.NewFromInt(100)

// Totals carries the rounded monetary figures of one quote. All fields are
// integral pesos and satisfy Net = Subtotal - Discount and
// Total = Net + Tax.
type Totals struct {
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Net      decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// ComputeTotals runs the arithmetic pipeline over already-filtered items.
// An empty slice yields all-zero totals; callers reject empty submissions
// before getting here.
func ComputeTotals(items []Item, discountPct, taxRate decimal.Decimal) Totals {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.LineTotal())
	}
	subtotal = money.Round(subtotal)

	discount := money.Round(subtotal.Mul(discountPct).Div(hundred))
	net := money.Round(subtotal.Sub(discount))
	tax := money.Round(net.Mul(taxRate))
	total := money.Round(net.Add(tax))

	return Totals{
		Subtotal: subtotal,
		Discount: discount,
		Net:      net,
		Tax:      tax,
		Total:    total,
	}
}

// Totals computes the quote's own figures with the standard tax rate.
func (q Quote) Totals() Totals {
	return ComputeTotals(q.Items, q.DiscountPct, TaxRate)
}
