// Package money holds the fixed-point arithmetic and CLP formatting used
// everywhere a peso amount is computed or printed. Amounts are exact
// decimals; binary floats never enter the pipeline.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Round quantizes an amount to whole pesos. Ties round away from zero
// (0.5 becomes 1), not banker's rounding.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(0)
}

// FormatCLP renders an amount as "$ 1.234.567": whole pesos, dot as
// thousands separator.
func FormatCLP(d decimal.Decimal) string {
	v := Round(d)
	digits := v.Abs().String()

	var b strings.Builder
	b.WriteString("$ ")
	if v.IsNegative() {
		b.WriteByte('-')
	}
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
		if len(digits) > lead {
			b.WriteByte('.')
		}
	}
	for i := lead; i < len(digits); i += 3 {
		b.WriteString(digits[i : i+3])
		if i+3 < len(digits) {
			b.WriteByte('.')
		}
	}
	return b.String()
}

// Parse converts tolerant form input to a decimal. Malformed input maps to
// zero; it sanitizes, it does not validate.
func Parse(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}
