package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func TestRoundHalfAwayFromZero(t *testing.T) {
	cases := map[string]string{
		"0":       "0",
		"0.4":     "0",
		"0.5":     "1",
		"1.5":     "2",
		"2.5":     "3",
		"999.99":  "1000",
		"-0.5":    "-1",
		"-2.5":    "-3",
		"1234.49": "1234",
	}
	for in, want := range cases {
		assert.Equal(t, want, Round(dec(t, in)).String(), "Round(%s)", in)
	}
}

func TestFormatCLP(t *testing.T) {
	cases := map[string]string{
		"0":        "$ 0",
		"7":        "$ 7",
		"950":      "$ 950",
		"1000":     "$ 1.000",
		"50000":    "$ 50.000",
		"1234567":  "$ 1.234.567",
		"1234567.6": "$ 1.234.568",
		"-1234567": "$ -1.234.567",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatCLP(dec(t, in)), "FormatCLP(%s)", in)
	}
}

func TestParseTolerant(t *testing.T) {
	assert.True(t, Parse("12.5").Equal(dec(t, "12.5")))
	assert.True(t, Parse(" 120000 ").Equal(dec(t, "120000")))
	assert.True(t, Parse("abc").IsZero())
	assert.True(t, Parse("").IsZero())
	assert.True(t, Parse("12,5").IsZero())
}
