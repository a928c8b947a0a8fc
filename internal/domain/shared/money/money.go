package money

import (
	"errors"
	"math"
	"strings"
)

var (
	ErrInvalidCurrency = errors.New("money: invalid currency code")
	ErrUnknownCurrency = errors.New("money: currency not in rate table")
)

// Amounts flow through the rate engine as float64 and are rounded only at
// the display boundary, never between adjustment steps.

// Round2 rounds to two decimals for display and invoicing output.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Converter translates base-currency amounts into display currencies using a
// fixed rate table. Conversion is presentational; converted values must never
// be written back into stored amounts.
type Converter struct {
	Base  string
	Rates map[string]float64 // currency code -> rate relative to base
}

// NewConverter validates the base code and returns a converter seeded with the
// identity rate for the base currency.
func NewConverter(base string, rates map[string]float64) (*Converter, error) {
	base = strings.ToUpper(strings.TrimSpace(base))
	if len(base) != 3 {
		return nil, ErrInvalidCurrency
	}
	table := map[string]float64{base: 1}
	for code, rate := range rates {
		code = strings.ToUpper(strings.TrimSpace(code))
		if len(code) != 3 || rate <= 0 {
			return nil, ErrInvalidCurrency
		}
		table[code] = rate
	}
	return &Converter{Base: base, Rates: table}, nil
}

// Convert returns amount expressed in the target currency. An empty target
// means the base currency.
func (c *Converter) Convert(amount float64, target string) (float64, error) {
	target = strings.ToUpper(strings.TrimSpace(target))
	if target == "" || target == c.Base {
		return amount, nil
	}
	rate, ok := c.Rates[target]
	if !ok {
		return 0, ErrUnknownCurrency
	}
	return amount * rate, nil
}
