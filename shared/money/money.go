// Package money keeps amounts as integer cents so deposit splits reconcile exactly.
package money

import (
	"fmt"
	"math"
	"strings"
)

// Cents is an amount in the minor unit of its currency.
type Cents int64

// FromFloat converts a decimal amount (e.g. 1490.5) into cents, rounding half away from zero.
func FromFloat(amount float64) Cents {
	return Cents(math.Round(amount * 100))
}

// Float returns the amount in major units.
func (c Cents) Float() float64 {
	return float64(c) / 100
}

// MulRate multiplies by a fractional rate and rounds once to the nearest cent.
func (c Cents) MulRate(rate float64) Cents {
	return Cents(math.Round(float64(c) * rate))
}

// String keeps consistent decimal formatting for currency fields.
func (c Cents) String() string {
	sign := ""
	if c < 0 {
		sign = "-"
		c = -c
	}

	return fmt.Sprintf("%s%d.%02d", sign, c/100, c%100)
}

// Format renders the amount with thousand separators and the currency code, e.g. "USD 4,470.00".
func Format(c Cents, currency string) string {
	sign := ""
	if c < 0 {
		sign = "-"
		c = -c
	}

	whole := fmt.Sprintf("%d", c/100)

	var out strings.Builder
	for i, r := range whole {
		if i != 0 && (len(whole)-i)%3 == 0 {
			out.WriteByte(',')
		}

		out.WriteRune(r)
	}

	return fmt.Sprintf("%s %s%s.%02d", strings.ToUpper(currency), sign, out.String(), c%100)
}
