package money_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"trekking/shared/money"
)

func TestFromFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want money.Cents
	}{
		{in: 1490, want: 149000},
		{in: 0.1 + 0.2, want: 30},
		{in: 0, want: 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, money.FromFloat(tt.in))
	}
}

func TestCents_MulRate(t *testing.T) {
	assert.Equal(t, money.Cents(89400), money.Cents(447000).MulRate(0.20))
	assert.Equal(t, money.Cents(20), money.Cents(99).MulRate(0.20))
}

func TestCents_String(t *testing.T) {
	assert.Equal(t, "4470.00", money.Cents(447000).String())
	assert.Equal(t, "0.05", money.Cents(5).String())
	assert.Equal(t, "-12.30", money.Cents(-1230).String())
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "USD 4,470.00", money.Format(447000, "usd"))
	assert.Equal(t, "NPR 1,234,567.89", money.Format(123456789, "NPR"))
	assert.Equal(t, "USD 0.00", money.Format(0, "USD"))
}
