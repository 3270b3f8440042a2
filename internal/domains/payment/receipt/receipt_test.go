package receipt_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trekking/internal/domains/booking/model"
	"trekking/internal/domains/booking/pricing"
	"trekking/internal/domains/payment/receipt"
	"trekking/shared/money"
)

func TestRender(t *testing.T) {
	start := time.Date(2026, 2, 8, 0, 0, 0, 0, time.UTC)

	booking := model.Booking{
		Ref:       "BK/2026 01",
		TrekSlug:  "everest-base-camp",
		TrekName:  "Everest Base Camp",
		Dates:     model.TripDates{Start: start, End: start.AddDate(0, 0, 9)},
		PartySize: 3,
		Currency:  "USD",
		Status:    model.StatusPaid,
		Lead: model.LeadTraveler{
			FirstName: "Zoë",
			LastName:  "Müller",
			Email:     "zoe@example.com",
		},
		TotalAmount: money.FromFloat(4470),
	}

	res, err := receipt.Render(booking, pricing.Split(booking.TotalAmount), time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, "RECEIPT_BK_2026_01.pdf", res.Filename)
	assert.True(t, bytes.HasPrefix(res.Content, []byte("%PDF-")))
	assert.Greater(t, len(res.Content), 500)
}
