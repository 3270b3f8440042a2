// Package pricing derives party totals and the deposit/balance split.
package pricing

import (
	"trekking/internal/domains/booking/model"
	"trekking/shared/money"
)

// Quote prices a party. A party smaller than one is priced as one traveller,
// and a missing base price yields an unavailable quote with a zero total.
func Quote(basePricePerPerson money.Cents, partySize int) model.PriceQuote {
	if partySize < 1 {
		partySize = 1
	}

	if basePricePerPerson < 0 {
		basePricePerPerson = 0
	}

	baseTotal := basePricePerPerson * money.Cents(partySize)

	quote := Split(baseTotal)
	quote.BasePricePerPerson = basePricePerPerson
	quote.PartySize = partySize
	quote.BaseTotal = baseTotal

	return quote
}

// Split restates the deposit and balance of an already-computed total.
// The deposit is rounded once; the balance is the exact remainder.
func Split(total money.Cents) model.PriceQuote {
	if total < 0 {
		total = 0
	}

	initial := total.MulRate(model.DepositRate)

	return model.PriceQuote{
		TotalPrice:     total,
		DepositRate:    model.DepositRate,
		InitialPayment: initial,
		DueAmount:      total - initial,
	}
}
