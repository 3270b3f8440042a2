package model

import (
	"time"

	"trekking/shared/money"
)

const (
	EntityName = "trek"
)

// Departure is a scheduled group start published in the catalog.
// EndDate is what the catalog states; it is never trusted for trip dates.
type Departure struct {
	ID        string    `json:"id"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	SeatsLeft *int      `json:"seats_left,omitempty"`
}

// Trek is the product being booked, as loaded from the catalog.
type Trek struct {
	Slug       string      `json:"slug"`
	Name       string      `json:"name"`
	Duration   string      `json:"duration"`
	BasePrice  money.Cents `json:"base_price"`
	Currency   string      `json:"currency"`
	Departures []Departure `json:"departures"`
}

// FindDeparture returns the departure with the given id.
func (t Trek) FindDeparture(id string) (Departure, bool) {
	for _, dep := range t.Departures {
		if dep.ID == id {
			return dep, true
		}
	}

	return Departure{}, false
}
