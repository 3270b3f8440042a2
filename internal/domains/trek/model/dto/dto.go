package dto

import (
	"trekking/internal/domains/booking/dates"
	bookingDto "trekking/internal/domains/booking/model/dto"
	"trekking/internal/domains/trek/model"
)

type DepartureResponse struct {
	ID            string                       `json:"id"`
	StartDate     string                       `json:"start_date"`
	EndDate       string                       `json:"end_date,omitempty"`
	StatedEndDate string                       `json:"stated_end_date,omitempty"`
	SeatsLeft     *int                         `json:"seats_left,omitempty"`
	Warnings      []bookingDto.WarningResponse `json:"warnings"`
}

type TrekResponse struct {
	Slug         string              `json:"slug"`
	Name         string              `json:"name"`
	Duration     string              `json:"duration"`
	DurationDays int                 `json:"duration_days,omitempty"`
	BasePrice    float64             `json:"base_price"`
	Currency     string              `json:"currency"`
	Departures   []DepartureResponse `json:"departures"`
}

// FromModel lists each departure with the end date derived from the trek duration,
// next to the end date the catalog states.
func (r *TrekResponse) FromModel(trek model.Trek) {
	r.Slug = trek.Slug
	r.Name = trek.Name
	r.Duration = trek.Duration
	r.BasePrice = trek.BasePrice.Float()
	r.Currency = trek.Currency

	if days, ok := dates.ParseDurationDays(trek.Duration); ok {
		r.DurationDays = days
	}

	r.Departures = make([]DepartureResponse, len(trek.Departures))
	for i, dep := range trek.Departures {
		res := DepartureResponse{
			ID:            dep.ID,
			StartDate:     dates.FormatDate(dep.StartDate),
			StatedEndDate: dates.FormatDate(dep.EndDate),
			SeatsLeft:     dep.SeatsLeft,
			Warnings:      []bookingDto.WarningResponse{},
		}

		if resolved, err := dates.Resolve(dep.StartDate, trek.Duration); err == nil {
			res.EndDate = dates.FormatDate(resolved.End)
		}

		if !dep.EndDate.IsZero() {
			res.Warnings = bookingDto.FromWarnings(dates.CheckDuration(trek.Duration, dep.StartDate, dep.EndDate))
		}

		r.Departures[i] = res
	}
}
