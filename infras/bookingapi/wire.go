package bookingapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	bookingModel "trekking/internal/domains/booking/model"
	trekModel "trekking/internal/domains/trek/model"
	"trekking/shared/money"
)

const dateLayout = "2006-01-02"

// Decimal reads an amount the API may send as a JSON number or as a decimal string.
type Decimal struct {
	Value money.Cents
	Valid bool
}

func (d *Decimal) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*d = Decimal{}

		return nil
	}

	raw := strings.Trim(string(data), `"`)
	if raw == "" {
		*d = Decimal{}

		return nil
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("invalid decimal %s: %w", data, err)
	}

	*d = Decimal{Value: money.FromFloat(value), Valid: true}

	return nil
}

func (d Decimal) MarshalJSON() ([]byte, error) {
	if !d.Valid {
		return []byte("null"), nil
	}

	return json.Marshal(d.Value.String())
}

// NewDecimal wraps an amount for a request body.
func NewDecimal(c money.Cents) Decimal {
	return Decimal{Value: c, Valid: true}
}

type IntentRequest struct {
	TrekSlug  string `json:"trek_slug"`
	PartySize int    `json:"party_size"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

type intentResponse struct {
	BookingID    string  `json:"booking_id"`
	ID           string  `json:"id"`
	ClientSecret *string `json:"client_secret"`
}

// toModel accepts either "booking_id" or "id" for the intent handle.
func (r intentResponse) toModel() bookingModel.BookingIntent {
	id := r.BookingID
	if id == "" {
		id = r.ID
	}

	return bookingModel.BookingIntent{ID: id, ClientSecret: r.ClientSecret}
}

type CreateBookingRequest struct {
	TrekSlug         string            `json:"trek_slug"`
	BookingIntentID  string            `json:"booking_intent_id"`
	PartySize        int               `json:"party_size"`
	StartDate        string            `json:"start_date"`
	EndDate          string            `json:"end_date"`
	Title            string            `json:"title,omitempty"`
	FirstName        string            `json:"first_name"`
	LastName         string            `json:"last_name"`
	Email            string            `json:"email"`
	Phone            string            `json:"phone"`
	Country          string            `json:"country,omitempty"`
	EmergencyContact string            `json:"emergency_contact,omitempty"`
	DietaryNotes     string            `json:"dietary_requirements,omitempty"`
	ExperienceLevel  string            `json:"experience_level,omitempty"`
	GuideLanguage    string            `json:"guide_language,omitempty"`
	SpecialRequests  string            `json:"special_requests,omitempty"`
	Comments         string            `json:"comments,omitempty"`
	DepartureTime    string            `json:"departure_time,omitempty"`
	ReturnTime       string            `json:"return_time,omitempty"`
	TotalAmount      Decimal           `json:"total_amount"`
	Currency         string            `json:"currency"`
	Metadata         map[string]string `json:"metadata,omitempty"`
}

// bookingRecord mirrors GET /bookings/{ref}. Optional fields are pointers; defaults are applied in toModel.
type bookingRecord struct {
	BookingRef       string  `json:"booking_ref"`
	Reference        string  `json:"reference"`
	TrekSlug         *string `json:"trek_slug"`
	TrekName         *string `json:"trek_name"`
	Status           *string `json:"status"`
	StartDate        *string `json:"start_date"`
	EndDate          *string `json:"end_date"`
	PartySize        *int    `json:"party_size"`
	TotalAmount      Decimal `json:"total_amount"`
	Currency         *string `json:"currency"`
	Title            *string `json:"title"`
	FirstName        *string `json:"first_name"`
	LastName         *string `json:"last_name"`
	Email            *string `json:"email"`
	Phone            *string `json:"phone"`
	Country          *string `json:"country"`
	EmergencyContact *string `json:"emergency_contact"`
	DietaryNotes     *string `json:"dietary_requirements"`
	ExperienceLevel  *string `json:"experience_level"`
}

func (r bookingRecord) toModel(defaultCurrency string) bookingModel.Booking {
	ref := r.BookingRef
	if ref == "" {
		ref = r.Reference
	}

	partySize := 1
	if r.PartySize != nil && *r.PartySize > 0 {
		partySize = *r.PartySize
	}

	status := bookingModel.StatusPending
	if r.Status != nil && *r.Status != "" {
		status = bookingModel.Status(strings.ToLower(*r.Status))
	}

	return bookingModel.Booking{
		Ref:       ref,
		TrekSlug:  deref(r.TrekSlug, ""),
		TrekName:  deref(r.TrekName, ""),
		PartySize: partySize,
		Dates: bookingModel.TripDates{
			Start: parseDate(r.StartDate),
			End:   parseDate(r.EndDate),
		},
		TotalAmount: r.TotalAmount.Value,
		Currency:    strings.ToUpper(deref(r.Currency, defaultCurrency)),
		Status:      status,
		Lead: bookingModel.LeadTraveler{
			Title:            deref(r.Title, ""),
			FirstName:        deref(r.FirstName, ""),
			LastName:         deref(r.LastName, ""),
			Email:            deref(r.Email, ""),
			Phone:            deref(r.Phone, ""),
			Country:          deref(r.Country, ""),
			EmergencyContact: deref(r.EmergencyContact, ""),
			DietaryNotes:     deref(r.DietaryNotes, ""),
			Experience:       bookingModel.ExperienceLevel(deref(r.ExperienceLevel, "")),
		},
	}
}

// recordID accepts an id sent as a JSON number or a string and keeps it in its exact decimal form.
type recordID string

func (id *recordID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*id = ""

		return nil
	}

	if data[0] == '"' {
		var value string
		if err := json.Unmarshal(data, &value); err != nil {
			return fmt.Errorf("invalid id %s: %w", data, err)
		}

		*id = recordID(value)

		return nil
	}

	var number json.Number
	if err := json.Unmarshal(data, &number); err != nil {
		return fmt.Errorf("invalid id %s: %w", data, err)
	}

	if value, err := number.Int64(); err == nil {
		*id = recordID(strconv.FormatInt(value, 10))

		return nil
	}

	*id = recordID(number.String())

	return nil
}

type departureRecord struct {
	ID        recordID `json:"id"`
	StartDate string   `json:"start_date"`
	EndDate   *string  `json:"end_date"`
	SeatsLeft *int     `json:"seats_left"`
}

type trekRecord struct {
	Slug       string            `json:"slug"`
	Name       string            `json:"name"`
	Title      string            `json:"title"`
	Duration   *string           `json:"duration"`
	Price      Decimal           `json:"price"`
	BasePrice  Decimal           `json:"base_price"`
	Currency   *string           `json:"currency"`
	Departures []departureRecord `json:"departures"`
}

// toModel prefers "base_price" over "price" and "name" over "title".
func (r trekRecord) toModel(defaultCurrency string) trekModel.Trek {
	name := r.Name
	if name == "" {
		name = r.Title
	}

	price := r.BasePrice
	if !price.Valid {
		price = r.Price
	}

	trek := trekModel.Trek{
		Slug:      r.Slug,
		Name:      name,
		Duration:  deref(r.Duration, ""),
		BasePrice: price.Value,
		Currency:  strings.ToUpper(deref(r.Currency, defaultCurrency)),
	}

	for _, dep := range r.Departures {
		start := parseDate(&dep.StartDate)
		if start.IsZero() {
			continue
		}

		trek.Departures = append(trek.Departures, trekModel.Departure{
			ID:        string(dep.ID),
			StartDate: start,
			EndDate:   parseDate(dep.EndDate),
			SeatsLeft: dep.SeatsLeft,
		})
	}

	return trek
}

type paymentIntentResponse struct {
	ClientSecret    string `json:"client_secret"`
	PaymentIntentID string `json:"payment_intent_id"`
}

// errorBody covers the error shapes the API sends: {"detail": ...}, {"error": ...}, {"message": ...}
// and DRF field errors such as {"email": ["Enter a valid email address."]}.
type errorBody map[string]any

func (b errorBody) message() string {
	for _, key := range []string{"detail", "error", "message", "non_field_errors"} {
		if msg := flatten(b[key]); msg != "" {
			return msg
		}
	}

	keys := make([]string, 0, len(b))
	for key := range b {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	for _, key := range keys {
		if msg := flatten(b[key]); msg != "" {
			return key + ": " + msg
		}
	}

	return ""
}

func flatten(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case []any:
		for _, item := range v {
			if msg := flatten(item); msg != "" {
				return msg
			}
		}
	case map[string]any:
		return errorBody(v).message()
	}

	return ""
}

func deref(value *string, fallback string) string {
	if value == nil || *value == "" {
		return fallback
	}

	return *value
}

func parseDate(value *string) time.Time {
	if value == nil || *value == "" {
		return time.Time{}
	}

	raw := *value
	if len(raw) > len(dateLayout) {
		raw = raw[:len(dateLayout)]
	}

	parsed, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}
