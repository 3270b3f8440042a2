package model

import (
	"strings"
	"time"

	"trekking/shared/money"
)

const (
	EntityName = "booking"

	FieldTitle            = "title"
	FieldFirstName        = "first_name"
	FieldLastName         = "last_name"
	FieldEmail            = "email"
	FieldPhone            = "phone"
	FieldCountry          = "country"
	FieldEmergencyContact = "emergency_contact"
	FieldDietaryNotes     = "dietary_notes"
	FieldExperience       = "experience_level"

	FieldGuideLanguage   = "guide_language"
	FieldSpecialRequests = "special_requests"
	FieldComments        = "comments"
)

type ExperienceLevel string

const (
	ExperienceBeginner     ExperienceLevel = "beginner"
	ExperienceIntermediate ExperienceLevel = "intermediate"
	ExperienceAdvanced     ExperienceLevel = "advanced"
	ExperienceExpert       ExperienceLevel = "expert"
)

// ParseExperienceLevel folds the case and surrounding spaces of a submitted level.
func ParseExperienceLevel(value string) ExperienceLevel {
	return ExperienceLevel(strings.ToLower(strings.TrimSpace(value)))
}

// IsValid reports whether the level is one of the known experience levels.
func (e ExperienceLevel) IsValid() bool {
	switch e {
	case ExperienceBeginner, ExperienceIntermediate, ExperienceAdvanced, ExperienceExpert:
		return true
	}

	return false
}

// Status is owned by the booking API; unknown values are kept verbatim.
type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// IsSettled reports whether the booking no longer needs a payment.
func (s Status) IsSettled() bool {
	return s == StatusPaid || s == StatusConfirmed
}

// TripDates is an inclusive calendar range at UTC midnight.
type TripDates struct {
	Start time.Time
	End   time.Time
}

// IsSet reports whether both ends of the range are known.
func (d TripDates) IsSet() bool {
	return !d.Start.IsZero() && !d.End.IsZero()
}

type LeadTraveler struct {
	Title            string
	FirstName        string
	LastName         string
	Email            string
	Phone            string
	Country          string
	EmergencyContact string
	DietaryNotes     string
	Experience       ExperienceLevel
}

type Preferences struct {
	GuideLanguage   string
	SpecialRequests string
	Comments        string
}

// FlightInfo is optional arrival/departure flight timing supplied by the traveller.
type FlightInfo struct {
	DepartureTime string
	ReturnTime    string
}

// DepositRate is the share of the total collected at booking time.
const DepositRate = 0.20

type PriceQuote struct {
	BasePricePerPerson money.Cents
	PartySize          int
	BaseTotal          money.Cents
	TotalPrice         money.Cents
	DepositRate        float64
	InitialPayment     money.Cents
	DueAmount          money.Cents
}

// Available reports whether the quote can be charged.
func (q PriceQuote) Available() bool {
	return q.TotalPrice > 0
}

type BookingIntent struct {
	ID           string
	ClientSecret *string
}

type Booking struct {
	Ref         string
	TrekSlug    string
	TrekName    string
	Lead        LeadTraveler
	Dates       TripDates
	PartySize   int
	TotalAmount money.Cents
	Currency    string
	Status      Status
}

type ValidationState struct {
	EmailValid     bool
	PhoneValid     bool
	FirstNameValid bool
	LastNameValid  bool
	StartDateSet   bool
	PartySizeValid bool
	Accepted       bool
	FormValid      bool
}

const (
	WarningDurationMismatch   = "duration_mismatch"
	WarningDurationUnknown    = "duration_unknown"
	WarningPricingUnavailable = "pricing_unavailable"
)

// Warning flags data-quality problems that are shown to the traveller but do not block by themselves.
type Warning struct {
	Code    string
	Message string
}

// Handoff is what the form passes on to the payment step.
type Handoff struct {
	BookingRef string
	Status     Status
	Quote      PriceQuote
	Currency   string
}
