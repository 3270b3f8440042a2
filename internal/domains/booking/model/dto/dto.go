package dto

import (
	"trekking/internal/domains/booking/dates"
	"trekking/internal/domains/booking/form"
	"trekking/internal/domains/booking/model"
	"trekking/internal/domains/booking/validation"
	"trekking/shared/money"
	"trekking/shared/validator"
)

func init() {
	validator.RegisterString("bookingphone", validation.ValidatePhone)
	validator.RegisterString("experiencelevel", validation.ValidateExperienceLevel)
}

type CreateDraftRequest struct {
	TrekSlug string `json:"trek_slug" validate:"required,max=200"`
}

type SelectDepartureRequest struct {
	DepartureID string `json:"departure_id" validate:"required,max=100"`
}

type SetStartDateRequest struct {
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
}

// UpdateLeadRequest changes only the fields that are present in the body.
type UpdateLeadRequest struct {
	Title            *string `json:"title"             validate:"omitempty,max=20"`
	FirstName        *string `json:"first_name"        validate:"omitempty,max=100"`
	LastName         *string `json:"last_name"         validate:"omitempty,max=100"`
	Email            *string `json:"email"             validate:"omitempty,max=254"`
	Phone            *string `json:"phone"             validate:"omitempty,max=32,bookingphone"`
	Country          *string `json:"country"           validate:"omitempty,max=100"`
	EmergencyContact *string `json:"emergency_contact" validate:"omitempty,max=255"`
	DietaryNotes     *string `json:"dietary_notes"     validate:"omitempty,max=1000"`
	ExperienceLevel  *string `json:"experience_level"  validate:"omitempty,experiencelevel"`
}

type FieldChange struct {
	Name  string
	Value string
}

// Changes lists the present fields in a stable order.
func (r UpdateLeadRequest) Changes() []FieldChange {
	var changes []FieldChange

	changes = appendChange(changes, model.FieldTitle, r.Title)
	changes = appendChange(changes, model.FieldFirstName, r.FirstName)
	changes = appendChange(changes, model.FieldLastName, r.LastName)
	changes = appendChange(changes, model.FieldEmail, r.Email)
	changes = appendChange(changes, model.FieldPhone, r.Phone)
	changes = appendChange(changes, model.FieldCountry, r.Country)
	changes = appendChange(changes, model.FieldEmergencyContact, r.EmergencyContact)
	changes = appendChange(changes, model.FieldDietaryNotes, r.DietaryNotes)
	changes = appendChange(changes, model.FieldExperience, r.ExperienceLevel)

	return changes
}

type UpdatePreferencesRequest struct {
	GuideLanguage   *string `json:"guide_language"   validate:"omitempty,max=50"`
	SpecialRequests *string `json:"special_requests" validate:"omitempty,max=2000"`
	Comments        *string `json:"comments"         validate:"omitempty,max=2000"`
}

func (r UpdatePreferencesRequest) Changes() []FieldChange {
	var changes []FieldChange

	changes = appendChange(changes, model.FieldGuideLanguage, r.GuideLanguage)
	changes = appendChange(changes, model.FieldSpecialRequests, r.SpecialRequests)
	changes = appendChange(changes, model.FieldComments, r.Comments)

	return changes
}

func appendChange(changes []FieldChange, name string, value *string) []FieldChange {
	if value == nil {
		return changes
	}

	return append(changes, FieldChange{Name: name, Value: *value})
}

type SetFlightRequest struct {
	DepartureTime string `json:"departure_time" validate:"omitempty,max=50"`
	ReturnTime    string `json:"return_time"    validate:"omitempty,max=50"`
}

type SetAcceptanceRequest struct {
	Accepted *bool `json:"accepted" validate:"required"`
}

type SubmitRequest struct {
	Currency string `json:"currency" validate:"omitempty,len=3"`
}

// ValidateRequest checks a lead without a draft, e.g. for a one-page form.
type ValidateRequest struct {
	FirstName string `json:"first_name" validate:"max=100"`
	LastName  string `json:"last_name"  validate:"max=100"`
	Email     string `json:"email"      validate:"max=254"`
	Phone     string `json:"phone"      validate:"max=32"`
	StartDate string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	PartySize int    `json:"party_size" validate:"gte=0,lte=100"`
	Accepted  bool   `json:"accepted"`
}

func (r ValidateRequest) ToModel() model.LeadTraveler {
	return model.LeadTraveler{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Phone:     r.Phone,
	}
}

type QuoteResponse struct {
	BasePricePerPerson float64 `json:"base_price_per_person"`
	PartySize          int     `json:"party_size"`
	BaseTotal          float64 `json:"base_total"`
	TotalPrice         float64 `json:"total_price"`
	DepositRate        float64 `json:"deposit_rate"`
	InitialPayment     float64 `json:"initial_payment"`
	DueAmount          float64 `json:"due_amount"`
	Currency           string  `json:"currency"`
	Available          bool    `json:"available"`
	TotalDisplay       string  `json:"total_display"`
	InitialDisplay     string  `json:"initial_display"`
	DueDisplay         string  `json:"due_display"`
}

func (r *QuoteResponse) FromModel(quote model.PriceQuote, currency string) {
	r.BasePricePerPerson = quote.BasePricePerPerson.Float()
	r.PartySize = quote.PartySize
	r.BaseTotal = quote.BaseTotal.Float()
	r.TotalPrice = quote.TotalPrice.Float()
	r.DepositRate = quote.DepositRate
	r.InitialPayment = quote.InitialPayment.Float()
	r.DueAmount = quote.DueAmount.Float()
	r.Currency = currency
	r.Available = quote.Available()
	r.TotalDisplay = money.Format(quote.TotalPrice, currency)
	r.InitialDisplay = money.Format(quote.InitialPayment, currency)
	r.DueDisplay = money.Format(quote.DueAmount, currency)
}

type ValidationResponse struct {
	EmailValid     bool `json:"email_valid"`
	PhoneValid     bool `json:"phone_valid"`
	FirstNameValid bool `json:"first_name_valid"`
	LastNameValid  bool `json:"last_name_valid"`
	StartDateSet   bool `json:"start_date_set"`
	PartySizeValid bool `json:"party_size_valid"`
	Accepted       bool `json:"accepted"`
	FormValid      bool `json:"form_valid"`
}

func (r *ValidationResponse) FromModel(state model.ValidationState) {
	*r = ValidationResponse(state)
}

type WarningResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func FromWarnings(warnings []model.Warning) []WarningResponse {
	res := make([]WarningResponse, len(warnings))
	for i, w := range warnings {
		res[i] = WarningResponse(w)
	}

	return res
}

type LeadResponse struct {
	Title            string `json:"title"`
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	Country          string `json:"country"`
	EmergencyContact string `json:"emergency_contact"`
	DietaryNotes     string `json:"dietary_notes"`
	ExperienceLevel  string `json:"experience_level"`
}

func (r *LeadResponse) FromModel(lead model.LeadTraveler) {
	r.Title = lead.Title
	r.FirstName = lead.FirstName
	r.LastName = lead.LastName
	r.Email = lead.Email
	r.Phone = lead.Phone
	r.Country = lead.Country
	r.EmergencyContact = lead.EmergencyContact
	r.DietaryNotes = lead.DietaryNotes
	r.ExperienceLevel = string(lead.Experience)
}

type PreferencesResponse struct {
	GuideLanguage   string `json:"guide_language"`
	SpecialRequests string `json:"special_requests"`
	Comments        string `json:"comments"`
}

type HandoffResponse struct {
	BookingRef  string        `json:"booking_ref"`
	Status      string        `json:"status"`
	Quote       QuoteResponse `json:"quote"`
	PaymentPath string        `json:"payment_path"`
}

func (r *HandoffResponse) FromModel(handoff model.Handoff) {
	r.BookingRef = handoff.BookingRef
	r.Status = string(handoff.Status)
	r.Quote.FromModel(handoff.Quote, handoff.Currency)
	r.PaymentPath = "/payment/" + handoff.BookingRef
}

type DraftResponse struct {
	ID            string              `json:"id"`
	TrekSlug      string              `json:"trek_slug"`
	TrekName      string              `json:"trek_name"`
	Duration      string              `json:"duration"`
	DepartureID   string              `json:"departure_id,omitempty"`
	StartDate     string              `json:"start_date,omitempty"`
	EndDate       string              `json:"end_date,omitempty"`
	PartySize     int                 `json:"party_size"`
	DepartureTime string              `json:"departure_time,omitempty"`
	ReturnTime    string              `json:"return_time,omitempty"`
	Accepted      bool                `json:"accepted"`
	Submitting    bool                `json:"submitting"`
	Stage         string              `json:"stage"`
	Lead          LeadResponse        `json:"lead"`
	Preferences   PreferencesResponse `json:"preferences"`
	Quote         QuoteResponse       `json:"quote"`
	Validation    ValidationResponse  `json:"validation"`
	Warnings      []WarningResponse   `json:"warnings"`
	Handoff       *HandoffResponse    `json:"handoff,omitempty"`
	Error         string              `json:"error,omitempty"`
	LoginRedirect string              `json:"login_redirect,omitempty"`
}

func (r *DraftResponse) FromState(id string, state form.State) {
	r.ID = id
	r.TrekSlug = state.Trek.Slug
	r.TrekName = state.Trek.Name
	r.Duration = state.Trek.Duration
	r.DepartureID = state.DepartureID
	r.StartDate = dates.FormatDate(state.Dates.Start)
	r.EndDate = dates.FormatDate(state.Dates.End)
	r.PartySize = state.PartySize
	r.DepartureTime = state.Flight.DepartureTime
	r.ReturnTime = state.Flight.ReturnTime
	r.Accepted = state.Accepted
	r.Submitting = state.Submitting
	r.Stage = string(state.Stage)
	r.Lead.FromModel(state.Lead)
	r.Preferences = PreferencesResponse(state.Preferences)
	r.Quote.FromModel(state.Quote, state.Trek.Currency)
	r.Validation.FromModel(state.Validation)
	r.Warnings = FromWarnings(state.Warnings)
	r.Error = state.LastError
	r.LoginRedirect = state.LoginRedirect

	if state.Handoff != nil {
		r.Handoff = &HandoffResponse{}
		r.Handoff.FromModel(*state.Handoff)
	}
}

// BookingResponse is a booking as returned by the booking service, plus its deposit split.
type BookingResponse struct {
	Ref         string        `json:"booking_ref"`
	TrekSlug    string        `json:"trek_slug"`
	TrekName    string        `json:"trek_name"`
	StartDate   string        `json:"start_date,omitempty"`
	EndDate     string        `json:"end_date,omitempty"`
	PartySize   int           `json:"party_size"`
	Status      string        `json:"status"`
	Currency    string        `json:"currency"`
	TotalAmount float64       `json:"total_amount"`
	Quote       QuoteResponse `json:"quote"`
	Lead        LeadResponse  `json:"lead"`
}

func (r *BookingResponse) FromModel(booking model.Booking, quote model.PriceQuote) {
	r.Ref = booking.Ref
	r.TrekSlug = booking.TrekSlug
	r.TrekName = booking.TrekName
	r.StartDate = dates.FormatDate(booking.Dates.Start)
	r.EndDate = dates.FormatDate(booking.Dates.End)
	r.PartySize = booking.PartySize
	r.Status = string(booking.Status)
	r.Currency = booking.Currency
	r.TotalAmount = booking.TotalAmount.Float()
	r.Quote.FromModel(quote, booking.Currency)
	r.Lead.FromModel(booking.Lead)
}
