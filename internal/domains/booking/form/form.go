// Package form holds the state of one booking attempt and drives its submission:
// a booking intent first, then the booking itself, then the handoff to payment.
package form

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"trekking/infras/bookingapi"
	"trekking/internal/domains/booking/dates"
	"trekking/internal/domains/booking/model"
	"trekking/internal/domains/booking/pricing"
	"trekking/internal/domains/booking/validation"
	trekModel "trekking/internal/domains/trek/model"
	"trekking/shared"
	"trekking/shared/constant"
	"trekking/shared/failure"
	"trekking/shared/money"
	"trekking/shared/timezone"
)

type Stage string

const (
	StageIdle             Stage = "idle"
	StageIntentRequested  Stage = "intent_requested"
	StageIntentObtained   Stage = "intent_obtained"
	StageBookingRequested Stage = "booking_requested"
	StageBookingCreated   Stage = "booking_created"
	StageHandoff          Stage = "handoff"
	StageRedirectToLogin  Stage = "redirect_to_login"
)

const (
	msgIntentFailed  = "We could not start your booking, please try again"
	msgBookingFailed = "We could not create your booking, please try again"
)

type Options struct {
	DefaultCountryCode string
	LoginPath          string
	Clock              func() time.Time
}

type SubmitRequest struct {
	TotalPrice money.Cents
	TrekSlug   string
	Currency   string
}

// State is a point-in-time copy of the form, with every derived value filled in.
type State struct {
	Trek          trekModel.Trek
	DepartureID   string
	Dates         model.TripDates
	PartySize     int
	Flight        model.FlightInfo
	Accepted      bool
	Submitting    bool
	Lead          model.LeadTraveler
	Preferences   model.Preferences
	Stage         Stage
	Intent        *model.BookingIntent
	Booking       *model.Booking
	Handoff       *model.Handoff
	LastError     string
	LoginRedirect string
	Quote         model.PriceQuote
	Validation    model.ValidationState
	Warnings      []model.Warning
}

type Controller struct {
	mu     sync.Mutex
	client bookingapi.Client
	opts   Options
	now    func() time.Time

	trek          trekModel.Trek
	departure     *trekModel.Departure
	dates         model.TripDates
	partySize     int
	flight        model.FlightInfo
	accepted      bool
	submitting    bool
	lead          model.LeadTraveler
	prefs         model.Preferences
	stage         Stage
	intent        *model.BookingIntent
	booking       *model.Booking
	handoff       *model.Handoff
	lastError     string
	loginRedirect string
	touchedAt     time.Time
}

func New(client bookingapi.Client, trek trekModel.Trek, opts Options) *Controller {
	if opts.DefaultCountryCode == "" {
		opts.DefaultCountryCode = constant.DefaultCountryCode
	}

	if opts.Clock == nil {
		opts.Clock = timezone.Now
	}

	c := &Controller{
		client:    client,
		opts:      opts,
		now:       opts.Clock,
		trek:      trek,
		partySize: 1,
		stage:     StageIdle,
	}
	c.touchedAt = c.now()

	return c
}

// SelectDeparture starts the trip on the departure's date. The end date is always recomputed
// from the trek duration; the departure's own end date is only used for the mismatch warning.
func (c *Controller) SelectDeparture(dep trekModel.Departure) error {
	if dep.StartDate.IsZero() {
		return failure.BadRequestFromString("departure has no start date")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.departure = &dep
	c.setStartLocked(dep.StartDate)

	return nil
}

// SetStartDate picks a custom start date. It clears any selected departure.
func (c *Controller) SetStartDate(start time.Time) error {
	if start.IsZero() {
		return failure.BadRequestFromString("start date is required")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.departure = nil
	c.setStartLocked(start)

	return nil
}

func (c *Controller) setStartLocked(start time.Time) {
	resolved, err := dates.Resolve(start, c.trek.Duration)
	if err != nil {
		log.Warn().Err(err).Str("trek", c.trek.Slug).Msg("could not derive trip end date")

		resolved = model.TripDates{Start: dates.Normalize(start)}
	}

	c.dates = resolved
	c.touchLocked()
}

func (c *Controller) ChangeLeadField(name, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch name {
	case model.FieldTitle:
		c.lead.Title = value
	case model.FieldFirstName:
		c.lead.FirstName = value
	case model.FieldLastName:
		c.lead.LastName = value
	case model.FieldEmail:
		c.lead.Email = strings.TrimSpace(value)
	case model.FieldPhone:
		c.lead.Phone = value
	case model.FieldCountry:
		c.lead.Country = value
	case model.FieldEmergencyContact:
		c.lead.EmergencyContact = value
	case model.FieldDietaryNotes:
		c.lead.DietaryNotes = value
	case model.FieldExperience:
		level := model.ParseExperienceLevel(value)
		if level != "" && !level.IsValid() {
			return failure.BadRequestFromString(fmt.Sprintf("unknown experience level %q", value))
		}

		c.lead.Experience = level
	default:
		return failure.BadRequestFromString(fmt.Sprintf("unknown traveller field %q", name))
	}

	c.touchLocked()

	return nil
}

func (c *Controller) ChangePreferenceField(name, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch name {
	case model.FieldGuideLanguage:
		c.prefs.GuideLanguage = value
	case model.FieldSpecialRequests:
		c.prefs.SpecialRequests = value
	case model.FieldComments:
		c.prefs.Comments = value
	default:
		return failure.BadRequestFromString(fmt.Sprintf("unknown preference field %q", name))
	}

	c.touchLocked()

	return nil
}

func (c *Controller) SetFlightTimes(departureTime, returnTime string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.flight = model.FlightInfo{DepartureTime: departureTime, ReturnTime: returnTime}
	c.touchLocked()
}

func (c *Controller) IncrementParty() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.partySize++
	c.touchLocked()

	return c.partySize
}

// DecrementParty never goes below one traveller.
func (c *Controller) DecrementParty() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.partySize > 1 {
		c.partySize--
	}

	c.touchLocked()

	return c.partySize
}

func (c *Controller) SetAccepted(accepted bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.accepted = accepted
	c.touchLocked()
}

func (c *Controller) Quote() model.PriceQuote {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.quoteLocked()
}

func (c *Controller) Validation() model.ValidationState {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.validationLocked()
}

func (c *Controller) Warnings() []model.Warning {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.warningsLocked()
}

func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	state := State{
		Trek:          c.trek,
		Dates:         c.dates,
		PartySize:     c.partySize,
		Flight:        c.flight,
		Accepted:      c.accepted,
		Submitting:    c.submitting,
		Lead:          c.lead,
		Preferences:   c.prefs,
		Stage:         c.stage,
		Intent:        c.intent,
		Booking:       c.booking,
		Handoff:       c.handoff,
		LastError:     c.lastError,
		LoginRedirect: c.loginRedirect,
		Quote:         c.quoteLocked(),
		Validation:    c.validationLocked(),
		Warnings:      c.warningsLocked(),
	}

	if c.departure != nil {
		state.DepartureID = c.departure.ID
	}

	return state
}

// TouchedAt is the last time the form was changed or submitted.
func (c *Controller) TouchedAt() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.touchedAt
}

// Submit creates the booking intent and then the booking, strictly in that order.
// Only one submission runs at a time; a second call while one is in flight returns
// failure.SubmissionInProgressError without touching the network.
func (c *Controller) Submit(ctx context.Context, req SubmitRequest) (res model.Handoff, err error) {
	c.mu.Lock()

	if c.submitting {
		c.mu.Unlock()

		return res, failure.SubmissionInProgressError
	}

	quote := c.quoteLocked()

	if err = c.checkLocked(req, quote); err != nil {
		c.lastError = failure.Message(err, err.Error())
		c.mu.Unlock()

		return res, err
	}

	c.lead.Phone = validation.NormalizePhone(c.lead.Phone, c.opts.DefaultCountryCode)

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = c.trek.Currency
	}

	intentReq := bookingapi.IntentRequest{
		TrekSlug:  req.TrekSlug,
		PartySize: c.partySize,
		Email:     c.lead.Email,
		Phone:     c.lead.Phone,
	}
	bookingReq := c.bookingRequestLocked(req, currency, quote.TotalPrice)

	c.submitting = true
	c.lastError = ""
	c.loginRedirect = ""
	c.intent, c.booking, c.handoff = nil, nil, nil
	c.setStageLocked(StageIntentRequested)
	c.touchLocked()
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.submitting = false
		c.touchLocked()
		c.mu.Unlock()
	}()

	// The draft outlives the request, so a caller that leaves must not abort a booking half way.
	ctx = context.WithoutCancel(ctx)

	intent, err := c.client.CreateBookingIntent(ctx, intentReq)
	if err != nil {
		log.Error().Err(err).Str("trek", req.TrekSlug).Msg("failed to create booking intent")

		return res, c.fail(fmt.Errorf("failed to create booking intent: %w", err), err, msgIntentFailed)
	}

	c.mu.Lock()
	c.intent = &intent
	c.setStageLocked(StageIntentObtained)
	c.setStageLocked(StageBookingRequested)
	c.mu.Unlock()

	bookingReq.BookingIntentID = intent.ID

	booking, err := c.client.CreateBooking(ctx, bookingReq)
	if err != nil {
		log.Error().Err(err).Str("trek", req.TrekSlug).Str("intent", intent.ID).Msg("failed to create booking")

		return res, c.fail(fmt.Errorf("failed to create booking: %w", err), err, msgBookingFailed)
	}

	res = model.Handoff{
		BookingRef: booking.Ref,
		Status:     booking.Status,
		Quote:      quote,
		Currency:   currency,
	}

	c.mu.Lock()
	c.booking = &booking
	c.setStageLocked(StageBookingCreated)
	c.handoff = &res
	c.setStageLocked(StageHandoff)
	c.mu.Unlock()

	log.Info().Str("booking_ref", booking.Ref).Str("trek", req.TrekSlug).Msg("booking created")

	return res, nil
}

// fail moves the form back to idle, or to the login redirect when the session is gone.
func (c *Controller) fail(wrapped, cause error, fallback string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lastError = failure.Message(cause, fallback)

	if failure.IsAuth(cause) {
		c.setStageLocked(StageRedirectToLogin)
		c.loginRedirect = shared.LoginRedirect(c.opts.LoginPath, ReturnPath(c.trek.Slug))

		return wrapped
	}

	c.setStageLocked(StageIdle)

	return wrapped
}

// checkLocked also rejects a total that no longer matches the draft, e.g. after a traveller was
// added while the page still showed the old price.
func (c *Controller) checkLocked(req SubmitRequest, quote model.PriceQuote) error {
	if strings.TrimSpace(req.TrekSlug) == "" {
		return failure.BadRequestFromString("trek is required")
	}

	state := c.validationLocked()
	if !state.FormValid {
		return failure.BadRequestFromString(invalidReason(state))
	}

	if !c.dates.IsSet() {
		return failure.BadRequestFromString("trip dates could not be determined for this trek")
	}

	if req.TotalPrice <= 0 || !quote.Available() {
		return failure.PricingUnavailableError
	}

	if req.TotalPrice != quote.TotalPrice {
		return failure.PriceChangedError
	}

	return nil
}

func (c *Controller) bookingRequestLocked(req SubmitRequest, currency string, total money.Cents) bookingapi.CreateBookingRequest {
	metadata := map[string]string{"source": "web"}
	if c.departure != nil {
		metadata["departure_id"] = c.departure.ID
	}

	return bookingapi.CreateBookingRequest{
		TrekSlug:         req.TrekSlug,
		PartySize:        c.partySize,
		StartDate:        dates.FormatDate(c.dates.Start),
		EndDate:          dates.FormatDate(c.dates.End),
		Title:            c.lead.Title,
		FirstName:        strings.TrimSpace(c.lead.FirstName),
		LastName:         strings.TrimSpace(c.lead.LastName),
		Email:            c.lead.Email,
		Phone:            c.lead.Phone,
		Country:          c.lead.Country,
		EmergencyContact: c.lead.EmergencyContact,
		DietaryNotes:     c.lead.DietaryNotes,
		ExperienceLevel:  string(c.lead.Experience),
		GuideLanguage:    c.prefs.GuideLanguage,
		SpecialRequests:  c.prefs.SpecialRequests,
		Comments:         c.prefs.Comments,
		DepartureTime:    c.flight.DepartureTime,
		ReturnTime:       c.flight.ReturnTime,
		TotalAmount:      bookingapi.NewDecimal(total),
		Currency:         currency,
		Metadata:         metadata,
	}
}

func (c *Controller) quoteLocked() model.PriceQuote {
	return pricing.Quote(c.trek.BasePrice, c.partySize)
}

func (c *Controller) validationLocked() model.ValidationState {
	return validation.Evaluate(c.lead, c.dates.Start, c.partySize, c.accepted)
}

func (c *Controller) warningsLocked() []model.Warning {
	var warnings []model.Warning

	switch {
	case c.departure != nil && !c.departure.EndDate.IsZero():
		warnings = append(warnings, dates.CheckDuration(c.trek.Duration, c.departure.StartDate, c.departure.EndDate)...)
	default:
		if _, ok := dates.ParseDurationDays(c.trek.Duration); !ok {
			warnings = append(warnings, model.Warning{
				Code:    model.WarningDurationUnknown,
				Message: fmt.Sprintf("trek duration %q does not state a number of days", c.trek.Duration),
			})
		}
	}

	if !c.quoteLocked().Available() {
		warnings = append(warnings, model.Warning{
			Code:    model.WarningPricingUnavailable,
			Message: "pricing is not available for this trek, booking is disabled",
		})
	}

	return warnings
}

func (c *Controller) setStageLocked(stage Stage) {
	log.Debug().Str("trek", c.trek.Slug).Str("from", string(c.stage)).Str("to", string(stage)).Msg("booking form stage")

	c.stage = stage
}

func (c *Controller) touchLocked() {
	c.touchedAt = c.now()
}

// ReturnPath is where the traveller lands after signing in again mid-booking.
func ReturnPath(trekSlug string) string {
	return "/treks/" + trekSlug + "/book"
}

func invalidReason(state model.ValidationState) string {
	switch {
	case !state.StartDateSet:
		return "please choose a start date"
	case !state.PartySizeValid:
		return "party size must be at least one"
	case !state.FirstNameValid:
		return "first name is required"
	case !state.LastNameValid:
		return "last name is required"
	case !state.EmailValid:
		return "please enter a valid email address"
	case !state.PhoneValid:
		return "please enter a valid phone number"
	case !state.Accepted:
		return "please accept the terms and conditions"
	}

	return "booking form is incomplete"
}
