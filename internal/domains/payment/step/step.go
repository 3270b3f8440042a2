// Package step drives the payment of one booking: load it, obtain a provider client secret,
// confirm the card payment, and report the outcome. Nothing here retries on its own.
package step

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"trekking/infras/bookingapi"
	"trekking/infras/stripe"
	"trekking/internal/domains/booking/model"
	"trekking/internal/domains/booking/pricing"
	"trekking/shared"
	"trekking/shared/failure"
)

type Phase string

const (
	PhaseIdle            Phase = "idle"
	PhaseLoading         Phase = "loading"
	PhaseLoaded          Phase = "loaded"
	PhaseNotFound        Phase = "not_found"
	PhaseIntentReady     Phase = "intent_ready"
	PhaseConfirming      Phase = "confirming"
	PhaseConfirmed       Phase = "confirmed"
	PhasePaymentFailed   Phase = "payment_failed"
	PhaseError           Phase = "error"
	PhaseRedirectToLogin Phase = "redirect_to_login"
)

// ErrDetached is returned when the step was torn down while a call was in flight.
var ErrDetached = errors.New("payment step detached, result discarded")

var refPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]{0,63}$`)

type Options struct {
	LoginPath string
	// LiveProvider disables MarkPaid.
	LiveProvider bool
}

type State struct {
	Ref           string
	Phase         Phase
	Booking       *model.Booking
	Quote         model.PriceQuote
	ClientSecret  string
	Confirmation  *stripe.Confirmation
	LastError     string
	LoginRedirect string
	Retryable     bool
}

type Step struct {
	mu      sync.Mutex
	client  bookingapi.Client
	gateway stripe.Gateway
	opts    Options

	generation   uint64
	ref          string
	phase        Phase
	booking      *model.Booking
	clientSecret string
	confirmation *stripe.Confirmation
	lastError    string
	redirect     string
	retryable    bool
}

func New(client bookingapi.Client, gateway stripe.Gateway, opts Options) *Step {
	return &Step{
		client:  client,
		gateway: gateway,
		opts:    opts,
		phase:   PhaseIdle,
	}
}

// Detach marks every in-flight call as irrelevant; their results will not be applied.
func (s *Step) Detach() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
}

// upstream keeps calls running after the caller goes away. A half-finished payment must not be
// aborted mid-flight; Detach is what makes its result irrelevant.
func upstream(ctx context.Context) context.Context {
	return context.WithoutCancel(ctx)
}

// ReturnPath is where the traveller lands after signing in again during payment.
func ReturnPath(ref string) string {
	return "/payment/" + ref
}

// LoadBooking fetches the booking. A malformed or unknown reference is terminal.
func (s *Step) LoadBooking(ctx context.Context, ref string) (model.Booking, error) {
	ref = strings.TrimSpace(ref)

	s.mu.Lock()
	s.ref = ref
	s.booking = nil
	s.clientSecret = ""
	s.confirmation = nil

	if !refPattern.MatchString(ref) {
		s.phase = PhaseNotFound
		s.lastError = "booking reference is missing or invalid"
		s.retryable = false
		s.mu.Unlock()

		return model.Booking{}, failure.NotFound("booking reference is missing or invalid")
	}

	s.phase = PhaseLoading
	gen := s.generation
	s.mu.Unlock()

	booking, err := s.client.GetBooking(upstream(ctx), ref)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		return model.Booking{}, ErrDetached
	}

	if err != nil {
		if failure.GetCode(err) == http.StatusNotFound {
			s.phase = PhaseNotFound
			s.lastError = failure.Message(err, "booking not found")
			s.retryable = false

			return model.Booking{}, fmt.Errorf("failed to load booking: %w", err)
		}

		return model.Booking{}, s.failLocked(fmt.Errorf("failed to load booking: %w", err), err, "We could not load your booking, please try again")
	}

	s.booking = &booking
	s.phase = PhaseLoaded
	s.lastError = ""
	s.retryable = false

	return booking, nil
}

// CreatePaymentIntent asks the booking API for a provider client secret. The booking must be loaded first.
func (s *Step) CreatePaymentIntent(ctx context.Context) (bookingapi.PaymentIntent, error) {
	s.mu.Lock()

	if s.booking == nil {
		s.mu.Unlock()

		return bookingapi.PaymentIntent{}, failure.Conflict("booking must be loaded before requesting a payment")
	}

	if s.booking.Status.IsSettled() {
		s.mu.Unlock()

		return bookingapi.PaymentIntent{}, failure.Conflict("booking is already paid")
	}

	ref := s.ref
	gen := s.generation
	s.mu.Unlock()

	intent, err := s.client.CreatePaymentIntent(upstream(ctx), ref)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		return bookingapi.PaymentIntent{}, ErrDetached
	}

	if err != nil {
		return intent, s.failLocked(fmt.Errorf("failed to create payment intent: %w", err), err, "We could not start the payment, please try again")
	}

	s.clientSecret = intent.ClientSecret
	s.phase = PhaseIntentReady
	s.lastError = ""

	return intent, nil
}

// ConfirmPayment confirms the card payment with the provider. On success the booking is read
// again so the status shown is the one the booking API settled on.
func (s *Step) ConfirmPayment(ctx context.Context, clientSecret string, payment stripe.CardPayment) (stripe.Confirmation, error) {
	s.mu.Lock()

	if s.booking == nil {
		s.mu.Unlock()

		return stripe.Confirmation{}, failure.Conflict("booking must be loaded before confirming a payment")
	}

	if clientSecret == "" {
		clientSecret = s.clientSecret
	}

	ref := s.ref
	gen := s.generation
	s.phase = PhaseConfirming
	s.mu.Unlock()

	confirmation, err := s.gateway.ConfirmCardPayment(upstream(ctx), clientSecret, payment)

	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()

		return stripe.Confirmation{}, ErrDetached
	}

	if err != nil {
		s.phase = PhasePaymentFailed
		s.lastError = failure.Message(err, "payment could not be confirmed, please try again")
		s.retryable = true
		s.mu.Unlock()

		log.Warn().Err(err).Str("booking_ref", ref).Msg("payment confirmation failed")

		return confirmation, fmt.Errorf("failed to confirm payment: %w", err)
	}

	s.confirmation = &confirmation

	if !confirmation.Succeeded {
		s.phase = PhasePaymentFailed
		s.lastError = confirmation.Message
		s.retryable = true
		s.mu.Unlock()

		return confirmation, failure.PaymentRequired(confirmation.Message)
	}

	s.phase = PhaseConfirmed
	s.lastError = ""
	s.retryable = false
	s.mu.Unlock()

	log.Info().Str("booking_ref", ref).Str("payment_intent_id", confirmation.IntentID).Msg("payment confirmed")

	booking, err := s.client.GetBooking(upstream(ctx), ref)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		log.Warn().Err(err).Str("booking_ref", ref).Msg("payment confirmed but booking could not be refreshed")

		return confirmation, nil
	}

	if gen == s.generation {
		s.booking = &booking
	}

	return confirmation, nil
}

// MarkPaid flips the booking to paid without the provider. Development only: it is refused
// whenever card payments are live.
func (s *Step) MarkPaid(ctx context.Context) (model.Booking, error) {
	if s.opts.LiveProvider {
		return model.Booking{}, failure.Forbidden("marking a booking paid is disabled while card payments are live")
	}

	s.mu.Lock()

	if s.booking == nil {
		s.mu.Unlock()

		return model.Booking{}, failure.Conflict("booking must be loaded before marking it paid")
	}

	ref := s.ref
	gen := s.generation
	s.mu.Unlock()

	booking, err := s.client.MarkPaid(upstream(ctx), ref)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		return model.Booking{}, ErrDetached
	}

	if err != nil {
		return booking, s.failLocked(fmt.Errorf("failed to mark booking paid: %w", err), err, "We could not update your booking, please try again")
	}

	log.Warn().Str("booking_ref", ref).Msg("booking marked paid without a card payment")

	s.booking = &booking
	s.phase = PhaseConfirmed
	s.lastError = ""

	return booking, nil
}

func (s *Step) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := State{
		Ref:           s.ref,
		Phase:         s.phase,
		Booking:       s.booking,
		ClientSecret:  s.clientSecret,
		Confirmation:  s.confirmation,
		LastError:     s.lastError,
		LoginRedirect: s.redirect,
		Retryable:     s.retryable,
	}

	if s.booking != nil {
		state.Quote = pricing.Split(s.booking.TotalAmount)
		state.Quote.PartySize = s.booking.PartySize
	}

	return state
}

// failLocked records a failed call. Auth failures send the traveller to sign in and come back here;
// anything else can be retried by hand.
func (s *Step) failLocked(wrapped, cause error, fallback string) error {
	s.lastError = failure.Message(cause, fallback)

	if failure.IsAuth(cause) {
		s.phase = PhaseRedirectToLogin
		s.redirect = shared.LoginRedirect(s.opts.LoginPath, ReturnPath(s.ref))
		s.retryable = false

		return wrapped
	}

	s.phase = PhaseError
	s.retryable = true

	log.Error().Err(cause).Str("booking_ref", s.ref).Msg("payment step request failed")

	return wrapped
}
