package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/payment_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"trekking/config"
	"trekking/infras/bookingapi"
	"trekking/infras/otel"
	"trekking/infras/stripe"
	"trekking/internal/domains/payment/model/dto"
	"trekking/internal/domains/payment/receipt"
	"trekking/internal/domains/payment/step"
	"trekking/shared/constant"
	"trekking/shared/failure"
	"trekking/shared/timezone"
)

// Payment runs one payment step per request. Every call loads the booking first, so a stale
// page never acts on a booking that changed in the meantime.
type Payment interface {
	Get(ctx context.Context, ref string) (dto.PaymentResponse, error)
	CreateIntent(ctx context.Context, ref string) (dto.PaymentIntentResponse, error)
	Confirm(ctx context.Context, ref string, req dto.ConfirmPaymentRequest) (dto.PaymentResponse, error)
	MarkPaid(ctx context.Context, ref string) (dto.PaymentResponse, error)
	Receipt(ctx context.Context, ref string) (dto.ReceiptResult, error)
}

type serviceImpl struct {
	client  bookingapi.Client
	gateway stripe.Gateway
	cfg     *config.Config
	otel    otel.Otel
	now     func() time.Time
}

func New(client bookingapi.Client, gateway stripe.Gateway, cfg *config.Config, otel otel.Otel) Payment {
	return &serviceImpl{
		client:  client,
		gateway: gateway,
		cfg:     cfg,
		otel:    otel,
		now:     timezone.Now,
	}
}

func (s *serviceImpl) Get(ctx context.Context, ref string) (res dto.PaymentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	st, stop := s.attach(ctx)
	defer stop()

	_, err = st.LoadBooking(ctx, ref)

	res.FromState(st.Snapshot(), s.canMarkPaid())

	return res, err
}

func (s *serviceImpl) CreateIntent(ctx context.Context, ref string) (res dto.PaymentIntentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateIntent")
	defer scope.End()
	defer scope.TraceIfError(err)

	st, stop := s.attach(ctx)
	defer stop()

	defer func() {
		state := st.Snapshot()
		res.Ref = state.Ref
		res.Phase = string(state.Phase)
		res.Error = state.LastError
		res.LoginRedirect = state.LoginRedirect
	}()

	if _, err = st.LoadBooking(ctx, ref); err != nil {
		return res, err
	}

	intent, err := st.CreatePaymentIntent(ctx)
	if err != nil {
		return res, err
	}

	scope.SetAttribute("payment_intent_id", intent.ID)

	res.IntentID = intent.ID
	res.ClientSecret = intent.ClientSecret

	return res, nil
}

// Confirm confirms a card payment. Without a client secret in the request a fresh payment intent is created first.
func (s *serviceImpl) Confirm(ctx context.Context, ref string, req dto.ConfirmPaymentRequest) (res dto.PaymentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Confirm")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !s.gateway.Configured() {
		return res, stripe.ErrNotConfigured
	}

	if req.ClientSecret != constant.Empty {
		if _, ok := stripe.IntentID(req.ClientSecret); !ok {
			return res, stripe.ErrClientSecret
		}
	}

	st, stop := s.attach(ctx)
	defer stop()

	defer func() {
		res.FromState(st.Snapshot(), s.canMarkPaid())
	}()

	booking, err := st.LoadBooking(ctx, ref)
	if err != nil {
		return res, err
	}

	if booking.Status.IsSettled() {
		return res, failure.Conflict("booking is already paid") // nolint:wrapcheck
	}

	secret := req.ClientSecret
	if secret == constant.Empty {
		intent, err := st.CreatePaymentIntent(ctx)
		if err != nil {
			return res, err
		}

		secret = intent.ClientSecret
	}

	confirmation, err := st.ConfirmPayment(ctx, secret, req.ToModel())
	if err != nil {
		return res, err
	}

	scope.SetAttribute("payment_intent_id", confirmation.IntentID)

	return res, nil
}

func (s *serviceImpl) MarkPaid(ctx context.Context, ref string) (res dto.PaymentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MarkPaid")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !s.canMarkPaid() {
		return res, failure.Forbidden("marking a booking paid is disabled while card payments are live") // nolint:wrapcheck
	}

	st, stop := s.attach(ctx)
	defer stop()

	defer func() {
		res.FromState(st.Snapshot(), s.canMarkPaid())
	}()

	if _, err = st.LoadBooking(ctx, ref); err != nil {
		return res, err
	}

	if _, err = st.MarkPaid(ctx); err != nil {
		return res, err
	}

	return res, nil
}

func (s *serviceImpl) Receipt(ctx context.Context, ref string) (res dto.ReceiptResult, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Receipt")
	defer scope.End()
	defer scope.TraceIfError(err)

	st, stop := s.attach(ctx)
	defer stop()

	_, err = st.LoadBooking(ctx, ref)

	state := st.Snapshot()
	res.Ref = state.Ref
	res.LoginRedirect = state.LoginRedirect

	if err != nil {
		return res, err
	}

	res.Receipt, err = receipt.Render(*state.Booking, state.Quote, s.now())
	if err != nil {
		log.Error().Err(err).Str("booking_ref", state.Ref).Msg("failed to render receipt")

		return res, fmt.Errorf("failed to render receipt: %w", err)
	}

	return res, nil
}

// attach builds a step that is detached as soon as the request context ends.
func (s *serviceImpl) attach(ctx context.Context) (*step.Step, func() bool) {
	st := step.New(s.client, s.gateway, step.Options{
		LoginPath:    s.cfg.App.LoginPath,
		LiveProvider: s.cfg.PaymentProviderLive(),
	})

	return st, context.AfterFunc(ctx, st.Detach)
}

func (s *serviceImpl) canMarkPaid() bool {
	return !s.cfg.PaymentProviderLive()
}
