package payment

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"trekking/infras/otel"
	"trekking/internal/domains/payment/model/dto"
	"trekking/internal/domains/payment/service"
	"trekking/internal/domains/payment/step"
	"trekking/shared/constant"
	"trekking/shared/validator"
	"trekking/transport/http/response"
)

// statusClientClosedRequest is what gets logged when the caller left before the answer.
const statusClientClosedRequest = 499

type Handler struct {
	service service.Payment
	otel    otel.Otel
}

func New(service service.Payment, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/payments/{ref}", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetPayment)
		routerGroup.Post("/intent", handler.CreateIntent)
		routerGroup.Post("/confirm", handler.Confirm)
		routerGroup.Post("/mark-paid", handler.MarkPaid)
		routerGroup.Get("/receipt", handler.Receipt)
	})
}

// GetPayment loads a booking for the payment page.
// @Summary Get a booking to pay
// @Tags Payment
// @Produce json
// @Param ref path string true "Booking reference"
// @Success 200 {object} response.Data[dto.PaymentResponse]
// @Failure 401 {object} response.LoginRequired
// @Failure 404 {object} response.ErrorWithData[dto.PaymentResponse]
// @Failure 502 {object} response.ErrorWithData[dto.PaymentResponse]
// @Router /v1/payments/{ref} [get]
// @Security BearerAuth
func (handler *Handler) GetPayment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPayment")
	defer scope.End()

	res, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamRef))

	writePayment(w, scope, res, err)
}

// CreateIntent asks the booking service for a card payment client secret.
// @Summary Start a card payment
// @Tags Payment
// @Produce json
// @Param ref path string true "Booking reference"
// @Success 200 {object} response.Data[dto.PaymentIntentResponse]
// @Failure 401 {object} response.LoginRequired
// @Failure 409 {object} response.ErrorWithData[dto.PaymentIntentResponse]
// @Failure 502 {object} response.ErrorWithData[dto.PaymentIntentResponse]
// @Router /v1/payments/{ref}/intent [post]
// @Security BearerAuth
func (handler *Handler) CreateIntent(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateIntent")
	defer scope.End()

	res, err := handler.service.CreateIntent(ctx, chi.URLParam(r, constant.RequestParamRef))
	if err != nil {
		scope.TraceError(err)

		switch {
		case errors.Is(err, step.ErrDetached):
			log.Warn().Str("booking_ref", res.Ref).Msg("payment intent answered after the client left")
			w.WriteHeader(statusClientClosedRequest)
		case res.LoginRedirect != constant.Empty:
			response.WithLoginRedirect(w, err, res.LoginRedirect)
		case res.Ref != constant.Empty:
			log.Error().Err(err).Str("booking_ref", res.Ref).Msg("failed to create payment intent")
			response.WithErrorData(w, err, res)
		default:
			response.WithError(w, err)
		}

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// Confirm confirms the card payment with the payment provider.
// @Summary Confirm a card payment
// @Description The card is tokenized in the browser; only the payment method id reaches this service.
// @Tags Payment
// @Accept json
// @Produce json
// @Param ref path string true "Booking reference"
// @Param request body dto.ConfirmPaymentRequest true "Confirm Payment Request"
// @Success 200 {object} response.Data[dto.PaymentResponse]
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.LoginRequired
// @Failure 402 {object} response.ErrorWithData[dto.PaymentResponse]
// @Failure 409 {object} response.ErrorWithData[dto.PaymentResponse]
// @Failure 503 {object} response.Error
// @Router /v1/payments/{ref}/confirm [post]
// @Security BearerAuth
func (handler *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Confirm")
	defer scope.End()

	req := dto.ConfirmPaymentRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Confirm(ctx, chi.URLParam(r, constant.RequestParamRef), req)
	if err == nil {
		scope.AddEvent("Payment confirmed")
	}

	writePayment(w, scope, res, err)
}

// MarkPaid marks a booking paid without charging a card. Refused while card payments are live.
// @Summary Mark a booking paid (development)
// @Tags Payment
// @Produce json
// @Param ref path string true "Booking reference"
// @Success 200 {object} response.Data[dto.PaymentResponse]
// @Failure 401 {object} response.LoginRequired
// @Failure 403 {object} response.Error
// @Router /v1/payments/{ref}/mark-paid [post]
// @Security BearerAuth
func (handler *Handler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".MarkPaid")
	defer scope.End()

	res, err := handler.service.MarkPaid(ctx, chi.URLParam(r, constant.RequestParamRef))

	writePayment(w, scope, res, err)
}

// Receipt downloads a PDF receipt for the booking.
// @Summary Download a receipt
// @Tags Payment
// @Produce application/pdf
// @Param ref path string true "Booking reference"
// @Success 200 {file} file
// @Failure 401 {object} response.LoginRequired
// @Failure 404 {object} response.Error
// @Router /v1/payments/{ref}/receipt [get]
// @Security BearerAuth
func (handler *Handler) Receipt(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Receipt")
	defer scope.End()

	ref := chi.URLParam(r, constant.RequestParamRef)

	res, err := handler.service.Receipt(ctx, ref)
	if err != nil {
		scope.TraceError(err)

		switch {
		case errors.Is(err, step.ErrDetached):
			log.Warn().Str("booking_ref", ref).Msg("receipt answered after the client left")
			w.WriteHeader(statusClientClosedRequest)
		case res.LoginRedirect != constant.Empty:
			log.Warn().Err(err).Str("booking_ref", ref).Msg("receipt needs a new login")

			response.WithLoginRedirect(w, err, res.LoginRedirect)
		default:
			log.Error().Err(err).Str("booking_ref", ref).Msg("failed to build receipt")

			response.WithError(w, err)
		}

		return
	}

	response.WithPDF(w, res.Receipt.Filename, res.Receipt.Content)
}

func writePayment(w http.ResponseWriter, scope otel.Scope, res dto.PaymentResponse, err error) {
	if err == nil {
		response.WithJSON(w, http.StatusOK, res)

		return
	}

	scope.TraceError(err)

	switch {
	case errors.Is(err, step.ErrDetached):
		log.Warn().Str("booking_ref", res.Ref).Msg("payment step answered after the client left")
		w.WriteHeader(statusClientClosedRequest)
	case res.LoginRedirect != constant.Empty:
		log.Warn().Err(err).Str("booking_ref", res.Ref).Msg("payment needs a new login")

		response.WithLoginRedirect(w, err, res.LoginRedirect)
	case res.Phase != constant.Empty:
		log.Error().Err(err).Str("booking_ref", res.Ref).Str("phase", res.Phase).Msg("payment step failed")

		response.WithErrorData(w, err, res)
	default:
		log.Error().Err(err).Msg("payment request failed")

		response.WithError(w, err)
	}
}
