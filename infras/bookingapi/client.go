package bookingapi

//go:generate go run go.uber.org/mock/mockgen -source=./client.go -destination=./mocks/client_mock.go -package=mocks

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"trekking/config"
	"trekking/infras/otel"
	bookingModel "trekking/internal/domains/booking/model"
	trekModel "trekking/internal/domains/trek/model"
	"trekking/shared/constant"
	"trekking/shared/failure"
)

const (
	otelScopeName       = constant.OtelExternalScopeName
	otelPathAttribute   = "http.path"
	otelStatusAttribute = "http.status_code"
	maxErrorBody        = 64 << 10
)

// PaymentIntent is the provider handle the API created for a booking.
type PaymentIntent struct {
	ID           string
	ClientSecret string
}

// Client is the booking REST API as seen by this service. Calls are never retried.
type Client interface {
	GetTrek(ctx context.Context, slug string) (trekModel.Trek, error)
	CreateBookingIntent(ctx context.Context, req IntentRequest) (bookingModel.BookingIntent, error)
	CreateBooking(ctx context.Context, req CreateBookingRequest) (bookingModel.Booking, error)
	GetBooking(ctx context.Context, ref string) (bookingModel.Booking, error)
	CreatePaymentIntent(ctx context.Context, ref string) (PaymentIntent, error)
	MarkPaid(ctx context.Context, ref string) (bookingModel.Booking, error)
}

type clientImpl struct {
	baseURL         string
	defaultCurrency string
	http            *http.Client
	otel            otel.Otel
}

func New(cfg *config.Config, ot otel.Otel) Client {
	timeout := cfg.External.BookingAPI.TimeoutSeconds
	if timeout <= 0 {
		timeout = constant.DefaultAPITimeout
	}

	currency := cfg.Booking.DefaultCurrency
	if currency == "" {
		currency = constant.DefaultCurrency
	}

	return &clientImpl{
		baseURL:         strings.TrimRight(cfg.External.BookingAPI.BaseURL, "/"),
		defaultCurrency: currency,
		http:            &http.Client{Timeout: time.Duration(timeout) * time.Second},
		otel:            ot,
	}
}

func (c *clientImpl) GetTrek(ctx context.Context, slug string) (res trekModel.Trek, err error) {
	ctx, scope := c.otel.NewScope(ctx, otelScopeName, otelScopeName+".GetTrek")
	defer scope.End()
	defer scope.TraceIfError(err)

	var record trekRecord
	if err = c.do(ctx, http.MethodGet, "/treks/"+url.PathEscape(slug), nil, &record); err != nil {
		return res, err
	}

	res = record.toModel(c.defaultCurrency)
	if res.Slug == "" {
		res.Slug = slug
	}

	return res, nil
}

func (c *clientImpl) CreateBookingIntent(ctx context.Context, req IntentRequest) (res bookingModel.BookingIntent, err error) {
	ctx, scope := c.otel.NewScope(ctx, otelScopeName, otelScopeName+".CreateBookingIntent")
	defer scope.End()
	defer scope.TraceIfError(err)

	var body intentResponse
	if err = c.do(ctx, http.MethodPost, "/booking-intents", req, &body); err != nil {
		return res, err
	}

	res = body.toModel()
	if res.ID == "" {
		return res, failure.BadGateway("booking service did not return a booking intent id")
	}

	return res, nil
}

func (c *clientImpl) CreateBooking(ctx context.Context, req CreateBookingRequest) (res bookingModel.Booking, err error) {
	ctx, scope := c.otel.NewScope(ctx, otelScopeName, otelScopeName+".CreateBooking")
	defer scope.End()
	defer scope.TraceIfError(err)

	var record bookingRecord
	if err = c.do(ctx, http.MethodPost, "/bookings", req, &record); err != nil {
		return res, err
	}

	res = record.toModel(c.defaultCurrency)
	if res.Ref == "" {
		return res, failure.BadGateway("booking service did not return a booking reference")
	}

	return res, nil
}

func (c *clientImpl) GetBooking(ctx context.Context, ref string) (res bookingModel.Booking, err error) {
	ctx, scope := c.otel.NewScope(ctx, otelScopeName, otelScopeName+".GetBooking")
	defer scope.End()
	defer scope.TraceIfError(err)

	var record bookingRecord
	if err = c.do(ctx, http.MethodGet, "/bookings/"+url.PathEscape(ref), nil, &record); err != nil {
		return res, err
	}

	res = record.toModel(c.defaultCurrency)
	if res.Ref == "" {
		res.Ref = ref
	}

	return res, nil
}

func (c *clientImpl) CreatePaymentIntent(ctx context.Context, ref string) (res PaymentIntent, err error) {
	ctx, scope := c.otel.NewScope(ctx, otelScopeName, otelScopeName+".CreatePaymentIntent")
	defer scope.End()
	defer scope.TraceIfError(err)

	var body paymentIntentResponse
	if err = c.do(ctx, http.MethodPost, "/bookings/"+url.PathEscape(ref)+"/payment-intent", struct{}{}, &body); err != nil {
		return res, err
	}

	if body.ClientSecret == "" {
		return res, failure.BadGateway("booking service did not return a payment client secret")
	}

	return PaymentIntent{ID: body.PaymentIntentID, ClientSecret: body.ClientSecret}, nil
}

func (c *clientImpl) MarkPaid(ctx context.Context, ref string) (res bookingModel.Booking, err error) {
	ctx, scope := c.otel.NewScope(ctx, otelScopeName, otelScopeName+".MarkPaid")
	defer scope.End()
	defer scope.TraceIfError(err)

	var record bookingRecord
	if err = c.do(ctx, http.MethodPost, "/bookings/"+url.PathEscape(ref)+"/mark-paid", struct{}{}, &record); err != nil {
		return res, err
	}

	res = record.toModel(c.defaultCurrency)
	if res.Ref == "" {
		res.Ref = ref
	}

	return res, nil
}

// do sends one request and decodes a 2xx body into out. Non-2xx responses become a *failure.Failure
// carrying the server's own message when it sent one.
func (c *clientImpl) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}

		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Accept", constant.ContentTypeJSON)
	if in != nil {
		req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	}

	if token, _ := ctx.Value(constant.ContextKeyAccessToken).(string); token != "" {
		req.Header.Set(constant.RequestHeaderAuthorization, "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return fmt.Errorf("request to booking service cancelled: %w", err)
		}

		log.Error().Err(err).Str("method", method).Str("path", path).Msg("booking service unreachable")

		return failure.BadGateway("booking service is unreachable, please try again")
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return c.decodeError(resp, method, path)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		log.Error().Err(err).Str("path", path).Msg("failed to decode booking service response")

		return failure.BadGateway("booking service returned an unreadable response")
	}

	return nil
}

func (c *clientImpl) decodeError(resp *http.Response, method, path string) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var body errorBody

	msg := ""
	if err := json.Unmarshal(raw, &body); err == nil {
		msg = body.message()
	}

	if msg == "" {
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			msg = "session expired, please log in again"
		case http.StatusNotFound:
			msg = "not found"
		default:
			msg = fmt.Sprintf("booking service returned %d", resp.StatusCode)
		}
	}

	log.Warn().
		Int(otelStatusAttribute, resp.StatusCode).
		Str("method", method).
		Str(otelPathAttribute, path).
		Str("message", msg).
		Msg("booking service rejected request")

	return failure.FromStatus(resp.StatusCode, msg)
}
