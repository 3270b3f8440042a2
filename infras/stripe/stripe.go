package stripe

//go:generate go run go.uber.org/mock/mockgen -source=./stripe.go -destination=./mocks/stripe_mock.go -package=mocks

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"

	"trekking/config"
	"trekking/infras/otel"
	"trekking/shared/constant"
	"trekking/shared/failure"
)

const secretSeparator = "_secret_"

var (
	ErrNotConfigured = &failure.Failure{Code: http.StatusServiceUnavailable, Message: "payment provider is not configured"}
	ErrClientSecret  = &failure.Failure{Code: http.StatusBadRequest, Message: "invalid payment client secret"}
)

// CardPayment references a card the browser already tokenized; raw card data never reaches this service.
type CardPayment struct {
	PaymentMethodID string
	ReceiptEmail    string
}

type Confirmation struct {
	IntentID  string
	Status    string
	Succeeded bool
	Message   string
}

type Gateway interface {
	Configured() bool
	ConfirmCardPayment(ctx context.Context, clientSecret string, payment CardPayment) (Confirmation, error)
}

type gatewayImpl struct {
	api  *client.API
	otel otel.Otel
}

// New builds the gateway with network retries disabled. Without a secret key every confirm fails with ErrNotConfigured.
func New(cfg *config.Config, ot otel.Otel) Gateway {
	return newGateway(cfg.External.Stripe.SecretKey, nil, ot)
}

func newGateway(key string, url *string, ot otel.Otel) *gatewayImpl {
	g := &gatewayImpl{otel: ot}
	if key == "" {
		log.Warn().Msg("Stripe secret key is not set, card payments are disabled")

		return g
	}

	backendConfig := &stripe.BackendConfig{
		MaxNetworkRetries: stripe.Int64(0),
		URL:               url,
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelError},
	}

	g.api = client.New(key, &stripe.Backends{
		API:     stripe.GetBackendWithConfig(stripe.APIBackend, backendConfig),
		Connect: stripe.GetBackendWithConfig(stripe.ConnectBackend, backendConfig),
		Uploads: stripe.GetBackendWithConfig(stripe.UploadsBackend, backendConfig),
	})

	return g
}

func (g *gatewayImpl) Configured() bool {
	return g.api != nil
}

func (g *gatewayImpl) ConfirmCardPayment(ctx context.Context, clientSecret string, payment CardPayment) (res Confirmation, err error) {
	ctx, scope := g.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".ConfirmCardPayment")
	defer scope.End()
	defer scope.TraceIfError(err)

	if !g.Configured() {
		return res, ErrNotConfigured
	}

	intentID, ok := IntentID(clientSecret)
	if !ok {
		return res, ErrClientSecret
	}

	if payment.PaymentMethodID == "" {
		return res, failure.BadRequestFromString("payment method is required")
	}

	scope.SetAttribute("payment_intent_id", intentID)

	params := &stripe.PaymentIntentConfirmParams{
		PaymentMethod: stripe.String(payment.PaymentMethodID),
	}
	if payment.ReceiptEmail != "" {
		params.ReceiptEmail = stripe.String(payment.ReceiptEmail)
	}

	params.Context = ctx
	params.SetIdempotencyKey(uuid.NewString())

	intent, err := g.api.PaymentIntents.Confirm(intentID, params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) {
			log.Warn().
				Str("payment_intent_id", intentID).
				Str("code", string(stripeErr.Code)).
				Msg("payment provider declined confirmation")

			return res, failure.PaymentRequired(providerMessage(stripeErr.Msg))
		}

		log.Error().Err(err).Str("payment_intent_id", intentID).Msg("failed to reach payment provider")

		return res, failure.BadGateway("payment provider is unreachable, please try again")
	}

	return toConfirmation(intent), nil
}

func toConfirmation(intent *stripe.PaymentIntent) Confirmation {
	res := Confirmation{
		IntentID:  intent.ID,
		Status:    string(intent.Status),
		Succeeded: intent.Status == stripe.PaymentIntentStatusSucceeded,
	}

	switch intent.Status {
	case stripe.PaymentIntentStatusSucceeded:
	case stripe.PaymentIntentStatusProcessing:
		res.Message = "payment is processing"
	case stripe.PaymentIntentStatusRequiresAction:
		res.Message = "additional authentication is required to complete the payment"
	default:
		msg := ""
		if intent.LastPaymentError != nil {
			msg = intent.LastPaymentError.Msg
		}

		res.Message = providerMessage(msg)
	}

	return res
}

func providerMessage(msg string) string {
	if strings.TrimSpace(msg) == "" {
		return "payment was not completed"
	}

	return msg
}

// IntentID extracts the PaymentIntent id from a client secret of the form "pi_xxx_secret_yyy".
func IntentID(clientSecret string) (string, bool) {
	idx := strings.Index(clientSecret, secretSeparator)
	if idx <= 0 {
		return "", false
	}

	return clientSecret[:idx], true
}
