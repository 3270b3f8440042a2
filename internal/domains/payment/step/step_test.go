package step_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"trekking/infras/bookingapi"
	apiMocks "trekking/infras/bookingapi/mocks"
	"trekking/infras/stripe"
	stripeMocks "trekking/infras/stripe/mocks"
	"trekking/internal/domains/booking/model"
	"trekking/internal/domains/payment/step"
	"trekking/shared/failure"
	"trekking/shared/money"
)

func pending() model.Booking {
	return model.Booking{
		Ref:         "BK-1",
		TrekSlug:    "everest-base-camp",
		PartySize:   3,
		TotalAmount: money.FromFloat(4470),
		Currency:    "USD",
		Status:      model.StatusPending,
	}
}

func setup(t *testing.T, opts step.Options) (*step.Step, *apiMocks.MockClient, *stripeMocks.MockGateway) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	client := apiMocks.NewMockClient(ctrl)
	gateway := stripeMocks.NewMockGateway(ctrl)

	return step.New(client, gateway, opts), client, gateway
}

func TestStep_LoadBooking(t *testing.T) {
	tests := []struct {
		name          string
		ref           string
		setupMock     func(client *apiMocks.MockClient)
		wantPhase     step.Phase
		wantRedirect  string
		wantRetryable bool
		wantErr       bool
	}{
		{
			name: "loaded",
			ref:  "BK-1",
			setupMock: func(client *apiMocks.MockClient) {
				client.EXPECT().GetBooking(gomock.Any(), "BK-1").Return(pending(), nil)
			},
			wantPhase: step.PhaseLoaded,
		},
		{
			name:      "blank reference never reaches the network",
			ref:       "  ",
			setupMock: func(*apiMocks.MockClient) {},
			wantPhase: step.PhaseNotFound,
			wantErr:   true,
		},
		{
			name:      "malformed reference",
			ref:       "../admin",
			setupMock: func(*apiMocks.MockClient) {},
			wantPhase: step.PhaseNotFound,
			wantErr:   true,
		},
		{
			name: "unknown reference is terminal",
			ref:  "BK-404",
			setupMock: func(client *apiMocks.MockClient) {
				client.EXPECT().GetBooking(gomock.Any(), "BK-404").Return(model.Booking{}, failure.NotFound("Booking not found"))
			},
			wantPhase: step.PhaseNotFound,
			wantErr:   true,
		},
		{
			name: "session expired redirects to login",
			ref:  "BK-1",
			setupMock: func(client *apiMocks.MockClient) {
				client.EXPECT().GetBooking(gomock.Any(), "BK-1").Return(model.Booking{}, errors.New("Session expired"))
			},
			wantPhase:    step.PhaseRedirectToLogin,
			wantRedirect: "/login?next=%2Fpayment%2FBK-1",
			wantErr:      true,
		},
		{
			name: "network failure can be retried",
			ref:  "BK-1",
			setupMock: func(client *apiMocks.MockClient) {
				client.EXPECT().GetBooking(gomock.Any(), "BK-1").Return(model.Booking{}, failure.BadGateway("booking service is unreachable, please try again"))
			},
			wantPhase:     step.PhaseError,
			wantRetryable: true,
			wantErr:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, client, _ := setup(t, step.Options{LoginPath: "/login"})
			tt.setupMock(client)

			_, err := s.LoadBooking(context.Background(), tt.ref)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			state := s.Snapshot()
			assert.Equal(t, tt.wantPhase, state.Phase)
			assert.Equal(t, tt.wantRedirect, state.LoginRedirect)
			assert.Equal(t, tt.wantRetryable, state.Retryable)
		})
	}
}

func TestStep_LoadBooking_QuoteRestated(t *testing.T) {
	s, client, _ := setup(t, step.Options{})
	client.EXPECT().GetBooking(gomock.Any(), "BK-1").Return(pending(), nil)

	_, err := s.LoadBooking(context.Background(), "BK-1")
	require.NoError(t, err)

	quote := s.Snapshot().Quote
	assert.Equal(t, money.FromFloat(894), quote.InitialPayment)
	assert.Equal(t, money.FromFloat(3576), quote.DueAmount)
	assert.Equal(t, 3, quote.PartySize)
}

func TestStep_DetachDiscardsResult(t *testing.T) {
	s, client, _ := setup(t, step.Options{})

	client.EXPECT().
		GetBooking(gomock.Any(), "BK-1").
		DoAndReturn(func(context.Context, string) (model.Booking, error) {
			s.Detach()

			return pending(), nil
		})

	_, err := s.LoadBooking(context.Background(), "BK-1")
	assert.ErrorIs(t, err, step.ErrDetached)

	state := s.Snapshot()
	assert.Nil(t, state.Booking)
	assert.Equal(t, step.PhaseLoading, state.Phase)
}

func TestStep_CreatePaymentIntent(t *testing.T) {
	s, client, _ := setup(t, step.Options{})

	_, err := s.CreatePaymentIntent(context.Background())
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))

	client.EXPECT().GetBooking(gomock.Any(), "BK-1").Return(pending(), nil)
	client.EXPECT().
		CreatePaymentIntent(gomock.Any(), "BK-1").
		Return(bookingapi.PaymentIntent{ID: "pi_1", ClientSecret: "pi_1_secret_x"}, nil)

	_, err = s.LoadBooking(context.Background(), "BK-1")
	require.NoError(t, err)

	intent, err := s.CreatePaymentIntent(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "pi_1_secret_x", intent.ClientSecret)

	state := s.Snapshot()
	assert.Equal(t, step.PhaseIntentReady, state.Phase)
	assert.Equal(t, "pi_1_secret_x", state.ClientSecret)
}

func TestStep_CreatePaymentIntent_AlreadyPaid(t *testing.T) {
	s, client, _ := setup(t, step.Options{})

	paid := pending()
	paid.Status = model.StatusPaid

	client.EXPECT().GetBooking(gomock.Any(), "BK-1").Return(paid, nil)

	_, err := s.LoadBooking(context.Background(), "BK-1")
	require.NoError(t, err)

	_, err = s.CreatePaymentIntent(context.Background())
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))
}

func TestStep_ConfirmPayment(t *testing.T) {
	payment := stripe.CardPayment{PaymentMethodID: "pm_card_visa", ReceiptEmail: "lead@example.com"}

	tests := []struct {
		name          string
		setupMock     func(client *apiMocks.MockClient, gateway *stripeMocks.MockGateway)
		wantPhase     step.Phase
		wantStatus    model.Status
		wantMessage   string
		wantCode      int
		wantRetryable bool
	}{
		{
			name: "succeeded refreshes booking",
			setupMock: func(client *apiMocks.MockClient, gateway *stripeMocks.MockGateway) {
				gateway.EXPECT().
					ConfirmCardPayment(gomock.Any(), "pi_1_secret_x", payment).
					Return(stripe.Confirmation{IntentID: "pi_1", Status: "succeeded", Succeeded: true}, nil)

				confirmed := pending()
				confirmed.Status = model.StatusConfirmed
				client.EXPECT().GetBooking(gomock.Any(), "BK-1").Return(confirmed, nil)
			},
			wantPhase:  step.PhaseConfirmed,
			wantStatus: model.StatusConfirmed,
		},
		{
			name: "declined keeps the form editable",
			setupMock: func(_ *apiMocks.MockClient, gateway *stripeMocks.MockGateway) {
				gateway.EXPECT().
					ConfirmCardPayment(gomock.Any(), "pi_1_secret_x", payment).
					Return(stripe.Confirmation{}, failure.PaymentRequired("Your card was declined."))
			},
			wantPhase:     step.PhasePaymentFailed,
			wantStatus:    model.StatusPending,
			wantMessage:   "Your card was declined.",
			wantCode:      http.StatusPaymentRequired,
			wantRetryable: true,
		},
		{
			name: "requires action",
			setupMock: func(_ *apiMocks.MockClient, gateway *stripeMocks.MockGateway) {
				gateway.EXPECT().
					ConfirmCardPayment(gomock.Any(), "pi_1_secret_x", payment).
					Return(stripe.Confirmation{IntentID: "pi_1", Status: "requires_action", Message: "additional authentication is required to complete the payment"}, nil)
			},
			wantPhase:     step.PhasePaymentFailed,
			wantStatus:    model.StatusPending,
			wantMessage:   "additional authentication is required to complete the payment",
			wantCode:      http.StatusPaymentRequired,
			wantRetryable: true,
		},
		{
			name: "refresh failure still confirms",
			setupMock: func(client *apiMocks.MockClient, gateway *stripeMocks.MockGateway) {
				gateway.EXPECT().
					ConfirmCardPayment(gomock.Any(), "pi_1_secret_x", payment).
					Return(stripe.Confirmation{IntentID: "pi_1", Status: "succeeded", Succeeded: true}, nil)
				client.EXPECT().GetBooking(gomock.Any(), "BK-1").Return(model.Booking{}, errors.New("timeout"))
			},
			wantPhase:  step.PhaseConfirmed,
			wantStatus: model.StatusPending,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, client, gateway := setup(t, step.Options{})

			client.EXPECT().GetBooking(gomock.Any(), "BK-1").Return(pending(), nil)

			_, err := s.LoadBooking(context.Background(), "BK-1")
			require.NoError(t, err)

			tt.setupMock(client, gateway)

			_, err = s.ConfirmPayment(context.Background(), "pi_1_secret_x", payment)
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				require.NoError(t, err)
			}

			state := s.Snapshot()
			assert.Equal(t, tt.wantPhase, state.Phase)
			assert.Equal(t, tt.wantMessage, state.LastError)
			assert.Equal(t, tt.wantRetryable, state.Retryable)
			require.NotNil(t, state.Booking)
			assert.Equal(t, tt.wantStatus, state.Booking.Status)
		})
	}
}

func TestStep_MarkPaid(t *testing.T) {
	t.Run("refused when provider is live", func(t *testing.T) {
		s, _, _ := setup(t, step.Options{LiveProvider: true})

		_, err := s.MarkPaid(context.Background())
		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("requires a loaded booking", func(t *testing.T) {
		s, _, _ := setup(t, step.Options{})

		_, err := s.MarkPaid(context.Background())
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("marks paid in development", func(t *testing.T) {
		s, client, _ := setup(t, step.Options{})

		paid := pending()
		paid.Status = model.StatusPaid

		client.EXPECT().GetBooking(gomock.Any(), "BK-1").Return(pending(), nil)
		client.EXPECT().MarkPaid(gomock.Any(), "BK-1").Return(paid, nil)

		_, err := s.LoadBooking(context.Background(), "BK-1")
		require.NoError(t, err)

		booking, err := s.MarkPaid(context.Background())
		require.NoError(t, err)
		assert.Equal(t, model.StatusPaid, booking.Status)
		assert.Equal(t, step.PhaseConfirmed, s.Snapshot().Phase)
	})
}

func TestStep_CallsOutliveCallerCancellation(t *testing.T) {
	s, client, gateway := setup(t, step.Options{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	notCancelled := func(ctx context.Context) {
		assert.NoError(t, ctx.Err())
	}

	client.EXPECT().
		GetBooking(gomock.Any(), "BK-1").
		DoAndReturn(func(ctx context.Context, _ string) (model.Booking, error) {
			notCancelled(ctx)

			return pending(), nil
		}).
		Times(2)
	gateway.EXPECT().
		ConfirmCardPayment(gomock.Any(), "pi_1_secret_x", gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string, _ stripe.CardPayment) (stripe.Confirmation, error) {
			notCancelled(ctx)

			return stripe.Confirmation{IntentID: "pi_1", Status: "succeeded", Succeeded: true}, nil
		})

	_, err := s.LoadBooking(ctx, "BK-1")
	require.NoError(t, err)

	_, err = s.ConfirmPayment(ctx, "pi_1_secret_x", stripe.CardPayment{PaymentMethodID: "pm_card_visa"})
	require.NoError(t, err)

	assert.Equal(t, step.PhaseConfirmed, s.Snapshot().Phase)
}
