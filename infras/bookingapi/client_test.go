package bookingapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trekking/config"
	otelMocks "trekking/infras/otel/mocks"
	bookingModel "trekking/internal/domains/booking/model"
	"trekking/shared/constant"
	"trekking/shared/failure"
	"trekking/shared/money"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.External.BookingAPI.BaseURL = srv.URL + "/"
	cfg.External.BookingAPI.TimeoutSeconds = 5

	return New(cfg, otelMocks.NewOtel())
}

func TestClient_GetTrek(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/treks/everest-base-camp", r.URL.Path)

		_, _ = w.Write([]byte(`{
			"slug": "everest-base-camp",
			"title": "Everest Base Camp",
			"duration": "14 Days",
			"price": "1490.00",
			"currency": "usd",
			"departures": [
				{"id": 7, "start_date": "2025-03-10", "end_date": "2025-03-23", "seats_left": 4},
				{"id": 8, "start_date": "not-a-date"}
			]
		}`))
	})

	trek, err := client.GetTrek(context.Background(), "everest-base-camp")
	require.NoError(t, err)

	assert.Equal(t, "Everest Base Camp", trek.Name)
	assert.Equal(t, "14 Days", trek.Duration)
	assert.Equal(t, money.Cents(149000), trek.BasePrice)
	assert.Equal(t, "USD", trek.Currency)
	require.Len(t, trek.Departures, 1)
	assert.Equal(t, "7", trek.Departures[0].ID)
	assert.Equal(t, "2025-03-10", trek.Departures[0].StartDate.Format(constant.CalendarDate))
	require.NotNil(t, trek.Departures[0].SeatsLeft)
	assert.Equal(t, 4, *trek.Departures[0].SeatsLeft)
}

func TestDepartureIDs(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "seven digit number", raw: `1234567`, want: "1234567"},
		{name: "large number", raw: `9007199254740993`, want: "9007199254740993"},
		{name: "string", raw: `"dep-2026-03"`, want: "dep-2026-03"},
		{name: "numeric string", raw: `"0042"`, want: "0042"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var record trekRecord
			body := `{"slug":"ebc","duration":"14 days","departures":[{"id":` + tt.raw + `,"start_date":"2026-03-01"}]}`
			require.NoError(t, json.Unmarshal([]byte(body), &record))

			trek := record.toModel("USD")
			require.Len(t, trek.Departures, 1)
			assert.Equal(t, tt.want, trek.Departures[0].ID)

			_, ok := trek.FindDeparture(tt.want)
			assert.True(t, ok)
		})
	}
}

func TestErrorBody_FieldErrorsInStableOrder(t *testing.T) {
	body := errorBody{}
	require.NoError(t, json.Unmarshal([]byte(`{
		"phone": ["Enter a valid phone number."],
		"email": ["Enter a valid email address."],
		"last_name": ["This field is required."]
	}`), &body))

	for range 20 {
		assert.Equal(t, "email: Enter a valid email address.", body.message())
	}
}

func TestClient_CreateBookingIntent(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantID   string
		wantErr  bool
		secretOK bool
	}{
		{
			name:     "booking_id with secret",
			body:     `{"booking_id": "bi_1", "client_secret": "cs_1"}`,
			wantID:   "bi_1",
			secretOK: true,
		},
		{
			name:   "id without secret",
			body:   `{"id": "bi_2"}`,
			wantID: "bi_2",
		},
		{
			name:    "missing id",
			body:    `{}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/booking-intents", r.URL.Path)
				assert.Equal(t, constant.ContentTypeJSON, r.Header.Get(constant.RequestHeaderContentType))

				var req IntentRequest
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				assert.Equal(t, "ebc", req.TrekSlug)
				assert.Equal(t, 2, req.PartySize)

				w.WriteHeader(http.StatusCreated)
				_, _ = w.Write([]byte(tt.body))
			})

			intent, err := client.CreateBookingIntent(context.Background(), IntentRequest{
				TrekSlug:  "ebc",
				PartySize: 2,
				Email:     "a@b.co",
				Phone:     "+9779812345678",
			})
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, http.StatusBadGateway, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantID, intent.ID)
			assert.Equal(t, tt.secretOK, intent.ClientSecret != nil)
		})
	}
}

func TestClient_CreateBooking_SendsDecimalTotal(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var raw map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		assert.Equal(t, "4470.00", raw["total_amount"])
		assert.Equal(t, "bi_1", raw["booking_intent_id"])

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"booking_ref": "BK-1", "status": "PENDING", "total_amount": "4470.00", "party_size": 3}`))
	})

	booking, err := client.CreateBooking(context.Background(), CreateBookingRequest{
		TrekSlug:        "ebc",
		BookingIntentID: "bi_1",
		PartySize:       3,
		TotalAmount:     NewDecimal(447000),
		Currency:        "USD",
	})
	require.NoError(t, err)

	assert.Equal(t, "BK-1", booking.Ref)
	assert.Equal(t, bookingModel.StatusPending, booking.Status)
	assert.Equal(t, money.Cents(447000), booking.TotalAmount)
	assert.Equal(t, 3, booking.PartySize)
}

func TestClient_GetBooking_Defaults(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bookings/BK-9", r.URL.Path)
		_, _ = w.Write([]byte(`{"reference": "BK-9", "total_amount": null}`))
	})

	booking, err := client.GetBooking(context.Background(), "BK-9")
	require.NoError(t, err)

	assert.Equal(t, "BK-9", booking.Ref)
	assert.Equal(t, 1, booking.PartySize)
	assert.Equal(t, bookingModel.StatusPending, booking.Status)
	assert.Equal(t, constant.DefaultCurrency, booking.Currency)
	assert.Equal(t, money.Cents(0), booking.TotalAmount)
	assert.False(t, booking.Dates.IsSet())
}

func TestClient_ForwardsAccessToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get(constant.RequestHeaderAuthorization))
		_, _ = w.Write([]byte(`{"client_secret": "pi_1_secret_x", "payment_intent_id": "pi_1"}`))
	})

	ctx := context.WithValue(context.Background(), constant.ContextKeyAccessToken, "tok")

	intent, err := client.CreatePaymentIntent(ctx, "BK-1")
	require.NoError(t, err)
	assert.Equal(t, "pi_1_secret_x", intent.ClientSecret)
	assert.Equal(t, "pi_1", intent.ID)
}

func TestClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantCode int
		wantMsg  string
		wantAuth bool
	}{
		{
			name:     "session expired",
			status:   http.StatusUnauthorized,
			body:     `{"detail": "Session expired"}`,
			wantCode: http.StatusUnauthorized,
			wantMsg:  "Session expired",
			wantAuth: true,
		},
		{
			name:     "unauthorized without body",
			status:   http.StatusUnauthorized,
			wantCode: http.StatusUnauthorized,
			wantMsg:  "session expired, please log in again",
			wantAuth: true,
		},
		{
			name:     "field error",
			status:   http.StatusBadRequest,
			body:     `{"email": ["Enter a valid email address."]}`,
			wantCode: http.StatusBadRequest,
			wantMsg:  "email: Enter a valid email address.",
		},
		{
			name:     "not found",
			status:   http.StatusNotFound,
			body:     `{"error": "Booking not found"}`,
			wantCode: http.StatusNotFound,
			wantMsg:  "Booking not found",
		},
		{
			name:     "upstream failure",
			status:   http.StatusInternalServerError,
			body:     `<html>oops</html>`,
			wantCode: http.StatusBadGateway,
			wantMsg:  "booking service returned 500",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.GetBooking(context.Background(), "BK-1")
			require.Error(t, err)

			assert.Equal(t, tt.wantCode, failure.GetCode(err))
			assert.Equal(t, tt.wantMsg, failure.Message(err, ""))
			assert.Equal(t, tt.wantAuth, failure.IsAuth(err))
		})
	}
}

func TestClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	cfg := &config.Config{}
	cfg.External.BookingAPI.BaseURL = url

	client := New(cfg, otelMocks.NewOtel())

	_, err := client.MarkPaid(context.Background(), "BK-1")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadGateway, failure.GetCode(err))
}
