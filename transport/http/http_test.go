package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"trekking/config"
	otelMocks "trekking/infras/otel/mocks"
	authMocks "trekking/internal/domains/auth/mocks"
	bookingMocks "trekking/internal/domains/booking/mocks"
	paymentMocks "trekking/internal/domains/payment/mocks"
	trekMocks "trekking/internal/domains/trek/mocks"
	"trekking/internal/domains/trek/model"
	"trekking/internal/handlers/auth"
	"trekking/internal/handlers/booking"
	"trekking/internal/handlers/health"
	"trekking/internal/handlers/payment"
	"trekking/internal/handlers/trek"
	transport "trekking/transport/http"
	"trekking/transport/http/middleware"
	"trekking/transport/http/router"
)

func newServer(t *testing.T, trekService *trekMocks.MockTrek) *transport.HTTP {
	t.Helper()

	ctrl := gomock.NewController(t)
	ot := otelMocks.NewOtel()
	cfg := &config.Config{}

	redis := goRedis.NewClient(&goRedis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond, MaxRetries: -1})
	t.Cleanup(func() { _ = redis.Close() })

	authService := authMocks.NewMockAuth(ctrl)

	handlers := router.DomainHandlers{
		Health:  health.New(redis),
		Auth:    auth.New(authService, ot),
		Trek:    trek.New(trekService, ot),
		Booking: booking.New(bookingMocks.NewMockBooking(ctrl), ot),
		Payment: payment.New(paymentMocks.NewMockPayment(ctrl), ot),
	}

	r := router.New(handlers, middleware.NewAppMiddleware(ot, cfg, nil), middleware.NewAuthMiddleware(authService, ot))

	return transport.New(cfg, r)
}

func TestHTTP_ServeHTTP(t *testing.T) {
	ctrl := gomock.NewController(t)
	trekService := trekMocks.NewMockTrek(ctrl)

	trekService.EXPECT().Get(gomock.Any(), "annapurna-circuit").
		Return(model.Trek{Slug: "annapurna-circuit", Name: "Annapurna Circuit", Duration: "12 days", Currency: "USD"}, nil)

	server := newServer(t, trekService)

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/treks/annapurna-circuit", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"Annapurna Circuit"`)
	assert.Equal(t, transport.ServerStateReady, server.State())

	rec = httptest.NewRecorder()
	server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/unknown", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHTTP_DrainFailsHealth(t *testing.T) {
	server := newServer(t, trekMocks.NewMockTrek(gomock.NewController(t)))

	server.Router.Drain()

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "SHUT DOWN")
}

func TestHTTP_SwaggerDoc(t *testing.T) {
	server := newServer(t, trekMocks.NewMockTrek(gomock.NewController(t)))

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/v1/bookings/drafts")
}
