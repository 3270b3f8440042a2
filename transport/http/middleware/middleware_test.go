package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"trekking/config"
	otelMocks "trekking/infras/otel/mocks"
	authMocks "trekking/internal/domains/auth/mocks"
	"trekking/internal/domains/auth/model"
	"trekking/shared/cache"
	cacheMocks "trekking/shared/cache/mocks"
	"trekking/shared/constant"
	"trekking/shared/failure"
	"trekking/transport/http/middleware"
)

func limiterConfig(enable bool) *config.Config {
	cfg := &config.Config{}
	cfg.App.RateLimiter.Enable = enable
	cfg.App.RateLimiter.MaxRequests = 3
	cfg.App.RateLimiter.WindowSeconds = 60

	return cfg
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestRateLimit(t *testing.T) {
	tests := []struct {
		name          string
		enable        bool
		setupMock     func(c *cacheMocks.MockRedisCache)
		wantCode      int
		wantRemaining string
	}{
		{
			name:      "disabled",
			enable:    false,
			setupMock: func(*cacheMocks.MockRedisCache) {},
			wantCode:  http.StatusNoContent,
		},
		{
			name:   "first request in the window",
			enable: true,
			setupMock: func(c *cacheMocks.MockRedisCache) {
				c.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
				c.EXPECT().Save(gomock.Any(), gomock.Any(), 1, 60).Return(nil)
			},
			wantCode:      http.StatusNoContent,
			wantRemaining: "2",
		},
		{
			name:   "limit reached",
			enable: true,
			setupMock: func(c *cacheMocks.MockRedisCache) {
				c.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, value any) error {
						*(value.(*int)) = 3

						return nil
					})
			},
			wantCode:      http.StatusTooManyRequests,
			wantRemaining: "0",
		},
		{
			name:   "redis unavailable lets the request through",
			enable: true,
			setupMock: func(c *cacheMocks.MockRedisCache) {
				c.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))
			},
			wantCode: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			redisCache := cacheMocks.NewMockRedisCache(ctrl)
			tt.setupMock(redisCache)

			app := middleware.NewAppMiddleware(otelMocks.NewOtel(), limiterConfig(tt.enable), redisCache)

			req := httptest.NewRequest(http.MethodGet, "/v1/treks/everest-base-camp", nil)
			req.Header.Set(constant.RequestHeaderForwardedFor, "203.0.113.7, 10.0.0.1")

			rec := httptest.NewRecorder()
			app.RateLimit()(okHandler()).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantRemaining, rec.Header().Get(constant.RequestHeaderRateLimitRemaining))
		})
	}
}

func TestCORS(t *testing.T) {
	preflight := func(cfg *config.Config) *httptest.ResponseRecorder {
		app := middleware.NewAppMiddleware(otelMocks.NewOtel(), cfg, nil)

		req := httptest.NewRequest(http.MethodOptions, "/v1/bookings/drafts", nil)
		req.Header.Set("Origin", "https://treks.example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)

		rec := httptest.NewRecorder()
		app.CORS()(okHandler()).ServeHTTP(rec, req)

		return rec
	}

	t.Run("enabled", func(t *testing.T) {
		cfg := &config.Config{}
		cfg.App.CORS.Enable = true
		cfg.App.CORS.AllowedOrigins = []string{"https://treks.example.com"}
		cfg.App.CORS.AllowedMethods = []string{http.MethodGet, http.MethodPost}

		rec := preflight(cfg)

		assert.Equal(t, "https://treks.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("disabled", func(t *testing.T) {
		rec := preflight(&config.Config{})

		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestTracing_KeepsStatus(t *testing.T) {
	app := middleware.NewAppMiddleware(otelMocks.NewOtel(), &config.Config{}, nil)

	router := chi.NewRouter()
	router.Use(app.Tracing)
	router.Get("/boom", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

type seen struct {
	token     any
	userID    any
	sessionID any
}

func capture(got *seen) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.token = r.Context().Value(constant.ContextKeyAccessToken)
		got.userID = r.Context().Value(constant.ContextKeyUserID)
		got.sessionID = r.Context().Value(constant.ContextKeySessionID)

		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAuth(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		session   string
		setupMock func(a *authMocks.MockAuth)
		want      seen
	}{
		{
			name:      "anonymous",
			setupMock: func(*authMocks.MockAuth) {},
		},
		{
			name:   "bearer token",
			header: "Bearer token",
			setupMock: func(a *authMocks.MockAuth) {
				a.EXPECT().Authenticate(gomock.Any(), "Bearer token", "").
					Return(model.Credentials{AccessToken: "token", UserID: "u-1"}, nil)
			},
			want: seen{token: "token", userID: "u-1", sessionID: ""},
		},
		{
			name:    "expired session is dropped but the request continues",
			session: "s-1",
			setupMock: func(a *authMocks.MockAuth) {
				a.EXPECT().Authenticate(gomock.Any(), "", "s-1").
					Return(model.Credentials{}, failure.Unauthorized("session expired, please log in again"))
			},
			want: seen{sessionID: "s-1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			authService := authMocks.NewMockAuth(ctrl)
			tt.setupMock(authService)

			req := httptest.NewRequest(http.MethodGet, "/v1/payments/BK-1", nil)
			if tt.header != "" {
				req.Header.Set(constant.RequestHeaderAuthorization, tt.header)
			}

			if tt.session != "" {
				req.Header.Set(constant.RequestHeaderSessionID, tt.session)
			}

			var got seen

			rec := httptest.NewRecorder()
			middleware.NewAuthMiddleware(authService, otelMocks.NewOtel()).Auth(capture(&got)).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusNoContent, rec.Code)
			assert.Equal(t, tt.want, got)
		})
	}
}
