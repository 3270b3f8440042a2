package store_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"trekking/config"
	"trekking/infras/otel/mocks"
	"trekking/internal/domains/auth/model"
	"trekking/internal/domains/auth/store"
	"trekking/shared/cache"
	cacheMocks "trekking/shared/cache/mocks"
	"trekking/shared/failure"
)

var now = time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)

func setup(t *testing.T) (store.Store, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	cfg := &config.Config{}
	cfg.JWT.AccessExpireMin = 15

	redis := cacheMocks.NewMockRedisCache(ctrl)
	s := store.New(redis, cfg, mocks.NewOtel())
	store.SetClock(s, func() time.Time { return now })

	return s, redis
}

func TestStore_Set(t *testing.T) {
	tests := []struct {
		name      string
		creds     model.Credentials
		setupMock func(redis *cacheMocks.MockRedisCache)
		wantCode  int
	}{
		{
			name:  "ttl follows token expiry",
			creds: model.Credentials{AccessToken: "t", UserID: "u", ExpiresAt: now.Add(30 * time.Minute)},
			setupMock: func(redis *cacheMocks.MockRedisCache) {
				redis.EXPECT().Save(gomock.Any(), "session:abc", gomock.Any(), 1800).Return(nil)
			},
		},
		{
			name:  "ttl falls back to configured minutes",
			creds: model.Credentials{AccessToken: "t", UserID: "u"},
			setupMock: func(redis *cacheMocks.MockRedisCache) {
				redis.EXPECT().Save(gomock.Any(), "session:abc", gomock.Any(), 900).Return(nil)
			},
		},
		{
			name:      "expired token is refused",
			creds:     model.Credentials{AccessToken: "t", UserID: "u", ExpiresAt: now.Add(-time.Minute)},
			setupMock: func(*cacheMocks.MockRedisCache) {},
			wantCode:  http.StatusUnauthorized,
		},
		{
			name:  "redis failure",
			creds: model.Credentials{AccessToken: "t", UserID: "u"},
			setupMock: func(redis *cacheMocks.MockRedisCache) {
				redis.EXPECT().Save(gomock.Any(), "session:abc", gomock.Any(), 900).Return(errors.New("connection refused"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, redis := setup(t)
			tt.setupMock(redis)

			err := s.Set(context.Background(), "abc", tt.creds)
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
		})
	}
}

func TestStore_Get(t *testing.T) {
	tests := []struct {
		name      string
		sessionID string
		setupMock func(redis *cacheMocks.MockRedisCache)
		wantUser  string
		wantCode  int
	}{
		{
			name:      "stored session",
			sessionID: "abc",
			setupMock: func(redis *cacheMocks.MockRedisCache) {
				redis.EXPECT().Get(gomock.Any(), "session:abc", gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, value any) error {
						*value.(*model.Credentials) = model.Credentials{AccessToken: "t", UserID: "user-1", ExpiresAt: now.Add(time.Hour)}

						return nil
					})
			},
			wantUser: "user-1",
		},
		{
			name:      "unknown session",
			sessionID: "abc",
			setupMock: func(redis *cacheMocks.MockRedisCache) {
				redis.EXPECT().Get(gomock.Any(), "session:abc", gomock.Any()).Return(fmt.Errorf("failed to get cache value: %w", cache.Nil))
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:      "expired session is cleared",
			sessionID: "abc",
			setupMock: func(redis *cacheMocks.MockRedisCache) {
				redis.EXPECT().Get(gomock.Any(), "session:abc", gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, value any) error {
						*value.(*model.Credentials) = model.Credentials{AccessToken: "t", UserID: "user-1", ExpiresAt: now.Add(-time.Second)}

						return nil
					})
				redis.EXPECT().Delete(gomock.Any(), "session:abc").Return(nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:      "missing session id",
			setupMock: func(*cacheMocks.MockRedisCache) {},
			wantCode:  http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, redis := setup(t)
			tt.setupMock(redis)

			creds, err := s.Get(context.Background(), tt.sessionID)
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantUser, creds.UserID)
		})
	}
}

func TestStore_Clear(t *testing.T) {
	s, redis := setup(t)

	redis.EXPECT().Delete(gomock.Any(), "session:abc").Return(nil)

	require.NoError(t, s.Clear(context.Background(), "abc"))
}
