package service_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"trekking/infras/jwt"
	jwtMocks "trekking/infras/jwt/mocks"
	otelMocks "trekking/infras/otel/mocks"
	"trekking/internal/domains/auth/mocks"
	"trekking/internal/domains/auth/model"
	"trekking/internal/domains/auth/model/dto"
	"trekking/internal/domains/auth/service"
	"trekking/shared/failure"
)

var expiry = time.Date(2026, 1, 5, 11, 0, 0, 0, time.UTC)

func claims() *jwt.Claims {
	return &jwt.Claims{
		UserID: "user-1",
		Email:  "lead@example.com",
		RegisteredClaims: gojwt.RegisteredClaims{
			ExpiresAt: gojwt.NewNumericDate(expiry),
		},
	}
}

func setup(t *testing.T) (service.Auth, *mocks.MockStore, *jwtMocks.MockJWT) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	store := mocks.NewMockStore(ctrl)
	inspector := jwtMocks.NewMockJWT(ctrl)

	return service.New(store, inspector, otelMocks.NewOtel()), store, inspector
}

func TestAuthService_CreateSession(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(store *mocks.MockStore, inspector *jwtMocks.MockJWT)
		wantCode  int
	}{
		{
			name: "stores a valid token",
			setupMock: func(store *mocks.MockStore, inspector *jwtMocks.MockJWT) {
				inspector.EXPECT().Inspect("token").Return(claims(), nil)
				store.EXPECT().Set(gomock.Any(), gomock.Any(), model.Credentials{
					AccessToken: "token",
					UserID:      "user-1",
					Email:       "lead@example.com",
					ExpiresAt:   expiry,
				}).Return(nil)
			},
		},
		{
			name: "expired token",
			setupMock: func(_ *mocks.MockStore, inspector *jwtMocks.MockJWT) {
				inspector.EXPECT().Inspect("token").Return(nil, jwt.ErrExpiredToken)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "malformed token",
			setupMock: func(_ *mocks.MockStore, inspector *jwtMocks.MockJWT) {
				inspector.EXPECT().Inspect("token").Return(nil, jwt.ErrInvalidToken)
			},
			wantCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store, inspector := setup(t)
			tt.setupMock(store, inspector)

			res, err := svc.CreateSession(context.Background(), dto.CreateSessionRequest{AccessToken: "token"})
			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, res.SessionID)
			assert.Equal(t, "user-1", res.UserID)
			assert.Equal(t, "2026-01-05T11:00:00Z", res.ExpiresAt)
		})
	}
}

func TestAuthService_Authenticate(t *testing.T) {
	tests := []struct {
		name       string
		authHeader string
		sessionID  string
		setupMock  func(store *mocks.MockStore, inspector *jwtMocks.MockJWT)
		wantToken  string
		wantMsg    string
	}{
		{
			name:       "bearer header wins",
			authHeader: "Bearer header-token",
			sessionID:  "abc",
			setupMock: func(_ *mocks.MockStore, inspector *jwtMocks.MockJWT) {
				inspector.EXPECT().Inspect("header-token").Return(claims(), nil)
			},
			wantToken: "header-token",
		},
		{
			name:      "session store",
			sessionID: "abc",
			setupMock: func(store *mocks.MockStore, inspector *jwtMocks.MockJWT) {
				store.EXPECT().Get(gomock.Any(), "abc").Return(model.Credentials{AccessToken: "stored", UserID: "user-1"}, nil)
				inspector.EXPECT().Inspect("stored").Return(claims(), nil)
			},
			wantToken: "stored",
		},
		{
			name:      "stored token expired clears the session",
			sessionID: "abc",
			setupMock: func(store *mocks.MockStore, inspector *jwtMocks.MockJWT) {
				store.EXPECT().Get(gomock.Any(), "abc").Return(model.Credentials{AccessToken: "stored", UserID: "user-1"}, nil)
				inspector.EXPECT().Inspect("stored").Return(nil, jwt.ErrExpiredToken)
				store.EXPECT().Clear(gomock.Any(), "abc").Return(nil)
			},
			wantMsg: "session expired, please log in again",
		},
		{
			name:       "malformed header",
			authHeader: "Token abc",
			setupMock:  func(*mocks.MockStore, *jwtMocks.MockJWT) {},
			wantMsg:    "authorization header must start with 'Bearer '",
		},
		{
			name:      "nothing to go on",
			setupMock: func(*mocks.MockStore, *jwtMocks.MockJWT) {},
			wantMsg:   "login required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store, inspector := setup(t)
			tt.setupMock(store, inspector)

			creds, err := svc.Authenticate(context.Background(), tt.authHeader, tt.sessionID)
			if tt.wantMsg != "" {
				require.Error(t, err)
				assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
				assert.EqualError(t, err, tt.wantMsg)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, creds.AccessToken)
			assert.Equal(t, "user-1", creds.UserID)
		})
	}
}

func TestAuthService_DeleteSession(t *testing.T) {
	svc, store, _ := setup(t)

	store.EXPECT().Clear(gomock.Any(), "abc").Return(nil)

	require.NoError(t, svc.DeleteSession(context.Background(), "abc"))

	err := svc.DeleteSession(context.Background(), "")
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}
