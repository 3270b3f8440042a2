package jwt_test

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trekking/config"
	"trekking/infras/jwt"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, expiresAt time.Time) string {
	t.Helper()

	claims := jwt.Claims{
		UserID: "user-1",
		Email:  "lead@example.com",
		RegisteredClaims: gojwt.RegisteredClaims{
			ExpiresAt: gojwt.NewNumericDate(expiresAt),
			IssuedAt:  gojwt.NewNumericDate(expiresAt.Add(-time.Hour)),
		},
	}

	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	return token
}

func TestInspect_WithSecret(t *testing.T) {
	cfg := &config.Config{}
	cfg.JWT.AccessSecret = testSecret

	svc := jwt.New(cfg)

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{name: "valid token", token: signToken(t, testSecret, time.Now().Add(time.Hour))},
		{name: "expired token", token: signToken(t, testSecret, time.Now().Add(-time.Minute)), wantErr: jwt.ErrExpiredToken},
		{name: "wrong secret", token: signToken(t, "other", time.Now().Add(time.Hour)), wantErr: jwt.ErrInvalidToken},
		{name: "garbage", token: "not-a-token", wantErr: jwt.ErrInvalidToken},
		{name: "empty", token: "", wantErr: jwt.ErrMissingToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := svc.Inspect(tt.token)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "user-1", claims.UserID)
			assert.Equal(t, "lead@example.com", claims.Email)
		})
	}
}

func TestInspect_WithoutSecretReadsExpiryOnly(t *testing.T) {
	svc := jwt.New(&config.Config{})

	claims, err := svc.Inspect(signToken(t, "upstream-only", time.Now().Add(time.Hour)))
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)

	_, err = svc.Inspect(signToken(t, "upstream-only", time.Now().Add(-time.Hour)))
	assert.ErrorIs(t, err, jwt.ErrExpiredToken)
}

func TestExtractTokenFromHeader(t *testing.T) {
	token, err := jwt.ExtractTokenFromHeader("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	_, err = jwt.ExtractTokenFromHeader("")
	assert.ErrorIs(t, err, jwt.ErrMissingToken)

	_, err = jwt.ExtractTokenFromHeader("Basic xyz")
	assert.Error(t, err)
}
