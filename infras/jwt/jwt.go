package jwt

//go:generate go run go.uber.org/mock/mockgen -source=./jwt.go -destination=./mocks/jwt_mock.go -package=mocks

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"trekking/config"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("session expired")
	ErrMissingToken = errors.New("login required")
)

const bearerPrefix = "Bearer "

// Claims is the subset of the booking API's access token claims this service reads.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// JWT inspects access tokens issued by the booking API.
type JWT interface {
	Inspect(tokenString string) (*Claims, error)
}

type Service struct {
	config *config.Config
	now    func() time.Time
}

// New creates a token inspector. When JWT_ACCESS_SECRET is set signatures are verified,
// otherwise only the expiry is read and the booking API stays the authority.
func New(cfg *config.Config) JWT {
	return &Service{
		config: cfg,
		now:    time.Now,
	}
}

// Inspect parses the token and rejects it when it is malformed or expired.
func (s *Service) Inspect(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	claims := &Claims{}
	secret := s.config.JWT.AccessSecret

	if secret == "" {
		parser := jwt.NewParser()
		if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
			return nil, ErrInvalidToken
		}

		if claims.ExpiresAt != nil && !claims.ExpiresAt.After(s.now()) {
			return nil, ErrExpiredToken
		}

		return claims, nil
	}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return []byte(secret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}

		return nil, ErrInvalidToken
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// ExtractTokenFromHeader extracts the bearer token from an Authorization header.
func ExtractTokenFromHeader(authHeader string) (string, error) {
	if authHeader == "" {
		return "", ErrMissingToken
	}

	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return "", errors.New("authorization header must start with 'Bearer '")
	}

	return strings.TrimSpace(authHeader[len(bearerPrefix):]), nil
}
