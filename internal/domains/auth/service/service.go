package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/auth_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"trekking/infras/jwt"
	"trekking/infras/otel"
	"trekking/internal/domains/auth/model"
	"trekking/internal/domains/auth/model/dto"
	"trekking/internal/domains/auth/store"
	"trekking/shared/constant"
	"trekking/shared/failure"
)

// Auth never issues tokens; the booking API does. It only remembers them and checks they are still usable.
type Auth interface {
	CreateSession(ctx context.Context, req dto.CreateSessionRequest) (dto.SessionResponse, error)
	DeleteSession(ctx context.Context, sessionID string) error
	Authenticate(ctx context.Context, authHeader, sessionID string) (model.Credentials, error)
}

type serviceImpl struct {
	store store.Store
	jwt   jwt.JWT
	otel  otel.Otel
}

func New(store store.Store, jwt jwt.JWT, otel otel.Otel) Auth {
	return &serviceImpl{
		store: store,
		jwt:   jwt,
		otel:  otel,
	}
}

func (s *serviceImpl) CreateSession(ctx context.Context, req dto.CreateSessionRequest) (res dto.SessionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateSession")
	defer scope.End()
	defer scope.TraceIfError(err)

	creds, err := s.inspect(req.AccessToken)
	if err != nil {
		return res, err
	}

	sessionID := uuid.NewString()

	if err = s.store.Set(ctx, sessionID, creds); err != nil {
		return res, fmt.Errorf("failed to create session: %w", err)
	}

	log.Info().Str("user_id", creds.UserID).Msg("session created")

	res.FromModel(sessionID, creds)

	return res, nil
}

func (s *serviceImpl) DeleteSession(ctx context.Context, sessionID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteSession")
	defer scope.End()
	defer scope.TraceIfError(err)

	if sessionID == constant.Empty {
		return failure.BadRequestFromString("session id is required") // nolint:wrapcheck
	}

	return s.store.Clear(ctx, sessionID)
}

// Authenticate resolves the caller from a bearer header first and the session store second.
func (s *serviceImpl) Authenticate(ctx context.Context, authHeader, sessionID string) (creds model.Credentials, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Authenticate")
	defer scope.End()

	if authHeader != constant.Empty {
		token, err := jwt.ExtractTokenFromHeader(authHeader)
		if err != nil {
			return creds, failure.Unauthorized(err.Error()) // nolint:wrapcheck
		}

		return s.inspect(token)
	}

	if sessionID == constant.Empty {
		return creds, failure.Unauthorized("login required") // nolint:wrapcheck
	}

	creds, err = s.store.Get(ctx, sessionID)
	if err != nil {
		return creds, err
	}

	if _, err = s.inspect(creds.AccessToken); err != nil {
		_ = s.store.Clear(ctx, sessionID)

		return model.Credentials{}, err
	}

	return creds, nil
}

func (s *serviceImpl) inspect(token string) (model.Credentials, error) {
	claims, err := s.jwt.Inspect(token)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrExpiredToken):
			return model.Credentials{}, failure.Unauthorized("session expired, please log in again") // nolint:wrapcheck
		case errors.Is(err, jwt.ErrMissingToken):
			return model.Credentials{}, failure.Unauthorized("login required") // nolint:wrapcheck
		default:
			return model.Credentials{}, failure.Unauthorized("invalid access token") // nolint:wrapcheck
		}
	}

	creds := model.Credentials{
		AccessToken: token,
		UserID:      claims.UserID,
		Email:       claims.Email,
	}

	if creds.UserID == constant.Empty {
		creds.UserID = claims.Subject
	}

	if claims.ExpiresAt != nil {
		creds.ExpiresAt = claims.ExpiresAt.UTC()
	}

	return creds, nil
}
