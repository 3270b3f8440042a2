package store

//go:generate go run go.uber.org/mock/mockgen -source=./store.go -destination=../mocks/store_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"trekking/config"
	"trekking/infras/otel"
	"trekking/internal/domains/auth/model"
	"trekking/shared"
	"trekking/shared/cache"
	"trekking/shared/constant"
	"trekking/shared/failure"
	"trekking/shared/timezone"
)

const keyPrefix = "session"

// Store keeps booking API credentials behind an opaque session id.
type Store interface {
	Get(ctx context.Context, sessionID string) (model.Credentials, error)
	Set(ctx context.Context, sessionID string, creds model.Credentials) error
	Clear(ctx context.Context, sessionID string) error
}

type redisStore struct {
	cache cache.RedisCache
	cfg   *config.Config
	otel  otel.Otel
	now   func() time.Time
}

func New(cache cache.RedisCache, cfg *config.Config, otel otel.Otel) Store {
	return &redisStore{
		cache: cache,
		cfg:   cfg,
		otel:  otel,
		now:   timezone.Now,
	}
}

func (s *redisStore) Get(ctx context.Context, sessionID string) (creds model.Credentials, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SessionGet")
	defer scope.End()

	if sessionID == constant.Empty {
		return creds, failure.Unauthorized("login required") // nolint:wrapcheck
	}

	err = s.cache.Get(ctx, key(sessionID), &creds)
	if err != nil {
		if cache.IsMiss(err) {
			return creds, failure.Unauthorized("session expired, please log in again") // nolint:wrapcheck
		}

		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to read session")

		return creds, fmt.Errorf("failed to read session: %w", err)
	}

	if creds.Expired(s.now()) {
		_ = s.cache.Delete(ctx, key(sessionID))

		return model.Credentials{}, failure.Unauthorized("session expired, please log in again") // nolint:wrapcheck
	}

	return creds, nil
}

// Set stores the credentials until the token expires, or for JWT_ACCESS_EXPIRE_MIN when it carries no expiry.
func (s *redisStore) Set(ctx context.Context, sessionID string, creds model.Credentials) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SessionSet")
	defer scope.End()
	defer scope.TraceIfError(err)

	ttl := s.ttl(creds)
	if ttl <= 0 {
		return failure.Unauthorized("session expired, please log in again") // nolint:wrapcheck
	}

	if err = s.cache.Save(ctx, key(sessionID), creds, ttl); err != nil {
		log.Error().Err(err).Msg("failed to store session")

		return fmt.Errorf("failed to store session: %w", err)
	}

	return nil
}

func (s *redisStore) Clear(ctx context.Context, sessionID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SessionClear")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.cache.Delete(ctx, key(sessionID)); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	return nil
}

func (s *redisStore) ttl(creds model.Credentials) int {
	if !creds.ExpiresAt.IsZero() {
		return int(creds.ExpiresAt.Sub(s.now()).Seconds())
	}

	minutes := s.cfg.JWT.AccessExpireMin
	if minutes <= 0 {
		minutes = constant.DefaultSessionMin
	}

	return minutes * constant.MinutesToSecs
}

func key(sessionID string) string {
	return shared.BuildCacheKey(keyPrefix, sessionID)
}
