package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/trek_mock.go -package=mocks

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"trekking/config"
	"trekking/infras/bookingapi"
	"trekking/infras/otel"
	bookingModel "trekking/internal/domains/booking/model"
	"trekking/internal/domains/booking/pricing"
	"trekking/internal/domains/trek/model"
	"trekking/shared"
	"trekking/shared/cache"
	"trekking/shared/constant"
	"trekking/shared/failure"
)

const (
	cacheGetTrek = "trek:get"
)

type Trek interface {
	Get(ctx context.Context, slug string) (model.Trek, error)
	Quote(ctx context.Context, slug string, partySize int) (bookingModel.PriceQuote, model.Trek, error)
	Invalidate(ctx context.Context, slug string) error
}

type serviceImpl struct {
	client bookingapi.Client
	cfg    *config.Config
	cache  cache.RedisCache
	otel   otel.Otel
}

func New(client bookingapi.Client, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Trek {
	return &serviceImpl{
		client: client,
		cfg:    cfg,
		cache:  cache,
		otel:   otel,
	}
}

func (s *serviceImpl) Get(ctx context.Context, slug string) (res model.Trek, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetTrek")
	defer scope.End()
	defer scope.TraceIfError(err)

	slug = strings.TrimSpace(slug)
	if slug == constant.Empty {
		return res, failure.BadRequestFromString("trek slug is required") // nolint:wrapcheck
	}

	cacheKey := shared.BuildCacheKey(cacheGetTrek, slug)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for trek")

		return res, nil
	}

	if !cache.IsMiss(err) {
		log.Warn().Err(err).Str("cacheKey", cacheKey).Msg("trek cache unavailable, reading from booking service")
	}

	res, err = s.client.GetTrek(ctx, slug)
	if err != nil {
		log.Error().Err(err).Str("trek", slug).Msg("failed to get trek")

		return res, fmt.Errorf("failed to get trek: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save trek to cache")
		}
	}()

	return res, nil
}

// Quote prices a party for the trek. An unavailable quote is returned as is; callers decide whether it blocks.
func (s *serviceImpl) Quote(ctx context.Context, slug string, partySize int) (res bookingModel.PriceQuote, trek model.Trek, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".QuoteTrek")
	defer scope.End()
	defer scope.TraceIfError(err)

	trek, err = s.Get(ctx, slug)
	if err != nil {
		return res, trek, err
	}

	res = pricing.Quote(trek.BasePrice, partySize)

	scope.SetAttribute("party_size", res.PartySize)
	scope.SetAttribute("available", res.Available())

	return res, trek, nil
}

// Invalidate drops the cached trek, e.g. after a booking changed its seat counts.
func (s *serviceImpl) Invalidate(ctx context.Context, slug string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".InvalidateTrek")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.cache.Delete(ctx, shared.BuildCacheKey(cacheGetTrek, slug)); err != nil {
		return fmt.Errorf("failed to invalidate trek cache: %w", err)
	}

	return nil
}
