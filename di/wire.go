//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"trekking/config"
	"trekking/infras/bookingapi"
	"trekking/infras/jwt"
	"trekking/infras/otel"
	"trekking/infras/redis"
	"trekking/infras/stripe"
	"trekking/shared/cache"
	"trekking/transport/http"
	"trekking/transport/http/middleware"
	"trekking/transport/http/router"

	authService "trekking/internal/domains/auth/service"
	authStore "trekking/internal/domains/auth/store"
	authHandler "trekking/internal/handlers/auth"

	bookingRepository "trekking/internal/domains/booking/repository"
	bookingService "trekking/internal/domains/booking/service"
	bookingHandler "trekking/internal/handlers/booking"

	paymentService "trekking/internal/domains/payment/service"
	paymentHandler "trekking/internal/handlers/payment"

	trekService "trekking/internal/domains/trek/service"
	trekHandler "trekking/internal/handlers/trek"

	healthHandler "trekking/internal/handlers/health"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	otel.New,
	redis.New,
	jwt.New,
	bookingapi.New,
	stripe.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var authDomain = wire.NewSet(
	authStore.New,
	authService.New,
)

var trekDomain = wire.NewSet(
	trekService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var paymentDomain = wire.NewSet(
	paymentService.New,
)

var domains = wire.NewSet(
	authDomain,
	trekDomain,
	bookingDomain,
	paymentDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	healthHandler.New,
	authHandler.New,
	trekHandler.New,
	bookingHandler.New,
	paymentHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
