package router

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "trekking/docs" // swagger docs
	"trekking/internal/handlers/auth"
	"trekking/internal/handlers/booking"
	"trekking/internal/handlers/health"
	"trekking/internal/handlers/payment"
	"trekking/internal/handlers/trek"
	"trekking/transport/http/middleware"
)

type DomainHandlers struct {
	Health  health.Handler
	Auth    auth.Handler
	Trek    trek.Handler
	Booking booking.Handler
	Payment payment.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	App            middleware.AppMiddleware
	Auth           middleware.Auth
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.Recoverer)
	router.Use(r.App.CORS())
	router.Use(r.App.Tracing)

	r.DomainHandlers.Health.Router(router)
	router.Get("/swagger/*", httpSwagger.WrapHandler)

	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(r.App.RateLimit())
		routerGroup.Use(r.Auth.Auth)

		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Trek.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Payment.Router(routerGroup)
	})
}

// Drain fails the health check ahead of shutdown.
func (r *Router) Drain() {
	r.DomainHandlers.Health.Drain()
}

func New(domainHandlers DomainHandlers, app middleware.AppMiddleware, auth middleware.Auth) Router {
	return Router{
		DomainHandlers: domainHandlers,
		App:            app,
		Auth:           auth,
	}
}
