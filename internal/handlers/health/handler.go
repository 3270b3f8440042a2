package health

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"trekking/transport/http/response"
)

const pingTimeout = 2 * time.Second

type Status struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services"`
}

type Handler struct {
	redis    *goRedis.Client
	draining *atomic.Bool
}

func New(redis *goRedis.Client) Handler {
	return Handler{
		redis:    redis,
		draining: &atomic.Bool{},
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/health", handler.Health)
}

// Drain makes the health check fail so load balancers stop routing here before shutdown.
func (handler *Handler) Drain() {
	handler.draining.Store(true)
}

// Health reports whether the service and its redis are usable.
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} response.Data[health.Status]
// @Failure 503 {object} response.Message
// @Router /health [get]
func (handler *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if handler.draining.Load() {
		response.WithPreparingShutdown(w)

		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	if err := handler.redis.Ping(ctx).Err(); err != nil {
		log.Error().Err(err).Msg("redis health check failed")

		response.WithUnhealthy(w)

		return
	}

	res := Status{
		Status:   "ok",
		Services: map[string]string{"redis": "healthy"},
	}

	response.WithJSON(w, http.StatusOK, res)
}
