package health_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	goRedis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"trekking/internal/handlers/health"
)

func unreachableRedis(t *testing.T) *goRedis.Client {
	t.Helper()

	client := goRedis.NewClient(&goRedis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })

	return client
}

func TestHandler_Health(t *testing.T) {
	t.Run("redis down", func(t *testing.T) {
		handler := health.New(unreachableRedis(t))

		router := chi.NewRouter()
		handler.Router(router)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), "SERVER UNHEALTHY")
	})

	t.Run("draining", func(t *testing.T) {
		handler := health.New(unreachableRedis(t))
		handler.Drain()

		router := chi.NewRouter()
		handler.Router(router)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Contains(t, rec.Body.String(), "SERVER PREPARING TO SHUT DOWN")
	})
}
