package handler

import (
	"net/http"
	"os"
	"sync"

	"trekking/config"
	"trekking/di"
	"trekking/shared/logger"
	trekkingHTTP "trekking/transport/http"
)

var (
	app  *trekkingHTTP.HTTP
	once sync.Once
)

// Handler serves the API from a serverless function. Drafts live in memory, so they only
// survive while the instance stays warm.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()

		logger.SetLogLevel(cfg)

		if cfg.IsProduction() {
			logger.UseJSON(os.Stdout, cfg)
		}

		app = di.InitializeService()
	})

	app.ServeHTTP(w, r)
}
