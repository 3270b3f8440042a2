package main

import (
	"os"

	"trekking/config"
	"trekking/di"
	"trekking/shared/logger"
)

// @title Trek Booking API
// @version 1.0
// @description Booking flow for guided treks: pricing, traveller details, booking submission and card payment.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	if cfg.IsProduction() {
		logger.UseJSON(os.Stdout, cfg)
	}

	http := di.InitializeService()
	http.Serve()
}
