package main

import (
	"context"

	"github.com/joho/godotenv"

	"TrendDigest/internal/app"
	"TrendDigest/internal/config"
	"TrendDigest/internal/logging"
)

// The binary runs one publish cycle and always exits normally: a daily batch
// job must not crash its scheduler.
func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)

	application := app.New(cfg, logger)

	if application.Run(ctx) {
		logger.Info("publish cycle finished, dispatch attempted")
	} else {
		logger.Info("publish cycle finished, nothing dispatched")
	}
}
