package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"nba-apex-engine/internal/config"
	"nba-apex-engine/internal/logging"
	"nba-apex-engine/internal/server"
)

var version = "dev"

func main() {
	// Local convenience; a missing .env is not an error.
	_ = godotenv.Load()

	cfg := config.Load()
	logger := logging.NewLogger(logging.Config{
		Level:   os.Getenv("LOG_LEVEL"),
		Format:  os.Getenv("LOG_FORMAT"),
		Service: "nba-apex-engine",
		Version: version,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting nba-apex-engine",
		"port", cfg.Port,
		"provider", cfg.Provider,
		"trials", cfg.Trials,
	)

	server.New(cfg, logger).Run(ctx, stop)
}
