package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/cinehall/backend/internal/app"
	"github.com/cinehall/backend/internal/config"
	"github.com/cinehall/backend/internal/logging"
	"github.com/cinehall/backend/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.New(logging.Options{}).Fatalf("config: %v", err)
	}

	logger := logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	a, err := app.New(cfg, logger)
	if err != nil {
		logger.Fatalf("startup: %v", err)
	}

	if err := store.Migrate(context.Background(), a.DB); err != nil {
		logger.Fatalf("migrate: %v", err)
	}

	go func() {
		if err := a.Listen(); err != nil {
			logger.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	if err := a.Shutdown(); err != nil {
		logger.Errorf("shutdown: %v", err)
	}
}
