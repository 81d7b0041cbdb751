package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/linkupge/linkup-backend/internal/config"
	"github.com/linkupge/linkup-backend/internal/infrastructure/container"
	"github.com/linkupge/linkup-backend/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Init("development")
		logger.Fatal("failed to load config", "error", err)
	}

	logger.Init(cfg.Server.Env)

	c, err := container.NewContainer(cfg)
	if err != nil {
		logger.Fatal("failed to initialize container", "error", err)
	}
	defer func() {
		if err := c.Close(); err != nil {
			logger.Error("failed to close container", "error", err)
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		errCh <- c.Server.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Fatal("server error", "error", err)
		}
	case sig := <-quit:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := c.Server.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}

	logger.Info("server stopped")
}
