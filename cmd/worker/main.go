package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/matiazzsouza/ES-PI2-2025-T03-G14/internal/config"
	"github.com/matiazzsouza/ES-PI2-2025-T03-G14/internal/database"
	"github.com/matiazzsouza/ES-PI2-2025-T03-G14/internal/log"
	"github.com/matiazzsouza/ES-PI2-2025-T03-G14/internal/queue"
	"github.com/matiazzsouza/ES-PI2-2025-T03-G14/internal/tasks"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := log.New(cfg.Environment, "notadez-worker", cfg.Logging.Level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := database.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis connection failed")
	}
	defer client.Close()

	processor := tasks.NewProcessor(logger, tasks.NewLogMailer(logger), cfg.Security.RecoverySecret)
	consumer := queue.NewConsumer(client, cfg.Notifications, logger, processor)

	if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error().Err(err).Msg("consumer stopped unexpectedly")
		return
	}
	logger.Info().Msg("worker exited cleanly")
}
