package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"newsroom-backend/internal/infrastructure/queue"
	"newsroom-backend/pkg/container"
	"newsroom-backend/pkg/logger"
)

func main() {
	logger.Init(os.Getenv("APP_ENV"))

	c, err := container.NewContainer()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize container")
	}
	defer c.Cleanup()

	cfg := c.Config

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Redis.Host,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		asynq.Config{
			Concurrency: 10,
			// high xử lý trước, low là cleanup/purge không gấp
			Queues: map[string]int{
				queue.QueueHigh:    6,
				queue.QueueDefault: 3,
				queue.QueueLow:     1,
			},
		},
	)

	handlers := newTaskHandlers(c.Storage, c.CommentRepo)

	mux := asynq.NewServeMux()
	mux.HandleFunc(queue.TypeMediaPurge, handlers.HandleMediaPurge)
	mux.HandleFunc(queue.TypeSpamCleanup, handlers.HandleSpamCleanup)

	scheduler := queue.NewScheduler(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB, cfg.Worker)
	if err := scheduler.RegisterJobs(); err != nil {
		log.Fatal().Err(err).Msg("failed to register scheduled jobs")
	}

	go func() {
		log.Info().Msg("⏰ Scheduler starting")
		if err := scheduler.Start(); err != nil {
			log.Fatal().Err(err).Msg("scheduler failed")
		}
	}()

	go func() {
		log.Info().Msg("👷 Worker starting")
		if err := srv.Run(mux); err != nil {
			log.Fatal().Err(err).Msg("worker failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("🛑 Shutting down worker...")
	scheduler.Shutdown()
	srv.Shutdown()
	log.Info().Msg("👋 Worker stopped")
}
