package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/medagenda/clinic-api/internal/config"
	"github.com/medagenda/clinic-api/internal/repository/postgres"
	"github.com/medagenda/clinic-api/pkg/logger"
	"github.com/medagenda/clinic-api/pkg/messaging/redis"
	"github.com/medagenda/clinic-api/pkg/metrics"
	"github.com/medagenda/clinic-api/pkg/worker"
)

func setupHealthCheck(port int, log *logger.Logger) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health/live", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	go func() {
		if err := http.ListenAndServe(fmt.Sprintf(":%d", port), mux); err != nil {
			log.ZL.Error().Err(err).Msg("health check server failed")
			os.Exit(1)
		}
	}()
}

func main() {
	zl := zerolog.New(os.Stdout).With().Timestamp().Logger()
	log := &logger.Logger{ZL: zl}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err, "failed to load config")
	}

	env, err := config.LoadWorkerEnv()
	if err != nil {
		log.Fatal(err, "failed to load worker environment")
	}
	env.Apply(&cfg.Outbox)

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	broker, err := redis.NewRedisBroker(cfg.Redis.ToBrokerConfig(), &zl)
	if err != nil {
		log.Fatal(err, "failed to create Redis broker")
	}
	defer broker.Close()

	base := postgres.NewBaseRepository(db)
	outboxRepo := postgres.NewOutboxRepository(base)

	processor := worker.NewOutboxProcessor(
		outboxRepo,
		broker,
		worker.OutboxProcessorConfig{
			BatchSize:     cfg.Outbox.BatchSize,
			PollInterval:  time.Duration(cfg.Outbox.PollIntervalSec) * time.Second,
			RetryAttempts: cfg.Outbox.RetryAttempts,
			RetryDelay:    time.Duration(cfg.Outbox.RetryDelaySec) * time.Second,
			Retention:     time.Duration(cfg.Outbox.RetentionDays) * 24 * time.Hour,
		},
		log,
		metrics.New("outbox_processor"),
	)

	setupHealthCheck(env.HealthPort, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("shutting down...")
		cancel()
	}()

	processor.Start(ctx)
}
