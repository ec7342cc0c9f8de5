package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ai-speaker-segmentation-service/internal/config"
	"ai-speaker-segmentation-service/internal/events"
	"ai-speaker-segmentation-service/internal/observability"
	"ai-speaker-segmentation-service/internal/observability/logging"
	"ai-speaker-segmentation-service/internal/server"
)

func main() {
	cfg := config.Load()

	logging.Init(logging.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		TimeFormat: time.RFC3339,
	})
	log := logging.WithComponent("main")

	publisher := events.New(&events.Config{
		Enabled:   cfg.Kafka.Enabled,
		Brokers:   cfg.Kafka.Brokers,
		Topic:     cfg.Kafka.TopicSegments,
		Principal: cfg.Service.Principal,
	})
	defer publisher.Close()

	obs := observability.NewServer(cfg.Service.MetricsAddr)
	obs.Start()

	srv := server.New(cfg, publisher)
	httpServer := &http.Server{
		Addr:              ":" + cfg.Service.HTTPPort,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Service.HTTPPort).Msg("Speaker Segmentation Service started")
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http serve failed")
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("http shutdown error")
	}
	if err := obs.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("observability shutdown error")
	}
}
