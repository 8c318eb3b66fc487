package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/JoaoVitorMVBR/site-claudia-andrade/internal/config"
	"github.com/JoaoVitorMVBR/site-claudia-andrade/internal/infra"
	"github.com/JoaoVitorMVBR/site-claudia-andrade/internal/repository"
	"github.com/JoaoVitorMVBR/site-claudia-andrade/internal/router"
	"github.com/JoaoVitorMVBR/site-claudia-andrade/internal/storage"
	"github.com/JoaoVitorMVBR/site-claudia-andrade/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client, db, err := infra.NewMongo(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	store, err := storage.FromConfig(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to configure object storage")
	}

	// Reap orphaned placeholder records left behind by interrupted creates.
	worker.StartSweeper(ctx, worker.SweeperConfig{
		Repo:     repository.NewProductRepository(client, db),
		Store:    store,
		Interval: time.Duration(cfg.SweepIntervalMinutes) * time.Minute,
		MaxAge:   time.Duration(cfg.SweepMaxAgeMinutes) * time.Minute,
	})

	r := router.New(cfg, client, db, rdb, store)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("catalog API listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
