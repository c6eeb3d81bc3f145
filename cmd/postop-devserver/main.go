// Command postop-devserver serves the dashboard's backend API from a local
// SQLite store with a seeded demo ward.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jwulff/postop/internal/config"
	"github.com/jwulff/postop/internal/db"
	"github.com/jwulff/postop/internal/logging"
	"github.com/jwulff/postop/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log := logging.New(os.Stderr, "info", "postop-devserver", true)
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	log := logging.New(os.Stdout, cfg.Log.Level, "postop-devserver", true)

	store, err := db.Open(cfg.DevServer.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DevServer.DBPath).Msg("failed to open store")
	}
	defer store.Close()

	if cfg.DevServer.Seed {
		seeded, err := store.Seed(time.Now())
		if err != nil {
			log.Fatal().Err(err).Msg("failed to seed demo ward")
		}
		if seeded {
			log.Info().Msg("seeded demo ward")
		}
	}

	visit := time.Duration(cfg.DevServer.VisitMinutes) * time.Minute
	srv := &http.Server{
		Addr:         cfg.DevServer.Addr,
		Handler:      server.New(store, log, visit).Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("db", cfg.DevServer.DBPath).Msg("dev server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
