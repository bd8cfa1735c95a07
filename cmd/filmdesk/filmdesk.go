package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/Agurato/filmdesk/internal/business"
	"github.com/Agurato/filmdesk/internal/config"
	"github.com/Agurato/filmdesk/internal/infrastructure"
	"github.com/Agurato/filmdesk/internal/logger"
	"github.com/Agurato/filmdesk/internal/service/server"
)

const (
	connectTimeout  = 10 * time.Second
	shutdownTimeout = 5 * time.Second
)

func main() {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
	if err := logger.Setup(cfg.LogLevel, cfg.LogFile); err != nil {
		log.Fatal().Err(err).Msg("Could not set up logger")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	db, err := infrastructure.NewMongoDB(connectCtx, cfg.MongoURI, cfg.DBName)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("Could not connect to database")
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		db.Close(closeCtx)
	}()

	metadata, err := infrastructure.NewMetadataWrapper(cfg.TMDBAPIKey)
	if err != nil {
		log.Fatal().Err(err).Msg("Could not initialize TMDB client")
	}

	gate, err := business.NewAdminGate(cfg.AdminPassword)
	if err != nil {
		log.Fatal().Err(err).Msg("Could not hash admin password")
	}
	cm := business.NewContentManager(db, metadata)

	mainHandler := server.NewMainHandler(gate, cfg.StaticDir)
	contentHandler := server.NewContentHandler(cm)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server.NewServer(cfg.CookieSecret, mainHandler, contentHandler),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Could not shut down server gracefully")
	}
}
