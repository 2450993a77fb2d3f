package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/SimpnicServerTeam/scs-credential-server/internal/config"
	"github.com/SimpnicServerTeam/scs-credential-server/internal/handlers"
	"github.com/SimpnicServerTeam/scs-credential-server/internal/hashing"
	"github.com/SimpnicServerTeam/scs-credential-server/internal/logger"
	"github.com/SimpnicServerTeam/scs-credential-server/internal/router"
	"github.com/SimpnicServerTeam/scs-credential-server/internal/server"
	"github.com/SimpnicServerTeam/scs-credential-server/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logger.Init(cfg.LogLevel, cfg.AppEnv)

	ctx := context.Background()

	credRepo, closeStore, err := newCredentialRepository(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("store", cfg.CredentialStore).Msg("Failed to initialize credential store")
	}
	defer closeStore()

	hasher, err := hashing.NewHasher([]byte(cfg.Hashing.Pepper), cfg.Hashing.Cost)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize password hasher")
	}

	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.Session)
	authService := service.NewAuthService(credRepo, hasher, tokenService, cfg)

	app := server.New()

	router.SetupCredentialRoutes(app, handlers.NewCredentialHandler(authService))
	router.SetupSessionRoutes(app, handlers.NewSessionHandler(), tokenService)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("store", cfg.CredentialStore).
			Int("bcryptCost", cfg.Hashing.Cost).
			Msg("Server starting")
		if err := app.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := app.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
		return
	}

	log.Info().Msg("Server stopped gracefully.")
}
