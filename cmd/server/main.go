package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tdsc_backend/internal/api"
	"tdsc_backend/internal/app/service"
	"tdsc_backend/internal/common/security"
	"tdsc_backend/internal/domain/repository"
	"tdsc_backend/internal/logger"
	"tdsc_backend/internal/platform/config"
	"tdsc_backend/internal/platform/database"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logger.Init(cfg.Env)

	db, err := database.New(cfg.DBConnStr)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database schema")
	}
	log.Info().Msg("Database connected and schema applied")

	issuer := security.NewTokenIssuer(cfg.JWTAlgorithm, cfg.JWTSecret, cfg.TokenExpiry)

	userRepo := repository.NewPgUserRepository(db)
	voteRepo := repository.NewPgVoteRepository(db)
	commentRepo := repository.NewPgCommentRepository(db)

	authService := service.NewAuthService(userRepo, issuer)
	voteService := service.NewVoteService(voteRepo)
	commentService := service.NewCommentService(commentRepo, userRepo)

	router := api.NewRouter(cfg, issuer, authService, voteService, commentService)

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Info().Str("port", cfg.APIPort).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	<-stop

	log.Info().Msg("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server shutdown failed")
	}

	log.Info().Msg("Server stopped gracefully")
}
