package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/oxabz/time-tracker/internal/config"
	"github.com/oxabz/time-tracker/internal/db"
	"github.com/oxabz/time-tracker/internal/handler"
	"github.com/oxabz/time-tracker/internal/repository"
	"github.com/oxabz/time-tracker/internal/router"
	"github.com/oxabz/time-tracker/internal/service"
)

func main() {
	cfg := config.Load()

	logger := setupLogger(cfg)
	log.Logger = logger

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("open database")
	}
	defer database.Close()

	if err := db.RunMigrations(database, cfg.MigrationsDir); err != nil {
		logger.Fatal().Err(err).Msg("run migrations")
	}

	activityRepo := repository.NewActivityRepository(database)
	ledger := service.NewLedgerService(activityRepo, service.RealClock{})
	if err := ledger.Init(context.Background()); err != nil {
		logger.Fatal().Err(err).Msg("initialize ledger")
	}

	authService := service.NewAuthService(cfg.AuthPasswordHash, cfg.JWTSecret, cfg.TokenTTL)
	if !authService.Enabled() {
		logger.Warn().Msg("no owner password configured, API is open")
	}

	authHandler := handler.NewAuthHandler(authService)
	activityHandler := handler.NewActivityHandler(ledger)

	engine := router.New(authService, authHandler, activityHandler, logger, cfg.CORSOrigins)
	logger.Info().Str("port", cfg.Port).Str("db", cfg.DBPath).Msg("tracker listening")
	if err := engine.Run(":" + cfg.Port); err != nil {
		logger.Fatal().Err(err).Msg("run server")
	}
}

func setupLogger(cfg config.Config) zerolog.Logger {
	level := zerolog.InfoLevel
	switch cfg.LogLevel {
	case "debug":
		level = zerolog.DebugLevel
	case "info":
		level = zerolog.InfoLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.LogFormat == "text" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}
