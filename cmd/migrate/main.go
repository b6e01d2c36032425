package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"

	"github.com/oxabz/time-tracker/internal/config"
	"github.com/oxabz/time-tracker/internal/db"
	"github.com/oxabz/time-tracker/internal/repository"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()

	cfg := config.Load()
	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("open database")
	}
	defer database.Close()

	if err := db.RunMigrations(database, cfg.MigrationsDir); err != nil {
		logger.Fatal().Err(err).Msg("run migrations")
	}

	repo := repository.NewActivityRepository(database)
	if err := repo.EnsureClearSeed(context.Background()); err != nil {
		logger.Fatal().Err(err).Msg("seed clear marker")
	}

	logger.Info().Msg("migrations applied successfully")
}
