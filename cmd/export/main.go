package main

import (
	"context"
	"flag"
	"os"

	"github.com/rs/zerolog"

	"github.com/oxabz/time-tracker/internal/config"
	"github.com/oxabz/time-tracker/internal/db"
	"github.com/oxabz/time-tracker/internal/repository"
	"github.com/oxabz/time-tracker/internal/service"
)

// export writes the aggregated activity times to a CSV file, same rows the
// server's /api/activities/export endpoint serves.
func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	out := flag.String("out", "", "Path of the CSV file to write")
	flag.Parse()
	if *out == "" {
		logger.Error().Msg("no output file selected, pass -out")
		os.Exit(1)
	}

	cfg := config.Load()
	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("open database")
	}
	defer database.Close()

	if err := db.RunMigrations(database, cfg.MigrationsDir); err != nil {
		logger.Fatal().Err(err).Msg("run migrations")
	}

	ctx := context.Background()
	ledger := service.NewLedgerService(repository.NewActivityRepository(database), service.RealClock{})
	if err := ledger.Init(ctx); err != nil {
		logger.Fatal().Err(err).Msg("initialize ledger")
	}

	times, apiErr := ledger.Totals(ctx)
	if apiErr != nil {
		logger.Fatal().Err(apiErr).Msg("aggregate times")
	}

	file, err := os.Create(*out)
	if err != nil {
		logger.Fatal().Err(err).Msg("create output file")
	}
	defer file.Close()

	if err := service.WriteTimesCSV(file, times); err != nil {
		logger.Fatal().Err(err).Msg("write csv")
	}

	logger.Info().Str("path", *out).Int("activities", len(times)).Msg("exported")
}
