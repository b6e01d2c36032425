package repository_test

import (
	"context"
	"errors"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/oxabz/time-tracker/internal/db"
	"github.com/oxabz/time-tracker/internal/repository"
)

func newTestRepo(t *testing.T) *repository.ActivityRepository {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close()
	})

	_, currentFile, _, _ := runtime.Caller(0)
	migrationsDir := filepath.Join(filepath.Dir(currentFile), "..", "..", "migrations")
	if err := db.RunMigrations(database, migrationsDir); err != nil {
		t.Fatalf("run migrations: %v", err)
	}

	return repository.NewActivityRepository(database)
}

func TestOpenIntervalNotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.OpenInterval(context.Background())
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestOpenIntervalPrefersLatestStart(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	// The ledger never leaves two intervals open, but the query must stay
	// defensive if storage ever does.
	if err := repo.InsertInterval(ctx, "first", 100); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := repo.InsertInterval(ctx, "second", 200); err != nil {
		t.Fatalf("insert: %v", err)
	}

	open, err := repo.OpenInterval(ctx)
	if err != nil {
		t.Fatalf("open interval: %v", err)
	}
	if open.Name != "second" || open.StartTime != 200 {
		t.Fatalf("expected latest open interval, got %+v", open)
	}
}

func TestEnsureClearSeedIsIdempotent(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.EnsureClearSeed(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := repo.EnsureClearSeed(ctx); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	latest, err := repo.LatestClearTime(ctx)
	if err != nil {
		t.Fatalf("latest clear: %v", err)
	}
	if latest != 0 {
		t.Fatalf("expected epoch marker, got %d", latest)
	}
}

func TestLatestClearPicksNewestMarker(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.EnsureClearSeed(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := repo.InsertClear(ctx, 5000); err != nil {
		t.Fatalf("insert clear: %v", err)
	}
	if err := repo.InsertClear(ctx, 3000); err != nil {
		t.Fatalf("insert clear: %v", err)
	}

	latest, err := repo.LatestClearTime(ctx)
	if err != nil {
		t.Fatalf("latest clear: %v", err)
	}
	if latest != 5000 {
		t.Fatalf("expected 5000, got %d", latest)
	}
}

func TestDeleteAllEmptiesBothTables(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.EnsureClearSeed(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := repo.InsertInterval(ctx, "work", 100); err != nil {
		t.Fatalf("insert: %v", err)
	}

	if err := repo.DeleteAll(ctx); err != nil {
		t.Fatalf("delete all: %v", err)
	}

	names, err := repo.DistinctNames(ctx)
	if err != nil {
		t.Fatalf("names: %v", err)
	}
	if len(names) != 0 {
		t.Fatalf("expected no names, got %v", names)
	}
	if _, err := repo.LatestClearTime(ctx); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after wipe, got %v", err)
	}
}
