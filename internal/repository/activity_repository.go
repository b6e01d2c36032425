package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/oxabz/time-tracker/internal/model"
)

// ActivityRepository persists activity intervals and clear markers. It is the
// only component that touches the two tables; callers own transaction-free
// single-statement semantics and serialize mutations externally.
type ActivityRepository struct {
	db *sql.DB
}

func NewActivityRepository(db *sql.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// EnsureClearSeed inserts the epoch clear marker (id 1, time 0) if it is not
// already present. Safe to call on every process start.
func (r *ActivityRepository) EnsureClearSeed(ctx context.Context) error {
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO clears (id, time) VALUES (1, 0) ON CONFLICT DO NOTHING`,
	)
	if err != nil {
		return fmt.Errorf("seed clear marker: %w", err)
	}
	return nil
}

// InsertInterval creates a new open interval. The id is assigned by sqlite.
func (r *ActivityRepository) InsertInterval(ctx context.Context, name string, startTime int64) error {
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO activities (name, start_time) VALUES (?, ?)`,
		name,
		startTime,
	)
	if err != nil {
		return fmt.Errorf("insert interval: %w", err)
	}
	return nil
}

// CloseOpenIntervals sets end_time on every open interval. There should be at
// most one, but the statement closes any stragglers the same way.
func (r *ActivityRepository) CloseOpenIntervals(ctx context.Context, endTime int64) error {
	_, err := r.db.ExecContext(
		ctx,
		`UPDATE activities SET end_time = ? WHERE end_time IS NULL`,
		endTime,
	)
	if err != nil {
		return fmt.Errorf("close open intervals: %w", err)
	}
	return nil
}

// OpenInterval returns the currently open interval, or ErrNotFound if none is
// open. If more than one row is somehow open, the one with the latest start
// wins.
func (r *ActivityRepository) OpenInterval(ctx context.Context) (*model.Interval, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT id, name, start_time, end_time
		 FROM activities
		 WHERE end_time IS NULL
		 ORDER BY start_time DESC
		 LIMIT 1`,
	)
	return scanInterval(row)
}

// DistinctNames returns every activity name ever recorded, cleared or not.
func (r *ActivityRepository) DistinctNames(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT DISTINCT name FROM activities`)
	if err != nil {
		return nil, fmt.Errorf("list names: %w", err)
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate names: %w", err)
	}
	return names, nil
}

// IntervalsSince returns all intervals whose start_time is at or after since,
// ordered by start time.
func (r *ActivityRepository) IntervalsSince(ctx context.Context, since int64) ([]model.Interval, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT id, name, start_time, end_time
		 FROM activities
		 WHERE start_time >= ?
		 ORDER BY start_time`,
		since,
	)
	if err != nil {
		return nil, fmt.Errorf("list intervals: %w", err)
	}
	defer rows.Close()

	intervals := make([]model.Interval, 0)
	for rows.Next() {
		interval, scanErr := scanInterval(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		intervals = append(intervals, *interval)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate intervals: %w", err)
	}
	return intervals, nil
}

// LatestClearTime returns the time of the most recent clear marker, or
// ErrNotFound when the clears table is empty (only possible after a hard
// clear, before re-initialization).
func (r *ActivityRepository) LatestClearTime(ctx context.Context) (int64, error) {
	var t int64
	err := r.db.QueryRowContext(
		ctx,
		`SELECT time FROM clears ORDER BY time DESC LIMIT 1`,
	).Scan(&t)
	if err == sql.ErrNoRows {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("latest clear: %w", err)
	}
	return t, nil
}

// InsertClear records a clear marker at the given time.
func (r *ActivityRepository) InsertClear(ctx context.Context, t int64) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO clears (time) VALUES (?)`, t)
	if err != nil {
		return fmt.Errorf("insert clear: %w", err)
	}
	return nil
}

// DeleteAll wipes both tables. Irreversible; callers must re-seed the epoch
// clear marker before further aggregation.
func (r *ActivityRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM activities`); err != nil {
		return fmt.Errorf("delete activities: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, `DELETE FROM clears`); err != nil {
		return fmt.Errorf("delete clears: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanInterval(s scanner) (*model.Interval, error) {
	interval := model.Interval{}
	var endTime sql.NullInt64
	err := s.Scan(&interval.ID, &interval.Name, &interval.StartTime, &endTime)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan interval: %w", err)
	}
	if endTime.Valid {
		value := endTime.Int64
		interval.EndTime = &value
	}
	return &interval, nil
}
