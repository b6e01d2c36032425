package service

import (
	"context"
	"errors"
	"sort"
	"strings"

	apperrors "github.com/oxabz/time-tracker/internal/errors"
	"github.com/oxabz/time-tracker/internal/model"
	"github.com/oxabz/time-tracker/internal/repository"
)

const secondsPerDay = 86400

// LedgerService is the activity ledger: it owns the durable record of
// intervals and clear markers and enforces the single-open-interval
// invariant on every mutation. It holds no lock of its own; the embedding
// layer serializes mutating calls.
type LedgerService struct {
	repo  *repository.ActivityRepository
	clock Clock
}

// CurrentView is the currently running activity.
type CurrentView struct {
	Name      string `json:"name"`
	StartTime int64  `json:"startTime"`
}

// TimeView is one row of the per-activity time aggregation.
type TimeView struct {
	Name         string `json:"name"`
	TotalSeconds int64  `json:"totalSeconds"`
}

func NewLedgerService(repo *repository.ActivityRepository, clock Clock) *LedgerService {
	if clock == nil {
		clock = RealClock{}
	}
	return &LedgerService{repo: repo, clock: clock}
}

// Init makes sure the epoch clear marker exists. Idempotent; called on every
// process start and again after a hard clear.
func (s *LedgerService) Init(ctx context.Context) error {
	return s.repo.EnsureClearSeed(ctx)
}

// Start begins a new interval for name at now+offset, closing any open
// interval at the same shifted instant. The requested start is clamped so it
// never predates the interval it closes, which keeps the closed interval's
// end aligned with the new interval's start.
func (s *LedgerService) Start(ctx context.Context, name string, offset int64) *apperrors.APIError {
	name = strings.TrimSpace(name)
	if name == "" {
		return apperrors.BadRequest("invalid_name", "activity name is required")
	}

	now := s.clock.Now().Unix()
	requestedStart := now + offset

	open, err := s.repo.OpenInterval(ctx)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return apperrors.Internal("failed to read current activity")
	}
	if err == nil && requestedStart < open.StartTime {
		requestedStart = open.StartTime
	}

	if err := s.closeOpenInterval(ctx, now+offset); err != nil {
		return apperrors.Internal("failed to stop current activity")
	}

	if err := s.repo.InsertInterval(ctx, name, requestedStart); err != nil {
		return apperrors.Internal("failed to start activity")
	}
	return nil
}

// Stop closes the open interval at now+offset. A stop with nothing running
// is a no-op, not an error.
func (s *LedgerService) Stop(ctx context.Context, offset int64) *apperrors.APIError {
	now := s.clock.Now().Unix()
	if err := s.closeOpenInterval(ctx, now+offset); err != nil {
		return apperrors.Internal("failed to stop activity")
	}
	return nil
}

// closeOpenInterval closes any open interval at requestedEnd, clamped so an
// interval's end never precedes its start. Shared by Start and Stop so both
// entry points apply the same offset semantics. No-op when nothing is open.
func (s *LedgerService) closeOpenInterval(ctx context.Context, requestedEnd int64) error {
	open, err := s.repo.OpenInterval(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if requestedEnd < open.StartTime {
		requestedEnd = open.StartTime
	}
	return s.repo.CloseOpenIntervals(ctx, requestedEnd)
}

// Current returns the running activity, or nil when none is running.
func (s *LedgerService) Current(ctx context.Context) (*CurrentView, *apperrors.APIError) {
	open, err := s.repo.OpenInterval(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.Internal("failed to read current activity")
	}
	return &CurrentView{Name: open.Name, StartTime: open.StartTime}, nil
}

// ListNames returns every activity name ever recorded, cleared history
// included, sorted for stable output.
func (s *LedgerService) ListNames(ctx context.Context) ([]string, *apperrors.APIError) {
	names, err := s.repo.DistinctNames(ctx)
	if err != nil {
		return nil, apperrors.Internal("failed to list activities")
	}
	sort.Strings(names)
	return names, nil
}

// Totals sums the duration of every interval started at or after the latest
// clear marker, per activity name. An open interval contributes now-start.
// A closed interval whose end somehow precedes its start (clock skew between
// calls) contributes zero rather than a negative amount. When no clear
// marker exists at all, every interval predates the missing bound and the
// result is empty.
func (s *LedgerService) Totals(ctx context.Context) ([]TimeView, *apperrors.APIError) {
	now := s.clock.Now().Unix()

	since, err := s.repo.LatestClearTime(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return []TimeView{}, nil
	}
	if err != nil {
		return nil, apperrors.Internal("failed to read clear marker")
	}

	intervals, err := s.repo.IntervalsSince(ctx, since)
	if err != nil {
		return nil, apperrors.Internal("failed to read activities")
	}

	totals := make(map[string]int64)
	for _, interval := range intervals {
		end := now
		if interval.EndTime != nil {
			end = *interval.EndTime
		}
		duration := end - interval.StartTime
		if duration < 0 {
			duration = 0
		}
		totals[interval.Name] += duration
	}

	views := make([]TimeView, 0, len(totals))
	for name, total := range totals {
		views = append(views, TimeView{Name: name, TotalSeconds: total})
	}
	sort.Slice(views, func(i, j int) bool { return views[i].Name < views[j].Name })
	return views, nil
}

// Clear stops the running activity, then records a clear marker at the
// current time. History stays in place; only aggregation moves its lower
// bound.
func (s *LedgerService) Clear(ctx context.Context) *apperrors.APIError {
	if apiErr := s.Stop(ctx, 0); apiErr != nil {
		return apiErr
	}
	if err := s.repo.InsertClear(ctx, s.clock.Now().Unix()); err != nil {
		return apperrors.Internal("failed to record clear")
	}
	return nil
}

// HardClear wipes all intervals and clear markers, then re-seeds the epoch
// marker so the ledger is immediately usable again.
func (s *LedgerService) HardClear(ctx context.Context) *apperrors.APIError {
	if err := s.repo.DeleteAll(ctx); err != nil {
		return apperrors.Internal("failed to clear database")
	}
	if err := s.repo.EnsureClearSeed(ctx); err != nil {
		return apperrors.Internal("failed to re-initialize database")
	}
	return nil
}

// Today returns all intervals started since the beginning of the current
// epoch day (now - now mod 86400, a UTC day boundary), in start order.
// Clear markers are ignored here; the view is the day's literal history.
func (s *LedgerService) Today(ctx context.Context) ([]model.Interval, *apperrors.APIError) {
	now := s.clock.Now().Unix()
	today := now - now%secondsPerDay

	intervals, err := s.repo.IntervalsSince(ctx, today)
	if err != nil {
		return nil, apperrors.Internal("failed to read activities")
	}
	return intervals, nil
}
