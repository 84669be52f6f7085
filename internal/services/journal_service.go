package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/xvierd/pomo/internal/domain"
	"github.com/xvierd/pomo/internal/ports"
)

// newRunID creates a new unique run identifier.
func newRunID() string {
	return uuid.New().String()
}

// JournalService answers questions about recorded runs.
type JournalService struct {
	repo  ports.JournalRepository
	clock ports.Clock
}

// JournalOption configures a JournalService.
type JournalOption func(*JournalService)

// WithJournalClock sets the clock that Prune measures age against.
func WithJournalClock(c ports.Clock) JournalOption {
	return func(s *JournalService) { s.clock = c }
}

// NewJournalService creates a new journal service.
func NewJournalService(repo ports.JournalRepository, opts ...JournalOption) *JournalService {
	s := &JournalService{repo: repo, clock: ports.SystemClock}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListRuns returns the most recent runs.
func (s *JournalService) ListRuns(ctx context.Context, limit int) ([]*ports.RunSummary, error) {
	runs, err := s.repo.ListRuns(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

// Entries returns the entries of a run, or domain.ErrRunNotFound.
func (s *JournalService) Entries(ctx context.Context, runID string) ([]*ports.JournalEntry, error) {
	if _, err := uuid.Parse(runID); err != nil {
		return nil, fmt.Errorf("%w: %q is not a run id", domain.ErrRunNotFound, runID)
	}
	entries, err := s.repo.FindByRun(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to load run: %w", err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: %s", domain.ErrRunNotFound, runID)
	}
	return entries, nil
}

// ReplayStep pairs a journaled entry with the state Reduce produces for it now.
type ReplayStep struct {
	Entry      *ports.JournalEntry
	Recomputed domain.TimerState
	Match      bool
}

// ReplayReport is the outcome of refolding a run.
type ReplayReport struct {
	RunID      string
	Steps      []ReplayStep
	Mismatches int
}

// Replay refolds a run's actions through Reduce starting from the first
// recorded state and compares each result to what was journaled.
func (s *JournalService) Replay(ctx context.Context, runID string) (*ReplayReport, error) {
	entries, err := s.Entries(ctx, runID)
	if err != nil {
		return nil, err
	}

	report := &ReplayReport{RunID: runID, Steps: make([]ReplayStep, 0, len(entries))}
	state := entries[0].Before
	for _, e := range entries {
		state = domain.Reduce(state, journaledAction(e))
		match := state.Equal(e.After)
		if !match {
			report.Mismatches++
		}
		report.Steps = append(report.Steps, ReplayStep{Entry: e, Recomputed: state, Match: match})
	}
	return report, nil
}

// Prune deletes entries older than age.
func (s *JournalService) Prune(ctx context.Context, age time.Duration) (int64, error) {
	n, err := s.repo.DeleteBefore(ctx, s.clock.Now().Add(-age))
	if err != nil {
		return 0, fmt.Errorf("failed to prune journal: %w", err)
	}
	return n, nil
}

// unrecognized stands in for journaled actions the reducer did not know.
type unrecognized struct {
	kind domain.ActionKind
}

func (u unrecognized) Kind() domain.ActionKind { return u.kind }

func journaledAction(e *ports.JournalEntry) domain.Action {
	a, err := domain.ParseAction(e.Action)
	if err != nil {
		return unrecognized{kind: e.Kind}
	}
	return a
}
