// Package ports defines the interfaces (driven and driving ports) between
// the timer core and its infrastructure, following hexagonal architecture.
package ports

import (
	"context"
	"time"

	"github.com/xvierd/pomo/internal/domain"
)

// JournalEntry is one dispatched action and the state it produced.
type JournalEntry struct {
	ID         int64
	RunID      string
	Seq        int
	Kind       domain.ActionKind
	Action     string // domain.FormatAction text form
	Before     domain.TimerState
	After      domain.TimerState
	RecordedAt time.Time
}

// RunSummary describes one program run in the journal.
type RunSummary struct {
	RunID       string
	Entries     int
	Transitions int
	FirstAt     time.Time
	LastAt      time.Time
}

// JournalRepository defines the interface for transition journal persistence.
// This is a driven port (implemented by adapters).
type JournalRepository interface {
	// Append records an entry. Seq is assigned by the caller.
	Append(ctx context.Context, entry *JournalEntry) error

	// FindByRun returns a run's entries ordered by Seq.
	FindByRun(ctx context.Context, runID string) ([]*JournalEntry, error)

	// ListRuns returns runs, most recent first.
	ListRuns(ctx context.Context, limit int) ([]*RunSummary, error)

	// DeleteBefore removes entries recorded before the cutoff and returns how many.
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// Storage is the combined repository interface.
// This is a driven port (implemented by adapters).
type Storage interface {
	// Journal provides access to the transition journal.
	Journal() JournalRepository

	// Close closes the storage connection.
	Close() error

	// Migrate runs database migrations.
	Migrate() error
}
