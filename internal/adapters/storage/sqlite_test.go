package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/xvierd/pomo/internal/domain"
	"github.com/xvierd/pomo/internal/ports"
)

func TestNewMemory(t *testing.T) {
	storage, err := NewMemory()
	if err != nil {
		t.Fatalf("NewMemory() error = %v", err)
	}
	defer func() { _ = storage.Close() }()

	if storage == nil {
		t.Error("NewMemory() returned nil storage")
	}

	// Migrations are idempotent.
	if err := storage.Migrate(); err != nil {
		t.Errorf("Migrate() second run error = %v", err)
	}
}

func entry(runID string, seq int, a domain.Action, before domain.TimerState, at time.Time) *ports.JournalEntry {
	return &ports.JournalEntry{
		RunID:      runID,
		Seq:        seq,
		Kind:       a.Kind(),
		Action:     domain.FormatAction(a),
		Before:     before,
		After:      domain.Reduce(before, a),
		RecordedAt: at,
	}
}

func TestJournalRepository_AppendAndFind(t *testing.T) {
	storage, err := NewMemory()
	if err != nil {
		t.Fatalf("NewMemory() error = %v", err)
	}
	defer func() { _ = storage.Close() }()

	ctx := context.Background()
	repo := storage.Journal()
	base := time.UnixMilli(1_700_000_000_000)

	start := entry("run-a", 1, domain.Start{NowMs: 0}, domain.InitialState(), base)
	tick := entry("run-a", 2, domain.Tick{NowMs: 1_500_000}, start.After, base.Add(time.Second))

	t.Run("append assigns ids", func(t *testing.T) {
		for _, e := range []*ports.JournalEntry{start, tick} {
			if err := repo.Append(ctx, e); err != nil {
				t.Fatalf("Append() error = %v", err)
			}
			if e.ID == 0 {
				t.Error("Append() did not set ID")
			}
		}
	})

	t.Run("find by run decodes states", func(t *testing.T) {
		got, err := repo.FindByRun(ctx, "run-a")
		if err != nil {
			t.Fatalf("FindByRun() error = %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("FindByRun() returned %d entries, want 2", len(got))
		}
		if got[0].Kind != domain.KindStart || got[1].Kind != domain.KindTick {
			t.Errorf("kinds = %s, %s", got[0].Kind, got[1].Kind)
		}
		if !got[1].After.Equal(tick.After) {
			t.Errorf("After = %s, want %s", domain.Serialize(got[1].After), domain.Serialize(tick.After))
		}
		if got[1].After.Mode != domain.ModeBreak {
			t.Errorf("tick at deadline should have switched to break, got %s", got[1].After.Mode)
		}
		if !got[0].RecordedAt.Equal(base) {
			t.Errorf("RecordedAt = %v, want %v", got[0].RecordedAt, base)
		}
	})

	t.Run("duplicate seq is rejected", func(t *testing.T) {
		dup := entry("run-a", 1, domain.Reset{}, domain.InitialState(), base)
		err := repo.Append(ctx, dup)
		if !errors.Is(err, ErrDuplicateEntry) {
			t.Errorf("Append() duplicate error = %v, want ErrDuplicateEntry", err)
		}
	})

	t.Run("unknown run is empty", func(t *testing.T) {
		got, err := repo.FindByRun(ctx, "missing")
		if err != nil {
			t.Fatalf("FindByRun() error = %v", err)
		}
		if len(got) != 0 {
			t.Errorf("FindByRun() returned %d entries, want 0", len(got))
		}
	})
}

func TestJournalRepository_ListRuns(t *testing.T) {
	storage, _ := NewMemory()
	defer func() { _ = storage.Close() }()

	ctx := context.Background()
	repo := storage.Journal()
	base := time.UnixMilli(1_700_000_000_000)

	s := domain.InitialState()
	_ = repo.Append(ctx, entry("older", 1, domain.Start{NowMs: 0}, s, base))
	_ = repo.Append(ctx, entry("newer", 1, domain.Pause{NowMs: 0}, s, base.Add(time.Hour)))
	_ = repo.Append(ctx, entry("newer", 2, domain.SetMode{Mode: domain.ModeBreak}, s, base.Add(2*time.Hour)))

	runs, err := repo.ListRuns(ctx, 10)
	if err != nil {
		t.Fatalf("ListRuns() error = %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("ListRuns() returned %d runs, want 2", len(runs))
	}
	if runs[0].RunID != "newer" {
		t.Errorf("first run = %s, want newer", runs[0].RunID)
	}
	if runs[0].Entries != 2 {
		t.Errorf("Entries = %d, want 2", runs[0].Entries)
	}
	// The pause was a no-op on an idle timer; only the mode switch changed state.
	if runs[0].Transitions != 1 {
		t.Errorf("Transitions = %d, want 1", runs[0].Transitions)
	}

	limited, _ := repo.ListRuns(ctx, 1)
	if len(limited) != 1 {
		t.Errorf("ListRuns(1) returned %d runs", len(limited))
	}
}

func TestJournalRepository_DeleteBefore(t *testing.T) {
	storage, _ := NewMemory()
	defer func() { _ = storage.Close() }()

	ctx := context.Background()
	repo := storage.Journal()
	base := time.UnixMilli(1_700_000_000_000)

	s := domain.InitialState()
	_ = repo.Append(ctx, entry("r", 1, domain.Reset{}, s, base))
	_ = repo.Append(ctx, entry("r", 2, domain.Reset{}, s, base.Add(time.Minute)))

	n, err := repo.DeleteBefore(ctx, base.Add(time.Second))
	if err != nil {
		t.Fatalf("DeleteBefore() error = %v", err)
	}
	if n != 1 {
		t.Errorf("DeleteBefore() = %d, want 1", n)
	}

	left, _ := repo.FindByRun(ctx, "r")
	if len(left) != 1 || left[0].Seq != 2 {
		t.Errorf("remaining entries = %+v", left)
	}
}
