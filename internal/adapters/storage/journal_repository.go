package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/xvierd/pomo/internal/domain"
	"github.com/xvierd/pomo/internal/ports"
)

// ErrDuplicateEntry is returned when a (run, seq) pair is recorded twice.
var ErrDuplicateEntry = errors.New("journal entry already recorded")

// journalRepository implements ports.JournalRepository using SQLite.
type journalRepository struct {
	db *sql.DB
}

// newJournalRepository creates a new journal repository.
func newJournalRepository(db *sql.DB) ports.JournalRepository {
	return &journalRepository{db: db}
}

// Append records an entry and fills in its ID.
func (r *journalRepository) Append(ctx context.Context, entry *ports.JournalEntry) error {
	query := `
		INSERT INTO journal (run_id, seq, kind, action, before_state, after_state, recorded_at_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	res, err := r.db.ExecContext(ctx, query,
		entry.RunID,
		entry.Seq,
		string(entry.Kind),
		entry.Action,
		domain.Serialize(entry.Before),
		domain.Serialize(entry.After),
		entry.RecordedAt.UnixMilli(),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: run %s seq %d", ErrDuplicateEntry, entry.RunID, entry.Seq)
		}
		return fmt.Errorf("failed to append journal entry: %w", err)
	}

	if id, err := res.LastInsertId(); err == nil {
		entry.ID = id
	}
	return nil
}

// FindByRun returns a run's entries ordered by sequence.
func (r *journalRepository) FindByRun(ctx context.Context, runID string) ([]*ports.JournalEntry, error) {
	query := `
		SELECT id, run_id, seq, kind, action, before_state, after_state, recorded_at_ms
		FROM journal
		WHERE run_id = ?
		ORDER BY seq ASC
	`

	rows, err := r.db.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []*ports.JournalEntry
	for rows.Next() {
		var e ports.JournalEntry
		var kind, before, after string
		var recordedAtMs int64
		if err := rows.Scan(&e.ID, &e.RunID, &e.Seq, &kind, &e.Action, &before, &after, &recordedAtMs); err != nil {
			return nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}
		e.Kind = domain.ActionKind(kind)
		if err := json.Unmarshal([]byte(before), &e.Before); err != nil {
			return nil, fmt.Errorf("failed to decode state of entry %d: %w", e.ID, err)
		}
		if err := json.Unmarshal([]byte(after), &e.After); err != nil {
			return nil, fmt.Errorf("failed to decode state of entry %d: %w", e.ID, err)
		}
		e.RecordedAt = time.UnixMilli(recordedAtMs)
		entries = append(entries, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal: %w", err)
	}
	return entries, nil
}

// ListRuns returns run summaries, most recently active first.
func (r *journalRepository) ListRuns(ctx context.Context, limit int) ([]*ports.RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT
			run_id,
			COUNT(*),
			SUM(CASE WHEN before_state != after_state THEN 1 ELSE 0 END),
			MIN(recorded_at_ms),
			MAX(recorded_at_ms)
		FROM journal
		GROUP BY run_id
		ORDER BY MAX(recorded_at_ms) DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []*ports.RunSummary
	for rows.Next() {
		var run ports.RunSummary
		var first, last int64
		if err := rows.Scan(&run.RunID, &run.Entries, &run.Transitions, &first, &last); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		run.FirstAt = time.UnixMilli(first)
		run.LastAt = time.UnixMilli(last)
		runs = append(runs, &run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}
	return runs, nil
}

// DeleteBefore removes entries recorded before cutoff.
func (r *journalRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM journal WHERE recorded_at_ms < ?`, cutoff.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("failed to delete journal entries: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted entries: %w", err)
	}
	return n, nil
}
