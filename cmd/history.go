package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/xvierd/pomo/internal/domain"
	"github.com/xvierd/pomo/internal/ports"
	"github.com/xvierd/pomo/internal/services"
)

var (
	historyLimit int
	pruneAge     time.Duration
)

// historyCmd lists journaled runs
var historyCmd = &cobra.Command{
	Use:   "history [RUN_ID]",
	Short: "List recorded runs, or show one run's transitions",
	Long: `Without arguments, list the most recent runs in the journal.
With a run id, print every recorded action and the state it produced.

Runs are recorded when the timer is started with --journal or when
journal.enabled is set in the config file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStorage()
		if err != nil {
			return err
		}
		js := services.NewJournalService(store.Journal())
		ctx := cmd.Context()

		if pruneAge > 0 {
			n, err := js.Prune(ctx, pruneAge)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Pruned %d entries older than %s\n", n, pruneAge)
		}

		if len(args) == 1 {
			entries, err := js.Entries(ctx, args[0])
			if err != nil {
				return err
			}
			if structured() {
				return writeStructured(cmd.OutOrStdout(), toEntryViews(entries))
			}
			printEntries(cmd.OutOrStdout(), entries)
			return nil
		}

		runs, err := js.ListRuns(ctx, historyLimit)
		if err != nil {
			return err
		}
		if structured() {
			return writeStructured(cmd.OutOrStdout(), toRunViews(runs))
		}
		printRuns(cmd.OutOrStdout(), runs)
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of runs to list")
	historyCmd.Flags().DurationVar(&pruneAge, "prune", 0, "Delete entries older than this first (e.g. 720h)")
}

type runView struct {
	RunID       string    `json:"run_id" yaml:"run_id"`
	Entries     int       `json:"entries" yaml:"entries"`
	Transitions int       `json:"transitions" yaml:"transitions"`
	FirstAt     time.Time `json:"first_at" yaml:"first_at"`
	LastAt      time.Time `json:"last_at" yaml:"last_at"`
}

type entryView struct {
	Seq        int               `json:"seq" yaml:"seq"`
	Kind       string            `json:"kind" yaml:"kind"`
	Action     string            `json:"action" yaml:"action"`
	Before     domain.TimerState `json:"before" yaml:"before"`
	After      domain.TimerState `json:"after" yaml:"after"`
	RecordedAt time.Time         `json:"recorded_at" yaml:"recorded_at"`
}

func toRunViews(runs []*ports.RunSummary) []runView {
	views := make([]runView, 0, len(runs))
	for _, r := range runs {
		views = append(views, runView{
			RunID:       r.RunID,
			Entries:     r.Entries,
			Transitions: r.Transitions,
			FirstAt:     r.FirstAt,
			LastAt:      r.LastAt,
		})
	}
	return views
}

func toEntryViews(entries []*ports.JournalEntry) []entryView {
	views := make([]entryView, 0, len(entries))
	for _, e := range entries {
		views = append(views, entryView{
			Seq:        e.Seq,
			Kind:       string(e.Kind),
			Action:     e.Action,
			Before:     e.Before,
			After:      e.After,
			RecordedAt: e.RecordedAt,
		})
	}
	return views
}

func printRuns(w io.Writer, runs []*ports.RunSummary) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded. Start the timer with --journal to record one.")
		return
	}

	header.Fprintf(w, "%-36s  %-16s  %8s  %7s  %s\n", "RUN", "STARTED", "LENGTH", "ENTRIES", "CHANGES")
	for _, r := range runs {
		length := r.LastAt.Sub(r.FirstAt).Round(time.Second)
		fmt.Fprintf(w, "%-36s  %-16s  %8s  %7d  %d\n",
			r.RunID, r.FirstAt.Local().Format("2006-01-02 15:04"), length, r.Entries, r.Transitions)
	}
}

func printEntries(w io.Writer, entries []*ports.JournalEntry) {
	header.Fprintf(w, "%4s  %-8s  %-16s  %-20s    %s\n", "SEQ", "TIME", "ACTION", "BEFORE", "AFTER")
	for _, e := range entries {
		line := fmt.Sprintf("%4d  %-8s  %-16s  %-20s -> %s",
			e.Seq, e.RecordedAt.Local().Format("15:04:05"), displayAction(e), stateSummary(e.Before), stateSummary(e.After))
		switch {
		case e.After.Mode != e.Before.Mode:
			yellow.Fprintln(w, line)
		case e.After.Equal(e.Before):
			faint.Fprintln(w, line)
		default:
			fmt.Fprintln(w, line)
		}
	}
}

func displayAction(e *ports.JournalEntry) string {
	if e.Action == "" {
		return "(none)"
	}
	return e.Action
}

// stateSummary renders a state compactly, e.g. "focus running 24:59".
func stateSummary(s domain.TimerState) string {
	return fmt.Sprintf("%s %s %s", s.Mode, s.Status, domain.FormatMMSS(s.RemainingSec))
}
