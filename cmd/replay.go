package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/xvierd/pomo/internal/domain"
	"github.com/xvierd/pomo/internal/services"
)

// replayCmd re-derives a journaled run through the reducer
var replayCmd = &cobra.Command{
	Use:   "replay RUN_ID",
	Short: "Recompute a recorded run and check it against the journal",
	Long: `Fold the recorded actions of a run through the timer, starting from
its first recorded state, and compare every result with what was journaled.
Exits non-zero if any step differs.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStorage()
		if err != nil {
			return err
		}

		report, err := services.NewJournalService(store.Journal()).Replay(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		app.logger.Info("journal.replay", "run", report.RunID, "steps", len(report.Steps), "mismatches", report.Mismatches)

		if structured() {
			if err := writeStructured(cmd.OutOrStdout(), toReplayView(report)); err != nil {
				return err
			}
		} else {
			printReplay(cmd.OutOrStdout(), report)
		}

		if report.Mismatches > 0 {
			return fmt.Errorf("replay of %s diverged at %d of %d steps", report.RunID, report.Mismatches, len(report.Steps))
		}
		return nil
	},
}

type replayStepView struct {
	Seq        int               `json:"seq" yaml:"seq"`
	Action     string            `json:"action" yaml:"action"`
	Recorded   domain.TimerState `json:"recorded" yaml:"recorded"`
	Recomputed domain.TimerState `json:"recomputed" yaml:"recomputed"`
	Match      bool              `json:"match" yaml:"match"`
}

type replayView struct {
	RunID      string           `json:"run_id" yaml:"run_id"`
	Mismatches int              `json:"mismatches" yaml:"mismatches"`
	Steps      []replayStepView `json:"steps" yaml:"steps"`
}

func toReplayView(r *services.ReplayReport) replayView {
	v := replayView{RunID: r.RunID, Mismatches: r.Mismatches, Steps: make([]replayStepView, 0, len(r.Steps))}
	for _, s := range r.Steps {
		v.Steps = append(v.Steps, replayStepView{
			Seq:        s.Entry.Seq,
			Action:     s.Entry.Action,
			Recorded:   s.Entry.After,
			Recomputed: s.Recomputed,
			Match:      s.Match,
		})
	}
	return v
}

func printReplay(w io.Writer, r *services.ReplayReport) {
	for _, s := range r.Steps {
		if s.Match {
			green.Fprintf(w, "  ✓ %4d  %-16s  %s\n", s.Entry.Seq, displayAction(s.Entry), stateSummary(s.Recomputed))
			continue
		}
		red.Fprintf(w, "  ✗ %4d  %-16s\n", s.Entry.Seq, displayAction(s.Entry))
		fmt.Fprintf(w, "        recorded:   %s\n", domain.Serialize(s.Entry.After))
		fmt.Fprintf(w, "        recomputed: %s\n", domain.Serialize(s.Recomputed))
	}
	fmt.Fprintf(w, "\n%d steps, %d mismatches\n", len(r.Steps), r.Mismatches)
}
