package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/xvierd/pomo/internal/domain"
)

var fromState string

// formatCmd renders second counts the way the timer displays them.
var formatCmd = &cobra.Command{
	Use:   "format SECONDS...",
	Short: "Render second counts as MM:SS",
	Long: `Render each argument as the timer would display it. Negative values
render as 00:00; pass them after "--".`,
	Example:     "  pomo format 1500 125\n  pomo format -- -10",
	Args:        cobra.MinimumNArgs(1),
	Annotations: map[string]string{annotationStandalone: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, arg := range args {
			n, err := strconv.Atoi(arg)
			if err != nil {
				return fmt.Errorf("invalid seconds %q: %w", arg, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), domain.FormatMMSS(n))
		}
		return nil
	},
}

// simulateCmd folds an action script through the reducer.
var simulateCmd = &cobra.Command{
	Use:   "simulate ACTION...",
	Short: "Run a script of actions through the timer",
	Long: `Apply actions in order, starting from the initial state (or --from),
and print every intermediate state. Timestamps are epoch milliseconds.

Actions:
  start@MS   pause@MS   tick@MS   reset   mode=focus|break`,
	Example:     "  pomo simulate start@0 pause@1495000 start@2000000 tick@2005000",
	Args:        cobra.MinimumNArgs(1),
	Annotations: map[string]string{annotationStandalone: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		actions, err := domain.ParseScript(args)
		if err != nil {
			return err
		}

		initial := domain.InitialState()
		if fromState != "" {
			var from domain.TimerState
			if err := json.Unmarshal([]byte(fromState), &from); err != nil {
				return fmt.Errorf("invalid --from state: %w", err)
			}
			if err := from.Validate(); err != nil {
				return fmt.Errorf("invalid --from state: %w", err)
			}
			initial = from
		}

		steps := simulate(initial, actions)
		if structured() {
			return writeStructured(cmd.OutOrStdout(), steps)
		}
		printSimulation(cmd.OutOrStdout(), steps)
		return nil
	},
}

func init() {
	simulateCmd.Flags().StringVar(&fromState, "from", "", `Initial state as JSON, e.g. '{"mode":"break","status":"idle","remainingSec":300,"endAtMs":null}'`)
}

// simulationStep is one row of simulate output.
type simulationStep struct {
	Step    int               `json:"step" yaml:"step"`
	Action  string            `json:"action" yaml:"action"`
	State   domain.TimerState `json:"state" yaml:"state"`
	Display string            `json:"display" yaml:"display"`
}

func simulate(initial domain.TimerState, actions []domain.Action) []simulationStep {
	if initial.IsZero() {
		initial = domain.InitialState()
	}
	steps := []simulationStep{{
		Step:    0,
		State:   initial,
		Display: domain.FormatMMSS(initial.RemainingSec),
	}}

	states := domain.Fold(initial, actions)
	for i, st := range states {
		display := st.RemainingSec
		if now, ok := domain.ActionNow(actions[i]); ok {
			display = st.RemainingAt(now)
		}
		steps = append(steps, simulationStep{
			Step:    i + 1,
			Action:  domain.FormatAction(actions[i]),
			State:   st,
			Display: domain.FormatMMSS(display),
		})
	}
	return steps
}

func printSimulation(w io.Writer, steps []simulationStep) {
	header.Fprintf(w, "%4s  %-16s %-6s %-8s %-6s %s\n", "STEP", "ACTION", "MODE", "STATUS", "LEFT", "END AT")

	prev := steps[0].State
	for _, s := range steps {
		action := s.Action
		if s.Step == 0 {
			action = "(initial)"
		}
		endAt := "-"
		if end, ok := s.State.EndAt(); ok {
			endAt = strconv.FormatInt(end, 10)
		}

		line := fmt.Sprintf("%4d  %-16s %-6s %-8s %-6s %s", s.Step, action, s.State.Mode, s.State.Status, s.Display, endAt)
		switch {
		case s.State.Mode != prev.Mode:
			yellow.Fprintln(w, line+"  ← mode")
		case s.Step > 0 && s.State.Equal(prev):
			faint.Fprintln(w, line)
		default:
			fmt.Fprintln(w, line)
		}
		prev = s.State
	}
}
