package ports

import (
	"context"

	"github.com/xvierd/pomo/internal/domain"
)

// TimerCommand represents a user gesture on the timer controls.
type TimerCommand string

const (
	// CmdToggle starts, pauses or resumes depending on the current status.
	CmdToggle TimerCommand = "toggle"

	// CmdReset returns the current mode to its full duration.
	CmdReset TimerCommand = "reset"

	// CmdFocus selects the Focus tab.
	CmdFocus TimerCommand = "focus"

	// CmdBreak selects the Break tab.
	CmdBreak TimerCommand = "break"

	// CmdSwitch selects whichever tab is not active.
	CmdSwitch TimerCommand = "switch"

	// CmdQuit exits the application.
	CmdQuit TimerCommand = "quit"
)

// TimerController is what the terminal UI drives. It owns the single current
// state and the periodic tick flag; every change goes through the reducer.
// This is a driving port (called by the UI adapter).
type TimerController interface {
	// State returns the latest state.
	State() domain.TimerState

	// NowMs reads the controller's clock.
	NowMs() int64

	// Execute translates a gesture into an action and dispatches it.
	Execute(ctx context.Context, cmd TimerCommand) domain.TimerState

	// Tick dispatches a tick at the current time. The returned flag is false
	// once the ticker has been disarmed because the timer stopped running.
	Tick(ctx context.Context) (domain.TimerState, bool)

	// Arm marks the periodic tick as scheduled. It returns true only if it
	// was not already armed, so the caller schedules at most one loop.
	Arm() bool

	// Armed reports whether the periodic tick is scheduled.
	Armed() bool
}
