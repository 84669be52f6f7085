// Package domain holds the Pomodoro timer state machine. Everything here is
// pure: no clocks, no I/O, no mutation of values handed in by callers.
package domain

import "fmt"

// Mode selects which countdown duration applies.
type Mode string

const (
	ModeFocus Mode = "focus"
	ModeBreak Mode = "break"
)

// Status is the lifecycle position of the countdown.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusRunning Status = "running"
	StatusPaused  Status = "paused"
)

// Fixed countdown lengths in seconds.
const (
	FocusDurationSec = 25 * 60
	BreakDurationSec = 5 * 60
)

// TimerState is an immutable snapshot of the timer. Transitions always build
// a new value; EndAtMs is never written through.
type TimerState struct {
	Mode         Mode   `json:"mode" yaml:"mode"`
	Status       Status `json:"status" yaml:"status"`
	RemainingSec int    `json:"remainingSec" yaml:"remainingSec"`
	// EndAtMs is the deadline in milliseconds since the epoch. Set only while running.
	EndAtMs *int64 `json:"endAtMs" yaml:"endAtMs"`
}

// InitialState returns the startup state: idle Focus with the full duration.
func InitialState() TimerState {
	return TimerState{
		Mode:         ModeFocus,
		Status:       StatusIdle,
		RemainingSec: FocusDurationSec,
	}
}

// Valid reports whether m is one of the two known modes.
func (m Mode) Valid() bool {
	return m == ModeFocus || m == ModeBreak
}

// ParseMode converts a mode name to a Mode.
func ParseMode(s string) (Mode, bool) {
	m := Mode(s)
	return m, m.Valid()
}

// Duration returns the countdown length of a mode in seconds.
func Duration(m Mode) int {
	if m == ModeBreak {
		return BreakDurationSec
	}
	return FocusDurationSec
}

// Other returns the mode the timer switches to when a countdown ends.
func Other(m Mode) Mode {
	if m == ModeFocus {
		return ModeBreak
	}
	return ModeFocus
}

// EndAt returns the deadline and whether one is set.
func (s TimerState) EndAt() (int64, bool) {
	if s.EndAtMs == nil {
		return 0, false
	}
	return *s.EndAtMs, true
}

// IsZero reports whether s is the zero value, which stands for "no state yet".
func (s TimerState) IsZero() bool {
	return s.Mode == "" && s.Status == "" && s.RemainingSec == 0 && s.EndAtMs == nil
}

// Validate reports whether s is a state the reducer could have produced.
func (s TimerState) Validate() error {
	if !s.Mode.Valid() {
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidState, s.Mode)
	}
	switch s.Status {
	case StatusIdle, StatusRunning, StatusPaused:
	default:
		return fmt.Errorf("%w: unknown status %q", ErrInvalidState, s.Status)
	}
	if s.RemainingSec < 0 || s.RemainingSec > Duration(s.Mode) {
		return fmt.Errorf("%w: remainingSec %d outside 0..%d", ErrInvalidState, s.RemainingSec, Duration(s.Mode))
	}
	_, hasEnd := s.EndAt()
	if running := s.Status == StatusRunning; running != hasEnd {
		return fmt.Errorf("%w: endAtMs must be set exactly when running", ErrInvalidState)
	}
	return nil
}

// Equal compares two states by value, including the pointed-to deadline.
func (s TimerState) Equal(o TimerState) bool {
	if s.Mode != o.Mode || s.Status != o.Status || s.RemainingSec != o.RemainingSec {
		return false
	}
	a, aok := s.EndAt()
	b, bok := o.EndAt()
	return aok == bok && a == b
}

// RemainingAt is the value to display at nowMs. While running it is derived
// from the deadline so that suspended processes catch up on resume.
func (s TimerState) RemainingAt(nowMs int64) int {
	if end, ok := s.EndAt(); ok && s.Status == StatusRunning {
		return ComputeRemaining(nowMs, end)
	}
	if s.RemainingSec < 0 {
		return 0
	}
	return s.RemainingSec
}

// Progress returns the elapsed fraction of the current mode's duration, 0 to 1.
func (s TimerState) Progress(nowMs int64) float64 {
	total := Duration(s.Mode)
	if total <= 0 {
		return 0
	}
	p := 1 - float64(s.RemainingAt(nowMs))/float64(total)
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

// ModeLabel returns the display name of a mode.
func ModeLabel(m Mode) string {
	switch m {
	case ModeFocus:
		return "Focus"
	case ModeBreak:
		return "Break"
	default:
		return "Unknown"
	}
}

// ButtonCaption returns the start/pause control caption for a status.
func ButtonCaption(s Status) string {
	switch s {
	case StatusRunning:
		return "Pause"
	case StatusPaused:
		return "Resume"
	default:
		return "Start"
	}
}
