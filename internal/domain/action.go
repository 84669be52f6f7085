package domain

// ActionKind names an action for logs and the journal.
type ActionKind string

const (
	KindSetMode ActionKind = "SET_MODE"
	KindReset   ActionKind = "RESET"
	KindStart   ActionKind = "START"
	KindPause   ActionKind = "PAUSE"
	KindTick    ActionKind = "TICK"
)

// Action is a one-shot input to Reduce.
type Action interface {
	Kind() ActionKind
}

// SetMode switches to Mode and resets the countdown. Ignored while running.
type SetMode struct {
	Mode Mode
}

// Reset returns the current mode to idle with its full duration.
type Reset struct{}

// Start begins or resumes the countdown at NowMs.
type Start struct {
	NowMs int64
}

// Pause freezes the countdown at NowMs.
type Pause struct {
	NowMs int64
}

// Tick re-evaluates a running countdown at NowMs.
type Tick struct {
	NowMs int64
}

func (SetMode) Kind() ActionKind { return KindSetMode }
func (Reset) Kind() ActionKind   { return KindReset }
func (Start) Kind() ActionKind   { return KindStart }
func (Pause) Kind() ActionKind   { return KindPause }
func (Tick) Kind() ActionKind    { return KindTick }

// IsKnownAction reports whether Reduce understands a. Callers use it to warn
// about actions that will be ignored.
func IsKnownAction(a Action) bool {
	switch a.(type) {
	case SetMode, Reset, Start, Pause, Tick:
		return true
	}
	return false
}

// ActionNow returns the timestamp an action carries, if any.
func ActionNow(a Action) (int64, bool) {
	switch v := a.(type) {
	case Start:
		return v.NowMs, true
	case Pause:
		return v.NowMs, true
	case Tick:
		return v.NowMs, true
	}
	return 0, false
}
