package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatAction renders a in the compact text form understood by ParseAction:
//
//	start@0  pause@1495000  tick@1500000  reset  mode=break
func FormatAction(a Action) string {
	switch v := a.(type) {
	case SetMode:
		return "mode=" + string(v.Mode)
	case Reset:
		return "reset"
	case Start:
		return fmt.Sprintf("start@%d", v.NowMs)
	case Pause:
		return fmt.Sprintf("pause@%d", v.NowMs)
	case Tick:
		return fmt.Sprintf("tick@%d", v.NowMs)
	case nil:
		return ""
	}
	return strings.ToLower(string(a.Kind()))
}

// ParseAction parses the text form produced by FormatAction. Action names
// are case-insensitive. Mode names are kept as written and not validated:
// SetMode with an unknown mode is a legal no-op action.
func ParseAction(s string) (Action, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidAction)
	}

	if name, mode, ok := strings.Cut(s, "="); ok && strings.EqualFold(name, "mode") {
		return SetMode{Mode: Mode(mode)}, nil
	}
	if strings.EqualFold(s, "reset") {
		return Reset{}, nil
	}

	name, at, ok := strings.Cut(s, "@")
	name = strings.ToLower(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q needs a timestamp (name@ms)", ErrInvalidAction, s)
	}
	now, err := strconv.ParseInt(at, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad timestamp in %q: %v", ErrInvalidAction, s, err)
	}

	switch name {
	case "start":
		return Start{NowMs: now}, nil
	case "pause":
		return Pause{NowMs: now}, nil
	case "tick":
		return Tick{NowMs: now}, nil
	}
	return nil, fmt.Errorf("%w: unknown action %q", ErrInvalidAction, name)
}

// ParseScript parses a sequence of actions.
func ParseScript(items []string) ([]Action, error) {
	actions := make([]Action, 0, len(items))
	for i, item := range items {
		a, err := ParseAction(item)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
		actions = append(actions, a)
	}
	return actions, nil
}

// Fold applies actions in order starting from s and returns every
// intermediate state, one per action.
func Fold(s TimerState, actions []Action) []TimerState {
	out := make([]TimerState, 0, len(actions))
	for _, a := range actions {
		s = Reduce(s, a)
		out = append(out, s)
	}
	return out
}
