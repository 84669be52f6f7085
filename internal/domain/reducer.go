package domain

// Reduce returns the state that follows s after a. It never fails: actions
// that do not apply in the current status, invalid modes, nil and unknown
// actions all return s unchanged. A zero s is replaced by InitialState first.
func Reduce(s TimerState, a Action) TimerState {
	if s.IsZero() {
		s = InitialState()
	}

	switch act := a.(type) {
	case SetMode:
		if s.Status == StatusRunning || !act.Mode.Valid() {
			return s
		}
		return resetFor(act.Mode)

	case Reset:
		return resetFor(s.Mode)

	case Start:
		if s.Status == StatusRunning {
			return s
		}
		return startFrom(s, act.NowMs)

	case Pause:
		end, ok := s.EndAt()
		if s.Status != StatusRunning || !ok {
			return s
		}
		return TimerState{
			Mode:         s.Mode,
			Status:       StatusPaused,
			RemainingSec: ComputeRemaining(act.NowMs, end),
		}

	case Tick:
		return tickFrom(s, act.NowMs)
	}

	return s
}

func resetFor(m Mode) TimerState {
	return TimerState{
		Mode:         m,
		Status:       StatusIdle,
		RemainingSec: Duration(m),
	}
}

func startFrom(s TimerState, nowMs int64) TimerState {
	base := s.RemainingSec
	// An exhausted idle countdown restarts from the full duration.
	if s.Status == StatusIdle && base <= 0 {
		base = Duration(s.Mode)
	}
	if base < 0 {
		base = 0
	}
	return TimerState{
		Mode:         s.Mode,
		Status:       StatusRunning,
		RemainingSec: base,
		EndAtMs:      deadline(nowMs, base),
	}
}

func tickFrom(s TimerState, nowMs int64) TimerState {
	end, ok := s.EndAt()
	if s.Status != StatusRunning || !ok {
		return s
	}

	remaining := ComputeRemaining(nowMs, end)
	if remaining > 0 {
		return TimerState{
			Mode:         s.Mode,
			Status:       StatusRunning,
			RemainingSec: remaining,
			EndAtMs:      deadline(end, 0),
		}
	}

	// The next deadline is anchored to nowMs, not to the old one, so a second
	// tick at the same instant sees a future deadline and does not switch again.
	next := Other(s.Mode)
	return TimerState{
		Mode:         next,
		Status:       StatusRunning,
		RemainingSec: Duration(next),
		EndAtMs:      deadline(nowMs, Duration(next)),
	}
}

func deadline(fromMs int64, sec int) *int64 {
	end := fromMs + int64(sec)*1000
	return &end
}
