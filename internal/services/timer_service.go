package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/xvierd/pomo/internal/domain"
	"github.com/xvierd/pomo/internal/ports"
)

const journalWriteTimeout = 2 * time.Second

// TimerService holds the current timer state and is the only place it is
// replaced. All changes are Reduce results; the service adds the clock, the
// tick arming flag, logging and the optional journal around it.
type TimerService struct {
	mu      sync.RWMutex
	state   domain.TimerState
	armed   bool
	seq     int
	runID   string
	clock   ports.Clock
	journal ports.JournalRepository
	logger  *slog.Logger
}

// Option configures a TimerService.
type Option func(*TimerService)

// WithClock overrides the system clock.
func WithClock(c ports.Clock) Option {
	return func(s *TimerService) { s.clock = c }
}

// WithJournal records every dispatch to repo.
func WithJournal(repo ports.JournalRepository) Option {
	return func(s *TimerService) { s.journal = repo }
}

// WithLogger sets the logger. The default discards output.
func WithLogger(l *slog.Logger) Option {
	return func(s *TimerService) { s.logger = l }
}

// WithInitialState starts from s instead of domain.InitialState.
func WithInitialState(st domain.TimerState) Option {
	return func(s *TimerService) { s.state = st }
}

// NewTimerService creates a timer service in the initial state.
func NewTimerService(opts ...Option) *TimerService {
	s := &TimerService{
		state:  domain.InitialState(),
		runID:  newRunID(),
		clock:  ports.SystemClock,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ensure TimerService implements ports.TimerController.
var _ ports.TimerController = (*TimerService)(nil)

// RunID identifies this run in the journal.
func (s *TimerService) RunID() string {
	return s.runID
}

// State returns the latest state.
func (s *TimerService) State() domain.TimerState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// NowMs reads the service clock.
func (s *TimerService) NowMs() int64 {
	return ports.NowMs(s.clock)
}

// Dispatch reduces the current state with a and stores the result.
func (s *TimerService) Dispatch(ctx context.Context, a domain.Action) domain.TimerState {
	s.mu.Lock()
	before := s.state
	after := domain.Reduce(before, a)
	s.state = after
	s.seq++
	seq := s.seq
	s.mu.Unlock()

	if a == nil || !domain.IsKnownAction(a) {
		kind := "<nil>"
		if a != nil {
			kind = string(a.Kind())
		}
		s.logger.Warn("timer.unknown_action", "kind", kind, "run", s.runID)
	} else {
		s.logger.Debug("timer.dispatch",
			"action", domain.FormatAction(a),
			"before", domain.Serialize(before),
			"after", domain.Serialize(after))
		if before.Status == domain.StatusRunning && after.Mode != before.Mode {
			s.logger.Info("timer.mode_switch", "from", before.Mode, "to", after.Mode)
		}
	}

	s.record(ctx, seq, a, before, after)
	return after
}

// ToggleStartPause pauses a running timer and starts or resumes any other.
func (s *TimerService) ToggleStartPause(ctx context.Context) domain.TimerState {
	now := s.NowMs()
	if s.State().Status == domain.StatusRunning {
		st := s.Dispatch(ctx, domain.Pause{NowMs: now})
		s.Disarm()
		return st
	}
	return s.Dispatch(ctx, domain.Start{NowMs: now})
}

// ResetTimer resets the current mode and stops ticking.
func (s *TimerService) ResetTimer(ctx context.Context) domain.TimerState {
	st := s.Dispatch(ctx, domain.Reset{})
	s.Disarm()
	return st
}

// SelectMode switches tabs. Ignored by the reducer while running.
func (s *TimerService) SelectMode(ctx context.Context, m domain.Mode) domain.TimerState {
	return s.Dispatch(ctx, domain.SetMode{Mode: m})
}

// Execute maps a UI gesture to the matching operation.
func (s *TimerService) Execute(ctx context.Context, cmd ports.TimerCommand) domain.TimerState {
	switch cmd {
	case ports.CmdToggle:
		return s.ToggleStartPause(ctx)
	case ports.CmdReset:
		return s.ResetTimer(ctx)
	case ports.CmdFocus:
		return s.SelectMode(ctx, domain.ModeFocus)
	case ports.CmdBreak:
		return s.SelectMode(ctx, domain.ModeBreak)
	case ports.CmdSwitch:
		return s.SelectMode(ctx, domain.Other(s.State().Mode))
	}
	s.logger.Debug("timer.command_ignored", "command", string(cmd))
	return s.State()
}

// Tick dispatches a tick at the current time and disarms the ticker once the
// timer is no longer running.
func (s *TimerService) Tick(ctx context.Context) (domain.TimerState, bool) {
	st := s.Dispatch(ctx, domain.Tick{NowMs: s.NowMs()})
	if st.Status != domain.StatusRunning {
		s.Disarm()
	}
	return st, s.Armed()
}

// Arm marks the ticker as scheduled. It returns false if it already was, or
// if the timer is not running.
func (s *TimerService) Arm() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.armed || s.state.Status != domain.StatusRunning {
		return false
	}
	s.armed = true
	return true
}

// Disarm stops the ticker. Safe to call when not armed.
func (s *TimerService) Disarm() {
	s.mu.Lock()
	s.armed = false
	s.mu.Unlock()
}

// Armed reports whether the ticker is scheduled.
func (s *TimerService) Armed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.armed
}

func (s *TimerService) record(ctx context.Context, seq int, a domain.Action, before, after domain.TimerState) {
	if s.journal == nil {
		return
	}

	entry := &ports.JournalEntry{
		RunID:      s.runID,
		Seq:        seq,
		Action:     domain.FormatAction(a),
		Before:     before,
		After:      after,
		RecordedAt: s.clock.Now(),
	}
	if a != nil {
		entry.Kind = a.Kind()
	}

	ctx, cancel := context.WithTimeout(ctx, journalWriteTimeout)
	defer cancel()
	if err := s.journal.Append(ctx, entry); err != nil {
		s.logger.Error("journal.append", "err", err, "run", s.runID, "seq", seq)
	}
}
