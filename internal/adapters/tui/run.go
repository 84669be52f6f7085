package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/xvierd/pomo/internal/config"
	"github.com/xvierd/pomo/internal/ports"
)

// Options configures a timer program.
type Options struct {
	Theme        *config.ThemeConfig
	TickInterval time.Duration
	Inline       bool

	// Input and Output override the terminal, mainly for tests.
	Input  io.Reader
	Output io.Writer
}

// Run starts the timer interface over ctrl and blocks until the user quits
// or ctx is cancelled.
func Run(ctx context.Context, ctrl ports.TimerController, opts Options) error {
	var model tea.Model
	progOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if opts.Inline {
		model = NewInlineModel(ctrl, opts.Theme, opts.TickInterval)
	} else {
		model = NewModel(ctrl, opts.Theme, opts.TickInterval)
		progOpts = append(progOpts, tea.WithAltScreen())
	}
	if opts.Input != nil {
		progOpts = append(progOpts, tea.WithInput(opts.Input))
	}
	if opts.Output != nil {
		progOpts = append(progOpts, tea.WithOutput(opts.Output))
	}

	p := tea.NewProgram(model, progOpts...)
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("timer interface failed: %w", err)
	}
	return nil
}
