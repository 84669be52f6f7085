// Package tui provides the terminal user interface implementation
// using the Bubbletea framework.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/xvierd/pomo/internal/config"
	"github.com/xvierd/pomo/internal/domain"
	"github.com/xvierd/pomo/internal/ports"
)

// tickMsg is sent on every timer tick. gen identifies the loop that
// scheduled it; ticks from a superseded loop are dropped.
type tickMsg struct {
	gen int
	at  time.Time
}

// tickCmd creates a command that sends a tick message.
func tickCmd(gen int, every time.Duration) tea.Cmd {
	return tea.Tick(every, func(t time.Time) tea.Msg {
		return tickMsg{gen: gen, at: t}
	})
}

// timerCore is the behaviour shared by Model and InlineModel: key dispatch
// and the tick loop.
type timerCore struct {
	ctx      context.Context
	ctrl     ports.TimerController
	state    domain.TimerState
	interval time.Duration
	gen      int
	keys     keyMap
	palette  palette
}

func newTimerCore(ctrl ports.TimerController, theme *config.ThemeConfig, interval time.Duration) timerCore {
	if interval <= 0 {
		interval = config.DefaultTickInterval
	}
	return timerCore{
		ctx:      context.Background(),
		ctrl:     ctrl,
		state:    ctrl.State(),
		interval: interval,
		keys:     defaultKeyMap(),
		palette:  palette{theme: resolveTheme(theme)},
	}
}

// start arms the loop for a timer that is already running at launch.
func (c timerCore) start() tea.Cmd {
	if c.ctrl.Arm() {
		return tickCmd(c.gen, c.interval)
	}
	return nil
}

// arm begins a new tick loop if a gesture left the timer running unarmed.
func (c *timerCore) arm() tea.Cmd {
	if !c.ctrl.Arm() {
		return nil
	}
	c.gen++
	return tickCmd(c.gen, c.interval)
}

// handleKey applies a key press. The bool reports a quit gesture.
func (c *timerCore) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	cmd, ok := c.keys.command(msg)
	if !ok {
		return nil, false
	}
	if cmd == ports.CmdQuit {
		return tea.Quit, true
	}
	c.state = c.ctrl.Execute(c.ctx, cmd)
	return c.arm(), false
}

func (c *timerCore) handleTick(msg tickMsg) tea.Cmd {
	if msg.gen != c.gen || !c.ctrl.Armed() {
		return nil
	}
	st, armed := c.ctrl.Tick(c.ctx)
	c.state = st
	if !armed {
		return nil
	}
	return tickCmd(c.gen, c.interval)
}

// display returns the clock text and elapsed fraction at the controller's now.
func (c timerCore) display() (string, float64) {
	now := c.ctrl.NowMs()
	return domain.FormatMMSS(c.state.RemainingAt(now)), c.state.Progress(now)
}

// Model is the fullscreen timer.
type Model struct {
	timerCore

	help     help.Model
	width    int
	height   int
	quitting bool
}

// NewModel creates a new TUI model over ctrl.
func NewModel(ctrl ports.TimerController, theme *config.ThemeConfig, interval time.Duration) Model {
	return Model{
		timerCore: newTimerCore(ctrl, theme, interval),
		help:      help.New(),
	}
}

// Init initializes the TUI.
func (m Model) Init() tea.Cmd {
	return m.start()
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	case tea.KeyMsg:
		cmd, quit := m.handleKey(msg)
		m.quitting = quit
		return m, cmd
	case tickMsg:
		return m, m.handleTick(msg)
	}
	return m, nil
}

// View renders the TUI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}

	st := m.state
	pal := m.palette
	clock, prog := m.display()

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(pal.theme.ColorTitle)).MarginBottom(1)
	modeStyle := lipgloss.NewStyle().Foreground(pal.modeColor(st.Mode))

	sections := []string{
		titleStyle.Render(fmt.Sprintf("%s Pomodoro", pal.theme.IconApp)),
		pal.tabs(st.Mode),
		"",
		modeStyle.Render(domain.ModeLabel(st.Mode)),
		renderBigTime(clock, pal.timerColor(st), m.width),
	}

	if st.Status == domain.StatusPaused {
		badge := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color(pal.theme.ColorPaused)).
			Padding(0, 1).
			Render(fmt.Sprintf("%s PAUSED", pal.theme.IconPaused))
		sections = append(sections, "", badge)
	}

	barWidth := m.width - 4
	if barWidth > 60 {
		barWidth = 60
	}
	sections = append(sections, "", pal.progressBar(st, barWidth).ViewAs(prog))

	button := lipgloss.NewStyle().
		Bold(true).
		Padding(0, 3).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(pal.modeColor(st.Mode)).
		Render(domain.ButtonCaption(st.Status))
	sections = append(sections, "", button, "", m.help.View(m.keys.forStatus(st.Status)))

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}
