package tui

import (
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
	"github.com/xvierd/pomo/internal/config"
	"github.com/xvierd/pomo/internal/domain"
	"github.com/xvierd/pomo/internal/ports"
)

// inlineFixedWidth is what the line needs besides the progress bar.
const inlineFixedWidth = 48

// getTerminalWidth returns the current terminal width, defaulting to 80.
func getTerminalWidth() int {
	w, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil || w < 40 {
		return 80
	}
	return w
}

// InlineModel is a single-line timer that renders below the prompt instead
// of taking over the screen.
type InlineModel struct {
	timerCore

	width    int
	quitting bool
}

// NewInlineModel creates an inline timer sized to the terminal.
func NewInlineModel(ctrl ports.TimerController, theme *config.ThemeConfig, interval time.Duration) InlineModel {
	return InlineModel{
		timerCore: newTimerCore(ctrl, theme, interval),
		width:     getTerminalWidth(),
	}
}

func (m InlineModel) Init() tea.Cmd {
	return m.start()
}

func (m InlineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		cmd, quit := m.handleKey(msg)
		m.quitting = quit
		return m, cmd
	case tickMsg:
		return m, m.handleTick(msg)
	}
	return m, nil
}

func (m InlineModel) View() string {
	line := m.line()
	if m.quitting {
		return line + "\n"
	}
	return line
}

func (m InlineModel) line() string {
	st := m.state
	pal := m.palette
	clock, prog := m.display()

	modeStyle := lipgloss.NewStyle().Bold(true).Foreground(pal.modeColor(st.Mode))
	clockStyle := lipgloss.NewStyle().Bold(true).Foreground(pal.timerColor(st))
	helpStyle := pal.help()

	icon := pal.theme.IconApp
	if st.Status == domain.StatusPaused {
		icon = pal.theme.IconPaused
	}

	parts := []string{
		icon,
		modeStyle.Render(domain.ModeLabel(st.Mode)),
		clockStyle.Render(clock),
	}

	if barWidth := m.width - inlineFixedWidth; barWidth >= 10 {
		parts = append(parts, pal.progressBar(st, barWidth).ViewAs(prog))
	}

	caption := strings.ToLower(domain.ButtonCaption(st.Status))
	parts = append(parts, helpStyle.Render(fmt.Sprintf("space %s · r reset · tab switch · q quit", caption)))
	return strings.Join(parts, "  ")
}
