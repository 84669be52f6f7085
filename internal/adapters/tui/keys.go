package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/xvierd/pomo/internal/domain"
	"github.com/xvierd/pomo/internal/ports"
)

// keyMap binds keys to timer gestures.
type keyMap struct {
	Toggle key.Binding
	Reset  key.Binding
	Focus  key.Binding
	Break  key.Binding
	Switch key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Toggle: key.NewBinding(
			key.WithKeys(" ", "s", "enter"),
			key.WithHelp("space", "start"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Focus: key.NewBinding(
			key.WithKeys("1", "f"),
			key.WithHelp("1", "focus"),
		),
		Break: key.NewBinding(
			key.WithKeys("2", "b"),
			key.WithHelp("2", "break"),
		),
		Switch: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "switch"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// forStatus relabels the toggle binding after the button caption.
func (k keyMap) forStatus(s domain.Status) keyMap {
	k.Toggle.SetHelp("space", strings.ToLower(domain.ButtonCaption(s)))
	return k
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Reset, k.Switch, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Reset},
		{k.Focus, k.Break, k.Switch},
		{k.Quit},
	}
}

// command resolves a key press to a timer gesture.
func (k keyMap) command(msg tea.KeyMsg) (ports.TimerCommand, bool) {
	switch {
	case key.Matches(msg, k.Quit):
		return ports.CmdQuit, true
	case key.Matches(msg, k.Toggle):
		return ports.CmdToggle, true
	case key.Matches(msg, k.Reset):
		return ports.CmdReset, true
	case key.Matches(msg, k.Focus):
		return ports.CmdFocus, true
	case key.Matches(msg, k.Break):
		return ports.CmdBreak, true
	case key.Matches(msg, k.Switch):
		return ports.CmdSwitch, true
	}
	return "", false
}
