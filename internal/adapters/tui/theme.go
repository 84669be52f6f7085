package tui

import (
	"reflect"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/xvierd/pomo/internal/config"
	"github.com/xvierd/pomo/internal/domain"
)

// resolveTheme fills any empty string fields in the given ThemeConfig with defaults.
// If theme is nil, returns the full default theme.
func resolveTheme(theme *config.ThemeConfig) config.ThemeConfig {
	defaults := config.DefaultThemeConfig()
	if theme == nil {
		return defaults
	}
	resolved := *theme
	rv := reflect.ValueOf(&resolved).Elem()
	dv := reflect.ValueOf(defaults)
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if f.Kind() == reflect.String && f.String() == "" {
			f.SetString(dv.Field(i).String())
		}
	}
	return resolved
}

type palette struct {
	theme config.ThemeConfig
}

// modeColor is the accent of a mode regardless of status.
func (p palette) modeColor(m domain.Mode) lipgloss.Color {
	if m == domain.ModeBreak {
		return lipgloss.Color(p.theme.ColorBreak)
	}
	return lipgloss.Color(p.theme.ColorFocus)
}

// timerColor dims the clock while paused.
func (p palette) timerColor(s domain.TimerState) lipgloss.Color {
	if s.Status == domain.StatusPaused {
		return lipgloss.Color(p.theme.ColorPaused)
	}
	return p.modeColor(s.Mode)
}

func (p palette) progressBar(s domain.TimerState, width int) progress.Model {
	var bar progress.Model
	switch {
	case s.Status == domain.StatusPaused:
		bar = progress.New(progress.WithGradient(p.theme.PausedGradientStart, p.theme.PausedGradientEnd))
	case s.Mode == domain.ModeBreak:
		bar = progress.New(progress.WithGradient(p.theme.BreakGradientStart, p.theme.BreakGradientEnd))
	default:
		bar = progress.New(progress.WithGradient(p.theme.FocusGradientStart, p.theme.FocusGradientEnd))
	}
	bar.Width = width
	return bar
}

func (p palette) help() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(p.theme.ColorHelp))
}

// tabs renders the Focus and Break tabs with the active one highlighted.
func (p palette) tabs(active domain.Mode) string {
	modes := []domain.Mode{domain.ModeFocus, domain.ModeBreak}
	rendered := make([]string, 0, len(modes))
	for _, m := range modes {
		style := lipgloss.NewStyle().Padding(0, 1)
		if m == active {
			style = style.Bold(true).
				Foreground(lipgloss.Color("#FFFFFF")).
				Background(p.modeColor(m))
		} else {
			style = style.Foreground(lipgloss.Color(p.theme.ColorTabInactive))
		}
		rendered = append(rendered, style.Render(domain.ModeLabel(m)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered[0], " ", rendered[1])
}
