package tui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xvierd/pomo/internal/domain"
)

// TestProgram_StartPauseQuit drives a full program through a start, a pause
// and a quit and checks what reached the terminal.
func TestProgram_StartPauseQuit(t *testing.T) {
	ctrl, clock := newController()
	m := NewModel(ctrl, nil, 20*time.Millisecond)

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(32, 24))

	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("25:00"))
	}, teatest.WithDuration(time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("Pause"))
	}, teatest.WithDuration(time.Second))
	clock.Advance(90 * time.Second)

	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("23:30"))
	}, teatest.WithDuration(time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("Resume"))
	}, teatest.WithDuration(time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	tm.WaitFinished(t, teatest.WithFinalTimeout(time.Second))

	final, ok := tm.FinalModel(t).(Model)
	require.True(t, ok)
	assert.Equal(t, domain.StatusPaused, final.state.Status)
	assert.Equal(t, 1410, final.state.RemainingSec)
	assert.False(t, ctrl.Armed(), "pause disarms the loop")
}

func TestProgram_InlineQuitLeavesLine(t *testing.T) {
	ctrl, _ := newController()
	m := NewInlineModel(ctrl, nil, 20*time.Millisecond)

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(100, 5))
	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("Focus"))
	}, teatest.WithDuration(time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeyTab})
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	tm.WaitFinished(t, teatest.WithFinalTimeout(time.Second))

	final := tm.FinalModel(t).(InlineModel)
	assert.Equal(t, domain.ModeBreak, final.state.Mode)
	assert.True(t, strings.HasSuffix(final.View(), "\n"))
}
