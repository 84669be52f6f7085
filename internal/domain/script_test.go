package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAction(t *testing.T) {
	tests := []struct {
		in   string
		want Action
	}{
		{"start@0", Start{NowMs: 0}},
		{"PAUSE@1495000", Pause{NowMs: 1_495_000}},
		{" tick@1500000 ", Tick{NowMs: 1_500_000}},
		{"reset", Reset{}},
		{"mode=break", SetMode{Mode: ModeBreak}},
		{"mode=lunch", SetMode{Mode: "lunch"}},
		{"MODE=FOCUS", SetMode{Mode: "FOCUS"}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAction(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseAction_Errors(t *testing.T) {
	for _, in := range []string{"", "start", "tick@soon", "jump@5"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseAction(in)
			assert.True(t, errors.Is(err, ErrInvalidAction), "err = %v", err)
		})
	}
}

func TestFormatAction_RoundTrip(t *testing.T) {
	for _, a := range []Action{Start{NowMs: 12}, Pause{NowMs: 34}, Tick{NowMs: 56}, Reset{}, SetMode{Mode: ModeFocus}} {
		got, err := ParseAction(FormatAction(a))
		require.NoError(t, err)
		assert.Equal(t, a, got)
	}
	assert.Equal(t, "nudge", FormatAction(nudge{}))
}

func TestFormatAction_RoundTripKeepsModeCase(t *testing.T) {
	a := SetMode{Mode: "Break"}
	got, err := ParseAction(FormatAction(a))
	require.NoError(t, err)
	assert.Equal(t, a, got)

	// "Break" is not a known mode, so both apply as no-ops.
	assert.Equal(t, Reduce(InitialState(), a), Reduce(InitialState(), got))
	assert.Equal(t, InitialState(), Reduce(InitialState(), got))
}

func TestParseScript_ReportsStep(t *testing.T) {
	_, err := ParseScript([]string{"start@0", "bogus"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "step 2")
}

func TestFold(t *testing.T) {
	actions, err := ParseScript([]string{"start@0", "tick@1500000", "tick@1500000", "pause@1600000"})
	require.NoError(t, err)

	states := Fold(InitialState(), actions)
	require.Len(t, states, 4)
	assert.Equal(t, ModeBreak, states[1].Mode)
	assert.Equal(t, ModeBreak, states[2].Mode)
	assert.Equal(t, TimerState{Mode: ModeBreak, Status: StatusPaused, RemainingSec: 200}, states[3])
}
