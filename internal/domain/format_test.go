package domain

import (
	"encoding/json"
	"math"
	"testing"
)

func TestComputeRemaining(t *testing.T) {
	tests := []struct {
		name  string
		now   int64
		endAt int64
		want  int
	}{
		{"exact seconds", 0, 5000, 5},
		{"fraction rounds up", 0, 4001, 5},
		{"one millisecond left", 4999, 5000, 1},
		{"at deadline", 5000, 5000, 0},
		{"past deadline", 9000, 5000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeRemaining(tt.now, tt.endAt); got != tt.want {
				t.Errorf("ComputeRemaining(%d, %d) = %d, want %d", tt.now, tt.endAt, got, tt.want)
			}
		})
	}
}

func TestComputeRemaining_ExtremeInputs(t *testing.T) {
	// endAt-now does not fit in int64 here.
	got := ComputeRemaining(math.MinInt64, math.MaxInt64)
	if want := uint64(math.MaxUint64-1)/1000 + 1; uint64(got) != want {
		t.Errorf("ComputeRemaining(MinInt64, MaxInt64) = %d, want %d", got, want)
	}
	if got := ComputeRemaining(-1, math.MaxInt64); got != math.MaxInt64/1000+1 {
		t.Errorf("ComputeRemaining(-1, MaxInt64) = %d", got)
	}
	if got := ComputeRemaining(math.MaxInt64, math.MinInt64); got != 0 {
		t.Errorf("ComputeRemaining(MaxInt64, MinInt64) = %d, want 0", got)
	}
}

func TestComputeRemaining_Monotonic(t *testing.T) {
	const endAt = int64(1_500_000)
	prev := ComputeRemaining(0, endAt)
	for now := int64(0); now <= endAt; now += 137 {
		got := ComputeRemaining(now, endAt)
		if got > prev {
			t.Fatalf("remaining went up at %d: %d > %d", now, got, prev)
		}
		prev = got
	}
}

func TestFormatMMSS(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "00:00"},
		{125, "02:05"},
		{1500, "25:00"},
		{300, "05:00"},
		{59, "00:59"},
		{-10, "00:00"},
		{6000, "100:00"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatMMSS(tt.seconds); got != tt.want {
				t.Errorf("FormatMMSS(%d) = %q, want %q", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestSerialize(t *testing.T) {
	got := Serialize(InitialState())
	want := `{"mode":"focus","status":"idle","remainingSec":1500,"endAtMs":null}`
	if got != want {
		t.Errorf("Serialize(initial) = %s, want %s", got, want)
	}

	started := Reduce(InitialState(), Start{NowMs: 1000})
	var decoded TimerState
	if err := json.Unmarshal([]byte(Serialize(started)), &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !decoded.Equal(started) {
		t.Errorf("decoded %+v, want %+v", decoded, started)
	}
}
