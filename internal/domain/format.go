package domain

import (
	"encoding/json"
	"fmt"
	"math"
)

// ComputeRemaining returns whole seconds left until endAtMs, rounded up and
// never negative. Rounding up keeps "00:00" off the display until the
// deadline has actually passed.
func ComputeRemaining(nowMs, endAtMs int64) int {
	if endAtMs <= nowMs {
		return 0
	}
	// The unsigned difference is exact even when endAtMs-nowMs overflows int64.
	diff := uint64(endAtMs) - uint64(nowMs)
	sec := (diff-1)/1000 + 1
	if sec > math.MaxInt {
		return math.MaxInt
	}
	return int(sec)
}

// FormatMMSS renders seconds as zero-padded minutes and seconds.
func FormatMMSS(totalSec int) string {
	if totalSec < 0 {
		totalSec = 0
	}
	return fmt.Sprintf("%02d:%02d", totalSec/60, totalSec%60)
}

// Serialize returns a compact JSON encoding of s for logs and debugging.
func Serialize(s TimerState) string {
	b, err := json.Marshal(s)
	if err != nil {
		return fmt.Sprintf("%+v", s)
	}
	return string(b)
}
