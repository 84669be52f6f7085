package ports

import "time"

// Clock supplies wall-clock time to the timer adapter. Tests inject a fixed
// or stepped clock so that every (action, now) sequence is reproducible.
type Clock interface {
	Now() time.Time
}

// SystemClock is the Clock backed by time.Now.
var SystemClock Clock = systemClock{}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// NowMs returns the clock reading in milliseconds since the epoch.
func NowMs(c Clock) int64 {
	return c.Now().UnixMilli()
}
