// Package frame turns frame-completion timestamps into frame-time samples.
package frame

import (
	"time"
)

// Timestamp is a monotonic instant in nanoseconds. Only differences between
// two timestamps are meaningful; it is never a wall-clock time.
type Timestamp int64

// Now returns a monotonic timestamp relative to the process clock origin.
func Now() Timestamp {
	return Timestamp(time.Since(origin))
}

var origin = time.Now()

// Sample is one row of the frame log.
type Sample struct {
	// WallClockMs is the wall-clock time the frame was observed, in Unix milliseconds
	WallClockMs int64 `json:"timestampMs"`

	// FrametimeMs is the time elapsed since the previous frame
	FrametimeMs float64 `json:"frametimeMs"`

	// FPS is 1000 / FrametimeMs, or 0 for non-positive frame-times
	FPS float64 `json:"fps"`
}

// Transform produces the sample for the frame completed at cur.
//
// hasPrev reports whether a previous frame exists in the current session. The
// first frame of a session has no predecessor and yields no sample. A
// non-positive delta is not an error: the sample is kept with FPS clamped to 0.
func Transform(prev Timestamp, hasPrev bool, cur Timestamp, wall time.Time) (Sample, bool) {
	if !hasPrev {
		return Sample{}, false
	}

	dtNs := int64(cur - prev)
	frametimeMs := float64(dtNs) / 1_000_000.0

	return Sample{
		WallClockMs: wall.UnixMilli(),
		FrametimeMs: frametimeMs,
		FPS:         FPS(frametimeMs),
	}, true
}

// FPS converts a frame-time in milliseconds to frames per second.
func FPS(frametimeMs float64) float64 {
	if frametimeMs <= 0 {
		return 0
	}
	return 1000.0 / frametimeMs
}
