// Package stats computes end-of-session frame-time statistics.
//
// Summarize implements the fixed-rank percentile summary written alongside
// every recording. Distribution adds HDR-histogram backed percentiles for
// offline analysis and reports.
package stats

import (
	"math"
	"sort"
)

// Percentile ranks feeding the "1% low" and "0.1% low" FPS figures.
const (
	RankP99  = 0.99
	RankP999 = 0.999
)

// Summary is the per-session statistics record.
type Summary struct {
	FrameCount      int     `json:"frames"`
	AvgFPS          float64 `json:"avgFps"`
	P1LowFPS        float64 `json:"p1LowFps"`
	P01LowFPS       float64 `json:"p01LowFps"`
	AvgFrametimeMs  float64 `json:"avgFrametimeMs"`
	P99FrametimeMs  float64 `json:"p99FrametimeMs"`
	P999FrametimeMs float64 `json:"p999FrametimeMs"`
}

// Summarize computes the session summary from frame-times in milliseconds.
//
// The input is copied before sorting so callers keep their session order.
// An empty input yields a zero Summary.
func Summarize(frametimesMs []float64) Summary {
	n := len(frametimesMs)
	if n == 0 {
		return Summary{}
	}

	sorted := make([]float64, n)
	copy(sorted, frametimesMs)
	sort.Float64s(sorted)

	var sum float64
	for _, ft := range sorted {
		sum += ft
	}
	avg := sum / float64(n)

	p99 := sorted[RankIndex(n, RankP99)]
	p999 := sorted[RankIndex(n, RankP999)]

	return Summary{
		FrameCount:      n,
		AvgFPS:          invert(avg),
		P1LowFPS:        invert(p99),
		P01LowFPS:       invert(p999),
		AvgFrametimeMs:  avg,
		P99FrametimeMs:  p99,
		P999FrametimeMs: p999,
	}
}

// RankIndex returns the zero-based index floor(n*p)-1 clamped into [0, n-1].
func RankIndex(n int, p float64) int {
	if n <= 0 {
		return 0
	}
	idx := int(math.Floor(float64(n)*p)) - 1
	if idx < 0 {
		return 0
	}
	if idx > n-1 {
		return n - 1
	}
	return idx
}

// invert converts a frame-time to FPS, with 0 for a non-positive frame-time.
func invert(frametimeMs float64) float64 {
	if frametimeMs <= 0 {
		return 0
	}
	return 1000.0 / frametimeMs
}
