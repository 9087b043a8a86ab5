// Package report builds analysis reports for recorded frame logs.
//
// A Report carries the session summary, HDR distribution, and a downsampled
// frame-time series. It can be written as JSON (and queried with gjson paths)
// or rendered as a standalone HTML page.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/wesleyorama2/framelog/internal/logfile"
	"github.com/wesleyorama2/framelog/internal/stats"
)

// DefaultMaxPoints bounds the series length in reports.
const DefaultMaxPoints = 2000

// Report is the analysis of one frame log.
type Report struct {
	Name         string               `json:"name"`
	Source       string               `json:"source"`
	GeneratedAt  time.Time            `json:"generatedAt"`
	Duration     time.Duration        `json:"duration"`
	Summary      stats.Summary        `json:"summary"`
	Distribution stats.FrametimeStats `json:"distribution"`
	Series       []Point              `json:"series"`
}

// Point is one series entry. When the log is downsampled, each point holds
// the worst frame of its bucket so stutters stay visible.
type Point struct {
	// OffsetMs is the wall-clock offset from the first sample
	OffsetMs    int64   `json:"offsetMs"`
	FrametimeMs float64 `json:"frametimeMs"`
	FPS         float64 `json:"fps"`
}

// Build creates a report for a parsed log.
func Build(log *logfile.Log, maxPoints int) *Report {
	if maxPoints <= 0 {
		maxPoints = DefaultMaxPoints
	}

	r := &Report{
		Name:         filepath.Base(log.Path),
		Source:       log.Path,
		GeneratedAt:  time.Now(),
		Summary:      log.Summary(),
		Distribution: log.Distribution(),
		Series:       downsample(log, maxPoints),
	}

	if n := len(log.Samples); n > 1 {
		r.Duration = time.Duration(log.Samples[n-1].WallClockMs-log.Samples[0].WallClockMs) * time.Millisecond
	}

	return r
}

func downsample(log *logfile.Log, maxPoints int) []Point {
	n := len(log.Samples)
	if n == 0 {
		return []Point{}
	}

	first := log.Samples[0].WallClockMs
	bucket := (n + maxPoints - 1) / maxPoints

	points := make([]Point, 0, (n+bucket-1)/bucket)
	for start := 0; start < n; start += bucket {
		end := start + bucket
		if end > n {
			end = n
		}
		worst := log.Samples[start]
		for _, s := range log.Samples[start+1 : end] {
			if s.FrametimeMs > worst.FrametimeMs {
				worst = s
			}
		}
		points = append(points, Point{
			OffsetMs:    worst.WallClockMs - first,
			FrametimeMs: worst.FrametimeMs,
			FPS:         worst.FPS,
		})
	}
	return points
}

// JSON returns the indented JSON encoding of the report.
func (r *Report) JSON() ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}
	return data, nil
}

// WriteJSON writes the report as JSON to outputPath.
func WriteJSON(r *Report, outputPath string) error {
	data, err := r.JSON()
	if err != nil {
		return err
	}
	if err := os.WriteFile(outputPath, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write JSON report: %w", err)
	}
	return nil
}
