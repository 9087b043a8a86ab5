package main

import (
	"fmt"
	"os"
	"time"

	"github.com/wesleyorama2/framelog/internal/frame"
	"github.com/wesleyorama2/framelog/internal/host"
	"github.com/wesleyorama2/framelog/internal/logfile"
	"github.com/wesleyorama2/framelog/internal/report"
)

func main() {
	log := createSampleLog(2 * time.Minute)

	outputPath := "sample-framelog-report.html"
	if len(os.Args) > 1 {
		outputPath = os.Args[1]
	}

	err := report.GenerateHTML(report.Build(log, report.DefaultMaxPoints), outputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Sample report generated: %s (%d frames)\n", outputPath, len(log.Samples))
}

// createSampleLog simulates a 144 FPS session with jitter and a stutter
// every few seconds, without waiting in real time.
func createSampleLog(length time.Duration) *logfile.Log {
	source := host.NewSyntheticSource(host.SyntheticConfig{
		FPS:          144,
		Jitter:       0.15,
		StutterEvery: 500,
		Seed:         42,
	})

	start := time.Now().Add(-length)
	log := &logfile.Log{Path: "mc_frametimes_" + start.Format("20060102-150405") + ".csv"}

	var prev, cur frame.Timestamp
	hasPrev := false
	for elapsed := time.Duration(0); elapsed < length; {
		d := source.Next()
		elapsed += d
		cur = prev + frame.Timestamp(d)

		if sample, ok := frame.Transform(prev, hasPrev, cur, start.Add(elapsed)); ok {
			log.Samples = append(log.Samples, sample)
		}
		prev, hasPrev = cur, true
	}

	return log
}
