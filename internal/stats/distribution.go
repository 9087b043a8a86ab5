package stats

import (
	"math"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// DistributionConfig contains configuration for a frame-time histogram.
type DistributionConfig struct {
	// HistogramMin is the minimum recordable value in microseconds (default: 1)
	HistogramMin int64

	// HistogramMax is the maximum recordable value in microseconds (default: 60000000 = 1 minute)
	HistogramMax int64

	// HistogramSigFigs is the number of significant figures (default: 3)
	HistogramSigFigs int
}

// DefaultDistributionConfig returns the default configuration.
func DefaultDistributionConfig() DistributionConfig {
	return DistributionConfig{
		HistogramMin:     1,
		HistogramMax:     60_000_000, // 1 minute in microseconds
		HistogramSigFigs: 3,
	}
}

// Distribution accumulates frame-times in an HDR histogram.
//
// Unlike Summarize it does not keep the samples, so it is suitable for very
// long logs. Percentiles are approximate to the configured significant figures.
// Distribution is not safe for concurrent use.
type Distribution struct {
	hist   *hdrhistogram.Histogram
	config DistributionConfig
}

// FrametimeStats contains histogram-derived frame-time statistics.
type FrametimeStats struct {
	Count  int64         `json:"count"`
	Min    time.Duration `json:"min"`
	Max    time.Duration `json:"max"`
	Mean   time.Duration `json:"mean"`
	StdDev time.Duration `json:"stdDev"`
	P50    time.Duration `json:"p50"`
	P90    time.Duration `json:"p90"`
	P95    time.Duration `json:"p95"`
	P99    time.Duration `json:"p99"`
	P999   time.Duration `json:"p999"`
}

// NewDistribution creates a distribution with the default configuration.
func NewDistribution() *Distribution {
	return NewDistributionWithConfig(DefaultDistributionConfig())
}

// NewDistributionWithConfig creates a distribution with a custom configuration.
func NewDistributionWithConfig(config DistributionConfig) *Distribution {
	return &Distribution{
		hist:   hdrhistogram.New(config.HistogramMin, config.HistogramMax, config.HistogramSigFigs),
		config: config,
	}
}

// Record adds one frame-time in milliseconds.
func (d *Distribution) Record(frametimeMs float64) {
	micros := int64(math.Round(frametimeMs * 1000))

	// Clamp to valid range
	if micros < d.config.HistogramMin {
		micros = d.config.HistogramMin
	}
	if micros > d.config.HistogramMax {
		micros = d.config.HistogramMax
	}

	d.hist.RecordValue(micros)
}

// Stats returns the current statistics.
func (d *Distribution) Stats() FrametimeStats {
	return FrametimeStats{
		Count:  d.hist.TotalCount(),
		Min:    time.Duration(d.hist.Min()) * time.Microsecond,
		Max:    time.Duration(d.hist.Max()) * time.Microsecond,
		Mean:   time.Duration(d.hist.Mean()) * time.Microsecond,
		StdDev: time.Duration(d.hist.StdDev()) * time.Microsecond,
		P50:    time.Duration(d.hist.ValueAtQuantile(50)) * time.Microsecond,
		P90:    time.Duration(d.hist.ValueAtQuantile(90)) * time.Microsecond,
		P95:    time.Duration(d.hist.ValueAtQuantile(95)) * time.Microsecond,
		P99:    time.Duration(d.hist.ValueAtQuantile(99)) * time.Microsecond,
		P999:   time.Duration(d.hist.ValueAtQuantile(99.9)) * time.Microsecond,
	}
}

// Reset clears all recorded values.
func (d *Distribution) Reset() {
	d.hist.Reset()
}

// Milliseconds converts a histogram duration back to fractional milliseconds.
func Milliseconds(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
