package stats

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize_SingleSample(t *testing.T) {
	got := Summarize([]float64{100.0})

	want := Summary{
		FrameCount:      1,
		AvgFPS:          10.0,
		P1LowFPS:        10.0,
		P01LowFPS:       10.0,
		AvgFrametimeMs:  100.0,
		P99FrametimeMs:  100.0,
		P999FrametimeMs: 100.0,
	}
	assert.Equal(t, want, got)
}

func TestSummarize_OneToThousand(t *testing.T) {
	samples := make([]float64, 1000)
	for i := range samples {
		samples[i] = float64(i + 1)
	}

	got := Summarize(samples)

	assert.Equal(t, 1000, got.FrameCount)
	assert.InDelta(t, 500.5, got.AvgFrametimeMs, 1e-9)
	assert.InDelta(t, 1000.0/500.5, got.AvgFPS, 1e-9)
	assert.Equal(t, 990.0, got.P99FrametimeMs)
	assert.InDelta(t, 1.0101, got.P1LowFPS, 1e-4)
	assert.Equal(t, 999.0, got.P999FrametimeMs)
	assert.InDelta(t, 1000.0/999.0, got.P01LowFPS, 1e-9)
}

func TestSummarize_OrderIndependent(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	samples := make([]float64, 5000)
	for i := range samples {
		samples[i] = 5 + rng.Float64()*30
	}

	want := Summarize(samples)

	for i := 0; i < 5; i++ {
		shuffled := append([]float64(nil), samples...)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		got := Summarize(shuffled)

		assert.Equal(t, want.FrameCount, got.FrameCount)
		assert.Equal(t, want.P99FrametimeMs, got.P99FrametimeMs)
		assert.Equal(t, want.P999FrametimeMs, got.P999FrametimeMs)
		assert.InDelta(t, want.AvgFrametimeMs, got.AvgFrametimeMs, 1e-9)
		assert.InDelta(t, want.AvgFPS, got.AvgFPS, 1e-9)
	}
}

func TestSummarize_DoesNotReorderInput(t *testing.T) {
	samples := []float64{30, 10, 20}
	Summarize(samples)
	assert.Equal(t, []float64{30, 10, 20}, samples)
}

func TestSummarize_Empty(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(nil))
}

func TestSummarize_ZeroFrametimes(t *testing.T) {
	got := Summarize([]float64{0, 0, 0})

	require.Equal(t, 3, got.FrameCount)
	assert.Equal(t, 0.0, got.AvgFPS)
	assert.Equal(t, 0.0, got.P1LowFPS)
	assert.Equal(t, 0.0, got.P01LowFPS)
}

func TestRankIndex(t *testing.T) {
	tests := []struct {
		n    int
		p    float64
		want int
	}{
		{1, RankP99, 0},
		{1, RankP999, 0},
		{2, RankP99, 0},
		{100, RankP99, 98},
		{100, RankP999, 98},
		{1000, RankP99, 989},
		{1000, RankP999, 998},
		{10000, RankP999, 9989},
		{0, RankP99, 0},
		{5, 1.5, 4},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, RankIndex(tt.n, tt.p), "RankIndex(%d, %v)", tt.n, tt.p)
	}
}

func TestDistribution_Percentiles(t *testing.T) {
	d := NewDistribution()
	for i := 1; i <= 100; i++ {
		d.Record(float64(i))
	}

	s := d.Stats()
	assert.Equal(t, int64(100), s.Count)

	// HDR histogram binning is accurate to 3 significant figures
	assert.InDelta(t, 50.0, Milliseconds(s.P50), 0.5)
	assert.InDelta(t, 99.0, Milliseconds(s.P99), 1.0)
	assert.InDelta(t, 1.0, Milliseconds(s.Min), 0.01)
	assert.InDelta(t, 100.0, Milliseconds(s.Max), 0.1)
	assert.InDelta(t, 50.5, Milliseconds(s.Mean), 0.5)
}

func TestDistribution_ClampsOutOfRange(t *testing.T) {
	d := NewDistribution()
	d.Record(-5)
	d.Record(10 * 60 * 1000) // ten minutes

	s := d.Stats()
	assert.Equal(t, int64(2), s.Count)
	assert.Equal(t, time.Microsecond, s.Min)
	assert.InDelta(t, 60_000.0, Milliseconds(s.Max), 60)
}

func TestDistribution_Reset(t *testing.T) {
	d := NewDistribution()
	d.Record(16.6)
	d.Reset()
	assert.Equal(t, int64(0), d.Stats().Count)
}
