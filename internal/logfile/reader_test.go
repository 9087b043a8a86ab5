package logfile

import (
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wesleyorama2/framelog/internal/frame"
	"github.com/wesleyorama2/framelog/internal/sink"
)

const sampleLog = `timestamp_ms,frametime_ms,fps
1710000000010,10.000,100.00
1710000000030,20.000,50.00
1710000000035,5.000,200.00
`

func TestRead(t *testing.T) {
	samples, err := Read(strings.NewReader(sampleLog))
	require.NoError(t, err)
	require.Len(t, samples, 3)
	assert.Equal(t, frame.Sample{WallClockMs: 1710000000030, FrametimeMs: 20, FPS: 50}, samples[1])
}

func TestRead_RoundTripsSinkFormat(t *testing.T) {
	var sb strings.Builder
	sb.WriteString(sink.Header + "\n")
	want := []frame.Sample{
		{WallClockMs: 1, FrametimeMs: 16.667, FPS: 60.0},
		{WallClockMs: 2, FrametimeMs: 6.944, FPS: 144.01},
	}
	for _, s := range want {
		sb.WriteString(sink.FormatRow(s))
	}

	got, err := Read(strings.NewReader(sb.String()))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRead_HeaderOnly(t *testing.T) {
	samples, err := Read(strings.NewReader(sink.Header + "\n"))
	require.NoError(t, err)
	assert.Empty(t, samples)
}

func TestRead_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		line int
	}{
		{"empty", "", 1},
		{"bad header", "a,b,c\n1,2,3\n", 1},
		{"bad frametime", sink.Header + "\n1,2.0,3.0\n2,abc,3.0\n", 3},
		{"bad timestamp", sink.Header + "\nnow,2.0,3.0\n", 2},
		{"field count", sink.Header + "\n1,2.0\n", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.data))
			require.Error(t, err)

			var perr *ParseError
			require.True(t, errors.As(err, &perr), "got %T: %v", err, err)
			assert.Equal(t, tt.line, perr.Line)
		})
	}

	_, err := Read(strings.NewReader(sink.Header + "\n1,2.0\n"))
	assert.True(t, errors.Is(err, csv.ErrFieldCount))
}

func TestReadFile_SummaryAndDistribution(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mc_frametimes_20240309-140507.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleLog), 0644))

	log, err := ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, []float64{10, 20, 5}, log.Frametimes())

	summary := log.Summary()
	assert.Equal(t, 3, summary.FrameCount)
	assert.InDelta(t, 35.0/3, summary.AvgFrametimeMs, 1e-9)
	assert.Equal(t, 10.0, summary.P99FrametimeMs)

	dist := log.Distribution()
	assert.Equal(t, int64(3), dist.Count)
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"mc_frametimes_20240309-140507.csv",
		"mc_frametimes_20240101-000000.csv",
		"summary_20240309-140507.txt",
		"notes.csv",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(sampleLog), 0644))
	}

	logs, err := List(dir, "mc_frametimes_")
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "mc_frametimes_20240101-000000.csv", logs[0].Name)
	assert.Equal(t, int64(len(sampleLog)), logs[1].Size)

	path, err := Resolve(dir, "mc_frametimes_", "2")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "mc_frametimes_20240309-140507.csv"), path)

	_, err = Resolve(dir, "mc_frametimes_", "3")
	assert.Error(t, err)

	path, err = Resolve(dir, "mc_frametimes_", "some/file.csv")
	require.NoError(t, err)
	assert.Equal(t, "some/file.csv", path)
}

func TestList_EmptyAndMissing(t *testing.T) {
	_, err := List(t.TempDir(), "mc_frametimes_")
	assert.True(t, errors.Is(err, ErrNoLogs))

	_, err = List(filepath.Join(t.TempDir(), "missing"), "mc_frametimes_")
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrNoLogs))
}
