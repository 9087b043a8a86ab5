package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wesleyorama2/framelog/internal/frame"
	"github.com/wesleyorama2/framelog/internal/logfile"
)

func testLog(n int) *logfile.Log {
	samples := make([]frame.Sample, n)
	for i := range samples {
		ft := 10.0
		if i%50 == 49 {
			ft = 40.0
		}
		samples[i] = frame.Sample{
			WallClockMs: 1_710_000_000_000 + int64(i)*10,
			FrametimeMs: ft,
			FPS:         frame.FPS(ft),
		}
	}
	return &logfile.Log{Path: "/tmp/frame_logs/mc_frametimes_20240309-140507.csv", Samples: samples}
}

func TestBuild(t *testing.T) {
	r := Build(testLog(1000), 0)

	assert.Equal(t, "mc_frametimes_20240309-140507.csv", r.Name)
	assert.Equal(t, 1000, r.Summary.FrameCount)
	assert.Equal(t, 40.0, r.Summary.P99FrametimeMs)
	assert.Equal(t, int64(1000), r.Distribution.Count)
	assert.Equal(t, 9990*time.Millisecond, r.Duration)
	assert.Len(t, r.Series, 1000)
}

func TestBuild_DownsampleKeepsWorstFrame(t *testing.T) {
	r := Build(testLog(1000), 10)

	require.Len(t, r.Series, 10)
	for _, p := range r.Series {
		assert.Equal(t, 40.0, p.FrametimeMs)
		assert.Equal(t, 25.0, p.FPS)
	}
	assert.Equal(t, int64(490), r.Series[0].OffsetMs)
}

func TestBuild_Empty(t *testing.T) {
	r := Build(&logfile.Log{Path: "empty.csv"}, 100)
	assert.Equal(t, 0, r.Summary.FrameCount)
	assert.NotNil(t, r.Series)
	assert.Empty(t, r.Series)
	assert.Equal(t, time.Duration(0), r.Duration)
}

func TestWriteJSONAndQuery(t *testing.T) {
	r := Build(testLog(100), 0)
	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, WriteJSON(r, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	got, err := Query(string(data), "summary.frames")
	require.NoError(t, err)
	assert.Equal(t, "100", got)

	got, err = Query(string(data), "$.summary.p99FrametimeMs")
	require.NoError(t, err)
	assert.Equal(t, "40", got)

	got, err = Query(string(data), "$.series[1].frametimeMs")
	require.NoError(t, err)
	assert.Equal(t, "10", got)

	got, err = Query(string(data), "$['name']")
	require.NoError(t, err)
	assert.Equal(t, "mc_frametimes_20240309-140507.csv", got)
}

func TestQuery_Errors(t *testing.T) {
	_, err := Query("", "a")
	assert.Error(t, err)

	_, err = Query(`{"a":1}`, "")
	assert.Error(t, err)

	_, err = Query(`{"a":`, "a")
	assert.Error(t, err)

	_, err = Query(`{"a":1}`, "b")
	assert.Error(t, err)

	got, err := Query(`{"a":null}`, "a")
	require.NoError(t, err)
	assert.Equal(t, "null", got)
}

func TestToGjsonPath(t *testing.T) {
	tests := map[string]string{
		"$":                  "@this",
		"$.summary.avgFps":   "summary.avgFps",
		"$.series[3].fps":    "series.3.fps",
		`$["summary"]["x"]`:  "summary.x",
		"summary.p01LowFps":  "summary.p01LowFps",
		"series.#.frametime": "series.#.frametime",
	}
	for in, want := range tests {
		assert.Equal(t, want, toGjsonPath(in), "toGjsonPath(%q)", in)
	}
}

func TestGenerateHTMLString(t *testing.T) {
	html, err := GenerateHTMLString(Build(testLog(200), 0))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, "mc_frametimes_20240309-140507.csv - Frame Time Report")
	assert.Contains(t, html, "frametimeChart")
	assert.Contains(t, html, `"frametimeMs":40`)
	assert.Contains(t, html, "<td>40.000</td>")
}

func TestGenerateHTML_Nil(t *testing.T) {
	_, err := GenerateHTMLString(nil)
	assert.Error(t, err)
}

func TestGenerateHTML_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.html")
	require.NoError(t, GenerateHTML(Build(testLog(10), 0), path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "500ms", formatDuration(500*time.Millisecond))
	assert.Equal(t, "12.5s", formatDuration(12500*time.Millisecond))
	assert.Equal(t, "2m", formatDuration(2*time.Minute))
	assert.Equal(t, "1h 5m", formatDuration(65*time.Minute))
}
