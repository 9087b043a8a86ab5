package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wesleyorama2/framelog/internal/logfile"
	"github.com/wesleyorama2/framelog/internal/report"
)

const testLog = "timestamp_ms,frametime_ms,fps\n" +
	"1000,10.000,100.00\n" +
	"1020,20.000,50.00\n" +
	"1050,30.000,33.33\n"

// run executes the command tree with args and returns its output.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append(args, "--no-color", "--log-file", filepath.Join(t.TempDir(), "framelog.log")))

	err := root.Execute()
	return out.String(), err
}

func writeLog(t *testing.T, dir, name, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRootCmd_Commands(t *testing.T) {
	root := NewRootCmd()

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"record", "list", "analyze", "report", "query", "watch"} {
		assert.Contains(t, names, want)
	}
}

func TestRecord_StartsImmediatelyAndStopsAfterDuration(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, "",
		"record", "--dir", dir, "--start",
		"--duration", "500ms", "--fps", "100", "--jitter", "0", "--seed", "1")
	require.NoError(t, err)

	logs, err := logfile.List(dir, "mc_frametimes_")
	require.NoError(t, err)
	require.Len(t, logs, 1)

	log, err := logfile.ReadFile(logs[0].Path)
	require.NoError(t, err)
	assert.NotEmpty(t, log.Samples)

	summaries, err := filepath.Glob(filepath.Join(dir, "summary_*.txt"))
	require.NoError(t, err)
	assert.Len(t, summaries, 1)

	assert.Contains(t, out, "[FrameLogger] START ("+logs[0].Name+")")
	assert.Contains(t, out, "[FrameLogger] STOP")
	assert.Contains(t, out, "Average FPS:")
}

func TestRecord_QuitFromInput(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, "s\nq\n", "record", "--dir", dir, "--fps", "30")
	require.NoError(t, err)

	logs, err := logfile.List(dir, "mc_frametimes_")
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Contains(t, out, "[FrameLogger] STOP")
}

func TestRecord_InvalidFlags(t *testing.T) {
	_, err := run(t, "", "record", "--dir", t.TempDir(), "--jitter", "2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "simulate.jitter")
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	writeLog(t, dir, "mc_frametimes_20240309-140507.csv", testLog)
	writeLog(t, dir, "mc_frametimes_20240309-150000.csv", testLog)
	writeLog(t, dir, "summary_20240309-140507.txt", "Frames: 2\n")

	out, err := run(t, "", "list", "--dir", dir)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "1. mc_frametimes_20240309-140507.csv")
	assert.Contains(t, lines[1], "2. mc_frametimes_20240309-150000.csv")
}

func TestList_Empty(t *testing.T) {
	_, err := run(t, "", "list", "--dir", t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, logfile.ErrNoLogs))
}

func TestAnalyze_ByIndex(t *testing.T) {
	dir := t.TempDir()
	writeLog(t, dir, "mc_frametimes_20240309-140507.csv", testLog)

	out, err := run(t, "", "analyze", "1", "--dir", dir)
	require.NoError(t, err)

	assert.Contains(t, out, "Frames:")
	assert.Contains(t, out, "50.00")
	assert.Contains(t, out, "Frame-time distribution (ms)")
}

func TestAnalyze_NewestAsJSON(t *testing.T) {
	dir := t.TempDir()
	writeLog(t, dir, "mc_frametimes_20240309-140507.csv", "timestamp_ms,frametime_ms,fps\n1,5.000,200.00\n")
	writeLog(t, dir, "mc_frametimes_20240309-150000.csv", testLog)

	out, err := run(t, "", "analyze", "--json", "--dir", dir)
	require.NoError(t, err)

	frames, err := report.Query(out, "summary.frames")
	require.NoError(t, err)
	assert.Equal(t, "3", frames)

	name, err := report.Query(out, "$.name")
	require.NoError(t, err)
	assert.Equal(t, "mc_frametimes_20240309-150000.csv", name)
}

func TestAnalyze_BadLog(t *testing.T) {
	dir := t.TempDir()
	path := writeLog(t, dir, "broken.csv", "not,a,header\n")

	_, err := run(t, "", "analyze", path, "--dir", dir)
	require.Error(t, err)

	var perr *logfile.ParseError
	assert.True(t, errors.As(err, &perr))
}

func TestReportAndQuery(t *testing.T) {
	dir := t.TempDir()
	writeLog(t, dir, "mc_frametimes_20240309-140507.csv", testLog)
	jsonPath := filepath.Join(dir, "report.json")
	htmlPath := filepath.Join(dir, "report.html")

	_, err := run(t, "", "report", "1", "--dir", dir, "-o", jsonPath)
	require.NoError(t, err)
	_, err = run(t, "", "report", "1", "--dir", dir, "-o", htmlPath)
	require.NoError(t, err)

	html, err := os.ReadFile(htmlPath)
	require.NoError(t, err)
	assert.Contains(t, string(html), "frametimeChart")

	out, err := run(t, "", "query", jsonPath, "summary.avgFrametimeMs")
	require.NoError(t, err)
	assert.Equal(t, "20", strings.TrimSpace(out))

	out, err = run(t, "", "query", jsonPath, "$.series[2].frametimeMs")
	require.NoError(t, err)
	assert.Equal(t, "30", strings.TrimSpace(out))
}

func TestReport_DefaultOutputNextToLog(t *testing.T) {
	dir := t.TempDir()
	writeLog(t, dir, "mc_frametimes_20240309-140507.csv", testLog)

	_, err := run(t, "", "report", "--dir", dir)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "mc_frametimes_20240309-140507.html"))
}

func TestReport_UnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	writeLog(t, dir, "mc_frametimes_20240309-140507.csv", testLog)

	_, err := run(t, "", "report", "1", "--dir", dir, "-o", filepath.Join(dir, "report.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported report format")
}

func TestQuery_MissingPath(t *testing.T) {
	path := writeLog(t, t.TempDir(), "summary.json", `{"frames": 3}`)

	_, err := run(t, "", "query", path, "avgFps")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "path not found")
}

func TestConfigFileWithFlagOverride(t *testing.T) {
	base := t.TempDir()
	fromFile := filepath.Join(base, "from-file")
	fromFlag := filepath.Join(base, "from-flag")
	writeLog(t, fromFile, "mc_frametimes_a.csv", testLog)
	writeLog(t, fromFlag, "frames_b.csv", testLog)

	configPath := writeLog(t, base, "framelog.yaml", "output:\n  dir: "+fromFile+"\n  rowPrefix: frames_\n")

	_, err := run(t, "", "list", "--config", configPath)
	require.Error(t, err)
	assert.True(t, errors.Is(err, logfile.ErrNoLogs))

	out, err := run(t, "", "list", "--config", configPath, "--dir", fromFlag)
	require.NoError(t, err)
	assert.Contains(t, out, "frames_b.csv")
}

func TestConfigFileInvalid(t *testing.T) {
	configPath := writeLog(t, t.TempDir(), "framelog.yaml", "simulate:\n  fps: -1\n")

	_, err := run(t, "", "list", "--config", configPath)
	require.Error(t, err)
}
