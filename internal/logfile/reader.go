// Package logfile reads recorded frame logs back for offline analysis.
package logfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/wesleyorama2/framelog/internal/frame"
	"github.com/wesleyorama2/framelog/internal/sink"
	"github.com/wesleyorama2/framelog/internal/stats"
)

// ErrNoLogs is returned by List when the directory holds no frame logs.
var ErrNoLogs = errors.New("no frame logs found")

// ParseError reports a malformed line in a frame log.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Log is a parsed frame log.
type Log struct {
	Path    string
	Samples []frame.Sample
}

// Frametimes returns the frame-times in session order.
func (l *Log) Frametimes() []float64 {
	out := make([]float64, len(l.Samples))
	for i, s := range l.Samples {
		out[i] = s.FrametimeMs
	}
	return out
}

// Summary recomputes the session summary from the log.
func (l *Log) Summary() stats.Summary {
	return stats.Summarize(l.Frametimes())
}

// Distribution returns HDR histogram statistics for the log.
func (l *Log) Distribution() stats.FrametimeStats {
	d := stats.NewDistribution()
	for _, s := range l.Samples {
		d.Record(s.FrametimeMs)
	}
	return d.Stats()
}

// ReadFile parses the frame log at path.
func ReadFile(path string) (*Log, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open frame log: %w", err)
	}
	defer f.Close()

	samples, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}

	return &Log{Path: path, Samples: samples}, nil
}

// Read parses a frame log: the header line followed by one row per sample.
func Read(r io.Reader) ([]frame.Sample, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 3
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, &ParseError{Line: 1, Err: errors.New("missing header")}
	}
	if err != nil {
		return nil, wrapCSVError(err)
	}
	if strings.Join(header, ",") != sink.Header {
		return nil, &ParseError{Line: 1, Err: fmt.Errorf("unexpected header %q", strings.Join(header, ","))}
	}

	var samples []frame.Sample
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, wrapCSVError(err)
		}

		line, _ := reader.FieldPos(0)
		sample, err := parseRecord(record)
		if err != nil {
			return nil, &ParseError{Line: line, Err: err}
		}
		samples = append(samples, sample)
	}

	return samples, nil
}

func parseRecord(record []string) (frame.Sample, error) {
	ts, err := strconv.ParseInt(record[0], 10, 64)
	if err != nil {
		return frame.Sample{}, fmt.Errorf("invalid timestamp_ms %q", record[0])
	}
	ft, err := strconv.ParseFloat(record[1], 64)
	if err != nil {
		return frame.Sample{}, fmt.Errorf("invalid frametime_ms %q", record[1])
	}
	fps, err := strconv.ParseFloat(record[2], 64)
	if err != nil {
		return frame.Sample{}, fmt.Errorf("invalid fps %q", record[2])
	}
	return frame.Sample{WallClockMs: ts, FrametimeMs: ft, FPS: fps}, nil
}

func wrapCSVError(err error) error {
	var perr *csv.ParseError
	if errors.As(err, &perr) {
		return &ParseError{Line: perr.Line, Err: perr.Err}
	}
	return err
}

// Entry is a frame log found in a directory.
type Entry struct {
	Name string
	Path string
	Size int64
}

// List returns the frame logs in dir whose names start with prefix, sorted
// by name (session labels sort chronologically).
func List(dir, prefix string) ([]Entry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var logs []Entry
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), prefix) || filepath.Ext(e.Name()) != ".csv" {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		logs = append(logs, Entry{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}

	if len(logs) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoLogs, dir)
	}

	sort.Slice(logs, func(i, j int) bool { return logs[i].Name < logs[j].Name })
	return logs, nil
}

// Resolve maps a 1-based index from List output, or a path, to a log path.
func Resolve(dir, prefix, arg string) (string, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return arg, nil
	}

	logs, err := List(dir, prefix)
	if err != nil {
		return "", err
	}
	if n < 1 || n > len(logs) {
		return "", fmt.Errorf("log index %d out of range (1-%d)", n, len(logs))
	}
	return logs[n-1].Path, nil
}
