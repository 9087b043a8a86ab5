// Package sink provides file-backed record sinks for capture sessions.
//
// Each session writes a CSV row log named <rowPrefix><label>.csv and, when it
// has samples, a text summary named <summaryPrefix><label>.txt (plus an
// optional JSON copy). All numbers are formatted with strconv so output never
// depends on the host locale.
package sink

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/wesleyorama2/framelog/internal/capture"
	"github.com/wesleyorama2/framelog/internal/frame"
	"github.com/wesleyorama2/framelog/internal/stats"
)

// Header is the first line of every row log.
const Header = "timestamp_ms,frametime_ms,fps"

// Default file naming.
const (
	DefaultDir           = "frame_logs"
	DefaultRowPrefix     = "mc_frametimes_"
	DefaultSummaryPrefix = "summary_"
)

// maxLabelSuffix bounds the search for a free file name when several sessions
// start within the same second.
const maxLabelSuffix = 100

// Options configures a FileSink.
type Options struct {
	// Dir is the output directory, created on demand (default: frame_logs)
	Dir string

	// RowPrefix prefixes row log file names (default: mc_frametimes_)
	RowPrefix string

	// SummaryPrefix prefixes summary file names (default: summary_)
	SummaryPrefix string

	// SummaryJSON also writes <summaryPrefix><label>.json
	SummaryJSON bool
}

// FileSink writes sessions to files in a directory.
type FileSink struct {
	opts Options
}

var _ capture.RecordSink = (*FileSink)(nil)

// NewFileSink creates a file sink. The directory is not touched until a
// session starts.
func NewFileSink(opts Options) *FileSink {
	if opts.Dir == "" {
		opts.Dir = DefaultDir
	}
	if opts.RowPrefix == "" {
		opts.RowPrefix = DefaultRowPrefix
	}
	if opts.SummaryPrefix == "" {
		opts.SummaryPrefix = DefaultSummaryPrefix
	}
	return &FileSink{opts: opts}
}

// Dir returns the output directory.
func (s *FileSink) Dir() string {
	return s.opts.Dir
}

// OpenRows creates a fresh row log and writes its header.
//
// An existing file is never truncated: if the label is taken (two sessions in
// the same second) a numeric suffix is appended to it.
func (s *FileSink) OpenRows(label string) (capture.RowWriter, error) {
	if err := os.MkdirAll(s.opts.Dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	f, actual, err := s.createExclusive(label)
	if err != nil {
		return nil, err
	}

	w := &fileRows{
		file:  f,
		buf:   bufio.NewWriter(f),
		label: actual,
	}

	if _, err := w.buf.WriteString(Header + "\n"); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	if err := w.buf.Flush(); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	return w, nil
}

func (s *FileSink) createExclusive(label string) (*os.File, string, error) {
	candidate := label
	for i := 1; i <= maxLabelSuffix; i++ {
		path := filepath.Join(s.opts.Dir, s.opts.RowPrefix+candidate+".csv")
		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
		if err == nil {
			return f, candidate, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, "", fmt.Errorf("failed to create row log: %w", err)
		}
		candidate = fmt.Sprintf("%s-%d", label, i)
	}
	return nil, "", fmt.Errorf("failed to create row log: too many sessions labelled %s", label)
}

// WriteSummary writes the session summary as text, and as JSON when enabled.
func (s *FileSink) WriteSummary(label string, summary stats.Summary) error {
	if err := os.MkdirAll(s.opts.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(s.opts.Dir, s.opts.SummaryPrefix+label+".txt")
	if err := os.WriteFile(path, []byte(FormatSummary(summary)), 0644); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}

	if s.opts.SummaryJSON {
		data, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode summary: %w", err)
		}
		jsonPath := filepath.Join(s.opts.Dir, s.opts.SummaryPrefix+label+".json")
		if err := os.WriteFile(jsonPath, append(data, '\n'), 0644); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
	}

	return nil
}

// SummaryPath returns the text summary path for a label.
func (s *FileSink) SummaryPath(label string) string {
	return filepath.Join(s.opts.Dir, s.opts.SummaryPrefix+label+".txt")
}

// fileRows is a buffered CSV row log.
type fileRows struct {
	file  *os.File
	buf   *bufio.Writer
	label string
}

func (w *fileRows) Name() string  { return filepath.Base(w.file.Name()) }
func (w *fileRows) Label() string { return w.label }

// Path returns the full path of the row log.
func (w *fileRows) Path() string { return w.file.Name() }

func (w *fileRows) WriteRow(s frame.Sample) error {
	_, err := w.buf.WriteString(FormatRow(s))
	return err
}

// Close flushes buffered rows and closes the file. The file is closed even
// when the flush fails.
func (w *fileRows) Close() error {
	flushErr := w.buf.Flush()
	closeErr := w.file.Close()
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}

// FormatRow formats one CSV row, including the trailing newline.
func FormatRow(s frame.Sample) string {
	var sb strings.Builder
	sb.Grow(40)
	sb.WriteString(strconv.FormatInt(s.WallClockMs, 10))
	sb.WriteByte(',')
	sb.WriteString(strconv.FormatFloat(s.FrametimeMs, 'f', 3, 64))
	sb.WriteByte(',')
	sb.WriteString(strconv.FormatFloat(s.FPS, 'f', 2, 64))
	sb.WriteByte('\n')
	return sb.String()
}

// FormatSummary renders the human-readable summary.
func FormatSummary(s stats.Summary) string {
	var sb strings.Builder
	sb.WriteString("Frames: " + strconv.Itoa(s.FrameCount) + "\n")
	sb.WriteString("Average FPS: " + fps(s.AvgFPS) + "\n")
	sb.WriteString("1% Low FPS: " + fps(s.P1LowFPS) + "\n")
	sb.WriteString("0.1% Low FPS: " + fps(s.P01LowFPS) + "\n")
	sb.WriteString("Average Frametime (ms): " + ms(s.AvgFrametimeMs) + "\n")
	sb.WriteString("99th %ile Frametime (ms): " + ms(s.P99FrametimeMs) + "\n")
	sb.WriteString("99.9th %ile Frametime (ms): " + ms(s.P999FrametimeMs) + "\n")
	return sb.String()
}

func fps(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }
func ms(v float64) string  { return strconv.FormatFloat(v, 'f', 3, 64) }
