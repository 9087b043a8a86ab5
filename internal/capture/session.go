// Package capture implements the frame capture session.
//
// A Session is a two-state machine (Idle, Recording) driven by the host: toggle
// requests call Start/Stop (or Toggle) and every rendered frame calls OnFrame.
// While recording, each frame after the first becomes a row in the session's
// row log, and stopping summarizes the session's frame-times.
//
// # Thread Safety
//
// Session is NOT safe for concurrent use. The host must serialize calls, for
// example by driving the session from a single goroutine (see package host).
package capture

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/wesleyorama2/framelog/internal/frame"
	"github.com/wesleyorama2/framelog/internal/stats"
)

// LabelLayout is the time layout of session labels (yyyyMMdd-HHmmss).
const LabelLayout = "20060102-150405"

// State is the capture state.
type State int

const (
	StateIdle State = iota
	StateRecording
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRecording:
		return "recording"
	default:
		return "unknown"
	}
}

// Config contains the collaborators of a Session.
type Config struct {
	// Sink stores rows and summaries (required)
	Sink RecordSink

	// Status receives user-facing messages (optional)
	Status StatusSink

	// Logger receives structured logs (optional, discarded if nil)
	Logger *slog.Logger

	// Clock returns wall-clock time for labels and row timestamps (default: time.Now)
	Clock func() time.Time

	// OnSummary is called after a summary has been computed (optional)
	OnSummary func(label string, summary stats.Summary)
}

// Session owns the capture state for one host.
type Session struct {
	config Config

	state   State
	prev    frame.Timestamp
	hasPrev bool
	rows    RowWriter
	buffer  []float64

	// First row write failure of the active session, reported on Stop
	rowErr error
}

// NewSession creates an idle session.
func NewSession(config Config) *Session {
	if config.Clock == nil {
		config.Clock = time.Now
	}
	if config.Logger == nil {
		config.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if config.Status == nil {
		config.Status = StatusFunc(func(Status) {})
	}

	return &Session{
		config: config,
		state:  StateIdle,
	}
}

// State returns the current state.
func (s *Session) State() State {
	return s.state
}

// Recording reports whether a session is active.
func (s *Session) Recording() bool {
	return s.state == StateRecording
}

// SampleCount returns the number of samples buffered in the active session.
func (s *Session) SampleCount() int {
	return len(s.buffer)
}

// Target returns the name of the active row target, or "" when idle.
func (s *Session) Target() string {
	if s.rows == nil {
		return ""
	}
	return s.rows.Name()
}

// Toggle starts an idle session or stops a recording one.
func (s *Session) Toggle() error {
	if s.state == StateRecording {
		return s.Stop()
	}
	return s.Start()
}

// Start begins recording.
//
// It is a no-op while already recording. If the row target cannot be opened
// the session stays idle, a failure status is emitted, and the error (wrapping
// ErrSinkUnavailable) is returned.
func (s *Session) Start() error {
	if s.state == StateRecording {
		return nil
	}

	label := s.config.Clock().Format(LabelLayout)

	rows, err := s.config.Sink.OpenRows(label)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrSinkUnavailable, err)
		s.config.Logger.Error("failed to start capture", "label", label, "error", err)
		s.config.Status.Notify(startFailedStatus(err))
		return err
	}

	s.rows = rows
	s.buffer = make([]float64, 0, 1024)
	s.prev = 0
	s.hasPrev = false
	s.rowErr = nil
	s.state = StateRecording

	s.config.Logger.Info("capture started", "label", rows.Label(), "target", rows.Name())
	s.config.Status.Notify(startedStatus(rows.Name()))
	return nil
}

// OnFrame records the frame completed at ts. It is a no-op while idle.
//
// The first frame after Start only primes the previous timestamp. Row write
// failures are remembered and reported by Stop.
func (s *Session) OnFrame(ts frame.Timestamp) {
	if s.state != StateRecording {
		return
	}

	sample, ok := frame.Transform(s.prev, s.hasPrev, ts, s.config.Clock())
	s.prev = ts
	s.hasPrev = true

	if !ok {
		return
	}

	s.buffer = append(s.buffer, sample.FrametimeMs)

	if err := s.rows.WriteRow(sample); err != nil && s.rowErr == nil {
		s.rowErr = fmt.Errorf("%w: row: %w", ErrWriteFailure, err)
		s.config.Logger.Warn("failed to write frame row", "target", s.rows.Name(), "error", err)
	}
}

// Stop ends recording.
//
// It is a no-op while idle. The session always ends idle; teardown failures
// are reported through a stop-with-errors status and the returned error.
func (s *Session) Stop() error {
	if s.state != StateRecording {
		return nil
	}

	rows, buffer, rowErr := s.rows, s.buffer, s.rowErr
	s.state = StateIdle
	s.prev = 0
	s.hasPrev = false
	s.rows = nil
	s.buffer = nil
	s.rowErr = nil

	var errs []error
	if rowErr != nil {
		errs = append(errs, rowErr)
	}

	if err := rows.Close(); err != nil {
		errs = append(errs, fmt.Errorf("%w: close %s: %w", ErrWriteFailure, rows.Name(), err))
	}

	if len(buffer) > 0 {
		summary := stats.Summarize(buffer)
		if err := s.config.Sink.WriteSummary(rows.Label(), summary); err != nil {
			errs = append(errs, fmt.Errorf("%w: summary: %w", ErrWriteFailure, err))
		}
		if s.config.OnSummary != nil {
			s.config.OnSummary(rows.Label(), summary)
		}
		s.config.Logger.Info("capture summarized",
			"label", rows.Label(),
			"frames", summary.FrameCount,
			"avg_fps", summary.AvgFPS,
			"p1_low_fps", summary.P1LowFPS,
			"p01_low_fps", summary.P01LowFPS,
		)
	}

	if err := errors.Join(errs...); err != nil {
		s.config.Logger.Error("capture stopped with errors", "label", rows.Label(), "error", err)
		s.config.Status.Notify(stoppedWithErrorsStatus(err))
		return err
	}

	s.config.Logger.Info("capture stopped", "label", rows.Label(), "frames", len(buffer))
	s.config.Status.Notify(stoppedStatus())
	return nil
}
