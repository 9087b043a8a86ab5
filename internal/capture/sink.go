package capture

import (
	"errors"

	"github.com/wesleyorama2/framelog/internal/frame"
	"github.com/wesleyorama2/framelog/internal/stats"
)

// Error taxonomy for record sinks. Both are converted to status messages at
// the Session boundary and never abort the frame path.
var (
	// ErrSinkUnavailable means the underlying storage could not be created or opened.
	ErrSinkUnavailable = errors.New("sink unavailable")

	// ErrWriteFailure means an I/O error occurred appending a row, flushing, or
	// writing the summary.
	ErrWriteFailure = errors.New("write failure")
)

// RowWriter receives the rows of one session.
type RowWriter interface {
	// Name identifies the target to the user (e.g. the file name).
	Name() string

	// Label is the session label the target was opened with. It is passed back
	// to RecordSink.WriteSummary so the summary pairs with its row log.
	Label() string

	// WriteRow appends one sample.
	WriteRow(s frame.Sample) error

	// Close flushes buffered rows and releases the target.
	Close() error
}

// RecordSink opens per-session row targets and stores session summaries.
type RecordSink interface {
	// OpenRows opens a fresh row target for a session labelled with a
	// yyyyMMdd-HHmmss stamp. The header must already be written on success.
	OpenRows(label string) (RowWriter, error)

	// WriteSummary writes the summary of the session with the given label to a
	// fresh output.
	WriteSummary(label string, summary stats.Summary) error
}
