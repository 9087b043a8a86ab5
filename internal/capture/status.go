package capture

import "fmt"

// StatusKind identifies a user-facing status message.
type StatusKind int

const (
	StatusStarted StatusKind = iota
	StatusStartFailed
	StatusStopped
	StatusStoppedWithErrors
)

// String returns the string representation of the kind.
func (k StatusKind) String() string {
	switch k {
	case StatusStarted:
		return "started"
	case StatusStartFailed:
		return "start-failed"
	case StatusStopped:
		return "stopped"
	case StatusStoppedWithErrors:
		return "stopped-with-errors"
	default:
		return "unknown"
	}
}

// IsError reports whether the kind describes a failure.
func (k StatusKind) IsError() bool {
	return k == StatusStartFailed || k == StatusStoppedWithErrors
}

// Status is a short message for the user.
type Status struct {
	Kind    StatusKind
	Message string

	// Target is the row target name, set for StatusStarted
	Target string

	// Err is the failure, set for error kinds
	Err error
}

// StatusSink receives status messages.
type StatusSink interface {
	Notify(s Status)
}

// StatusFunc adapts a function to StatusSink.
type StatusFunc func(Status)

// Notify calls f(s).
func (f StatusFunc) Notify(s Status) {
	f(s)
}

const statusPrefix = "[FrameLogger]"

func startedStatus(target string) Status {
	return Status{
		Kind:    StatusStarted,
		Message: fmt.Sprintf("%s START (%s)", statusPrefix, target),
		Target:  target,
	}
}

func startFailedStatus(err error) Status {
	return Status{
		Kind:    StatusStartFailed,
		Message: fmt.Sprintf("%s FAILED TO START: %v", statusPrefix, err),
		Err:     err,
	}
}

func stoppedStatus() Status {
	return Status{
		Kind:    StatusStopped,
		Message: statusPrefix + " STOP",
	}
}

func stoppedWithErrorsStatus(err error) Status {
	return Status{
		Kind:    StatusStoppedWithErrors,
		Message: fmt.Sprintf("%s STOP (with errors): %v", statusPrefix, err),
		Err:     err,
	}
}
