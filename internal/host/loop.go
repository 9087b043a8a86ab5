// Package host drives a capture session from event channels.
//
// Frame events and toggle commands arrive on separate channels, possibly from
// different goroutines. Run consumes both from a single goroutine so the
// session only ever has one writer, and applies every pending command, in
// arrival order, before the next frame.
package host

import (
	"context"
	"log/slog"
	"strings"

	"github.com/wesleyorama2/framelog/internal/capture"
	"github.com/wesleyorama2/framelog/internal/frame"
)

// Command is a discrete request from the toggle source.
type Command int

const (
	CommandToggle Command = iota
	CommandStart
	CommandStop
	CommandQuit
)

// String returns the string representation of the command.
func (c Command) String() string {
	switch c {
	case CommandToggle:
		return "toggle"
	case CommandStart:
		return "start"
	case CommandStop:
		return "stop"
	case CommandQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// ParseCommand maps an input line to a command. An empty line toggles, like
// a single key press.
func ParseCommand(line string) (Command, bool) {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "", "t", "toggle":
		return CommandToggle, true
	case "s", "start":
		return CommandStart, true
	case "x", "stop":
		return CommandStop, true
	case "q", "quit", "exit":
		return CommandQuit, true
	default:
		return 0, false
	}
}

// Loop drives one session.
type Loop struct {
	session *capture.Session
	logger  *slog.Logger
}

// NewLoop creates a loop for session.
func NewLoop(session *capture.Session, logger *slog.Logger) *Loop {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loop{session: session, logger: logger}
}

// Run forwards frames and commands to the session until ctx is cancelled, the
// frame channel is closed, or CommandQuit arrives. An active recording is
// stopped before Run returns, so the last session is always summarized.
//
// Session errors are already reported through the session's status sink; Run
// only logs them and keeps going.
func (l *Loop) Run(ctx context.Context, frames <-chan frame.Timestamp, commands <-chan Command) error {
	defer l.shutdown()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case cmd, ok := <-commands:
			if !ok {
				commands = nil
				continue
			}
			if !l.apply(cmd) {
				return nil
			}

		case ts, ok := <-frames:
			if !ok {
				return nil
			}
			// Commands queued before this frame take effect first
			if !l.drain(commands) {
				return nil
			}
			l.session.OnFrame(ts)
		}
	}
}

// drain applies all commands that are immediately available. It returns
// false if one of them was CommandQuit.
func (l *Loop) drain(commands <-chan Command) bool {
	if commands == nil {
		return true
	}
	for {
		select {
		case cmd, ok := <-commands:
			if !ok {
				return true
			}
			if !l.apply(cmd) {
				return false
			}
		default:
			return true
		}
	}
}

// apply executes one command. It returns false for CommandQuit.
func (l *Loop) apply(cmd Command) bool {
	var err error
	switch cmd {
	case CommandToggle:
		err = l.session.Toggle()
	case CommandStart:
		err = l.session.Start()
	case CommandStop:
		err = l.session.Stop()
	case CommandQuit:
		return false
	}
	if err != nil {
		l.logger.Warn("capture command failed", "command", cmd.String(), "error", err)
	}
	return true
}

func (l *Loop) shutdown() {
	if !l.session.Recording() {
		return
	}
	if err := l.session.Stop(); err != nil {
		l.logger.Warn("failed to stop capture on shutdown", "error", err)
	}
}
