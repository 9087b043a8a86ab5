// Package status renders capture status messages and summaries on a terminal.
package status

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/wesleyorama2/framelog/internal/capture"
	"github.com/wesleyorama2/framelog/internal/stats"
)

// ColorScheme defines the colors used for status output.
type ColorScheme struct {
	Success   *color.Color
	Error     *color.Color
	Info      *color.Color
	Label     *color.Color
	Value     *color.Color
	Highlight *color.Color
}

// DefaultColorScheme returns the default color scheme.
func DefaultColorScheme() *ColorScheme {
	return &ColorScheme{
		Success:   color.New(color.FgGreen, color.Bold),
		Error:     color.New(color.FgRed, color.Bold),
		Info:      color.New(color.FgBlue),
		Label:     color.New(color.FgYellow),
		Value:     color.New(color.FgWhite, color.Bold),
		Highlight: color.New(color.FgMagenta, color.Bold),
	}
}

// NoColorScheme returns a color scheme with all colors disabled.
func NoColorScheme() *ColorScheme {
	scheme := DefaultColorScheme()
	for _, c := range []*color.Color{
		scheme.Success, scheme.Error, scheme.Info,
		scheme.Label, scheme.Value, scheme.Highlight,
	} {
		c.DisableColor()
	}
	return scheme
}

// ConsoleConfig contains configuration for console output.
type ConsoleConfig struct {
	Writer  io.Writer
	NoColor bool
	Quiet   bool
}

// Console prints status messages. It is safe for concurrent use.
type Console struct {
	mu     sync.Mutex
	writer io.Writer
	scheme *ColorScheme
	quiet  bool
}

var _ capture.StatusSink = (*Console)(nil)

// NewConsole creates a console. Colors are used only when the writer is a
// terminal and NoColor is unset.
func NewConsole(config ConsoleConfig) *Console {
	if config.Writer == nil {
		config.Writer = os.Stdout
	}

	scheme := DefaultColorScheme()
	if config.NoColor || !IsTerminal(config.Writer) {
		scheme = NoColorScheme()
	} else {
		// fatih/color disables itself globally for non-TTY stdout; the
		// scheme decision above already covers our writer.
		for _, c := range []*color.Color{
			scheme.Success, scheme.Error, scheme.Info,
			scheme.Label, scheme.Value, scheme.Highlight,
		} {
			c.EnableColor()
		}
	}

	return &Console{
		writer: config.Writer,
		scheme: scheme,
		quiet:  config.Quiet,
	}
}

// IsTerminal checks if the writer is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Notify prints a status message with an icon matching its kind.
func (c *Console) Notify(s capture.Status) {
	if c.quiet {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	switch s.Kind {
	case capture.StatusStarted:
		fmt.Fprintf(c.writer, "%s %s\n", c.scheme.Success.Sprint("●"), s.Message)
	case capture.StatusStopped:
		fmt.Fprintf(c.writer, "%s %s\n", c.scheme.Info.Sprint("■"), s.Message)
	default:
		if s.Kind.IsError() {
			fmt.Fprintf(c.writer, "%s %s\n", c.scheme.Error.Sprint("✗"), c.scheme.Error.Sprint(s.Message))
			return
		}
		fmt.Fprintln(c.writer, s.Message)
	}
}

// Infof prints an informational line.
func (c *Console) Infof(format string, args ...interface{}) {
	if c.quiet {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.writer, "%s %s\n", c.scheme.Info.Sprint("ℹ"), fmt.Sprintf(format, args...))
}

// PrintSummary prints a session summary as an aligned table.
func (c *Console) PrintSummary(title string, s stats.Summary) {
	if c.quiet {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	fmt.Fprintln(c.writer, c.scheme.Highlight.Sprint(title))
	rows := []struct {
		label string
		value string
	}{
		{"Frames", strconv.Itoa(s.FrameCount)},
		{"Average FPS", strconv.FormatFloat(s.AvgFPS, 'f', 2, 64)},
		{"1% Low FPS", strconv.FormatFloat(s.P1LowFPS, 'f', 2, 64)},
		{"0.1% Low FPS", strconv.FormatFloat(s.P01LowFPS, 'f', 2, 64)},
		{"Average Frametime (ms)", strconv.FormatFloat(s.AvgFrametimeMs, 'f', 3, 64)},
		{"99th %ile Frametime (ms)", strconv.FormatFloat(s.P99FrametimeMs, 'f', 3, 64)},
		{"99.9th %ile Frametime (ms)", strconv.FormatFloat(s.P999FrametimeMs, 'f', 3, 64)},
	}
	for _, r := range rows {
		fmt.Fprintf(c.writer, "  %s %s\n", c.scheme.Label.Sprintf("%-28s", r.label+":"), c.scheme.Value.Sprint(r.value))
	}
}

// PrintDistribution prints histogram-derived frame-time percentiles.
func (c *Console) PrintDistribution(d stats.FrametimeStats) {
	if c.quiet {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	fmt.Fprintln(c.writer, c.scheme.Highlight.Sprint("Frame-time distribution (ms)"))
	rows := []struct {
		label string
		value float64
	}{
		{"Min", stats.Milliseconds(d.Min)},
		{"p50", stats.Milliseconds(d.P50)},
		{"p90", stats.Milliseconds(d.P90)},
		{"p95", stats.Milliseconds(d.P95)},
		{"p99", stats.Milliseconds(d.P99)},
		{"p99.9", stats.Milliseconds(d.P999)},
		{"Max", stats.Milliseconds(d.Max)},
		{"StdDev", stats.Milliseconds(d.StdDev)},
	}
	for _, r := range rows {
		fmt.Fprintf(c.writer, "  %s %s\n", c.scheme.Label.Sprintf("%-28s", r.label+":"), c.scheme.Value.Sprint(strconv.FormatFloat(r.value, 'f', 3, 64)))
	}
}
