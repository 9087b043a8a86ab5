package host

import (
	"bufio"
	"context"
	"io"
	"math/rand"
	"time"

	"github.com/wesleyorama2/framelog/internal/frame"
)

// stutterFactor scales the frame-time of injected stutter frames.
const stutterFactor = 4.0

// SyntheticConfig configures a SyntheticSource.
type SyntheticConfig struct {
	// FPS is the target frame rate
	FPS float64

	// Jitter is the relative frame-time variation in [0, 1)
	Jitter float64

	// StutterEvery makes every Nth frame take stutterFactor times longer (0 disables)
	StutterEvery int

	// Seed seeds the jitter generator
	Seed int64
}

// SyntheticSource stands in for a render loop: it emits a frame-completion
// timestamp after each simulated frame.
type SyntheticSource struct {
	base         time.Duration
	jitter       float64
	stutterEvery int
	rng          *rand.Rand
	frames       int
}

// NewSyntheticSource creates a frame source. A non-positive FPS defaults to 60.
func NewSyntheticSource(config SyntheticConfig) *SyntheticSource {
	fps := config.FPS
	if fps <= 0 {
		fps = 60
	}
	return &SyntheticSource{
		base:         time.Duration(float64(time.Second) / fps),
		jitter:       config.Jitter,
		stutterEvery: config.StutterEvery,
		rng:          rand.New(rand.NewSource(config.Seed)),
	}
}

// Next returns the duration of the next simulated frame.
func (s *SyntheticSource) Next() time.Duration {
	s.frames++

	d := float64(s.base)
	if s.jitter > 0 {
		d *= 1 + s.jitter*(2*s.rng.Float64()-1)
	}
	if s.stutterEvery > 0 && s.frames%s.stutterEvery == 0 {
		d *= stutterFactor
	}
	if d < 1 {
		d = 1
	}
	return time.Duration(d)
}

// Run emits one timestamp per simulated frame until ctx is done or duration
// (when positive) has elapsed, then closes out.
func (s *SyntheticSource) Run(ctx context.Context, duration time.Duration, out chan<- frame.Timestamp) {
	defer close(out)

	var deadline <-chan time.Time
	if duration > 0 {
		timer := time.NewTimer(duration)
		defer timer.Stop()
		deadline = timer.C
	}

	frameTimer := time.NewTimer(s.Next())
	defer frameTimer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-deadline:
			return
		case <-frameTimer.C:
			select {
			case out <- frame.Now():
			case <-ctx.Done():
				return
			}
			frameTimer.Reset(s.Next())
		}
	}
}

// ReadCommands parses one command per line from r until EOF or ctx is done.
// Unknown lines are ignored. out is closed on return.
func ReadCommands(ctx context.Context, r io.Reader, out chan<- Command) error {
	defer close(out)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		cmd, ok := ParseCommand(scanner.Text())
		if !ok {
			continue
		}
		select {
		case out <- cmd:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return scanner.Err()
}

// TickCommands sends CommandToggle every interval until ctx is done.
func TickCommands(ctx context.Context, every time.Duration, out chan<- Command) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			select {
			case out <- CommandToggle:
			case <-ctx.Done():
				return
			}
		}
	}
}
