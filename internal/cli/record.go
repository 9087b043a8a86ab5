package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/framelog/internal/capture"
	"github.com/wesleyorama2/framelog/internal/config"
	"github.com/wesleyorama2/framelog/internal/frame"
	"github.com/wesleyorama2/framelog/internal/host"
	"github.com/wesleyorama2/framelog/internal/sink"
	"github.com/wesleyorama2/framelog/internal/stats"
)

func newRecordCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record frame times from a simulated render loop",
		Long: `Drive a synthetic render loop and record its frame times.

Recording is toggled from standard input, one command per line:

  <Enter>, t, toggle   start or stop a capture session
  s, start             start a session
  x, stop              stop the session
  q, quit              stop and exit

Each session writes <dir>/mc_frametimes_<stamp>.csv while active and
<dir>/summary_<stamp>.txt when stopped. Ctrl-C stops any active session
before exiting.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("fps") {
				cfg.Simulate.FPS, _ = flags.GetFloat64("fps")
			}
			if flags.Changed("jitter") {
				cfg.Simulate.Jitter, _ = flags.GetFloat64("jitter")
			}
			if flags.Changed("stutter-every") {
				cfg.Simulate.StutterEvery, _ = flags.GetInt("stutter-every")
			}
			if flags.Changed("duration") {
				d, _ := flags.GetDuration("duration")
				cfg.Simulate.Duration = config.Duration(d)
			}
			if flags.Changed("toggle-every") {
				d, _ := flags.GetDuration("toggle-every")
				cfg.Simulate.ToggleEvery = config.Duration(d)
			}
			if flags.Changed("seed") {
				cfg.Simulate.Seed, _ = flags.GetInt64("seed")
			}
			if flags.Changed("summary-json") {
				cfg.Output.SummaryJSON, _ = flags.GetBool("summary-json")
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			startNow, _ := flags.GetBool("start")

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runRecord(ctx, cmd, cfg, cmd.InOrStdin(), startNow)
		},
	}

	cmd.Flags().Float64("fps", config.DefaultFPS, "Target frame rate of the simulated render loop")
	cmd.Flags().Float64("jitter", config.DefaultJitter, "Relative frame-time variation in [0, 1)")
	cmd.Flags().Int("stutter-every", 0, "Make every Nth frame a stutter (0 disables)")
	cmd.Flags().Duration("duration", 0, "Stop after this long (0 runs until quit)")
	cmd.Flags().Duration("toggle-every", 0, "Toggle recording at this interval")
	cmd.Flags().Int64("seed", 0, "Seed for the jitter generator (0 uses the clock)")
	cmd.Flags().Bool("start", false, "Start a capture session immediately")
	cmd.Flags().Bool("summary-json", false, "Also write each summary as JSON")

	return cmd
}

// runRecord wires a file sink, a capture session and the synthetic host
// together and runs them until the input quits, the duration elapses, or
// ctx is cancelled.
func runRecord(ctx context.Context, cmd *cobra.Command, cfg *config.Config, in io.Reader, startNow bool) error {
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Close()

	console := newConsole(cmd, cfg)

	fileSink := sink.NewFileSink(sink.Options{
		Dir:           cfg.Output.Dir,
		RowPrefix:     cfg.Output.RowPrefix,
		SummaryPrefix: cfg.Output.SummaryPrefix,
		SummaryJSON:   cfg.Output.SummaryJSON,
	})

	session := capture.NewSession(capture.Config{
		Sink:   fileSink,
		Status: console,
		Logger: logger.Logger,
		OnSummary: func(label string, summary stats.Summary) {
			console.PrintSummary("Session "+label, summary)
		},
	})

	seed := cfg.Simulate.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	source := host.NewSyntheticSource(host.SyntheticConfig{
		FPS:          cfg.Simulate.FPS,
		Jitter:       cfg.Simulate.Jitter,
		StutterEvery: cfg.Simulate.StutterEvery,
		Seed:         seed,
	})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	frames := make(chan frame.Timestamp, 64)
	go source.Run(ctx, time.Duration(cfg.Simulate.Duration), frames)

	// Input and ticker feed one channel that is never closed; the loop
	// ends on quit, on the frame source finishing, or on ctx.
	commands := make(chan host.Command, 16)
	input := make(chan host.Command)
	go func() {
		if err := host.ReadCommands(ctx, in, input); err != nil && !errors.Is(err, context.Canceled) {
			logger.Warn("failed to read commands", "error", err)
		}
	}()
	go forwardCommands(ctx, input, commands)
	if every := time.Duration(cfg.Simulate.ToggleEvery); every > 0 {
		go host.TickCommands(ctx, every, commands)
	}
	if startNow {
		commands <- host.CommandStart
	}

	console.Infof("Simulating %.0f FPS, logs in %s. Press Enter to toggle recording, q to quit.",
		cfg.Simulate.FPS, fileSink.Dir())
	logger.Info("host started",
		"fps", cfg.Simulate.FPS,
		"jitter", cfg.Simulate.Jitter,
		"dir", fileSink.Dir(),
		"seed", seed)

	err = host.NewLoop(session, logger.Logger).Run(ctx, frames, commands)
	if errors.Is(err, context.Canceled) {
		err = nil
	}

	logger.Info("host stopped")
	return err
}

func forwardCommands(ctx context.Context, in <-chan host.Command, out chan<- host.Command) {
	for cmd := range in {
		select {
		case out <- cmd:
		case <-ctx.Done():
			return
		}
	}
}
