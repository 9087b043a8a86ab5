package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/framelog/internal/watch"
)

func newWatchCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print session summaries as they are written",
		Long: `Watch the output directory and print each new session summary as soon
as a recording stops. Useful in a second terminal next to 'framelog record'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}

			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer logger.Close()

			console := newConsole(cmd, cfg)
			out := cmd.OutOrStdout()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			console.Infof("Watching %s for summaries. Press Ctrl-C to stop.", cfg.Output.Dir)
			w := watch.New(cfg.Output.Dir, cfg.Output.SummaryPrefix, logger.Logger)
			return w.Run(ctx, func(e watch.Event) {
				console.Infof("%s", e.Path)
				out.Write([]byte(e.Content))
			})
		},
	}
}
