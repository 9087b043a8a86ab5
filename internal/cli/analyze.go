package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/framelog/internal/config"
	"github.com/wesleyorama2/framelog/internal/logfile"
	"github.com/wesleyorama2/framelog/internal/report"
)

func newAnalyzeCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [log]",
		Short: "Summarize a recorded frame log",
		Long: `Summarize a recorded frame log.

The log is a path or a number from 'framelog list'. Without an argument the
newest log in the output directory is analyzed. The summary is computed the
same way as at the end of a capture session, followed by an HDR histogram
view of the frame-time distribution.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}

			path, err := resolveLog(cfg, args)
			if err != nil {
				return err
			}

			log, err := logfile.ReadFile(path)
			if err != nil {
				return err
			}

			asJSON, _ := cmd.Flags().GetBool("json")
			if asJSON {
				data, err := report.Build(log, 0).JSON()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}

			console := newConsole(cmd, cfg)
			if len(log.Samples) == 0 {
				console.Infof("%s has no frames", path)
				return nil
			}
			console.PrintSummary(path, log.Summary())
			console.PrintDistribution(log.Distribution())
			return nil
		},
	}

	cmd.Flags().Bool("json", false, "Print the full report as JSON")

	return cmd
}

// resolveLog picks the log named by args, or the newest one.
func resolveLog(cfg *config.Config, args []string) (string, error) {
	if len(args) == 1 {
		return logfile.Resolve(cfg.Output.Dir, cfg.Output.RowPrefix, args[0])
	}

	logs, err := logfile.List(cfg.Output.Dir, cfg.Output.RowPrefix)
	if err != nil {
		return "", err
	}
	return logs[len(logs)-1].Path, nil
}
