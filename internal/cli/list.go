package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/framelog/internal/logfile"
)

func newListCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recorded frame logs",
		Long: `List the frame logs in the output directory, oldest first.

The numbers printed here can be passed to analyze and report in place of
a file path.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}

			logs, err := logfile.List(cfg.Output.Dir, cfg.Output.RowPrefix)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for i, l := range logs {
				fmt.Fprintf(out, "%3d. %s (%s)\n", i+1, l.Name, formatSize(l.Size))
			}
			return nil
		},
	}
}

func formatSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
