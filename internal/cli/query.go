package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/framelog/internal/report"
)

func newQueryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "query <json-file> <path>",
		Short: "Extract a value from a JSON report or summary",
		Long: `Extract a value from a JSON report or JSON summary.

The path is either gjson syntax or a simple JSONPath expression:

  framelog query report.json summary.p1LowFps
  framelog query report.json '$.series[0].frametimeMs'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			value, err := report.Query(string(data), args[1])
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		},
	}
}
