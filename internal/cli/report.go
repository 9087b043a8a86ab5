package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wesleyorama2/framelog/internal/logfile"
	"github.com/wesleyorama2/framelog/internal/report"
)

func newReportCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report [log]",
		Short: "Render a frame log as an HTML or JSON report",
		Long: `Render a frame log as a standalone HTML page with a frame-time chart, or
as a JSON document that 'framelog query' can read.

The format follows the output file extension (.html or .json). Without
--output the report is written next to the log.`,
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

			maxPoints, _ := cmd.Flags().GetInt("max-points")
			output, _ := cmd.Flags().GetString("output")
			if output == "" {
				output = strings.TrimSuffix(path, filepath.Ext(path)) + ".html"
			}

			r := report.Build(log, maxPoints)
			switch strings.ToLower(filepath.Ext(output)) {
			case ".html", ".htm":
				err = report.GenerateHTML(r, output)
			case ".json":
				err = report.WriteJSON(r, output)
			default:
				return fmt.Errorf("unsupported report format %q (use .html or .json)", filepath.Ext(output))
			}
			if err != nil {
				return err
			}

			newConsole(cmd, cfg).Infof("Report written to %s", output)
			return nil
		},
	}

	cmd.Flags().StringP("output", "o", "", "Output file (.html or .json)")
	cmd.Flags().Int("max-points", report.DefaultMaxPoints, "Maximum number of points in the frame-time series")

	return cmd
}
