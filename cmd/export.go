package cmd

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/manav03panchal/boost/internal/analytics"
	"github.com/manav03panchal/boost/internal/errors"
	"github.com/manav03panchal/boost/internal/output"
)

// defaultReportName is the report file written when -o is not given.
const defaultReportName = "boost_analytics_report"

// exportFs is the filesystem reports are written to.
var exportFs afero.Fs = afero.NewOsFs()

// Export command flags.
var (
	exportFlagOutput string
)

// exportCmd represents the export command.
var exportCmd = &cobra.Command{
	Use:     "export",
	Aliases: []string{"report"},
	Short:   "Export an analytics report",
	Long: `Write a snapshot of your progress: weekly focus hours, ticket counts, total
focus time and sessions, XP and level, badges, and a short insight and tips
from the coach.

The report is JSON unless --format yaml is given. Use -o - to write it to
standard output.

Examples:
  boost export
  boost export -o weekly.json
  boost export --format yaml -o -`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFlagOutput, "output", "o", "", "Output file, or - for stdout (default boost_analytics_report.json)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	ws := ctx.Workspace
	a := ws.Activity()
	now := ws.Now()

	c := ctx.Coach(cmd.Context())
	insight := c.Insight(cmd.Context(), analytics.BuildMetrics(a, now))
	tips := c.Tips(cmd.Context())
	report := analytics.BuildReport(a, now, insight, tips)

	asYAML := ctx.Formatter.Format == output.FormatYAML
	data, err := marshalReport(report, asYAML)
	if err != nil {
		return errors.NewSystemErrorWithOp("export", "failed to encode report", err)
	}

	path := exportFlagOutput
	if path == "" {
		path = defaultReportName + ".json"
		if asYAML {
			path = defaultReportName + ".yaml"
		}
	}

	if path == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := exportFs.MkdirAll(dir, 0o755); err != nil {
			return errors.NewSystemErrorWithOp("export", "cannot create output directory", err)
		}
	}
	if err := afero.WriteFile(exportFs, path, data, 0o644); err != nil {
		return errors.NewSystemErrorWithOp("export", "cannot write report", err)
	}

	if ctx.IsStructured() {
		return ctx.JSONFormatter().PrintAction("created", "report exported", map[string]string{"path": path})
	}

	cli := ctx.CLIFormatter()
	cli.Success("Report written to " + path)
	cli.Muted(fmt.Sprintf("  Level %d · %d XP · %s focused", report.Level, report.TotalXP, report.TotalFocusTime))
	return nil
}

func marshalReport(report analytics.Report, asYAML bool) ([]byte, error) {
	if asYAML {
		return yaml.Marshal(report)
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
