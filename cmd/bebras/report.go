package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/spektr-org/bebras/engine"
	"github.com/spektr-org/bebras/render"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the dashboard for a selection",
	Long: `Print the dashboard for a selection.

Formats:
  table     Coloured terminal tables (default)
  json      Full report as JSON
  pretty    Pretty-printed JSON
  csv       Top scorers table as CSV (full data table with --rows)`,
	Example: `  bebras report --data dashboard_bebras.csv
  bebras report --region "Jawa Barat" --category Siaga --format pretty
  bebras report --class 5,6 --rows --format csv --out peserta.csv`,
	RunE: runReport,
}

func init() {
	addSelectionFlags(reportCmd)
	reportCmd.Flags().StringP("format", "f", "table", "Output format: table, json, pretty, csv")
	reportCmd.Flags().Bool("rows", false, "Include the full participants table")
	reportCmd.Flags().StringP("out", "o", "", "Write output to file instead of stdout")
}

func runReport(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cmd)
	dash, err := loadDashboard(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	rows, _ := cmd.Flags().GetBool("rows")
	outFile, _ := cmd.Flags().GetString("out")

	w, closeOut, err := openOutput(cmd, outFile)
	if err != nil {
		return err
	}
	defer closeOut()

	report := dash.Report(selectionFromFlags(cmd))
	if err := writeReport(w, report, format, rows); err != nil {
		return err
	}
	if outFile != "" {
		logger.Info("report written", "path", outFile, "format", format)
	}
	return nil
}

func writeReport(w io.Writer, report *engine.Report, format string, rows bool) error {
	switch format {
	case "table":
		render.Report(w, report, render.TerminalOptions{ShowRows: rows})
		return nil
	case "json", "pretty":
		if !rows {
			report.Rows = nil
			report.Tables = report.Tables[:1]
		}
		return writeJSON(w, report, format == "pretty")
	case "csv":
		if rows {
			return writeTableCSV(w, engine.BuildRowsTable(report.Rows))
		}
		return writeTableCSV(w, engine.BuildTopScorersTable(report.TopScorers))
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// openOutput returns the command's stdout or a created file.
func openOutput(cmd *cobra.Command, path string) (io.Writer, func(), error) {
	if path == "" {
		return cmd.OutOrStdout(), func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, func() { f.Close() }, nil
}
