package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/spektr-org/bebras/engine"
	"github.com/spektr-org/bebras/render"
)

var chartsCmd = &cobra.Command{
	Use:   "charts",
	Short: "Write dashboard charts as PNG images",
	Example: `  bebras charts --out charts/
  bebras charts --region "Jawa Timur" --chart score_histogram --csv`,
	RunE: runCharts,
}

func init() {
	addSelectionFlags(chartsCmd)
	chartsCmd.Flags().StringP("out", "o", "", "Output directory (overrides charts.dir)")
	chartsCmd.Flags().String("chart", "", "Only write the chart with this ID")
	chartsCmd.Flags().Bool("csv", false, "Also write each chart's data as <id>.csv")
	chartsCmd.Flags().Int("width", 0, "Image width in pixels (overrides charts.width)")
	chartsCmd.Flags().Int("height", 0, "Image height in pixels (overrides charts.height)")
}

func runCharts(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cmd)
	dash, err := loadDashboard(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}

	dir := cfg.Charts.Dir
	if v, _ := cmd.Flags().GetString("out"); v != "" {
		dir = v
	}
	size := render.Size{Width: cfg.Charts.Width, Height: cfg.Charts.Height}
	if v, _ := cmd.Flags().GetInt("width"); v > 0 {
		size.Width = v
	}
	if v, _ := cmd.Flags().GetInt("height"); v > 0 {
		size.Height = v
	}

	report := dash.Report(selectionFromFlags(cmd))
	charts := report.Charts
	if id, _ := cmd.Flags().GetString("chart"); id != "" {
		c, ok := engine.FindChart(charts, id)
		if !ok {
			return fmt.Errorf("unknown chart %q", id)
		}
		charts = []engine.ChartConfig{c}
	}

	written, err := render.WriteAll(dir, charts, size)
	if err != nil {
		return err
	}
	for _, p := range written {
		fmt.Fprintln(cmd.OutOrStdout(), p)
	}

	if withCSV, _ := cmd.Flags().GetBool("csv"); withCSV {
		for _, c := range charts {
			path := filepath.Join(dir, c.ID+".csv")
			if err := writeChartFile(path, c); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
		}
	}

	for _, msg := range report.Warnings {
		logger.Warn(msg)
	}
	logger.Info("charts written", "dir", dir, "images", len(written))
	return nil
}

func writeChartFile(path string, c engine.ChartConfig) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()
	return writeChartCSV(f, c)
}
