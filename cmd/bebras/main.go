package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/spektr-org/bebras/config"
	"github.com/spektr-org/bebras/engine"
	"github.com/spektr-org/bebras/helpers"
)

// ============================================================================
// BEBRAS CLI — Contest results dashboard
// ============================================================================

const version = "0.3.0"

var rootCmd = &cobra.Command{
	Use:           "bebras",
	Short:         "Contest results dashboard",
	Long:          "Bebras loads a contest results file (CSV, XLSX or SQLite) and reports participation and score statistics filtered by region, sub-region, category and class.",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", config.DefaultFile, "Path to YAML config file")
	rootCmd.PersistentFlags().String("data", "", "Path to results file (overrides dataset.path)")
	rootCmd.PersistentFlags().String("sheet", "", "XLSX worksheet (overrides dataset.sheet)")
	rootCmd.PersistentFlags().String("table", "", "SQLite table (overrides dataset.table)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(optionsCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(chartsCmd)
	rootCmd.AddCommand(serveCmd)
}

// ============================================================================
// SETUP — config, logger and dataset shared by every command
// ============================================================================

// loadConfig reads the config file and applies the global flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if v, _ := cmd.Flags().GetString("data"); v != "" {
		cfg.Dataset.Path = v
	}
	if v, _ := cmd.Flags().GetString("sheet"); v != "" {
		cfg.Dataset.Sheet = v
	}
	if v, _ := cmd.Flags().GetString("table"); v != "" {
		cfg.Dataset.Table = v
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelInfo
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func loadOptions(cfg *config.Config, logger *slog.Logger) helpers.LoadOptions {
	return helpers.LoadOptions{
		Sheet:  cfg.Dataset.Sheet,
		Table:  cfg.Dataset.Table,
		Logger: logger,
	}
}

// loadDashboard loads the configured dataset and builds the dashboard.
func loadDashboard(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*engine.Dashboard, error) {
	ds, err := helpers.Load(ctx, cfg.Dataset.Path, loadOptions(cfg, logger))
	if err != nil {
		return nil, err
	}
	return engine.NewDashboard(ds,
		engine.WithTopScorers(cfg.Report.TopScorers),
		engine.WithTopRegions(cfg.Report.TopRegions),
		engine.WithHistogramBins(cfg.Report.HistogramBins),
		engine.WithLogger(logger),
	), nil
}

// addSelectionFlags registers the four filter flags on cmd.
func addSelectionFlags(cmd *cobra.Command) {
	cmd.Flags().StringArray("region", nil, "Region filter (repeat for several values)")
	cmd.Flags().StringArray("sub-region", nil, "Sub-region filter")
	cmd.Flags().StringArray("category", nil, "Category filter")
	cmd.Flags().StringArray("class", nil, "Class filter")
}

func selectionFromFlags(cmd *cobra.Command) engine.Selection {
	get := func(name string) []string {
		v, _ := cmd.Flags().GetStringArray(name)
		return v
	}
	return engine.Selection{
		Regions:    get("region"),
		SubRegions: get("sub-region"),
		Categories: get("category"),
		Classes:    get("class"),
	}
}
