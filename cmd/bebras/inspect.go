package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/spektr-org/bebras/helpers"
	"github.com/spektr-org/bebras/render"
	"github.com/spektr-org/bebras/schema"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Show how a results file maps onto the expected columns",
	Example: `  bebras inspect --data dashboard_bebras.csv
  bebras inspect --data results.db --table peserta --format pretty`,
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().StringP("format", "f", "table", "Output format: table, json, pretty")
}

func runInspect(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cmd)

	ins, err := helpers.Inspect(cmd.Context(), cfg.Dataset.Path, loadOptions(cfg, logger))
	if err != nil && !errors.Is(err, schema.ErrMissingColumn) {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	w := cmd.OutOrStdout()
	if format == "table" {
		render.Inspection(w, ins)
	} else if werr := writeJSON(w, ins, format == "pretty"); werr != nil {
		return werr
	}
	// The profile is printed first so a missing column can be diagnosed.
	return err
}
