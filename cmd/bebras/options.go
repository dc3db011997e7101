package main

import (
	"github.com/spf13/cobra"

	"github.com/spektr-org/bebras/render"
)

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "List filter options for a selection",
	Long:  "List the values each filter offers. A sub-region or class filter follows its parent once a region or category is chosen.",
	Example: `  bebras options
  bebras options --region "Jawa Barat" --category Siaga
  bebras options --mappings --format pretty`,
	RunE: runOptions,
}

func init() {
	addSelectionFlags(optionsCmd)
	optionsCmd.Flags().Bool("mappings", false, "Print the parent → child mapping tables instead")
	optionsCmd.Flags().StringP("format", "f", "table", "Output format: table, json, pretty")
}

func runOptions(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	dash, err := loadDashboard(cmd.Context(), cfg, newLogger(cmd))
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	mappings, _ := cmd.Flags().GetBool("mappings")
	w := cmd.OutOrStdout()

	if mappings {
		if format == "table" {
			render.Mappings(w, dash.Mappings())
			return nil
		}
		return writeJSON(w, dash.Mappings(), format == "pretty")
	}

	controls := dash.Controls(selectionFromFlags(cmd))
	if format == "table" {
		render.Controls(w, controls)
		return nil
	}
	return writeJSON(w, controls, format == "pretty")
}
