package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spektr-org/bebras/engine"
)

// ============================================================================
// CSV OUTPUT — chart and table data ready for a spreadsheet
// ============================================================================

func writeTableCSV(w io.Writer, td engine.TableData) error {
	cw := csv.NewWriter(w)
	headers := make([]string, len(td.Columns))
	for i, c := range td.Columns {
		headers[i] = c.Label
	}
	cw.Write(headers)
	for _, row := range td.Rows {
		cw.Write(row)
	}
	cw.Flush()
	return cw.Error()
}

// writeChartCSV writes a chart's first series as label,value rows. Scatter
// charts are written as x,y. Box charts list their five-number summaries.
func writeChartCSV(w io.Writer, c engine.ChartConfig) error {
	cw := csv.NewWriter(w)

	xLabel := c.XAxis
	yLabel := c.YAxis
	if xLabel == "" {
		xLabel = "Label"
	}
	if yLabel == "" {
		yLabel = "Value"
	}

	switch {
	case c.ChartType == engine.ChartBox:
		cw.Write([]string{xLabel, "N", "Min", "Q1", "Median", "Q3", "Max"})
		for _, g := range c.Boxes {
			b := g.Box
			cw.Write([]string{g.Label, fmt.Sprintf("%d", b.Count),
				b.Min.String(), b.Q1.String(), b.Median.String(), b.Q3.String(), b.Max.String()})
		}
	case c.ChartType == engine.ChartScatter:
		cw.Write([]string{xLabel, yLabel})
		for _, s := range c.Series {
			for _, d := range s.Data {
				cw.Write([]string{fmtNum(d.X), fmtNum(d.Value)})
			}
		}
	case len(c.Series) > 0:
		cw.Write([]string{xLabel, yLabel})
		for _, d := range c.Series[0].Data {
			cw.Write([]string{d.Label, fmtNum(d.Value)})
		}
	}

	cw.Flush()
	return cw.Error()
}

// ============================================================================
// JSON OUTPUT
// ============================================================================

func writeJSON(w io.Writer, v any, pretty bool) error {
	var out []byte
	var err error

	if pretty {
		out, err = json.MarshalIndent(v, "", "  ")
	} else {
		out, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

// ============================================================================
// HELPERS
// ============================================================================

func fmtNum(v float64) string {
	// Whole numbers → no decimals, fractional → 2 decimals
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}
