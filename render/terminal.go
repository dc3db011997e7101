package render

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/spektr-org/bebras/engine"
	"github.com/spektr-org/bebras/schema"
)

// ============================================================================
// TERMINAL RENDERER — Report, controls and inspection as text tables
// ============================================================================
// Headings are coloured with fatih/color, which turns itself off when the
// output is not a terminal. Every function writes to w so callers can
// render into a buffer.
// ============================================================================

var (
	heading = color.New(color.FgYellow, color.Bold)
	title   = color.New(color.FgCyan, color.Bold)
	warning = color.New(color.FgRed)
)

// TerminalOptions controls the optional report sections.
type TerminalOptions struct {
	ShowRows bool // print the full participants table
}

// Report prints the dashboard for one selection.
func Report(w io.Writer, r *engine.Report, opts TerminalOptions) {
	title.Fprintln(w, "=== Contest Results Dashboard ===")
	fmt.Fprintf(w, "Total data: %s participants\n", engine.FormatInt(r.Summary.Count))
	if !r.Selection.IsEmpty() {
		fmt.Fprintf(w, "Selection: %s\n", describeSelection(r.Selection))
	}

	heading.Fprintln(w, "\nScore summary")
	table := newTable(w, []string{"Participants", "Mean", "Max", "Min"})
	table.Append([]string{
		engine.FormatInt(r.Summary.Count),
		r.Summary.Mean.String(),
		r.Summary.Max.String(),
		r.Summary.Min.String(),
	})
	table.Render()

	labelCounts(w, "Participants by gender", engine.LabelForDimension(engine.DimGender), r.Gender)
	labelCounts(w, "Participants by category", engine.LabelForDimension(engine.DimCategory), r.Category)

	heading.Fprintln(w, "\nScore distribution")
	table = newTable(w, []string{"Score range", "Participants"})
	for _, b := range r.ScoreHistogram {
		table.Append([]string{fmt.Sprintf("%.2f - %.2f", b.Lower, b.Upper), engine.FormatInt(b.Count)})
	}
	table.Render()

	boxes := []engine.GroupBox{{Label: "All", Box: r.ScoreBox}}
	boxTable(w, "Score spread", boxes)
	boxTable(w, "Score by gender", r.ScoreByGender)
	boxTable(w, "Score by class", r.ScoreByClass)

	heading.Fprintln(w, "\nMean score by category")
	table = newTable(w, []string{"Category", "Mean score", "Participants"})
	for _, lv := range r.ScoreByCategory {
		table.Append([]string{lv.Label, lv.Value.String(), engine.FormatInt(lv.Count)})
	}
	table.Render()

	labelCounts(w, fmt.Sprintf("Top %d regions by participants", len(r.TopRegions)),
		engine.LabelForDimension(engine.DimRegion), r.TopRegions)

	heading.Fprintln(w, "\nTest duration vs score")
	if r.DurationTrend == nil {
		for _, msg := range r.Warnings {
			warning.Fprintf(w, "warning: %s\n", msg)
		}
	} else {
		trendSummary(w, *r.DurationTrend)
	}

	Table(w, engine.BuildTopScorersTable(r.TopScorers))
	if opts.ShowRows {
		Table(w, engine.BuildRowsTable(r.Rows))
	}
}

// Table prints any TableData with its title and optional summary line.
func Table(w io.Writer, td engine.TableData) {
	heading.Fprintf(w, "\n%s\n", td.Title)
	headers := make([]string, len(td.Columns))
	aligns := make([]int, len(td.Columns))
	for i, c := range td.Columns {
		headers[i] = c.Label
		aligns[i] = alignment(c.Align)
	}
	table := newTable(w, headers)
	table.SetColumnAlignment(aligns)
	table.AppendBulk(td.Rows)
	if td.Summary != nil {
		footer := make([]string, len(td.Columns))
		for i, c := range td.Columns {
			footer[i] = td.Summary.Values[c.Key]
		}
		if len(footer) > 0 && footer[0] == "" {
			footer[0] = td.Summary.Label
		}
		table.SetFooter(footer)
	}
	table.Render()
}

// Controls prints the four filter widgets.
func Controls(w io.Writer, c engine.Controls) {
	title.Fprintln(w, "=== Filters ===")
	for _, ctl := range []engine.Control{c.Region, c.SubRegion, c.Category, c.Class} {
		label := ctl.Label
		if ctl.Disabled {
			label += " [locked]"
		}
		heading.Fprintf(w, "\n%s\n", label)
		if len(ctl.Selected) > 0 {
			fmt.Fprintf(w, "selected: %s\n", strings.Join(ctl.Selected, ", "))
		}
		if len(ctl.Options) == 0 {
			fmt.Fprintln(w, "(no options)")
			continue
		}
		fmt.Fprintln(w, strings.Join(ctl.Options, ", "))
	}
}

// Mappings prints a parent → children table for each mapping.
func Mappings(w io.Writer, mappings map[string]map[string][]string) {
	parents := make([]string, 0, len(mappings))
	for p := range mappings {
		parents = append(parents, p)
	}
	sort.Strings(parents)

	for _, dim := range parents {
		m := mappings[dim]
		heading.Fprintf(w, "\n%s mapping\n", engine.LabelForDimension(dim))
		table := newTable(w, []string{engine.LabelForDimension(dim), "Values"})
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			table.Append([]string{k, strings.Join(m[k], ", ")})
		}
		table.Render()
	}
}

// Inspection prints how a source file maps onto the schema.
func Inspection(w io.Writer, ins *schema.Inspection) {
	title.Fprintf(w, "=== %s: %s rows ===\n", ins.Schema, engine.FormatInt(ins.Rows))
	table := newTable(w, []string{"Field", "Header", "Distinct", "Missing", "Cardinality", "Samples"})
	for _, c := range ins.Columns {
		table.Append([]string{
			c.Key,
			c.Header,
			engine.FormatInt(c.Distinct),
			engine.FormatInt(c.Missing),
			c.Cardinality,
			strings.Join(c.SampleValues, ", "),
		})
	}
	table.Render()

	for _, key := range ins.Optional {
		warning.Fprintf(w, "absent: %s\n", key)
	}
	for _, s := range ins.Skipped {
		fmt.Fprintf(w, "ignored column %q: %s\n", s.Column, s.Reason)
	}
}

// ============================================================================
// HELPERS
// ============================================================================

func newTable(w io.Writer, headers []string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(headers)
	table.SetAutoWrapText(false)
	return table
}

func labelCounts(w io.Writer, name, label string, counts []engine.LabelCount) {
	heading.Fprintf(w, "\n%s\n", name)
	table := newTable(w, []string{label, "Participants"})
	for _, c := range counts {
		table.Append([]string{c.Label, engine.FormatInt(c.Count)})
	}
	table.Render()
}

func boxTable(w io.Writer, name string, boxes []engine.GroupBox) {
	heading.Fprintf(w, "\n%s\n", name)
	table := newTable(w, []string{"Group", "N", "Min", "Q1", "Median", "Q3", "Max", "Outliers"})
	for _, g := range boxes {
		b := g.Box
		table.Append([]string{
			g.Label,
			engine.FormatInt(b.Count),
			b.Min.String(),
			b.Q1.String(),
			b.Median.String(),
			b.Q3.String(),
			b.Max.String(),
			fmt.Sprintf("%d", len(b.Outliers)),
		})
	}
	table.Render()
}

func trendSummary(w io.Writer, t engine.Regression) {
	if !t.Valid() {
		fmt.Fprintf(w, "Not enough points for a trend line (%d usable)\n", t.N)
		return
	}
	fmt.Fprintf(w, "score = %s + %s x duration (R² %s, n = %d)\n",
		t.Intercept.String(), t.Slope.String(), t.R2.String(), t.N)
}

func describeSelection(sel engine.Selection) string {
	var parts []string
	add := func(label string, vals []string) {
		if len(vals) > 0 {
			parts = append(parts, label+"="+strings.Join(vals, "|"))
		}
	}
	add("region", sel.Regions)
	add("sub_region", sel.SubRegions)
	add("category", sel.Categories)
	add("class", sel.Classes)
	return strings.Join(parts, " ")
}

func alignment(a string) int {
	switch a {
	case "right":
		return tablewriter.ALIGN_RIGHT
	case "center":
		return tablewriter.ALIGN_CENTER
	default:
		return tablewriter.ALIGN_LEFT
	}
}
