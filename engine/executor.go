package engine

import (
	"time"
)

// ============================================================================
// DASHBOARD — Filter → Aggregate → Build pipeline
// ============================================================================
// Entry point: NewDashboard(dataset, opts...) once, then Report(selection)
// per interaction.
//
// Pipeline per interaction:
//   1. Apply selection → SubView
//   2. Summary stats and distributions
//   3. Rankings (regions by participants, participants by score)
//   4. Score shape (histogram, boxes) and duration trend
//   5. Chart configs and tables
//
// The dataset and both cascade mappings are built once in NewDashboard and
// only read afterwards.
// ============================================================================

// DurationMissingWarning is reported when the source has no duration column.
const DurationMissingWarning = "duration column is not available in the dataset"

// Dashboard runs the interaction pipeline over one loaded dataset.
type Dashboard struct {
	data       *Dataset
	classes    Mapping
	subRegions Mapping
	cfg        *config
}

// Report is everything the presentation layer draws for one selection.
type Report struct {
	Selection Selection    `json:"selection"`
	Summary   SummaryStats `json:"summary"`

	Gender   []LabelCount `json:"gender"`
	Category []LabelCount `json:"category"`

	ScoreHistogram  []Bin        `json:"scoreHistogram"`
	ScoreBox        BoxSummary   `json:"scoreBox"`
	ScoreByGender   []GroupBox   `json:"scoreByGender"`
	ScoreByClass    []GroupBox   `json:"scoreByClass"`
	ScoreByCategory []LabelValue `json:"scoreByCategory"`
	TopRegions      []LabelCount `json:"topRegions"`

	DurationTrend *Regression `json:"durationTrend,omitempty"`

	TopScorers []RankedParticipant `json:"topScorers"`
	Rows       []ParticipantRow    `json:"rows,omitempty"`

	Charts   []ChartConfig `json:"charts"`
	Tables   []TableData   `json:"tables"`
	Warnings []string      `json:"warnings,omitempty"`
}

// NewDashboard builds the cascade mappings for ds.
func NewDashboard(ds *Dataset, opts ...Option) *Dashboard {
	cfg := applyOptions(opts)
	full := ds.View()
	d := &Dashboard{
		data:       ds,
		classes:    ClassMapping(full),
		subRegions: SubRegionMapping(full),
		cfg:        cfg,
	}
	cfg.Logger.Info("dashboard ready",
		"source", ds.Source(),
		"records", ds.Len(),
		"categories", len(d.classes.Parents()),
		"regions", len(d.subRegions.Parents()),
		"duration", ds.HasDuration())
	return d
}

// Dataset returns the dataset the dashboard reads.
func (d *Dashboard) Dataset() *Dataset { return d.data }

// ClassMapping returns the category → class mapping.
func (d *Dashboard) ClassMapping() Mapping { return d.classes }

// SubRegionMapping returns the region → sub-region mapping.
func (d *Dashboard) SubRegionMapping() Mapping { return d.subRegions }

// Mappings returns both mapping tables keyed by parent dimension.
func (d *Dashboard) Mappings() map[string]map[string][]string {
	return map[string]map[string][]string{
		DimCategory: d.classes.Table(),
		DimRegion:   d.subRegions.Table(),
	}
}

// Controls returns the filter widgets for sel.
func (d *Dashboard) Controls(sel Selection) Controls {
	return BuildControls(d.data.View(), d.classes, d.subRegions, sel)
}

// Apply filters the dataset by sel.
func (d *Dashboard) Apply(sel Selection) RecordView {
	filters := sel.Filters()
	if filters.HasFilter(DimRegion) && filters.HasFilter(DimSubRegion) {
		d.cfg.Logger.Debug("region and sub-region both constrained, applying both")
	}
	if filters.HasFilter(DimCategory) && filters.HasFilter(DimClass) {
		d.cfg.Logger.Debug("category and class both constrained, applying both")
	}
	return ApplyFilters(d.data.View(), filters)
}

// Report runs the full pipeline for sel.
func (d *Dashboard) Report(sel Selection) *Report {
	start := time.Now()

	// 1. Filter → SubView (zero-copy)
	view := d.Apply(sel)

	// 2. Summary and distributions
	r := &Report{
		Selection: sel,
		Summary:   Summarize(view, MeasureScore),
		Gender:    Distribution(view, DimGender),
		Category:  Distribution(view, DimCategory),
	}

	// 3. Rankings
	r.ScoreByCategory = ScoreByCategory(view)
	r.TopRegions = TopByCount(view, DimRegion, d.cfg.TopRegions)
	r.TopScorers = TopByScore(view, d.cfg.TopScorers)
	r.Rows = Rows(view)

	// 4. Score shape
	r.ScoreHistogram = Histogram(view, MeasureScore, d.cfg.HistogramBins)
	r.ScoreBox = Box(view, MeasureScore)
	r.ScoreByGender = BoxBy(view, DimGender, MeasureScore)
	r.ScoreByClass = BoxBy(view, DimClass, MeasureScore)

	if d.data.HasDuration() {
		trend := Trend(view, MeasureDuration, MeasureScore)
		r.DurationTrend = &trend
	} else {
		r.Warnings = append(r.Warnings, DurationMissingWarning)
	}

	// 5. Charts and tables
	r.Charts = BuildCharts(r)
	r.Tables = []TableData{
		BuildTopScorersTable(r.TopScorers),
		BuildRowsTable(r.Rows),
	}

	d.cfg.Logger.Info("report built",
		"records", d.data.Len(),
		"matched", view.Len(),
		"elapsed", time.Since(start))

	return r
}
