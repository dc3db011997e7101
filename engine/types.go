package engine

import (
	"encoding/json"
	"fmt"
	"math"
)

// ============================================================================
// ENGINE TYPES — Contest Results Analytics
// ============================================================================
// Participant is the typed row. The engine reads it through RecordView using
// the dimension/measure keys below, so filters and aggregators stay generic.
//
// Missing values: "" for dimensions, NaN for measures.
// ============================================================================

// Dimension keys.
const (
	DimName      = "name"
	DimClass     = "class"
	DimCategory  = "category"
	DimRegion    = "region"
	DimSubRegion = "sub_region"
	DimSchool    = "school"
	DimGender    = "gender"
)

// Measure keys.
const (
	MeasureScore    = "score"
	MeasureDuration = "duration_minutes"
)

// ============================================================================
// PARTICIPANT — one contest entry
// ============================================================================

// Participant is one contest participant's entry.
type Participant struct {
	Name      string `json:"name"`
	Class     string `json:"class"`
	Category  string `json:"category"`
	Region    string `json:"region"`
	SubRegion string `json:"subRegion"`
	School    string `json:"school"`
	Gender    string `json:"gender"`

	Score           float64 `json:"-"` // NaN when missing
	DurationMinutes float64 `json:"-"` // NaN when missing or column absent
}

// ============================================================================
// SELECTION — cascading filter state
// ============================================================================

// Selection holds the four filter controls. An empty slice means no
// constraint on that dimension.
type Selection struct {
	Regions    []string `json:"regions,omitempty"`
	SubRegions []string `json:"subRegions,omitempty"`
	Categories []string `json:"categories,omitempty"`
	Classes    []string `json:"classes,omitempty"`
}

// IsEmpty reports whether no control has a value.
func (s Selection) IsEmpty() bool {
	return len(s.Regions) == 0 && len(s.SubRegions) == 0 &&
		len(s.Categories) == 0 && len(s.Classes) == 0
}

// Filters converts the selection into dimension filters.
func (s Selection) Filters() Filters {
	f := Filters{Dimensions: make(map[string][]string, 4)}
	if len(s.Regions) > 0 {
		f.Dimensions[DimRegion] = s.Regions
	}
	if len(s.SubRegions) > 0 {
		f.Dimensions[DimSubRegion] = s.SubRegions
	}
	if len(s.Categories) > 0 {
		f.Dimensions[DimCategory] = s.Categories
	}
	if len(s.Classes) > 0 {
		f.Dimensions[DimClass] = s.Classes
	}
	return f
}

// Filters define which records to include.
// Keys are dimension names. Values are allowed values.
// OR within a dimension, AND across dimensions. Empty = all.
type Filters struct {
	Dimensions map[string][]string `json:"dimensions"`
}

// HasFilter returns true if a specific dimension filter is set.
func (f Filters) HasFilter(dimension string) bool {
	if f.Dimensions == nil {
		return false
	}
	vals, ok := f.Dimensions[dimension]
	return ok && len(vals) > 0
}

// IsEmpty returns true if no filters are set.
func (f Filters) IsEmpty() bool {
	if f.Dimensions == nil {
		return true
	}
	for _, vals := range f.Dimensions {
		if len(vals) > 0 {
			return false
		}
	}
	return true
}

// ============================================================================
// METRIC — numeric aggregate that may be "no data"
// ============================================================================

// NoData is the display text of an invalid Metric.
const NoData = "no data"

// Metric is an aggregate value. Valid is false when the input had no usable
// values; such a metric marshals to JSON null.
type Metric struct {
	Value float64
	Valid bool
}

// missing reports whether a measure value is unusable. NaN marks an empty
// cell; infinities are treated the same way.
func missing(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}

// Some wraps v as a Metric. NaN and infinities become "no data".
func Some(v float64) Metric {
	if missing(v) {
		return Metric{}
	}
	return Metric{Value: v, Valid: true}
}

// Rounded returns the value rounded to two decimals, keeping validity.
func (m Metric) Rounded() Metric {
	if !m.Valid {
		return m
	}
	return Metric{Value: RoundTo2(m.Value), Valid: true}
}

func (m Metric) String() string {
	if !m.Valid {
		return NoData
	}
	return fmt.Sprintf("%.2f", m.Value)
}

func (m Metric) MarshalJSON() ([]byte, error) {
	if !m.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(m.Value)
}

func (m *Metric) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*m = Metric{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*m = Some(v)
	return nil
}

// ============================================================================
// AGGREGATE RESULTS — plain structs handed to the presentation layer
// ============================================================================

// SummaryStats is the headline block: participant count and score extremes.
type SummaryStats struct {
	Count int    `json:"count"`
	Mean  Metric `json:"mean"`
	Max   Metric `json:"max"`
	Min   Metric `json:"min"`
}

// LabelCount is one (value, count) pair of a distribution.
type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// LabelValue is one (value, aggregate) pair, e.g. mean score of a category.
type LabelValue struct {
	Label string `json:"label"`
	Value Metric `json:"value"`
	Count int    `json:"count"`
}

// RankedParticipant is one row of the top scorers table.
type RankedParticipant struct {
	Rank      int     `json:"rank"`
	Name      string  `json:"name"`
	Class     string  `json:"class"`
	School    string  `json:"school"`
	SubRegion string  `json:"subRegion"`
	Score     float64 `json:"score"`
}

// ParticipantRow is one row of the full data table. Score is "no data" when
// the source cell was empty.
type ParticipantRow struct {
	Name      string `json:"name"`
	Class     string `json:"class"`
	School    string `json:"school"`
	SubRegion string `json:"subRegion"`
	Score     Metric `json:"score"`
}

// Bin is one histogram bucket [Lower, Upper). The last bin includes Upper.
type Bin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// BoxSummary is a five-number summary with Tukey whiskers.
type BoxSummary struct {
	Count        int       `json:"count"`
	Min          Metric    `json:"min"`
	Q1           Metric    `json:"q1"`
	Median       Metric    `json:"median"`
	Q3           Metric    `json:"q3"`
	Max          Metric    `json:"max"`
	LowerWhisker Metric    `json:"lowerWhisker"`
	UpperWhisker Metric    `json:"upperWhisker"`
	Outliers     []float64 `json:"outliers,omitempty"`
}

// GroupBox is the box summary of one dimension value.
type GroupBox struct {
	Label string     `json:"label"`
	Box   BoxSummary `json:"box"`
}

// Point is one scatter point.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Regression is an ordinary least squares fit of Y on X.
type Regression struct {
	N         int     `json:"n"`
	Slope     Metric  `json:"slope"`
	Intercept Metric  `json:"intercept"`
	R2        Metric  `json:"r2"`
	Points    []Point `json:"points,omitempty"`
}

// Valid reports whether the fit produced a line.
func (r Regression) Valid() bool {
	return r.Slope.Valid && r.Intercept.Valid
}

// ============================================================================
// GROUP — Intermediate computation result
// ============================================================================

// Group represents a grouped/aggregated result.
type Group struct {
	Key   string     `json:"key"`
	Label string     `json:"label"`
	Value Metric     `json:"value"`
	Count int        `json:"count"`
	View  RecordView `json:"-"` // Sub-view for records in this group (zero-copy)
}

// ============================================================================
// CHART TYPES
// ============================================================================

// Chart types understood by the renderers.
const (
	ChartPie       = "pie"
	ChartBar       = "bar"
	ChartBarH      = "bar_horizontal"
	ChartHistogram = "histogram"
	ChartBox       = "box"
	ChartScatter   = "scatter"
)

// ChartConfig defines how to render a chart.
type ChartConfig struct {
	ID         string        `json:"id"`
	ChartType  string        `json:"chartType"`
	Title      string        `json:"title"`
	XAxis      string        `json:"xAxis,omitempty"`
	YAxis      string        `json:"yAxis,omitempty"`
	Series     []ChartSeries `json:"series"`
	Boxes      []GroupBox    `json:"boxes,omitempty"`
	Trend      *Regression   `json:"trend,omitempty"`
	Colors     []string      `json:"colors,omitempty"`
	ShowLegend bool          `json:"showLegend"`
	ShowGrid   bool          `json:"showGrid"`
}

// ChartSeries represents a data series in a chart.
type ChartSeries struct {
	Name  string       `json:"name"`
	Data  []ChartPoint `json:"data"`
	Color string       `json:"color,omitempty"`
}

// ChartPoint represents a single data point. X is set for scatter series.
type ChartPoint struct {
	Label string  `json:"label"`
	X     float64 `json:"x,omitempty"`
	Value float64 `json:"value"`
}

// ============================================================================
// TABLE TYPES
// ============================================================================

// TableData defines how to render a table.
type TableData struct {
	Title   string     `json:"title"`
	Columns []Column   `json:"columns"`
	Rows    [][]string `json:"rows"`
	Summary *Summary   `json:"summary,omitempty"`
}

// Column defines a table column.
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Type  string `json:"type"`  // "text", "number"
	Align string `json:"align"` // "left", "center", "right"
}

// Summary provides totals for a table.
type Summary struct {
	Label  string            `json:"label"`
	Values map[string]string `json:"values"`
}
