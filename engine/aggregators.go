package engine

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// ============================================================================
// AGGREGATORS — Grouping, Aggregation, and Sorting via RecordView
// ============================================================================
// All functions operate on RecordView — zero-copy access to any data source.
// Grouping produces SubViews (index lists into parent view).
// Measures skip NaN; an aggregate with nothing to aggregate is "no data".
// ============================================================================

// Aggregation names.
const (
	AggCount = "count"
	AggSum   = "sum"
	AggAvg   = "avg"
	AggMax   = "max"
	AggMin   = "min"
)

// Sort modes.
const (
	SortNone      = ""
	SortValueDesc = "value_desc"
	SortValueAsc  = "value_asc"
	SortLabelAsc  = "label_asc"
)

// GroupAndAggregate is the main entry point for the aggregation pipeline.
// Pipeline: group → aggregate → sort → limit.
// Records with a missing value in groupBy are left out.
func GroupAndAggregate(
	view RecordView,
	groupBy string,
	measure string,
	aggregation string,
	sortBy string,
	limit int,
) []Group {
	if view.Len() == 0 {
		return nil
	}

	// 1. Group
	var groups []Group
	if groupBy == "" {
		groups = []Group{{
			Key:   "all",
			Label: "Total",
			View:  view,
		}}
	} else {
		groups = groupBySingle(view, groupBy)
	}

	// 2. Aggregate
	for i := range groups {
		aggregateGroup(&groups[i], measure, aggregation)
	}

	// 3. Sort
	SortGroups(groups, sortBy)

	// 4. Limit
	if limit > 0 && len(groups) > limit {
		groups = groups[:limit]
	}

	return groups
}

// ============================================================================
// GROUPING
// ============================================================================

// groupBySingle groups in first-seen order.
func groupBySingle(view RecordView, dimension string) []Group {
	grouped := make(map[string][]int)
	order := make([]string, 0)

	for i := 0; i < view.Len(); i++ {
		key := view.Dimension(i, dimension)
		if key == "" {
			continue
		}
		if _, exists := grouped[key]; !exists {
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], i)
	}

	groups := make([]Group, 0, len(order))
	for _, key := range order {
		groups = append(groups, Group{
			Key:   key,
			Label: key,
			View:  newSubView(view, grouped[key]),
		})
	}
	return groups
}

// ============================================================================
// AGGREGATION
// ============================================================================

func aggregateGroup(group *Group, measure string, aggregation string) {
	group.Count = group.View.Len()
	if group.Count == 0 {
		return
	}

	switch aggregation {
	case AggCount:
		group.Value = Some(float64(group.Count))
	case AggAvg:
		group.Value = AvgMeasure(group.View, measure)
	case AggMax:
		group.Value = MaxMeasure(group.View, measure)
	case AggMin:
		group.Value = MinMeasure(group.View, measure)
	default:
		group.Value = SumMeasure(group.View, measure)
	}
}

// SumMeasure sums a named measure across a view.
func SumMeasure(view RecordView, measure string) Metric {
	var total float64
	found := false
	for i := 0; i < view.Len(); i++ {
		v := view.Measure(i, measure)
		if missing(v) {
			continue
		}
		total += v
		found = true
	}
	if !found {
		return Metric{}
	}
	return Some(total)
}

// AvgMeasure computes the mean of a named measure over its valid values.
func AvgMeasure(view RecordView, measure string) Metric {
	var total float64
	n := 0
	for i := 0; i < view.Len(); i++ {
		v := view.Measure(i, measure)
		if missing(v) {
			continue
		}
		total += v
		n++
	}
	if n == 0 {
		return Metric{}
	}
	return Some(total / float64(n))
}

// MaxMeasure returns the largest value of a named measure.
func MaxMeasure(view RecordView, measure string) Metric {
	m := math.Inf(-1)
	found := false
	for i := 0; i < view.Len(); i++ {
		v := view.Measure(i, measure)
		if missing(v) {
			continue
		}
		if !found || v > m {
			m = v
			found = true
		}
	}
	if !found {
		return Metric{}
	}
	return Some(m)
}

// MinMeasure returns the smallest value of a named measure.
func MinMeasure(view RecordView, measure string) Metric {
	m := math.Inf(1)
	found := false
	for i := 0; i < view.Len(); i++ {
		v := view.Measure(i, measure)
		if missing(v) {
			continue
		}
		if !found || v < m {
			m = v
			found = true
		}
	}
	if !found {
		return Metric{}
	}
	return Some(m)
}

// ============================================================================
// SORTING
// ============================================================================

// SortGroups sorts aggregate groups by the specified sort mode. Sorting is
// stable, so equal values keep their grouping (first-seen) order. Groups
// without a value sort last in both directions.
func SortGroups(groups []Group, sortBy string) {
	switch sortBy {
	case SortValueDesc:
		sort.SliceStable(groups, func(i, j int) bool { return valueBefore(groups[i].Value, groups[j].Value, true) })
	case SortValueAsc:
		sort.SliceStable(groups, func(i, j int) bool { return valueBefore(groups[i].Value, groups[j].Value, false) })
	case SortLabelAsc:
		sort.SliceStable(groups, func(i, j int) bool { return groups[i].Key < groups[j].Key })
	default:
		// preserve grouping order
	}
}

func valueBefore(a, b Metric, desc bool) bool {
	switch {
	case !a.Valid:
		return false
	case !b.Valid:
		return true
	case desc:
		return a.Value > b.Value
	default:
		return a.Value < b.Value
	}
}

// ============================================================================
// REPORT OPERATIONS
// ============================================================================

// Summarize computes count, mean, max and min of measure. Count is the
// number of records in view, whether or not the measure is present.
func Summarize(view RecordView, measure string) SummaryStats {
	return SummaryStats{
		Count: view.Len(),
		Mean:  AvgMeasure(view, measure),
		Max:   MaxMeasure(view, measure),
		Min:   MinMeasure(view, measure),
	}
}

// Distribution counts records per distinct value of dim, in first-seen
// order. Missing values are not counted.
func Distribution(view RecordView, dim string) []LabelCount {
	return toLabelCounts(GroupAndAggregate(view, dim, "", AggCount, SortNone, 0))
}

// TopByCount returns the n values of dim with the most records, descending.
// Ties keep first-seen order. n <= 0 returns every value.
func TopByCount(view RecordView, dim string, n int) []LabelCount {
	return toLabelCounts(GroupAndAggregate(view, dim, "", AggCount, SortValueDesc, n))
}

// MeanBy computes the mean of measure for each distinct value of dim, in
// first-seen order.
func MeanBy(view RecordView, dim, measure string) []LabelValue {
	groups := GroupAndAggregate(view, dim, measure, AggAvg, SortNone, 0)
	out := make([]LabelValue, 0, len(groups))
	for _, g := range groups {
		out = append(out, LabelValue{Label: g.Label, Value: g.Value, Count: g.Count})
	}
	return out
}

// ScoreByCategory is the mean score of each category.
func ScoreByCategory(view RecordView) []LabelValue {
	return MeanBy(view, DimCategory, MeasureScore)
}

// TopByScore returns the n records with the highest score, descending.
// Equal scores keep view order; records without a score are left out.
// n <= 0 returns every scored record.
func TopByScore(view RecordView, n int) []RankedParticipant {
	type scored struct {
		index int
		score float64
	}
	rows := make([]scored, 0, view.Len())
	for i := 0; i < view.Len(); i++ {
		s := view.Measure(i, MeasureScore)
		if missing(s) {
			continue
		}
		rows = append(rows, scored{index: i, score: s})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].score > rows[j].score })
	if n > 0 && len(rows) > n {
		rows = rows[:n]
	}

	out := make([]RankedParticipant, 0, len(rows))
	for rank, r := range rows {
		out = append(out, RankedParticipant{
			Rank:      rank + 1,
			Name:      view.Dimension(r.index, DimName),
			Class:     view.Dimension(r.index, DimClass),
			School:    view.Dimension(r.index, DimSchool),
			SubRegion: view.Dimension(r.index, DimSubRegion),
			Score:     r.score,
		})
	}
	return out
}

// Rows lists every record of view for the data table.
func Rows(view RecordView) []ParticipantRow {
	out := make([]ParticipantRow, 0, view.Len())
	for i := 0; i < view.Len(); i++ {
		out = append(out, ParticipantRow{
			Name:      view.Dimension(i, DimName),
			Class:     view.Dimension(i, DimClass),
			School:    view.Dimension(i, DimSchool),
			SubRegion: view.Dimension(i, DimSubRegion),
			Score:     Some(view.Measure(i, MeasureScore)),
		})
	}
	return out
}

func toLabelCounts(groups []Group) []LabelCount {
	out := make([]LabelCount, 0, len(groups))
	for _, g := range groups {
		out = append(out, LabelCount{Label: g.Label, Count: g.Count})
	}
	return out
}

// ============================================================================
// FORMATTING UTILITIES
// ============================================================================

// FormatInt formats an integer with comma separators.
func FormatInt(n int) string {
	if n < 0 {
		return "-" + FormatInt(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%s,%03d", FormatInt(n/1000), n%1000)
}

// RoundTo2 rounds to 2 decimal places.
func RoundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}

// SortedValues returns the distinct non-missing values of a dimension,
// sorted ascending.
func SortedValues(view RecordView, dimension string) []string {
	vals := UniqueValues(view, dimension)
	sort.Strings(vals)
	return vals
}

// UniqueValues returns distinct values for a dimension across a view.
func UniqueValues(view RecordView, dimension string) []string {
	seen := make(map[string]bool)
	var result []string
	for i := 0; i < view.Len(); i++ {
		val := view.Dimension(i, dimension)
		if val != "" && !seen[val] {
			seen[val] = true
			result = append(result, val)
		}
	}
	return result
}

var dimensionLabels = map[string]string{
	DimName:         "Name",
	DimClass:        "Class",
	DimCategory:     "Category",
	DimRegion:       "Region",
	DimSubRegion:    "Sub-region",
	DimSchool:       "School",
	DimGender:       "Gender",
	MeasureScore:    "Score",
	MeasureDuration: "Duration (min)",
}

// LabelForDimension returns a display label for a dimension or measure key.
func LabelForDimension(dimension string) string {
	if label, ok := dimensionLabels[dimension]; ok {
		return label
	}
	if len(dimension) == 0 {
		return ""
	}
	return strings.ToUpper(dimension[:1]) + strings.ReplaceAll(dimension[1:], "_", " ")
}

// LabelForAggregation returns a human-readable label for an aggregation type.
func LabelForAggregation(aggregation string) string {
	switch aggregation {
	case AggSum:
		return "Total"
	case AggCount:
		return "Count"
	case AggAvg:
		return "Average"
	case AggMax:
		return "Maximum"
	case AggMin:
		return "Minimum"
	default:
		return "Value"
	}
}
