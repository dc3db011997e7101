package engine

import "fmt"

// ============================================================================
// CHART BUILDER — Produces ChartConfig from a Report
// ============================================================================
// One config per dashboard panel. IDs are stable so renderers and the HTTP
// API can address a single chart.
// ============================================================================

// Chart IDs.
const (
	ChartGenderPie         = "gender_pie"
	ChartCategoryPie       = "category_pie"
	ChartScoreHistogram    = "score_histogram"
	ChartScoreBox          = "score_box"
	ChartScoreByGender     = "score_by_gender"
	ChartScoreByClass      = "score_by_class"
	ChartMeanScoreCategory = "mean_score_by_category"
	ChartTopRegions        = "top_regions"
	ChartDurationVsScore   = "duration_vs_score"
)

// Pastel palette for proportional charts.
var pastelColors = []string{
	"#66C5CC", "#F6CF71", "#F89C74", "#DCB0F2", "#87C55F",
	"#9EB9F3", "#FE88B1", "#C9DB74", "#8BE0A4", "#B497E7",
}

// Vivid palette for per-category bars.
var vividColors = []string{
	"#E58606", "#5D69B1", "#52BCA3", "#99C945", "#CC61B0",
	"#24796C", "#DAA51B", "#2F8AC4", "#764E9F", "#ED645A",
}

const histogramColor = "#82C9FF"

// BuildCharts produces every chart config of the dashboard. The duration
// scatter is only built when the report carries a trend.
func BuildCharts(r *Report) []ChartConfig {
	charts := []ChartConfig{
		buildPie(ChartGenderPie, "Participants by gender", r.Gender),
		buildPie(ChartCategoryPie, "Participants by category", r.Category),
		buildHistogram(r.ScoreHistogram),
		{
			ID:        ChartScoreBox,
			ChartType: ChartBox,
			Title:     "Score spread",
			YAxis:     LabelForDimension(MeasureScore),
			Series:    []ChartSeries{},
			Boxes:     []GroupBox{{Label: "All", Box: r.ScoreBox}},
			ShowGrid:  true,
		},
		buildBoxes(ChartScoreByGender, "Score by gender", DimGender, r.ScoreByGender),
		buildBoxes(ChartScoreByClass, "Score by class", DimClass, r.ScoreByClass),
		buildMeanByCategory(r.ScoreByCategory),
		buildTopRegions(r.TopRegions),
	}
	if r.DurationTrend != nil {
		charts = append(charts, buildScatter(*r.DurationTrend))
	}
	return charts
}

// FindChart returns the chart with the given ID.
func FindChart(charts []ChartConfig, id string) (ChartConfig, bool) {
	for _, c := range charts {
		if c.ID == id {
			return c, true
		}
	}
	return ChartConfig{}, false
}

// ============================================================================
// SERIES BUILDERS
// ============================================================================

func buildPie(id, title string, counts []LabelCount) ChartConfig {
	points := make([]ChartPoint, 0, len(counts))
	for _, c := range counts {
		points = append(points, ChartPoint{Label: c.Label, Value: float64(c.Count)})
	}
	return ChartConfig{
		ID:         id,
		ChartType:  ChartPie,
		Title:      title,
		Series:     []ChartSeries{{Name: "count", Data: points}},
		Colors:     assignColors(pastelColors, len(points)),
		ShowLegend: true,
	}
}

func buildHistogram(bins []Bin) ChartConfig {
	points := make([]ChartPoint, 0, len(bins))
	for _, b := range bins {
		points = append(points, ChartPoint{
			Label: fmt.Sprintf("%.1f–%.1f", b.Lower, b.Upper),
			X:     b.Lower,
			Value: float64(b.Count),
		})
	}
	return ChartConfig{
		ID:        ChartScoreHistogram,
		ChartType: ChartHistogram,
		Title:     "Score distribution",
		XAxis:     LabelForDimension(MeasureScore),
		YAxis:     LabelForAggregation(AggCount),
		Series:    []ChartSeries{{Name: "participants", Data: points, Color: histogramColor}},
		Colors:    []string{histogramColor},
		ShowGrid:  true,
	}
}

func buildBoxes(id, title, dim string, boxes []GroupBox) ChartConfig {
	return ChartConfig{
		ID:        id,
		ChartType: ChartBox,
		Title:     title,
		XAxis:     LabelForDimension(dim),
		YAxis:     LabelForDimension(MeasureScore),
		Series:    []ChartSeries{},
		Boxes:     boxes,
		Colors:    assignColors(pastelColors, len(boxes)),
		ShowGrid:  true,
	}
}

func buildMeanByCategory(means []LabelValue) ChartConfig {
	points := make([]ChartPoint, 0, len(means))
	for _, m := range means {
		if !m.Value.Valid {
			continue
		}
		points = append(points, ChartPoint{Label: m.Label, Value: RoundTo2(m.Value.Value)})
	}
	return ChartConfig{
		ID:         ChartMeanScoreCategory,
		ChartType:  ChartBar,
		Title:      "Mean score by category",
		XAxis:      LabelForDimension(DimCategory),
		YAxis:      LabelForAggregation(AggAvg),
		Series:     []ChartSeries{{Name: "mean score", Data: points}},
		Colors:     assignColors(vividColors, len(points)),
		ShowLegend: true,
		ShowGrid:   true,
	}
}

func buildTopRegions(counts []LabelCount) ChartConfig {
	points := make([]ChartPoint, 0, len(counts))
	for _, c := range counts {
		points = append(points, ChartPoint{Label: c.Label, Value: float64(c.Count)})
	}
	return ChartConfig{
		ID:        ChartTopRegions,
		ChartType: ChartBarH,
		Title:     fmt.Sprintf("Top %d regions by participants", len(points)),
		XAxis:     "Participants",
		YAxis:     LabelForDimension(DimRegion),
		Series:    []ChartSeries{{Name: "participants", Data: points}},
		Colors:    []string{"#2171B5"},
		ShowGrid:  true,
	}
}

func buildScatter(trend Regression) ChartConfig {
	points := make([]ChartPoint, 0, len(trend.Points))
	for _, p := range trend.Points {
		points = append(points, ChartPoint{X: p.X, Value: p.Y})
	}
	t := trend
	t.Points = nil
	return ChartConfig{
		ID:        ChartDurationVsScore,
		ChartType: ChartScatter,
		Title:     "Test duration vs score",
		XAxis:     LabelForDimension(MeasureDuration),
		YAxis:     LabelForDimension(MeasureScore),
		Series:    []ChartSeries{{Name: "participants", Data: points}},
		Trend:     &t,
		ShowGrid:  true,
	}
}

func assignColors(palette []string, count int) []string {
	colors := make([]string, count)
	for i := 0; i < count; i++ {
		colors[i] = palette[i%len(palette)]
	}
	return colors
}
