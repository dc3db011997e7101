package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// CHART & TABLE BUILDER TESTS
// ============================================================================

func TestBuildChartsIDsAndTypes(t *testing.T) {
	dash, _ := newTestDashboard(t, true)
	r := dash.Report(Selection{})

	want := map[string]string{
		ChartGenderPie:         ChartPie,
		ChartCategoryPie:       ChartPie,
		ChartScoreHistogram:    ChartHistogram,
		ChartScoreBox:          ChartBox,
		ChartScoreByGender:     ChartBox,
		ChartScoreByClass:      ChartBox,
		ChartMeanScoreCategory: ChartBar,
		ChartTopRegions:        ChartBarH,
		ChartDurationVsScore:   ChartScatter,
	}
	for id, typ := range want {
		c, ok := FindChart(r.Charts, id)
		require.True(t, ok, id)
		assert.Equal(t, typ, c.ChartType, id)
	}
}

func TestBuildChartsContent(t *testing.T) {
	dash, _ := newTestDashboard(t, true)
	r := dash.Report(Selection{})

	pie, _ := FindChart(r.Charts, ChartGenderPie)
	require.Len(t, pie.Series, 1)
	assert.Equal(t, []ChartPoint{{Label: "P", Value: 3}, {Label: "L", Value: 3}}, pie.Series[0].Data)
	assert.Len(t, pie.Colors, 2)

	bar, _ := FindChart(r.Charts, ChartMeanScoreCategory)
	assert.Equal(t, []ChartPoint{{Label: "Siaga", Value: 63.33}, {Label: "Penggalang", Value: 80}}, bar.Series[0].Data)

	scatter, _ := FindChart(r.Charts, ChartDurationVsScore)
	assert.Len(t, scatter.Series[0].Data, 5)
	require.NotNil(t, scatter.Trend)
	assert.Nil(t, scatter.Trend.Points, "points live in the series only")

	box, _ := FindChart(r.Charts, ChartScoreByClass)
	assert.Len(t, box.Boxes, 4)
}

func TestBuildMeanByCategorySkipsNoData(t *testing.T) {
	c := buildMeanByCategory([]LabelValue{{Label: "A"}, {Label: "B", Value: Some(5)}})
	assert.Equal(t, []ChartPoint{{Label: "B", Value: 5}}, c.Series[0].Data)
}

func TestBuildTopScorersTable(t *testing.T) {
	td := BuildTopScorersTable([]RankedParticipant{
		{Rank: 1, Name: "Citra", Class: "7", School: "SMP 1", SubRegion: "Surabaya", Score: 90},
		{Rank: 2, Name: "Ayu", Class: "5", School: "SD 1", SubRegion: "Bandung", Score: 80.456},
	})
	assert.Equal(t, "#", td.Columns[0].Label)
	assert.Equal(t, []string{"1", "Citra", "7", "SMP 1", "Surabaya", "90.00"}, td.Rows[0])
	assert.Equal(t, "80.46", td.Rows[1][5])
	assert.Equal(t, "Top 2 participants by score", td.Title)
}

func TestBuildRowsTable(t *testing.T) {
	td := BuildRowsTable(Rows(sampleView()))
	require.Len(t, td.Rows, 6)
	assert.Equal(t, NoData, td.Rows[4][4])
	require.NotNil(t, td.Summary)
	assert.Equal(t, "6 participants", td.Summary.Values[DimName])
}
