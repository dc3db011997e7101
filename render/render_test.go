package render

import (
	"bytes"
	"errors"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spektr-org/bebras/engine"
	"github.com/spektr-org/bebras/schema"
)

// ============================================================================
// TEST FIXTURES
// ============================================================================

func testReport(t *testing.T, sel engine.Selection, hasDuration bool) *engine.Report {
	t.Helper()
	data := []engine.Participant{
		{Name: "Ayu", Class: "5", Category: "Siaga", Region: "Jawa Barat", SubRegion: "Bandung", School: "SD 1", Gender: "P", Score: 80, DurationMinutes: 30},
		{Name: "Budi", Class: "6", Category: "Siaga", Region: "Jawa Barat", SubRegion: "Bogor", School: "SD 2", Gender: "L", Score: 60, DurationMinutes: 40},
		{Name: "Citra", Class: "7", Category: "Penggalang", Region: "Jawa Timur", SubRegion: "Surabaya", School: "SMP 1", Gender: "P", Score: 90, DurationMinutes: 25},
		{Name: "Dodi", Class: "8", Category: "Penggalang", Region: "Jawa Timur", SubRegion: "Malang", School: "SMP 2", Gender: "L", Score: 70, DurationMinutes: 35},
	}
	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	dash := engine.NewDashboard(engine.NewDataset(data, hasDuration, "test"), engine.WithLogger(quiet))
	return dash.Report(sel)
}

// ============================================================================
// TERMINAL TESTS
// ============================================================================

func TestReportTerminal(t *testing.T) {
	var buf bytes.Buffer
	Report(&buf, testReport(t, engine.Selection{}, true), TerminalOptions{})
	out := buf.String()

	assert.Contains(t, out, "Total data: 4 participants")
	assert.Contains(t, out, "75.00")
	assert.Contains(t, out, "Top 4 participants by score")
	assert.Contains(t, out, "Citra")
	assert.Contains(t, out, "R²")
	assert.NotContains(t, out, "All participants")
}

func TestReportTerminalRowsAndWarnings(t *testing.T) {
	var buf bytes.Buffer
	r := testReport(t, engine.Selection{Regions: []string{"Jawa Timur"}}, false)
	Report(&buf, r, TerminalOptions{ShowRows: true})
	out := buf.String()

	assert.Contains(t, out, "Selection: region=Jawa Timur")
	assert.Contains(t, out, "All participants")
	assert.Contains(t, out, "2 participants")
	assert.Contains(t, out, engine.DurationMissingWarning)
}

func TestReportTerminalEmpty(t *testing.T) {
	var buf bytes.Buffer
	Report(&buf, testReport(t, engine.Selection{Classes: []string{"12"}}, true), TerminalOptions{})
	out := buf.String()
	assert.Contains(t, out, "Total data: 0 participants")
	assert.Contains(t, out, engine.NoData)
	assert.Contains(t, out, "Not enough points")
}

func TestControlsTerminal(t *testing.T) {
	var buf bytes.Buffer
	Controls(&buf, engine.Controls{
		Region:    engine.Control{Label: "Region", Options: []string{"A", "B"}, Selected: []string{"A"}},
		SubRegion: engine.Control{Label: "Sub-region (follows Region)", Options: []string{"a1"}, Disabled: true},
		Category:  engine.Control{Label: "Category"},
		Class:     engine.Control{Label: "Class", Options: []string{"5"}},
	})
	out := buf.String()
	assert.Contains(t, out, "selected: A")
	assert.Contains(t, out, "[locked]")
	assert.Contains(t, out, "(no options)")
}

func TestMappingsTerminal(t *testing.T) {
	var buf bytes.Buffer
	Mappings(&buf, map[string]map[string][]string{
		engine.DimRegion: {"Jawa Barat": {"Bandung", "Bogor"}},
	})
	assert.Contains(t, buf.String(), "Bandung, Bogor")
}

func TestInspectionTerminal(t *testing.T) {
	var buf bytes.Buffer
	Inspection(&buf, &schema.Inspection{
		Schema:   "Contest results",
		Rows:     1200,
		Columns:  []schema.ColumnProfile{{Key: "name", Header: "Nama", Distinct: 1200, Cardinality: "high"}},
		Optional: []string{"duration_minutes"},
		Skipped:  []schema.SkippedColumn{{Column: "Extra", Reason: "no matching field"}},
	})
	out := buf.String()
	assert.Contains(t, out, "1,200 rows")
	assert.Contains(t, out, "Nama")
	assert.Contains(t, out, "absent: duration_minutes")
	assert.Contains(t, out, `ignored column "Extra"`)
}

// ============================================================================
// PNG TESTS
// ============================================================================

func TestPNGSupportedCharts(t *testing.T) {
	r := testReport(t, engine.Selection{}, true)
	for _, c := range r.Charts {
		if !Supported(c.ChartType) {
			continue
		}
		t.Run(c.ID, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, PNG(c, &buf, Size{Width: 400, Height: 300}))
			img, err := png.Decode(&buf)
			require.NoError(t, err)
			assert.Equal(t, 400, img.Bounds().Dx())
		})
	}
}

func TestPNGErrors(t *testing.T) {
	var buf bytes.Buffer
	err := PNG(engine.ChartConfig{ChartType: engine.ChartBox}, &buf, Size{})
	assert.True(t, errors.Is(err, ErrUnsupportedChart))

	err = PNG(engine.ChartConfig{ChartType: engine.ChartPie}, &buf, Size{})
	assert.True(t, errors.Is(err, ErrNoData))

	err = PNG(engine.ChartConfig{ChartType: engine.ChartBar}, &buf, Size{})
	assert.True(t, errors.Is(err, ErrNoData))

	one := engine.ChartConfig{ChartType: engine.ChartScatter, Series: []engine.ChartSeries{{Data: []engine.ChartPoint{{X: 1, Value: 2}}}}}
	assert.True(t, errors.Is(PNG(one, &buf, Size{}), ErrNoData))
}

func TestWriteAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "charts")
	r := testReport(t, engine.Selection{}, false)

	written, err := WriteAll(dir, r.Charts, Size{Width: 320, Height: 240})
	require.NoError(t, err)
	// pies, histogram, mean by category, top regions
	assert.Len(t, written, 5)
	for _, p := range written {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}
	_, err = os.Stat(filepath.Join(dir, engine.ChartScoreBox+".png"))
	assert.True(t, os.IsNotExist(err))
}
