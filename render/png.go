package render

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/spektr-org/bebras/engine"
)

// ============================================================================
// PNG RENDERER — ChartConfig → image via go-chart
// ============================================================================
// Supported: pie, bar, horizontal bar (drawn vertically), histogram and
// scatter with its regression line. Box charts are printed as tables by the
// terminal renderer and have no image form.
// ============================================================================

var (
	// ErrUnsupportedChart is returned for chart types without an image form.
	ErrUnsupportedChart = errors.New("chart type has no image renderer")
	// ErrNoData is returned when a chart has nothing to draw.
	ErrNoData = errors.New("chart has no data")
)

// Size is the image size in pixels.
type Size struct {
	Width  int
	Height int
}

// DefaultSize is used when a dimension is zero.
var DefaultSize = Size{Width: 800, Height: 500}

func (s Size) orDefault() Size {
	if s.Width <= 0 {
		s.Width = DefaultSize.Width
	}
	if s.Height <= 0 {
		s.Height = DefaultSize.Height
	}
	return s
}

// PNG renders cfg as a PNG image into w.
func PNG(cfg engine.ChartConfig, w io.Writer, size Size) error {
	size = size.orDefault()
	switch cfg.ChartType {
	case engine.ChartPie:
		return renderPie(cfg, w, size)
	case engine.ChartBar, engine.ChartBarH, engine.ChartHistogram:
		return renderBars(cfg, w, size)
	case engine.ChartScatter:
		return renderScatter(cfg, w, size)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedChart, cfg.ChartType)
	}
}

// Supported reports whether PNG can render the chart type.
func Supported(chartType string) bool {
	switch chartType {
	case engine.ChartPie, engine.ChartBar, engine.ChartBarH, engine.ChartHistogram, engine.ChartScatter:
		return true
	}
	return false
}

// WriteAll renders every supported chart into dir as <id>.png and returns
// the written paths. Charts without data are skipped.
func WriteAll(dir string, charts []engine.ChartConfig, size Size) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create chart directory: %w", err)
	}

	var written []string
	for _, cfg := range charts {
		if !Supported(cfg.ChartType) {
			continue
		}
		path := filepath.Join(dir, cfg.ID+".png")
		if err := writeFile(path, cfg, size); err != nil {
			if errors.Is(err, ErrNoData) {
				continue
			}
			return written, fmt.Errorf("render %s: %w", cfg.ID, err)
		}
		written = append(written, path)
	}
	return written, nil
}

func writeFile(path string, cfg engine.ChartConfig, size Size) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := PNG(cfg, f, size); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

// ============================================================================
// CHART TYPES
// ============================================================================

func renderPie(cfg engine.ChartConfig, w io.Writer, size Size) error {
	points := firstSeries(cfg)
	values := make([]chart.Value, 0, len(points))
	total := 0.0
	for i, p := range points {
		if p.Value <= 0 {
			continue
		}
		total += p.Value
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s (%.0f)", p.Label, p.Value),
			Value: p.Value,
			Style: fillStyle(colorAt(cfg, i)),
		})
	}
	if len(values) == 0 || total == 0 {
		return ErrNoData
	}

	pie := chart.PieChart{
		Title:  cfg.Title,
		Width:  size.Width,
		Height: size.Height,
		Values: values,
	}
	return pie.Render(chart.PNG, w)
}

func renderBars(cfg engine.ChartConfig, w io.Writer, size Size) error {
	points := firstSeries(cfg)
	if len(points) == 0 {
		return ErrNoData
	}

	bars := make([]chart.Value, len(points))
	lo, hi := 0.0, 0.0
	for i, p := range points {
		lo = min(lo, p.Value)
		hi = max(hi, p.Value)
		bars[i] = chart.Value{
			Label: p.Label,
			Value: p.Value,
			Style: fillStyle(colorAt(cfg, i)),
		}
	}

	// bars and gaps (half a bar) share the plot width
	barWidth := (size.Width - 100) * 2 / (3 * len(bars))
	barWidth = max(4, min(barWidth, 60))
	spacing := max(1, barWidth/2)

	bc := chart.BarChart{
		Title:  cfg.Title,
		Width:  size.Width,
		Height: size.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		YAxis: chart.YAxis{
			Name:  cfg.YAxis,
			Range: &chart.ContinuousRange{Min: lo, Max: paddedMax(lo, hi)},
		},
		BarWidth:   barWidth,
		BarSpacing: spacing,
		Bars:       bars,
	}
	return bc.Render(chart.PNG, w)
}

func renderScatter(cfg engine.ChartConfig, w io.Writer, size Size) error {
	points := firstSeries(cfg)
	if len(points) < 2 {
		return ErrNoData
	}

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = p.X
		ys[i] = p.Value
	}

	dots := chart.ContinuousSeries{
		Name:    "participants",
		XValues: xs,
		YValues: ys,
		Style: chart.Style{
			StrokeWidth: chart.Disabled,
			DotWidth:    3,
			DotColor:    parseColor("#2171B5"),
		},
	}
	series := []chart.Series{dots}
	if cfg.Trend != nil && cfg.Trend.Valid() {
		series = append(series, &chart.LinearRegressionSeries{
			Name:        "OLS trend",
			InnerSeries: dots,
			Style: chart.Style{
				StrokeColor: parseColor("#E45756"),
				StrokeWidth: 2,
			},
		})
	}

	ch := chart.Chart{
		Title:  cfg.Title,
		Width:  size.Width,
		Height: size.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 12},
		},
		XAxis:  chart.XAxis{Name: cfg.XAxis, Range: flatRange(xs)},
		YAxis:  chart.YAxis{Name: cfg.YAxis, Range: flatRange(ys)},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return ch.Render(chart.PNG, w)
}

// ============================================================================
// HELPERS
// ============================================================================

// paddedMax leaves headroom above the tallest bar and keeps the axis range
// non-empty when every bar is zero.
func paddedMax(lo, hi float64) float64 {
	if hi <= lo {
		return lo + 1
	}
	return hi + (hi-lo)*0.1
}

// flatRange returns a padded range when every value is equal, which
// go-chart cannot scale on its own. Otherwise the axis auto-ranges.
func flatRange(vals []float64) chart.Range {
	lo, hi := vals[0], vals[0]
	for _, v := range vals[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	if hi > lo {
		return nil
	}
	return &chart.ContinuousRange{Min: lo - 1, Max: hi + 1}
}

func firstSeries(cfg engine.ChartConfig) []engine.ChartPoint {
	if len(cfg.Series) == 0 {
		return nil
	}
	return cfg.Series[0].Data
}

func colorAt(cfg engine.ChartConfig, i int) string {
	if len(cfg.Colors) == 0 {
		if len(cfg.Series) > 0 {
			return cfg.Series[0].Color
		}
		return ""
	}
	return cfg.Colors[i%len(cfg.Colors)]
}

func fillStyle(hex string) chart.Style {
	if hex == "" {
		return chart.Style{}
	}
	c := parseColor(hex)
	return chart.Style{FillColor: c, StrokeColor: c}
}

func parseColor(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}
