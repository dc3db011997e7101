package helpers

import (
	"math"
	"strconv"
	"strings"

	"github.com/spektr-org/bebras/engine"
	"github.com/spektr-org/bebras/schema"
)

// Table is a header row plus string cells, the common shape every source
// is read into before conversion.
type Table struct {
	Headers []string
	Rows    [][]string
	Skipped int // malformed rows dropped by the reader
}

// toParticipants converts raw rows using the resolved layout. Text cells are
// kept as read; empty, unparseable or infinite numbers become NaN.
func toParticipants(l schema.Layout, rows [][]string) []engine.Participant {
	out := make([]engine.Participant, 0, len(rows))
	for _, row := range rows {
		if isBlank(row) {
			continue
		}
		out = append(out, engine.Participant{
			Name:            l.Value(row, engine.DimName),
			Class:           l.Value(row, engine.DimClass),
			Category:        l.Value(row, engine.DimCategory),
			Region:          l.Value(row, engine.DimRegion),
			SubRegion:       l.Value(row, engine.DimSubRegion),
			School:          l.Value(row, engine.DimSchool),
			Gender:          l.Value(row, engine.DimGender),
			Score:           parseNumber(l.Value(row, engine.MeasureScore)),
			DurationMinutes: parseNumber(l.Value(row, engine.MeasureDuration)),
		})
	}
	return out
}

// parseNumber accepts "80", "80.5" and the decimal comma form "80,5",
// ignoring surrounding spaces. "inf" and "NaN" count as missing.
func parseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		f, err = strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	}
	if err != nil || math.IsInf(f, 0) {
		return math.NaN()
	}
	return f
}

func isBlank(row []string) bool {
	for _, c := range row {
		if c != "" {
			return false
		}
	}
	return true
}
