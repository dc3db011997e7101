package schema

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// ============================================================================
// COLUMN RESOLUTION — Header row → field positions
// ============================================================================
// Every loader reads a header row first and resolves it here:
//   1. Normalise each header to snake_case
//   2. Match against each field's aliases (first match wins)
//   3. Fail on a missing required field, record unmatched headers as skipped
// ============================================================================

// ErrMissingColumn is returned when a required field has no column.
var ErrMissingColumn = errors.New("missing required column")

// Layout maps field keys to column positions of one source.
type Layout struct {
	Headers []string        `json:"headers"`
	Index   map[string]int  `json:"index"`
	Skipped []SkippedColumn `json:"skipped,omitempty"`
}

// SkippedColumn records a header that matched no field.
type SkippedColumn struct {
	Column string `json:"column"`
	Reason string `json:"reason"`
}

// Resolve matches headers against the schema.
func (c Config) Resolve(headers []string) (Layout, error) {
	l := Layout{
		Headers: headers,
		Index:   make(map[string]int, len(headers)),
	}

	normalised := make([]string, len(headers))
	for i, h := range headers {
		normalised[i] = toSnakeCase(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
	}

	claimed := make(map[int]bool, len(headers))
	var missing []string
	for _, f := range c.fields() {
		idx := -1
		for _, alias := range f.aliases {
			for i, h := range normalised {
				if !claimed[i] && h == alias {
					idx = i
					break
				}
			}
			if idx >= 0 {
				break
			}
		}
		if idx < 0 {
			if f.required {
				missing = append(missing, f.key)
			}
			continue
		}
		claimed[idx] = true
		l.Index[f.key] = idx
	}

	for i, h := range headers {
		if !claimed[i] {
			l.Skipped = append(l.Skipped, SkippedColumn{Column: h, Reason: "no matching field"})
		}
	}

	if len(missing) > 0 {
		return l, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return l, nil
}

// Has reports whether the source has a column for key.
func (l Layout) Has(key string) bool {
	_, ok := l.Index[key]
	return ok
}

// Value returns the cell of row for key exactly as read, or "" when the
// column is absent or the row is short.
func (l Layout) Value(row []string, key string) string {
	idx, ok := l.Index[key]
	if !ok || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// ============================================================================
// INSPECTION — per-column profile of a loaded source
// ============================================================================

// ColumnProfile summarises one matched column.
type ColumnProfile struct {
	Key          string   `json:"key"`
	Header       string   `json:"header"`
	DisplayName  string   `json:"displayName"`
	Distinct     int      `json:"distinct"`
	Missing      int      `json:"missing"`
	SampleValues []string `json:"sampleValues"`
	Cardinality  string   `json:"cardinalityHint"` // "low", "medium", "high"
}

// Inspection describes how a source maps onto the schema.
type Inspection struct {
	Schema   string          `json:"schema"`
	Rows     int             `json:"rows"`
	Columns  []ColumnProfile `json:"columns"`
	Skipped  []SkippedColumn `json:"skippedColumns,omitempty"`
	Optional []string        `json:"absentOptional,omitempty"`
}

// Inspect profiles rows against the resolved layout.
func (c Config) Inspect(l Layout, rows [][]string, maxSamples int) *Inspection {
	if maxSamples <= 0 {
		maxSamples = 5
	}
	ins := &Inspection{Schema: c.Name, Rows: len(rows), Skipped: l.Skipped}

	for _, f := range c.fields() {
		idx, ok := l.Index[f.key]
		if !ok {
			ins.Optional = append(ins.Optional, f.key)
			continue
		}
		unique := make(map[string]bool)
		missing := 0
		for _, row := range rows {
			v := l.Value(row, f.key)
			if v == "" {
				missing++
				continue
			}
			unique[v] = true
		}
		ins.Columns = append(ins.Columns, ColumnProfile{
			Key:          f.key,
			Header:       l.Headers[idx],
			DisplayName:  toDisplayName(f.key),
			Distinct:     len(unique),
			Missing:      missing,
			SampleValues: collectSamples(unique, maxSamples),
			Cardinality:  cardinalityHint(len(unique), len(rows)),
		})
	}
	return ins
}

func cardinalityHint(distinct, rows int) string {
	switch {
	case distinct <= 20:
		return "low"
	case rows > 0 && float64(distinct)/float64(rows) > 0.5:
		return "high"
	default:
		return "medium"
	}
}

// ============================================================================
// STRING UTILITIES
// ============================================================================

// toSnakeCase converts "Column Name" or "columnName" → "column_name".
func toSnakeCase(s string) string {
	// Handle camelCase: insert underscore before uppercase letters
	var result strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) && i > 0 {
			prev := rune(s[i-1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) {
				result.WriteRune('_')
			}
		}
		result.WriteRune(r)
	}

	s = result.String()
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "__", "_")
	s = strings.Trim(s, "_")
	return s
}

// toDisplayName converts "sub_region" → "Sub Region".
func toDisplayName(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

// collectSamples picks up to maxSamples values in sorted order.
func collectSamples(uniqueSet map[string]bool, maxSamples int) []string {
	samples := make([]string, 0, len(uniqueSet))
	for v := range uniqueSet {
		samples = append(samples, v)
	}

	// Sort for deterministic output
	sort.Strings(samples)

	if len(samples) > maxSamples {
		samples = samples[:maxSamples]
	}
	return samples
}
