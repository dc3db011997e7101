package helpers

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// ============================================================================
// CSV HELPER — Reads a CSV export into a Table
// ============================================================================
// Short rows are kept (missing cells read as ""), rows the CSV reader
// rejects are skipped and counted.
// ============================================================================

// ReadCSV reads the header and every row of a CSV stream.
func ReadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("CSV has no header row")
		}
		return nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}

	t := &Table{Headers: headers}
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				t.Skipped++
				continue // skip malformed rows
			}
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}
