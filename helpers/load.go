package helpers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spektr-org/bebras/engine"
	"github.com/spektr-org/bebras/schema"
)

// ============================================================================
// LOADER — File on disk → engine.Dataset
// ============================================================================
// The format is picked from the file extension. Every reader produces a
// Table which is resolved against schema.Contest() and converted to
// participants.
// ============================================================================

// DefaultTable is the SQLite table read when none is configured.
const DefaultTable = "results"

// ErrUnsupportedFormat is returned for an unknown file extension.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// LoadOptions selects the part of a file to read.
type LoadOptions struct {
	Sheet  string // XLSX worksheet, first sheet when empty
	Table  string // SQLite table, DefaultTable when empty
	Logger *slog.Logger
}

// ReadTable reads path into a Table without resolving columns.
func ReadTable(ctx context.Context, path string, opts LoadOptions) (*Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()
		return ReadCSV(f)
	case ".xlsx":
		return ReadXLSX(path, opts.Sheet)
	case ".db", ".sqlite", ".sqlite3":
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		return ReadSQLite(ctx, path, opts.Table)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Load reads path and builds the dataset.
func Load(ctx context.Context, path string, opts LoadOptions) (*engine.Dataset, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	t, err := ReadTable(ctx, path, opts)
	if err != nil {
		return nil, err
	}
	ds, err := FromTable(t, path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	logger.Info("dataset loaded",
		"path", path,
		"rows", ds.Len(),
		"skipped", t.Skipped,
		"duration", ds.HasDuration())
	return ds, nil
}

// FromTable resolves t against the contest schema.
func FromTable(t *Table, source string) (*engine.Dataset, error) {
	layout, err := schema.Contest().Resolve(t.Headers)
	if err != nil {
		return nil, err
	}
	records := toParticipants(layout, t.Rows)
	return engine.NewDataset(records, layout.Has(engine.MeasureDuration), source), nil
}

// Inspect reads path and profiles its columns against the contest schema.
// A missing required column is reported as an error alongside the
// partial inspection.
func Inspect(ctx context.Context, path string, opts LoadOptions) (*schema.Inspection, error) {
	t, err := ReadTable(ctx, path, opts)
	if err != nil {
		return nil, err
	}
	cfg := schema.Contest()
	layout, rerr := cfg.Resolve(t.Headers)
	ins := cfg.Inspect(layout, t.Rows, 5)
	if rerr != nil {
		return ins, fmt.Errorf("inspect %s: %w", path, rerr)
	}
	return ins, nil
}
