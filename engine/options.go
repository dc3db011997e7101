package engine

import "log/slog"

// ============================================================================
// DASHBOARD OPTIONS — Functional options for NewDashboard()
// ============================================================================

// Option configures dashboard behavior via functional options pattern.
type Option func(*config)

type config struct {
	TopScorers    int // rows in the top scorers table
	TopRegions    int // bars in the top regions chart
	HistogramBins int
	Logger        *slog.Logger
}

// WithTopScorers sets how many participants the top scorers table lists.
func WithTopScorers(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.TopScorers = n
		}
	}
}

// WithTopRegions sets how many regions the participation ranking shows.
func WithTopRegions(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.TopRegions = n
		}
	}
}

// WithHistogramBins sets the score histogram bucket count.
func WithHistogramBins(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.HistogramBins = n
		}
	}
}

// WithLogger sets the logger used for pipeline runs.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.Logger = l
		}
	}
}

// applyOptions creates a config from functional options.
func applyOptions(opts []Option) *config {
	cfg := &config{
		TopScorers:    10,
		TopRegions:    10,
		HistogramBins: DefaultBins,
		Logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}
