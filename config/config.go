package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file looked up when no path is given.
const DefaultFile = "bebras.yaml"

// Config is the contents of bebras.yaml.
type Config struct {
	Dataset Dataset `yaml:"dataset"`
	Report  Report  `yaml:"report"`
	Server  Server  `yaml:"server"`
	Charts  Charts  `yaml:"charts"`
}

// Dataset locates the results file.
type Dataset struct {
	Path  string `yaml:"path"`
	Sheet string `yaml:"sheet,omitempty"` // XLSX only
	Table string `yaml:"table,omitempty"` // SQLite only
}

// Report sizes the dashboard rankings.
type Report struct {
	TopScorers    int `yaml:"top_scorers"`
	TopRegions    int `yaml:"top_regions"`
	HistogramBins int `yaml:"histogram_bins"`
}

// Server configures the HTTP API.
type Server struct {
	Addr string `yaml:"addr"`
}

// Charts configures PNG output.
type Charts struct {
	Dir    string `yaml:"dir"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Dataset: Dataset{Path: "dashboard_bebras.csv", Table: "results"},
		Report:  Report{TopScorers: 10, TopRegions: 10, HistogramBins: 10},
		Server:  Server{Addr: ":8080"},
		Charts:  Charts{Dir: "charts", Width: 800, Height: 500},
	}
}

// Load reads a YAML config from path. Fields absent from the file keep
// their defaults. When path is DefaultFile and it does not exist the
// defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && path == DefaultFile {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values no component can work with.
func (c *Config) Validate() error {
	var errs []error
	if c.Report.TopScorers < 0 {
		errs = append(errs, fmt.Errorf("report.top_scorers must not be negative"))
	}
	if c.Report.TopRegions < 0 {
		errs = append(errs, fmt.Errorf("report.top_regions must not be negative"))
	}
	if c.Report.HistogramBins < 0 {
		errs = append(errs, fmt.Errorf("report.histogram_bins must not be negative"))
	}
	if c.Charts.Width < 0 || c.Charts.Height < 0 {
		errs = append(errs, fmt.Errorf("charts.width and charts.height must not be negative"))
	}
	return errors.Join(errs...)
}
