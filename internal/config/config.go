// Package config defines the generator configuration and how it is loaded.
//
// Values are layered, lowest precedence first: defaults from New, an optional
// YAML file, environment variables prefixed VISUALGEN_, and finally command
// line flags applied by the caller.
package config

import (
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Stage is one configurable pipeline stage.
type Stage struct {
	Title    string `koanf:"title"`
	Subtitle string `koanf:"subtitle"`
	Color    string `koanf:"color"`
}

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// DataDir holds grf_estimated.mot and grf_force_plate.mot.
	DataDir string `koanf:"data_dir"`

	// OutputDir is the root of the generated asset tree.
	OutputDir string `koanf:"output_dir"`

	// FontPath is the preferred scalable font for placeholder text.
	FontPath string `koanf:"font_path"`

	// DPI is recorded in static figures and scales figure sizes given in inches.
	DPI int `koanf:"dpi"`

	// MetricsFile, when set, receives a Prometheus textfile after each run.
	MetricsFile string `koanf:"metrics_file"`

	// DebugGrid overlays a world-unit grid on diagrams.
	DebugGrid bool `koanf:"debug_grid"`

	// PipelineTitle is drawn above the pipeline flowchart.
	PipelineTitle string `koanf:"pipeline_title"`

	// Stages overrides the default pipeline stages when non-empty.
	Stages []Stage `koanf:"stages"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:      "info",
		DataDir:       "results/",
		OutputDir:     "assets/",
		FontPath:      "arial.ttf",
		DPI:           150,
		PipelineTitle: "Markerless Biomechanical Analysis Pipeline",
	}
}

const (
	minDPI = 36
	maxDPI = 600
)

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.OutputDir) == "" {
		return fmt.Errorf("%w: output_dir must not be empty", ErrInvalidConfig)
	}
	if c.DPI < minDPI || c.DPI > maxDPI {
		return fmt.Errorf("%w: dpi %d outside [%d, %d]", ErrInvalidConfig, c.DPI, minDPI, maxDPI)
	}
	for i, s := range c.Stages {
		if s.Title == "" {
			return fmt.Errorf("%w: stage %d has no title", ErrInvalidConfig, i+1)
		}
		if _, err := colorful.Hex(s.Color); err != nil {
			return fmt.Errorf("%w: stage %d color %q: %v", ErrInvalidConfig, i+1, s.Color, err)
		}
	}
	return nil
}
