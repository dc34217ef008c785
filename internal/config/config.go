// =============================================================================
// TR-181 Excelifier - Configuration Module
// =============================================================================
//
// This module loads the optional application configuration. The converter
// works with built-in defaults; a YAML file can override output styling and
// logging behavior.
//
// CONFIGURATION FILE (excelifier.yaml):
//
//   min_column_width: 10
//   max_column_width: 80
//   bold_header: true
//   placeholder_sheet: Sheet1
//   log_level: info
//
// LOADING POLICY:
//   A missing file at the default path is not an error (defaults apply).
//   An explicitly requested file that cannot be read or parsed is.
//
// =============================================================================

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where the configuration is looked for when the user does
// not pass --config.
const DefaultPath = "excelifier.yaml"

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds all tunable settings for a conversion run.
type Config struct {
	// MinColumnWidth is the narrowest a sheet column may be sized, in
	// character units.
	// Default: 10
	MinColumnWidth float64 `yaml:"min_column_width"`

	// MaxColumnWidth caps content-based column sizing so a long
	// description cannot produce an unusable sheet.
	// Default: 80
	MaxColumnWidth float64 `yaml:"max_column_width"`

	// BoldHeader controls whether the header row is rendered bold.
	// Default: true
	BoldHeader *bool `yaml:"bold_header"`

	// PlaceholderSheet is the name of the sheet kept when the input
	// contains no models and no profiles. A workbook must contain at
	// least one sheet.
	// Default: "Sheet1"
	PlaceholderSheet string `yaml:"placeholder_sheet"`

	// LogLevel controls log verbosity: "debug", "info", "warn", "error".
	// The --verbose flag forces "debug" regardless of this setting.
	// Default: "info"
	LogLevel string `yaml:"log_level"`
}

// HeaderBold resolves the BoldHeader setting with its default.
func (c *Config) HeaderBold() bool {
	if c.BoldHeader == nil {
		return true
	}
	return *c.BoldHeader
}

// =============================================================================
// LOADING FUNCTIONS
// =============================================================================

// Default returns the built-in configuration.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads the configuration from a YAML file. The explicit flag tells
// the loader whether the path was supplied by the user: a missing file at
// the default location falls back to defaults, a missing file the user
// asked for is an error.
func Load(path string, explicit bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(cfg *Config) {
	if cfg.MinColumnWidth == 0 {
		cfg.MinColumnWidth = 10
	}
	if cfg.MaxColumnWidth == 0 {
		cfg.MaxColumnWidth = 80
	}
	if cfg.PlaceholderSheet == "" {
		cfg.PlaceholderSheet = "Sheet1"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
}

// validate rejects configurations the writer cannot honor.
func validate(cfg *Config) error {
	if cfg.MinColumnWidth < 0 || cfg.MaxColumnWidth < 0 {
		return fmt.Errorf("column widths must be non-negative")
	}
	if cfg.MinColumnWidth > cfg.MaxColumnWidth {
		return fmt.Errorf("min_column_width %v exceeds max_column_width %v",
			cfg.MinColumnWidth, cfg.MaxColumnWidth)
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", cfg.LogLevel)
	}

	return nil
}
