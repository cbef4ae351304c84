// Package config provides configuration loading for the dashboard.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the complete dashboard configuration.
type Config struct {
	Data   DataConfig   `yaml:"data"`
	Filter FilterConfig `yaml:"filter"`
	View   ViewConfig   `yaml:"view"`
	Stats  StatsConfig  `yaml:"stats"`
}

// DataConfig points at the input files.
type DataConfig struct {
	// Records is the sentencing records CSV (empty = read stdin when piped)
	Records string `yaml:"records"`
	// Counties is the optional StateCode,CountyName table
	Counties string `yaml:"counties"`
	// Presidents is the optional Years,President,Party table
	Presidents string `yaml:"presidents"`
	// Counts is an optional region,year,pop_density table written by
	// `dash preprocess`; the map shows it while gender and race are unfiltered
	Counts string `yaml:"counts"`
}

// FilterConfig configures the year slider.
type FilterConfig struct {
	// InitialYear is the slider position on load (default: 1976)
	InitialYear int `yaml:"initial_year"`
	// ResetYear is the slider position after a reset (default: 2020)
	ResetYear int `yaml:"reset_year"`
	// MinYear and MaxYear bound the slider
	MinYear int `yaml:"min_year"`
	MaxYear int `yaml:"max_year"`
	// Step is how far one slider key press moves (default: 1)
	Step int `yaml:"step"`
}

// ViewConfig configures the layout.
type ViewConfig struct {
	// Split is the width of the left column in percent of the screen [20,80]
	Split int `yaml:"split"`
	// TopCounties is the length of the county leaderboard
	TopCounties int `yaml:"top_counties"`
	// AltScreen uses the terminal alternate screen buffer
	AltScreen bool `yaml:"alt_screen"`
}

// StatsConfig configures the refresh statistics block.
type StatsConfig struct {
	Enabled bool `yaml:"enabled"`
	// Window is the number of recent refresh samples kept per view
	Window int `yaml:"window"`
}

// DefaultConfig returns a Config with the dashboard defaults.
func DefaultConfig() *Config {
	return &Config{
		Filter: FilterConfig{
			InitialYear: 1976,
			ResetYear:   2020,
			MinYear:     1976,
			MaxYear:     2019,
			Step:        1,
		},
		View: ViewConfig{
			Split:       50,
			TopCounties: 10,
			AltScreen:   true,
		},
		Stats: StatsConfig{
			Enabled: false,
			Window:  256,
		},
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Filter.MinYear > c.Filter.MaxYear {
		return fmt.Errorf("filter.min_year must be <= filter.max_year")
	}
	if c.Filter.InitialYear < c.Filter.MinYear || c.Filter.InitialYear > c.Filter.MaxYear {
		return fmt.Errorf("filter.initial_year must be in [%d,%d]", c.Filter.MinYear, c.Filter.MaxYear)
	}
	if c.Filter.Step < 1 {
		return fmt.Errorf("filter.step must be >= 1")
	}
	if c.View.TopCounties < 1 {
		return fmt.Errorf("view.top_counties must be >= 1")
	}
	if c.Stats.Window < 1 {
		return fmt.Errorf("stats.window must be >= 1")
	}
	return nil
}

// Normalize clamps values that have a sensible nearest setting.
func (c *Config) Normalize() {
	c.View.Split = max(20, c.View.Split)
	c.View.Split = min(80, c.View.Split)
	if c.Stats.Window < 16 {
		c.Stats.Window = 16
	}
}

// LoadFromFile loads configuration from a YAML file on top of the defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile writes the configuration as YAML.
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge copies the non-zero values of other into c.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Data
	if other.Data.Records != "" {
		c.Data.Records = other.Data.Records
	}
	if other.Data.Counties != "" {
		c.Data.Counties = other.Data.Counties
	}
	if other.Data.Presidents != "" {
		c.Data.Presidents = other.Data.Presidents
	}
	if other.Data.Counts != "" {
		c.Data.Counts = other.Data.Counts
	}

	// Filter
	if other.Filter.InitialYear != 0 {
		c.Filter.InitialYear = other.Filter.InitialYear
	}
	if other.Filter.ResetYear != 0 {
		c.Filter.ResetYear = other.Filter.ResetYear
	}
	if other.Filter.MinYear != 0 {
		c.Filter.MinYear = other.Filter.MinYear
	}
	if other.Filter.MaxYear != 0 {
		c.Filter.MaxYear = other.Filter.MaxYear
	}
	if other.Filter.Step != 0 {
		c.Filter.Step = other.Filter.Step
	}

	// View
	if other.View.Split != 0 {
		c.View.Split = other.View.Split
	}
	if other.View.TopCounties != 0 {
		c.View.TopCounties = other.View.TopCounties
	}

	// Stats
	if other.Stats.Window != 0 {
		c.Stats.Window = other.Stats.Window
	}
}
