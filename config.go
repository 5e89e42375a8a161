package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the run parameters. Zero values in a YAML file keep the
// defaults.
type Config struct {
	Version int `yaml:"version"`

	// QualityHorizon is the number of minutes searched in quality mode.
	QualityHorizon int `yaml:"quality_horizon"`
	// TopHorizon is the number of minutes searched in top-product mode.
	TopHorizon int `yaml:"top_horizon"`
	// TopCount is how many leading blueprints top-product mode multiplies.
	TopCount int `yaml:"top_count"`
	// Workers caps the goroutines evaluating blueprints. 0 means GOMAXPROCS.
	Workers int `yaml:"workers"`
	// Verbose prints per-search statistics to stderr.
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns the standard settings: 24 minutes for
// the quality sum, 32 minutes over the first three blueprints for the product.
func DefaultConfig() Config {
	return Config{
		Version:        1,
		QualityHorizon: 24,
		TopHorizon:     32,
		TopCount:       3,
	}
}

// LoadConfig reads a YAML config file on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Version != 1 {
		return cfg, fmt.Errorf("unsupported config version: %d", cfg.Version)
	}
	return cfg, cfg.Validate()
}

// Validate checks that the horizons fit the search and the counts are sane.
func (c Config) Validate() error {
	for _, h := range []struct {
		name string
		v    int
	}{{"quality_horizon", c.QualityHorizon}, {"top_horizon", c.TopHorizon}} {
		if h.v < 1 || h.v > MaxHorizon {
			return fmt.Errorf("%s %d outside 1..%d", h.name, h.v, MaxHorizon)
		}
	}
	if c.TopCount < 1 {
		return fmt.Errorf("top_count %d must be at least 1", c.TopCount)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers %d must not be negative", c.Workers)
	}
	return nil
}

// Verbose controls whether detailed search progress is printed to stderr.
var Verbose bool
