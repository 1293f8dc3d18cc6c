package analysis

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the analysis settings. Percentiles are fractions in
// (0,1); the defaults match the production views (p75 regime split,
// p75 high-VIX, p95 extreme-VIX).
type Config struct {
	RegimePercentile     float64 `yaml:"regime_percentile"`      // Default: 0.75
	HighVixPercentile    float64 `yaml:"high_vix_percentile"`    // Default: 0.75
	ExtremeVixPercentile float64 `yaml:"extreme_vix_percentile"` // Default: 0.95
	MinSamples           int     `yaml:"min_samples"`            // Default: 30
}

// DefaultConfig returns the production analysis settings.
func DefaultConfig() Config {
	return Config{
		RegimePercentile:     0.75,
		HighVixPercentile:    0.75,
		ExtremeVixPercentile: 0.95,
		MinSamples:           30,
	}
}

// LoadConfig reads settings from a YAML file, filling unset fields
// with defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read analysis config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse analysis config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("analysis config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects settings the pipeline cannot run with.
func (c Config) Validate() error {
	for name, p := range map[string]float64{
		"regime_percentile":      c.RegimePercentile,
		"high_vix_percentile":    c.HighVixPercentile,
		"extreme_vix_percentile": c.ExtremeVixPercentile,
	} {
		if p <= 0 || p >= 1 {
			return fmt.Errorf("%s %v must be in (0,1)", name, p)
		}
	}
	if c.MinSamples < 2 {
		return fmt.Errorf("min_samples %d must be at least 2", c.MinSamples)
	}
	return nil
}
