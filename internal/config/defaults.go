package config

import "github.com/nandrad-tools/regsuite/internal/compare"

// Default configuration values.
const (
	DefaultIterations    = 3
	DefaultToleranceMode = string(compare.ModeCombined)
)

// Default returns a configuration with all defaults applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// applyDefaults fills in default values for unset configuration fields.
func applyDefaults(cfg *Config) {
	if cfg.Iterations == 0 {
		cfg.Iterations = DefaultIterations
	}
	applyToleranceDefaults(cfg)
}

func applyToleranceDefaults(cfg *Config) {
	if cfg.Tolerance == nil {
		cfg.Tolerance = &ToleranceConfig{}
	}
	if cfg.Tolerance.Mode == "" {
		cfg.Tolerance.Mode = DefaultToleranceMode
	}
}
