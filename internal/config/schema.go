// Package config provides loading and validation of the optional regsuite.yaml
// suite configuration file.
package config

import "github.com/nandrad-tools/regsuite/internal/compare"

// Config represents the complete regsuite.yaml configuration.
type Config struct {
	// PlatformID overrides the reference directory suffix derived from the OS.
	PlatformID string `yaml:"platform_id,omitempty"`
	// Iterations is the number of passes in performance mode.
	Iterations  int              `yaml:"iterations,omitempty"`
	Tolerance   *ToleranceConfig `yaml:"tolerance,omitempty"`
	ExcludeDirs []string         `yaml:"exclude_dirs,omitempty"`
	SolverArgs  []string         `yaml:"solver_args,omitempty"`
}

// ToleranceConfig configures numeric comparison of results. Pointer fields
// distinguish an explicit zero from an unset value.
type ToleranceConfig struct {
	Mode         string   `yaml:"mode,omitempty"`
	Absolute     *float64 `yaml:"absolute,omitempty"`
	Relative     *float64 `yaml:"relative,omitempty"`
	ULP          *int64   `yaml:"ulp,omitempty"`
	NaNEqualsNaN *bool    `yaml:"nan_equals_nan,omitempty"`
}

// Policy converts the configuration into a comparison policy. Unset fields
// take the default policy's values.
func (t *ToleranceConfig) Policy() compare.Tolerance {
	tol := compare.DefaultTolerance()
	if t == nil {
		return tol
	}
	if t.Mode != "" {
		tol.Mode = compare.ToleranceMode(t.Mode)
	}
	if t.Absolute != nil {
		tol.Absolute = *t.Absolute
	}
	if t.Relative != nil {
		tol.Relative = *t.Relative
	}
	if t.ULP != nil {
		tol.ULP = *t.ULP
	}
	if t.NaNEqualsNaN != nil {
		tol.NaNEqualsNaN = *t.NaNEqualsNaN
	}
	return tol
}
