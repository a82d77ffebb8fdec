package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/nandrad-tools/regsuite/internal/discover"
)

// platformIDPattern restricts platform identifiers to directory-suffix-safe names.
var platformIDPattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks a configuration for errors and returns warnings for non-fatal issues.
func Validate(cfg *Config) (warnings []string, err error) {
	if cfg.PlatformID != "" && !platformIDPattern.MatchString(cfg.PlatformID) {
		return nil, &ValidationError{Field: "platform_id", Message: "must match pattern ^[A-Za-z0-9_]+$"}
	}

	if cfg.Iterations < 1 {
		return nil, &ValidationError{Field: "iterations", Message: "must be at least 1"}
	}

	if err := cfg.Tolerance.Policy().Validate(); err != nil {
		return nil, &ValidationError{Field: "tolerance", Message: err.Error()}
	}

	for _, dir := range cfg.ExcludeDirs {
		if strings.ContainsAny(dir, `/\`) {
			return nil, &ValidationError{
				Field:   "exclude_dirs",
				Message: fmt.Sprintf("%q must be a directory name, not a path", dir),
			}
		}
		if dir == discover.ResourcesDir {
			warnings = append(warnings, fmt.Sprintf("exclude_dirs: %q skips whole subtrees; files directly inside it are skipped anyway", dir))
		}
	}

	return warnings, nil
}
