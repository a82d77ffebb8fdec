package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/nandrad-tools/regsuite/internal/schema"
)

// FileName is the configuration file looked up in the suite root.
const FileName = "regsuite.yaml"

// Load reads and parses a regsuite.yaml configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// LoadAndValidate reads a config file, checks it against the schema,
// applies defaults, validates it, and returns warnings.
func LoadAndValidate(path string) (*Config, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := schema.ValidateSuiteConfig(data); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}

	cfg, unknownWarnings, err := LoadWithWarnings(data)
	if err != nil {
		return nil, nil, err
	}

	applyDefaults(cfg)

	validationWarnings, err := Validate(cfg)

	// Combine warnings from both sources.
	allWarnings := make([]string, 0, len(unknownWarnings)+len(validationWarnings))
	allWarnings = append(allWarnings, unknownWarnings...)
	allWarnings = append(allWarnings, validationWarnings...)

	if err != nil {
		return nil, allWarnings, err
	}

	return cfg, allWarnings, nil
}

// Find loads the configuration for a suite. An explicit path must exist;
// otherwise FileName in root is used when present, and defaults when not.
func Find(root, explicit string) (*Config, []string, error) {
	if explicit != "" {
		return LoadAndValidate(explicit)
	}

	path := filepath.Join(root, FileName)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Default(), nil, nil
	}
	return LoadAndValidate(path)
}
