package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// LoadFile loads configuration from a YAML file layered over environment
// values: env first, then the file overrides whatever it sets.
func LoadFile(path string) (*Config, error) {
	cfg := LoadOrDefault()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return cfg, nil
}
