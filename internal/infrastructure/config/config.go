package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Logging   LogConfig
	Library   LibraryConfig
	Fetch     FetchConfig
	Sandbox   SandboxConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8600" yaml:"port"`
	Host string `envconfig:"HOST" default:"0.0.0.0" yaml:"host"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info" yaml:"level"`
	Development bool   `envconfig:"LOG_DEV" default:"false" yaml:"development"`
}

// LibraryConfig holds prebuilt game library configuration.
type LibraryConfig struct {
	Path    string `envconfig:"LIBRARY_PATH" default:"" yaml:"path"`
	Enabled bool   `envconfig:"LIBRARY_ENABLED" default:"false" yaml:"enabled"`
}

// FetchConfig holds remote game fetching configuration.
type FetchConfig struct {
	TimeoutSeconds int `envconfig:"FETCH_TIMEOUT" default:"15" yaml:"timeout_seconds"`
	MaxBytes       int `envconfig:"FETCH_MAX_BYTES" default:"2097152" yaml:"max_bytes"`
}

// SandboxConfig holds headless verification sandbox configuration.
type SandboxConfig struct {
	TimeoutSeconds int `envconfig:"SANDBOX_TIMEOUT" default:"5" yaml:"timeout_seconds"`
	PoolSize       int `envconfig:"SANDBOX_POOL_SIZE" default:"4" yaml:"pool_size"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"100" yaml:"requests_per_second"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"200" yaml:"burst"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true" yaml:"enabled"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns defaults.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server:    ServerConfig{Port: "8600", Host: "0.0.0.0"},
		Logging:   LogConfig{Level: "info", Development: false},
		Library:   LibraryConfig{},
		Fetch:     FetchConfig{TimeoutSeconds: 15, MaxBytes: 2 * 1024 * 1024},
		Sandbox:   SandboxConfig{TimeoutSeconds: 5, PoolSize: 4},
		RateLimit: RateLimitConfig{RequestsPerSecond: 100, Burst: 200, Enabled: true},
	}
}
