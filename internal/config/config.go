// Package config loads the service configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Search tunes the fan-out pipeline.
type Search struct {
	// MaxConcurrent bounds concurrent upstream fetches per request.
	MaxConcurrent int `yaml:"max_concurrent"`
	// TimeoutSeconds bounds the total duration of one request's fan-out.
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// Quotas bounds inbound request sizes.
type Quotas struct {
	MaxRequestBodyBytes int64 `yaml:"max_request_body_bytes"`
}

// Config is the service configuration, loaded from config.yml in the data
// directory. A missing file is created with defaults so the deployment has
// something to edit.
type Config struct {
	Search Search `yaml:"search"`
	Quotas Quotas `yaml:"quotas"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Search: Search{
			MaxConcurrent:  4,
			TimeoutSeconds: 30,
		},
		Quotas: Quotas{
			MaxRequestBodyBytes: 1 << 20,
		},
	}
}

// Timeout returns the fan-out timeout as a duration.
func (s *Search) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// Load reads config.yml from dataDir, creating it with defaults if absent.
// Unset fields fall back to their defaults.
func Load(dataDir string) (*Config, error) {
	path := filepath.Join(dataDir, "config.yml")
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg := Default()
		if err := write(path, cfg); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if cfg.Search.MaxConcurrent <= 0 {
		cfg.Search.MaxConcurrent = Default().Search.MaxConcurrent
	}
	if cfg.Search.TimeoutSeconds <= 0 {
		cfg.Search.TimeoutSeconds = Default().Search.TimeoutSeconds
	}
	if cfg.Quotas.MaxRequestBodyBytes <= 0 {
		cfg.Quotas.MaxRequestBodyBytes = Default().Quotas.MaxRequestBodyBytes
	}
	return cfg, nil
}

func write(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
