// Package config loads the per-mode API endpoint configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Modes selectable at runtime.
const (
	ModeDevelopment = "development"
	ModeProduction  = "production"
)

// Endpoint describes one reachable deployment of the API.
type Endpoint struct {
	BaseURL string `yaml:"baseURL"`
}

// Config is the on-disk configuration: a default mode and one endpoint per
// mode.
type Config struct {
	Mode      string              `yaml:"mode"`
	Endpoints map[string]Endpoint `yaml:"endpoints"`
}

// Default returns a configuration pointing at a local development API.
func Default() *Config {
	return &Config{
		Mode: ModeDevelopment,
		Endpoints: map[string]Endpoint{
			ModeDevelopment: {BaseURL: "http://localhost:5000/api/"},
		},
	}
}

// Load reads a YAML config file. A missing file yields Default().
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if cfg.Mode == "" {
		cfg.Mode = ModeDevelopment
	}
	return &cfg, nil
}

// BaseURL returns the endpoint for mode, or for the configured default mode
// when mode is empty.
func (c *Config) BaseURL(mode string) (string, error) {
	if mode == "" {
		mode = c.Mode
	}
	ep, ok := c.Endpoints[mode]
	if !ok || ep.BaseURL == "" {
		return "", fmt.Errorf("config: no endpoint for mode %q", mode)
	}
	return ep.BaseURL, nil
}
