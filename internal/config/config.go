// Package config loads ~/.timeblock/config.yaml. Every field has a
// working default so a missing file just means a stock setup.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ServerConfig configures the optional HTTP API mode.
type ServerConfig struct {
	Addr          string `yaml:"addr"`
	JWTSecret     string `yaml:"jwt_secret"`
	TokenTTLHours int    `yaml:"token_ttl_hours"`
}

// Config holds the application configuration.
type Config struct {
	Database string       `yaml:"database"`
	User     string       `yaml:"user"`
	Notify   bool         `yaml:"notify"`
	Server   ServerConfig `yaml:"server"`
}

// Default returns the stock configuration rooted at ~/.timeblock.
func Default() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return &Config{
		Database: filepath.Join(home, ".timeblock", "timeblock.db"),
		User:     "local",
		Notify:   true,
		Server: ServerConfig{
			Addr:          ":8080",
			TokenTTLHours: 24,
		},
	}
}

// Path returns the config file location.
func Path() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".timeblock", "config.yaml")
}

// Load reads the config file over the defaults. A missing file is not
// an error.
func Load() (*Config, error) {
	return LoadFrom(Path())
}

// LoadFrom reads a specific config file over the defaults.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// Save writes the config back to its default location.
func (c *Config) Save() error {
	return c.SaveTo(Path())
}

// SaveTo writes the config to a specific path.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
