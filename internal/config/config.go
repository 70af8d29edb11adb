// Package config loads server configuration from defaults, an optional
// YAML file, and TRADESTORE_* environment variable overrides, in that
// order.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
	Seed   SeedConfig   `yaml:"seed"`
}

type ServerConfig struct {
	Host  string `yaml:"host"`
	Port  int    `yaml:"port"`
	Token string `yaml:"token"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type SeedConfig struct {
	// DefaultCount is used when a seed request does not specify a count.
	DefaultCount int `yaml:"default_count"`
}

func defaults() Config {
	return Config{
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8090,
		},
		Log:  LogConfig{Level: "info"},
		Seed: SeedConfig{DefaultCount: 30},
	}
}

// Load reads configuration in layers: built-in defaults, then the YAML
// file named by TRADESTORE_CONFIG (or ./config.yaml when present), then
// TRADESTORE_* environment variables. The bearer token is required.
func Load() (Config, error) {
	cfg := defaults()

	path := os.Getenv("TRADESTORE_CONFIG")
	optional := false
	if path == "" {
		path = "config.yaml"
		optional = true
	}
	if err := applyFile(&cfg, path, optional); err != nil {
		return Config{}, err
	}

	applyEnvOverrides(&cfg)

	if strings.TrimSpace(cfg.Server.Token) == "" {
		return Config{}, fmt.Errorf("missing required config: API token. " +
			"Set server.token in the config file or TRADESTORE_TOKEN in the environment")
	}

	return cfg, nil
}

func applyFile(cfg *Config, path string, optional bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TRADESTORE_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("TRADESTORE_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("TRADESTORE_TOKEN"); v != "" {
		cfg.Server.Token = v
	}
	if v := os.Getenv("TRADESTORE_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("TRADESTORE_SEED_COUNT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Seed.DefaultCount = n
		}
	}
}

// Addr returns the host:port the server binds to.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
