// Package config loads the server configuration file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration for the nutrigraph server.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Engine EngineConfig `yaml:"engine"`
	Redis  RedisConfig  `yaml:"redis"`
	Log    LogConfig    `yaml:"log"`
}

// ServerConfig configures the HTTP adapter.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// EngineConfig configures the executor.
type EngineConfig struct {
	MaxSteps int `yaml:"max_steps"`
}

// RedisConfig configures the optional Redis run store.
// An empty Addr selects the in-memory store.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	// TTL is a duration string (e.g. "24h"). Empty means no expiration.
	TTL string `yaml:"ttl"`
}

// ParseTTL returns the run expiration, or zero when unset.
func (r RedisConfig) ParseTTL() (time.Duration, error) {
	if r.TTL == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(r.TTL)
	if err != nil {
		return 0, fmt.Errorf("invalid redis ttl %q: %w", r.TTL, err)
	}
	return d, nil
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is provided.
func Default() Config {
	return Config{
		Server: ServerConfig{Addr: ":8080"},
		Engine: EngineConfig{MaxSteps: 100},
		Log:    LogConfig{Level: "info"},
	}
}

// Load reads a YAML configuration file, filling unset fields with defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Engine.MaxSteps <= 0 {
		cfg.Engine.MaxSteps = 100
	}
	return cfg, nil
}
