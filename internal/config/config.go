// Package config loads the host configuration for the tycoon binaries.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultProfileKey is the save slot used when none is configured
const DefaultProfileKey = "ai_cap_save_v1"

// Config is the host configuration
type Config struct {
	CatalogPath        string        `yaml:"catalog"`
	DatabasePath       string        `yaml:"database"`
	ProfileKey         string        `yaml:"profile_key"`
	RemoteURL          string        `yaml:"remote_url"`
	RemotePushInterval time.Duration `yaml:"remote_push_interval"`
	AutosaveInterval   time.Duration `yaml:"autosave_interval"`
	TickInterval       time.Duration `yaml:"tick_interval"`
	LogLevel           string        `yaml:"log_level"`
	LogFormat          string        `yaml:"log_format"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		DatabasePath:       "tycoon.db",
		ProfileKey:         DefaultProfileKey,
		RemotePushInterval: 30 * time.Second,
		AutosaveInterval:   10 * time.Second,
		TickInterval:       100 * time.Millisecond,
		LogLevel:           "info",
		LogFormat:          "text",
	}
}

// Load reads a YAML file over the defaults and validates the result
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every field
func (c *Config) Validate() error {
	var errs []error
	if c.DatabasePath == "" {
		errs = append(errs, errors.New("database path is required"))
	}
	if strings.TrimSpace(c.ProfileKey) == "" {
		errs = append(errs, errors.New("profile_key is required"))
	}
	if c.RemotePushInterval < 0 {
		errs = append(errs, fmt.Errorf("remote_push_interval must not be negative, got %s", c.RemotePushInterval))
	}
	if c.AutosaveInterval <= 0 {
		errs = append(errs, fmt.Errorf("autosave_interval must be positive, got %s", c.AutosaveInterval))
	}
	if c.TickInterval <= 0 {
		errs = append(errs, fmt.Errorf("tick_interval must be positive, got %s", c.TickInterval))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		errs = append(errs, fmt.Errorf("log_format must be text or json, got %q", c.LogFormat))
	}
	return errors.Join(errs...)
}

// Level parses LogLevel
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return level, fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// NewLogger builds the slog logger described by the config
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	level, err := c.Level()
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
