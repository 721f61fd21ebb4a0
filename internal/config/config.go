// Package config loads planner settings from a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables that override file settings.
const (
	EnvDatabase = "PLANNER_DB"
	EnvKey      = "PLANNER_KEY"
	EnvTimezone = "PLANNER_TIMEZONE"
	EnvLogLevel = "PLANNER_LOG_LEVEL"
)

// Defaults.
const (
	DefaultDatabase = "planner.db"
	DefaultKey      = "events"
	DefaultLogLevel = "info"
)

// Config is the planner configuration.
type Config struct {
	// Database is the path of the SQLite file holding the collection.
	Database string `yaml:"database"`

	// Key is the storage key of the collection.
	Key string `yaml:"key"`

	// Timezone is an IANA zone name used to interpret event dates and
	// times. Empty means the process local zone.
	Timezone string `yaml:"timezone"`

	LogLevel string `yaml:"log_level"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Database: DefaultDatabase,
		Key:      DefaultKey,
		LogLevel: DefaultLogLevel,
	}
}

// Load reads the YAML file at path, applies environment overrides, fills in
// defaults and validates the result.
//
// An empty path or a missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnv()
	cfg.Normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Normalize trims fields and restores defaults for empty values.
func (c *Config) Normalize() {
	c.Database = strings.TrimSpace(c.Database)
	c.Key = strings.TrimSpace(c.Key)
	c.Timezone = strings.TrimSpace(c.Timezone)
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))

	if c.Database == "" {
		c.Database = DefaultDatabase
	}
	if c.Key == "" {
		c.Key = DefaultKey
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
}

// Validate checks the timezone and log level.
func (c *Config) Validate() error {
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Location resolves Timezone. Empty means time.Local.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Level maps LogLevel to a slog level.
func (c *Config) Level() (slog.Level, error) {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level: %s", c.LogLevel)
	}
}

func (c *Config) applyEnv() {
	override(&c.Database, EnvDatabase)
	override(&c.Key, EnvKey)
	override(&c.Timezone, EnvTimezone)
	override(&c.LogLevel, EnvLogLevel)
}

func override(field *string, key string) {
	if value, ok := os.LookupEnv(key); ok {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			*field = trimmed
		}
	}
}
