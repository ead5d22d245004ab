// Package config loads Javelin runtime settings from YAML files and
// environment variables.
//
// Precedence (highest to lowest):
//  1. Command-line flags (applied by the caller)
//  2. Environment variables (JAVELIN_*)
//  3. Config file
//  4. Built-in defaults
//
// Environment variables:
//   - JAVELIN_LOG_LEVEL="debug"
//   - JAVELIN_LOG_OUTPUT="stderr" | "stdout" | path
//   - JAVELIN_LOG_TIMESTAMPS=true
//   - JAVELIN_LOG_SOURCE=false
//   - JAVELIN_LOG_COLOR="auto" | "always" | "never"
//   - JAVELIN_LOG_NAME="sandbox"
//   - JAVELIN_LOG_STRICT=false
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/javelinengine/javelin/pkg/log"
)

// Config holds all runtime settings.
type Config struct {
	Log LogConfig `yaml:"log"`
}

// LogConfig configures the process logger.
type LogConfig struct {
	Level      log.Level `yaml:"level"`
	Output     string    `yaml:"output"`
	Timestamps bool      `yaml:"timestamps"`
	Source     bool      `yaml:"source"`
	Color      string    `yaml:"color"`
	Name       string    `yaml:"name"`
	// Strict makes template mistakes panic. Useful in development.
	Strict bool `yaml:"strict"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:      log.LevelInfo,
			Output:     "stderr",
			Timestamps: true,
			Color:      "auto",
		},
	}
}

// LoadFromFile reads a YAML file on top of the defaults. Keys missing from the
// file keep their default values.
func LoadFromFile(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Load returns the defaults overlaid with path (when non-empty) and then the
// environment.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		var err error
		if cfg, err = LoadFromFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

// ApplyEnv overrides fields from JAVELIN_* variables.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("JAVELIN_LOG_LEVEL"); v != "" {
		lvl, err := log.ParseLevel(v)
		if err != nil {
			return fmt.Errorf("JAVELIN_LOG_LEVEL: %w", err)
		}
		c.Log.Level = lvl
	}
	if v := os.Getenv("JAVELIN_LOG_OUTPUT"); v != "" {
		c.Log.Output = v
	}
	if v := os.Getenv("JAVELIN_LOG_COLOR"); v != "" {
		c.Log.Color = v
	}
	if v := os.Getenv("JAVELIN_LOG_NAME"); v != "" {
		c.Log.Name = v
	}
	for name, dst := range map[string]*bool{
		"JAVELIN_LOG_TIMESTAMPS": &c.Log.Timestamps,
		"JAVELIN_LOG_SOURCE":     &c.Log.Source,
		"JAVELIN_LOG_STRICT":     &c.Log.Strict,
	} {
		v := os.Getenv(name)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		*dst = b
	}
	return nil
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Log.Level < log.LevelTrace || c.Log.Level > log.LevelOff {
		return fmt.Errorf("log.level: invalid level %d", c.Log.Level)
	}
	if strings.TrimSpace(c.Log.Output) == "" {
		return errors.New("log.output: must not be empty")
	}
	if _, err := log.ParseColorMode(c.Log.Color); err != nil {
		return fmt.Errorf("log.color: %w", err)
	}
	return nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// NewLogger builds a logger from the settings. The returned Closer releases an
// opened log file and is a no-op for the standard streams.
func (c LogConfig) NewLogger() (*log.Logger, io.Closer, error) {
	mode, err := log.ParseColorMode(c.Color)
	if err != nil {
		return nil, nil, err
	}

	var (
		w      io.Writer
		closer io.Closer = nopCloser{}
	)
	switch c.Output {
	case "stderr", "":
		w = os.Stderr
	case "stdout":
		w = os.Stdout
	default:
		f, err := os.OpenFile(c.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log output: %w", err)
		}
		w, closer = f, f
	}

	logger := log.New(w,
		log.WithLevel(c.Level),
		log.WithTimestamp(c.Timestamps),
		log.WithSource(c.Source),
		log.WithColor(mode),
		log.WithName(c.Name),
		log.WithStrict(c.Strict),
	)
	return logger, closer, nil
}

func (c *Config) String() string {
	return fmt.Sprintf("Config{Log: level=%s output=%s timestamps=%t source=%t color=%s}",
		c.Log.Level, c.Log.Output, c.Log.Timestamps, c.Log.Source, c.Log.Color)
}
