// Package config provides configuration types and defaults for the vecset
// host and the vecsh command.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/viant/sqlite-vecset/index"
)

// Config holds all host session options.
type Config struct {
	Debug   bool      `mapstructure:"debug" yaml:"debug"`
	SetKind string    `mapstructure:"set_kind" yaml:"set_kind"` // "auto" (default), "bitmap" or "sorted"
	Seed    uint64    `mapstructure:"seed" yaml:"seed"`         // 0 seeds Random from the runtime
	DSN     string    `mapstructure:"dsn" yaml:"dsn"`
	Metrics bool      `mapstructure:"metrics" yaml:"metrics"`
	Log     LogConfig `mapstructure:"log" yaml:"log"`
}

// LogConfig holds logger options.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`   // debug, info, warn, error
	Format string `mapstructure:"format" yaml:"format"` // "text" (default) or "json"
}

// Defaults returns the default configuration.
func Defaults() Config {
	return Config{
		SetKind: string(index.KindAuto),
		DSN:     ":memory:",
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate checks enumerated fields.
func (c Config) Validate() error {
	if _, err := index.ParseKind(c.SetKind); err != nil {
		return err
	}
	switch c.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("config: unsupported log format %q", c.Log.Format)
	}
	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unsupported log level %q", c.Log.Level)
	}
	return nil
}

// Kind returns the parsed set kind, falling back to auto.
func (c Config) Kind() index.Kind {
	kind, err := index.ParseKind(c.SetKind)
	if err != nil {
		return index.KindAuto
	}
	return kind
}

// Parse decodes YAML on top of the defaults.
func Parse(data []byte) (Config, error) {
	cfg := Defaults()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, cfg.Validate()
}

// WriteDefaultConfig writes the default configuration as YAML, creating
// parent directories as needed.
func WriteDefaultConfig(path string) error {
	data, err := yaml.Marshal(Defaults())
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
