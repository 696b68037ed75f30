// Package config loads cubestate settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds the settings shared by every command.
type Config struct {
	// ScrambleLength is the number of tokens in a generated scramble.
	ScrambleLength int `yaml:"scramble_length" validate:"gte=1,lte=1000"`

	// MoveDuration is how long the player animates one quarter turn.
	MoveDuration time.Duration `yaml:"move_duration" validate:"gte=0"`

	// Seed makes scrambles reproducible. Zero means crypto randomness.
	Seed uint64 `yaml:"seed"`

	// DBPath is the sqlite file for scramble history. Empty uses the default.
	DBPath string `yaml:"db_path"`

	LogLevel string `yaml:"log_level" validate:"oneof=debug info warn error"`

	// MetricsAddr serves /metrics while playing. Empty disables it.
	MetricsAddr string `yaml:"metrics_addr" validate:"omitempty,hostname_port"`
}

var validate = validator.New()

// Default returns the built-in settings.
func Default() Config {
	return Config{
		ScrambleLength: 25,
		MoveDuration:   500 * time.Millisecond,
		LogLevel:       "warn",
	}
}

// DefaultPath returns ~/.cubestate/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find the user's home directory: %w", err)
	}
	return filepath.Join(home, ".cubestate", "config.yaml"), nil
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field constraints.
func (c Config) Validate() error {
	return validate.Struct(c)
}

// Save writes the config as YAML, creating the parent directory.
func (c Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ParseLevel maps a config level name to a slog level.
func ParseLevel(level string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
		return slog.LevelWarn, fmt.Errorf("unknown log level %q", level)
	}
	return l, nil
}

// NewLogger returns a text logger on w at the given level.
func NewLogger(w io.Writer, level string) *slog.Logger {
	l, err := ParseLevel(level)
	if err != nil {
		l = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l}))
}
