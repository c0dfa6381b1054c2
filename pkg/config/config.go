package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// paletteSize is the number of names in the basic and bright palettes.
const paletteSize = 8

// Load reads and validates a configuration file.
func Load(_ context.Context, path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided config path is expected
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnvironmentOverrides()

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault loads path, or returns the defaults with environment
// overrides applied when path is empty.
func LoadOrDefault(ctx context.Context, path string) (*Config, error) {
	if path != "" {
		return Load(ctx, path)
	}

	cfg := DefaultConfig()
	cfg.applyEnvironmentOverrides()
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// Validate checks a configuration for errors.
func Validate(cfg *Config) error {
	if err := validatePlayback(&cfg.Playback); err != nil {
		return fmt.Errorf("playback.%w", err)
	}

	if err := validateMarkup(&cfg.Markup); err != nil {
		return fmt.Errorf("markup.%w", err)
	}

	switch strings.ToLower(cfg.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log_level: invalid level %q (must be debug, info, warn, or error)", cfg.LogLevel)
	}

	return nil
}

func validatePlayback(p *PlaybackConfig) error {
	if p.Speed <= 0 {
		return fmt.Errorf("speed: must be > 0, got %v", p.Speed)
	}

	if p.Tick <= 0 {
		return fmt.Errorf("tick: must be > 0, got %v", p.Tick)
	}

	if p.FightGap <= 0 {
		return fmt.Errorf("fight_gap: must be > 0, got %v", p.FightGap)
	}

	return nil
}

func validateMarkup(m *MarkupConfig) error {
	if err := validateNames(m.Basic); err != nil {
		return fmt.Errorf("basic: %w", err)
	}

	if err := validateNames(m.Bright); err != nil {
		return fmt.Errorf("bright: %w", err)
	}

	for idx, name := range m.Indexed {
		if idx < 0 || idx > 255 {
			return fmt.Errorf("indexed: index %d out of range 0..255", idx)
		}
		if name == "" {
			return fmt.Errorf("indexed[%d]: name is required", idx)
		}
	}

	return nil
}

func validateNames(names []string) error {
	if len(names) != paletteSize {
		return fmt.Errorf("expected %d color names, got %d", paletteSize, len(names))
	}
	for i, name := range names {
		if name == "" {
			return errors.New("color names must not be empty")
		}
		if strings.ContainsAny(name, "[]") {
			return fmt.Errorf("[%d]: name %q must not contain brackets", i, name)
		}
	}
	return nil
}
