// Package config provides configuration loading and validation for fightlog.
package config

import (
	"time"

	"github.com/ccollicutt/fightlog/pkg/markup"
)

// Config is the root configuration structure loaded from YAML.
type Config struct {
	Playback PlaybackConfig `yaml:"playback"`
	Markup   MarkupConfig   `yaml:"markup"`
	LogLevel string         `yaml:"log_level"`
}

// PlaybackConfig controls the replay clock and fight detection.
type PlaybackConfig struct {
	// Speed multiplies wall-clock time into virtual time.
	Speed float64 `yaml:"speed"`

	// Tick is how often the replay clock advances.
	Tick time.Duration `yaml:"tick"`

	// FightGap is the silence after the last round that ends a fight.
	FightGap time.Duration `yaml:"fight_gap"`
}

// MarkupConfig names the colors used by the markup export.
type MarkupConfig struct {
	// Basic names SGR colors 30..37 in order.
	Basic []string `yaml:"basic"`

	// Bright names SGR colors 90..97 in order.
	Bright []string `yaml:"bright"`

	// Indexed names 256-color indices.
	Indexed map[int]string `yaml:"indexed"`
}

// Palette converts the markup section into a translator palette.
// Call only on a validated config.
func (m MarkupConfig) Palette() markup.Palette {
	var p markup.Palette
	copy(p.Basic[:], m.Basic)
	copy(p.Bright[:], m.Bright)
	p.Indexed = make(map[int]string, len(m.Indexed))
	for k, v := range m.Indexed {
		p.Indexed[k] = v
	}
	return p
}
