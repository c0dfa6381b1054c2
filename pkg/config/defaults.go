package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/ccollicutt/fightlog/pkg/fight"
	"github.com/ccollicutt/fightlog/pkg/markup"
)

// Default values for configuration.
const (
	DefaultSpeed    = 1.0
	DefaultTick     = 250 * time.Millisecond
	DefaultFightGap = fight.DefaultGap
	DefaultLogLevel = "info"
)

// Environment variable names.
const (
	EnvSpeed    = "FIGHTLOG_SPEED"
	EnvLogLevel = "FIGHTLOG_LOG_LEVEL"
)

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	p := markup.DefaultPalette()
	indexed := make(map[int]string, len(p.Indexed))
	for k, v := range p.Indexed {
		indexed[k] = v
	}
	return &Config{
		Playback: PlaybackConfig{
			Speed:    DefaultSpeed,
			Tick:     DefaultTick,
			FightGap: DefaultFightGap,
		},
		Markup: MarkupConfig{
			Basic:   p.Basic[:],
			Bright:  p.Bright[:],
			Indexed: indexed,
		},
		LogLevel: DefaultLogLevel,
	}
}

// applyEnvironmentOverrides applies environment variable overrides to the config.
func (c *Config) applyEnvironmentOverrides() {
	if v := os.Getenv(EnvSpeed); v != "" {
		speed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			slog.Warn("ignoring invalid environment override", "var", EnvSpeed, "value", v)
		} else {
			c.Playback.Speed = speed
		}
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
}
