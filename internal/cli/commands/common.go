package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/ccollicutt/fightlog/internal/logging"
	"github.com/ccollicutt/fightlog/pkg/config"
	"github.com/ccollicutt/fightlog/pkg/timeline"
)

// GlobalOptions holds the persistent root flags shared by every command.
type GlobalOptions struct {
	ConfigPath string
	LogLevel   string
	LogFormat  string
}

// InitLogging configures slog from the flags. level overrides the flag
// when the flag is empty.
func (g *GlobalOptions) InitLogging(level string) error {
	if g.LogFormat != "text" && g.LogFormat != "json" {
		return fmt.Errorf("unknown log format %q (use text or json)", g.LogFormat)
	}
	if g.LogLevel != "" {
		level = g.LogLevel
	}
	logging.Init(logging.ParseLevel(level), g.LogFormat == "json")
	return nil
}

// LoadConfig reads the --config file, or the defaults when none was given,
// and re-applies the logging setup with the configured level.
func (g *GlobalOptions) LoadConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := config.LoadOrDefault(ctx, g.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := g.InitLogging(cfg.LogLevel); err != nil {
		return nil, err
	}
	return cfg, nil
}

// session is a loaded timeline and the files it came from.
type session struct {
	files   []string
	entries []timeline.Entry
}

// loadSession expands the log arguments and builds one timeline from all
// matching files. Paths that match nothing are logged and skipped.
func loadSession(ctx context.Context, patterns []string) (*session, error) {
	expanded, err := timeline.ExpandGlobs(patterns)
	if err != nil {
		return nil, fmt.Errorf("expanding log files: %w", err)
	}

	files := make([]string, 0, len(expanded))
	for _, f := range expanded {
		if _, err := os.Stat(f); errors.Is(err, fs.ErrNotExist) {
			slog.Warn("no log file matches", "path", f)
			continue
		}
		files = append(files, f)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no log files matched %v: %w", patterns, timeline.ErrNoFiles)
	}

	src := timeline.NewFileSource(files)
	defer src.Close()

	entries, err := timeline.Collect(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("loading logs: %w", err)
	}

	slog.Debug("logs loaded",
		"files", len(files),
		"entries", len(entries),
		"skipped_lines", src.Skipped())

	return &session{files: files, entries: entries}, nil
}
