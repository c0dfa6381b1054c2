package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/ccollicutt/fightlog/pkg/output"
	"github.com/ccollicutt/fightlog/pkg/playback"
)

// ReplayOptions holds command-line options for the replay command.
type ReplayOptions struct {
	Speed   float64
	Tick    time.Duration
	From    time.Duration
	Instant bool
	Format  string
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(g *GlobalOptions) *cobra.Command {
	opts := &ReplayOptions{}

	cmd := &cobra.Command{
		Use:   "replay <log-file>...",
		Short: "Replay a combat log in virtual time",
		Long: `Replay one or more JSON-lines combat logs, printing narrative text and
damage rounds as their timestamps are reached.

A fight ends after the configured fight gap passes without a damage round;
its summary is printed when that happens and at the end of the log.

Log arguments may be glob patterns, including "**".`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(cmd, args, g, opts)
		},
	}

	cmd.Flags().Float64Var(&opts.Speed, "speed", 0, "Playback speed multiplier (default from config, 1)")
	cmd.Flags().DurationVar(&opts.Tick, "tick", 0, "Clock tick interval (default from config, 250ms)")
	cmd.Flags().DurationVar(&opts.From, "from", 0, "Start this far into the log")
	cmd.Flags().BoolVar(&opts.Instant, "instant", false, "Print the whole log without waiting")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "terminal", "Output dialect (terminal|text|markup)")

	return cmd
}

func runReplay(cmd *cobra.Command, args []string, g *GlobalOptions, opts *ReplayOptions) error {
	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := g.LoadConfig(ctx)
	if err != nil {
		return err
	}

	speed := cfg.Playback.Speed
	if opts.Speed != 0 {
		speed = opts.Speed
	}
	if speed <= 0 {
		return fmt.Errorf("invalid speed %v: must be > 0", speed)
	}
	tick := cfg.Playback.Tick
	if opts.Tick != 0 {
		tick = opts.Tick
	}
	if tick <= 0 {
		return fmt.Errorf("invalid tick %v: must be > 0", tick)
	}
	if opts.From < 0 {
		return fmt.Errorf("invalid start offset %v: must not be negative", opts.From)
	}

	sess, err := loadSession(ctx, args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	renderer, err := output.NewRenderer(opts.Format, cfg.Markup.Palette(), lipgloss.NewRenderer(out))
	if err != nil {
		return err
	}

	p := playback.New(renderer, playback.NewWriterSink(out),
		playback.WithLogger(slog.Default()),
		playback.WithGap(cfg.Playback.FightGap))
	p.Load(sess.entries)

	slog.Info("replay started",
		"session", p.Session(),
		"entries", len(sess.entries),
		"duration", p.Duration(),
		"speed", speed)

	if opts.Instant {
		if _, err := p.Drain(); err != nil {
			return fmt.Errorf("replaying: %w", err)
		}
	} else if err := play(ctx, p, opts.From, tick, speed); err != nil {
		return fmt.Errorf("replaying: %w", err)
	}

	slog.Info("replay finished",
		"session", p.Session(),
		"elapsed", p.Elapsed(),
		"fights", len(p.Fights()),
		"interrupted", ctx.Err() != nil)

	return nil
}

// play advances p by tick*speed of virtual time on every tick until the log
// is exhausted or ctx is cancelled.
func play(ctx context.Context, p *playback.Pipeline, from, tick time.Duration, speed float64) error {
	elapsed := from
	if _, err := p.Advance(elapsed); err != nil {
		return err
	}

	step := max(time.Duration(float64(tick)*speed), 1)
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for !p.Done() {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			elapsed += step
			if _, err := p.Advance(elapsed); err != nil {
				return err
			}
		}
	}
	return nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
