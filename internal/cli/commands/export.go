package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/fightlog/pkg/config"
	"github.com/ccollicutt/fightlog/pkg/output"
	"github.com/ccollicutt/fightlog/pkg/playback"
)

// ExportOptions holds command-line options for the export command.
type ExportOptions struct {
	Format string
	Out    string
}

// NewExportCommand creates the export command.
func NewExportCommand(g *GlobalOptions) *cobra.Command {
	opts := &ExportOptions{}

	cmd := &cobra.Command{
		Use:   "export <log-file>...",
		Short: "Export a combat log as text, forum markup or JSON",
		Long: `Render a whole combat log at once.

Formats:
  text    - plain text with color escapes removed
  markup  - forum markup with [color=...] tags and bold headers
  json    - fight statistics as JSON`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args, g, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "text", "Export format (text|markup|json)")
	cmd.Flags().StringVar(&opts.Out, "out", "", "Write to this file instead of stdout")

	return cmd
}

func runExport(cmd *cobra.Command, args []string, g *GlobalOptions, opts *ExportOptions) (err error) {
	ctx := commandContext(cmd)

	cfg, err := g.LoadConfig(ctx)
	if err != nil {
		return err
	}

	if opts.Format != "text" && opts.Format != "markup" && opts.Format != "json" {
		return fmt.Errorf("unknown export format %q (use text, markup or json)", opts.Format)
	}

	sess, err := loadSession(ctx, args)
	if err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if opts.Out != "" {
		f, ferr := os.Create(opts.Out) // #nosec G304 -- user-provided output path is expected
		if ferr != nil {
			return fmt.Errorf("creating output file: %w", ferr)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing output file: %w", cerr)
			}
		}()
		w = f
	}

	if opts.Format == "json" {
		report, err := buildReport(sess, cfg)
		if err != nil {
			return err
		}
		return output.NewJSONFormatter(output.FormatOptions{}).Format(ctx, report, w)
	}

	renderer, err := output.NewRenderer(opts.Format, cfg.Markup.Palette(), nil)
	if err != nil {
		return err
	}
	p := playback.New(renderer, playback.NewWriterSink(w),
		playback.WithLogger(slog.Default()),
		playback.WithGap(cfg.Playback.FightGap))
	p.Load(sess.entries)
	if _, err := p.Drain(); err != nil {
		return fmt.Errorf("exporting: %w", err)
	}
	return nil
}

// buildReport plays the whole session without output and collects its fights.
func buildReport(sess *session, cfg *config.Config) (*output.Report, error) {
	p := playback.New(output.NewPlainRenderer(), playback.Discard,
		playback.WithLogger(slog.Default()),
		playback.WithGap(cfg.Playback.FightGap))
	p.Load(sess.entries)
	if _, err := p.Drain(); err != nil {
		return nil, fmt.Errorf("replaying: %w", err)
	}
	return output.NewReport(p.Session(), sess.files, sess.entries, p.Fights()), nil
}
