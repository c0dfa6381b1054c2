package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/fightlog/pkg/output"
)

// StatsOptions holds command-line options for the stats command.
type StatsOptions struct {
	Output  string
	Verbose bool
	Quiet   bool
}

// NewStatsCommand creates the stats command.
func NewStatsCommand(g *GlobalOptions) *cobra.Command {
	opts := &StatsOptions{}

	cmd := &cobra.Command{
		Use:   "stats <log-file>...",
		Short: "Summarize every fight in a combat log",
		Long: `Replay a combat log without output and report each fight's damage,
hits and misses per actor, plus the totals over all fights.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd, args, g, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Include session details")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only, no details")

	return cmd
}

func runStats(cmd *cobra.Command, args []string, g *GlobalOptions, opts *StatsOptions) error {
	ctx := commandContext(cmd)

	cfg, err := g.LoadConfig(ctx)
	if err != nil {
		return err
	}

	formatter, err := createFormatter(opts)
	if err != nil {
		return err
	}

	sess, err := loadSession(ctx, args)
	if err != nil {
		return err
	}

	report, err := buildReport(sess, cfg)
	if err != nil {
		return err
	}

	if err := formatter.Format(ctx, report, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}
	return nil
}

func createFormatter(opts *StatsOptions) (output.Formatter, error) {
	formatOpts := output.FormatOptions{
		Verbose: opts.Verbose,
		Quiet:   opts.Quiet,
	}

	switch opts.Output {
	case "text":
		return output.NewTextFormatter(formatOpts), nil
	case "json":
		return output.NewJSONFormatter(formatOpts), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (use text or json)", opts.Output)
	}
}
