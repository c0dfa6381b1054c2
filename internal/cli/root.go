// Package cli provides the command-line interface for fightlog.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/fightlog/internal/cli/commands"
	"github.com/ccollicutt/fightlog/pkg/config"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	if err := NewRootCommand().Execute(); err != nil {
		// SilenceErrors prevents Cobra from printing this itself.
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}
	return 0
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	g := &commands.GlobalOptions{}

	rootCmd := &cobra.Command{
		Use:   "fightlog",
		Short: "Replay MUD combat logs and summarize fights",
		Long: `fightlog replays JSON-lines combat logs recorded by a MUD client.

It prints the session's narrative text and damage rounds as virtual time
passes, and summarizes each fight per actor once the fight is over.

Exports:
  - plain text with color escapes removed
  - forum markup with color tags
  - JSON fight statistics`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.InitLogging(os.Getenv(config.EnvLogLevel))
		},
	}

	rootCmd.PersistentFlags().StringVarP(&g.ConfigPath, "config", "c", "", "Configuration file (YAML)")
	rootCmd.PersistentFlags().StringVar(&g.LogLevel, "log-level", "", "Log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().StringVar(&g.LogFormat, "log-format", "text", "Log format on stderr (text|json)")

	rootCmd.AddCommand(commands.NewReplayCommand(g))
	rootCmd.AddCommand(commands.NewExportCommand(g))
	rootCmd.AddCommand(commands.NewStatsCommand(g))
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
