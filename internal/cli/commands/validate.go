package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/fightlog/pkg/config"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a configuration file",
		Long: `Validate a fightlog configuration file without replaying anything.

Checks:
  - YAML syntax
  - Playback speed, tick and fight gap
  - Markup palettes (8 basic and 8 bright names, indexed range 0..255)
  - Log level`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Validating %s...\n", configPath)

	cfg, err := config.Load(commandContext(cmd), configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Fprintf(out, "\nConfiguration valid!\n")
	fmt.Fprintf(out, "  Speed:     %g\n", cfg.Playback.Speed)
	fmt.Fprintf(out, "  Tick:      %s\n", cfg.Playback.Tick)
	fmt.Fprintf(out, "  Fight gap: %s\n", cfg.Playback.FightGap)
	fmt.Fprintf(out, "  Log level: %s\n", cfg.LogLevel)

	fmt.Fprintf(out, "\nIndexed colors:\n")
	indices := make([]int, 0, len(cfg.Markup.Indexed))
	for idx := range cfg.Markup.Indexed {
		indices = append(indices, idx)
	}
	sort.Ints(indices)
	for _, idx := range indices {
		fmt.Fprintf(out, "  %3d -> %s\n", idx, cfg.Markup.Indexed[idx])
	}

	return nil
}
