package output

import (
	"context"
	"io"

	"github.com/ccollicutt/fightlog/pkg/fight"
	"github.com/ccollicutt/fightlog/pkg/timeline"
)

// Renderer turns timeline entries and fight summaries into output lines for
// one dialect. Returned lines carry no line terminator.
type Renderer interface {
	// Narrative renders one narrative entry as a single line.
	Narrative(text string) []string

	// Round renders a damage round block, including its trailing blank lines.
	Round(r *timeline.DamageRound, rs fight.RoundStats) []string

	// Summary renders a flushed fight summary block.
	Summary(s *fight.Summary) []string

	// Name returns the dialect name (terminal, text, markup).
	Name() string
}

// Formatter renders a statistics report in a specific format.
type Formatter interface {
	// Format renders the report to the given writer.
	Format(ctx context.Context, report *Report, w io.Writer) error

	// Name returns the format name (text, json).
	Name() string
}

// FormatOptions controls formatter behavior.
type FormatOptions struct {
	// Verbose adds session metadata to the output.
	Verbose bool

	// Quiet enables minimal summary-only output.
	Quiet bool
}
