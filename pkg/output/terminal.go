package output

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/ccollicutt/fightlog/pkg/fight"
	"github.com/ccollicutt/fightlog/pkg/timeline"
)

// TerminalRenderer writes narrative text unchanged, so the terminal draws the
// game's own colors, and styles block headers with lipgloss.
type TerminalRenderer struct {
	round   lipgloss.Style
	summary lipgloss.Style
	detail  lipgloss.Style
}

// NewTerminalRenderer creates a terminal renderer. The lipgloss renderer
// decides the color profile; a renderer over a non-terminal writer emits
// no styling at all.
func NewTerminalRenderer(r *lipgloss.Renderer) *TerminalRenderer {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return &TerminalRenderer{
		round:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("11")), // Yellow
		summary: r.NewStyle().Bold(true).Foreground(lipgloss.Color("14")), // Cyan
		detail:  r.NewStyle().Foreground(lipgloss.Color("8")),             // Gray
	}
}

// Name returns the dialect name.
func (t *TerminalRenderer) Name() string {
	return "terminal"
}

// Narrative renders text as-is.
func (t *TerminalRenderer) Narrative(text string) []string {
	return []string{narrativeLine(text)}
}

// Round renders a damage round block.
func (t *TerminalRenderer) Round(r *timeline.DamageRound, rs fight.RoundStats) []string {
	return roundLines(t.round.Render(roundHeader(r)), rs, t.styleDetail)
}

// Summary renders a fight summary block.
func (t *TerminalRenderer) Summary(s *fight.Summary) []string {
	return summaryLines(t.summary.Render(summaryHeader(s)), s, t.styleDetail)
}

func (t *TerminalRenderer) styleDetail(s string) string {
	return t.detail.Render(s)
}
