package output

import (
	"github.com/ccollicutt/fightlog/pkg/fight"
	"github.com/ccollicutt/fightlog/pkg/markup"
	"github.com/ccollicutt/fightlog/pkg/timeline"
)

// PlainRenderer produces plain text with ANSI escapes removed.
type PlainRenderer struct{}

// NewPlainRenderer creates a plain-text renderer.
func NewPlainRenderer() *PlainRenderer {
	return &PlainRenderer{}
}

// Name returns the dialect name.
func (p *PlainRenderer) Name() string {
	return "text"
}

// Narrative renders text with escapes stripped.
func (p *PlainRenderer) Narrative(text string) []string {
	return []string{narrativeLine(markup.Strip(text))}
}

// Round renders a damage round block.
func (p *PlainRenderer) Round(r *timeline.DamageRound, rs fight.RoundStats) []string {
	return roundLines(roundHeader(r), rs, unstyled)
}

// Summary renders a fight summary block.
func (p *PlainRenderer) Summary(s *fight.Summary) []string {
	return summaryLines(summaryHeader(s), s, unstyled)
}
