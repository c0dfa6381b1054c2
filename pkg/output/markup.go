package output

import (
	"github.com/ccollicutt/fightlog/pkg/fight"
	"github.com/ccollicutt/fightlog/pkg/markup"
	"github.com/ccollicutt/fightlog/pkg/timeline"
)

// MarkupRenderer produces forum markup: narrative colors become color tags
// and block headers are bold.
type MarkupRenderer struct {
	tr *markup.Translator
}

// NewMarkupRenderer creates a markup renderer using the given palette.
func NewMarkupRenderer(p markup.Palette) *MarkupRenderer {
	return &MarkupRenderer{tr: markup.NewTranslator(p)}
}

// Name returns the dialect name.
func (m *MarkupRenderer) Name() string {
	return "markup"
}

// Narrative renders text through the color translator.
func (m *MarkupRenderer) Narrative(text string) []string {
	return []string{narrativeLine(m.tr.Translate(text))}
}

// Round renders a damage round block with a bold header.
func (m *MarkupRenderer) Round(r *timeline.DamageRound, rs fight.RoundStats) []string {
	return roundLines(markup.Bold(roundHeader(r)), rs, unstyled)
}

// Summary renders a fight summary block with a bold header.
func (m *MarkupRenderer) Summary(s *fight.Summary) []string {
	return summaryLines(markup.Bold(summaryHeader(s)), s, unstyled)
}
