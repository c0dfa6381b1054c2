package output

import (
	"fmt"

	"github.com/ccollicutt/fightlog/pkg/fight"
	"github.com/ccollicutt/fightlog/pkg/timeline"
)

// Fixed line shapes shared by every dialect.
const (
	roundPrefix   = "⮞ Damage Round: "
	summaryPrefix = "— Fight summary — "
	bySource      = "By source:"
)

// blankAfterRound is the number of empty lines closing a round block.
const blankAfterRound = 2

func roundHeader(r *timeline.DamageRound) string {
	return fmt.Sprintf("%stotal=%s, hits=%d, misses=%d",
		roundPrefix, fight.FormatNumber(r.TotalDamage), r.Hits, r.Misses)
}

func summaryHeader(s *fight.Summary) string {
	return fmt.Sprintf("%stotalDamage=%s, hits=%d, misses=%d",
		summaryPrefix, fight.FormatNumber(s.Totals.Damage), s.Totals.Hits, s.Totals.Misses)
}

func actorLine(a fight.ActorStats) string {
	return fmt.Sprintf("  %s: %s dmg, %d hits, %d misses",
		a.Actor, fight.FormatNumber(a.Damage), a.Hits, a.Misses)
}

// narrativeLine keeps a visible row for empty text.
func narrativeLine(text string) string {
	if text == "" {
		return " "
	}
	return text
}

// roundLines assembles a round block around an already-styled header.
func roundLines(header string, rs fight.RoundStats, style func(string) string) []string {
	lines := []string{header}
	if len(rs.Actors) > 0 {
		lines = append(lines, style(bySource))
		for _, a := range rs.Actors {
			lines = append(lines, style(actorLine(a)))
		}
	}
	for i := 0; i < blankAfterRound; i++ {
		lines = append(lines, "")
	}
	return lines
}

// summaryLines assembles a summary block around an already-styled header.
func summaryLines(header string, s *fight.Summary, style func(string) string) []string {
	lines := []string{header}
	for _, a := range s.Actors {
		lines = append(lines, style(actorLine(a)))
	}
	return append(lines, "")
}

func unstyled(s string) string { return s }
