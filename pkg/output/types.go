// Package output renders replayed timelines and fight statistics.
package output

import (
	"time"

	"github.com/ccollicutt/fightlog/pkg/fight"
	"github.com/ccollicutt/fightlog/pkg/timeline"
)

// Report is the statistics output of one fully replayed log.
type Report struct {
	// Summary provides aggregate statistics.
	Summary Summary `json:"summary"`

	// Fights lists every flushed fight in order.
	Fights []Fight `json:"fights"`

	// Metadata provides context about the session.
	Metadata Metadata `json:"metadata"`
}

// Summary provides aggregate statistics over all fights.
type Summary struct {
	// Entries is the number of timeline entries after deduplication.
	Entries int `json:"entries"`

	// Narrative and Rounds split Entries by kind.
	Narrative int `json:"narrative"`
	Rounds    int `json:"rounds"`

	// Fights is the number of flushed fights.
	Fights int `json:"fights"`

	// Totals sums every fight.
	Totals fight.Stats `json:"totals"`
}

// Fight is one numbered fight summary.
type Fight struct {
	Index int `json:"index"`
	fight.Summary
}

// Metadata provides context about the replayed session.
type Metadata struct {
	// Session identifies this load of the log.
	Session string `json:"session"`

	// Sources lists the log files that were read.
	Sources []string `json:"sources"`

	// Start and End are the first and last entry timestamps.
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`

	// Duration is the virtual length of the session.
	Duration time.Duration `json:"duration"`

	// GeneratedAt is when the report was produced.
	GeneratedAt time.Time `json:"generated_at"`
}

// NewReport creates a Report from a timeline and the fights flushed while
// replaying it.
func NewReport(session string, sources []string, entries []timeline.Entry, fights []fight.Summary) *Report {
	report := &Report{
		Fights: make([]Fight, 0, len(fights)),
		Metadata: Metadata{
			Session:     session,
			Sources:     sources,
			GeneratedAt: time.Now(),
		},
	}

	report.Summary.Entries = len(entries)
	for _, e := range entries {
		switch e.Kind {
		case timeline.KindNarrative:
			report.Summary.Narrative++
		case timeline.KindDamageRound:
			report.Summary.Rounds++
		}
	}
	if len(entries) > 0 {
		report.Metadata.Start = entries[0].Timestamp
		report.Metadata.End = entries[len(entries)-1].Timestamp
		report.Metadata.Duration = report.Metadata.End.Sub(report.Metadata.Start)
	}

	for i, f := range fights {
		report.Fights = append(report.Fights, Fight{Index: i + 1, Summary: f})
		report.Summary.Totals.Damage += f.Totals.Damage
		report.Summary.Totals.Hits += f.Totals.Hits
		report.Summary.Totals.Misses += f.Totals.Misses
	}
	report.Summary.Fights = len(fights)

	return report
}

// HasFights returns true if at least one fight was recorded.
func (r *Report) HasFights() bool {
	return r.Summary.Fights > 0
}
