// Package fight accumulates damage rounds into fights and summarizes each
// fight once it is over.
package fight

import "time"

// DefaultGap is how long after its last round a fight is considered over.
const DefaultGap = 5 * time.Minute

// Stats is a damage/hit/miss triple.
type Stats struct {
	Damage float64 `json:"damage"`
	Hits   int     `json:"hits"`
	Misses int     `json:"misses"`
}

// IsZero reports whether all counters are zero.
func (s Stats) IsZero() bool {
	return s.Damage == 0 && s.Hits == 0 && s.Misses == 0
}

func (s *Stats) add(o Stats) {
	s.Damage += o.Damage
	s.Hits += o.Hits
	s.Misses += o.Misses
}

// ActorStats is a Stats triple for one normalized actor.
type ActorStats struct {
	Actor string `json:"actor"`
	Stats
}

// Reason records why a fight was flushed.
type Reason string

const (
	// ReasonGap means a new round arrived after the fight gap.
	ReasonGap Reason = "gap"
	// ReasonTimeout means playback time passed the fight deadline.
	ReasonTimeout Reason = "timeout"
	// ReasonFinal means the flush was forced, e.g. at end of log.
	ReasonFinal Reason = "final"
)

// Summary is the result of flushing one fight.
type Summary struct {
	// Totals are the fight-wide counters.
	Totals Stats `json:"totals"`

	// Actors are sorted by descending damage; ties keep first-seen order.
	Actors []ActorStats `json:"actors"`

	// Rounds is how many damage rounds the fight spanned.
	Rounds int `json:"rounds"`

	// Start and End are the timestamps of the first and last round.
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`

	Reason Reason `json:"reason"`
}
