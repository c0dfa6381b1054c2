package fight

import (
	"slices"
	"time"

	"github.com/ccollicutt/fightlog/pkg/timeline"
)

// Aggregator is the fight-accumulation state machine. Rounds are added in
// timeline order; a fight ends when a round arrives after the gap, when
// playback time passes the deadline, or when it is flushed explicitly.
//
// An Aggregator is not safe for concurrent use.
type Aggregator struct {
	gap time.Duration

	actors []ActorStats
	index  map[string]int
	totals Stats
	rounds int
	start  time.Time

	last        time.Time
	hasLast     bool
	deadline    time.Time
	hasDeadline bool

	flushedByTimer bool
}

// NewAggregator creates an empty aggregator. A non-positive gap selects
// DefaultGap.
func NewAggregator(gap time.Duration) *Aggregator {
	if gap <= 0 {
		gap = DefaultGap
	}
	return &Aggregator{
		gap:   gap,
		index: make(map[string]int),
	}
}

// Gap returns the configured fight gap.
func (a *Aggregator) Gap() time.Duration {
	return a.gap
}

// ProcessRound derives the round's figures and adds them.
func (a *Aggregator) ProcessRound(r *timeline.DamageRound, ts time.Time) *Summary {
	return a.Add(Derive(r), ts)
}

// Add accumulates a derived round recorded at ts. If the previous round is at
// least one gap earlier and a fight is pending, that fight is flushed first
// and its summary returned; callers emit it before the round itself.
func (a *Aggregator) Add(rs RoundStats, ts time.Time) *Summary {
	var flushed *Summary
	if a.hasLast && ts.Sub(a.last) >= a.gap && !a.empty() {
		flushed = a.flush(ReasonGap)
	}

	for _, in := range rs.Actors {
		i, ok := a.index[in.Actor]
		if !ok {
			i = len(a.actors)
			a.index[in.Actor] = i
			a.actors = append(a.actors, ActorStats{Actor: in.Actor})
		}
		a.actors[i].add(in.Stats)
	}
	a.totals.add(rs.Totals)

	if a.rounds == 0 {
		a.start = ts
	}
	a.rounds++

	a.last = ts
	a.hasLast = true
	a.deadline = ts.Add(a.gap)
	a.hasDeadline = true
	a.flushedByTimer = false

	return flushed
}

// CheckTimeout flushes the pending fight once now has reached its deadline.
// It fires at most once per fight, whether or not another round follows.
func (a *Aggregator) CheckTimeout(now time.Time) *Summary {
	if !a.hasDeadline || a.flushedByTimer || now.Before(a.deadline) {
		return nil
	}
	return a.flush(ReasonTimeout)
}

// FlushNow ends the pending fight regardless of its deadline.
func (a *Aggregator) FlushNow() *Summary {
	return a.flush(ReasonFinal)
}

// Pending reports whether a fight has accumulated state.
func (a *Aggregator) Pending() bool {
	return !a.empty()
}

// Current returns the running figures of the pending fight without flushing.
func (a *Aggregator) Current() Summary {
	return a.summary("")
}

// Deadline returns when the pending fight times out, if a deadline is set.
func (a *Aggregator) Deadline() (time.Time, bool) {
	return a.deadline, a.hasDeadline
}

// Reset discards all state, as when a new log is loaded.
func (a *Aggregator) Reset() {
	*a = Aggregator{
		gap:   a.gap,
		index: make(map[string]int),
	}
}

// empty reports whether nothing worth summarizing has accumulated. Actors
// that only ever contributed zero figures do not count.
func (a *Aggregator) empty() bool {
	if !a.totals.IsZero() {
		return false
	}
	for _, in := range a.actors {
		if !in.IsZero() {
			return false
		}
	}
	return true
}

func (a *Aggregator) flush(reason Reason) *Summary {
	if a.empty() {
		return nil
	}

	s := a.summary(reason)

	a.actors = nil
	a.index = make(map[string]int)
	a.totals = Stats{}
	a.rounds = 0
	a.start = time.Time{}
	a.flushedByTimer = true
	a.deadline = time.Time{}
	a.hasDeadline = false

	return &s
}

func (a *Aggregator) summary(reason Reason) Summary {
	actors := slices.Clone(a.actors)
	slices.SortStableFunc(actors, func(x, y ActorStats) int {
		switch {
		case x.Damage > y.Damage:
			return -1
		case x.Damage < y.Damage:
			return 1
		default:
			return 0
		}
	})

	return Summary{
		Totals: a.totals,
		Actors: actors,
		Rounds: a.rounds,
		Start:  a.start,
		End:    a.last,
		Reason: reason,
	}
}
