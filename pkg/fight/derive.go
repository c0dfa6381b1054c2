package fight

import (
	"github.com/ccollicutt/fightlog/pkg/timeline"
)

// RoundStats is the per-actor breakdown of one damage round.
type RoundStats struct {
	Totals Stats
	Actors []ActorStats
}

// Derive computes normalized per-actor figures for a round.
//
// Damage and hits come from BySource when it is non-empty, otherwise from
// the positive-amount Events. Misses are counted from zero-amount Events and
// credited to the event source; a round without events only contributes its
// own Misses field to the totals. Totals are the sums over actors, except
// for a round with no actor data at all, which falls back to its own
// TotalDamage and Hits.
func Derive(r *timeline.DamageRound) RoundStats {
	var rs RoundStats
	if r == nil {
		return rs
	}

	index := make(map[string]int)
	actor := func(name string) *ActorStats {
		key := NormalizeActor(name)
		i, ok := index[key]
		if !ok {
			i = len(rs.Actors)
			index[key] = i
			rs.Actors = append(rs.Actors, ActorStats{Actor: key})
		}
		return &rs.Actors[i]
	}

	switch {
	case len(r.BySource) > 0:
		for _, row := range r.BySource {
			a := actor(row.Actor)
			a.Damage += row.DamageAsSource
			a.Hits += int(row.HitsAsSource)
		}
	case len(r.Events) > 0:
		for _, e := range r.Events {
			if e.Amount > 0 {
				a := actor(e.Source)
				a.Damage += e.Amount
				a.Hits++
			}
		}
	}

	for _, e := range r.Events {
		if e.IsMiss() {
			actor(e.Source).Misses++
		}
	}

	for _, a := range rs.Actors {
		rs.Totals.add(a.Stats)
	}

	if len(r.Events) == 0 {
		rs.Totals.Misses += int(r.Misses)
	}
	if len(r.BySource) == 0 && len(r.Events) == 0 {
		rs.Totals.Damage = r.TotalDamage
		rs.Totals.Hits = int(r.Hits)
	}

	return rs
}
