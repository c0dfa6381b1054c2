// Package timeline decodes game-client JSON-lines logs into an ordered,
// deduplicated event timeline.
package timeline

import "time"

// Kind distinguishes the two entry variants.
type Kind int

const (
	// KindNarrative is a line of game text, possibly carrying ANSI colors.
	KindNarrative Kind = iota
	// KindDamageRound is one aggregated round of combat.
	KindDamageRound
)

// String returns the record type name used in the log format.
func (k Kind) String() string {
	switch k {
	case KindNarrative:
		return "narrative"
	case KindDamageRound:
		return "damage"
	default:
		return "unknown"
	}
}

// Entry is one normalized timeline item.
// Entries are immutable once the timeline has been built.
type Entry struct {
	// Timestamp is when the client recorded the event.
	Timestamp time.Time

	// Kind selects which of Text or Damage is meaningful.
	Kind Kind

	// Text is the narrative payload (KindNarrative only).
	Text string

	// Damage is the round payload (KindDamageRound only).
	Damage *DamageRound
}

// DamageRound is the payload of a damage record.
type DamageRound struct {
	TotalDamage float64
	Hits        uint32
	Misses      uint32

	// BySource holds per-actor totals as reported by the client. Optional.
	BySource []ActorRow

	// Events holds the individual hits and misses of the round. Optional.
	Events []DamageEvent
}

// ActorRow is a per-actor aggregate where the actor was the damage source.
type ActorRow struct {
	Actor          string
	DamageAsSource float64
	HitsAsSource   uint32
}

// DamageEvent is a single attack. An Amount of exactly zero is a miss.
type DamageEvent struct {
	Source string
	Target string
	Amount float64
}

// IsMiss reports whether the event recorded a miss.
func (e DamageEvent) IsMiss() bool {
	return e.Amount == 0
}
