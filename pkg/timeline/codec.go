package timeline

import (
	"encoding/json"
	"math"
	"time"
)

// Record type discriminators understood by DecodeLine.
const (
	TypeNarrative = "dsl-message"
	TypeDamage    = "damage"
)

// timestampLayouts are tried in order. Zone-less timestamps are read as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
}

// wireRecord is the outer envelope of every log line.
type wireRecord struct {
	Type      string          `json:"type"`
	Timestamp string          `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

// wireDamage mirrors the damage payload. Counts are decoded as floats so that
// clients writing "3.0" or omitting a field still produce a usable round.
type wireDamage struct {
	TotalDamage float64     `json:"totalDamage"`
	Hits        float64     `json:"hits"`
	Misses      float64     `json:"misses"`
	Events      []wireEvent `json:"events"`
	BySource    []wireActor `json:"bySource"`
}

type wireEvent struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Amount float64 `json:"amount"`
}

type wireActor struct {
	Actor         string  `json:"actor"`
	TotalAsSource float64 `json:"totalAsSource"`
	CountAsSource float64 `json:"countAsSource"`
}

// DecodeLine decodes one JSON-lines record.
// It returns false when the line is malformed, has no usable timestamp, or
// carries a record type other than narrative text or damage.
func DecodeLine(line string) (Entry, bool) {
	var rec wireRecord
	if err := json.Unmarshal([]byte(line), &rec); err != nil {
		return Entry{}, false
	}

	switch rec.Type {
	case TypeNarrative, TypeDamage:
	default:
		// Unrelated record kinds share the file; ignore them.
		return Entry{}, false
	}

	ts, ok := parseTimestamp(rec.Timestamp)
	if !ok {
		return Entry{}, false
	}

	if rec.Type == TypeNarrative {
		var text string
		if len(rec.Payload) > 0 && string(rec.Payload) != "null" {
			if err := json.Unmarshal(rec.Payload, &text); err != nil {
				return Entry{}, false
			}
		}
		return Entry{Timestamp: ts, Kind: KindNarrative, Text: text}, true
	}

	var wd wireDamage
	if len(rec.Payload) > 0 && string(rec.Payload) != "null" {
		if err := json.Unmarshal(rec.Payload, &wd); err != nil {
			return Entry{}, false
		}
	}
	return Entry{Timestamp: ts, Kind: KindDamageRound, Damage: wd.round()}, true
}

func (wd *wireDamage) round() *DamageRound {
	r := &DamageRound{
		TotalDamage: wd.TotalDamage,
		Hits:        toCount(wd.Hits),
		Misses:      toCount(wd.Misses),
	}
	if len(wd.BySource) > 0 {
		r.BySource = make([]ActorRow, 0, len(wd.BySource))
		for _, a := range wd.BySource {
			r.BySource = append(r.BySource, ActorRow{
				Actor:          a.Actor,
				DamageAsSource: a.TotalAsSource,
				HitsAsSource:   toCount(a.CountAsSource),
			})
		}
	}
	if len(wd.Events) > 0 {
		r.Events = make([]DamageEvent, 0, len(wd.Events))
		for _, e := range wd.Events {
			r.Events = append(r.Events, DamageEvent(e))
		}
	}
	return r
}

// toCount converts a decoded JSON number to a non-negative count.
func toCount(v float64) uint32 {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	if v >= math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(v)
}

func parseTimestamp(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
