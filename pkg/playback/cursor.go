// Package playback drives a parsed timeline through virtual time, emitting
// rendered lines and fight summaries as entries become visible.
package playback

import (
	"sort"
	"time"

	"github.com/ccollicutt/fightlog/pkg/timeline"
)

// Cursor tracks how much of a timeline is visible at a given elapsed time.
type Cursor struct {
	times   []time.Time
	pos     int
	elapsed time.Duration
	started bool
}

// NewCursor creates a cursor over entries, which must already be in
// timeline order.
func NewCursor(entries []timeline.Entry) *Cursor {
	times := make([]time.Time, len(entries))
	for i, e := range entries {
		times[i] = e.Timestamp
	}
	return &Cursor{times: times}
}

// Advance moves the cursor to elapsed and returns the half-open range of
// newly visible entries. An elapsed smaller than the previous call rewinds
// to the start and reports reset; the returned range then starts at 0.
func (c *Cursor) Advance(elapsed time.Duration) (from, to int, reset bool) {
	if len(c.times) == 0 {
		return 0, 0, false
	}

	if c.started && elapsed < c.elapsed {
		c.pos = 0
		reset = true
	}
	c.elapsed = elapsed
	c.started = true

	cutoff := c.Cutoff()
	to = sort.Search(len(c.times), func(i int) bool {
		return c.times[i].After(cutoff)
	})
	from = c.pos
	if to < from {
		to = from
	}
	c.pos = to
	return from, to, reset
}

// Cutoff returns the virtual timestamp the cursor has reached.
func (c *Cursor) Cutoff() time.Time {
	if len(c.times) == 0 {
		return time.Time{}
	}
	return c.times[0].Add(c.elapsed)
}

// Elapsed returns the elapsed time of the last Advance.
func (c *Cursor) Elapsed() time.Duration {
	return c.elapsed
}

// Position returns the number of entries already exposed.
func (c *Cursor) Position() int {
	return c.pos
}

// AtEnd reports whether every entry has been exposed.
func (c *Cursor) AtEnd() bool {
	return c.pos == len(c.times)
}

// Duration is the span from the first to the last entry.
func (c *Cursor) Duration() time.Duration {
	if len(c.times) == 0 {
		return 0
	}
	return c.times[len(c.times)-1].Sub(c.times[0])
}
