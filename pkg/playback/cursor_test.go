package playback

import (
	"testing"
	"time"

	"github.com/ccollicutt/fightlog/pkg/timeline"
)

var t0 = time.Date(2024, 3, 2, 20, 0, 0, 0, time.UTC)

func narrative(offset time.Duration, text string) timeline.Entry {
	return timeline.Entry{Timestamp: t0.Add(offset), Kind: timeline.KindNarrative, Text: text}
}

func round(offset time.Duration, r timeline.DamageRound) timeline.Entry {
	return timeline.Entry{Timestamp: t0.Add(offset), Kind: timeline.KindDamageRound, Damage: &r}
}

func TestCursor_Advance(t *testing.T) {
	entries := []timeline.Entry{
		narrative(0, "a"),
		narrative(2*time.Second, "b"),
		narrative(2*time.Second, "c"),
		narrative(5*time.Second, "d"),
	}

	tests := []struct {
		elapsed   time.Duration
		wantFrom  int
		wantTo    int
		wantReset bool
	}{
		{0, 0, 1, false},
		{1 * time.Second, 1, 1, false},
		{2 * time.Second, 1, 3, false},
		{2 * time.Second, 3, 3, false},
		{10 * time.Second, 3, 4, false},
		{1 * time.Second, 0, 1, true},
		{5 * time.Second, 1, 4, false},
	}

	c := NewCursor(entries)
	for i, tt := range tests {
		from, to, reset := c.Advance(tt.elapsed)
		if from != tt.wantFrom || to != tt.wantTo || reset != tt.wantReset {
			t.Errorf("step %d Advance(%v) = (%d, %d, %v), want (%d, %d, %v)",
				i, tt.elapsed, from, to, reset, tt.wantFrom, tt.wantTo, tt.wantReset)
		}
	}

	if !c.AtEnd() {
		t.Error("expected cursor at end")
	}
	if c.Duration() != 5*time.Second {
		t.Errorf("Duration() = %v, want 5s", c.Duration())
	}
}

func TestCursor_Empty(t *testing.T) {
	c := NewCursor(nil)
	from, to, reset := c.Advance(time.Hour)
	if from != 0 || to != 0 || reset {
		t.Errorf("Advance() on empty cursor = (%d, %d, %v)", from, to, reset)
	}
	if c.Duration() != 0 {
		t.Errorf("Duration() = %v, want 0", c.Duration())
	}
	if !c.Cutoff().IsZero() {
		t.Errorf("Cutoff() = %v, want zero", c.Cutoff())
	}
}
