package output

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/ccollicutt/fightlog/pkg/fight"
	"github.com/ccollicutt/fightlog/pkg/timeline"
)

var start = time.Date(2024, 3, 2, 20, 0, 0, 0, time.UTC)

func sampleReport() *Report {
	entries := []timeline.Entry{
		{Timestamp: start, Kind: timeline.KindNarrative, Text: "hello"},
		{Timestamp: start.Add(time.Second), Kind: timeline.KindDamageRound, Damage: &timeline.DamageRound{}},
		{Timestamp: start.Add(10 * time.Minute), Kind: timeline.KindDamageRound, Damage: &timeline.DamageRound{}},
	}
	fights := []fight.Summary{
		{
			Totals: fight.Stats{Damage: 30, Hits: 3, Misses: 1},
			Actors: []fight.ActorStats{{Actor: "Rogar", Stats: fight.Stats{Damage: 30, Hits: 3, Misses: 1}}},
			Rounds: 1,
			Start:  start.Add(time.Second),
			End:    start.Add(time.Second),
			Reason: fight.ReasonTimeout,
		},
		{
			Totals: fight.Stats{Damage: 4.5, Hits: 1},
			Actors: []fight.ActorStats{{Actor: "Elsbeth", Stats: fight.Stats{Damage: 4.5, Hits: 1}}},
			Rounds: 1,
			Start:  start.Add(10 * time.Minute),
			End:    start.Add(10 * time.Minute),
			Reason: fight.ReasonFinal,
		},
	}
	return NewReport("session-1", []string{"a.jsonl"}, entries, fights)
}

func TestNewReport(t *testing.T) {
	r := sampleReport()

	if r.Summary.Entries != 3 || r.Summary.Narrative != 1 || r.Summary.Rounds != 2 {
		t.Errorf("entry counts = %+v", r.Summary)
	}
	if r.Summary.Fights != 2 || !r.HasFights() {
		t.Errorf("Fights = %d", r.Summary.Fights)
	}
	if r.Summary.Totals.Damage != 34.5 || r.Summary.Totals.Hits != 4 || r.Summary.Totals.Misses != 1 {
		t.Errorf("Totals = %+v", r.Summary.Totals)
	}
	if r.Fights[1].Index != 2 {
		t.Errorf("second fight index = %d, want 2", r.Fights[1].Index)
	}
	if r.Metadata.Duration != 10*time.Minute {
		t.Errorf("Duration = %v, want 10m", r.Metadata.Duration)
	}
}

func TestNewReport_Empty(t *testing.T) {
	r := NewReport("s", nil, nil, nil)
	if r.HasFights() {
		t.Error("expected no fights")
	}
	if r.Fights == nil {
		t.Error("Fights should be an empty slice, not nil")
	}
}

func TestTextFormatter(t *testing.T) {
	tests := []struct {
		name    string
		opts    FormatOptions
		want    []string
		wantNot []string
	}{
		{
			name: "full",
			opts: FormatOptions{},
			want: []string{
				"=== fightlog Fight Report ===",
				"Fight 1: 20:00:01 - 20:00:01, 1 round(s)",
				"— Fight summary — totalDamage=30, hits=3, misses=1",
				"  Elsbeth: 4.5 dmg, 1 hits, 0 misses",
				"Summary: 2 fights, 2 rounds, 34.5 damage, 4 hits, 1 misses",
			},
			wantNot: []string{"Session:"},
		},
		{
			name: "verbose",
			opts: FormatOptions{Verbose: true},
			want: []string{"Session: session-1", "Source: a.jsonl", "Entries: 3 (1 narrative, 2 rounds)"},
		},
		{
			name:    "quiet",
			opts:    FormatOptions{Quiet: true},
			want:    []string{"Summary: 2 fights"},
			wantNot: []string{"Fight 1:", "==="},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			f := NewTextFormatter(tt.opts)
			if err := f.Format(context.Background(), sampleReport(), &buf); err != nil {
				t.Fatalf("Format() error = %v", err)
			}
			out := buf.String()
			for _, s := range tt.want {
				if !strings.Contains(out, s) {
					t.Errorf("output missing %q:\n%s", s, out)
				}
			}
			for _, s := range tt.wantNot {
				if strings.Contains(out, s) {
					t.Errorf("output should not contain %q:\n%s", s, out)
				}
			}
		})
	}
}

func TestTextFormatter_NoFights(t *testing.T) {
	var buf bytes.Buffer
	if err := NewTextFormatter(FormatOptions{}).Format(context.Background(), NewReport("s", nil, nil, nil), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if !strings.Contains(buf.String(), "No fights recorded") {
		t.Errorf("output = %s", buf.String())
	}
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewJSONFormatter(FormatOptions{})
	if f.Name() != "json" {
		t.Errorf("Name() = %q", f.Name())
	}
	if err := f.Format(context.Background(), sampleReport(), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var got struct {
		Summary struct {
			Fights int `json:"fights"`
			Totals struct {
				Damage float64 `json:"damage"`
			} `json:"totals"`
		} `json:"summary"`
		Fights []struct {
			Index  int    `json:"index"`
			Reason string `json:"reason"`
			Actors []struct {
				Actor string `json:"actor"`
			} `json:"actors"`
		} `json:"fights"`
		Metadata struct {
			Session  string   `json:"session"`
			Sources  []string `json:"sources"`
			Duration string   `json:"duration"`
		} `json:"metadata"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}

	if got.Summary.Fights != 2 || got.Summary.Totals.Damage != 34.5 {
		t.Errorf("summary = %+v", got.Summary)
	}
	if len(got.Fights) != 2 || got.Fights[0].Index != 1 || got.Fights[0].Reason != "timeout" {
		t.Errorf("fights = %+v", got.Fights)
	}
	if got.Fights[0].Actors[0].Actor != "Rogar" {
		t.Errorf("actor = %q", got.Fights[0].Actors[0].Actor)
	}
	if got.Metadata.Session != "session-1" {
		t.Errorf("session = %q", got.Metadata.Session)
	}
	if got.Metadata.Duration != "10m0s" {
		t.Errorf("duration = %q, want 10m0s", got.Metadata.Duration)
	}
}

func TestJSONFormatter_Quiet(t *testing.T) {
	var buf bytes.Buffer
	if err := NewJSONFormatter(FormatOptions{Quiet: true}).Format(context.Background(), sampleReport(), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "metadata") || strings.Contains(out, `"fights": [`) {
		t.Errorf("quiet output should only hold the summary: %s", out)
	}
	if !strings.Contains(out, `"summary"`) {
		t.Errorf("quiet output missing summary: %s", out)
	}
}
