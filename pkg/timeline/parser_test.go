package timeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func narrativeLine(ts, text string) string {
	return `{"type":"dsl-message","timestamp":"` + ts + `","payload":"` + text + `"}`
}

func TestParse_SortsByTimestamp(t *testing.T) {
	text := strings.Join([]string{
		narrativeLine("2024-01-15T10:00:03Z", "third"),
		narrativeLine("2024-01-15T10:00:01Z", "first"),
		narrativeLine("2024-01-15T10:00:02Z", "second"),
	}, "\n")

	entries := Parse(text)
	if len(entries) != 3 {
		t.Fatalf("len(entries) = %d, want 3", len(entries))
	}

	for i := 1; i < len(entries); i++ {
		if entries[i].Timestamp.Before(entries[i-1].Timestamp) {
			t.Errorf("entries not in chronological order at index %d", i)
		}
	}

	want := []string{"first", "second", "third"}
	for i, w := range want {
		if entries[i].Text != w {
			t.Errorf("entries[%d].Text = %q, want %q", i, entries[i].Text, w)
		}
	}
}

func TestParse_StableOnEqualTimestamps(t *testing.T) {
	text := strings.Join([]string{
		narrativeLine("2024-01-15T10:00:01Z", "a"),
		narrativeLine("2024-01-15T10:00:00Z", "early"),
		narrativeLine("2024-01-15T10:00:01Z", "b"),
		narrativeLine("2024-01-15T10:00:01Z", "c"),
	}, "\n")

	entries := Parse(text)
	got := make([]string, len(entries))
	for i, e := range entries {
		got[i] = e.Text
	}
	if strings.Join(got, ",") != "early,a,b,c" {
		t.Errorf("order = %v, want [early a b c]", got)
	}
}

func TestParse_DeduplicatesNarrative(t *testing.T) {
	text := strings.Join([]string{
		narrativeLine("2024-01-15T10:00:00Z", "You hit the orc."),
		narrativeLine("2024-01-15T10:00:00Z", "You hit the orc."),
		narrativeLine("2024-01-15T10:00:01Z", "You hit the orc."),
		narrativeLine("2024-01-15T12:00:00+02:00", "You hit the orc."),
	}, "\n")

	entries := Parse(text)
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2 (same instant in another zone is a duplicate)", len(entries))
	}
}

func TestParse_KeepsIdenticalDamageRounds(t *testing.T) {
	line := `{"type":"damage","timestamp":"2024-01-15T10:00:00Z","payload":{"totalDamage":12,"hits":2,"misses":0}}`
	entries := Parse(line + "\n" + line + "\n")

	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	for i, e := range entries {
		if e.Kind != KindDamageRound {
			t.Errorf("entries[%d].Kind = %v, want damage", i, e.Kind)
		}
	}
}

func TestParse_CRLFAndBlankLines(t *testing.T) {
	text := "\r\n" +
		narrativeLine("2024-01-15T10:00:00Z", "one") + "\r\n" +
		"   \r\n" +
		"\n" +
		narrativeLine("2024-01-15T10:00:01Z", "two") + "\r\n"

	entries := Parse(text)
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	if entries[0].Text != "one" || entries[1].Text != "two" {
		t.Errorf("texts = %q, %q", entries[0].Text, entries[1].Text)
	}
}

func TestParse_SkipsInvalidLines(t *testing.T) {
	text := strings.Join([]string{
		"not json at all",
		`{"type":"room-info","timestamp":"2024-01-15T10:00:00Z","payload":{}}`,
		narrativeLine("2024-01-15T10:00:00Z", "kept"),
		`{"type":"dsl-message"`,
	}, "\n")

	entries := Parse(text)
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}
	if entries[0].Text != "kept" {
		t.Errorf("Text = %q, want %q", entries[0].Text, "kept")
	}
}

func TestParse_Empty(t *testing.T) {
	for _, text := range []string{"", "\n\n", "garbage\nmore garbage"} {
		entries := Parse(text)
		if entries == nil {
			t.Errorf("Parse(%q) = nil, want empty slice", text)
		}
		if len(entries) != 0 {
			t.Errorf("Parse(%q) returned %d entries, want 0", text, len(entries))
		}
	}
}

func TestParseReader(t *testing.T) {
	text := strings.Join([]string{
		narrativeLine("2024-01-15T10:00:01Z", "b"),
		narrativeLine("2024-01-15T10:00:00Z", "a"),
		narrativeLine("2024-01-15T10:00:00Z", "a"),
	}, "\r\n")

	entries, err := ParseReader(context.Background(), strings.NewReader(text))
	if err != nil {
		t.Fatalf("ParseReader() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	if entries[0].Text != "a" {
		t.Errorf("entries[0].Text = %q, want %q", entries[0].Text, "a")
	}
}

func TestParseReader_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ParseReader(ctx, strings.NewReader(narrativeLine("2024-01-15T10:00:00Z", "a")))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ParseReader() error = %v, want context.Canceled", err)
	}
}

func TestLoadFiles_MergesFiles(t *testing.T) {
	dir := t.TempDir()
	file1 := filepath.Join(dir, "a.jsonl")
	file2 := filepath.Join(dir, "b.jsonl")

	content1 := narrativeLine("2024-01-15T10:00:00Z", "A first") + "\n" +
		narrativeLine("2024-01-15T10:00:02Z", "A second") + "\n"
	content2 := narrativeLine("2024-01-15T10:00:01Z", "B first") + "\n" +
		narrativeLine("2024-01-15T10:00:02Z", "A second") + "\n"

	if err := os.WriteFile(file1, []byte(content1), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(file2, []byte(content2), 0644); err != nil {
		t.Fatal(err)
	}

	entries, err := LoadFiles(context.Background(), file1, file2)
	if err != nil {
		t.Fatalf("LoadFiles() error = %v", err)
	}

	want := []string{"A first", "B first", "A second"}
	if len(entries) != len(want) {
		t.Fatalf("len(entries) = %d, want %d", len(entries), len(want))
	}
	for i, w := range want {
		if entries[i].Text != w {
			t.Errorf("entries[%d].Text = %q, want %q", i, entries[i].Text, w)
		}
	}
}

func TestLoadFile_NotFound(t *testing.T) {
	_, err := LoadFile(context.Background(), "/nonexistent/session.jsonl")
	if err == nil {
		t.Error("LoadFile() expected error for missing file")
	}
}

func TestLoadFiles_NoPaths(t *testing.T) {
	_, err := LoadFiles(context.Background())
	if !errors.Is(err, ErrNoFiles) {
		t.Errorf("LoadFiles() error = %v, want ErrNoFiles", err)
	}
}

func TestLoadFile_Testdata(t *testing.T) {
	entries, err := LoadFile(context.Background(), filepath.Join("testdata", "session.jsonl"))
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	var narrative, rounds int
	for _, e := range entries {
		switch e.Kind {
		case KindNarrative:
			narrative++
		case KindDamageRound:
			rounds++
		}
	}
	if narrative != 4 {
		t.Errorf("narrative entries = %d, want 4", narrative)
	}
	if rounds != 3 {
		t.Errorf("damage rounds = %d, want 3", rounds)
	}
}
