package timeline

import (
	"context"
	"errors"
	"io"
	"slices"
	"strings"
)

// ErrNoFiles is returned by LoadFiles when called without any path.
var ErrNoFiles = errors.New("no log files given")

// Parse builds the ordered, deduplicated timeline from the full text of a log.
// Lines are split on '\n' with an optional preceding '\r'. A log without any
// valid line yields an empty timeline.
func Parse(text string) []Entry {
	var entries []Entry
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if entry, ok := DecodeLine(line); ok {
			entries = append(entries, entry)
		}
	}
	return Build(entries)
}

// ParseReader reads a log from r and builds its timeline.
func ParseReader(ctx context.Context, r io.Reader) ([]Entry, error) {
	return Collect(ctx, NewReaderSource("reader", r))
}

// LoadFile reads a single log file and builds its timeline.
func LoadFile(ctx context.Context, path string) ([]Entry, error) {
	return LoadFiles(ctx, path)
}

// LoadFiles reads several log files in argument order and builds a single
// timeline from all of their records.
func LoadFiles(ctx context.Context, paths ...string) ([]Entry, error) {
	if len(paths) == 0 {
		return nil, ErrNoFiles
	}
	src := NewFileSource(paths)
	defer src.Close()
	return Collect(ctx, src)
}

// Collect drains src and builds the timeline from its records.
func Collect(ctx context.Context, src Source) ([]Entry, error) {
	var entries []Entry
	for {
		rec, err := src.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		entries = append(entries, rec.Entry)
	}
	return Build(entries), nil
}

// signature identifies a narrative entry for deduplication.
type signature struct {
	unixNano int64
	text     string
}

// Build stable-sorts entries by timestamp and removes narrative entries whose
// (timestamp, text) pair was already seen. Damage rounds are never removed:
// separate rounds can legitimately report identical aggregates at the same
// instant. The input slice is reordered in place.
func Build(entries []Entry) []Entry {
	if len(entries) == 0 {
		return []Entry{}
	}

	slices.SortStableFunc(entries, func(a, b Entry) int {
		return a.Timestamp.Compare(b.Timestamp)
	})

	seen := make(map[signature]bool)
	out := entries[:0]
	for _, e := range entries {
		if e.Kind == KindNarrative {
			sig := signature{unixNano: e.Timestamp.UnixNano(), text: e.Text}
			if seen[sig] {
				continue
			}
			seen[sig] = true
		}
		out = append(out, e)
	}
	return out
}
