package playback

import (
	"fmt"
	"io"
)

// Sink receives rendered lines. Lines carry no terminator.
type Sink interface {
	WriteLine(line string) error
}

// Clearer is implemented by sinks that can discard everything written so
// far. The pipeline clears such sinks on rewind and on load.
type Clearer interface {
	Clear()
}

// WriterSink writes each line followed by a newline.
type WriterSink struct {
	w io.Writer
}

// NewWriterSink creates a sink over w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// WriteLine writes one line.
func (s *WriterSink) WriteLine(line string) error {
	if _, err := fmt.Fprintln(s.w, line); err != nil {
		return fmt.Errorf("writing line: %w", err)
	}
	return nil
}

// Buffer is an in-memory sink.
type Buffer struct {
	lines []string
}

// WriteLine appends a line.
func (b *Buffer) WriteLine(line string) error {
	b.lines = append(b.lines, line)
	return nil
}

// Clear discards all lines.
func (b *Buffer) Clear() {
	b.lines = nil
}

// Lines returns the buffered lines.
func (b *Buffer) Lines() []string {
	return b.lines
}

// Discard is a sink that drops every line.
var Discard Sink = discard{}

type discard struct{}

func (discard) WriteLine(string) error { return nil }
