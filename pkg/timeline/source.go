package timeline

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// maxLineSize bounds a single JSON record. Longer lines are skipped.
const maxLineSize = 1024 * 1024

// Record is a decoded entry together with where it was read from.
type Record struct {
	Entry Entry

	// Source is the file path (or reader name) this record came from.
	Source string

	// LineNum is the 1-based line number in the source.
	LineNum int
}

// Source provides an iterator over decoded log records in file order.
// Implementations must be safe for sequential access (not concurrent).
type Source interface {
	// Next returns the next decoded record.
	// Returns io.EOF when no more records are available.
	// Lines that cannot be decoded are skipped.
	Next(ctx context.Context) (*Record, error)

	// Close releases any resources held by the source.
	Close() error
}

// FileSource implements Source for reading one or more log files in order.
type FileSource struct {
	files []string

	currentFile    io.ReadCloser
	currentReader  *bufio.Reader
	currentSource  string
	currentLine    int
	fileIndex      int

	skipped int
}

// NewFileSource creates a Source that reads the given files one after another.
func NewFileSource(files []string) *FileSource {
	return &FileSource{
		files:     files,
		fileIndex: -1,
	}
}

// NewReaderSource creates a Source over an already-open reader.
// The reader is not closed by the source.
func NewReaderSource(name string, r io.Reader) *FileSource {
	s := &FileSource{fileIndex: 0}
	s.attach(name, io.NopCloser(r))
	return s
}

// Next returns the next decoded record.
// Skips blank, oversized, malformed and unrecognized lines.
// Returns io.EOF when all input has been exhausted.
func (s *FileSource) Next(ctx context.Context) (*Record, error) {
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if s.currentReader == nil {
			if err := s.openNextFile(); err != nil {
				return nil, err
			}
		}

		line, tooLong, err := s.readLine()
		if err == io.EOF {
			if err := s.closeCurrentFile(); err != nil {
				return nil, err
			}
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", s.currentSource, err)
		}

		s.currentLine++
		if tooLong {
			s.skipped++
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		entry, ok := DecodeLine(line)
		if !ok {
			s.skipped++
			continue
		}

		return &Record{
			Entry:   entry,
			Source:  s.currentSource,
			LineNum: s.currentLine,
		}, nil
	}
}

// readLine returns the next line without its terminator. A line longer than
// maxLineSize is consumed to its end and reported as tooLong.
func (s *FileSource) readLine() (line string, tooLong bool, err error) {
	var buf []byte
	for {
		chunk, isPrefix, err := s.currentReader.ReadLine()
		if err != nil {
			return "", false, err
		}
		if !tooLong {
			if len(buf)+len(chunk) > maxLineSize {
				tooLong = true
				buf = nil
			} else {
				buf = append(buf, chunk...)
			}
		}
		if !isPrefix {
			return string(buf), tooLong, nil
		}
	}
}

// Skipped returns how many non-blank lines were rejected so far.
func (s *FileSource) Skipped() int {
	return s.skipped
}

// Close releases resources.
func (s *FileSource) Close() error {
	return s.closeCurrentFile()
}

func (s *FileSource) openNextFile() error {
	s.fileIndex++
	if s.fileIndex >= len(s.files) {
		return io.EOF
	}

	path := s.files[s.fileIndex]
	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return fmt.Errorf("opening log file %s: %w", path, err)
	}

	s.attach(path, f)
	return nil
}

func (s *FileSource) attach(name string, rc io.ReadCloser) {
	s.currentFile = rc
	s.currentReader = bufio.NewReaderSize(rc, 64*1024)
	s.currentSource = name
	s.currentLine = 0
}

func (s *FileSource) closeCurrentFile() error {
	if s.currentFile != nil {
		err := s.currentFile.Close()
		s.currentFile = nil
		s.currentReader = nil
		return err
	}
	return nil
}
