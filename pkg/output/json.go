package output

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
)

// jsonReport is the encoded shape of a Report. Quiet output keeps only the
// summary.
type jsonReport struct {
	Summary  Summary       `json:"summary"`
	Fights   []Fight       `json:"fights,omitempty"`
	Metadata *jsonMetadata `json:"metadata,omitempty"`
}

// jsonMetadata renders the session duration as text ("7m30s") rather than
// nanoseconds.
type jsonMetadata struct {
	Metadata
	Duration string `json:"duration"`
}

// JSONFormatter formats reports as indented JSON.
type JSONFormatter struct {
	opts FormatOptions
}

// NewJSONFormatter creates a new JSON formatter with the given options.
func NewJSONFormatter(opts FormatOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// Name returns the format name.
func (f *JSONFormatter) Name() string {
	return "json"
}

// Format renders the report as JSON.
func (f *JSONFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	doc := jsonReport{Summary: report.Summary}
	if !f.opts.Quiet {
		doc.Fights = report.Fights
		doc.Metadata = &jsonMetadata{
			Metadata: report.Metadata,
			Duration: report.Metadata.Duration.String(),
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return nil
}
