package output

import (
	"context"
	"fmt"
	"io"

	"github.com/ccollicutt/fightlog/pkg/fight"
)

// TextFormatter formats reports as human-readable text.
type TextFormatter struct {
	opts     FormatOptions
	renderer Renderer
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts, renderer: NewPlainRenderer()}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	if f.opts.Quiet {
		return f.formatSummary(report, w)
	}
	return f.formatFull(report, w)
}

func (f *TextFormatter) formatSummary(report *Report, w io.Writer) error {
	s := report.Summary
	_, err := fmt.Fprintf(w, "Summary: %d fights, %d rounds, %s damage, %d hits, %d misses\n",
		s.Fights, s.Rounds, fight.FormatNumber(s.Totals.Damage), s.Totals.Hits, s.Totals.Misses)
	return err
}

func (f *TextFormatter) formatFull(report *Report, w io.Writer) error {
	fmt.Fprintln(w, "=== fightlog Fight Report ===")
	fmt.Fprintln(w)

	if !report.HasFights() {
		fmt.Fprintln(w, "No fights recorded")
		fmt.Fprintln(w)
	}

	for _, fgt := range report.Fights {
		fmt.Fprintf(w, "Fight %d: %s - %s, %d round(s)\n",
			fgt.Index,
			fgt.Start.Format("15:04:05"),
			fgt.End.Format("15:04:05"),
			fgt.Rounds)
		for _, line := range f.renderer.Summary(&fgt.Summary) {
			fmt.Fprintln(w, line)
		}
	}

	fmt.Fprintln(w, "---")
	if err := f.formatSummary(report, w); err != nil {
		return err
	}

	if f.opts.Verbose {
		md := report.Metadata
		fmt.Fprintf(w, "Session: %s\n", md.Session)
		for _, src := range md.Sources {
			fmt.Fprintf(w, "Source: %s\n", src)
		}
		fmt.Fprintf(w, "Entries: %d (%d narrative, %d rounds)\n",
			report.Summary.Entries, report.Summary.Narrative, report.Summary.Rounds)
		fmt.Fprintf(w, "Duration: %s\n", md.Duration)
	}

	return nil
}
