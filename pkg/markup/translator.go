package markup

import (
	"fmt"
	"strings"
)

// Palette names the colors emitted for each foreground code.
type Palette struct {
	// Basic maps SGR 30..37 by offset.
	Basic [8]string

	// Bright maps SGR 90..97 by offset.
	Bright [8]string

	// Indexed maps 256-color indices (38;5;n) to names. Indices without an
	// entry are emitted as XTERM-<n>.
	Indexed map[int]string
}

// DefaultPalette returns the color names understood by common forum renderers.
func DefaultPalette() Palette {
	return Palette{
		Basic:   [8]string{"black", "darkred", "green", "olive", "navy", "purple", "teal", "silver"},
		Bright:  [8]string{"gray", "red", "lime", "yellow", "blue", "fuchsia", "aqua", "white"},
		Indexed: map[int]string{208: "orange"},
	}
}

// Open returns the opening color tag.
func Open(color string) string {
	return "[color=" + color + "]"
}

// Close is the closing color tag.
const Close = "[/color]"

// Bold wraps s in bold tags.
func Bold(s string) string {
	return "[b]" + s + "[/b]"
}

// Translator converts ANSI SGR color escapes into color markup.
// A Translator holds no per-line state and may be reused.
type Translator struct {
	palette Palette
}

// NewTranslator creates a translator for the given palette.
func NewTranslator(p Palette) *Translator {
	return &Translator{palette: p}
}

// Translate rewrites one line. Escape sequences are consumed; all other text
// is copied verbatim. Tags are always properly nested: a new color closes the
// previous one, a reset closes it, and an open tag is closed at end of line.
//
// An escape immediately followed by a literal ']' is ignored entirely, since
// forum renderers cannot parse a color tag adjacent to a bracket.
func (t *Translator) Translate(line string) string {
	if strings.IndexByte(line, esc) < 0 {
		return line
	}

	var b strings.Builder
	b.Grow(len(line) + 32)
	open := ""

	for i := 0; i < len(line); {
		if line[i] != esc {
			b.WriteByte(line[i])
			i++
			continue
		}

		seq, ok := scanCSI(line, i)
		if !ok {
			b.WriteByte(line[i])
			i++
			continue
		}
		i = seq.end

		if seq.final != 'm' {
			continue
		}
		if i < len(line) && line[i] == ']' {
			continue
		}

		code := parseSGR(seq.params)
		if code.reset && open != "" {
			b.WriteString(Close)
			open = ""
		}

		color := t.resolve(code)
		if color == "" {
			continue
		}
		if open != "" {
			b.WriteString(Close)
		}
		b.WriteString(Open(color))
		open = color
	}

	if open != "" {
		b.WriteString(Close)
	}
	return b.String()
}

// resolve picks the color for an escape: bright outranks basic, which
// outranks the indexed form.
func (t *Translator) resolve(code sgr) string {
	switch {
	case code.bright != 0:
		return t.palette.Bright[code.bright-90]
	case code.basic != 0:
		return t.palette.Basic[code.basic-30]
	case code.indexed >= 0:
		if name, ok := t.palette.Indexed[code.indexed]; ok {
			return name
		}
		return fmt.Sprintf("XTERM-%d", code.indexed)
	}
	return ""
}
