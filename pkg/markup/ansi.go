// Package markup translates ANSI color escapes in game text into forum
// color markup, or strips them for plain-text output.
package markup

import (
	"strconv"
	"strings"
)

const esc = '\x1b'

// csi is one scanned control sequence: ESC '[' params final.
type csi struct {
	params string
	final  byte
	end    int // index just past the sequence
}

// scanCSI reads the control sequence starting at s[i] == ESC.
// It returns false when s[i:] does not start a CSI sequence. An unterminated
// sequence at the end of the line is consumed up to the end.
func scanCSI(s string, i int) (csi, bool) {
	if i+1 >= len(s) || s[i+1] != '[' {
		return csi{}, false
	}
	j := i + 2
	for j < len(s) {
		c := s[j]
		if c >= 0x40 && c <= 0x7e {
			return csi{params: s[i+2 : j], final: c, end: j + 1}, true
		}
		j++
	}
	return csi{params: s[i+2:], end: len(s)}, true
}

// Strip removes every CSI escape sequence from s.
func Strip(s string) string {
	if strings.IndexByte(s, esc) < 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] == esc {
			if seq, ok := scanCSI(s, i); ok {
				i = seq.end
				continue
			}
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

// sgr is the decoded meaning of one SGR escape.
type sgr struct {
	reset   bool
	bright  int // 90..97, or 0
	basic   int // 30..37, or 0
	indexed int // 38;5;n index, or -1
}

// parseSGR splits an SGR parameter list. An empty list means reset.
// Sub-parameters that are not numbers are ignored.
func parseSGR(params string) sgr {
	out := sgr{indexed: -1}
	if params == "" {
		out.reset = true
		return out
	}

	fields := strings.Split(params, ";")
	for i := 0; i < len(fields); i++ {
		n, err := strconv.Atoi(fields[i])
		if err != nil {
			if fields[i] == "" {
				out.reset = true
			}
			continue
		}
		switch {
		case n == 0:
			out.reset = true
		case (n == 38 || n == 48) && i+1 < len(fields):
			// Extended colors: 5;n is indexed, 2;r;g;b is truecolor. Only the
			// indexed foreground selects a color; the rest are skipped whole.
			switch fields[i+1] {
			case "5":
				if n == 38 && i+2 < len(fields) {
					if idx, err := strconv.Atoi(fields[i+2]); err == nil {
						out.indexed = idx
					}
				}
				i += 2
			case "2":
				i += 4
			}
		case n >= 90 && n <= 97:
			if out.bright == 0 {
				out.bright = n
			}
		case n >= 30 && n <= 37:
			if out.basic == 0 {
				out.basic = n
			}
		}
	}
	return out
}
