package fight

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// tagPrefix matches one leading bracketed tag such as a guild or title.
var tagPrefix = regexp.MustCompile(`^\s*\[[^\]]*\]\s*`)

// NormalizeActor strips one leading bracketed tag from an actor name and
// puts the rest in Unicode NFC, so "[Clan] Rogar" and "Rogar" share a key.
// A name that is nothing but a tag is kept as written.
func NormalizeActor(name string) string {
	if loc := tagPrefix.FindStringIndex(name); loc != nil && loc[1] < len(name) {
		name = name[loc[1]:]
	}
	return norm.NFC.String(name)
}

// FormatNumber renders v rounded to one decimal, dropping a trailing ".0".
func FormatNumber(v float64) string {
	r := math.Round(v*10) / 10
	if r == 0 {
		// Avoid "-0".
		r = 0
	}
	return strings.TrimSuffix(strconv.FormatFloat(r, 'f', 1, 64), ".0")
}
