// Package swap implements budget substitute discovery for decklists:
// parsing and name cleanup, oracle text similarity scoring, and the
// search pipeline that ranks cheaper functional replacements.
package swap

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nameFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

var nonAlphaNum = regexp.MustCompile(`[^a-z0-9]+`)

// NormalizeName produces the canonical lowercase form of a card name
// used for identity comparison, never for display. Accented characters
// fold to their plain equivalents so that alternate spellings of the
// same card compare equal.
func NormalizeName(name string) string {
	folded, _, err := transform.String(nameFolder, name)
	if err == nil {
		name = folded
	}
	name = strings.ToLower(name)
	name = nonAlphaNum.ReplaceAllString(name, " ")
	return strings.TrimSpace(name)
}

var (
	foilTag     = regexp.MustCompile(`(?i)\s*\*F\*\s*$`)
	trailingNum = regexp.MustCompile(`\s+\d+\s*$`)
	setCodeTag  = regexp.MustCompile(`\s*\([a-zA-Z0-9]{2,6}\)\s*$`)
)

// CleanCardName strips the decoration decklist exports commonly append
// to a card name: a foil marker, a bare collector number, and a
// parenthesized set code, in that order. Each strip only applies when
// the tail of the string matches, so the function is idempotent.
func CleanCardName(raw string) string {
	name := strings.TrimSpace(raw)
	name = strings.TrimSpace(foilTag.ReplaceAllString(name, ""))
	name = strings.TrimSpace(trailingNum.ReplaceAllString(name, ""))
	name = strings.TrimSpace(setCodeTag.ReplaceAllString(name, ""))
	return name
}
