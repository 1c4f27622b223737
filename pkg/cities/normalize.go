package cities

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Rejection patterns for corrupted or non-city upstream names. Both are
// tested against the diacritic-stripped form.
var (
	blacklistPattern = regexp.MustCompile(`(?i)\b(station|zone|district|powerplant|unknown|industrial|monitoring)\b`)
	digitPattern     = regexp.MustCompile(`\d`)
)

// parentheticalPattern matches a parenthetical segment and its
// surrounding whitespace, e.g. " (Region)" in "City (Region)".
var parentheticalPattern = regexp.MustCompile(`\s*\([^)]*\)\s*`)

// diacriticRemover decomposes to NFD and drops combining marks.
var diacriticRemover = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// stripDiacritics removes combining diacritical marks, so "Zürich"
// becomes "Zurich".
func stripDiacritics(s string) string {
	out, _, err := transform.String(diacriticRemover, s)
	if err != nil {
		return s
	}
	return out
}

// rejectName reports whether a raw upstream name is a corrupted or
// non-city entry: a whole-word blacklist match or any decimal digit in
// the diacritic-stripped form.
func rejectName(name string) bool {
	stripped := stripDiacritics(name)
	return blacklistPattern.MatchString(stripped) || digitPattern.MatchString(stripped)
}

// NormalizeName produces the display form of a city name: diacritics
// stripped, parenthetical segments removed, trimmed, lower-cased, then
// title-cased per whitespace-delimited word. The transformation is pure
// and idempotent; a name that ends up empty is returned as-is.
func NormalizeName(name string) string {
	s := stripDiacritics(name)
	s = parentheticalPattern.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return titleCase(s)
}

// titleCase upper-cases the first letter of every whitespace-delimited
// word, leaving the rest of each word untouched.
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	startOfWord := true
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			startOfWord = true
			b.WriteRune(r)
		case startOfWord:
			b.WriteRune(unicode.ToUpper(r))
			startOfWord = false
		default:
			b.WriteRune(r)
		}
	}

	return b.String()
}
