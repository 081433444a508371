package teamresolver

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// commonSuffixes are stripped after lowercasing/diacritic-folding. Only
// these club-type abbreviations are stripped; "united", "city" and
// "town" stay part of the name.
var commonSuffixes = []string{" fc", " cf", " bc", " ac", " sc"}

// Normalize lowercases, strips diacritics, strips common club suffixes,
// collapses whitespace, then resolves through the alias table.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = stripDiacritics(s)
	s = strings.ToLower(strings.TrimSpace(s))
	s = collapseWhitespace(s)
	s = stripSuffixes(s)
	if canonical, ok := aliases[s]; ok {
		return canonical
	}
	return s
}

func stripDiacritics(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range norm.NFD.String(s) {
		if !unicode.Is(unicode.Mn, r) { // Mn = Mark, Nonspacing (combining accents)
			b.WriteRune(r)
		}
	}
	return b.String()
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func stripSuffixes(s string) string {
	for _, suf := range commonSuffixes {
		if strings.HasSuffix(s, suf) {
			return strings.TrimSpace(strings.TrimSuffix(s, suf))
		}
	}
	return s
}
