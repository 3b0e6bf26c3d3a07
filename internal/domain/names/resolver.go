package names

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// aliases maps normalized historical spellings to the canonical normalized
// form. Teams occasionally rename mid-season; the spreadsheet archive keeps
// the old name while the live API reports the new one.
var aliases = map[string]string{
	"atletico penas arriba":    "penas arriba cf",
	"penas arriba":             "penas arriba cf",
	"rayo carnicero":           "carniceria paco fc",
	"samba rovinha cf":         "samba rovinha",
	"los galacticos de pucela": "galacticos pucela",
}

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize strips diacritics and symbol runes (emoji, flags, dingbats),
// collapses whitespace and lowercases. Empty or undecodable input yields "".
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}

	folded, _, err := transform.String(stripMarks, raw)
	if err != nil {
		folded = raw
	}

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), unicode.IsPunct(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}

	return strings.ToLower(strings.Join(strings.Fields(b.String()), " "))
}

// Resolve normalizes raw and substitutes the canonical alias when the team is
// known under more than one name. All cross-source team matching goes through
// Resolve; raw string equality is never authoritative.
func Resolve(raw string) string {
	normalized := Normalize(raw)
	if canonical, ok := aliases[normalized]; ok {
		return canonical
	}
	return normalized
}
