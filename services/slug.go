package services

import (
	"regexp"
	"strings"

	"github.com/mozillazg/go-unidecode"
)

// greekLatin is a hand-maintained substitution table for the Greek alphabet,
// not a general transliteration scheme. It covers the letters that actually
// occur in the guide's titles and venue names; anything else falls through
// to unidecode below.
var greekLatin = map[rune]string{
	'α': "a", 'ά': "a",
	'β': "v",
	'γ': "g",
	'δ': "d",
	'ε': "e", 'έ': "e",
	'ζ': "z",
	'η': "i", 'ή': "i",
	'θ': "th",
	'ι': "i", 'ί': "i", 'ϊ': "i", 'ΐ': "i",
	'κ': "k",
	'λ': "l",
	'μ': "m",
	'ν': "n",
	'ξ': "x",
	'ο': "o", 'ό': "o",
	'π': "p",
	'ρ': "r",
	'σ': "s", 'ς': "s",
	'τ': "t",
	'υ': "y", 'ύ': "y", 'ϋ': "y", 'ΰ': "y",
	'φ': "f",
	'χ': "ch",
	'ψ': "ps",
	'ω': "o", 'ώ': "o",
}

var nonSlugRuns = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify turns an arbitrary title or venue name into a lowercase
// filesystem- and URL-safe slug: Greek letters go through the substitution
// table, any other non-ASCII text through unidecode, and every run of
// characters outside [a-z0-9] collapses to a single hyphen. The result
// carries no leading or trailing hyphen.
//
// The function is deterministic; distinct inputs can collide in theory,
// which is acceptable at this dataset's size.
func Slugify(s string) string {
	s = strings.ToLower(s)

	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			if lat, ok := greekLatin[r]; ok {
				b.WriteString(lat)
			} else if r < 128 {
				b.WriteRune(r)
			} else {
				// Accented Latin in original titles ("Amélie") and the
				// odd stray symbol.
				b.WriteString(unidecode.Unidecode(string(r)))
			}
		}
	}

	slug := nonSlugRuns.ReplaceAllString(strings.ToLower(b.String()), "-")
	return strings.Trim(slug, "-")
}
