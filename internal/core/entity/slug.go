package entity

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Slugify lower-cases s, folds accents and collapses every run of other
// characters into a single underscore.
func Slugify(s string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), s)
	if err != nil {
		folded = s
	}
	folded = strings.ReplaceAll(strings.ToLower(folded), "ß", "ss")

	var result strings.Builder
	sep := false
	for _, r := range folded {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if sep && result.Len() > 0 {
				result.WriteByte('_')
			}
			result.WriteRune(r)
			sep = false
		} else {
			sep = true
		}
	}
	return result.String()
}
