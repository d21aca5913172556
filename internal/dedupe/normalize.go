package dedupe

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/matsen/bibx/internal/document"
)

// TitleKey normalizes a title for near-duplicate comparison: lowercased,
// accents stripped, punctuation and digits removed, whitespace collapsed.
func TitleKey(title string) string {
	lower := strings.ToLower(title)
	stripped, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), lower)
	if err != nil {
		stripped = lower
	}

	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) {
			return r
		}
		return ' '
	}, stripped)

	return strings.Join(strings.Fields(cleaned), " ")
}

// DOIKey normalizes a DOI for equality comparison. Placeholder and empty
// DOIs return "" and never match anything.
func DOIKey(doi string) string {
	doi = strings.ToLower(strings.TrimSpace(doi))
	if doi == "" || doi == strings.ToLower(document.Unknown) {
		return ""
	}
	return doi
}
