package shared

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeTitle lowercases a title, collapses runs of whitespace, and folds
// combining diacritical marks so comparisons survive the formatting
// differences between services ("Berserk of Glutonny" vs "BERSERK of
// glutonny", "Mushoku Tensei" with macrons, etc).
func NormalizeTitle(title string) string {
	folded, _, err := transform.String(foldTransformer, title)
	if err != nil {
		folded = title
	}

	fields := strings.Fields(strings.ToLower(folded))
	return strings.Join(fields, " ")
}
