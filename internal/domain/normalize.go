package domain

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// nameKeyTransformer decomposes to NFD, drops combining marks (so "Pérez"
// and "Perez" compare equal), and recomposes.
var nameKeyTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeName reduces a display name to its comparison key: diacritics
// stripped, lower-cased, leading/trailing whitespace trimmed. Internal
// whitespace is preserved so multi-part surnames keep their token boundaries.
func NormalizeName(name string) string {
	stripped, _, err := transform.String(nameKeyTransformer, name)
	if err != nil {
		// transform.String only fails on malformed input; fall back to the
		// raw string so comparison still degrades to case-insensitive.
		stripped = name
	}
	return strings.TrimSpace(strings.ToLower(stripped))
}
