package utils

import (
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes text, drops the combining marks and recomposes what is left.
// transform.Chain keeps state between calls, so a fresh chain is built per call.
func stripMarks() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

// Normalize returns the comparable form of s: plain lower-case ASCII.
// "Café", "CAFÉ" and "cafe" all normalize to "cafe", "Łódź" to "lodz" and "Straße" to "strasse".
//
// Lower-casing runs first because it can itself produce combining marks (İ -> i̇).
// Letters whose mark is not a separate code point (ł, ø, đ, æ, ß) and non-Latin
// scripts are transliterated afterwards. The result is ASCII, so a second pass
// leaves it unchanged.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	folded := strings.ToLower(s)
	if stripped, _, err := transform.String(stripMarks(), folded); err == nil {
		folded = stripped
	}
	return strings.ToLower(unidecode.Unidecode(folded))
}
