package utils

import (
	"strings"
	"testing"
	"unicode"
)

func TestNormalize(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"cafe", "cafe"},
		{"Café", "cafe"},
		{"CAFÉ", "cafe"},
		{"Ångström", "angstrom"},
		{"naïve résumé", "naive resume"},
		{"İstanbul", "istanbul"},
		{"Žluťoučký kůň", "zlutoucky kun"},
		{"mixed 123 !?", "mixed 123 !?"},
		{"Łódź", "lodz"},
		{"København", "kobenhavn"},
		{"Straße", "strasse"},
		{"Æsir", "aesir"},
		{"đ", "d"},
		{"Œuvre", "oeuvre"},
	}

	for _, tc := range testCases {
		if got := Normalize(tc.input); got != tc.expected {
			t.Errorf("Normalize(%q) = %q, want %q", tc.input, got, tc.expected)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"", "Café", "İSTANBUL", "ǅemal", "ﬁne", "Ω", "사과", "ÀÉÎÕÜ", "é", "Straße",
	}
	for _, s := range inputs {
		once := Normalize(s)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q then %q", s, once, twice)
		}
	}
}

func TestNormalizeCaseAndDiacriticInsensitive(t *testing.T) {
	if Normalize("Café") != Normalize("cafe") {
		t.Errorf("expected Café and cafe to normalize equally")
	}
	if Normalize("é") != Normalize("é") {
		t.Errorf("expected decomposed and composed é to normalize equally")
	}
}

func TestNormalizeTransliteratesScripts(t *testing.T) {
	apple := Normalize("사과")
	if apple == "" {
		t.Fatalf("expected a non-empty form for Hangul")
	}
	for _, r := range apple {
		if r > unicode.MaxASCII {
			t.Errorf("Normalize(%q) = %q, want ASCII only", "사과", apple)
			break
		}
	}
	if apple == Normalize("포도") {
		t.Errorf("expected distinct words to stay distinct, both gave %q", apple)
	}
	// per-syllable transliteration keeps substrings as substrings
	if part := Normalize("과"); !strings.Contains(apple, part) {
		t.Errorf("expected %q to contain %q", apple, part)
	}
}
