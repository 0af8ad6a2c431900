package cli

import (
	"strings"
	"testing"
)

func TestANSISurface(t *testing.T) {
	var out strings.Builder
	width := 5
	s := NewANSISurface(&out, func() (int, int) { return width, 10 })

	if err := s.ClearScreen(); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); got != "\x1b[2J\x1b[H" {
		t.Errorf("ClearScreen wrote %q", got)
	}

	out.Reset()
	s.ClearLine(0)
	if got := out.String(); got != "\x1b[1;1H     \x1b[1;1H" {
		t.Errorf("ClearLine wrote %q", got)
	}

	// width is read on every call
	out.Reset()
	width = 2
	s.ClearLine(3)
	if got := out.String(); got != "\x1b[4;1H  \x1b[4;1H" {
		t.Errorf("ClearLine after resize wrote %q", got)
	}

	out.Reset()
	s.MoveCursor(2, 7)
	s.Write("apple")
	if got := out.String(); got != "\x1b[3;8Happle" {
		t.Errorf("MoveCursor+Write wrote %q", got)
	}
}

func TestANSISurfaceFallbackSize(t *testing.T) {
	var out strings.Builder
	s := NewANSISurface(&out, nil)
	s.ClearLine(0)
	if got := strings.Count(out.String(), " "); got != fallbackWidth {
		t.Errorf("expected %d blanks, got %d", fallbackWidth, got)
	}
}
