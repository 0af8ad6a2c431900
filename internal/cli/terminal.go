package cli

import (
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// Pre-built ANSI sequence fragments
const (
	csi      = "\x1b["
	csiClear = "\x1b[2J\x1b[H"
)

// fallback dimensions when the output is not a terminal
const (
	fallbackWidth  = 80
	fallbackHeight = 24
)

// Surface is a character grid the input loop draws on.
// Rows and columns are 0-based.
type Surface interface {
	// ClearScreen erases everything and homes the cursor
	ClearScreen() error
	// ClearLine blanks row across the full width and leaves the cursor at its start
	ClearLine(row int) error
	// MoveCursor repositions the cursor without touching content
	MoveCursor(row, col int) error
	// Write puts text at the cursor, without a trailing newline
	Write(text string) error
}

// SizeFunc reports the current width and height of the terminal
type SizeFunc func() (width, height int)

// TerminalSize returns a SizeFunc reading the live size of f, so a resize
// between two redraws is picked up on the next one.
func TerminalSize(f *os.File) SizeFunc {
	fd := int(f.Fd())
	return func() (int, int) {
		w, h, err := term.GetSize(fd)
		if err != nil || w <= 0 || h <= 0 {
			return fallbackWidth, fallbackHeight
		}
		return w, h
	}
}

// ANSISurface draws straight to a writer with CSI sequences. Nothing is
// buffered or diffed: every call is one write.
type ANSISurface struct {
	out  io.Writer
	size SizeFunc
}

// NewANSISurface creates a surface on out. A nil size reports the fallback dimensions.
func NewANSISurface(out io.Writer, size SizeFunc) *ANSISurface {
	if size == nil {
		size = func() (int, int) { return fallbackWidth, fallbackHeight }
	}
	return &ANSISurface{out: out, size: size}
}

// ClearScreen erases the screen and moves to the top left corner
func (s *ANSISurface) ClearScreen() error {
	return s.Write(csiClear)
}

// ClearLine overwrites row with spaces and returns the cursor to column 0
func (s *ANSISurface) ClearLine(row int) error {
	width, _ := s.size()
	var b strings.Builder
	b.WriteString(cursorPos(row, 0))
	b.WriteString(strings.Repeat(" ", width))
	b.WriteString(cursorPos(row, 0))
	return s.Write(b.String())
}

// MoveCursor positions the cursor at row, col
func (s *ANSISurface) MoveCursor(row, col int) error {
	return s.Write(cursorPos(row, col))
}

// Write sends text as is
func (s *ANSISurface) Write(text string) error {
	_, err := io.WriteString(s.out, text)
	return err
}

// cursorPos builds the positioning sequence, converting to the 1-based CSI grid
func cursorPos(row, col int) string {
	if row < 0 {
		row = 0
	}
	if col < 0 {
		col = 0
	}
	return csi + strconv.Itoa(row+1) + ";" + strconv.Itoa(col+1) + "H"
}
