package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"unicode"

	"golang.org/x/term"
)

// ErrInterrupted is returned by a KeyReader when the user cancels with Ctrl+C
var ErrInterrupted = errors.New("interrupted")

// KeyKind classifies a key press for the input loop
type KeyKind int

const (
	KeyIgnored KeyKind = iota
	KeyRune
	KeyBackspace
	KeyClear
	KeySubmit
)

// Key is one decoded key press. Rune is set for KeyRune.
type Key struct {
	Kind KeyKind
	Rune rune
}

// KeyReader blocks until one key is available
type KeyReader interface {
	ReadKey() (Key, error)
}

// control bytes recognised in raw mode
const (
	ctrlC     = 0x03
	ctrlD     = 0x04
	backspace = 0x08
	lineFeed  = '\n'
	carriage  = '\r'
	ctrlU     = 0x15
	escape    = 0x1b
	del       = 0x7f
)

// StreamKeys decodes keys from a byte stream that is already in raw mode
type StreamKeys struct {
	reader *bufio.Reader
}

// NewStreamKeys creates a key reader over r
func NewStreamKeys(r io.Reader) *StreamKeys {
	return &StreamKeys{reader: bufio.NewReader(r)}
}

// ReadKey reads one key. Ctrl+C and Ctrl+D return ErrInterrupted.
func (k *StreamKeys) ReadKey() (Key, error) {
	r, _, err := k.reader.ReadRune()
	if err != nil {
		return Key{}, err
	}

	switch r {
	case ctrlC, ctrlD:
		return Key{}, ErrInterrupted
	case del, backspace:
		return Key{Kind: KeyBackspace}, nil
	case ctrlU:
		return Key{Kind: KeyClear}, nil
	case lineFeed, carriage:
		return Key{Kind: KeySubmit}, nil
	case escape:
		k.skipEscapeSequence()
		return Key{Kind: KeyIgnored}, nil
	case unicode.ReplacementChar:
		return Key{Kind: KeyIgnored}, nil
	}

	if !unicode.IsPrint(r) {
		return Key{Kind: KeyIgnored}, nil
	}
	return Key{Kind: KeyRune, Rune: r}, nil
}

// skipEscapeSequence drops the rest of an arrow/function key sequence.
// Only bytes already buffered are consumed, a lone ESC never blocks.
func (k *StreamKeys) skipEscapeSequence() {
	if k.reader.Buffered() == 0 {
		return
	}
	next, err := k.reader.ReadByte()
	if err != nil {
		return
	}
	if next != '[' && next != 'O' {
		return
	}
	// parameters and intermediates until the final byte 0x40-0x7e
	for k.reader.Buffered() > 0 {
		b, err := k.reader.ReadByte()
		if err != nil || (b >= 0x40 && b <= 0x7e) {
			return
		}
	}
}

// TerminalKeys reads keys from a terminal switched to raw mode
type TerminalKeys struct {
	*StreamKeys
	fd int

	mu       sync.Mutex
	oldState *term.State
}

// OpenTerminalKeys puts f into raw mode. Close restores it.
func OpenTerminalKeys(f *os.File) (*TerminalKeys, error) {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("stdin is not a terminal")
	}

	old, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("enter raw mode: %w", err)
	}
	return &TerminalKeys{
		StreamKeys: NewStreamKeys(f),
		fd:         fd,
		oldState:   old,
	}, nil
}

// Close restores the terminal state saved by OpenTerminalKeys.
// It is safe to call more than once and from several goroutines.
func (t *TerminalKeys) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.oldState == nil {
		return nil
	}
	err := term.Restore(t.fd, t.oldState)
	t.oldState = nil
	return err
}
