package cli

import (
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
)

func TestStreamKeys(t *testing.T) {
	testCases := []struct {
		input    string
		expected []Key
	}{
		{"ab", []Key{{KeyRune, 'a'}, {KeyRune, 'b'}}},
		{"사과", []Key{{KeyRune, '사'}, {KeyRune, '과'}}},
		{"\x7f\x08", []Key{{Kind: KeyBackspace}, {Kind: KeyBackspace}}},
		{"\x15", []Key{{Kind: KeyClear}}},
		{"\r\n", []Key{{Kind: KeySubmit}, {Kind: KeySubmit}}},
		{"\t\x01", []Key{{Kind: KeyIgnored}, {Kind: KeyIgnored}}},
		{"\x1b[Ax", []Key{{Kind: KeyIgnored}, {KeyRune, 'x'}}},
		{"\x1b[1;5Cy", []Key{{Kind: KeyIgnored}, {KeyRune, 'y'}}},
		{"\x1bOPz", []Key{{Kind: KeyIgnored}, {KeyRune, 'z'}}},
		{" ", []Key{{KeyRune, ' '}}},
	}

	for _, tc := range testCases {
		keys := NewStreamKeys(strings.NewReader(tc.input))
		for i, want := range tc.expected {
			got, err := keys.ReadKey()
			if err != nil {
				t.Fatalf("input %q key %d: unexpected error %v", tc.input, i, err)
			}
			if got != want {
				t.Errorf("input %q key %d: got %+v, want %+v", tc.input, i, got, want)
			}
		}
		if _, err := keys.ReadKey(); !errors.Is(err, io.EOF) {
			t.Errorf("input %q: expected EOF after all keys, got %v", tc.input, err)
		}
	}
}

func TestStreamKeysInterrupt(t *testing.T) {
	for _, input := range []string{"\x03", "\x04"} {
		_, err := NewStreamKeys(strings.NewReader(input)).ReadKey()
		if !errors.Is(err, ErrInterrupted) {
			t.Errorf("input %q: got %v, want ErrInterrupted", input, err)
		}
	}
}

func TestTerminalKeysCloseTwice(t *testing.T) {
	keys := &TerminalKeys{StreamKeys: NewStreamKeys(strings.NewReader(""))}

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := keys.Close(); err != nil {
				t.Errorf("Close: %v", err)
			}
		}()
	}
	wg.Wait()

	if err := keys.Close(); err != nil {
		t.Errorf("Close after Close: %v", err)
	}
}
