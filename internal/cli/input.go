// Package cli runs the interactive lookup: it reads keys, keeps the query
// buffer and redraws matching headwords on every change.
package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/bastiangx/wordlook/pkg/dictionary"
)

// Searcher is the part of the dictionary store the input loop needs
type Searcher interface {
	Query(text string, limit int) []int
	Get(index int) (dictionary.Record, error)
}

// InputOptions control the layout and limits of the lookup screen
type InputOptions struct {
	// Limit caps the number of result rows
	Limit int
	// BufferRow is the row showing the query buffer
	BufferRow int
	// ResultOffset is the distance from the buffer row to the first result row
	ResultOffset int
	// MaxQueryLen skips querying for longer buffers; 0 disables the check
	MaxQueryLen int
}

// DefaultInputOptions matches the classic layout: buffer on top, results right below
func DefaultInputOptions() InputOptions {
	return InputOptions{
		Limit:        dictionary.DefaultLimit,
		BufferRow:    0,
		ResultOffset: 1,
	}
}

// InputHandler owns the query buffer and drives the surface from key presses
type InputHandler struct {
	searcher Searcher
	surface  Surface
	keys     KeyReader
	opts     InputOptions
	buffer   []rune

	queryCount int
}

// NewInputHandler creates the handler with an empty buffer
func NewInputHandler(searcher Searcher, surface Surface, keys KeyReader, opts InputOptions) *InputHandler {
	if opts.Limit <= 0 {
		opts.Limit = dictionary.DefaultLimit
	}
	if opts.ResultOffset <= 0 {
		opts.ResultOffset = 1
	}
	return &InputHandler{
		searcher: searcher,
		surface:  surface,
		keys:     keys,
		opts:     opts,
	}
}

// Start runs the loop until the key reader reports a cancel or end of input,
// both of which return nil. Read, draw and lookup failures are returned.
func (h *InputHandler) Start() error {
	log.Debug("Input loop started", "limit", h.opts.Limit)
	if err := h.surface.ClearScreen(); err != nil {
		return err
	}

	for {
		key, err := h.keys.ReadKey()
		if err != nil {
			if errors.Is(err, ErrInterrupted) || errors.Is(err, io.EOF) {
				log.Debug("Input loop stopped", "queries", h.queryCount)
				return nil
			}
			return fmt.Errorf("read key: %w", err)
		}

		h.apply(key)
		if err := h.redraw(); err != nil {
			return err
		}
	}
}

// Buffer returns the current query text
func (h *InputHandler) Buffer() string {
	return string(h.buffer)
}

// apply updates the buffer for one key
func (h *InputHandler) apply(key Key) {
	switch key.Kind {
	case KeyBackspace:
		if len(h.buffer) > 0 {
			h.buffer = h.buffer[:len(h.buffer)-1]
		}
	case KeyClear:
		h.buffer = h.buffer[:0]
	case KeyRune:
		h.buffer = append(h.buffer, key.Rune)
	case KeySubmit, KeyIgnored:
	}
}

// redraw paints one full frame for the current buffer
func (h *InputHandler) redraw() error {
	if err := h.surface.ClearScreen(); err != nil {
		return err
	}
	if err := h.surface.ClearLine(h.opts.BufferRow); err != nil {
		return err
	}
	if err := h.surface.Write(string(h.buffer)); err != nil {
		return err
	}

	if len(h.buffer) == 0 {
		return nil
	}
	if h.opts.MaxQueryLen > 0 && len(h.buffer) > h.opts.MaxQueryLen {
		log.Debugf("Query too long (%d runes), skipping lookup", len(h.buffer))
		return nil
	}

	start := time.Now()
	query := string(h.buffer)
	indexes := h.searcher.Query(query, h.opts.Limit)
	h.queryCount++
	log.Debugf("Took [ %v ] for query '%s', %d matches", time.Since(start), query, len(indexes))

	firstRow := h.opts.BufferRow + h.opts.ResultOffset
	for n, index := range indexes {
		record, err := h.searcher.Get(index)
		if err != nil {
			return fmt.Errorf("lookup result %d: %w", index, err)
		}
		if err := h.surface.MoveCursor(firstRow+n, 0); err != nil {
			return err
		}
		if err := h.surface.Write(record.Headword()); err != nil {
			return err
		}
	}
	return nil
}
