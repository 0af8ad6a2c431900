// Package dictionary holds the lookup dictionary: rows of text fields loaded
// from a local snapshot or pulled from a remote source, searched by
// normalized substring.
package dictionary

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/bastiangx/wordlook/internal/utils"
)

// DefaultLimit is the result cap used when a query passes no positive limit
const DefaultLimit = 10

var (
	// ErrMalformedSnapshot reports a snapshot that cannot be parsed into rows of fields
	ErrMalformedSnapshot = errors.New("malformed snapshot")
	// ErrOutOfRange reports a record index outside the loaded sequence
	ErrOutOfRange = errors.New("record index out of range")
	// ErrNoProvider reports a resynchronize without a configured source
	ErrNoProvider = errors.New("no snapshot provider configured")
)

// Record is one dictionary row. The first field is the headword.
type Record []string

// Headword returns the first field, or "" for a record without fields
func (r Record) Headword() string {
	if len(r) == 0 {
		return ""
	}
	return r[0]
}

// Options configure a Store
type Options struct {
	// CachePath is where snapshots are read on startup and written after a resync
	CachePath string
	// CacheFormat overrides the format inferred from the CachePath extension
	CacheFormat FileFormat
	// Provider pulls fresh rows from the remote source
	Provider Provider
	// Persist writes a snapshot to CachePath after every successful resync
	Persist bool
}

// Store owns the ordered record sequence and its search index.
// Records are replaced wholesale; a reader never sees a half-loaded state.
type Store struct {
	opts    Options
	mu      sync.RWMutex
	records []Record
	index   *Index
}

// NewStore creates an empty store
func NewStore(opts Options) *Store {
	if opts.CacheFormat == FormatUnknown {
		opts.CacheFormat = DetectFormat(opts.CachePath)
	}
	return &Store{
		opts:  opts,
		index: NewIndex(nil),
	}
}

// Open applies the startup policy: load the cached snapshot when one exists,
// and resynchronize when there is none or it cannot be decoded.
func (s *Store) Open(ctx context.Context) error {
	if s.opts.CachePath != "" && utils.FileExists(s.opts.CachePath) {
		err := s.LoadFile()
		if err == nil {
			log.Debug("Loaded cached snapshot", "path", s.opts.CachePath, "records", s.Len())
			return nil
		}
		log.Warn("Cached snapshot unusable, resynchronizing", "path", s.opts.CachePath, "err", err)
	} else {
		log.Debug("No cached snapshot, resynchronizing", "path", s.opts.CachePath)
	}
	return s.Resynchronize(ctx)
}

// LoadFile reads the snapshot at CachePath
func (s *Store) LoadFile() error {
	data, err := os.ReadFile(s.opts.CachePath)
	if err != nil {
		return fmt.Errorf("read snapshot %s: %w", s.opts.CachePath, err)
	}
	return s.Load(data, s.opts.CacheFormat)
}

// Load replaces the records with the rows decoded from snapshot.
// On error the current records are kept.
func (s *Store) Load(snapshot []byte, format FileFormat) error {
	rows, err := DecodeSnapshot(snapshot, format)
	if err != nil {
		return err
	}
	s.replace(rows)
	return nil
}

// Resynchronize pulls a fresh snapshot from the provider and replaces the
// records. With Persist set the snapshot is also written to CachePath; a
// failed write is logged only, the in-memory data is already usable.
func (s *Store) Resynchronize(ctx context.Context) error {
	if s.opts.Provider == nil {
		return ErrNoProvider
	}

	start := time.Now()
	rows, err := s.opts.Provider.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("resynchronize: %w", err)
	}
	s.replace(rows)
	log.Debugf("Resynchronized %d records in %v", len(rows), time.Since(start))

	if s.opts.Persist && s.opts.CachePath != "" {
		if err := s.persist(rows); err != nil {
			log.Warn("Failed to write snapshot cache", "path", s.opts.CachePath, "err", err)
		}
	}
	return nil
}

func (s *Store) persist(rows [][]string) error {
	data, err := EncodeSnapshot(rows, s.opts.CacheFormat)
	if err != nil {
		return err
	}
	return utils.WriteFileAtomic(s.opts.CachePath, data)
}

// replace swaps in new records and their index together
func (s *Store) replace(rows [][]string) {
	records := make([]Record, len(rows))
	for i, row := range rows {
		records[i] = Record(row)
	}
	index := NewIndex(records)

	s.mu.Lock()
	s.records = records
	s.index = index
	s.mu.Unlock()
}

// Query returns the indices of records with at least one field containing
// the normalized text, in record order, at most limit of them.
// A limit <= 0 selects DefaultLimit.
func (s *Store) Query(text string, limit int) []int {
	if limit <= 0 {
		limit = DefaultLimit
	}
	s.mu.RLock()
	index := s.index
	s.mu.RUnlock()

	return index.Search(utils.Normalize(text), limit)
}

// Get returns the record at index
func (s *Store) Get(index int) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if index < 0 || index >= len(s.records) {
		return nil, fmt.Errorf("%w: %d (have %d)", ErrOutOfRange, index, len(s.records))
	}
	return s.records[index], nil
}

// Len returns the number of loaded records
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
