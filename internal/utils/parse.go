package utils

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// TOMLTable is one loosely typed TOML table.
type TOMLTable map[string]any

// DecodeTOMLFile decodes the file at path into v.
func DecodeTOMLFile(path string, v any) error {
	if _, err := toml.DecodeFile(path, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// ReadTOMLTables decodes path without a target struct, so that values of
// the wrong type can be skipped one at a time.
func ReadTOMLTables(path string) (map[string]TOMLTable, error) {
	raw := make(map[string]any)
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	tables := make(map[string]TOMLTable, len(raw))
	for name, value := range raw {
		if table, ok := value.(map[string]any); ok {
			tables[name] = table
		}
	}
	return tables, nil
}

// Lookup returns the value under key when it holds a T.
// TOML integers decode as int64; they are accepted for T int as well.
func Lookup[T any](table TOMLTable, key string) (T, bool) {
	var zero T
	raw, ok := table[key]
	if !ok {
		return zero, false
	}
	if n, isInt := raw.(int64); isInt {
		if v, ok := any(int(n)).(T); ok {
			return v, true
		}
	}
	v, ok := raw.(T)
	return v, ok
}
