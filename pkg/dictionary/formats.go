package dictionary

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// FileFormat represents the on-disk encodings a snapshot can use
type FileFormat int

const (
	FormatUnknown FileFormat = iota
	FormatJSON               // [["apple","사과"], ...]
	FormatMsgpack            // same shape, msgpack encoded
)

// FormatInfo contains metadata about a snapshot file format
type FormatInfo struct {
	Format     FileFormat
	Name       string
	Extensions []string
}

var supportedFormats = map[FileFormat]FormatInfo{
	FormatJSON: {
		Format:     FormatJSON,
		Name:       "json",
		Extensions: []string{".json"},
	},
	FormatMsgpack: {
		Format:     FormatMsgpack,
		Name:       "msgpack",
		Extensions: []string{".msgpack", ".mpk"},
	},
}

func (f FileFormat) String() string {
	if info, ok := supportedFormats[f]; ok {
		return info.Name
	}
	return "unknown"
}

// ParseFormat maps a config name ("json", "msgpack") to a FileFormat.
// An empty name selects JSON.
func ParseFormat(name string) (FileFormat, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return FormatJSON, nil
	}
	for format, info := range supportedFormats {
		if info.Name == name {
			return format, nil
		}
	}
	return FormatUnknown, fmt.Errorf("unknown snapshot format %q", name)
}

// DetectFormat infers the snapshot format from a file extension.
// Unknown extensions fall back to JSON, the format the cache has always used.
func DetectFormat(filename string) FileFormat {
	ext := strings.ToLower(filepath.Ext(filename))
	for format, info := range supportedFormats {
		for _, validExt := range info.Extensions {
			if ext == validExt {
				return format
			}
		}
	}
	return FormatJSON
}

// EncodeSnapshot serializes rows in the given format
func EncodeSnapshot(rows [][]string, format FileFormat) ([]byte, error) {
	if rows == nil {
		rows = [][]string{}
	}
	switch format {
	case FormatJSON:
		return json.Marshal(rows)
	case FormatMsgpack:
		return msgpack.Marshal(rows)
	default:
		return nil, fmt.Errorf("cannot encode snapshot as %v", format)
	}
}

// DecodeSnapshot parses rows of string fields. Any structural problem is
// reported as ErrMalformedSnapshot.
func DecodeSnapshot(data []byte, format FileFormat) ([][]string, error) {
	var rows [][]string
	var err error

	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &rows)
	case FormatMsgpack:
		err = msgpack.Unmarshal(data, &rows)
	default:
		return nil, fmt.Errorf("%w: unsupported format %v", ErrMalformedSnapshot, format)
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}
	// a bare null decodes without error but is not a row list
	if rows == nil {
		return nil, fmt.Errorf("%w: snapshot is not a list of rows", ErrMalformedSnapshot)
	}
	return rows, nil
}
