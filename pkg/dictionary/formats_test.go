package dictionary

import (
	"errors"
	"testing"
)

func TestDetectFormat(t *testing.T) {
	testCases := []struct {
		filename string
		expected FileFormat
	}{
		{"zasospika.json", FormatJSON},
		{"cache/dict.JSON", FormatJSON},
		{"dict.msgpack", FormatMsgpack},
		{"dict.mpk", FormatMsgpack},
		{"dict", FormatJSON},
		{"", FormatJSON},
	}

	for _, tc := range testCases {
		if got := DetectFormat(tc.filename); got != tc.expected {
			t.Errorf("DetectFormat(%q) = %v, want %v", tc.filename, got, tc.expected)
		}
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat(""); err != nil || f != FormatJSON {
		t.Errorf("ParseFormat(\"\") = %v, %v", f, err)
	}
	if f, err := ParseFormat(" MsgPack "); err != nil || f != FormatMsgpack {
		t.Errorf("ParseFormat(msgpack) = %v, %v", f, err)
	}
	if _, err := ParseFormat("yaml"); err == nil {
		t.Errorf("expected error for unknown format")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	for _, format := range []FileFormat{FormatJSON, FormatMsgpack} {
		data, err := EncodeSnapshot(fruitRows, format)
		if err != nil {
			t.Fatalf("encode %v: %v", format, err)
		}
		rows, err := DecodeSnapshot(data, format)
		if err != nil {
			t.Fatalf("decode %v: %v", format, err)
		}
		if len(rows) != len(fruitRows) || rows[2][1] != "살구" {
			t.Errorf("%v round trip mismatch: %v", format, rows)
		}
	}
}

func TestJSONSnapshotLayout(t *testing.T) {
	data, err := EncodeSnapshot([][]string{{"apple", "사과"}}, FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `[["apple","사과"]]` {
		t.Errorf("unexpected JSON layout: %s", data)
	}
}

func TestDecodeMalformedMsgpack(t *testing.T) {
	for _, data := range [][]byte{{}, {0xc1}, {0x91, 0x01}} {
		if _, err := DecodeSnapshot(data, FormatMsgpack); !errors.Is(err, ErrMalformedSnapshot) {
			t.Errorf("DecodeSnapshot(%x) error = %v, want ErrMalformedSnapshot", data, err)
		}
	}
}
