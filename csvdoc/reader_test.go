package csvdoc

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf16"

	"github.com/tsawler/titulus/model"
)

// encodeUTF16 encodes s as UTF-16 with a leading byte-order mark.
func encodeUTF16(t *testing.T, s string, order binary.ByteOrder) []byte {
	t.Helper()
	units := utf16.Encode([]rune("﻿" + s))
	buf := make([]byte, 2*len(units))
	for i, u := range units {
		order.PutUint16(buf[2*i:], u)
	}
	return buf
}

func TestReadParsesHeaderAndRows(t *testing.T) {
	input := "FIXTURE LOCATION,MODEL,PART NO,QTY/VEH,PART DESCRIPTION\n" +
		"9M CSEL,3WC,08-DRA-14-02,2,BELLOW ASSY. WITH RETAINING CLIP\n"

	ds, err := Read(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	wantColumns := []string{"FIXTURE LOCATION", "MODEL", "PART NO", "QTY/VEH", "PART DESCRIPTION"}
	if len(ds.Columns) != len(wantColumns) {
		t.Fatalf("columns = %v, want %v", ds.Columns, wantColumns)
	}
	for i, want := range wantColumns {
		if ds.Columns[i] != want {
			t.Errorf("column %d = %q, want %q", i, ds.Columns[i], want)
		}
	}

	if got := ds.RowCount(); got != 1 {
		t.Fatalf("RowCount() = %d, want 1", got)
	}
	if v := ds.Value(0, 2); v.Str != "08-DRA-14-02" {
		t.Errorf("part number = %+v, want 08-DRA-14-02", v)
	}
	if v := ds.Value(0, 3); v.Kind != model.ValueString || v.Str != "2" {
		t.Errorf("quantity = %+v, want string 2", v)
	}
}

func TestReadMissingAndRaggedRows(t *testing.T) {
	input := "PART NO,QTY,DESC\n" +
		"X-1,,GASKET\n" +
		"X-2,4\n" +
		"X-3,1,SEAL,EXTRA\n"

	ds, err := Read(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if got := ds.RowCount(); got != 3 {
		t.Fatalf("RowCount() = %d, want 3", got)
	}
	if v := ds.Value(0, 1); !v.IsMissing() {
		t.Errorf("empty field = %+v, want missing", v)
	}
	if v := ds.Value(1, 2); !v.IsMissing() {
		t.Errorf("short row padding = %+v, want missing", v)
	}
	if rec := ds.Records[2]; len(rec) != 3 {
		t.Errorf("long row kept %d values, want 3", len(rec))
	}
	if err := ds.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestReadQuotedFields(t *testing.T) {
	input := "PART NO,DESC\n" +
		"X-1,\"BRACKET, UPPER\"\n" +
		"X-2,\"LINE ONE\nLINE TWO\"\n"

	ds, err := Read(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if v := ds.Value(0, 1); v.Str != "BRACKET, UPPER" {
		t.Errorf("quoted comma = %q, want BRACKET, UPPER", v.Str)
	}
	if v := ds.Value(1, 1); v.Str != "LINE ONE\nLINE TWO" {
		t.Errorf("quoted newline = %q", v.Str)
	}
}

func TestReadCharsets(t *testing.T) {
	const content = "PART NO,DESC\nX-1,ÉCROU À SIX PANS\n"

	tests := []struct {
		name string
		data []byte
	}{
		{"plain UTF-8", []byte(content)},
		{"UTF-8 BOM", append([]byte{0xEF, 0xBB, 0xBF}, content...)},
		{"UTF-16 LE", encodeUTF16(t, content, binary.LittleEndian)},
		{"UTF-16 BE", encodeUTF16(t, content, binary.BigEndian)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := Read(bytes.NewReader(tt.data))
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if ds.Columns[0] != "PART NO" {
				t.Errorf("first column = %q, want PART NO", ds.Columns[0])
			}
			if v := ds.Value(0, 1); v.Str != "ÉCROU À SIX PANS" {
				t.Errorf("description = %q, want ÉCROU À SIX PANS", v.Str)
			}
		})
	}
}

func TestReadLatin1Fallback(t *testing.T) {
	input := append([]byte("PART NO,DESC\nX-1,CLIP "), 0xC9) // Latin-1 É

	ds, err := Read(bytes.NewReader(input))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if v := ds.Value(0, 1); v.Str != "CLIP É" {
		t.Errorf("description = %q, want CLIP É", v.Str)
	}
}

func TestReadRejectsBadInput(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		if _, err := Read(strings.NewReader("")); err == nil {
			t.Error("Read() accepted empty input")
		}
	})

	t.Run("unterminated quote", func(t *testing.T) {
		if _, err := Read(strings.NewReader("PART NO\n\"X-1\n")); err == nil {
			t.Error("Read() accepted an unterminated quote")
		}
	})
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parts.csv")
	content := "PART NO,QTY\nX-1,2\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	ds, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if got := ds.RowCount(); got != 1 {
		t.Errorf("RowCount() = %d, want 1", got)
	}

	if _, err := ReadFile(filepath.Join(t.TempDir(), "absent.csv")); err == nil {
		t.Error("ReadFile() accepted a missing file")
	}
}
