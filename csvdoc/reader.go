// Package csvdoc provides delimited text parsing. Input is decoded to
// UTF-8 before parsing: byte-order marks select UTF-8 or UTF-16, and
// anything else that fails UTF-8 validation is read as ISO 8859-1.
package csvdoc

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/tsawler/titulus/model"
)

// ReadFile parses the named delimited text file into a dataset.
func ReadFile(filename string) (*model.Dataset, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return Read(f)
}

// Read parses delimited text from r into a dataset. The first row
// supplies the column names; data rows shorter than the header are
// padded with missing values and longer rows are truncated. Empty
// fields become missing values, everything else stays a string.
func Read(r io.Reader) (*model.Dataset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	text, err := decode(data)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(bytes.NewReader(text))
	cr.FieldsPerRecord = -1

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing delimited text: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("input has no header row")
	}

	ds := model.NewDataset(rows[0]...)
	for _, row := range rows[1:] {
		values := make([]model.Value, len(row))
		for i, field := range row {
			if field == "" {
				values[i] = model.MissingValue()
			} else {
				values[i] = model.StringValue(field)
			}
		}
		ds.AddRecord(values...)
	}

	if err := ds.Validate(); err != nil {
		return nil, fmt.Errorf("building dataset: %w", err)
	}
	return ds, nil
}

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// decode converts raw input bytes to UTF-8. A byte-order mark selects
// the source encoding; input without one that is not valid UTF-8 is
// treated as ISO 8859-1.
func decode(data []byte) ([]byte, error) {
	switch {
	case bytes.HasPrefix(data, bomUTF16LE), bytes.HasPrefix(data, bomUTF16BE):
		dec := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
		out, _, err := transform.Bytes(dec, data)
		if err != nil {
			return nil, fmt.Errorf("decoding UTF-16: %w", err)
		}
		return out, nil
	case bytes.HasPrefix(data, bomUTF8):
		return data[len(bomUTF8):], nil
	case !utf8.Valid(data):
		out, _, err := transform.Bytes(charmap.ISO8859_1.NewDecoder(), data)
		if err != nil {
			return nil, fmt.Errorf("decoding ISO 8859-1: %w", err)
		}
		return out, nil
	}
	return data, nil
}
