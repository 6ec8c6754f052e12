// Package format provides input format detection for the titulus library.
package format

import (
	"archive/zip"
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Format represents a supported input format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// CSV indicates a delimited text file.
	CSV
	// XLSX indicates a Microsoft Excel (.xlsx) workbook.
	XLSX
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case CSV:
		return "CSV"
	case XLSX:
		return "XLSX"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case CSV:
		return ".csv"
	case XLSX:
		return ".xlsx"
	default:
		return ""
	}
}

// MediaType returns the MIME type for the format.
func (f Format) MediaType() string {
	switch f {
	case CSV:
		return "text/csv"
	case XLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return ""
	}
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".csv":
		return CSV
	case ".xlsx", ".xlsm":
		return XLSX
	default:
		return Unknown
	}
}

// DetectFromMagic checks leading bytes to determine format. ZIP archives
// need member inspection to identify, so they report Unknown here; use
// DetectFromReader when the content is seekable.
func DetectFromMagic(data []byte) Format {
	if len(data) == 0 {
		return Unknown
	}
	if isZIP(data) {
		// Could be XLSX or any other ZIP-based container.
		return Unknown
	}
	if looksLikeDelimitedText(data) {
		return CSV
	}
	return Unknown
}

// isZIP checks the PK\x03\x04 local file header.
func isZIP(data []byte) bool {
	return len(data) >= 4 && data[0] == 0x50 && data[1] == 0x4B && data[2] == 0x03 && data[3] == 0x04
}

// looksLikeDelimitedText reports whether data could be the start of a CSV
// file: decodable text with no control bytes beyond tabs and line breaks.
// UTF-16 byte order marks count as text since the CSV reader transcodes
// them.
func looksLikeDelimitedText(data []byte) bool {
	if len(data) >= 2 {
		if (data[0] == 0xFF && data[1] == 0xFE) || (data[0] == 0xFE && data[1] == 0xFF) {
			return true
		}
	}
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})

	// Tolerate one rune clipped by the sniff window.
	for trim := 0; trim < utf8.UTFMax && len(data) > 0 && !utf8.Valid(data); trim++ {
		data = data[:len(data)-1]
	}
	if !utf8.Valid(data) {
		return false
	}

	for _, r := range string(data) {
		if r == '\n' || r == '\r' || r == '\t' {
			continue
		}
		if r < 0x20 || r == 0x7F {
			return false
		}
	}
	return true
}

// DetectFromReader inspects content to determine format. This is more
// reliable than extension-based detection and can tell an XLSX workbook
// apart from other ZIP-based containers.
func DetectFromReader(r io.ReaderAt, size int64) (Format, error) {
	magic := make([]byte, 512)
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	magic = magic[:n]

	if isZIP(magic) {
		return detectZIPFormat(r, size)
	}
	if n > 0 && looksLikeDelimitedText(magic) {
		return CSV, nil
	}
	return Unknown, nil
}

// detectZIPFormat inspects a ZIP archive for workbook members.
func detectZIPFormat(r io.ReaderAt, size int64) (Format, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return Unknown, err
	}
	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, "xl/") {
			return XLSX, nil
		}
	}
	return Unknown, nil
}
