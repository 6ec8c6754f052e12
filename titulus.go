// Package titulus turns tabular part inventories into printable label
// documents: one fixed-size PDF page per record.
//
// Basic usage:
//
//	diags, err := titulus.Open("parts.xlsx").PDFFile("parts_labels.pdf")
//	if err != nil {
//	    // handle error
//	}
//	fmt.Println(titulus.FormatDiagnostics(diags))
//
// With options:
//
//	diags, err := titulus.Open("parts.csv").
//	    Preset("station").
//	    Keywords(model.FieldQuantity, "QTY/CAR").
//	    PDFFile("parts_labels.pdf")
//
// For advanced use cases, the lower-level layout and render packages are
// also available.
package titulus

import (
	"fmt"
	"io"

	"github.com/tsawler/titulus/model"
)

// Open prepares a label generator for the named spreadsheet. The file is
// not read until a terminal operation runs; its format is decided by
// extension, falling back to content sniffing.
//
// Example:
//
//	diags, err := titulus.Open("parts.xlsx").PDFFile("parts_labels.pdf")
func Open(filename string) *Generator {
	return &Generator{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromReader prepares a label generator that reads its input from r.
// The filename is used only for format detection; pass the original
// upload name, or "" to detect by content alone.
//
// Example:
//
//	diags, err := titulus.FromReader(upload, header.Filename).PDF(w)
func FromReader(r io.Reader, filename string) *Generator {
	return &Generator{
		filename: filename,
		source:   r,
		options:  defaultOptions(),
	}
}

// FromDataset prepares a label generator over an already-built dataset,
// bypassing file parsing entirely.
//
// Example:
//
//	ds := model.NewDataset("PART NO", "QTY")
//	ds.AddRecord(model.StringValue("X-1"), model.NumberValue(2))
//	labels, diags, err := titulus.FromDataset(ds).Labels()
func FromDataset(ds *model.Dataset) *Generator {
	g := &Generator{
		dataset: ds,
		options: defaultOptions(),
	}
	if ds == nil {
		g.err = fmt.Errorf("nil dataset")
	} else if err := ds.Validate(); err != nil {
		g.err = fmt.Errorf("invalid dataset: %w", err)
	}
	return g
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	diags := titulus.Must(titulus.Open("parts.xlsx").PDFFile("parts_labels.pdf"))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustBuild is a helper that wraps a call to Labels() or Mapping() and
// panics if the error is non-nil. It discards diagnostics and returns
// just the value. It is intended for use in scripts or tests where error
// handling would be cumbersome.
//
// Example:
//
//	labels := titulus.MustBuild(titulus.Open("parts.xlsx").Labels())
func MustBuild[T any](val T, _ []Diagnostic, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
