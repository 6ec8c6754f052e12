// Package xlsx reads Office Open XML workbooks into tabular datasets.
//
// The reader deliberately understands only the parts of the format that
// part-inventory sheets use: worksheet grids, shared and inline strings,
// numbers, booleans, and merged regions. Charts, styles, formulas without
// cached results, and everything else in the OPC package are ignored.
package xlsx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tsawler/titulus/model"
)

// The subset of the SpreadsheetML schema the reader consumes.

type xmlWorkbook struct {
	XMLName xml.Name `xml:"workbook"`
	Sheets  struct {
		Sheet []xmlSheetRef `xml:"sheet"`
	} `xml:"sheets"`
}

type xmlSheetRef struct {
	Name string `xml:"name,attr"`
	RID  string `xml:"id,attr"`
}

type xmlWorksheet struct {
	XMLName   xml.Name `xml:"worksheet"`
	SheetData struct {
		Rows []xmlRow `xml:"row"`
	} `xml:"sheetData"`
	MergeCells struct {
		Refs []struct {
			Ref string `xml:"ref,attr"`
		} `xml:"mergeCell"`
	} `xml:"mergeCells"`
}

type xmlRow struct {
	R     int       `xml:"r,attr"`
	Cells []xmlCell `xml:"c"`
}

type xmlCell struct {
	R  string     `xml:"r,attr"`
	T  string     `xml:"t,attr"`
	V  string     `xml:"v"`
	Is *xmlInline `xml:"is"`
}

type xmlInline struct {
	T string `xml:"t"`
}

type xmlStringTable struct {
	XMLName xml.Name        `xml:"sst"`
	Items   []xmlStringItem `xml:"si"`
}

type xmlStringItem struct {
	T    string `xml:"t"`
	Runs []struct {
		T string `xml:"t"`
	} `xml:"r"`
}

type xmlRelationships struct {
	XMLName       xml.Name `xml:"Relationships"`
	Relationships []struct {
		ID     string `xml:"Id,attr"`
		Target string `xml:"Target,attr"`
	} `xml:"Relationship"`
}

// Reader provides access to the worksheets of one workbook.
type Reader struct {
	closer  io.Closer
	parts   map[string]*zip.File
	strings []string
	sheets  []*sheet
}

// Open opens an XLSX file for reading.
func Open(filename string) (*Reader, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}

	r, err := load(zr.File)
	if err != nil {
		zr.Close()
		return nil, err
	}
	r.closer = zr
	return r, nil
}

// NewReader reads a workbook from seekable content, such as a bytes.Reader
// over an uploaded file.
func NewReader(ra io.ReaderAt, size int64) (*Reader, error) {
	zr, err := zip.NewReader(ra, size)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}
	return load(zr.File)
}

// Close releases the underlying file when the Reader came from Open.
// Readers created by NewReader hold no resources.
func (r *Reader) Close() error {
	if r.closer != nil {
		err := r.closer.Close()
		r.closer = nil
		return err
	}
	return nil
}

func load(files []*zip.File) (*Reader, error) {
	r := &Reader{parts: make(map[string]*zip.File, len(files))}
	for _, f := range files {
		r.parts[f.Name] = f
	}
	for _, name := range []string{"[Content_Types].xml", "xl/workbook.xml"} {
		if _, ok := r.parts[name]; !ok {
			return nil, fmt.Errorf("missing required file: %s", name)
		}
	}

	wb := &xmlWorkbook{}
	if err := r.decodePart("xl/workbook.xml", wb); err != nil {
		return nil, fmt.Errorf("parsing workbook: %w", err)
	}
	r.loadStrings()

	if err := r.loadSheets(wb); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Reader) part(name string) ([]byte, error) {
	f, ok := r.parts[name]
	if !ok {
		return nil, fmt.Errorf("file not found: %s", name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func (r *Reader) decodePart(name string, v any) error {
	data, err := r.part(name)
	if err != nil {
		return err
	}
	return xml.Unmarshal(data, v)
}

// loadStrings reads the shared string table. The table is optional; a
// workbook of inline strings has none.
func (r *Reader) loadStrings() {
	var sst xmlStringTable
	if err := r.decodePart("xl/sharedStrings.xml", &sst); err != nil {
		return
	}

	r.strings = make([]string, len(sst.Items))
	for i, item := range sst.Items {
		if item.T != "" || len(item.Runs) == 0 {
			r.strings[i] = item.T
			continue
		}
		// Rich text stores the string as formatting runs.
		var text strings.Builder
		for _, run := range item.Runs {
			text.WriteString(run.T)
		}
		r.strings[i] = text.String()
	}
}

// loadSheets parses every worksheet the workbook references. Sheets whose
// part is absent or malformed are skipped; only a workbook with no readable
// sheet at all is an error.
func (r *Reader) loadSheets(wb *xmlWorkbook) error {
	targets := make(map[string]string)
	var rels xmlRelationships
	if err := r.decodePart("xl/_rels/workbook.xml.rels", &rels); err == nil {
		for _, rel := range rels.Relationships {
			targets[rel.ID] = rel.Target
		}
	}

	for i, ref := range wb.Sheets.Sheet {
		target := targets[ref.RID]
		if target == "" {
			target = fmt.Sprintf("worksheets/sheet%d.xml", i+1)
		}
		target = strings.TrimPrefix(target, "/")
		if !strings.HasPrefix(target, "xl/") {
			target = "xl/" + target
		}

		var ws xmlWorksheet
		if err := r.decodePart(target, &ws); err != nil {
			continue
		}
		r.sheets = append(r.sheets, r.buildSheet(ref.Name, &ws))
	}

	if len(r.sheets) == 0 {
		return fmt.Errorf("no worksheets found")
	}
	return nil
}

// buildSheet flattens one worksheet into a grid of typed values. Row and
// cell references are authoritative when present; cells without one take
// the slot after their predecessor, so sparse and reference-free files
// land in the same grid.
func (r *Reader) buildSheet(name string, ws *xmlWorksheet) *sheet {
	s := &sheet{name: name}

	rowCursor := -1
	for _, xr := range ws.SheetData.Rows {
		rowCursor++
		if xr.R > 0 {
			rowCursor = xr.R - 1
		}

		var line []model.Value
		colCursor := -1
		for _, xc := range xr.Cells {
			colCursor++
			if col, _, err := parseCellRef(xc.R); err == nil {
				colCursor = col
			}
			if colCursor >= len(line) {
				line = append(line, make([]model.Value, colCursor+1-len(line))...)
			}
			line[colCursor] = r.decodeCell(xc)
		}

		for rowCursor >= len(s.grid) {
			s.grid = append(s.grid, nil)
		}
		s.grid[rowCursor] = line
	}

	for _, ref := range ws.MergeCells.Refs {
		s.applyMerge(ref.Ref)
	}
	return s
}

// decodeCell converts one cell element to a dataset value. Error cells and
// formulas without a cached result become Missing; booleans take Excel's
// display form.
func (r *Reader) decodeCell(c xmlCell) model.Value {
	switch c.T {
	case "s":
		i, err := strconv.Atoi(c.V)
		if err != nil || i < 0 || i >= len(r.strings) {
			return model.MissingValue()
		}
		return model.StringValue(r.strings[i])
	case "inlineStr":
		if c.Is == nil {
			return model.MissingValue()
		}
		return model.StringValue(c.Is.T)
	case "str":
		return model.StringValue(c.V)
	case "b":
		if c.V == "1" {
			return model.StringValue("TRUE")
		}
		return model.StringValue("FALSE")
	case "e":
		return model.MissingValue()
	default:
		if c.V == "" {
			return model.MissingValue()
		}
		n, err := strconv.ParseFloat(c.V, 64)
		if err != nil {
			return model.StringValue(c.V)
		}
		return model.NumberValue(n)
	}
}

// SheetCount returns the number of readable sheets in the workbook.
func (r *Reader) SheetCount() int {
	return len(r.sheets)
}

// SheetNames returns the names of all readable sheets.
func (r *Reader) SheetNames() []string {
	names := make([]string, len(r.sheets))
	for i, s := range r.sheets {
		names[i] = s.name
	}
	return names
}

// Dataset flattens the first sheet that has tabular content. The first
// non-empty row provides the column names; every following row becomes one
// record.
func (r *Reader) Dataset() (*model.Dataset, error) {
	for i := range r.sheets {
		ds, err := r.SheetDataset(i)
		if err == nil {
			return ds, nil
		}
	}
	return nil, fmt.Errorf("no tabular content in workbook (sheets: %s)",
		strings.Join(r.SheetNames(), ", "))
}

// SheetDataset flattens one sheet (0-indexed) into a dataset. Leading empty
// rows and columns are trimmed; merged regions contribute their value at the
// anchor cell only.
func (r *Reader) SheetDataset(index int) (*model.Dataset, error) {
	if index < 0 || index >= len(r.sheets) {
		return nil, fmt.Errorf("sheet index %d out of range (0-%d)", index, len(r.sheets)-1)
	}
	s := r.sheets[index]

	minRow, maxRow, minCol, maxCol := s.contentBounds()
	if minRow > maxRow || minCol > maxCol {
		return nil, fmt.Errorf("sheet %q has no content", s.name)
	}

	columns := make([]string, 0, maxCol-minCol+1)
	for col := minCol; col <= maxCol; col++ {
		columns = append(columns, s.value(minRow, col).Display())
	}

	ds := model.NewDataset(columns...)
	for row := minRow + 1; row <= maxRow; row++ {
		values := make([]model.Value, 0, len(columns))
		for col := minCol; col <= maxCol; col++ {
			values = append(values, s.value(row, col))
		}
		ds.AddRecord(values...)
	}

	if err := ds.Validate(); err != nil {
		return nil, fmt.Errorf("sheet %q: %w", s.name, err)
	}
	return ds, nil
}
