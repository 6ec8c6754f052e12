package model

import "fmt"

// Record is one data row, aligned index-for-index with the dataset's
// Columns.
type Record []Value

// Dataset is an ordered tabular input: named columns and the records
// under them. Record order is preserved and determines output page order.
// Datasets are read-only to the engine once built.
type Dataset struct {
	Columns []string
	Records []Record
}

// NewDataset creates an empty dataset with the given column names.
func NewDataset(columns ...string) *Dataset {
	return &Dataset{Columns: columns}
}

// AddRecord appends one row. Short rows are padded with missing values
// and long rows truncated, so every record stays aligned with Columns.
func (d *Dataset) AddRecord(values ...Value) {
	rec := make(Record, len(d.Columns))
	for i := range rec {
		if i < len(values) {
			rec[i] = values[i]
		} else {
			rec[i] = MissingValue()
		}
	}
	d.Records = append(d.Records, rec)
}

// ColumnIndex returns the position of the named column, or -1 when the
// dataset has no such column.
func (d *Dataset) ColumnIndex(name string) int {
	for i, c := range d.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// RowCount returns the number of records.
func (d *Dataset) RowCount() int {
	return len(d.Records)
}

// ColumnCount returns the number of columns.
func (d *Dataset) ColumnCount() int {
	return len(d.Columns)
}

// Value returns the value at (row, col), or the missing marker when
// either index is out of range.
func (d *Dataset) Value(row, col int) Value {
	if row < 0 || row >= len(d.Records) {
		return MissingValue()
	}
	rec := d.Records[row]
	if col < 0 || col >= len(rec) {
		return MissingValue()
	}
	return rec[col]
}

// Validate checks structural integrity: at least one column, and every
// record aligned with the column list.
func (d *Dataset) Validate() error {
	if len(d.Columns) == 0 {
		return fmt.Errorf("dataset has no columns")
	}
	for i, rec := range d.Records {
		if len(rec) != len(d.Columns) {
			return fmt.Errorf("record %d has %d values, want %d", i, len(rec), len(d.Columns))
		}
	}
	return nil
}
