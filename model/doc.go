// Package model provides the shared data types for label generation.
//
// This package defines the structures every other package speaks in:
// tabular input on one side, label grids on the other. Readers produce
// these types and the layout engine consumes them, making them the
// primary API for working with part-inventory data.
//
// # Tabular input
//
// A [Dataset] is an ordered set of named columns plus the records under
// them. Each cell is a [Value], a tagged scalar that is a string, a
// number, or missing:
//
//	ds := model.NewDataset("PART NO", "QTY/VEH")
//	ds.AddRecord(model.StringValue("08-DRA-14-02"), model.NumberValue(2))
//
// Value.Display is the single normalization point: missing values render
// as the empty string, numbers in their shortest decimal form. The rest
// of the engine never sees source-format quirks.
//
// # Semantic fields
//
// [Field] enumerates the fixed conceptual slots a label can show
// (fixture location, model, part number, ...), independent of how the
// source columns are actually named. The resolver package maps columns
// onto fields.
//
// # Labels
//
// A [Label] is one record laid out as a fixed grid of [Cell] values with
// per-row heights, merged spans, and per-cell [CellStyle] typography.
// [PageMetrics] carries the physical page geometry in centimeters; it is
// identical for every page of a document.
package model
