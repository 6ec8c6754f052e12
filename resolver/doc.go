// Package resolver maps raw dataset column names onto semantic fields.
//
// Inventory sheets name their columns inconsistently: "PART NO",
// "PartNo.", "part_no" and "Spare PART#" all mean the same thing. The
// resolver scans the dataset's columns once per semantic field using
// case-insensitive substring matching, trying each field's candidate
// keywords in priority order and columns in their original order. The
// first hit wins.
//
//	m := resolver.New().Resolve(ds.Columns)
//	col, ok := m.Column(model.FieldPartNumber)
//
// Resolution never fails: a field with no matching column is recorded as
// unresolved and extracts as a blank value downstream. The per-field
// [Match] report is available for user feedback via [Mapping.Matches].
//
// Keyword lists can be replaced per field:
//
//	r := resolver.New(resolver.WithKeywords(model.FieldQuantity, "COUNT"))
package resolver
