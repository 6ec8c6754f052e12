// Package layout defines label layouts and builds label grids from records.
//
// A [Preset] is the complete description of one label design: the physical
// page, the grid shape, which cells hold fixed header text and which hold
// record fields, the merged spans, and the typography rules. Grid shape is
// configuration, never derived from the data, so every label produced by a
// preset has identical geometry regardless of which fields resolved.
//
// Three presets ship with the package and are registered under the names
// returned by [Names]:
//
//   - [Standard]: three rows with an adaptive description cell
//   - [Station]: four rows, adding a structure/station row
//   - [Legacy]: like Standard but with the older sizing threshold
//
// Custom layouts load from YAML files via [LoadFile], or register at
// runtime via [Register].
//
// # Building labels
//
// An [Engine] pairs a validated preset with a column mapping and turns each
// record into a [model.Label]:
//
//	eng, err := layout.NewEngine(layout.Standard())
//	if err != nil {
//	    return err
//	}
//	label, err := eng.BuildLabel(mapping, record)
//
// Long description text is handled by the preset's [AdaptiveSize] rule: text
// over the size threshold drops to the reduced type size, and text over the
// hard cap is truncated with an ellipsis. The grid never grows to fit text;
// text shrinks to fit the grid.
package layout
