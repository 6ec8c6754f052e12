// Package render draws label grids into PDF documents.
//
// A [Builder] owns one document. Each [model.Label] becomes one page: the
// grid borders are stroked at the label's line width, and every cell's text
// is wrapped to the cell width, aligned per its style, and centered
// vertically in the cell band. The page geometry comes from the label, so a
// builder only accepts labels that match the page it was created with.
//
//	b := render.NewBuilder(label.Page)
//	if err := b.AddLabel(label); err != nil {
//	    return err
//	}
//	if err := b.WriteFile("parts_labels.pdf"); err != nil {
//	    return err
//	}
//
// Text renders in the Helvetica core font, so output needs no embedded font
// files. Non-Latin-1 characters are best-effort transliterated by the font
// encoder.
package render
