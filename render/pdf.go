package render

import (
	"fmt"
	"io"
	"os"

	"github.com/jung-kurt/gofpdf"

	"github.com/tsawler/titulus/model"
)

// cmPerPoint converts typographic points to the document's cm unit.
const cmPerPoint = 2.54 / 72

// fontFamily is a PDF core font, available in every reader without
// embedding.
const fontFamily = "Helvetica"

// Builder accumulates label pages and writes the finished document. A
// Builder is single-use: after [Builder.Output] or [Builder.WriteFile] it
// must be discarded.
type Builder struct {
	pdf   *gofpdf.Fpdf
	tr    func(string) string
	page  model.PageMetrics
	pages int
}

// NewBuilder starts an empty document with the given page geometry.
func NewBuilder(page model.PageMetrics) *Builder {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "cm",
		Size:           gofpdf.SizeType{Wd: page.Width, Ht: page.Height},
	})
	pdf.SetMargins(page.Margin, page.Margin, page.Margin)
	pdf.SetAutoPageBreak(false, page.Margin)
	pdf.SetCellMargin(0)
	return &Builder{
		pdf:  pdf,
		tr:   pdf.UnicodeTranslatorFromDescriptor(""),
		page: page,
	}
}

// PageCount returns the number of pages added so far.
func (b *Builder) PageCount() int {
	return b.pages
}

// AddLabel draws one label on a new page.
func (b *Builder) AddLabel(label *model.Label) error {
	if label == nil {
		return fmt.Errorf("render: nil label")
	}
	if label.Page != b.page {
		return fmt.Errorf("render: label page %gx%gcm does not match document page %gx%gcm",
			label.Page.Width, label.Page.Height, b.page.Width, b.page.Height)
	}

	b.pdf.AddPage()
	b.pages++

	b.pdf.SetLineWidth(label.GridWidth * cmPerPoint)
	b.pdf.SetDrawColor(0, 0, 0)
	b.pdf.SetTextColor(0, 0, 0)

	for r := 0; r < label.RowCount(); r++ {
		for c := 0; c < label.ColCount(); c++ {
			cell := label.CellAt(r, c)
			if cell.Covered {
				continue
			}
			x, y, w, h := label.CellRect(r, c)
			x += b.page.Margin
			y += b.page.Margin
			b.pdf.Rect(x, y, w, h, "D")
			if cell.Text != "" {
				b.drawText(cell, x, y, w, h)
			}
		}
	}
	if err := b.pdf.Error(); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	return nil
}

// drawText wraps the cell's text to its width and lays the lines out
// according to the cell style. Coordinates are page-absolute cm.
func (b *Builder) drawText(cell *model.Cell, x, y, w, h float64) {
	style := cell.Style
	fontStyle := ""
	if style.Bold {
		fontStyle = "B"
	}
	b.pdf.SetFont(fontFamily, fontStyle, style.FontSize)

	padX := style.PadX * cmPerPoint
	innerW := w - 2*padX
	if innerW <= 0 {
		padX = 0
		innerW = w
	}

	lines := b.pdf.SplitText(b.tr(cell.Text), innerW)
	if len(lines) == 0 {
		return
	}

	leading := style.Leading * cmPerPoint
	blockH := float64(len(lines)) * leading
	var top float64
	switch style.VAlign {
	case model.VAlignTop:
		top = y
	case model.VAlignBottom:
		top = y + h - blockH
	default:
		top = y + (h-blockH)/2
	}
	if top < y {
		top = y
	}

	align := "L"
	if style.Align == model.AlignCenter {
		align = "C"
	}
	for i, line := range lines {
		b.pdf.SetXY(x+padX, top+float64(i)*leading)
		b.pdf.CellFormat(innerW, leading, line, "", 0, align, false, 0, "")
	}
}

// Output finalizes the document and writes it to w. A document with no
// pages is an error, not an empty file.
func (b *Builder) Output(w io.Writer) error {
	if b.pages == 0 {
		return fmt.Errorf("render: document has no pages")
	}
	if err := b.pdf.Error(); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if err := b.pdf.Output(w); err != nil {
		return fmt.Errorf("render: writing pdf: %w", err)
	}
	return nil
}

// WriteFile finalizes the document into path. No file is left behind on
// failure.
func (b *Builder) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("render: creating %s: %w", path, err)
	}
	if err := b.Output(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("render: closing %s: %w", path, err)
	}
	return nil
}
