package model

import (
	"fmt"
	"strings"
)

// TextAlignment is the horizontal alignment of cell content.
type TextAlignment int

const (
	AlignLeft TextAlignment = iota
	AlignCenter
)

// VerticalAlignment is the vertical alignment of cell content within the
// cell's allocated height.
type VerticalAlignment int

const (
	VAlignTop VerticalAlignment = iota
	VAlignMiddle
	VAlignBottom
)

// CellStyle describes how a cell's text is drawn.
type CellStyle struct {
	FontSize float64 // points
	Leading  float64 // points, line height for wrapped text
	Bold     bool
	Align    TextAlignment
	VAlign   VerticalAlignment
	PadX     float64 // points, left and right padding inside the cell
}

// Cell is one grid cell of a label: a static header, a record value, or a
// structural blank. A cell covered by a neighbouring span is marked
// Covered and is never drawn; the span's anchor cell owns the merged area.
type Cell struct {
	Text     string
	RowSpan  int
	ColSpan  int
	IsHeader bool
	Covered  bool
	Style    CellStyle
}

// PageMetrics is the physical page geometry in centimeters, constant
// across every page of a document.
type PageMetrics struct {
	Width  float64
	Height float64
	Margin float64 // uniform margin on all four sides
}

// ContentWidth returns the usable width inside the margins.
func (p PageMetrics) ContentWidth() float64 {
	return p.Width - 2*p.Margin
}

// ContentHeight returns the usable height inside the margins.
func (p PageMetrics) ContentHeight() float64 {
	return p.Height - 2*p.Margin
}

// Label is one record laid out as a grid, ready to render as one page.
// Cells are row-major. RowHeights and ColWidths are in centimeters and
// define the grid geometry together with Page. GridWidth is the border
// line width in points; every visible cell boundary is drawn with it.
type Label struct {
	Cells      [][]Cell
	RowHeights []float64
	ColWidths  []float64
	Page       PageMetrics
	GridWidth  float64
}

// NewLabel creates a label grid with the given geometry. All cells start
// blank with a 1x1 span.
func NewLabel(page PageMetrics, rowHeights, colWidths []float64) *Label {
	cells := make([][]Cell, len(rowHeights))
	for i := range cells {
		cells[i] = make([]Cell, len(colWidths))
		for j := range cells[i] {
			cells[i][j] = Cell{RowSpan: 1, ColSpan: 1}
		}
	}
	return &Label{
		Cells:      cells,
		RowHeights: append([]float64(nil), rowHeights...),
		ColWidths:  append([]float64(nil), colWidths...),
		Page:       page,
		GridWidth:  1,
	}
}

// RowCount returns the number of grid rows.
func (l *Label) RowCount() int {
	return len(l.Cells)
}

// ColCount returns the number of grid columns.
func (l *Label) ColCount() int {
	if len(l.Cells) == 0 {
		return 0
	}
	return len(l.Cells[0])
}

// CellAt returns the cell at (row, col), or nil when out of bounds.
func (l *Label) CellAt(row, col int) *Cell {
	if row < 0 || row >= len(l.Cells) {
		return nil
	}
	if col < 0 || col >= len(l.Cells[row]) {
		return nil
	}
	return &l.Cells[row][col]
}

// SetCell replaces the cell at the given position.
func (l *Label) SetCell(row, col int, cell Cell) error {
	if row < 0 || row >= len(l.Cells) {
		return fmt.Errorf("row index %d out of bounds", row)
	}
	if col < 0 || col >= len(l.Cells[row]) {
		return fmt.Errorf("col index %d out of bounds", col)
	}
	l.Cells[row][col] = cell
	return nil
}

// Merge declares a span anchored at (row, col). The anchor keeps the
// merged area; every other cell in the span is marked covered.
func (l *Label) Merge(row, col, rowSpan, colSpan int) error {
	if rowSpan < 1 || colSpan < 1 {
		return fmt.Errorf("span at (%d,%d) must be at least 1x1", row, col)
	}
	if row < 0 || col < 0 || row+rowSpan > l.RowCount() || col+colSpan > l.ColCount() {
		return fmt.Errorf("span %dx%d at (%d,%d) exceeds %dx%d grid",
			rowSpan, colSpan, row, col, l.RowCount(), l.ColCount())
	}
	for r := row; r < row+rowSpan; r++ {
		for c := col; c < col+colSpan; c++ {
			if r == row && c == col {
				continue
			}
			if l.Cells[r][c].Covered {
				return fmt.Errorf("span at (%d,%d) overlaps an existing span", row, col)
			}
			l.Cells[r][c].Covered = true
		}
	}
	l.Cells[row][col].RowSpan = rowSpan
	l.Cells[row][col].ColSpan = colSpan
	return nil
}

// CellRect returns the drawn rectangle of the cell at (row, col) in
// centimeters, relative to the top-left corner of the content box.
// Merged spans extend the rectangle across the covered cells.
func (l *Label) CellRect(row, col int) (x, y, w, h float64) {
	cell := l.CellAt(row, col)
	if cell == nil {
		return 0, 0, 0, 0
	}
	for c := 0; c < col; c++ {
		x += l.ColWidths[c]
	}
	for r := 0; r < row; r++ {
		y += l.RowHeights[r]
	}
	rs, cs := cell.RowSpan, cell.ColSpan
	if rs < 1 {
		rs = 1
	}
	if cs < 1 {
		cs = 1
	}
	for c := col; c < col+cs && c < len(l.ColWidths); c++ {
		w += l.ColWidths[c]
	}
	for r := row; r < row+rs && r < len(l.RowHeights); r++ {
		h += l.RowHeights[r]
	}
	return x, y, w, h
}

// Text returns the label's cell text joined by tabs and newlines,
// skipping covered cells. Intended for debugging and tests.
func (l *Label) Text() string {
	var sb strings.Builder
	for _, row := range l.Cells {
		first := true
		for _, cell := range row {
			if cell.Covered {
				continue
			}
			if !first {
				sb.WriteString("\t")
			}
			sb.WriteString(cell.Text)
			first = false
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
