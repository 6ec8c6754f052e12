package layout

import (
	"fmt"
	"math"

	"github.com/tsawler/titulus/model"
)

// CellRole says what a grid position holds.
type CellRole int

const (
	// RoleBlank cells complete the grid without carrying content.
	RoleBlank CellRole = iota
	// RoleHeader cells carry fixed caption text, drawn bold.
	RoleHeader
	// RoleValue cells carry the text of one record field.
	RoleValue
)

// String returns the role name used in preset files.
func (r CellRole) String() string {
	switch r {
	case RoleHeader:
		return "header"
	case RoleValue:
		return "value"
	default:
		return "blank"
	}
}

// roleByName maps preset-file role names back to roles.
func roleByName(name string) (CellRole, bool) {
	switch name {
	case "blank", "":
		return RoleBlank, true
	case "header":
		return RoleHeader, true
	case "value":
		return RoleValue, true
	}
	return RoleBlank, false
}

// CellDef declares the content of one grid position.
type CellDef struct {
	Row, Col int
	Role     CellRole
	Text     string      // caption for RoleHeader cells
	Field    model.Field // bound field for RoleValue cells
	Align    model.TextAlignment
	Adaptive bool // apply the preset's AdaptiveSize rule to this cell
}

// Span merges a rectangular block of cells into one visual cell anchored at
// (Row, Col).
type Span struct {
	Row, Col         int
	RowSpan, ColSpan int
}

// AdaptiveSize shrinks and truncates long text so it stays inside a fixed
// physical cell. Length decisions use the rune count of the original text.
type AdaptiveSize struct {
	Threshold      int     // rune count at or below which the base size applies
	MaxLen         int     // hard cap; longer text is truncated
	BaseSize       float64 // points
	BaseLeading    float64 // points
	ReducedSize    float64 // points, used above Threshold
	ReducedLeading float64 // points
	Ellipsis       string  // appended to truncated text
}

// Apply returns the display text, type size, and leading for text of any
// length. Text at or under Threshold keeps the base size; longer text drops
// to the reduced size, and text over MaxLen is cut at MaxLen with the
// ellipsis appended.
func (a AdaptiveSize) Apply(text string) (string, float64, float64) {
	runes := []rune(text)
	size, leading := a.BaseSize, a.BaseLeading
	if len(runes) > a.Threshold {
		size, leading = a.ReducedSize, a.ReducedLeading
	}
	if a.MaxLen > 0 && len(runes) > a.MaxLen {
		text = string(runes[:a.MaxLen]) + a.Ellipsis
	}
	return text, size, leading
}

// Preset is one named label layout. All lengths are centimeters except the
// typographic values, which are points.
type Preset struct {
	Name         string
	Page         model.PageMetrics
	ContentWidth float64   // width of the label grid
	ColumnRatios []float64 // fractions of ContentWidth, one per column
	RowHeights   []float64 // one per row
	Cells        []CellDef
	Spans        []Span

	FontSize  float64 // points, base size for header and value cells
	Leading   float64 // points
	GridWidth float64 // points, border line width
	PadX      float64 // points, horizontal padding inside each cell

	Description AdaptiveSize // sizing rule for cells marked Adaptive
}

// ColWidths returns the column widths in centimeters.
func (p Preset) ColWidths() []float64 {
	widths := make([]float64, len(p.ColumnRatios))
	for i, r := range p.ColumnRatios {
		widths[i] = r * p.ContentWidth
	}
	return widths
}

// Validate reports the first problem that would make the preset unusable.
func (p Preset) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("preset has no name")
	}
	if p.Page.Width <= 0 || p.Page.Height <= 0 {
		return fmt.Errorf("preset %q: page is %gx%gcm", p.Name, p.Page.Width, p.Page.Height)
	}
	if p.Page.Margin < 0 || p.Page.ContentWidth() <= 0 || p.Page.ContentHeight() <= 0 {
		return fmt.Errorf("preset %q: margin %gcm leaves no content area", p.Name, p.Page.Margin)
	}
	if len(p.ColumnRatios) == 0 {
		return fmt.Errorf("preset %q: no columns", p.Name)
	}
	if len(p.RowHeights) == 0 {
		return fmt.Errorf("preset %q: no rows", p.Name)
	}
	if p.ContentWidth <= 0 || p.ContentWidth > p.Page.ContentWidth()+sizeTolerance {
		return fmt.Errorf("preset %q: content width %gcm does not fit a %gcm content area",
			p.Name, p.ContentWidth, p.Page.ContentWidth())
	}
	var ratioSum float64
	for i, r := range p.ColumnRatios {
		if r <= 0 {
			return fmt.Errorf("preset %q: column %d has ratio %g", p.Name, i, r)
		}
		ratioSum += r
	}
	if math.Abs(ratioSum-1) > sizeTolerance {
		return fmt.Errorf("preset %q: column ratios sum to %g, want 1", p.Name, ratioSum)
	}
	var heightSum float64
	for i, h := range p.RowHeights {
		if h <= 0 {
			return fmt.Errorf("preset %q: row %d has height %gcm", p.Name, i, h)
		}
		heightSum += h
	}
	if heightSum > p.Page.ContentHeight()+sizeTolerance {
		return fmt.Errorf("preset %q: rows total %gcm but the content area is %gcm tall",
			p.Name, heightSum, p.Page.ContentHeight())
	}
	if p.FontSize <= 0 || p.Leading <= 0 {
		return fmt.Errorf("preset %q: font size %gpt leading %gpt", p.Name, p.FontSize, p.Leading)
	}
	if p.GridWidth < 0 || p.PadX < 0 {
		return fmt.Errorf("preset %q: negative grid width or padding", p.Name)
	}

	// Merging the spans into a scratch grid catches out-of-bounds and
	// overlapping spans in one place.
	probe := model.NewLabel(p.Page, p.RowHeights, p.ColWidths())
	for _, s := range p.Spans {
		if err := probe.Merge(s.Row, s.Col, s.RowSpan, s.ColSpan); err != nil {
			return fmt.Errorf("preset %q: %w", p.Name, err)
		}
	}

	seen := make(map[[2]int]bool, len(p.Cells))
	for _, def := range p.Cells {
		cell := probe.CellAt(def.Row, def.Col)
		if cell == nil {
			return fmt.Errorf("preset %q: cell (%d,%d) is outside the %dx%d grid",
				p.Name, def.Row, def.Col, len(p.RowHeights), len(p.ColumnRatios))
		}
		if cell.Covered {
			return fmt.Errorf("preset %q: cell (%d,%d) is covered by a span", p.Name, def.Row, def.Col)
		}
		pos := [2]int{def.Row, def.Col}
		if seen[pos] {
			return fmt.Errorf("preset %q: cell (%d,%d) is declared twice", p.Name, def.Row, def.Col)
		}
		seen[pos] = true
		if def.Role == RoleHeader && def.Text == "" {
			return fmt.Errorf("preset %q: header cell (%d,%d) has no text", p.Name, def.Row, def.Col)
		}
	}

	if d := p.Description; d.Threshold > 0 || d.MaxLen > 0 {
		if d.BaseSize <= 0 || d.ReducedSize <= 0 {
			return fmt.Errorf("preset %q: adaptive sizes %gpt/%gpt", p.Name, d.BaseSize, d.ReducedSize)
		}
		if d.MaxLen > 0 && d.Threshold > d.MaxLen {
			return fmt.Errorf("preset %q: adaptive threshold %d exceeds cap %d", p.Name, d.Threshold, d.MaxLen)
		}
	}
	return nil
}

// sizeTolerance absorbs float drift in ratio sums and cm arithmetic.
const sizeTolerance = 1e-6
