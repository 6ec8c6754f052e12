package layout

import (
	"fmt"

	"github.com/tsawler/titulus/model"
	"github.com/tsawler/titulus/resolver"
)

// Engine builds label grids from records according to one preset. An Engine
// is immutable after construction and may be reused across records.
type Engine struct {
	preset Preset
	widths []float64
}

// NewEngine validates the preset and returns an engine for it.
func NewEngine(p Preset) (*Engine, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &Engine{preset: p, widths: p.ColWidths()}, nil
}

// Preset returns the preset the engine was built with.
func (e *Engine) Preset() Preset {
	return e.preset
}

// BuildLabel lays out one record as one label. Fields the mapping did not
// resolve, and values the record does not carry, render as blank cells; the
// grid keeps its shape either way.
func (e *Engine) BuildLabel(m resolver.Mapping, rec model.Record) (*model.Label, error) {
	label := model.NewLabel(e.preset.Page, e.preset.RowHeights, e.widths)
	label.GridWidth = e.preset.GridWidth

	for _, s := range e.preset.Spans {
		if err := label.Merge(s.Row, s.Col, s.RowSpan, s.ColSpan); err != nil {
			return nil, fmt.Errorf("building label: %w", err)
		}
	}

	base := model.CellStyle{
		FontSize: e.preset.FontSize,
		Leading:  e.preset.Leading,
		Align:    model.AlignLeft,
		VAlign:   model.VAlignMiddle,
		PadX:     e.preset.PadX,
	}
	for r := 0; r < label.RowCount(); r++ {
		for c := 0; c < label.ColCount(); c++ {
			if cell := label.CellAt(r, c); !cell.Covered {
				cell.Style = base
			}
		}
	}

	for _, def := range e.preset.Cells {
		cell := label.CellAt(def.Row, def.Col)
		if cell == nil || cell.Covered {
			return nil, fmt.Errorf("building label: cell (%d,%d) is not drawable", def.Row, def.Col)
		}
		style := base
		style.Align = def.Align
		switch def.Role {
		case RoleHeader:
			cell.Text = def.Text
			cell.IsHeader = true
			style.Bold = true
		case RoleValue:
			text := m.FieldText(rec, def.Field)
			if def.Adaptive {
				text, style.FontSize, style.Leading = e.preset.Description.Apply(text)
			}
			cell.Text = text
		}
		cell.Style = style
	}
	return label, nil
}
