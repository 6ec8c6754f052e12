package layout

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tsawler/titulus/model"
)

// presetFile is the on-disk YAML shape of a preset. Enumerated values travel
// as their names so files stay hand-editable.
type presetFile struct {
	Name string   `yaml:"name"`
	Page pageFile `yaml:"page"`

	ContentWidth float64   `yaml:"contentWidth"`
	Columns      []float64 `yaml:"columns"`
	RowHeights   []float64 `yaml:"rowHeights"`

	FontSize  float64 `yaml:"fontSize"`
	Leading   float64 `yaml:"leading"`
	GridWidth float64 `yaml:"gridWidth"`
	PadX      float64 `yaml:"padX"`

	Description adaptiveFile `yaml:"description"`
	Cells       []cellFile   `yaml:"cells"`
	Spans       []spanFile   `yaml:"spans,omitempty"`
}

type pageFile struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Margin float64 `yaml:"margin"`
}

type adaptiveFile struct {
	Threshold      int     `yaml:"threshold"`
	MaxLen         int     `yaml:"maxLen"`
	BaseSize       float64 `yaml:"baseSize"`
	BaseLeading    float64 `yaml:"baseLeading"`
	ReducedSize    float64 `yaml:"reducedSize"`
	ReducedLeading float64 `yaml:"reducedLeading"`
	Ellipsis       string  `yaml:"ellipsis"`
}

type cellFile struct {
	Row      int    `yaml:"row"`
	Col      int    `yaml:"col"`
	Role     string `yaml:"role"`
	Text     string `yaml:"text,omitempty"`
	Field    string `yaml:"field,omitempty"`
	Align    string `yaml:"align,omitempty"`
	Adaptive bool   `yaml:"adaptive,omitempty"`
}

type spanFile struct {
	Row     int `yaml:"row"`
	Col     int `yaml:"col"`
	RowSpan int `yaml:"rowSpan"`
	ColSpan int `yaml:"colSpan"`
}

// LoadFile reads and validates a preset from a YAML file.
func LoadFile(path string) (Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Preset{}, fmt.Errorf("reading preset file: %w", err)
	}
	p, err := Load(data)
	if err != nil {
		return Preset{}, fmt.Errorf("preset file %s: %w", path, err)
	}
	return p, nil
}

// Load parses and validates a preset from YAML bytes.
func Load(data []byte) (Preset, error) {
	var file presetFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Preset{}, fmt.Errorf("parsing preset: %w", err)
	}
	p, err := file.toPreset()
	if err != nil {
		return Preset{}, err
	}
	if err := p.Validate(); err != nil {
		return Preset{}, err
	}
	return p, nil
}

// Encode renders a preset as YAML in the shape [Load] accepts.
func Encode(p Preset) ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return yaml.Marshal(fromPreset(p))
}

func (f presetFile) toPreset() (Preset, error) {
	p := Preset{
		Name:         f.Name,
		Page:         model.PageMetrics{Width: f.Page.Width, Height: f.Page.Height, Margin: f.Page.Margin},
		ContentWidth: f.ContentWidth,
		ColumnRatios: f.Columns,
		RowHeights:   f.RowHeights,
		FontSize:     f.FontSize,
		Leading:      f.Leading,
		GridWidth:    f.GridWidth,
		PadX:         f.PadX,
		Description: AdaptiveSize{
			Threshold:      f.Description.Threshold,
			MaxLen:         f.Description.MaxLen,
			BaseSize:       f.Description.BaseSize,
			BaseLeading:    f.Description.BaseLeading,
			ReducedSize:    f.Description.ReducedSize,
			ReducedLeading: f.Description.ReducedLeading,
			Ellipsis:       f.Description.Ellipsis,
		},
	}
	for _, c := range f.Cells {
		def := CellDef{Row: c.Row, Col: c.Col, Text: c.Text, Adaptive: c.Adaptive}
		role, ok := roleByName(c.Role)
		if !ok {
			return Preset{}, fmt.Errorf("cell (%d,%d): unknown role %q", c.Row, c.Col, c.Role)
		}
		def.Role = role
		if role == RoleValue {
			field, ok := model.FieldByName(c.Field)
			if !ok {
				return Preset{}, fmt.Errorf("cell (%d,%d): unknown field %q", c.Row, c.Col, c.Field)
			}
			def.Field = field
		}
		align, ok := alignByName(c.Align)
		if !ok {
			return Preset{}, fmt.Errorf("cell (%d,%d): unknown alignment %q", c.Row, c.Col, c.Align)
		}
		def.Align = align
		p.Cells = append(p.Cells, def)
	}
	for _, s := range f.Spans {
		p.Spans = append(p.Spans, Span{Row: s.Row, Col: s.Col, RowSpan: s.RowSpan, ColSpan: s.ColSpan})
	}
	return p, nil
}

func fromPreset(p Preset) presetFile {
	file := presetFile{
		Name:         p.Name,
		Page:         pageFile{Width: p.Page.Width, Height: p.Page.Height, Margin: p.Page.Margin},
		ContentWidth: p.ContentWidth,
		Columns:      p.ColumnRatios,
		RowHeights:   p.RowHeights,
		FontSize:     p.FontSize,
		Leading:      p.Leading,
		GridWidth:    p.GridWidth,
		PadX:         p.PadX,
		Description: adaptiveFile{
			Threshold:      p.Description.Threshold,
			MaxLen:         p.Description.MaxLen,
			BaseSize:       p.Description.BaseSize,
			BaseLeading:    p.Description.BaseLeading,
			ReducedSize:    p.Description.ReducedSize,
			ReducedLeading: p.Description.ReducedLeading,
			Ellipsis:       p.Description.Ellipsis,
		},
	}
	for _, def := range p.Cells {
		c := cellFile{
			Row:      def.Row,
			Col:      def.Col,
			Role:     def.Role.String(),
			Text:     def.Text,
			Align:    alignName(def.Align),
			Adaptive: def.Adaptive,
		}
		if def.Role == RoleValue {
			c.Field = def.Field.String()
		}
		file.Cells = append(file.Cells, c)
	}
	for _, s := range p.Spans {
		file.Spans = append(file.Spans, spanFile{Row: s.Row, Col: s.Col, RowSpan: s.RowSpan, ColSpan: s.ColSpan})
	}
	return file
}

func alignByName(name string) (model.TextAlignment, bool) {
	switch name {
	case "left", "":
		return model.AlignLeft, true
	case "center":
		return model.AlignCenter, true
	}
	return model.AlignLeft, false
}

func alignName(a model.TextAlignment) string {
	if a == model.AlignCenter {
		return "center"
	}
	return "left"
}
