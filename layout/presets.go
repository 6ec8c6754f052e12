package layout

import (
	"fmt"
	"sort"
	"sync"

	"github.com/tsawler/titulus/model"
)

// Names of the built-in presets.
const (
	PresetStandard = "standard"
	PresetStation  = "station"
	PresetLegacy   = "legacy"
)

// labelPage is the physical page shared by the built-in presets: a 10x15cm
// card with a 1cm margin on every side.
func labelPage() model.PageMetrics {
	return model.PageMetrics{Width: 10, Height: 15, Margin: 1}
}

// Standard is the default label: two centered title cells, a part/quantity
// row, and a wide description cell that shrinks its type above 90 characters
// and truncates at 100.
func Standard() Preset {
	p := basePreset(PresetStandard)
	p.RowHeights = []float64{0.8, 0.8, 1.4}
	p.Spans = []Span{
		{Row: 0, Col: 0, RowSpan: 1, ColSpan: 2},
		{Row: 0, Col: 2, RowSpan: 1, ColSpan: 2},
		{Row: 2, Col: 1, RowSpan: 1, ColSpan: 3},
	}
	p.Cells = []CellDef{
		{Row: 0, Col: 0, Role: RoleValue, Field: model.FieldFixtureLocation, Align: model.AlignCenter},
		{Row: 0, Col: 2, Role: RoleValue, Field: model.FieldModel, Align: model.AlignCenter},
		{Row: 1, Col: 0, Role: RoleHeader, Text: "PART NO"},
		{Row: 1, Col: 1, Role: RoleValue, Field: model.FieldPartNumber},
		{Row: 1, Col: 2, Role: RoleHeader, Text: "QTY/VEH"},
		{Row: 1, Col: 3, Role: RoleValue, Field: model.FieldQuantity},
		{Row: 2, Col: 0, Role: RoleHeader, Text: "PART NAME"},
		{Row: 2, Col: 1, Role: RoleValue, Field: model.FieldDescription, Adaptive: true},
	}
	return p
}

// Station extends Standard with a structure/station row for lineside racks
// that are addressed by station rather than by fixture alone.
func Station() Preset {
	p := basePreset(PresetStation)
	p.RowHeights = []float64{0.8, 0.8, 0.8, 1.4}
	p.Spans = []Span{
		{Row: 0, Col: 0, RowSpan: 1, ColSpan: 2},
		{Row: 0, Col: 2, RowSpan: 1, ColSpan: 2},
		{Row: 3, Col: 1, RowSpan: 1, ColSpan: 3},
	}
	p.Cells = []CellDef{
		{Row: 0, Col: 0, Role: RoleValue, Field: model.FieldFixtureLocation, Align: model.AlignCenter},
		{Row: 0, Col: 2, Role: RoleValue, Field: model.FieldModel, Align: model.AlignCenter},
		{Row: 1, Col: 0, Role: RoleHeader, Text: "STRUCTURE"},
		{Row: 1, Col: 1, Role: RoleValue, Field: model.FieldStructure},
		{Row: 1, Col: 2, Role: RoleHeader, Text: "STATION NO"},
		{Row: 1, Col: 3, Role: RoleValue, Field: model.FieldStation},
		{Row: 2, Col: 0, Role: RoleHeader, Text: "PART NO"},
		{Row: 2, Col: 1, Role: RoleValue, Field: model.FieldPartNumber},
		{Row: 2, Col: 2, Role: RoleHeader, Text: "QTY/VEH"},
		{Row: 2, Col: 3, Role: RoleValue, Field: model.FieldQuantity},
		{Row: 3, Col: 0, Role: RoleHeader, Text: "PART NAME"},
		{Row: 3, Col: 1, Role: RoleValue, Field: model.FieldDescription, Adaptive: true},
	}
	return p
}

// Legacy is Standard with the older description rule: full-size type all the
// way to the 100-character cap.
func Legacy() Preset {
	p := Standard()
	p.Name = PresetLegacy
	p.Description.Threshold = 100
	return p
}

// basePreset carries the values every built-in preset shares.
func basePreset(name string) Preset {
	return Preset{
		Name:         name,
		Page:         labelPage(),
		ContentWidth: 8,
		ColumnRatios: []float64{0.25, 0.25, 0.25, 0.25},
		FontSize:     9,
		Leading:      11,
		GridWidth:    1,
		PadX:         5,
		Description: AdaptiveSize{
			Threshold:      90,
			MaxLen:         100,
			BaseSize:       9,
			BaseLeading:    11,
			ReducedSize:    7,
			ReducedLeading: 9,
			Ellipsis:       "...",
		},
	}
}

var (
	registryMu sync.RWMutex
	registry   = map[string]Preset{
		PresetStandard: Standard(),
		PresetStation:  Station(),
		PresetLegacy:   Legacy(),
	}
)

// Register makes a preset available to [ByName] under its own name. The
// preset must validate, and the name must not already be taken.
func Register(p Preset) error {
	if err := p.Validate(); err != nil {
		return err
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[p.Name]; exists {
		return fmt.Errorf("preset %q is already registered", p.Name)
	}
	registry[p.Name] = p
	return nil
}

// ByName returns the registered preset with the given name.
func ByName(name string) (Preset, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	p, ok := registry[name]
	if !ok {
		return Preset{}, fmt.Errorf("unknown preset %q (have %v)", name, names())
	}
	return p, nil
}

// Names returns the registered preset names in sorted order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return names()
}

func names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
