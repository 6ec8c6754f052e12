package model

// Field identifies one of the fixed semantic data slots a label renders,
// independent of how the source column is actually named.
type Field int

const (
	FieldFixtureLocation Field = iota
	FieldModel
	FieldStructure
	FieldStation
	FieldPartNumber
	FieldQuantity
	FieldDescription
)

// Fields returns all semantic fields in schema order.
func Fields() []Field {
	return []Field{
		FieldFixtureLocation,
		FieldModel,
		FieldStructure,
		FieldStation,
		FieldPartNumber,
		FieldQuantity,
		FieldDescription,
	}
}

// String returns the field name used in diagnostics and preset files.
func (f Field) String() string {
	switch f {
	case FieldFixtureLocation:
		return "fixture location"
	case FieldModel:
		return "model"
	case FieldStructure:
		return "structure"
	case FieldStation:
		return "station number"
	case FieldPartNumber:
		return "part number"
	case FieldQuantity:
		return "quantity per vehicle"
	case FieldDescription:
		return "part description"
	default:
		return "unknown"
	}
}

// FieldByName returns the field whose String form matches name.
func FieldByName(name string) (Field, bool) {
	for _, f := range Fields() {
		if f.String() == name {
			return f, true
		}
	}
	return 0, false
}
