package model

import (
	"math"
	"strconv"
)

// ValueKind identifies the underlying type of a Value.
type ValueKind int

const (
	ValueMissing ValueKind = iota
	ValueString
	ValueNumber
)

// Value is one tabular cell value: a string, a number, or missing.
// Readers produce Values; Display is the only conversion the rest of
// the engine performs, so CSV-versus-XLSX differences stay contained
// in the reader packages.
type Value struct {
	Kind ValueKind
	Str  string
	Num  float64
}

// MissingValue returns the missing marker.
func MissingValue() Value {
	return Value{Kind: ValueMissing}
}

// StringValue returns a textual value. The empty string is missing.
func StringValue(s string) Value {
	if s == "" {
		return Value{Kind: ValueMissing}
	}
	return Value{Kind: ValueString, Str: s}
}

// NumberValue returns a numeric value. NaN is missing.
func NumberValue(f float64) Value {
	if math.IsNaN(f) {
		return Value{Kind: ValueMissing}
	}
	return Value{Kind: ValueNumber, Num: f}
}

// IsMissing reports whether the value is absent.
func (v Value) IsMissing() bool {
	return v.Kind == ValueMissing
}

// Display returns the rendering form of the value. Missing values render
// as the empty string, never as a literal placeholder token. Numbers use
// the shortest decimal representation, so a quantity of 2 renders as "2".
func (v Value) Display() string {
	switch v.Kind {
	case ValueString:
		return v.Str
	case ValueNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	default:
		return ""
	}
}
