package resolver

import (
	"strings"

	"github.com/tsawler/titulus/model"
)

// DefaultKeywords returns the candidate keyword lists per semantic field,
// in matching-priority order. More specific forms come first so that a
// precise header is preferred over an ambiguous partial one when both
// could match.
func DefaultKeywords() map[model.Field][]string {
	return map[model.Field][]string{
		model.FieldFixtureLocation: {"FIXTURE LOCATION", "FIXTURE_LOCATION", "LOCATION"},
		model.FieldModel:           {"MODEL"},
		model.FieldStructure:       {"STRUCTURE"},
		model.FieldStation:         {"STATION NO", "STATION_NO", "STATION"},
		model.FieldPartNumber:      {"PART NO", "PARTNO", "PART_NO", "PART#"},
		model.FieldQuantity:        {"QTY/VEH", "QTY_VEH", "QTY/BIN", "QTY"},
		model.FieldDescription:     {"PART DESC", "PART_DESCRIPTION", "DESC", "DESCRIPTION", "PART NAME"},
	}
}

// Resolver maps raw column names onto semantic fields.
type Resolver struct {
	keywords map[model.Field][]string
}

// Option configures the resolver.
type Option func(*Resolver)

// WithKeywords replaces the candidate keyword list for one field.
func WithKeywords(f model.Field, keywords ...string) Option {
	return func(r *Resolver) {
		r.keywords[f] = append([]string(nil), keywords...)
	}
}

// New creates a resolver with the default keyword schema.
func New(opts ...Option) *Resolver {
	r := &Resolver{keywords: DefaultKeywords()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Match records how one semantic field resolved.
type Match struct {
	Field   model.Field
	Column  string // matched column name, "" when unresolved
	Index   int    // column position, -1 when unresolved
	Keyword string // the keyword that produced the match
	Matched bool
}

// Mapping is the resolved field-to-column association for one dataset.
// It does not change once built. An unresolved field is a valid state;
// it extracts as a blank value, never as an error.
type Mapping struct {
	matches map[model.Field]Match
}

// Resolve builds the mapping for the given column names. For each field,
// keywords are tried in priority order and columns in their original
// order; the first column whose upper-cased name contains the upper-cased
// keyword wins. Blank column names are skipped. Resolve is pure and
// deterministic and never fails.
func (r *Resolver) Resolve(columns []string) Mapping {
	m := Mapping{matches: make(map[model.Field]Match, len(r.keywords))}
	for _, field := range model.Fields() {
		m.matches[field] = r.resolveField(field, columns)
	}
	return m
}

func (r *Resolver) resolveField(field model.Field, columns []string) Match {
	for _, kw := range r.keywords[field] {
		needle := strings.ToUpper(kw)
		for i, col := range columns {
			if col == "" {
				continue
			}
			if strings.Contains(strings.ToUpper(col), needle) {
				return Match{Field: field, Column: col, Index: i, Keyword: kw, Matched: true}
			}
		}
	}
	return Match{Field: field, Index: -1}
}

// Column returns the resolved column name for a field.
func (m Mapping) Column(f model.Field) (string, bool) {
	match, ok := m.matches[f]
	if !ok || !match.Matched {
		return "", false
	}
	return match.Column, true
}

// Index returns the resolved column position for a field, or -1 when the
// field is unresolved.
func (m Mapping) Index(f model.Field) int {
	match, ok := m.matches[f]
	if !ok || !match.Matched {
		return -1
	}
	return match.Index
}

// Resolved reports whether the field matched any column.
func (m Mapping) Resolved(f model.Field) bool {
	match, ok := m.matches[f]
	return ok && match.Matched
}

// Matches returns the per-field match report in schema order.
func (m Mapping) Matches() []Match {
	fields := model.Fields()
	out := make([]Match, 0, len(fields))
	for _, f := range fields {
		if match, ok := m.matches[f]; ok {
			out = append(out, match)
		}
	}
	return out
}

// FieldText extracts the display text of a field from one record.
// Unresolved fields, out-of-range indexes and missing values all come
// back as the empty string; internal missing-value markers never surface
// as literal text.
func (m Mapping) FieldText(rec model.Record, f model.Field) string {
	match, ok := m.matches[f]
	if !ok || !match.Matched {
		return ""
	}
	if match.Index < 0 || match.Index >= len(rec) {
		return ""
	}
	return rec[match.Index].Display()
}
