package titulus

import (
	"fmt"
	"strings"

	"github.com/tsawler/titulus/model"
	"github.com/tsawler/titulus/resolver"
)

// Diagnostic reports how one semantic field resolved against the input
// columns. An unresolved field is informational, not an error: its cells
// render blank.
type Diagnostic struct {
	Field    model.Field
	Column   string // matched column name, "" when unresolved
	Index    int    // column position, -1 when unresolved
	Resolved bool
}

// String renders the diagnostic as a single "field: column" line.
func (d Diagnostic) String() string {
	if !d.Resolved {
		return fmt.Sprintf("%s: not found", d.Field)
	}
	return fmt.Sprintf("%s: %s", d.Field, d.Column)
}

// diagnosticsFor converts a resolver mapping into the per-field report,
// in schema order.
func diagnosticsFor(m resolver.Mapping) []Diagnostic {
	matches := m.Matches()
	diags := make([]Diagnostic, 0, len(matches))
	for _, match := range matches {
		diags = append(diags, Diagnostic{
			Field:    match.Field,
			Column:   match.Column,
			Index:    match.Index,
			Resolved: match.Matched,
		})
	}
	return diags
}

// FormatDiagnostics renders the column report as a readable block, one
// line per semantic field.
//
// Example output:
//
//	Attempting to map columns from your file:
//	  fixture location: FIXTURE LOCATION
//	  model: MODEL
//	  part number: not found
func FormatDiagnostics(diags []Diagnostic) string {
	var sb strings.Builder
	sb.WriteString("Attempting to map columns from your file:")
	for _, d := range diags {
		sb.WriteString("\n  ")
		sb.WriteString(d.String())
	}
	return sb.String()
}
