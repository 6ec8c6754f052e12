package resolver

import (
	"reflect"
	"testing"

	"github.com/tsawler/titulus/model"
)

func TestResolveMatchesCaseInsensitiveSubstrings(t *testing.T) {
	tests := []struct {
		name    string
		columns []string
		field   model.Field
		want    string
	}{
		{"lower snake part no", []string{"part_no", "desc"}, model.FieldPartNumber, "part_no"},
		{"spaced part no", []string{"PART NO"}, model.FieldPartNumber, "PART NO"},
		{"compact part no", []string{"PartNo."}, model.FieldPartNumber, "PartNo."},
		{"hash part no", []string{"Spare PART#12"}, model.FieldPartNumber, "Spare PART#12"},
		{"embedded keyword", []string{"My Part Description"}, model.FieldDescription, "My Part Description"},
		{"location fallback", []string{"Location of Fixture"}, model.FieldFixtureLocation, "Location of Fixture"},
		{"qty bin variant", []string{"Qty/Bin"}, model.FieldQuantity, "Qty/Bin"},
		{"mixed case model", []string{"Vehicle Model"}, model.FieldModel, "Vehicle Model"},
		{"station variant", []string{"STATION_NO"}, model.FieldStation, "STATION_NO"},
		{"structure", []string{"Sub Structure"}, model.FieldStructure, "Sub Structure"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New().Resolve(tt.columns)
			got, ok := m.Column(tt.field)
			if !ok {
				t.Fatalf("field %v unresolved, want %q", tt.field, tt.want)
			}
			if got != tt.want {
				t.Errorf("Column(%v) = %q, want %q", tt.field, got, tt.want)
			}
		})
	}
}

func TestResolveKeywordPriorityBeatsColumnOrder(t *testing.T) {
	// "QTY/VEH" is a higher-priority keyword than the bare "QTY", so the
	// later column must win over the earlier partial match.
	m := New().Resolve([]string{"QTY TOTAL", "QTY/VEH"})
	if got := m.Index(model.FieldQuantity); got != 1 {
		t.Errorf("Index(quantity) = %d, want 1", got)
	}
}

func TestResolveColumnOrderBreaksTies(t *testing.T) {
	m := New().Resolve([]string{"QTY/VEH A", "QTY/VEH B"})
	got, _ := m.Column(model.FieldQuantity)
	if got != "QTY/VEH A" {
		t.Errorf("Column(quantity) = %q, want first matching column", got)
	}
}

func TestResolveUnresolvedField(t *testing.T) {
	m := New().Resolve([]string{"MODEL", "DESCRIPTION"})

	if m.Resolved(model.FieldPartNumber) {
		t.Error("part number resolved against unrelated columns")
	}
	if got := m.Index(model.FieldPartNumber); got != -1 {
		t.Errorf("Index(part number) = %d, want -1", got)
	}
	if _, ok := m.Column(model.FieldPartNumber); ok {
		t.Error("Column(part number) ok = true, want false")
	}
}

func TestResolveSkipsBlankColumnNames(t *testing.T) {
	m := New().Resolve([]string{"", "MODEL"})
	if got := m.Index(model.FieldModel); got != 1 {
		t.Errorf("Index(model) = %d, want 1", got)
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	columns := []string{"FIXTURE LOCATION", "MODEL", "PART NO", "QTY/VEH", "PART DESCRIPTION"}
	r := New()
	a := r.Resolve(columns)
	b := r.Resolve(columns)
	if !reflect.DeepEqual(a.Matches(), b.Matches()) {
		t.Error("two resolutions of the same columns differ")
	}
}

func TestResolveEmptyColumns(t *testing.T) {
	m := New().Resolve(nil)
	for _, match := range m.Matches() {
		if match.Matched {
			t.Errorf("field %v resolved against no columns", match.Field)
		}
	}
}

func TestMatchesReportsEveryFieldInOrder(t *testing.T) {
	m := New().Resolve([]string{"PART NO"})
	matches := m.Matches()
	fields := model.Fields()
	if len(matches) != len(fields) {
		t.Fatalf("Matches() reports %d fields, want %d", len(matches), len(fields))
	}
	for i, match := range matches {
		if match.Field != fields[i] {
			t.Errorf("Matches()[%d].Field = %v, want %v", i, match.Field, fields[i])
		}
	}
}

func TestMatchRecordsKeyword(t *testing.T) {
	m := New().Resolve([]string{"fixture_location"})
	for _, match := range m.Matches() {
		if match.Field != model.FieldFixtureLocation {
			continue
		}
		if !match.Matched || match.Keyword != "FIXTURE_LOCATION" {
			t.Errorf("match = %+v, want keyword FIXTURE_LOCATION", match)
		}
	}
}

func TestWithKeywordsOverride(t *testing.T) {
	r := New(WithKeywords(model.FieldQuantity, "COUNT"))
	m := r.Resolve([]string{"QTY/VEH", "Count Per Car"})
	got, _ := m.Column(model.FieldQuantity)
	if got != "Count Per Car" {
		t.Errorf("Column(quantity) = %q, want overridden keyword match", got)
	}
}

func TestFieldText(t *testing.T) {
	m := New().Resolve([]string{"PART NO", "QTY/VEH", "PART DESCRIPTION"})
	rec := model.Record{
		model.StringValue("08-DRA-14-02"),
		model.NumberValue(2),
		model.MissingValue(),
	}

	tests := []struct {
		name  string
		field model.Field
		want  string
	}{
		{"string value", model.FieldPartNumber, "08-DRA-14-02"},
		{"number value", model.FieldQuantity, "2"},
		{"missing value", model.FieldDescription, ""},
		{"unresolved field", model.FieldModel, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.FieldText(rec, tt.field); got != tt.want {
				t.Errorf("FieldText(%v) = %q, want %q", tt.field, got, tt.want)
			}
		})
	}

	t.Run("short record", func(t *testing.T) {
		if got := m.FieldText(model.Record{model.StringValue("x")}, model.FieldQuantity); got != "" {
			t.Errorf("FieldText past record end = %q, want empty", got)
		}
	})
}

func TestZeroMappingIsSafe(t *testing.T) {
	var m Mapping
	if m.Resolved(model.FieldModel) {
		t.Error("zero Mapping resolved a field")
	}
	if got := m.FieldText(model.Record{model.StringValue("x")}, model.FieldModel); got != "" {
		t.Errorf("zero Mapping FieldText = %q, want empty", got)
	}
}

func BenchmarkResolve(b *testing.B) {
	columns := make([]string, 0, 24)
	for _, c := range []string{
		"SL NO", "ZONE", "FIXTURE LOCATION", "MODEL", "STRUCTURE",
		"STATION NO", "PART NO", "QTY/VEH", "PART DESCRIPTION",
		"SUPPLIER", "RACK", "BIN", "REMARKS",
	} {
		columns = append(columns, c)
	}
	r := New()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Resolve(columns)
	}
}
