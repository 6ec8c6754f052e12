package titulus

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/tsawler/titulus/csvdoc"
	"github.com/tsawler/titulus/format"
	"github.com/tsawler/titulus/layout"
	"github.com/tsawler/titulus/model"
	"github.com/tsawler/titulus/render"
	"github.com/tsawler/titulus/resolver"
	"github.com/tsawler/titulus/xlsx"
)

// Generator provides a fluent interface for turning CSV and XLSX part
// inventories into label documents. Each configuration method returns a
// new Generator instance, making it safe for concurrent use and allowing
// method chaining.
type Generator struct {
	// Source (one of these, set by the constructors)
	filename string
	source   io.Reader
	dataset  *model.Dataset

	// Configuration
	options genOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Generator with a deep copy of
// options. This ensures immutability - each chain method returns a new
// instance.
func (g *Generator) clone() *Generator {
	return &Generator{
		filename: g.filename,
		source:   g.source,
		dataset:  g.dataset,
		options:  g.options.clone(),
		err:      g.err,
	}
}

// ensureDataset loads the input into a dataset if not already loaded.
func (g *Generator) ensureDataset() error {
	if g.dataset != nil {
		return nil
	}

	if g.source != nil {
		data, err := io.ReadAll(g.source)
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
		return g.loadBytes(data)
	}

	if g.filename == "" {
		return fmt.Errorf("no input specified")
	}
	data, err := os.ReadFile(g.filename)
	if err != nil {
		return fmt.Errorf("opening file: %w", err)
	}
	return g.loadBytes(data)
}

// loadBytes parses raw input bytes into the dataset. The filename
// extension decides the format; unrecognized extensions fall back to
// content sniffing.
func (g *Generator) loadBytes(data []byte) error {
	f := format.Detect(g.filename)
	if f == format.Unknown {
		var err error
		f, err = format.DetectFromReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return fmt.Errorf("detecting format: %w", err)
		}
	}

	switch f {
	case format.XLSX:
		r, err := xlsx.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return fmt.Errorf("opening workbook: %w", err)
		}
		defer r.Close()
		ds, err := r.Dataset()
		if err != nil {
			return err
		}
		g.dataset = ds
		return nil

	case format.CSV:
		ds, err := csvdoc.Read(bytes.NewReader(data))
		if err != nil {
			return err
		}
		g.dataset = ds
		return nil

	default:
		return fmt.Errorf("unsupported file format: %s", f)
	}
}

// ============================================================================
// Configuration Methods (return new Generator instance)
// ============================================================================

// Preset selects a registered layout preset by name. The default is
// "standard".
//
// Example:
//
//	diags, err := titulus.Open("parts.xlsx").Preset("station").PDF(w)
func (g *Generator) Preset(name string) *Generator {
	newGen := g.clone()
	newGen.options.presetName = name
	newGen.options.preset = nil
	return newGen
}

// Layout supplies an explicit preset, bypassing the registry. The preset
// is validated when the first terminal operation runs.
//
// Example:
//
//	p, _ := layout.LoadFile("wide.yaml")
//	diags, err := titulus.Open("parts.xlsx").Layout(p).PDF(w)
func (g *Generator) Layout(p layout.Preset) *Generator {
	newGen := g.clone()
	newGen.options.preset = &p
	return newGen
}

// Keywords replaces the candidate header keywords for one semantic
// field. Multiple calls are cumulative across fields; a later call for
// the same field wins.
//
// Example:
//
//	diags, err := titulus.Open("parts.csv").
//	    Keywords(model.FieldQuantity, "QTY/CAR", "QTY").
//	    PDF(w)
func (g *Generator) Keywords(field model.Field, keywords ...string) *Generator {
	newGen := g.clone()
	newGen.options.resolverOpts = append(newGen.options.resolverOpts, resolver.WithKeywords(field, keywords...))
	return newGen
}

// OnProgress registers a callback invoked synchronously after each build
// step. For PDF and PDFFile the total counts one extra step for writing
// the finished document.
//
// Example:
//
//	diags, err := titulus.Open("parts.xlsx").
//	    OnProgress(func(done, total int) {
//	        fmt.Printf("creating label %d of %d\n", done, total)
//	    }).
//	    PDFFile("parts_labels.pdf")
func (g *Generator) OnProgress(fn func(done, total int)) *Generator {
	newGen := g.clone()
	newGen.options.onProgress = fn
	return newGen
}

// ============================================================================
// Terminal Operations (execute the build and return results)
// ============================================================================

// Mapping resolves the input columns against the keyword schema without
// building any labels. Useful for previewing how a file will be read.
//
// Example:
//
//	mapping, diags, err := titulus.Open("parts.xlsx").Mapping()
//	fmt.Println(titulus.FormatDiagnostics(diags))
func (g *Generator) Mapping() (resolver.Mapping, []Diagnostic, error) {
	if g.err != nil {
		return resolver.Mapping{}, nil, g.err
	}
	if err := g.ensureDataset(); err != nil {
		return resolver.Mapping{}, nil, err
	}

	mapping := g.resolveMapping()
	return mapping, diagnosticsFor(mapping), nil
}

// Labels builds one label grid per record without rendering them.
//
// Example:
//
//	labels, diags, err := titulus.Open("parts.xlsx").Labels()
//	for _, label := range labels {
//	    fmt.Println(label.Text())
//	}
func (g *Generator) Labels() ([]*model.Label, []Diagnostic, error) {
	if g.err != nil {
		return nil, nil, g.err
	}
	if err := g.ensureDataset(); err != nil {
		return nil, nil, err
	}

	mapping := g.resolveMapping()
	diags := diagnosticsFor(mapping)

	if g.dataset.RowCount() == 0 {
		return nil, diags, fmt.Errorf("dataset has no records")
	}

	engine, err := g.engine()
	if err != nil {
		return nil, diags, err
	}

	total := g.dataset.RowCount()
	labels := make([]*model.Label, 0, total)
	for i, rec := range g.dataset.Records {
		label, err := engine.BuildLabel(mapping, rec)
		if err != nil {
			return nil, diags, fmt.Errorf("label %d: %w", i+1, err)
		}
		labels = append(labels, label)
		g.report(i+1, total)
	}

	return labels, diags, nil
}

// PDF builds every label and writes the finished document to w.
//
// Example:
//
//	var buf bytes.Buffer
//	diags, err := titulus.Open("parts.xlsx").PDF(&buf)
func (g *Generator) PDF(w io.Writer) ([]Diagnostic, error) {
	builder, diags, err := g.buildDocument()
	if err != nil {
		return diags, err
	}
	if err := builder.Output(w); err != nil {
		return diags, err
	}
	g.report(g.dataset.RowCount()+1, g.dataset.RowCount()+1)
	return diags, nil
}

// PDFFile builds every label and writes the finished document to the
// named file. On failure no partial file is left behind.
//
// Example:
//
//	diags, err := titulus.Open("parts.xlsx").PDFFile("parts_labels.pdf")
func (g *Generator) PDFFile(path string) ([]Diagnostic, error) {
	builder, diags, err := g.buildDocument()
	if err != nil {
		return diags, err
	}
	if err := builder.WriteFile(path); err != nil {
		return diags, err
	}
	g.report(g.dataset.RowCount()+1, g.dataset.RowCount()+1)
	return diags, nil
}

// ============================================================================
// Internal helpers
// ============================================================================

// buildDocument loads the input, resolves columns, and lays out every
// record into a ready-to-write document.
func (g *Generator) buildDocument() (*render.Builder, []Diagnostic, error) {
	if g.err != nil {
		return nil, nil, g.err
	}
	if err := g.ensureDataset(); err != nil {
		return nil, nil, err
	}

	mapping := g.resolveMapping()
	diags := diagnosticsFor(mapping)

	if g.dataset.RowCount() == 0 {
		return nil, diags, fmt.Errorf("dataset has no records")
	}

	engine, err := g.engine()
	if err != nil {
		return nil, diags, err
	}

	builder := render.NewBuilder(engine.Preset().Page)

	// One extra step for writing the document.
	steps := g.dataset.RowCount() + 1
	for i, rec := range g.dataset.Records {
		label, err := engine.BuildLabel(mapping, rec)
		if err != nil {
			return nil, diags, fmt.Errorf("label %d: %w", i+1, err)
		}
		if err := builder.AddLabel(label); err != nil {
			return nil, diags, fmt.Errorf("label %d: %w", i+1, err)
		}
		g.report(i+1, steps)
	}

	return builder, diags, nil
}

// resolveMapping runs the column resolver with any configured keyword
// overrides.
func (g *Generator) resolveMapping() resolver.Mapping {
	return resolver.New(g.options.resolverOpts...).Resolve(g.dataset.Columns)
}

// engine materializes the configured preset.
func (g *Generator) engine() (*layout.Engine, error) {
	p := g.options.preset
	if p == nil {
		preset, err := layout.ByName(g.options.presetName)
		if err != nil {
			return nil, err
		}
		p = &preset
	}
	return layout.NewEngine(*p)
}

// report fires the progress callback when one is registered.
func (g *Generator) report(done, total int) {
	if g.options.onProgress != nil {
		g.options.onProgress(done, total)
	}
}
