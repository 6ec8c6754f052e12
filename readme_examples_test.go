package titulus_test

import (
	"bytes"
	"fmt"
	"log"
	"os"

	"github.com/tsawler/titulus"
	"github.com/tsawler/titulus/layout"
	"github.com/tsawler/titulus/model"
)

// Example_generateLabels demonstrates the simplest path from a parts
// list to a printable document.
func Example_generateLabels() {
	diags, err := titulus.Open("parts.xlsx").PDFFile("parts_labels.pdf")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(titulus.FormatDiagnostics(diags))
}

// Example_oneCall writes the document next to the input file.
func Example_oneCall() {
	out, _, err := titulus.GenerateFile("parts.xlsx")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("wrote", out)
}

// Example_withOptions configures the layout and column matching before
// generating.
func Example_withOptions() {
	diags, err := titulus.Open("inventory.csv").
		Preset("station").
		Keywords(model.FieldQuantity, "COUNT PER CAR").
		OnProgress(func(done, total int) {
			fmt.Printf("step %d of %d\n", done, total)
		}).
		PDFFile("inventory_labels.pdf")
	if err != nil {
		log.Fatal(err)
	}
	_ = diags
}

// Example_customLayout builds a document from a hand-rolled layout
// instead of a named preset.
func Example_customLayout() {
	preset, err := layout.ByName(layout.PresetStandard)
	if err != nil {
		log.Fatal(err)
	}
	preset.Name = "wide"
	preset.Page.Width = 12

	_, err = titulus.Open("parts.xlsx").
		Layout(preset).
		PDFFile("parts_labels.pdf")
	if err != nil {
		log.Fatal(err)
	}
}

// Example_fromReader generates from an already-open stream, such as an
// HTTP upload.
func Example_fromReader() {
	f, err := os.Open("parts.xlsx")
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	var buf bytes.Buffer
	if _, err := titulus.FromReader(f, f.Name()).PDF(&buf); err != nil {
		log.Fatal(err)
	}
	fmt.Println(buf.Len(), "bytes")
}

// Example_fromDataset skips file parsing entirely and feeds records
// straight into the pipeline.
func Example_fromDataset() {
	ds := model.NewDataset("PART NO", "QTY/VEH", "PART DESCRIPTION")
	ds.AddRecord(
		model.StringValue("08-DRA-14-02"),
		model.NumberValue(2),
		model.StringValue("BELLOW ASSY. WITH RETAINING CLIP"),
	)

	labels, _, err := titulus.FromDataset(ds).Labels()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(len(labels), "labels")
}

// Example_inspectMapping previews how columns resolve before committing
// to a full build.
func Example_inspectMapping() {
	mapping, diags, err := titulus.Open("parts.xlsx").Mapping()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(titulus.FormatDiagnostics(diags))
	if !mapping.Resolved(model.FieldPartNumber) {
		fmt.Println("warning: no part number column")
	}
}

// Example_must shows the panic-on-error helpers for program setup.
func Example_must() {
	labels := titulus.MustBuild(titulus.Open("parts.xlsx").Labels())
	fmt.Println(len(labels), "labels")
}
