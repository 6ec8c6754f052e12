package titulus

import (
	"path/filepath"
	"strings"
)

// MediaType is the MIME type of generated label documents.
const MediaType = "application/pdf"

// OutputName derives the conventional output path for an input file:
// the input stem with a "_labels.pdf" suffix, in the same directory.
//
// Example:
//
//	titulus.OutputName("data/parts.xlsx") // "data/parts_labels.pdf"
func OutputName(inputPath string) string {
	stem := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
	return stem + "_labels.pdf"
}

// GenerateFile converts the named spreadsheet into a label document
// beside it, named per OutputName, and returns the path written.
//
// Example:
//
//	out, diags, err := titulus.GenerateFile("parts.xlsx")
func GenerateFile(inputPath string) (string, []Diagnostic, error) {
	outputPath := OutputName(inputPath)
	diags, err := Open(inputPath).PDFFile(outputPath)
	if err != nil {
		return "", diags, err
	}
	return outputPath, diags, nil
}

// GenerateFileTo converts the named spreadsheet into a label document at
// the given output path.
//
// Example:
//
//	diags, err := titulus.GenerateFileTo("parts.xlsx", "/tmp/labels.pdf")
func GenerateFileTo(inputPath, outputPath string) ([]Diagnostic, error) {
	return Open(inputPath).PDFFile(outputPath)
}
