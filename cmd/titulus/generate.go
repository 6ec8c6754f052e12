package main

import (
	"fmt"
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/tsawler/titulus"
	"github.com/tsawler/titulus/layout"
)

var (
	genPreset     string
	genLayoutFile string
	genOutput     string
	genQuiet      bool
	genValidate   bool
)

var generateCmd = &cobra.Command{
	Use:   "generate <input> [output]",
	Short: "Convert a parts list into a printable label document",
	Long: `Generate reads a CSV or XLSX parts list and writes one label page
per data row. The output path defaults to the input name with a
_labels.pdf suffix, next to the input file.

Examples:
  titulus generate parts.xlsx                 # writes parts_labels.pdf
  titulus generate parts.csv rack7.pdf        # explicit output path
  titulus generate parts.xlsx --preset station
  titulus generate parts.xlsx --layout-file wide.yaml --validate`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(
		&genPreset, "preset", "p", layout.PresetStandard, "label layout preset",
	)
	generateCmd.Flags().StringVar(
		&genLayoutFile, "layout-file", "", "YAML layout definition (overrides --preset)",
	)
	generateCmd.Flags().StringVarP(
		&genOutput, "output", "o", "", "output path (default: input stem + _labels.pdf)",
	)
	generateCmd.Flags().BoolVar(
		&genQuiet, "quiet", false, "suppress per-label progress logging",
	)
	generateCmd.Flags().BoolVar(
		&genValidate, "validate", false, "validate the produced file",
	)

	viper.BindPFlag("preset", generateCmd.Flags().Lookup("preset"))
	viper.BindPFlag("validate", generateCmd.Flags().Lookup("validate"))

	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	input := args[0]
	output := genOutput
	if len(args) == 2 {
		output = args[1]
	}
	if output == "" {
		output = titulus.OutputName(input)
	}

	gen := titulus.Open(input)
	if genLayoutFile != "" {
		preset, err := layout.LoadFile(genLayoutFile)
		if err != nil {
			return fmt.Errorf("loading layout: %w", err)
		}
		gen = gen.Layout(preset)
	} else {
		gen = gen.Preset(viper.GetString("preset"))
	}
	if !genQuiet {
		gen = gen.OnProgress(func(done, total int) {
			if done < total {
				logger.Info("creating label", zap.Int("label", done), zap.Int("of", total-1))
			} else {
				logger.Debug("writing document")
			}
		})
	}

	// Surface the column mapping before the build so a bad header row is
	// visible even when generation fails later.
	_, diags, err := gen.Mapping()
	if err != nil {
		return fmt.Errorf("reading %s: %w", input, err)
	}
	for _, d := range diags {
		if d.Resolved {
			logger.Info("column mapped",
				zap.Stringer("field", d.Field),
				zap.String("column", d.Column))
		} else {
			logger.Warn("column not found", zap.Stringer("field", d.Field))
		}
	}

	start := time.Now()
	if _, err := gen.PDFFile(output); err != nil {
		return fmt.Errorf("generating labels: %w", err)
	}
	logger.Info("labels written",
		zap.String("output", output),
		zap.Duration("elapsed", time.Since(start)))

	if viper.GetBool("validate") {
		conf := pdfmodel.NewDefaultConfiguration()
		conf.ValidationMode = pdfmodel.ValidationRelaxed
		if err := api.ValidateFile(output, conf); err != nil {
			return fmt.Errorf("validating %s: %w", output, err)
		}
		pages, err := api.PageCountFile(output)
		if err != nil {
			return fmt.Errorf("counting pages: %w", err)
		}
		logger.Info("document validated", zap.Int("pages", pages))
	}
	return nil
}
