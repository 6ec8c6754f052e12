package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tsawler/titulus/layout"
)

var (
	cfgFile string
	verbose bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "titulus",
	Short: "Generate printable part labels from spreadsheet inventories",
	Long: `Titulus turns tabular part inventories into printable labels, one
fixed-size page per row.

It reads CSV and XLSX part lists, resolves the columns that matter by
keyword (part number, quantity, description, fixture location, ...),
and lays each record out on a 10x15cm card ready for lineside printing.

Columns the input does not carry render as blank cells, so partial
inventories still produce usable labels.`,
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initConfig(); err != nil {
			return err
		}
		return initLogger()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./titulus.yaml)",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&verbose, "verbose", "v", false, "log at debug level",
	)
}

// initConfig wires viper: defaults, TITULUS_* environment variables, then
// an optional titulus.yaml in the working directory.
func initConfig() error {
	viper.SetDefault("preset", layout.PresetStandard)

	viper.SetEnvPrefix("TITULUS")
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("titulus")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading config file: %w", err)
		}
	}
	return nil
}

func initLogger() error {
	config := zap.NewProductionConfig()
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	var err error
	logger, err = config.Build()
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	return nil
}
