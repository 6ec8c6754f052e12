package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tsawler/titulus/layout"
)

var presetsDump string

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the registered label layouts",
	Long: `List the names accepted by generate --preset. With --dump, print one
layout as YAML; the output is a valid starting point for --layout-file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if presetsDump != "" {
			p, err := layout.ByName(presetsDump)
			if err != nil {
				return err
			}
			data, err := layout.Encode(p)
			if err != nil {
				return fmt.Errorf("encoding layout: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		for _, name := range layout.Names() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

func init() {
	presetsCmd.Flags().StringVar(&presetsDump, "dump", "", "print the named layout as YAML")
	rootCmd.AddCommand(presetsCmd)
}
