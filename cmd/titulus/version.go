package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Set at build time via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "titulus %s\n", version)
		fmt.Fprintf(cmd.OutOrStdout(), "  Commit: %s\n", commit)
		fmt.Fprintf(cmd.OutOrStdout(), "  Date:   %s\n", date)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
