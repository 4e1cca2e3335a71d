package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// versionCmd prints the filmdash version.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  "Print the version of the filmdash binary.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "filmdash %s\n", Version)
	},
}
