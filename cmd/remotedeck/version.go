package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/remotedeck/remotedeck/internal/version"
)

// versionCmd implements the version command.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of remotedeck",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "remotedeck version %s\n", version.Get().Full())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
