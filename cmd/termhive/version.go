package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/termhive/termhive/internal/build"
)

// versionCmd implements the version command.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of termhive",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Println(build.Info())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
