package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the settings files for errors and warnings",
	Long: `Validate runs a full settings load and reports the outcome. A settings
file that cannot be parsed fails the command with the position of the error;
recoverable problems (unknown color schemes, bad key bindings, missing media
files) are listed as warnings.`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings(cmd.Context())
	if err != nil {
		return err
	}
	if le := s.LoadError(); le != nil {
		return le
	}

	warnings := s.Warnings()
	if len(warnings) == 0 {
		fmt.Printf("settings OK: %d profiles, %d color schemes, no warnings\n",
			len(s.AllProfiles()), len(s.GlobalSettings().ColorSchemes))
		return nil
	}

	fmt.Printf("settings loaded with %d warning(s):\n", len(warnings))
	for _, w := range warnings {
		fmt.Printf("  - %s\n", w.Message())
	}
	return nil
}
