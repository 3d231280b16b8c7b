package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/termhive/termhive/internal/settings"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "Inspect the resolved profile list",
}

func init() {
	rootCmd.AddCommand(profilesCmd)
	profilesCmd.AddCommand(newProfilesListCmd())
	profilesCmd.AddCommand(newProfilesResolveCmd())
}

func newProfilesListCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List the profiles of the current configuration",
		Example: `  termhive profiles list --all`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := loadSettings(cmd.Context())
			if err != nil {
				return err
			}
			if le := s.LoadError(); le != nil {
				return le
			}

			profiles := s.ActiveProfiles()
			if all {
				profiles = s.AllProfiles()
			}
			if len(profiles) == 0 {
				fmt.Println("No profiles found.")
				return nil
			}

			defaultGuid := s.GlobalSettings().DefaultProfile

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
			if _, err := fmt.Fprintln(w, "NAME\tGUID\tSOURCE\tHIDDEN\tDEFAULT"); err != nil {
				return fmt.Errorf("failed to write header: %w", err)
			}
			for _, p := range profiles {
				source := p.Source()
				if source == "" {
					source = "-"
				}
				marker := ""
				if p.Guid() == defaultGuid {
					marker = "*"
				}
				if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%t\t%s\n",
					p.Name(), settings.GuidString(p.Guid()), source, p.Hidden(), marker); err != nil {
					return fmt.Errorf("failed to write profile info: %w", err)
				}
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "include hidden profiles")
	return cmd
}

func newProfilesResolveCmd() *cobra.Command {
	var (
		profile     string
		index       int
		commandline string
	)

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve which profile a launch request lands on",
		Long: `Resolve applies the launch precedence rules: an explicit profile name or
identifier wins, then a profile index, then a command-line match against the
configured profiles, and finally the default profile.`,
		Example: `  termhive profiles resolve --profile Bash
  termhive profiles resolve --commandline "/usr/bin/zsh -l"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := loadSettings(cmd.Context())
			if err != nil {
				return err
			}
			if le := s.LoadError(); le != nil {
				return le
			}

			args := &settings.NewTerminalArgs{
				Profile:     profile,
				Commandline: commandline,
			}
			if cmd.Flags().Changed("index") {
				args.ProfileIndex = &index
			}

			p := s.ProfileForArgs(args)
			if p == nil {
				return fmt.Errorf("no profile matches the request")
			}

			fmt.Printf("%s (%s)\n", p.Name(), settings.GuidString(p.Guid()))
			if cmdl := p.Commandline(); cmdl != "" {
				fmt.Printf("  commandline: %s\n", cmdl)
			}
			if scheme := s.ColorSchemeForProfile(p); scheme != nil {
				fmt.Printf("  color scheme: %s\n", scheme.Name)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&profile, "profile", "", "profile name or guid")
	cmd.Flags().IntVar(&index, "index", 0, "profile index in the active list")
	cmd.Flags().StringVar(&commandline, "commandline", "", "command line to match against profiles")
	return cmd
}
