package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	gojson "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/termhive/termhive/internal/settings"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a settings file interactively",
	Long: `Init walks through a short form and writes a fresh settings file with one
custom profile. It refuses to touch an existing settings file; edit that
directly or delete it first.`,
	Example: `  termhive init
  termhive init --no-interactive --name Work --commandline "/usr/bin/zsh -l"`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().Bool("no-interactive", false, "Disable interactive prompts")
	initCmd.Flags().String("name", "", "Profile name")
	initCmd.Flags().String("commandline", "", "Profile command line")
	initCmd.Flags().String("starting-directory", "~", "Profile starting directory")
	initCmd.Flags().String("scheme", settings.DefaultColorSchemeName, "Color scheme name")
	initCmd.Flags().Bool("default", true, "Make the profile the default")

	rootCmd.AddCommand(initCmd)
}

// initFormData holds the answers of the init form.
type initFormData struct {
	Name              string
	Commandline       string
	StartingDirectory string
	Scheme            string
	MakeDefault       bool
}

func runInit(cmd *cobra.Command, _ []string) error {
	store, err := settingsStore()
	if err != nil {
		return err
	}
	if existing, err := store.ReadUserSettings(); err != nil {
		return err
	} else if len(existing) > 0 {
		return fmt.Errorf("a settings file already exists; edit it directly or delete it first")
	}

	data := initFormData{
		Name:              flagString(cmd, "name"),
		Commandline:       flagString(cmd, "commandline"),
		StartingDirectory: flagString(cmd, "starting-directory"),
		Scheme:            flagString(cmd, "scheme"),
	}
	data.MakeDefault, _ = cmd.Flags().GetBool("default")
	setInitDefaults(&data)

	noInteractive, _ := cmd.Flags().GetBool("no-interactive")
	if !noInteractive {
		if err := newInitForm(&data).Run(); err != nil {
			return fmt.Errorf("init form: %w", err)
		}
	}
	if strings.TrimSpace(data.Name) == "" {
		return fmt.Errorf("profile name must not be empty")
	}

	content, err := renderSettings(&data)
	if err != nil {
		return err
	}
	if err := store.WriteUserSettings(content); err != nil {
		return err
	}

	fmt.Printf("created settings with profile %q\n", data.Name)
	return nil
}

func setInitDefaults(data *initFormData) {
	if data.Commandline == "" {
		if shell := os.Getenv("SHELL"); shell != "" {
			data.Commandline = shell + " -l"
		} else {
			data.Commandline = "/bin/sh -l"
		}
	}
	if data.StartingDirectory == "" {
		data.StartingDirectory = "~"
	}
	if data.Scheme == "" {
		data.Scheme = settings.DefaultColorSchemeName
	}
	if data.Name == "" {
		parts := strings.Fields(data.Commandline)
		if len(parts) > 0 {
			base := parts[0]
			if i := strings.LastIndex(base, "/"); i >= 0 {
				base = base[i+1:]
			}
			data.Name = strings.ToUpper(base[:1]) + base[1:]
		}
	}
}

// newInitForm builds the interactive form.
func newInitForm(data *initFormData) *huh.Form {
	return huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Profile name").
			Value(&data.Name).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return fmt.Errorf("name must not be empty")
				}
				return nil
			}),
		huh.NewInput().
			Title("Command line").
			Value(&data.Commandline),
		huh.NewInput().
			Title("Starting directory").
			Value(&data.StartingDirectory),
		huh.NewSelect[string]().
			Title("Color scheme").
			Options(
				huh.NewOption("Campbell", "Campbell"),
				huh.NewOption("One Half Dark", "One Half Dark"),
			).
			Value(&data.Scheme),
		huh.NewConfirm().
			Title("Make this the default profile?").
			Value(&data.MakeDefault),
	))
}

// renderSettings serializes the initial settings document.
func renderSettings(data *initFormData) ([]byte, error) {
	type profileDoc struct {
		Guid              string `json:"guid"`
		Name              string `json:"name"`
		Commandline       string `json:"commandline,omitempty"`
		StartingDirectory string `json:"startingDirectory,omitempty"`
		ColorScheme       string `json:"colorScheme,omitempty"`
	}
	type settingsDoc struct {
		DefaultProfile string `json:"defaultProfile,omitempty"`
		Profiles       struct {
			List []profileDoc `json:"list"`
		} `json:"profiles"`
	}

	guid := uuid.New()
	doc := settingsDoc{}
	if data.MakeDefault {
		doc.DefaultProfile = settings.GuidString(guid)
	}
	doc.Profiles.List = []profileDoc{{
		Guid:              settings.GuidString(guid),
		Name:              data.Name,
		Commandline:       data.Commandline,
		StartingDirectory: data.StartingDirectory,
		ColorScheme:       data.Scheme,
	}}

	content, err := gojson.MarshalIndent(doc, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("serializing settings: %w", err)
	}
	return append(content, '\n'), nil
}

func flagString(cmd *cobra.Command, name string) string {
	v, _ := cmd.Flags().GetString(name)
	return v
}
