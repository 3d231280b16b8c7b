package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	settingsPath string
	verbose      bool
)

// rootCmd is the application entry point.
var rootCmd = &cobra.Command{
	Use:   "termhive",
	Short: "Layered terminal profile and settings engine",
	Long: `Termhive manages terminal profiles as layered configuration: built-in
defaults, dynamically generated profiles, extension fragments and the user's
own settings resolve into one coherent view. The CLI inspects that view,
validates settings files and resolves which profile a launch request lands
on.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		setupLogging()
	},
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&settingsPath, "settings", "", "settings file (default is the per-user settings.json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// initConfig binds the environment so TERMHIVE_SETTINGS and friends can
// override flags.
func initConfig() {
	viper.SetEnvPrefix("termhive")
	viper.AutomaticEnv()

	if settingsPath == "" {
		settingsPath = viper.GetString("settings")
	}
}

func setupLogging() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	// Using TextHandler for CLI friendliness
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}
