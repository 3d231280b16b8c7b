package main

import (
	"context"
	"fmt"

	"github.com/termhive/termhive/internal/generators"
	"github.com/termhive/termhive/internal/settings"
	"github.com/termhive/termhive/internal/settings/loader"
	"github.com/termhive/termhive/internal/settings/sources"
)

// settingsStore builds the document store honoring the --settings override.
func settingsStore() (*sources.Store, error) {
	locations, err := sources.DefaultLocations()
	if err != nil {
		return nil, err
	}
	if settingsPath != "" {
		locations.UserSettingsPath = settingsPath
	}
	return sources.NewStore(nil, locations), nil
}

// loadSettings runs the full load: user file, built-in inbox, discovered
// fragments and the shell generator. A fatal parse failure comes back as an
// error; warnings ride on the returned settings.
func loadSettings(ctx context.Context) (*settings.Settings, error) {
	store, err := settingsStore()
	if err != nil {
		return nil, err
	}

	userContent, err := store.ReadUserSettings()
	if err != nil {
		return nil, err
	}
	fragments, err := store.DiscoverFragments(ctx)
	if err != nil {
		return nil, fmt.Errorf("discovering fragments: %w", err)
	}

	return loader.Load(userContent, sources.InboxSettings(), fragments, generators.NewShellGenerator())
}
