// Package sources locates and reads the settings documents: the user's
// settings file, the built-in inbox document and extension fragment snippets
// scattered across well-known directories.
package sources

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/termhive/termhive/internal/build"
	"github.com/termhive/termhive/internal/settings/loader"
)

// maxConcurrentReads bounds the parallel fragment file reads.
const maxConcurrentReads = 8

// Locations names the places settings documents live.
type Locations struct {
	// UserSettingsPath is the user's settings file.
	UserSettingsPath string
	// FragmentDirs are directories whose subdirectories are fragment
	// namespaces; every JSON file inside a namespace directory is one
	// fragment.
	FragmentDirs []string
}

// DefaultLocations derives the standard locations from the user's
// configuration directory.
func DefaultLocations() (Locations, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return Locations{}, fmt.Errorf("resolving user config dir: %w", err)
	}
	appDir := filepath.Join(configDir, build.AppName)
	return Locations{
		UserSettingsPath: filepath.Join(appDir, "settings.json"),
		FragmentDirs:     []string{filepath.Join(appDir, "fragments")},
	}, nil
}

// Store reads and writes settings documents through a filesystem
// abstraction so tests can run against an in-memory tree.
type Store struct {
	fs        afero.Fs
	locations Locations
}

// NewStore creates a store over fs. A nil fs uses the real filesystem.
func NewStore(fs afero.Fs, locations Locations) *Store {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Store{fs: fs, locations: locations}
}

// ReadUserSettings returns the user's settings document. A missing file is
// not an error; it returns nil content so the caller starts from the inbox
// defaults alone.
func (s *Store) ReadUserSettings() ([]byte, error) {
	content, err := afero.ReadFile(s.fs, s.locations.UserSettingsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading %s: %w", s.locations.UserSettingsPath, err)
	}
	return content, nil
}

// WriteUserSettings replaces the user's settings document. The write goes to
// a temporary file in the same directory first and moves into place with a
// rename, so a crash mid-write never leaves a truncated settings file.
func (s *Store) WriteUserSettings(content []byte) error {
	path := s.locations.UserSettingsPath
	dir := filepath.Dir(path)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating settings dir %s: %w", dir, err)
	}

	tmp, err := afero.TempFile(s.fs, dir, ".settings-*.json")
	if err != nil {
		return fmt.Errorf("creating temp settings file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		s.fs.Remove(tmpName)
		return fmt.Errorf("writing temp settings file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		s.fs.Remove(tmpName)
		return fmt.Errorf("closing temp settings file: %w", err)
	}
	if err := s.fs.Rename(tmpName, path); err != nil {
		s.fs.Remove(tmpName)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

// DiscoverFragments walks the fragment directories and reads every fragment
// file. The subdirectory name is the fragment's source namespace. Files are
// read concurrently; an unreadable file is skipped with a log entry rather
// than failing discovery. The result is sorted by namespace then path so a
// load is deterministic regardless of directory iteration order.
func (s *Store) DiscoverFragments(ctx context.Context) ([]loader.Fragment, error) {
	type fragmentFile struct {
		source string
		path   string
	}

	var files []fragmentFile
	for _, dir := range s.locations.FragmentDirs {
		namespaces, err := afero.ReadDir(s.fs, dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("reading fragment dir %s: %w", dir, err)
		}
		for _, ns := range namespaces {
			if !ns.IsDir() {
				continue
			}
			nsDir := filepath.Join(dir, ns.Name())
			entries, err := afero.ReadDir(s.fs, nsDir)
			if err != nil {
				slog.Warn("skipping unreadable fragment namespace", "dir", nsDir, "error", err)
				continue
			}
			for _, entry := range entries {
				if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".json") {
					continue
				}
				files = append(files, fragmentFile{
					source: ns.Name(),
					path:   filepath.Join(nsDir, entry.Name()),
				})
			}
		}
	}

	sort.Slice(files, func(i, j int) bool {
		if files[i].source != files[j].source {
			return files[i].source < files[j].source
		}
		return files[i].path < files[j].path
	})

	fragments := make([]loader.Fragment, len(files))
	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentReads)
	for i, f := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			content, err := afero.ReadFile(s.fs, f.path)
			if err != nil {
				slog.Warn("skipping unreadable fragment", "path", f.path, "error", err)
				return nil
			}
			mu.Lock()
			fragments[i] = loader.Fragment{Source: f.source, Content: content}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	kept := fragments[:0]
	for _, frag := range fragments {
		if frag.Content != nil {
			kept = append(kept, frag)
		}
	}
	return kept, nil
}
