package generators

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/termhive/termhive/internal/settings"
)

func fakeLookPath(found map[string]string) func(string) (string, error) {
	return func(file string) (string, error) {
		if path, ok := found[file]; ok {
			return path, nil
		}
		return "", errors.New("executable file not found")
	}
}

func TestShellGenerator_GenerateProfiles(t *testing.T) {
	gen := &ShellGenerator{LookPath: fakeLookPath(map[string]string{
		"bash": "/usr/bin/bash",
		"fish": "/usr/bin/fish",
	})}

	profiles, err := gen.GenerateProfiles()
	require.NoError(t, err)
	require.Len(t, profiles, 2)

	bash := profiles[0]
	assert.Equal(t, "Bash", bash.Name())
	assert.Equal(t, settings.OriginGenerated, bash.Origin())
	assert.Equal(t, ShellNamespace, bash.Source())
	assert.Equal(t, "/usr/bin/bash -l", bash.Commandline())
	assert.Equal(t, "~", bash.StartingDirectory())

	assert.Equal(t, "Fish", profiles[1].Name())
}

func TestShellGenerator_StableIdentifiers(t *testing.T) {
	gen := &ShellGenerator{LookPath: fakeLookPath(map[string]string{"zsh": "/bin/zsh"})}

	first, err := gen.GenerateProfiles()
	require.NoError(t, err)
	second, err := gen.GenerateProfiles()
	require.NoError(t, err)

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	// The same discovery always yields the same identifier, so user
	// customizations keyed on it survive regeneration.
	assert.Equal(t, first[0].Guid(), second[0].Guid())
}

func TestShellGenerator_NothingFound(t *testing.T) {
	gen := &ShellGenerator{LookPath: fakeLookPath(nil)}

	profiles, err := gen.GenerateProfiles()
	require.NoError(t, err)
	assert.Empty(t, profiles)
}

func TestShellGenerator_Namespace(t *testing.T) {
	assert.Equal(t, "termhive.shells", NewShellGenerator().Namespace())
}
