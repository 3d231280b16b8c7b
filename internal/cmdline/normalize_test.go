package cmdline

import (
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFileInfo struct{ name string }

func (f fakeFileInfo) Name() string       { return f.name }
func (f fakeFileInfo) Size() int64        { return 0 }
func (f fakeFileInfo) Mode() os.FileMode  { return 0o755 }
func (f fakeFileInfo) ModTime() time.Time { return time.Time{} }
func (f fakeFileInfo) IsDir() bool        { return false }
func (f fakeFileInfo) Sys() any           { return nil }

// fakeNormalizer resolves against a fabricated filesystem: existing is the
// set of literal paths, path maps bare names to their resolved locations.
func fakeNormalizer(existing map[string]bool, path map[string]string) *Normalizer {
	return &Normalizer{
		ExpandEnv: func(s string) string {
			return strings.ReplaceAll(s, "$HOME", "/home/me")
		},
		LookPath: func(file string) (string, error) {
			if p, ok := path[file]; ok {
				return p, nil
			}
			return "", errors.New("executable file not found")
		},
		Stat: func(name string) (os.FileInfo, error) {
			if existing[name] {
				return fakeFileInfo{name: name}, nil
			}
			return nil, os.ErrNotExist
		},
		Canonicalize: func(p string) (string, error) { return p, nil },
	}
}

func TestNormalizer_Normalize_LiteralPath(t *testing.T) {
	n := fakeNormalizer(map[string]bool{"/usr/bin/zsh": true}, nil)

	key, err := n.Normalize("/usr/bin/zsh -l -i")
	require.NoError(t, err)
	assert.Equal(t, "/usr/bin/zsh"+Separator+"-l"+Separator+"-i", key)
}

func TestNormalizer_Normalize_PathLookup(t *testing.T) {
	n := fakeNormalizer(nil, map[string]string{"zsh": "/usr/bin/zsh"})

	key, err := n.Normalize("zsh -l")
	require.NoError(t, err)
	assert.Equal(t, "/usr/bin/zsh"+Separator+"-l", key)
}

func TestNormalizer_Normalize_ExpandsEnvironment(t *testing.T) {
	n := fakeNormalizer(map[string]bool{"/home/me/bin/shell": true}, nil)

	key, err := n.Normalize("$HOME/bin/shell")
	require.NoError(t, err)
	assert.Equal(t, "/home/me/bin/shell", key)
}

func TestNormalizer_Normalize_RejoinsSpacedPath(t *testing.T) {
	// The executable lives at a path with a space; the unquoted command
	// line splits it into two tokens.
	n := fakeNormalizer(map[string]bool{"/opt/my shell/bin/sh": true}, nil)

	key, err := n.Normalize("/opt/my shell/bin/sh -l")
	require.NoError(t, err)
	assert.Equal(t, "/opt/my shell/bin/sh"+Separator+"-l", key)
}

func TestNormalizer_Normalize_QuotedPathWithSpace(t *testing.T) {
	n := fakeNormalizer(map[string]bool{"/opt/my shell/bin/sh": true}, nil)

	key, err := n.Normalize(`"/opt/my shell/bin/sh" -l`)
	require.NoError(t, err)
	assert.Equal(t, "/opt/my shell/bin/sh"+Separator+"-l", key)
}

func TestNormalizer_Normalize_UnresolvableKeepsToken(t *testing.T) {
	n := fakeNormalizer(nil, nil)

	// Nothing resolves; the raw first token still yields a comparable key.
	key, err := n.Normalize("no-such-shell -x")
	require.NoError(t, err)
	assert.Equal(t, "no-such-shell -x", key)
}

func TestNormalizer_Normalize_EmptyCommandLine(t *testing.T) {
	n := fakeNormalizer(nil, nil)

	_, err := n.Normalize("   ")
	assert.ErrorIs(t, err, ErrEmptyCommandLine)
}

func TestNormalizer_Normalize_BadQuoting(t *testing.T) {
	n := fakeNormalizer(nil, nil)

	_, err := n.Normalize(`sh "unterminated`)
	assert.Error(t, err)
}
