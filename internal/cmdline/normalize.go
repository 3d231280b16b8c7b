// Package cmdline normalizes free-form command lines into canonical
// comparison keys. The settings engine uses the keys for longest-prefix
// matching between an OS hand-off command line and the launch commands
// configured on profiles.
package cmdline

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/shlex"
)

// Separator joins the resolved executable path and the remaining argument
// tokens in a normalized key. A control character guarantees the separator
// cannot collide with argument text.
const Separator = "\x00"

// ErrEmptyCommandLine is returned when a command line contains no tokens
// after expansion and splitting.
var ErrEmptyCommandLine = errors.New("cmdline: empty command line")

// Normalizer turns command lines into canonical keys. The zero value is not
// usable; construct one with New. The lookup hooks exist so tests can run
// against a fabricated filesystem.
type Normalizer struct {
	// ExpandEnv expands environment variable references.
	ExpandEnv func(string) string
	// LookPath resolves a bare executable name through the OS search path.
	LookPath func(string) (string, error)
	// Stat probes a literal path.
	Stat func(string) (os.FileInfo, error)
	// Canonicalize normalizes the casing and separators of a resolved path.
	Canonicalize func(string) (string, error)
}

// New creates a Normalizer backed by the real OS environment.
func New() *Normalizer {
	return &Normalizer{
		ExpandEnv: os.ExpandEnv,
		LookPath:  exec.LookPath,
		Stat:      os.Stat,
		Canonicalize: func(path string) (string, error) {
			abs, err := filepath.Abs(path)
			if err != nil {
				return "", err
			}
			if resolved, err := filepath.EvalSymlinks(abs); err == nil {
				abs = resolved
			}
			return filepath.Clean(abs), nil
		},
	}
}

// Normalize produces the canonical comparison key for a command line:
// environment references are expanded, the line is split with shell quoting
// rules, the leading token is resolved to a canonical absolute executable
// path, and the remaining tokens are appended separated by Separator.
//
// A command line whose executable contains unquoted spaces splits into
// several tokens; tokens are re-joined incrementally until one resolves, the
// same way the OS process launcher recovers such paths.
func (n *Normalizer) Normalize(commandLine string) (string, error) {
	expanded := n.ExpandEnv(commandLine)

	args, err := shlex.Split(expanded)
	if err != nil {
		return "", fmt.Errorf("cmdline: splitting %q: %w", commandLine, err)
	}
	if len(args) == 0 {
		return "", ErrEmptyCommandLine
	}

	for {
		resolved, err := n.resolveExecutable(args[0])
		if err == nil {
			args[0] = resolved
			break
		}
		if len(args) < 2 {
			// Leave the token as-is; the key still participates in
			// prefix comparisons.
			break
		}
		args = append([]string{args[0] + " " + args[1]}, args[2:]...)
	}

	return strings.Join(args, Separator), nil
}

// resolveExecutable turns one token into a canonical absolute path: a literal
// path that exists wins, otherwise the OS search path is consulted (which
// also applies the platform's default executable extension).
func (n *Normalizer) resolveExecutable(token string) (string, error) {
	if strings.ContainsRune(token, os.PathSeparator) || strings.ContainsRune(token, '/') {
		if _, err := n.Stat(token); err == nil {
			return n.Canonicalize(token)
		}
	}
	path, err := n.LookPath(token)
	if err != nil {
		return "", fmt.Errorf("cmdline: resolving %q: %w", token, err)
	}
	return n.Canonicalize(path)
}
