// Package generators produces profiles for dynamically discovered
// environments. Generators run on every load and emit the same identifiers
// for the same discoveries, so user customizations layered on a generated
// profile survive regeneration.
package generators

import (
	"log/slog"
	"os/exec"

	"github.com/termhive/termhive/internal/settings"
	"github.com/termhive/termhive/internal/settings/loader"
)

// ShellNamespace is the source namespace of the installed-shell generator.
const ShellNamespace = "termhive.shells"

// knownShells are the shells the generator probes for, in the order their
// profiles appear.
var knownShells = []struct {
	binary string
	name   string
}{
	{"bash", "Bash"},
	{"zsh", "Zsh"},
	{"fish", "Fish"},
	{"pwsh", "PowerShell"},
	{"nu", "Nushell"},
}

// ShellGenerator emits one profile per shell found on PATH.
type ShellGenerator struct {
	// LookPath resolves a binary name to its path. Defaults to
	// exec.LookPath; tests replace it.
	LookPath func(file string) (string, error)
}

// NewShellGenerator creates a generator probing the real PATH.
func NewShellGenerator() *ShellGenerator {
	return &ShellGenerator{LookPath: exec.LookPath}
}

// Namespace implements loader.ProfileGenerator.
func (g *ShellGenerator) Namespace() string { return ShellNamespace }

// GenerateProfiles probes PATH for each known shell and builds a profile for
// every hit. Discovery failures are absences, not errors.
func (g *ShellGenerator) GenerateProfiles() ([]*settings.Profile, error) {
	lookPath := g.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}

	var profiles []*settings.Profile
	for _, shell := range knownShells {
		path, err := lookPath(shell.binary)
		if err != nil {
			continue
		}
		slog.Debug("discovered shell", "name", shell.name, "path", path)

		p := settings.NewProfile(settings.OriginGenerated)
		p.SetName(shell.name)
		p.SetGuid(loader.GuidForProfile(ShellNamespace, shell.name))
		p.SetSource(ShellNamespace)
		p.SetCommandline(path + " -l")
		p.SetStartingDirectory("~")
		profiles = append(profiles, p)
	}
	return profiles, nil
}
