// Package build exposes process-wide application identity: name, version and
// the compatibility check used by the fragment loader. The values are set at
// link time and never change while the process runs.
package build

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// These are set via -ldflags at build time.
var (
	// Version is the application version in semantic version form.
	Version = "0.0.0-dev"
	// Commit is the VCS revision the binary was built from.
	Commit = "unknown"
	// Date is the build timestamp.
	Date = "unknown"
)

// AppName is the application display name.
const AppName = "termhive"

// Info returns a single-line description of the build.
func Info() string {
	return fmt.Sprintf("%s %s (commit %s, built %s)", AppName, Version, Commit, Date)
}

// IsCompatibleWith reports whether this build satisfies a minimum version
// requirement. An unparseable requirement is treated as satisfied, keeping
// version gating advisory rather than load-breaking.
func IsCompatibleWith(minVersion string) bool {
	if minVersion == "" {
		return true
	}
	required, err := semver.NewVersion(minVersion)
	if err != nil {
		return true
	}
	current, err := semver.NewVersion(Version)
	if err != nil {
		return true
	}
	return !current.LessThan(required)
}
