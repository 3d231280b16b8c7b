package settings

import "fmt"

// Warning is a non-fatal condition discovered while loading or validating a
// settings tree. Warnings never abort a load; the offending field is corrected
// in place and the warning is accumulated on the finalized Settings object for
// the UI layer to surface.
type Warning uint8

const (
	// WarningUnknownColorScheme is recorded when at least one profile
	// appearance referenced a color scheme that does not exist.
	WarningUnknownColorScheme Warning = iota
	// WarningInvalidBackgroundImage is recorded when at least one background
	// image path failed to parse as a resource locator.
	WarningInvalidBackgroundImage
	// WarningInvalidIcon is recorded when at least one icon path failed to
	// parse as a resource locator.
	WarningInvalidIcon
	// WarningAtLeastOneKeybindingWarning heads the list of individual
	// keybinding warnings when any were collected.
	WarningAtLeastOneKeybindingWarning
	// WarningInvalidKeyChord is recorded for a keybinding whose key chord
	// could not be parsed.
	WarningInvalidKeyChord
	// WarningMissingRequiredParameter is recorded for an action that lacks an
	// argument its kind requires.
	WarningMissingRequiredParameter
	// WarningUnknownAction is recorded for an action entry naming an action
	// this application does not implement.
	WarningUnknownAction
	// WarningInvalidColorSchemeInCmd is recorded when a command's action
	// references a color scheme that does not exist.
	WarningInvalidColorSchemeInCmd
	// WarningDuplicateProfile is recorded when two configuration sources
	// declared a profile with the same identifier.
	WarningDuplicateProfile
	// WarningFragmentIncompatibleVersion is recorded when a fragment declares
	// a minimum application version newer than this build.
	WarningFragmentIncompatibleVersion
	// WarningFragmentInvalidStructure is recorded when a fragment blob does
	// not conform to the fragment schema and was skipped.
	WarningFragmentInvalidStructure
)

var warningMessages = map[Warning]string{
	WarningUnknownColorScheme:          "found a profile referencing an unknown color scheme; the reference was cleared",
	WarningInvalidBackgroundImage:      "found a profile with an invalid background image path; the path was cleared",
	WarningInvalidIcon:                 "found a profile with an invalid icon path; the path was cleared",
	WarningAtLeastOneKeybindingWarning: "at least one keybinding could not be loaded",
	WarningInvalidKeyChord:             "found a keybinding with an unparseable key chord",
	WarningMissingRequiredParameter:    "found an action missing a required argument",
	WarningUnknownAction:               "found an action entry naming an unknown action",
	WarningInvalidColorSchemeInCmd:     "found a command referencing an unknown color scheme",
	WarningDuplicateProfile:            "found multiple profiles with the same identifier; later entries were ignored",
	WarningFragmentIncompatibleVersion: "skipped a fragment requiring a newer application version",
	WarningFragmentInvalidStructure:    "skipped a fragment with an invalid structure",
}

// Message returns the human-readable description of the warning.
func (w Warning) Message() string {
	if msg, ok := warningMessages[w]; ok {
		return msg
	}
	return fmt.Sprintf("unknown warning (%d)", uint8(w))
}

// LoadErrorCode classifies a fatal load failure. A fatal failure aborts the
// load before finalization; the caller is expected to fall back to a known
// good settings object or to the shipped defaults.
type LoadErrorCode uint8

const (
	// LoadErrorUnparseableJSON means a configuration source was not valid
	// JSON at all.
	LoadErrorUnparseableJSON LoadErrorCode = iota
	// LoadErrorInvalidStructure means a configuration source parsed as JSON
	// but its top-level shape is not usable (for example, not an object).
	LoadErrorInvalidStructure
)

// LoadError carries the fatal error code together with a positioned
// diagnostic message.
type LoadError struct {
	Code    LoadErrorCode
	Message string
}

func (e *LoadError) Error() string {
	return e.Message
}
