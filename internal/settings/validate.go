package settings

import (
	"net/url"
	"os"
	"strings"
	"unicode/utf8"
)

// validate runs the structural validation passes. Validation never fails a
// load: every invalid field is corrected in place and an aggregate warning is
// appended per pass. Running the passes again on the corrected object appends
// nothing.
func (s *Settings) validate() {
	s.validateAllSchemesExist()
	s.validateMediaResources()
	s.validateKeybindings()
	s.validateColorSchemesInCommands()
}

// validateAllSchemesExist clears any appearance scheme reference that does
// not name a known color scheme; the appearance falls back to the default
// scheme. A single warning covers all occurrences.
func (s *Settings) validateAllSchemesExist() {
	foundInvalid := false
	check := func(a *AppearanceConfig) {
		if a == nil {
			return
		}
		name := a.ColorSchemeName()
		if name == DefaultColorSchemeName {
			return
		}
		if _, ok := s.globals.ColorScheme(name); !ok {
			a.ClearColorSchemeName()
			foundInvalid = true
		}
	}

	check(s.baseLayerProfile.DefaultAppearance())
	for _, p := range s.allProfiles {
		check(p.DefaultAppearance())
		check(p.UnfocusedAppearance())
	}

	if foundInvalid {
		s.warnings = append(s.warnings, WarningUnknownColorScheme)
	}
}

// validateMediaResources clears icon and background image paths that do not
// parse as resource locators. Icon and background failures are recorded as
// two independent aggregate warnings.
func (s *Settings) validateMediaResources() {
	invalidBackground := false
	invalidIcon := false

	checkBackground := func(a *AppearanceConfig) {
		if a == nil {
			return
		}
		if path := a.BackgroundImagePath(); path != "" && !isValidResourcePath(os.ExpandEnv(path)) {
			a.ClearBackgroundImagePath()
			invalidBackground = true
		}
	}

	for _, p := range s.allProfiles {
		checkBackground(p.DefaultAppearance())
		checkBackground(p.UnfocusedAppearance())

		// One or two runes is an emoji or symbol icon, not a path.
		if icon := p.Icon(); utf8.RuneCountInString(icon) > 2 {
			if !isValidResourcePath(os.ExpandEnv(icon)) {
				p.ClearIcon()
				invalidIcon = true
			}
		}
	}

	if invalidBackground {
		s.warnings = append(s.warnings, WarningInvalidBackgroundImage)
	}
	if invalidIcon {
		s.warnings = append(s.warnings, WarningInvalidIcon)
	}
}

// validateKeybindings surfaces the warnings collected while the action map
// was built, prefixed by a header warning when any exist. The collected list
// is drained so a second pass appends nothing.
func (s *Settings) validateKeybindings() {
	collected := s.globals.ActionMap().Warnings()
	if len(collected) == 0 {
		return
	}
	s.warnings = append(s.warnings, WarningAtLeastOneKeybindingWarning)
	s.warnings = append(s.warnings, collected...)
	s.globals.ActionMap().warnings = nil
}

// validateColorSchemesInCommands walks the nested command tree and records a
// single warning when any leaf setColorScheme action references an unknown
// scheme. Commands expanded over all schemes are exempt; they only ever
// produce valid references.
func (s *Settings) validateColorSchemesInCommands() {
	schemes := s.globals.SchemeNames()
	for _, cmd := range s.globals.ActionMap().NameMap() {
		if hasInvalidColorScheme(cmd, schemes) {
			s.warnings = append(s.warnings, WarningInvalidColorSchemeInCmd)
			return
		}
	}
}

func hasInvalidColorScheme(cmd *Command, schemes map[string]struct{}) bool {
	if cmd.HasNestedCommands() {
		for _, nested := range cmd.NestedCommands {
			if hasInvalidColorScheme(nested, schemes) {
				return true
			}
		}
		return false
	}
	if cmd.ActionAndArgs == nil || cmd.ActionAndArgs.Action != ActionSetColorScheme {
		return false
	}
	if cmd.IterateOn == IterateColorSchemes {
		return false
	}
	_, ok := schemes[cmd.ActionAndArgs.Args.SchemeName]
	return !ok
}

// isValidResourcePath reports whether s parses as a well-formed resource
// locator: a URL, or a file path free of control characters. It does not
// check that the resource exists.
func isValidResourcePath(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < 0x20 {
			return false
		}
	}
	if strings.Contains(s, "://") {
		_, err := url.Parse(s)
		return err == nil
	}
	return utf8.ValidString(s)
}
