package settings

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// NewTerminalArgs describes a structured "open a new terminal" request from a
// collaborator (a keybinding, the command palette, an OS hand-off). Fields are
// consulted in precedence order by Settings.ProfileForArgs.
type NewTerminalArgs struct {
	// Profile is an explicit profile name or brace-delimited identifier.
	Profile string
	// ProfileIndex addresses a profile by position in the active list.
	ProfileIndex *int
	// Commandline is a raw command line to match against profile launch
	// commands.
	Commandline string
	// StartingDirectory overrides the profile's starting directory.
	StartingDirectory string
	// TabTitle overrides the profile's tab title.
	TabTitle string
}

// Settings is the finalized, validated result of a load: global settings, the
// base layer profile, the full profile list, the non-hidden subset, and the
// warnings accumulated along the way. Once exposed, a Settings object is
// treated as immutable, except for the narrow mutation surface that appends
// new profiles (CreateNewProfile, DuplicateProfile); edits to existing
// profiles go through Copy.
type Settings struct {
	globals          *GlobalSettings
	baseLayerProfile *Profile
	allProfiles      []*Profile
	activeProfiles   []*Profile

	warnings  []Warning
	loadError *LoadError

	cmdCacheOnce sync.Once
	cmdCache     []cmdCacheEntry
	normalize    NormalizeFunc
}

// NormalizeFunc converts a raw command line into the canonical comparison key
// used by the command-line resolver.
type NormalizeFunc func(commandline string) (string, error)

// New builds a finalized Settings object and runs the validation passes.
// profiles keeps its order; the active list is the order-preserving non-hidden
// subset. normalize may be nil, in which case command-line resolution is
// disabled until SetNormalize is called.
func New(globals *GlobalSettings, baseLayer *Profile, profiles []*Profile, warnings []Warning) *Settings {
	if globals == nil {
		globals = NewGlobalSettings()
	}
	if baseLayer == nil {
		baseLayer = NewProfile(OriginProfilesDefaults)
	}
	s := &Settings{
		globals:          globals,
		baseLayerProfile: baseLayer,
		allProfiles:      profiles,
		warnings:         append([]Warning(nil), warnings...),
	}
	s.refreshActiveProfiles()
	s.validate()
	return s
}

// NewFromLoadError builds a Settings object that only carries a fatal load
// error. Callers use it to surface the failure alongside a fallback settings
// object.
func NewFromLoadError(code LoadErrorCode, message string) *Settings {
	s := &Settings{
		globals:          NewGlobalSettings(),
		baseLayerProfile: NewProfile(OriginProfilesDefaults),
		loadError:        &LoadError{Code: code, Message: message},
	}
	return s
}

// SetNormalize installs the command-line normalizer. It must be called before
// the first ProfileForArgs query that carries a command line.
func (s *Settings) SetNormalize(fn NormalizeFunc) { s.normalize = fn }

// GlobalSettings returns the application-wide settings.
func (s *Settings) GlobalSettings() *GlobalSettings { return s.globals }

// ProfileDefaults returns the base layer profile every profile inherits from.
func (s *Settings) ProfileDefaults() *Profile { return s.baseLayerProfile }

// AllProfiles returns every profile, hidden ones included, in load order.
func (s *Settings) AllProfiles() []*Profile { return s.allProfiles }

// ActiveProfiles returns the non-hidden profiles in load order.
func (s *Settings) ActiveProfiles() []*Profile { return s.activeProfiles }

// ActionMap returns the merged keybinding/action map.
func (s *Settings) ActionMap() *ActionMap { return s.globals.ActionMap() }

// Warnings returns the non-fatal warnings accumulated during load and
// validation.
func (s *Settings) Warnings() []Warning { return s.warnings }

// LoadError returns the fatal load error, or nil when the load succeeded.
func (s *Settings) LoadError() *LoadError { return s.loadError }

// FindProfile returns the profile with the given identifier, or nil. Hidden
// profiles are found too.
func (s *Settings) FindProfile(guid uuid.UUID) *Profile {
	for _, p := range s.allProfiles {
		if p.Guid() == guid {
			return p
		}
	}
	return nil
}

// ProfileByName resolves a free-form profile reference. A 38-character string
// starting with '{' is first tried as a brace-delimited identifier; anything
// else, or an identifier with no match, is matched against profile names.
func (s *Settings) ProfileByName(name string) *Profile {
	if name == "" {
		return nil
	}
	if len(name) == 38 && name[0] == '{' {
		if guid, err := uuid.Parse(name); err == nil {
			if p := s.FindProfile(guid); p != nil {
				return p
			}
		}
	}
	for _, p := range s.allProfiles {
		if p.Name() == name {
			return p
		}
	}
	return nil
}

// ProfileByIndex returns the profile at the given position of the active
// list, or nil when the index is out of bounds.
func (s *Settings) ProfileByIndex(index int) *Profile {
	if index < 0 || index >= len(s.activeProfiles) {
		return nil
	}
	return s.activeProfiles[index]
}

// ProfileForArgs resolves the profile a new-terminal request should launch:
// explicit name, then explicit index, then command-line match, then the
// configured default profile; as a last resort the first active profile.
func (s *Settings) ProfileForArgs(args *NewTerminalArgs) *Profile {
	if args != nil {
		if args.Profile != "" {
			if p := s.ProfileByName(args.Profile); p != nil {
				return p
			}
		}
		if args.ProfileIndex != nil {
			if p := s.ProfileByIndex(*args.ProfileIndex); p != nil {
				return p
			}
		}
		if args.Commandline != "" {
			if p := s.ProfileForCommandLine(args.Commandline); p != nil {
				return p
			}
		}
	}
	if p := s.FindProfile(s.globals.DefaultProfile); p != nil {
		return p
	}
	if len(s.activeProfiles) > 0 {
		return s.activeProfiles[0]
	}
	return nil
}

// ColorSchemeForProfile returns the scheme the profile's default appearance
// references, or nil when the name does not resolve.
func (s *Settings) ColorSchemeForProfile(p *Profile) *ColorScheme {
	if p == nil {
		return nil
	}
	scheme, _ := s.globals.ColorScheme(p.DefaultAppearance().ColorSchemeName())
	return scheme
}

// UpdateColorSchemeReferences renames every reference to a color scheme on
// the base layer and on all profiles. Used by the settings editor after a
// scheme rename.
func (s *Settings) UpdateColorSchemeReferences(oldName, newName string) {
	rename := func(a *AppearanceConfig) {
		if a != nil && a.HasColorSchemeName() && a.ColorSchemeName() == oldName {
			a.SetColorSchemeName(newName)
		}
	}
	rename(s.baseLayerProfile.DefaultAppearance())
	for _, p := range s.allProfiles {
		rename(p.DefaultAppearance())
		if p.HasUnfocusedAppearance() {
			rename(p.UnfocusedAppearance())
		}
	}
}

// CreateNewProfile appends a new base-derived profile with an auto-generated
// unique name and a fresh identifier.
func (s *Settings) CreateNewProfile() *Profile {
	var name string
	count := len(s.allProfiles) + 1
	for candidate := 0; candidate < count; candidate++ {
		name = fmt.Sprintf("Profile %d", count+candidate)
		if !s.nameInUse(name) {
			break
		}
	}
	p := s.newProfile(name)
	s.allProfiles = append(s.allProfiles, p)
	s.activeProfiles = append(s.activeProfiles, p)
	return p
}

// DuplicateProfile appends a copy of source. Only properties explicitly set
// on the source, or inherited from an ancestor that is not the shared
// defaults layer, are copied; defaults-layer values keep flowing through
// inheritance so the duplicate follows future changes to the base layer. The
// hidden flag is never copied.
func (s *Settings) DuplicateProfile(source *Profile) *Profile {
	name := fmt.Sprintf("%s (Copy)", source.Name())
	for candidate := 0; s.nameInUse(name); candidate++ {
		name = fmt.Sprintf("%s (Copy %d)", source.Name(), candidate+2)
	}

	duplicated := s.newProfile(name)

	duplicateSetting(source, duplicated, pickIcon)
	duplicateSetting(source, duplicated, pickCommandline)
	duplicateSetting(source, duplicated, pickStartingDirectory)
	duplicateSetting(source, duplicated, pickTabTitle)
	duplicateSetting(source, duplicated, pickTabColor)
	duplicateSetting(source, duplicated, pickCloseOnExit)
	duplicateSetting(source, duplicated, pickSuppressApplicationTitle)
	duplicateSetting(source, duplicated, pickUseAcrylic)
	duplicateSetting(source, duplicated, pickPadding)
	duplicateSetting(source, duplicated, pickHistorySize)
	duplicateSetting(source, duplicated, pickSnapOnInput)
	duplicateSetting(source, duplicated, pickAltGrAliasing)
	duplicateSetting(source, duplicated, pickBellStyle)

	duplicateFontSetting(source.FontInfo(), duplicated.FontInfo(), pickFontFace)
	duplicateFontSetting(source.FontInfo(), duplicated.FontInfo(), pickFontSize)
	duplicateFontSetting(source.FontInfo(), duplicated.FontInfo(), pickFontWeight)
	duplicateFontSetting(source.FontInfo(), duplicated.FontInfo(), pickFontFeatures)

	duplicateAppearance(source.DefaultAppearance(), duplicated.DefaultAppearance())

	// The unfocused appearance is duplicated as a single unit.
	if src := source.UnfocusedAppearanceOverrideSource(); source.HasUnfocusedAppearance() ||
		(src != OriginNone && src != OriginProfilesDefaults) {
		ua := NewAppearanceConfig()
		duplicated.SetUnfocusedAppearance(ua)
		duplicateAppearance(source.UnfocusedAppearance(), ua)
	}

	if source.HasConnectionType() {
		duplicated.SetConnectionType(source.ConnectionType())
	}

	s.allProfiles = append(s.allProfiles, duplicated)
	s.activeProfiles = append(s.activeProfiles, duplicated)
	return duplicated
}

// Copy deep-clones the whole settings object. The profile graph is cloned
// through one shared memoization map so parents shared between profiles stay
// shared between their clones; warnings and global settings are copied
// shallowly.
func (s *Settings) Copy() *Settings {
	// Three expected parents per profile: fragment layer, inbox original,
	// base layer.
	visited := make(map[*Profile]*Profile, len(s.allProfiles)*3)

	clone := &Settings{
		globals:          s.globals.Copy(),
		baseLayerProfile: s.baseLayerProfile.CopyInheritanceGraph(visited),
		warnings:         append([]Warning(nil), s.warnings...),
		loadError:        s.loadError,
		normalize:        s.normalize,
	}
	clone.allProfiles = CopyInheritanceGraphs(visited, s.allProfiles)
	clone.refreshActiveProfiles()
	return clone
}

func (s *Settings) refreshActiveProfiles() {
	s.activeProfiles = s.activeProfiles[:0]
	for _, p := range s.allProfiles {
		if !p.Hidden() {
			s.activeProfiles = append(s.activeProfiles, p)
		}
	}
}

func (s *Settings) nameInUse(name string) bool {
	for _, p := range s.allProfiles {
		if p.Name() == name {
			return true
		}
	}
	return false
}

// newProfile creates a child of the base layer with a fresh random identifier
// and the given name.
func (s *Settings) newProfile(name string) *Profile {
	p := CreateChild(s.baseLayerProfile)
	p.SetGuid(uuid.New())
	p.SetName(name)
	p.SetHidden(false)
	return p
}

func duplicateSetting[T any](src, dst *Profile, pick func(*Profile) *Setting[T]) {
	if setting := pick(src); setting.IsSet() {
		pick(dst).Set(setting.Value())
		return
	}
	if node, setting := firstSet(src, pick); node != nil && node.origin != OriginProfilesDefaults {
		pick(dst).Set(setting.Value())
	}
}

func duplicateFontSetting[T any](src, dst *FontConfig, pick func(*FontConfig) *Setting[T]) {
	if setting := pick(src); setting.IsSet() {
		pick(dst).Set(setting.Value())
		return
	}
	if node, setting := fontFirstSet(src, pick); node != nil && node.profile != nil &&
		node.profile.origin != OriginProfilesDefaults {
		pick(dst).Set(setting.Value())
	}
}

func duplicateAppearanceSetting[T any](src, dst *AppearanceConfig, pick func(*AppearanceConfig) *Setting[T]) {
	if setting := pick(src); setting.IsSet() {
		pick(dst).Set(setting.Value())
		return
	}
	if node, setting := appearanceFirstSet(src, pick); node != nil && node.profile != nil &&
		node.profile.origin != OriginProfilesDefaults {
		pick(dst).Set(setting.Value())
	}
}

func duplicateAppearance(src, dst *AppearanceConfig) {
	duplicateAppearanceSetting(src, dst, pickColorSchemeName)
	duplicateAppearanceSetting(src, dst, pickForeground)
	duplicateAppearanceSetting(src, dst, pickBackground)
	duplicateAppearanceSetting(src, dst, pickCursorColor)
	duplicateAppearanceSetting(src, dst, pickCursorShape)
	duplicateAppearanceSetting(src, dst, pickOpacity)
	duplicateAppearanceSetting(src, dst, pickBackgroundImagePath)
	duplicateAppearanceSetting(src, dst, pickBackgroundImageOpacity)
	duplicateAppearanceSetting(src, dst, pickRetroTerminalEffect)
}

// GuidString renders an identifier in the brace-delimited form used by the
// settings files. ProfileByName accepts this form back.
func GuidString(guid uuid.UUID) string {
	return "{" + strings.ToLower(guid.String()) + "}"
}
