package loader

import (
	"errors"
	"fmt"
	"log/slog"

	"dario.cat/mergo"
	"github.com/google/uuid"

	"github.com/termhive/termhive/internal/cmdline"
	"github.com/termhive/termhive/internal/settings"
)

// Source names used in positioned error messages and generated identifiers.
const (
	InboxSourceName = "termhive.inbox"
	UserSourceName  = "settings.json"
)

// ProfileGenerator produces profiles for dynamically discovered environments
// (installed shells, remote hosts). Generators run after the static sources
// are parsed and their output joins the inbox layer.
type ProfileGenerator interface {
	// Namespace is the generator's source identifier. Users can list it in
	// disabledProfileSources to suppress the generator entirely.
	Namespace() string
	GenerateProfiles() ([]*settings.Profile, error)
}

// Loader runs the staged settings load. The stages must run in order:
// New, GenerateProfiles, MergeFragments, MergeInboxIntoUserSettings,
// FinalizeLayering, DisableDeletedProfiles, FinalizeSettings. Load runs them
// all.
type Loader struct {
	InboxSettings ParsedSettings
	UserSettings  ParsedSettings

	baseLayerProfile  *settings.Profile
	duplicateProfile  bool
	warnings          []settings.Warning
	ignoredNamespaces map[string]struct{}

	// pendingFragmentLayers holds fragment layers targeting profiles only
	// the inbox declares, keyed by profile identifier, until the adoption
	// pass creates the user-layer child they attach to.
	pendingFragmentLayers map[uuid.UUID][]*settings.Profile
}

// New parses the built-in and user settings sources. A malformed source is a
// fatal error carrying the source name and position.
func New(userContent, inboxContent []byte) (*Loader, error) {
	l := &Loader{}
	if err := l.parse(settings.OriginInBox, InboxSourceName, inboxContent, &l.InboxSettings, false); err != nil {
		return nil, err
	}
	if err := l.parse(settings.OriginUser, UserSourceName, userContent, &l.UserSettings, false); err != nil {
		return nil, err
	}

	l.pendingFragmentLayers = make(map[uuid.UUID][]*settings.Profile)
	l.ignoredNamespaces = make(map[string]struct{})
	for _, ns := range l.UserSettings.Globals.DisabledProfileSources {
		l.ignoredNamespaces[ns] = struct{}{}
	}
	return l, nil
}

// NamespaceIgnored reports whether the user disabled a dynamic source
// namespace.
func (l *Loader) NamespaceIgnored(namespace string) bool {
	_, ok := l.ignoredNamespaces[namespace]
	return ok
}

// GenerateProfiles runs the profile generators and adds their output to the
// inbox layer. A failing generator is skipped with a log entry; generation
// never fails the load.
func (l *Loader) GenerateProfiles(generators ...ProfileGenerator) {
	for _, gen := range generators {
		ns := gen.Namespace()
		if l.NamespaceIgnored(ns) {
			slog.Debug("skipping disabled profile generator", "namespace", ns)
			continue
		}
		profiles, err := gen.GenerateProfiles()
		if err != nil {
			slog.Warn("profile generator failed", "namespace", ns, "error", err)
			continue
		}
		for _, p := range profiles {
			if !p.HasSource() {
				p.SetSource(ns)
			}
			if !p.HasGuid() {
				p.SetGuid(GuidForProfile(ns, p.Name()))
			}
			if !l.InboxSettings.Append(p) {
				l.duplicateProfile = true
			}
		}
	}
}

// MergeInboxIntoUserSettings attaches the inbox layer to the user layer.
// An inbox profile the user also declares becomes a parent of the user's
// profile; an inbox profile the user never mentions is adopted as a fresh
// user-layer child so later user edits land in the user layer.
func (l *Loader) MergeInboxIntoUserSettings() {
	for _, inboxProfile := range l.InboxSettings.Profiles {
		if userProfile, ok := l.UserSettings.FindByGUID(inboxProfile.Guid()); ok {
			userProfile.InsertParent(inboxProfile)
			continue
		}
		child := settings.CreateChild(inboxProfile)
		l.applyPendingFragmentLayers(inboxProfile.Guid(), child)
		l.UserSettings.Append(child)
	}
}

// FinalizeLayering merges the global settings layers and attaches the base
// layer ("profiles.defaults") as the final parent of every profile. After
// this, every settings lookup resolves through user, fragment, inbox and
// base values in that order.
func (l *Loader) FinalizeLayering() error {
	user, inbox := l.UserSettings.Globals, l.InboxSettings.Globals

	mergedActions := settings.MergeActionMaps(inbox.Actions, user.Actions)
	user.Actions, inbox.Actions = nil, nil
	if err := mergo.Merge(user, inbox); err != nil {
		return fmt.Errorf("merging global settings layers: %w", err)
	}
	user.Actions = mergedActions

	base := l.UserSettings.BaseLayerProfile
	switch {
	case base == nil:
		base = l.InboxSettings.BaseLayerProfile
	case l.InboxSettings.BaseLayerProfile != nil:
		base.InsertParent(l.InboxSettings.BaseLayerProfile)
	}
	if base == nil {
		base = settings.NewProfile(settings.OriginProfilesDefaults)
	}
	l.baseLayerProfile = base

	for _, p := range l.UserSettings.Profiles {
		p.InsertParent(base)
	}
	return nil
}

// DisableDeletedProfiles hides the profiles the user marked deleted. Only
// profiles backed by a dynamic source honor the marker; a regenerated profile
// would otherwise reappear on every load. Returns whether anything changed.
func (l *Loader) DisableDeletedProfiles() bool {
	changed := false
	for _, guid := range l.UserSettings.DeletedProfiles {
		p, ok := l.UserSettings.FindByGUID(guid)
		if !ok || p.Hidden() {
			continue
		}
		if !hasDynamicParent(p) {
			continue
		}
		p.SetHidden(true)
		changed = true
	}
	return changed
}

func hasDynamicParent(p *settings.Profile) bool {
	for _, parent := range p.Parents() {
		switch parent.Origin() {
		case settings.OriginInBox, settings.OriginGenerated, settings.OriginFragment:
			return true
		}
	}
	return false
}

// AddWarning records a load warning to surface on the finalized settings.
func (l *Loader) AddWarning(w settings.Warning) {
	l.warnings = append(l.warnings, w)
}

// FinalizeSettings builds the immutable settings object, runs validation and
// wires the command-line resolver.
func (l *Loader) FinalizeSettings() *settings.Settings {
	warnings := append([]settings.Warning(nil), l.warnings...)
	if l.duplicateProfile {
		warnings = append(warnings, settings.WarningDuplicateProfile)
	}
	s := settings.New(l.UserSettings.Globals, l.baseLayerProfile, l.UserSettings.Profiles, warnings)
	s.SetNormalize(cmdline.New().Normalize)
	return s
}

// Load runs every stage in order. A fatal parse failure returns a settings
// object carrying the load error instead of a usable configuration, plus the
// error itself.
func Load(userContent, inboxContent []byte, fragments []Fragment, generators ...ProfileGenerator) (*settings.Settings, error) {
	l, err := New(userContent, inboxContent)
	if err != nil {
		return settingsFromError(err), err
	}
	l.GenerateProfiles(generators...)
	if err := l.MergeFragments(fragments); err != nil {
		return settingsFromError(err), err
	}
	l.MergeInboxIntoUserSettings()
	if err := l.FinalizeLayering(); err != nil {
		return settingsFromError(err), err
	}
	l.DisableDeletedProfiles()
	return l.FinalizeSettings(), nil
}

func settingsFromError(err error) *settings.Settings {
	var pe *ParseError
	if errors.As(err, &pe) {
		le := pe.LoadError()
		return settings.NewFromLoadError(le.Code, le.Message)
	}
	return settings.NewFromLoadError(settings.LoadErrorInvalidStructure, err.Error())
}
