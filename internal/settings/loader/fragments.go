package loader

import (
	"log/slog"

	gojson "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/tidwall/gjson"

	"github.com/termhive/termhive/internal/build"
	"github.com/termhive/termhive/internal/settings"
)

// Fragment is one extension-supplied settings snippet. Source is the
// extension's namespace; it doubles as the profile source marker and the
// disabledProfileSources key.
type Fragment struct {
	Source  string
	Content []byte
}

// fragmentSchema describes the shape a fragment must have before its contents
// are considered. Field values are still read leniently afterwards; the
// schema only rejects fragments whose structure is wrong enough that reading
// them would be guesswork.
var fragmentSchema = jsonschema.MustCompileString("fragment.schema.json", `{
	"type": "object",
	"properties": {
		"minVersion": {"type": "string"},
		"profiles": {
			"type": "array",
			"items": {"type": "object"}
		},
		"schemes": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["name"],
				"properties": {"name": {"type": "string"}}
			}
		},
		"actions": {"type": "array"}
	}
}`)

// MergeFragments applies extension fragments on top of the parsed sources.
// A fragment that is not valid JSON fails the load; a fragment that is valid
// JSON but structurally wrong, or that requires a newer application version,
// is skipped with a warning. Fragment profile layers sit above the inbox
// layer and below the user layer, and fragment color schemes never replace
// schemes another layer already defines.
func (l *Loader) MergeFragments(fragments []Fragment) error {
	for _, frag := range fragments {
		if l.NamespaceIgnored(frag.Source) {
			slog.Debug("skipping disabled fragment", "source", frag.Source)
			continue
		}

		var doc any
		if err := gojson.Unmarshal(frag.Content, &doc); err != nil {
			return newParseError(frag.Source, frag.Content, err)
		}
		if err := fragmentSchema.Validate(doc); err != nil {
			slog.Warn("fragment has invalid structure", "source", frag.Source, "error", err)
			l.AddWarning(settings.WarningFragmentInvalidStructure)
			continue
		}

		root := gjson.ParseBytes(frag.Content)
		if min := root.Get("minVersion"); min.Type == gjson.String {
			if !build.IsCompatibleWith(min.Str) {
				slog.Info("skipping fragment requiring newer version",
					"source", frag.Source, "minVersion", min.Str, "version", build.Version)
				l.AddWarning(settings.WarningFragmentIncompatibleVersion)
				continue
			}
		}

		var store ParsedSettings
		if err := l.parse(settings.OriginFragment, frag.Source, frag.Content, &store, true); err != nil {
			return err
		}
		l.mergeFragmentStore(&store)
	}
	return nil
}

func (l *Loader) mergeFragmentStore(store *ParsedSettings) {
	for _, fp := range store.Profiles {
		guid := fp.Guid()
		if userProfile, ok := l.UserSettings.FindByGUID(guid); ok {
			userProfile.InsertParentAt(0, fp)
			continue
		}
		if _, ok := l.InboxSettings.FindByGUID(guid); ok {
			l.pendingFragmentLayers[guid] = append(l.pendingFragmentLayers[guid], fp)
			continue
		}
		// A profile no other layer knows: the fragment adds it. It joins
		// the inbox layer so the user adoption pass picks it up and the
		// deletion markers can target it.
		if !l.InboxSettings.Append(fp) {
			l.duplicateProfile = true
		}
	}

	for name, scheme := range store.Globals.ColorSchemes {
		if _, ok := l.UserSettings.Globals.ColorScheme(name); ok {
			continue
		}
		if _, ok := l.InboxSettings.Globals.ColorScheme(name); ok {
			continue
		}
		l.InboxSettings.Globals.AddColorScheme(scheme)
	}
}

// applyPendingFragmentLayers attaches the fragment layers that target a
// profile only the inbox declared. Runs once the inbox profile has a
// user-layer child to hang the layers off.
func (l *Loader) applyPendingFragmentLayers(guid uuid.UUID, userProfile *settings.Profile) {
	for _, fp := range l.pendingFragmentLayers[guid] {
		userProfile.InsertParentAt(0, fp)
	}
	delete(l.pendingFragmentLayers, guid)
}
