package loader

import (
	"bytes"
	"errors"

	gojson "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/termhive/termhive/internal/settings"
)

// profileNamespace seeds the name-based identifiers of profiles that declare
// none of their own. Deriving the identifier from the source namespace plus
// the profile name keeps it stable across loads.
var profileNamespace = uuid.MustParse("f65ddb7e-706b-4499-8a50-40313caf510a")

// GuidForProfile returns the stable generated identifier for a profile
// declared without one.
func GuidForProfile(source, name string) uuid.UUID {
	return uuid.NewSHA1(profileNamespace, []byte(source+name))
}

// parse deserializes one configuration source into a store. A source that is
// not a JSON object at the top level is a fatal error; individual fields of
// the wrong shape are silently left unset so that old and new builds can read
// each other's files.
func (l *Loader) parse(origin settings.Origin, source string, content []byte, into *ParsedSettings, updatesKeyAllowed bool) error {
	into.init()

	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 {
		return nil
	}

	var raw any
	if err := gojson.Unmarshal(trimmed, &raw); err != nil {
		return newParseError(source, trimmed, err)
	}
	if _, ok := raw.(map[string]any); !ok {
		return &ParseError{
			Code:   settings.LoadErrorInvalidStructure,
			Source: source,
			Err:    errors.New("top-level value must be an object"),
		}
	}

	root := gjson.ParseBytes(trimmed)

	l.parseGlobals(root, into)
	l.parseColorSchemes(root.Get("schemes"), into)
	l.parseActions(root.Get("actions"), into.Globals.Actions)

	profiles := root.Get("profiles")
	switch {
	case profiles.IsArray():
		l.parseProfileList(origin, source, profiles, into, updatesKeyAllowed)
	case profiles.IsObject():
		if defaults := profiles.Get("defaults"); defaults.IsObject() {
			into.BaseLayerProfile = l.parseProfile(settings.OriginProfilesDefaults, source, defaults, false)
		}
		if list := profiles.Get("list"); list.IsArray() {
			l.parseProfileList(origin, source, list, into, updatesKeyAllowed)
		}
	}

	return nil
}

func (l *Loader) parseProfileList(origin settings.Origin, source string, list gjson.Result, into *ParsedSettings, updatesKeyAllowed bool) {
	for _, entry := range list.Array() {
		if !entry.IsObject() {
			continue
		}
		p := l.parseProfile(origin, source, entry, updatesKeyAllowed)
		if p == nil {
			continue
		}
		if !into.Append(p) {
			l.duplicateProfile = true
		}
	}
}

// parseProfile reads one profile object field by field. A field of the wrong
// shape is left unset. A profile with neither a name nor an identifier is
// skipped entirely.
func (l *Loader) parseProfile(origin settings.Origin, source string, obj gjson.Result, updatesKeyAllowed bool) *settings.Profile {
	p := settings.NewProfile(origin)

	if guid, ok := jsonGUID(obj.Get("guid")); ok {
		p.SetGuid(guid)
	} else if updatesKeyAllowed {
		if guid, ok := jsonGUID(obj.Get("updates")); ok {
			p.SetGuid(guid)
		}
	}
	if v, ok := jsonString(obj.Get("name")); ok {
		p.SetName(v)
	}

	if origin != settings.OriginProfilesDefaults && !p.HasName() && !p.HasGuid() {
		return nil
	}
	if !p.HasGuid() && origin != settings.OriginProfilesDefaults {
		p.SetGuid(GuidForProfile(source, p.Name()))
	}
	if origin == settings.OriginFragment || origin == settings.OriginGenerated {
		p.SetSource(source)
	}

	if v, ok := jsonBool(obj.Get("hidden")); ok {
		p.SetHidden(v)
	}
	if v, ok := jsonString(obj.Get("icon")); ok {
		p.SetIcon(v)
	}
	if v, ok := jsonString(obj.Get("commandline")); ok {
		p.SetCommandline(v)
	}
	if v, ok := jsonString(obj.Get("startingDirectory")); ok {
		p.SetStartingDirectory(v)
	}
	if v, ok := jsonString(obj.Get("tabTitle")); ok {
		p.SetTabTitle(v)
	}
	if v, ok := jsonString(obj.Get("tabColor")); ok {
		p.SetTabColor(v)
	}
	if v, ok := jsonString(obj.Get("closeOnExit")); ok {
		if mode, valid := settings.ParseCloseOnExitMode(v); valid {
			p.SetCloseOnExit(mode)
		}
	}
	if v, ok := jsonBool(obj.Get("suppressApplicationTitle")); ok {
		p.SetSuppressApplicationTitle(v)
	}
	if v, ok := jsonBool(obj.Get("useAcrylic")); ok {
		p.SetUseAcrylic(v)
	}
	if v, ok := jsonString(obj.Get("padding")); ok {
		p.SetPadding(v)
	}
	if v, ok := jsonInt(obj.Get("historySize")); ok {
		p.SetHistorySize(v)
	}
	if v, ok := jsonBool(obj.Get("snapOnInput")); ok {
		p.SetSnapOnInput(v)
	}
	if v, ok := jsonBool(obj.Get("altGrAliasing")); ok {
		p.SetAltGrAliasing(v)
	}
	if style, ok := parseBellStyleValue(obj.Get("bellStyle")); ok {
		p.SetBellStyle(style)
	}
	if v, ok := jsonGUID(obj.Get("connectionType")); ok {
		p.SetConnectionType(v)
	}

	parseFontInto(p.FontInfo(), obj.Get("font"))
	parseAppearanceInto(p.DefaultAppearance(), obj)
	if unfocused := obj.Get("unfocusedAppearance"); unfocused.IsObject() {
		ua := settings.NewAppearanceConfig()
		p.SetUnfocusedAppearance(ua)
		parseAppearanceInto(ua, unfocused)
	}

	return p
}

func parseFontInto(f *settings.FontConfig, obj gjson.Result) {
	if !obj.IsObject() {
		return
	}
	if v, ok := jsonString(obj.Get("face")); ok {
		f.SetFontFace(v)
	}
	if v, ok := jsonFloat(obj.Get("size")); ok {
		f.SetFontSize(v)
	}
	if v, ok := jsonInt(obj.Get("weight")); ok {
		f.SetFontWeight(v)
	}
	if features := obj.Get("features"); features.IsArray() {
		var list []string
		valid := true
		for _, entry := range features.Array() {
			v, ok := jsonString(entry)
			if !ok {
				valid = false
				break
			}
			list = append(list, v)
		}
		if valid {
			f.SetFontFeatures(list)
		}
	}
}

// parseAppearanceInto reads the appearance fields from obj. Profile objects
// carry their default appearance fields inline, so obj is either a profile
// object or an unfocusedAppearance object.
func parseAppearanceInto(a *settings.AppearanceConfig, obj gjson.Result) {
	if v, ok := jsonString(obj.Get("colorScheme")); ok {
		a.SetColorSchemeName(v)
	}
	if v, ok := jsonString(obj.Get("foreground")); ok {
		a.SetForeground(v)
	}
	if v, ok := jsonString(obj.Get("background")); ok {
		a.SetBackground(v)
	}
	if v, ok := jsonString(obj.Get("cursorColor")); ok {
		a.SetCursorColor(v)
	}
	if v, ok := jsonString(obj.Get("cursorShape")); ok {
		if shape, valid := settings.ParseCursorShape(v); valid {
			a.SetCursorShape(shape)
		}
	}
	if v, ok := jsonFloat(obj.Get("opacity")); ok {
		a.SetOpacity(v)
	}
	if v, ok := jsonString(obj.Get("backgroundImage")); ok {
		a.SetBackgroundImagePath(v)
	}
	if v, ok := jsonFloat(obj.Get("backgroundImageOpacity")); ok {
		a.SetBackgroundImageOpacity(v)
	}
	// The dot is part of the key, not a path separator.
	if v, ok := jsonBool(obj.Get(`experimental\.retroTerminalEffect`)); ok {
		a.SetRetroTerminalEffect(v)
	}
}

func (l *Loader) parseGlobals(root gjson.Result, into *ParsedSettings) {
	g := into.Globals
	if guid, ok := jsonGUID(root.Get("defaultProfile")); ok {
		g.DefaultProfile = guid
	}
	if v, ok := jsonString(root.Get("theme")); ok {
		g.Theme = &v
	}
	if v, ok := jsonString(root.Get("language")); ok {
		g.Language = &v
	}
	if v, ok := jsonBool(root.Get("copyOnSelect")); ok {
		g.CopyOnSelect = &v
	}
	if v, ok := jsonBool(root.Get("copyFormatting")); ok {
		g.CopyFormatting = &v
	}
	if v, ok := jsonBool(root.Get("alwaysShowTabs")); ok {
		g.AlwaysShowTabs = &v
	}
	if v, ok := jsonInt(root.Get("initialRows")); ok {
		g.InitialRows = &v
	}
	if v, ok := jsonInt(root.Get("initialCols")); ok {
		g.InitialCols = &v
	}
	if sources := root.Get("disabledProfileSources"); sources.IsArray() {
		for _, entry := range sources.Array() {
			if v, ok := jsonString(entry); ok {
				g.DisabledProfileSources = append(g.DisabledProfileSources, v)
			}
		}
	}
	if deleted := root.Get("deletedProfiles"); deleted.IsArray() {
		for _, entry := range deleted.Array() {
			if guid, ok := jsonGUID(entry); ok {
				into.DeletedProfiles = append(into.DeletedProfiles, guid)
			}
		}
	}
}

func (l *Loader) parseColorSchemes(schemes gjson.Result, into *ParsedSettings) {
	if !schemes.IsArray() {
		return
	}
	for _, entry := range schemes.Array() {
		if !entry.IsObject() {
			continue
		}
		var scheme settings.ColorScheme
		if err := gojson.Unmarshal([]byte(entry.Raw), &scheme); err != nil {
			continue
		}
		if scheme.Name == "" {
			continue
		}
		into.Globals.AddColorScheme(&scheme)
	}
}

func (l *Loader) parseActions(actions gjson.Result, am *settings.ActionMap) {
	if !actions.IsArray() {
		return
	}
	for _, entry := range actions.Array() {
		if !entry.IsObject() {
			continue
		}
		if cmd := parseCommand(entry, am); cmd != nil {
			am.AddAction(cmd)
		}
	}
}

// parseCommand reads one action map entry: a leaf with an action, or a named
// group of nested commands. Returns nil when the entry is unusable; the
// reason is recorded as a keybinding warning on the action map.
func parseCommand(entry gjson.Result, am *settings.ActionMap) *settings.Command {
	cmd := &settings.Command{}
	if v, ok := jsonString(entry.Get("name")); ok {
		cmd.Name = v
	}
	if v, ok := jsonString(entry.Get("iterateOn")); ok {
		if scope, valid := settings.ParseIterateScope(v); valid {
			cmd.IterateOn = scope
		}
	}

	if nested := entry.Get("commands"); nested.IsArray() {
		cmd.NestedCommands = make(map[string]*settings.Command)
		for _, child := range nested.Array() {
			if !child.IsObject() {
				continue
			}
			if sub := parseCommand(child, am); sub != nil {
				cmd.NestedCommands[sub.DisplayName()] = sub
			}
		}
		if len(cmd.NestedCommands) == 0 {
			return nil
		}
		return cmd
	}

	action := entry.Get("command")
	switch {
	case action.Type == gjson.String:
		cmd.ActionAndArgs = &settings.ActionAndArgs{Action: settings.ActionID(action.Str)}
	case action.IsObject():
		id, ok := jsonString(action.Get("action"))
		if !ok {
			am.AddWarning(settings.WarningUnknownAction)
			return nil
		}
		var args settings.ActionArgs
		if err := gojson.Unmarshal([]byte(action.Raw), &args); err != nil {
			am.AddWarning(settings.WarningMissingRequiredParameter)
			return nil
		}
		cmd.ActionAndArgs = &settings.ActionAndArgs{Action: settings.ActionID(id), Args: args}
	default:
		return nil
	}

	if err := cmd.ActionAndArgs.Validate(); err != nil {
		if settings.IsKnownAction(cmd.ActionAndArgs.Action) {
			am.AddWarning(settings.WarningMissingRequiredParameter)
		} else {
			am.AddWarning(settings.WarningUnknownAction)
		}
		return nil
	}

	keys := entry.Get("keys")
	var chordStrings []string
	switch {
	case keys.Type == gjson.String:
		chordStrings = append(chordStrings, keys.Str)
	case keys.IsArray():
		for _, k := range keys.Array() {
			if v, ok := jsonString(k); ok {
				chordStrings = append(chordStrings, v)
			}
		}
	}
	for _, raw := range chordStrings {
		chord, err := settings.ParseKeyChord(raw)
		if err != nil {
			am.AddWarning(settings.WarningInvalidKeyChord)
			continue
		}
		cmd.Keys = append(cmd.Keys, chord)
	}

	return cmd
}

func parseBellStyleValue(v gjson.Result) (settings.BellStyle, bool) {
	switch {
	case v.Type == gjson.String:
		return settings.ParseBellStyle(v.Str)
	case v.IsArray():
		var style settings.BellStyle
		for _, entry := range v.Array() {
			s, ok := jsonString(entry)
			if !ok {
				return 0, false
			}
			part, valid := settings.ParseBellStyle(s)
			if !valid {
				return 0, false
			}
			style |= part
		}
		return style, true
	default:
		return 0, false
	}
}

func jsonString(v gjson.Result) (string, bool) {
	if v.Type == gjson.String {
		return v.Str, true
	}
	return "", false
}

func jsonBool(v gjson.Result) (bool, bool) {
	switch v.Type {
	case gjson.True:
		return true, true
	case gjson.False:
		return false, true
	default:
		return false, false
	}
}

func jsonInt(v gjson.Result) (int, bool) {
	if v.Type != gjson.Number {
		return 0, false
	}
	f := v.Float()
	n := int(f)
	if float64(n) != f {
		return 0, false
	}
	return n, true
}

func jsonFloat(v gjson.Result) (float64, bool) {
	if v.Type != gjson.Number {
		return 0, false
	}
	return v.Float(), true
}

func jsonGUID(v gjson.Result) (uuid.UUID, bool) {
	s, ok := jsonString(v)
	if !ok {
		return uuid.Nil, false
	}
	guid, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, false
	}
	return guid, true
}
