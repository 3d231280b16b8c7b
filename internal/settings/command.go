package settings

import (
	"fmt"
	"sort"
	"strings"
)

// ActionID names an action the terminal can dispatch.
type ActionID string

const (
	ActionCopy           ActionID = "copy"
	ActionPaste          ActionID = "paste"
	ActionNewTab         ActionID = "newTab"
	ActionCloseTab       ActionID = "closeTab"
	ActionSplitPane      ActionID = "splitPane"
	ActionClosePane      ActionID = "closePane"
	ActionSendInput      ActionID = "sendInput"
	ActionSetColorScheme ActionID = "setColorScheme"
	ActionOpenSettings   ActionID = "openSettings"
	ActionFind           ActionID = "find"
	ActionAdjustFontSize ActionID = "adjustFontSize"
)

var knownActions = map[ActionID]struct{}{
	ActionCopy: {}, ActionPaste: {}, ActionNewTab: {}, ActionCloseTab: {},
	ActionSplitPane: {}, ActionClosePane: {}, ActionSendInput: {},
	ActionSetColorScheme: {}, ActionOpenSettings: {}, ActionFind: {},
	ActionAdjustFontSize: {},
}

// IsKnownAction reports whether id names an action this build understands.
func IsKnownAction(id ActionID) bool {
	_, ok := knownActions[id]
	return ok
}

// ActionArgs carries the argument bag of an action. Only the fields
// meaningful for the action's kind are used.
type ActionArgs struct {
	Profile     string `json:"profile,omitempty"`
	Index       *int   `json:"index,omitempty"`
	Commandline string `json:"commandline,omitempty"`
	Input       string `json:"input,omitempty"`
	SchemeName  string `json:"colorScheme,omitempty"`
	Delta       int    `json:"delta,omitempty"`
	SingleLine  bool   `json:"singleLine,omitempty"`
	Split       string `json:"split,omitempty"`
}

// ActionAndArgs pairs an action with its arguments.
type ActionAndArgs struct {
	Action ActionID
	Args   ActionArgs
}

// Validate checks that every argument the action kind requires is present.
func (a *ActionAndArgs) Validate() error {
	if _, ok := knownActions[a.Action]; !ok {
		return fmt.Errorf("unknown action %q", a.Action)
	}
	switch a.Action {
	case ActionSendInput:
		if a.Args.Input == "" {
			return fmt.Errorf("action %q requires an input argument", a.Action)
		}
	case ActionSetColorScheme:
		if a.Args.SchemeName == "" {
			return fmt.Errorf("action %q requires a colorScheme argument", a.Action)
		}
	}
	return nil
}

// IterateScope marks a command template that is expanded over a collection
// when the UI builds its menus.
type IterateScope uint8

const (
	IterateNone IterateScope = iota
	IterateProfiles
	IterateColorSchemes
)

// ParseIterateScope maps the serialized form to a scope.
func ParseIterateScope(s string) (IterateScope, bool) {
	switch s {
	case "":
		return IterateNone, true
	case "profiles":
		return IterateProfiles, true
	case "schemes":
		return IterateColorSchemes, true
	default:
		return IterateNone, false
	}
}

// Command is one entry of the action map: either a leaf with an action, or a
// named group holding nested commands.
type Command struct {
	Name           string
	ActionAndArgs  *ActionAndArgs
	Keys           []KeyChord
	NestedCommands map[string]*Command
	IterateOn      IterateScope
}

// HasNestedCommands reports whether the command is a group.
func (c *Command) HasNestedCommands() bool { return len(c.NestedCommands) > 0 }

// DisplayName returns the command's explicit name, or a name derived from its
// action.
func (c *Command) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	if c.ActionAndArgs != nil {
		return string(c.ActionAndArgs.Action)
	}
	return ""
}

// KeyChord is a parsed key binding: a modifier set plus one key.
type KeyChord struct {
	Modifiers ModifierKeys
	Key       string
}

// ModifierKeys is a bit set of chord modifiers.
type ModifierKeys uint8

const (
	ModifierCtrl ModifierKeys = 1 << iota
	ModifierShift
	ModifierAlt
	ModifierWin
)

// String renders the chord in its serialized "ctrl+shift+x" form.
func (k KeyChord) String() string {
	var parts []string
	if k.Modifiers&ModifierCtrl != 0 {
		parts = append(parts, "ctrl")
	}
	if k.Modifiers&ModifierShift != 0 {
		parts = append(parts, "shift")
	}
	if k.Modifiers&ModifierAlt != 0 {
		parts = append(parts, "alt")
	}
	if k.Modifiers&ModifierWin != 0 {
		parts = append(parts, "win")
	}
	parts = append(parts, k.Key)
	return strings.Join(parts, "+")
}

// ParseKeyChord parses the serialized "ctrl+shift+x" chord syntax. Every
// token but the last must be a modifier; the last token is the key.
func ParseKeyChord(s string) (KeyChord, error) {
	tokens := strings.Split(s, "+")
	var chord KeyChord
	for i, tok := range tokens {
		tok = strings.TrimSpace(strings.ToLower(tok))
		last := i == len(tokens)-1
		switch tok {
		case "ctrl", "control":
			chord.Modifiers |= ModifierCtrl
		case "shift":
			chord.Modifiers |= ModifierShift
		case "alt":
			chord.Modifiers |= ModifierAlt
		case "win", "super":
			chord.Modifiers |= ModifierWin
		default:
			if !last {
				return KeyChord{}, fmt.Errorf("invalid key chord %q: %q is not a modifier", s, tok)
			}
			if tok == "" {
				return KeyChord{}, fmt.Errorf("invalid key chord %q: missing key", s)
			}
			chord.Key = tok
		}
	}
	if chord.Key == "" {
		return KeyChord{}, fmt.Errorf("invalid key chord %q: missing key", s)
	}
	return chord, nil
}

// ActionMap holds the commands of one settings layer keyed by display name,
// plus the key chord to command bindings. Warnings collected while the map is
// built (bad chord syntax, missing arguments) are kept for the validator to
// surface.
type ActionMap struct {
	commands    map[string]*Command
	keyBindings map[string]*Command
	warnings    []Warning
}

// NewActionMap creates an empty action map.
func NewActionMap() *ActionMap {
	return &ActionMap{
		commands:    make(map[string]*Command),
		keyBindings: make(map[string]*Command),
	}
}

// AddAction inserts a command, replacing any previous command with the same
// display name, and binds its key chords. Later layers call AddAction after
// earlier ones, so user entries shadow inbox entries.
func (m *ActionMap) AddAction(cmd *Command) {
	if name := cmd.DisplayName(); name != "" {
		m.commands[name] = cmd
	}
	for _, chord := range cmd.Keys {
		m.keyBindings[chord.String()] = cmd
	}
}

// AddWarning records a construction warning.
func (m *ActionMap) AddWarning(w Warning) {
	m.warnings = append(m.warnings, w)
}

// Warnings returns the warnings collected while the map was built.
func (m *ActionMap) Warnings() []Warning { return m.warnings }

// Command looks up a command by display name.
func (m *ActionMap) Command(name string) (*Command, bool) {
	cmd, ok := m.commands[name]
	return cmd, ok
}

// CommandForChord looks up the command bound to a key chord.
func (m *ActionMap) CommandForChord(chord KeyChord) (*Command, bool) {
	cmd, ok := m.keyBindings[chord.String()]
	return cmd, ok
}

// NameMap returns the commands keyed by display name. The returned map is
// shared; callers must not mutate it.
func (m *ActionMap) NameMap() map[string]*Command { return m.commands }

// Names returns the command display names in sorted order.
func (m *ActionMap) Names() []string {
	names := make([]string, 0, len(m.commands))
	for name := range m.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Copy returns a shallow copy of the map: commands are shared, the index
// structures and warning list are independent.
func (m *ActionMap) Copy() *ActionMap {
	clone := NewActionMap()
	for name, cmd := range m.commands {
		clone.commands[name] = cmd
	}
	for chord, cmd := range m.keyBindings {
		clone.keyBindings[chord] = cmd
	}
	clone.warnings = append([]Warning(nil), m.warnings...)
	return clone
}

// MergeActionMaps layers overlay on top of base: overlay commands replace
// base commands with the same name or chord, and warnings from both layers
// are kept.
func MergeActionMaps(base, overlay *ActionMap) *ActionMap {
	merged := NewActionMap()
	if base != nil {
		for name, cmd := range base.commands {
			merged.commands[name] = cmd
		}
		for chord, cmd := range base.keyBindings {
			merged.keyBindings[chord] = cmd
		}
		merged.warnings = append(merged.warnings, base.warnings...)
	}
	if overlay != nil {
		for _, name := range overlay.Names() {
			merged.commands[name] = overlay.commands[name]
		}
		for chord, cmd := range overlay.keyBindings {
			merged.keyBindings[chord] = cmd
		}
		merged.warnings = append(merged.warnings, overlay.warnings...)
	}
	return merged
}
