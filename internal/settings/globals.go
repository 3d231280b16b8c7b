package settings

import (
	"github.com/google/uuid"
)

// GlobalSettings holds application-wide configuration: the default profile,
// appearance-independent options, the named color scheme table and the action
// map. Scalar options are pointers so a layer merge can distinguish "unset"
// from an explicit zero value.
type GlobalSettings struct {
	DefaultProfile         uuid.UUID
	Theme                  *string
	Language               *string
	CopyOnSelect           *bool
	CopyFormatting         *bool
	AlwaysShowTabs         *bool
	InitialRows            *int
	InitialCols            *int
	DisabledProfileSources []string

	ColorSchemes map[string]*ColorScheme
	Actions      *ActionMap
}

// NewGlobalSettings creates empty global settings.
func NewGlobalSettings() *GlobalSettings {
	return &GlobalSettings{
		ColorSchemes: make(map[string]*ColorScheme),
		Actions:      NewActionMap(),
	}
}

// ActionMap returns the merged action/keybinding map.
func (g *GlobalSettings) ActionMap() *ActionMap { return g.Actions }

// ColorScheme looks up a scheme by name.
func (g *GlobalSettings) ColorScheme(name string) (*ColorScheme, bool) {
	scheme, ok := g.ColorSchemes[name]
	return scheme, ok
}

// AddColorScheme inserts a scheme, replacing any scheme with the same name.
func (g *GlobalSettings) AddColorScheme(scheme *ColorScheme) {
	g.ColorSchemes[scheme.Name] = scheme
}

// Copy returns a copy of the global settings. Schemes are cloned; commands
// inside the action map are shared (they are not mutated after finalization).
func (g *GlobalSettings) Copy() *GlobalSettings {
	clone := &GlobalSettings{
		DefaultProfile:         g.DefaultProfile,
		Theme:                  clonePtr(g.Theme),
		Language:               clonePtr(g.Language),
		CopyOnSelect:           clonePtr(g.CopyOnSelect),
		CopyFormatting:         clonePtr(g.CopyFormatting),
		AlwaysShowTabs:         clonePtr(g.AlwaysShowTabs),
		InitialRows:            clonePtr(g.InitialRows),
		InitialCols:            clonePtr(g.InitialCols),
		DisabledProfileSources: append([]string(nil), g.DisabledProfileSources...),
		ColorSchemes:           make(map[string]*ColorScheme, len(g.ColorSchemes)),
		Actions:                g.Actions.Copy(),
	}
	for name, scheme := range g.ColorSchemes {
		clone.ColorSchemes[name] = scheme.Copy()
	}
	return clone
}

// SchemeNames returns the set of known scheme names.
func (g *GlobalSettings) SchemeNames() map[string]struct{} {
	names := make(map[string]struct{}, len(g.ColorSchemes))
	for name := range g.ColorSchemes {
		names[name] = struct{}{}
	}
	return names
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
