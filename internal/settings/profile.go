// Package settings implements the layered settings model for termhive: the
// profile inheritance graph, the global application settings, the finalized
// settings object with its query and mutation surface, structural validation,
// and the command-line-to-profile resolver.
//
// Profiles form a directed acyclic graph. Each node carries only the property
// values its configuration source explicitly set; everything else resolves by
// a depth-first walk over the node's ordered parent list. Many profiles share
// the same parent nodes (the base layer profile is a parent of nearly every
// profile), so cloning must preserve that sharing topology.
package settings

import (
	"github.com/google/uuid"
)

// CloseOnExitMode controls when a pane closes after its process exits.
type CloseOnExitMode uint8

const (
	CloseOnExitGraceful CloseOnExitMode = iota
	CloseOnExitAlways
	CloseOnExitNever
	CloseOnExitAutomatic
)

// ParseCloseOnExitMode maps the serialized form to a mode. The second return
// is false for unrecognized input.
func ParseCloseOnExitMode(s string) (CloseOnExitMode, bool) {
	switch s {
	case "graceful":
		return CloseOnExitGraceful, true
	case "always":
		return CloseOnExitAlways, true
	case "never":
		return CloseOnExitNever, true
	case "automatic":
		return CloseOnExitAutomatic, true
	default:
		return CloseOnExitGraceful, false
	}
}

// BellStyle is a bit set of bell notification styles.
type BellStyle uint8

const (
	BellStyleNone     BellStyle = 0
	BellStyleAudible  BellStyle = 1 << 0
	BellStyleWindow   BellStyle = 1 << 1
	BellStyleTaskbar  BellStyle = 1 << 2
	BellStyleAll                = BellStyleAudible | BellStyleWindow | BellStyleTaskbar
)

// ParseBellStyle maps a single serialized token to a style. The second return
// is false for unrecognized input.
func ParseBellStyle(s string) (BellStyle, bool) {
	switch s {
	case "none":
		return BellStyleNone, true
	case "audible":
		return BellStyleAudible, true
	case "window":
		return BellStyleWindow, true
	case "taskbar":
		return BellStyleTaskbar, true
	case "all":
		return BellStyleAll, true
	default:
		return BellStyleNone, false
	}
}

// Profile is one named terminal configuration unit. A profile carries its own
// explicitly-set property values plus an ordered list of parent profiles it
// inherits everything else from. Parents are shared by reference: mutating a
// parent is visible through every child.
type Profile struct {
	origin  Origin
	parents []*Profile

	guid   Setting[uuid.UUID]
	name   Setting[string]
	hidden Setting[bool]
	source Setting[string]

	icon                     Setting[string]
	commandline              Setting[string]
	startingDirectory        Setting[string]
	tabTitle                 Setting[string]
	tabColor                 Setting[string]
	closeOnExit              Setting[CloseOnExitMode]
	suppressApplicationTitle Setting[bool]
	useAcrylic               Setting[bool]
	padding                  Setting[string]
	historySize              Setting[int]
	snapOnInput              Setting[bool]
	altGrAliasing            Setting[bool]
	bellStyle                Setting[BellStyle]
	connectionType           Setting[uuid.UUID]

	font                *FontConfig
	defaultAppearance   *AppearanceConfig
	unfocusedAppearance *AppearanceConfig // nil when not set on this node
}

// NewProfile creates an empty profile node with the given origin.
func NewProfile(origin Origin) *Profile {
	p := &Profile{origin: origin}
	p.font = &FontConfig{profile: p}
	p.defaultAppearance = &AppearanceConfig{profile: p}
	return p
}

// CreateChild constructs a user-layer child of parent. The child snapshots the
// parent's identifier, name and hidden flag, and inherits every leaf property
// through the parent link; no leaf values are copied.
func CreateChild(parent *Profile) *Profile {
	p := NewProfile(OriginUser)
	p.guid.Set(parent.Guid())
	p.name.Set(parent.Name())
	p.hidden.Set(parent.Hidden())
	p.InsertParent(parent)
	return p
}

// Origin returns the configuration layer this node came from.
func (p *Profile) Origin() Origin { return p.origin }

// Parents returns the node's parent list in declaration order. The slice is
// shared; callers must not mutate it.
func (p *Profile) Parents() []*Profile { return p.parents }

// InsertParent appends a parent at the end of the parent list, giving it the
// lowest precedence of all current parents.
func (p *Profile) InsertParent(parent *Profile) {
	p.parents = append(p.parents, parent)
}

// InsertParentAt inserts a parent at position i of the parent list. Position 0
// gives the parent the highest precedence after the node's own values.
func (p *Profile) InsertParentAt(i int, parent *Profile) {
	if i < 0 {
		i = 0
	}
	if i >= len(p.parents) {
		p.parents = append(p.parents, parent)
		return
	}
	p.parents = append(p.parents[:i], append([]*Profile{parent}, p.parents[i:]...)...)
}

// firstSet finds the nearest node carrying a value for the picked setting:
// the node itself first, then each parent subtree in declaration order.
// Returns nils if no node in the ancestry has the setting.
func firstSet[T any](p *Profile, pick func(*Profile) *Setting[T]) (*Profile, *Setting[T]) {
	if s := pick(p); s.IsSet() {
		return p, s
	}
	for _, parent := range p.parents {
		if src, s := firstSet(parent, pick); src != nil {
			return src, s
		}
	}
	return nil, nil
}

// effective resolves the picked setting through the inheritance chain,
// falling back to def.
func effective[T any](p *Profile, pick func(*Profile) *Setting[T], def T) T {
	if _, s := firstSet(p, pick); s != nil {
		return s.Value()
	}
	return def
}

// overrideSource reports the origin of the node that supplies the picked
// setting's effective value, or OriginNone when it is unset everywhere.
func overrideSource[T any](p *Profile, pick func(*Profile) *Setting[T]) Origin {
	if src, _ := firstSet(p, pick); src != nil {
		return src.origin
	}
	return OriginNone
}

// clearSource clears the picked setting on whichever node in the ancestry
// supplies its effective value. Used by validation to neutralize invalid
// values in place; clearing a shared parent fixes every child at once.
func clearSource[T any](p *Profile, pick func(*Profile) *Setting[T]) {
	if _, s := firstSet(p, pick); s != nil {
		s.Clear()
	}
}

func pickGuid(p *Profile) *Setting[uuid.UUID]   { return &p.guid }
func pickName(p *Profile) *Setting[string]      { return &p.name }
func pickHidden(p *Profile) *Setting[bool]      { return &p.hidden }
func pickSource(p *Profile) *Setting[string]    { return &p.source }
func pickIcon(p *Profile) *Setting[string]      { return &p.icon }
func pickCommandline(p *Profile) *Setting[string] {
	return &p.commandline
}
func pickStartingDirectory(p *Profile) *Setting[string] { return &p.startingDirectory }
func pickTabTitle(p *Profile) *Setting[string]          { return &p.tabTitle }
func pickTabColor(p *Profile) *Setting[string]          { return &p.tabColor }
func pickCloseOnExit(p *Profile) *Setting[CloseOnExitMode] {
	return &p.closeOnExit
}
func pickSuppressApplicationTitle(p *Profile) *Setting[bool] { return &p.suppressApplicationTitle }
func pickUseAcrylic(p *Profile) *Setting[bool]               { return &p.useAcrylic }
func pickPadding(p *Profile) *Setting[string]                { return &p.padding }
func pickHistorySize(p *Profile) *Setting[int]               { return &p.historySize }
func pickSnapOnInput(p *Profile) *Setting[bool]              { return &p.snapOnInput }
func pickAltGrAliasing(p *Profile) *Setting[bool]            { return &p.altGrAliasing }
func pickBellStyle(p *Profile) *Setting[BellStyle]           { return &p.bellStyle }
func pickConnectionType(p *Profile) *Setting[uuid.UUID]      { return &p.connectionType }

// Guid returns the profile's effective identifier.
func (p *Profile) Guid() uuid.UUID        { return effective(p, pickGuid, uuid.Nil) }
func (p *Profile) HasGuid() bool          { return p.guid.IsSet() }
func (p *Profile) SetGuid(v uuid.UUID)    { p.guid.Set(v) }

// Name returns the profile's effective display name.
func (p *Profile) Name() string           { return effective(p, pickName, "Default") }
func (p *Profile) HasName() bool          { return p.name.IsSet() }
func (p *Profile) SetName(v string)       { p.name.Set(v) }

// Hidden reports whether the profile is excluded from the active launch list.
// Hidden profiles are still resolvable by identifier.
func (p *Profile) Hidden() bool           { return effective(p, pickHidden, false) }
func (p *Profile) HasHidden() bool        { return p.hidden.IsSet() }
func (p *Profile) SetHidden(v bool)       { p.hidden.Set(v) }

// Source returns the namespace of the fragment or generator that contributed
// the profile, or "" for inbox and user profiles.
func (p *Profile) Source() string         { return effective(p, pickSource, "") }
func (p *Profile) HasSource() bool        { return p.source.IsSet() }
func (p *Profile) SetSource(v string)     { p.source.Set(v) }

func (p *Profile) Icon() string           { return effective(p, pickIcon, "") }
func (p *Profile) HasIcon() bool          { return p.icon.IsSet() }
func (p *Profile) SetIcon(v string)       { p.icon.Set(v) }
func (p *Profile) ClearIcon()             { clearSource(p, pickIcon) }
func (p *Profile) IconOverrideSource() Origin { return overrideSource(p, pickIcon) }

// Commandline returns the effective launch command line.
func (p *Profile) Commandline() string     { return effective(p, pickCommandline, "") }
func (p *Profile) HasCommandline() bool    { return p.commandline.IsSet() }
func (p *Profile) SetCommandline(v string) { p.commandline.Set(v) }
func (p *Profile) CommandlineOverrideSource() Origin {
	return overrideSource(p, pickCommandline)
}

func (p *Profile) StartingDirectory() string     { return effective(p, pickStartingDirectory, "") }
func (p *Profile) HasStartingDirectory() bool    { return p.startingDirectory.IsSet() }
func (p *Profile) SetStartingDirectory(v string) { p.startingDirectory.Set(v) }
func (p *Profile) StartingDirectoryOverrideSource() Origin {
	return overrideSource(p, pickStartingDirectory)
}

func (p *Profile) TabTitle() string     { return effective(p, pickTabTitle, "") }
func (p *Profile) HasTabTitle() bool    { return p.tabTitle.IsSet() }
func (p *Profile) SetTabTitle(v string) { p.tabTitle.Set(v) }
func (p *Profile) TabTitleOverrideSource() Origin { return overrideSource(p, pickTabTitle) }

func (p *Profile) TabColor() string     { return effective(p, pickTabColor, "") }
func (p *Profile) HasTabColor() bool    { return p.tabColor.IsSet() }
func (p *Profile) SetTabColor(v string) { p.tabColor.Set(v) }
func (p *Profile) TabColorOverrideSource() Origin { return overrideSource(p, pickTabColor) }

func (p *Profile) CloseOnExit() CloseOnExitMode {
	return effective(p, pickCloseOnExit, CloseOnExitGraceful)
}
func (p *Profile) HasCloseOnExit() bool             { return p.closeOnExit.IsSet() }
func (p *Profile) SetCloseOnExit(v CloseOnExitMode) { p.closeOnExit.Set(v) }
func (p *Profile) CloseOnExitOverrideSource() Origin {
	return overrideSource(p, pickCloseOnExit)
}

func (p *Profile) SuppressApplicationTitle() bool {
	return effective(p, pickSuppressApplicationTitle, false)
}
func (p *Profile) HasSuppressApplicationTitle() bool    { return p.suppressApplicationTitle.IsSet() }
func (p *Profile) SetSuppressApplicationTitle(v bool)   { p.suppressApplicationTitle.Set(v) }
func (p *Profile) SuppressApplicationTitleOverrideSource() Origin {
	return overrideSource(p, pickSuppressApplicationTitle)
}

func (p *Profile) UseAcrylic() bool     { return effective(p, pickUseAcrylic, false) }
func (p *Profile) HasUseAcrylic() bool  { return p.useAcrylic.IsSet() }
func (p *Profile) SetUseAcrylic(v bool) { p.useAcrylic.Set(v) }
func (p *Profile) UseAcrylicOverrideSource() Origin { return overrideSource(p, pickUseAcrylic) }

func (p *Profile) Padding() string     { return effective(p, pickPadding, "8, 8, 8, 8") }
func (p *Profile) HasPadding() bool    { return p.padding.IsSet() }
func (p *Profile) SetPadding(v string) { p.padding.Set(v) }
func (p *Profile) PaddingOverrideSource() Origin { return overrideSource(p, pickPadding) }

func (p *Profile) HistorySize() int     { return effective(p, pickHistorySize, 9001) }
func (p *Profile) HasHistorySize() bool { return p.historySize.IsSet() }
func (p *Profile) SetHistorySize(v int) { p.historySize.Set(v) }
func (p *Profile) HistorySizeOverrideSource() Origin {
	return overrideSource(p, pickHistorySize)
}

func (p *Profile) SnapOnInput() bool     { return effective(p, pickSnapOnInput, true) }
func (p *Profile) HasSnapOnInput() bool  { return p.snapOnInput.IsSet() }
func (p *Profile) SetSnapOnInput(v bool) { p.snapOnInput.Set(v) }
func (p *Profile) SnapOnInputOverrideSource() Origin {
	return overrideSource(p, pickSnapOnInput)
}

func (p *Profile) AltGrAliasing() bool     { return effective(p, pickAltGrAliasing, true) }
func (p *Profile) HasAltGrAliasing() bool  { return p.altGrAliasing.IsSet() }
func (p *Profile) SetAltGrAliasing(v bool) { p.altGrAliasing.Set(v) }
func (p *Profile) AltGrAliasingOverrideSource() Origin {
	return overrideSource(p, pickAltGrAliasing)
}

func (p *Profile) BellStyle() BellStyle     { return effective(p, pickBellStyle, BellStyleAudible) }
func (p *Profile) HasBellStyle() bool       { return p.bellStyle.IsSet() }
func (p *Profile) SetBellStyle(v BellStyle) { p.bellStyle.Set(v) }
func (p *Profile) BellStyleOverrideSource() Origin { return overrideSource(p, pickBellStyle) }

func (p *Profile) ConnectionType() uuid.UUID     { return effective(p, pickConnectionType, uuid.Nil) }
func (p *Profile) HasConnectionType() bool       { return p.connectionType.IsSet() }
func (p *Profile) SetConnectionType(v uuid.UUID) { p.connectionType.Set(v) }

// FontInfo returns the profile's font sub-object. The sub-object resolves its
// own properties through the owning profile's parent chain.
func (p *Profile) FontInfo() *FontConfig { return p.font }

// DefaultAppearance returns the profile's primary appearance sub-object.
func (p *Profile) DefaultAppearance() *AppearanceConfig { return p.defaultAppearance }

// UnfocusedAppearance returns the nearest unfocused appearance in the
// inheritance chain, or nil when no ancestor sets one.
func (p *Profile) UnfocusedAppearance() *AppearanceConfig {
	if p.unfocusedAppearance != nil {
		return p.unfocusedAppearance
	}
	for _, parent := range p.parents {
		if a := parent.UnfocusedAppearance(); a != nil {
			return a
		}
	}
	return nil
}

// HasUnfocusedAppearance reports whether this node itself carries an
// unfocused appearance.
func (p *Profile) HasUnfocusedAppearance() bool { return p.unfocusedAppearance != nil }

// SetUnfocusedAppearance installs an unfocused appearance on this node. The
// profile's default appearance is inserted as its fallback so unset values
// resolve there first.
func (p *Profile) SetUnfocusedAppearance(a *AppearanceConfig) {
	a.profile = p
	a.fallback = p.defaultAppearance
	p.unfocusedAppearance = a
}

// UnfocusedAppearanceOverrideSource reports the origin of the ancestor that
// supplies the effective unfocused appearance.
func (p *Profile) UnfocusedAppearanceOverrideSource() Origin {
	if p.unfocusedAppearance != nil {
		return p.origin
	}
	for _, parent := range p.parents {
		if o := parent.UnfocusedAppearanceOverrideSource(); o != OriginNone {
			return o
		}
	}
	return OriginNone
}

// CopyInheritanceGraph deep-clones the profile and its entire ancestry.
// The caller supplies the memoization map from source node to clone; a node
// reachable through multiple paths is cloned exactly once and the clone's
// graph keeps the source's sharing topology. Pass the same map across several
// roots to preserve sharing across the whole batch.
func (p *Profile) CopyInheritanceGraph(visited map[*Profile]*Profile) *Profile {
	if clone, ok := visited[p]; ok {
		return clone
	}

	clone := &Profile{}
	*clone = *p
	clone.parents = nil

	font := *p.font
	font.profile = clone
	clone.font = &font

	da := *p.defaultAppearance
	da.profile = clone
	da.fallback = nil
	clone.defaultAppearance = &da

	if p.unfocusedAppearance != nil {
		ua := *p.unfocusedAppearance
		ua.profile = clone
		ua.fallback = clone.defaultAppearance
		clone.unfocusedAppearance = &ua
	}

	// Register the clone before descending so shared sub-graphs terminate
	// on the memo map.
	visited[p] = clone

	for _, parent := range p.parents {
		clone.parents = append(clone.parents, parent.CopyInheritanceGraph(visited))
	}
	return clone
}

// CopyInheritanceGraphs clones every profile in sources through a shared
// memoization map, preserving sharing across the whole set.
func CopyInheritanceGraphs(visited map[*Profile]*Profile, sources []*Profile) []*Profile {
	targets := make([]*Profile, 0, len(sources))
	for _, p := range sources {
		targets = append(targets, p.CopyInheritanceGraph(visited))
	}
	return targets
}
