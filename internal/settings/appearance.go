package settings

// CursorShape selects the cursor glyph.
type CursorShape uint8

const (
	CursorShapeBar CursorShape = iota
	CursorShapeVintage
	CursorShapeUnderscore
	CursorShapeFilledBox
	CursorShapeEmptyBox
	CursorShapeDoubleUnderscore
)

// ParseCursorShape maps the serialized form to a shape. The second return is
// false for unrecognized input.
func ParseCursorShape(s string) (CursorShape, bool) {
	switch s {
	case "bar":
		return CursorShapeBar, true
	case "vintage":
		return CursorShapeVintage, true
	case "underscore":
		return CursorShapeUnderscore, true
	case "filledBox":
		return CursorShapeFilledBox, true
	case "emptyBox":
		return CursorShapeEmptyBox, true
	case "doubleUnderscore":
		return CursorShapeDoubleUnderscore, true
	default:
		return CursorShapeBar, false
	}
}

// AppearanceConfig is the inheritable appearance sub-object of a profile.
// An appearance resolves unset properties through its fallback appearance
// first (an unfocused appearance falls back to the same profile's default
// appearance), then through the default appearances of the owning profile's
// parents, mirroring the profile's own inheritance order.
type AppearanceConfig struct {
	profile  *Profile
	fallback *AppearanceConfig

	colorSchemeName        Setting[string]
	foreground             Setting[string]
	background             Setting[string]
	cursorColor            Setting[string]
	cursorShape            Setting[CursorShape]
	opacity                Setting[float64]
	backgroundImagePath    Setting[string]
	backgroundImageOpacity Setting[float64]
	retroTerminalEffect    Setting[bool]
}

// NewAppearanceConfig creates a detached appearance. It is attached to a
// profile via Profile.SetUnfocusedAppearance.
func NewAppearanceConfig() *AppearanceConfig {
	return &AppearanceConfig{}
}

// SourceProfile returns the profile owning this appearance node.
func (a *AppearanceConfig) SourceProfile() *Profile { return a.profile }

func appearanceFirstSet[T any](a *AppearanceConfig, pick func(*AppearanceConfig) *Setting[T]) (*AppearanceConfig, *Setting[T]) {
	if s := pick(a); s.IsSet() {
		return a, s
	}
	if a.fallback != nil {
		if src, s := appearanceFirstSet(a.fallback, pick); src != nil {
			return src, s
		}
	}
	if a.profile != nil {
		for _, parent := range a.profile.parents {
			if src, s := appearanceFirstSet(parent.defaultAppearance, pick); src != nil {
				return src, s
			}
		}
	}
	return nil, nil
}

func appearanceEffective[T any](a *AppearanceConfig, pick func(*AppearanceConfig) *Setting[T], def T) T {
	if _, s := appearanceFirstSet(a, pick); s != nil {
		return s.Value()
	}
	return def
}

func appearanceOverrideSource[T any](a *AppearanceConfig, pick func(*AppearanceConfig) *Setting[T]) Origin {
	if src, _ := appearanceFirstSet(a, pick); src != nil && src.profile != nil {
		return src.profile.origin
	}
	return OriginNone
}

func appearanceClearSource[T any](a *AppearanceConfig, pick func(*AppearanceConfig) *Setting[T]) {
	if _, s := appearanceFirstSet(a, pick); s != nil {
		s.Clear()
	}
}

func pickColorSchemeName(a *AppearanceConfig) *Setting[string] { return &a.colorSchemeName }
func pickForeground(a *AppearanceConfig) *Setting[string]      { return &a.foreground }
func pickBackground(a *AppearanceConfig) *Setting[string]      { return &a.background }
func pickCursorColor(a *AppearanceConfig) *Setting[string]     { return &a.cursorColor }
func pickCursorShape(a *AppearanceConfig) *Setting[CursorShape] {
	return &a.cursorShape
}
func pickOpacity(a *AppearanceConfig) *Setting[float64] { return &a.opacity }
func pickBackgroundImagePath(a *AppearanceConfig) *Setting[string] {
	return &a.backgroundImagePath
}
func pickBackgroundImageOpacity(a *AppearanceConfig) *Setting[float64] {
	return &a.backgroundImageOpacity
}
func pickRetroTerminalEffect(a *AppearanceConfig) *Setting[bool] { return &a.retroTerminalEffect }

// ColorSchemeName returns the name of the color scheme the appearance
// references, or the default scheme name when unset.
func (a *AppearanceConfig) ColorSchemeName() string {
	return appearanceEffective(a, pickColorSchemeName, DefaultColorSchemeName)
}
func (a *AppearanceConfig) HasColorSchemeName() bool    { return a.colorSchemeName.IsSet() }
func (a *AppearanceConfig) SetColorSchemeName(v string) { a.colorSchemeName.Set(v) }

// ClearColorSchemeName clears the scheme reference on whichever node supplies
// it, letting the appearance fall back to the default scheme.
func (a *AppearanceConfig) ClearColorSchemeName() {
	appearanceClearSource(a, pickColorSchemeName)
}
func (a *AppearanceConfig) ColorSchemeNameOverrideSource() Origin {
	return appearanceOverrideSource(a, pickColorSchemeName)
}

func (a *AppearanceConfig) Foreground() string     { return appearanceEffective(a, pickForeground, "") }
func (a *AppearanceConfig) HasForeground() bool    { return a.foreground.IsSet() }
func (a *AppearanceConfig) SetForeground(v string) { a.foreground.Set(v) }
func (a *AppearanceConfig) ForegroundOverrideSource() Origin {
	return appearanceOverrideSource(a, pickForeground)
}

func (a *AppearanceConfig) Background() string     { return appearanceEffective(a, pickBackground, "") }
func (a *AppearanceConfig) HasBackground() bool    { return a.background.IsSet() }
func (a *AppearanceConfig) SetBackground(v string) { a.background.Set(v) }
func (a *AppearanceConfig) BackgroundOverrideSource() Origin {
	return appearanceOverrideSource(a, pickBackground)
}

func (a *AppearanceConfig) CursorColor() string     { return appearanceEffective(a, pickCursorColor, "") }
func (a *AppearanceConfig) HasCursorColor() bool    { return a.cursorColor.IsSet() }
func (a *AppearanceConfig) SetCursorColor(v string) { a.cursorColor.Set(v) }
func (a *AppearanceConfig) CursorColorOverrideSource() Origin {
	return appearanceOverrideSource(a, pickCursorColor)
}

func (a *AppearanceConfig) CursorShape() CursorShape {
	return appearanceEffective(a, pickCursorShape, CursorShapeBar)
}
func (a *AppearanceConfig) HasCursorShape() bool         { return a.cursorShape.IsSet() }
func (a *AppearanceConfig) SetCursorShape(v CursorShape) { a.cursorShape.Set(v) }
func (a *AppearanceConfig) CursorShapeOverrideSource() Origin {
	return appearanceOverrideSource(a, pickCursorShape)
}

func (a *AppearanceConfig) Opacity() float64     { return appearanceEffective(a, pickOpacity, 1.0) }
func (a *AppearanceConfig) HasOpacity() bool     { return a.opacity.IsSet() }
func (a *AppearanceConfig) SetOpacity(v float64) { a.opacity.Set(v) }
func (a *AppearanceConfig) OpacityOverrideSource() Origin {
	return appearanceOverrideSource(a, pickOpacity)
}

func (a *AppearanceConfig) BackgroundImagePath() string {
	return appearanceEffective(a, pickBackgroundImagePath, "")
}
func (a *AppearanceConfig) HasBackgroundImagePath() bool    { return a.backgroundImagePath.IsSet() }
func (a *AppearanceConfig) SetBackgroundImagePath(v string) { a.backgroundImagePath.Set(v) }
func (a *AppearanceConfig) ClearBackgroundImagePath() {
	appearanceClearSource(a, pickBackgroundImagePath)
}
func (a *AppearanceConfig) BackgroundImagePathOverrideSource() Origin {
	return appearanceOverrideSource(a, pickBackgroundImagePath)
}

func (a *AppearanceConfig) BackgroundImageOpacity() float64 {
	return appearanceEffective(a, pickBackgroundImageOpacity, 1.0)
}
func (a *AppearanceConfig) HasBackgroundImageOpacity() bool { return a.backgroundImageOpacity.IsSet() }
func (a *AppearanceConfig) SetBackgroundImageOpacity(v float64) {
	a.backgroundImageOpacity.Set(v)
}
func (a *AppearanceConfig) BackgroundImageOpacityOverrideSource() Origin {
	return appearanceOverrideSource(a, pickBackgroundImageOpacity)
}

func (a *AppearanceConfig) RetroTerminalEffect() bool {
	return appearanceEffective(a, pickRetroTerminalEffect, false)
}
func (a *AppearanceConfig) HasRetroTerminalEffect() bool  { return a.retroTerminalEffect.IsSet() }
func (a *AppearanceConfig) SetRetroTerminalEffect(v bool) { a.retroTerminalEffect.Set(v) }
func (a *AppearanceConfig) RetroTerminalEffectOverrideSource() Origin {
	return appearanceOverrideSource(a, pickRetroTerminalEffect)
}
