package settings

// FontConfig is the inheritable font sub-object of a profile. Unset
// properties resolve through the fonts of the owning profile's parents in
// declaration order.
type FontConfig struct {
	profile *Profile

	face     Setting[string]
	size     Setting[float64]
	weight   Setting[int]
	features Setting[[]string]
}

// SourceProfile returns the profile owning this font node.
func (f *FontConfig) SourceProfile() *Profile { return f.profile }

func fontFirstSet[T any](f *FontConfig, pick func(*FontConfig) *Setting[T]) (*FontConfig, *Setting[T]) {
	if s := pick(f); s.IsSet() {
		return f, s
	}
	if f.profile != nil {
		for _, parent := range f.profile.parents {
			if src, s := fontFirstSet(parent.font, pick); src != nil {
				return src, s
			}
		}
	}
	return nil, nil
}

func fontEffective[T any](f *FontConfig, pick func(*FontConfig) *Setting[T], def T) T {
	if _, s := fontFirstSet(f, pick); s != nil {
		return s.Value()
	}
	return def
}

func fontOverrideSource[T any](f *FontConfig, pick func(*FontConfig) *Setting[T]) Origin {
	if src, _ := fontFirstSet(f, pick); src != nil && src.profile != nil {
		return src.profile.origin
	}
	return OriginNone
}

func pickFontFace(f *FontConfig) *Setting[string]       { return &f.face }
func pickFontSize(f *FontConfig) *Setting[float64]      { return &f.size }
func pickFontWeight(f *FontConfig) *Setting[int]        { return &f.weight }
func pickFontFeatures(f *FontConfig) *Setting[[]string] { return &f.features }

func (f *FontConfig) FontFace() string     { return fontEffective(f, pickFontFace, "monospace") }
func (f *FontConfig) HasFontFace() bool    { return f.face.IsSet() }
func (f *FontConfig) SetFontFace(v string) { f.face.Set(v) }
func (f *FontConfig) FontFaceOverrideSource() Origin { return fontOverrideSource(f, pickFontFace) }

func (f *FontConfig) FontSize() float64     { return fontEffective(f, pickFontSize, 12) }
func (f *FontConfig) HasFontSize() bool     { return f.size.IsSet() }
func (f *FontConfig) SetFontSize(v float64) { f.size.Set(v) }
func (f *FontConfig) FontSizeOverrideSource() Origin { return fontOverrideSource(f, pickFontSize) }

func (f *FontConfig) FontWeight() int     { return fontEffective(f, pickFontWeight, 400) }
func (f *FontConfig) HasFontWeight() bool { return f.weight.IsSet() }
func (f *FontConfig) SetFontWeight(v int) { f.weight.Set(v) }
func (f *FontConfig) FontWeightOverrideSource() Origin {
	return fontOverrideSource(f, pickFontWeight)
}

func (f *FontConfig) FontFeatures() []string { return fontEffective(f, pickFontFeatures, nil) }
func (f *FontConfig) HasFontFeatures() bool  { return f.features.IsSet() }
func (f *FontConfig) SetFontFeatures(v []string) {
	f.features.Set(append([]string(nil), v...))
}
func (f *FontConfig) FontFeaturesOverrideSource() Origin {
	return fontOverrideSource(f, pickFontFeatures)
}
