package settings

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testSettings builds a small finalized settings object: a base layer and
// named user profiles chained to it.
func testSettings(t *testing.T, names ...string) *Settings {
	t.Helper()
	base := NewProfile(OriginProfilesDefaults)
	base.SetHistorySize(5000)

	profiles := make([]*Profile, 0, len(names))
	for _, name := range names {
		p := CreateChild(base)
		p.SetGuid(uuid.New())
		p.SetName(name)
		profiles = append(profiles, p)
	}
	return New(NewGlobalSettings(), base, profiles, nil)
}

func TestSettings_FindProfile(t *testing.T) {
	s := testSettings(t, "One", "Two")
	p := s.AllProfiles()[1]

	assert.Same(t, p, s.FindProfile(p.Guid()))
	assert.Nil(t, s.FindProfile(uuid.New()))
}

func TestSettings_ProfileByName(t *testing.T) {
	s := testSettings(t, "One", "Two")
	p := s.AllProfiles()[0]

	assert.Same(t, p, s.ProfileByName("One"))
	assert.Nil(t, s.ProfileByName("Three"))
	assert.Nil(t, s.ProfileByName(""))
}

func TestSettings_ProfileByName_BraceGuid(t *testing.T) {
	s := testSettings(t, "One", "Two")
	p := s.AllProfiles()[1]

	ref := GuidString(p.Guid())
	require.Len(t, ref, 38)
	assert.Same(t, p, s.ProfileByName(ref))

	// An unknown identifier in brace form falls back to name matching.
	s.AllProfiles()[0].SetName(GuidString(uuid.Nil))
	assert.Same(t, s.AllProfiles()[0], s.ProfileByName(GuidString(uuid.Nil)))
}

func TestSettings_ProfileByIndex(t *testing.T) {
	s := testSettings(t, "One", "Two", "Three")
	s.AllProfiles()[1].SetHidden(true)
	s.refreshActiveProfiles()

	// The index addresses the active list, skipping hidden profiles.
	assert.Same(t, s.AllProfiles()[0], s.ProfileByIndex(0))
	assert.Same(t, s.AllProfiles()[2], s.ProfileByIndex(1))
	assert.Nil(t, s.ProfileByIndex(2))
	assert.Nil(t, s.ProfileByIndex(-1))
}

func TestSettings_ProfileForArgs_Precedence(t *testing.T) {
	s := testSettings(t, "One", "Two", "Three")
	s.GlobalSettings().DefaultProfile = s.AllProfiles()[2].Guid()
	s.AllProfiles()[1].SetCommandline("/usr/bin/zsh")
	s.SetNormalize(func(c string) (string, error) { return c, nil })

	one := 1

	// Explicit name wins over everything.
	got := s.ProfileForArgs(&NewTerminalArgs{Profile: "One", ProfileIndex: &one, Commandline: "/usr/bin/zsh"})
	assert.Same(t, s.AllProfiles()[0], got)

	// Index beats the command line.
	got = s.ProfileForArgs(&NewTerminalArgs{ProfileIndex: &one, Commandline: "/usr/bin/zsh"})
	assert.Same(t, s.AllProfiles()[1], got)

	// Command line beats the default.
	got = s.ProfileForArgs(&NewTerminalArgs{Commandline: "/usr/bin/zsh -l"})
	assert.Same(t, s.AllProfiles()[1], got)

	// Nothing requested: the configured default.
	got = s.ProfileForArgs(&NewTerminalArgs{})
	assert.Same(t, s.AllProfiles()[2], got)
	assert.Same(t, s.AllProfiles()[2], s.ProfileForArgs(nil))
}

func TestSettings_ProfileForArgs_HiddenProfileStillResolvable(t *testing.T) {
	s := testSettings(t, "One", "Two")
	hidden := s.AllProfiles()[1]
	hidden.SetHidden(true)
	s.refreshActiveProfiles()

	// Hidden excludes a profile from the active list, not from explicit
	// requests.
	assert.Same(t, hidden, s.ProfileForArgs(&NewTerminalArgs{Profile: "Two"}))
	assert.NotContains(t, s.ActiveProfiles(), hidden)
}

func TestSettings_ProfileForArgs_FallbackToFirstActive(t *testing.T) {
	s := testSettings(t, "One", "Two")
	// Default guid points nowhere.
	s.GlobalSettings().DefaultProfile = uuid.New()

	assert.Same(t, s.AllProfiles()[0], s.ProfileForArgs(nil))
}

func TestSettings_CreateNewProfile_NameProbing(t *testing.T) {
	s := testSettings(t, "One", "Two")

	p := s.CreateNewProfile()
	assert.Equal(t, "Profile 3", p.Name())
	assert.True(t, p.HasGuid())
	assert.Contains(t, s.ActiveProfiles(), p)
	// The new profile inherits from the base layer.
	assert.Equal(t, 5000, p.HistorySize())

	// The probed name skips names already taken.
	q := s.CreateNewProfile()
	r := s.CreateNewProfile()
	assert.NotEqual(t, q.Name(), r.Name())
	assert.NotEqual(t, p.Name(), q.Name())
}

func TestSettings_DuplicateProfile_CopyNames(t *testing.T) {
	s := testSettings(t, "Alpha")
	src := s.AllProfiles()[0]

	first := s.DuplicateProfile(src)
	assert.Equal(t, "Alpha (Copy)", first.Name())

	second := s.DuplicateProfile(src)
	assert.Equal(t, "Alpha (Copy 2)", second.Name())

	third := s.DuplicateProfile(src)
	assert.Equal(t, "Alpha (Copy 3)", third.Name())
}

func TestSettings_DuplicateProfile_OnlyCopiesNonDefaultValues(t *testing.T) {
	s := testSettings(t, "Alpha")
	src := s.AllProfiles()[0]
	src.SetCommandline("/bin/fish")
	src.SetHidden(true)

	dup := s.DuplicateProfile(src)

	// Locally-set values are copied.
	assert.True(t, dup.HasCommandline())
	assert.Equal(t, "/bin/fish", dup.Commandline())
	// Values supplied by the shared defaults layer are not baked in; they
	// keep flowing through inheritance.
	assert.False(t, dup.HasHistorySize())
	assert.Equal(t, 5000, dup.HistorySize())
	s.ProfileDefaults().SetHistorySize(100)
	assert.Equal(t, 100, dup.HistorySize())
	// Hidden is never copied.
	assert.False(t, dup.Hidden())
	assert.NotEqual(t, src.Guid(), dup.Guid())
}

func TestSettings_DuplicateProfile_CopiesInheritedNonDefaultValues(t *testing.T) {
	base := NewProfile(OriginProfilesDefaults)
	inbox := NewProfile(OriginInBox)
	inbox.SetTabTitle("stock title")
	src := CreateChild(inbox)
	src.SetGuid(uuid.New())
	src.SetName("Alpha")
	src.InsertParent(base)
	s := New(NewGlobalSettings(), base, []*Profile{src}, nil)

	dup := s.DuplicateProfile(src)

	// A value inherited from a non-defaults ancestor is baked into the
	// duplicate; the duplicate does not extend the inbox profile.
	assert.True(t, dup.HasTabTitle())
	assert.Equal(t, "stock title", dup.TabTitle())
}

func TestSettings_DuplicateProfile_UnfocusedAppearanceAsUnit(t *testing.T) {
	s := testSettings(t, "Alpha")
	src := s.AllProfiles()[0]
	ua := NewAppearanceConfig()
	src.SetUnfocusedAppearance(ua)
	ua.SetOpacity(0.4)

	dup := s.DuplicateProfile(src)

	require.True(t, dup.HasUnfocusedAppearance())
	assert.Equal(t, 0.4, dup.UnfocusedAppearance().Opacity())
	assert.NotSame(t, ua, dup.UnfocusedAppearance())
}

func TestSettings_Copy_PreservesGraphSharing(t *testing.T) {
	s := testSettings(t, "One", "Two")

	clone := s.Copy()

	require.Len(t, clone.AllProfiles(), 2)
	baseA := clone.AllProfiles()[0].Parents()[0]
	baseB := clone.AllProfiles()[1].Parents()[0]
	// Both cloned profiles share the one cloned base layer, which is also
	// the clone's ProfileDefaults node.
	assert.Same(t, baseA, baseB)
	assert.Same(t, clone.ProfileDefaults(), baseA)
	assert.NotSame(t, s.ProfileDefaults(), baseA)

	// Edits to the clone never reach the original.
	clone.AllProfiles()[0].SetName("Renamed")
	assert.Equal(t, "One", s.AllProfiles()[0].Name())
	clone.ProfileDefaults().SetHistorySize(1)
	assert.Equal(t, 5000, s.AllProfiles()[0].HistorySize())
}

func TestSettings_Copy_SchemesIndependent(t *testing.T) {
	s := testSettings(t, "One")
	s.GlobalSettings().AddColorScheme(&ColorScheme{Name: "Mine", Background: "#000000"})

	clone := s.Copy()
	scheme, ok := clone.GlobalSettings().ColorScheme("Mine")
	require.True(t, ok)
	scheme.Background = "#FFFFFF"

	orig, _ := s.GlobalSettings().ColorScheme("Mine")
	assert.Equal(t, "#000000", orig.Background)
}

func TestSettings_UpdateColorSchemeReferences(t *testing.T) {
	s := testSettings(t, "One", "Two")
	s.GlobalSettings().AddColorScheme(&ColorScheme{Name: "Old"})
	s.AllProfiles()[0].DefaultAppearance().SetColorSchemeName("Old")
	s.AllProfiles()[1].DefaultAppearance().SetColorSchemeName("Other")
	ua := NewAppearanceConfig()
	s.AllProfiles()[1].SetUnfocusedAppearance(ua)
	ua.SetColorSchemeName("Old")

	s.UpdateColorSchemeReferences("Old", "New")

	assert.Equal(t, "New", s.AllProfiles()[0].DefaultAppearance().ColorSchemeName())
	assert.Equal(t, "Other", s.AllProfiles()[1].DefaultAppearance().ColorSchemeName())
	assert.Equal(t, "New", ua.ColorSchemeName())
}

func TestSettings_ColorSchemeForProfile(t *testing.T) {
	s := testSettings(t, "One")
	scheme := &ColorScheme{Name: "Mine"}
	s.GlobalSettings().AddColorScheme(scheme)
	s.AllProfiles()[0].DefaultAppearance().SetColorSchemeName("Mine")

	assert.Same(t, scheme, s.ColorSchemeForProfile(s.AllProfiles()[0]))
	assert.Nil(t, s.ColorSchemeForProfile(nil))
}

func TestNewFromLoadError(t *testing.T) {
	s := NewFromLoadError(LoadErrorUnparseableJSON, "settings.json:3:7: unexpected token")

	require.NotNil(t, s.LoadError())
	assert.Equal(t, LoadErrorUnparseableJSON, s.LoadError().Code)
	assert.Contains(t, s.LoadError().Error(), "settings.json:3:7")
	assert.Empty(t, s.AllProfiles())
}

func TestGuidString(t *testing.T) {
	guid := uuid.MustParse("61C54BBD-C2C6-5271-96E7-009A87FF44BF")
	assert.Equal(t, fmt.Sprintf("{%s}", "61c54bbd-c2c6-5271-96e7-009a87ff44bf"), GuidString(guid))
}
