package settings

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfile_Inheritance_FirstParentWins(t *testing.T) {
	left := NewProfile(OriginFragment)
	left.SetTabTitle("left")
	right := NewProfile(OriginInBox)
	right.SetTabTitle("right")
	right.SetIcon("icon.png")

	child := NewProfile(OriginUser)
	child.InsertParent(left)
	child.InsertParent(right)

	// Parents are consulted in declaration order.
	assert.Equal(t, "left", child.TabTitle())
	// A value only the second parent sets still resolves.
	assert.Equal(t, "icon.png", child.Icon())

	child.SetTabTitle("own")
	assert.Equal(t, "own", child.TabTitle())
}

func TestProfile_Inheritance_Defaults(t *testing.T) {
	p := NewProfile(OriginUser)

	assert.Equal(t, "Default", p.Name())
	assert.Equal(t, 9001, p.HistorySize())
	assert.Equal(t, "8, 8, 8, 8", p.Padding())
	assert.True(t, p.SnapOnInput())
	assert.True(t, p.AltGrAliasing())
	assert.Equal(t, BellStyleAudible, p.BellStyle())
	assert.False(t, p.HasName())
	assert.False(t, p.HasHistorySize())
}

func TestProfile_Inheritance_DeepChain(t *testing.T) {
	base := NewProfile(OriginProfilesDefaults)
	base.SetHistorySize(32000)

	inbox := NewProfile(OriginInBox)
	inbox.SetCommandline("/bin/sh")
	inbox.InsertParent(base)

	user := NewProfile(OriginUser)
	user.InsertParent(inbox)

	assert.Equal(t, "/bin/sh", user.Commandline())
	assert.Equal(t, 32000, user.HistorySize())
	assert.Equal(t, OriginInBox, user.CommandlineOverrideSource())
	assert.Equal(t, OriginProfilesDefaults, user.HistorySizeOverrideSource())
}

func TestProfile_InsertParentAt_Precedence(t *testing.T) {
	inbox := NewProfile(OriginInBox)
	inbox.SetTabColor("#000000")

	child := NewProfile(OriginUser)
	child.InsertParent(inbox)
	assert.Equal(t, "#000000", child.TabColor())

	fragment := NewProfile(OriginFragment)
	fragment.SetTabColor("#FFFFFF")
	child.InsertParentAt(0, fragment)

	assert.Equal(t, "#FFFFFF", child.TabColor())
	assert.Equal(t, []*Profile{fragment, inbox}, child.Parents())
}

func TestCreateChild(t *testing.T) {
	parent := NewProfile(OriginInBox)
	parent.SetGuid(uuid.MustParse("61c54bbd-c2c6-5271-96e7-009a87ff44bf"))
	parent.SetName("Stock")
	parent.SetHidden(true)
	parent.SetCommandline("/bin/sh")

	child := CreateChild(parent)

	assert.Equal(t, OriginUser, child.Origin())
	// Identity fields are snapshotted onto the child.
	assert.True(t, child.HasGuid())
	assert.True(t, child.HasName())
	assert.True(t, child.HasHidden())
	assert.Equal(t, parent.Guid(), child.Guid())
	assert.Equal(t, "Stock", child.Name())
	assert.True(t, child.Hidden())
	// Leaf values are not copied; they flow through the parent link.
	assert.False(t, child.HasCommandline())
	assert.Equal(t, "/bin/sh", child.Commandline())
}

func TestProfile_FontInheritance(t *testing.T) {
	parent := NewProfile(OriginInBox)
	parent.FontInfo().SetFontFace("Terminus")
	parent.FontInfo().SetFontSize(14)

	child := NewProfile(OriginUser)
	child.InsertParent(parent)
	child.FontInfo().SetFontSize(10)

	assert.Equal(t, "Terminus", child.FontInfo().FontFace())
	assert.Equal(t, float64(10), child.FontInfo().FontSize())
	assert.Equal(t, 400, child.FontInfo().FontWeight())
	assert.Equal(t, OriginInBox, child.FontInfo().FontFaceOverrideSource())
}

func TestProfile_AppearanceInheritance(t *testing.T) {
	parent := NewProfile(OriginInBox)
	parent.DefaultAppearance().SetColorSchemeName("One Half Dark")
	parent.DefaultAppearance().SetCursorShape(CursorShapeFilledBox)

	child := NewProfile(OriginUser)
	child.InsertParent(parent)
	child.DefaultAppearance().SetCursorShape(CursorShapeVintage)

	assert.Equal(t, "One Half Dark", child.DefaultAppearance().ColorSchemeName())
	assert.Equal(t, CursorShapeVintage, child.DefaultAppearance().CursorShape())
}

func TestProfile_UnfocusedAppearance_FallsBackToDefaultAppearance(t *testing.T) {
	p := NewProfile(OriginUser)
	p.DefaultAppearance().SetBackground("#101010")
	p.DefaultAppearance().SetOpacity(0.9)

	ua := NewAppearanceConfig()
	p.SetUnfocusedAppearance(ua)
	ua.SetOpacity(0.5)

	assert.Equal(t, 0.5, p.UnfocusedAppearance().Opacity())
	// Unset unfocused values resolve through the default appearance.
	assert.Equal(t, "#101010", p.UnfocusedAppearance().Background())
}

func TestProfile_UnfocusedAppearance_InheritedFromParent(t *testing.T) {
	parent := NewProfile(OriginInBox)
	ua := NewAppearanceConfig()
	parent.SetUnfocusedAppearance(ua)
	ua.SetOpacity(0.3)

	child := NewProfile(OriginUser)
	child.InsertParent(parent)

	require.NotNil(t, child.UnfocusedAppearance())
	assert.Equal(t, 0.3, child.UnfocusedAppearance().Opacity())
	assert.False(t, child.HasUnfocusedAppearance())
}

func TestProfile_CopyInheritanceGraph_SharedParentsStayShared(t *testing.T) {
	base := NewProfile(OriginProfilesDefaults)
	base.SetPadding("2")

	a := NewProfile(OriginUser)
	a.InsertParent(base)
	b := NewProfile(OriginUser)
	b.InsertParent(base)

	visited := make(map[*Profile]*Profile)
	cloneA := a.CopyInheritanceGraph(visited)
	cloneB := b.CopyInheritanceGraph(visited)

	require.Len(t, cloneA.Parents(), 1)
	require.Len(t, cloneB.Parents(), 1)
	// Both clones point at the same cloned base node.
	assert.Same(t, cloneA.Parents()[0], cloneB.Parents()[0])
	assert.NotSame(t, base, cloneA.Parents()[0])
	assert.Equal(t, "2", cloneA.Padding())
}

func TestProfile_CopyInheritanceGraph_IndependentFromOriginal(t *testing.T) {
	parent := NewProfile(OriginInBox)
	parent.SetTabTitle("orig")
	p := NewProfile(OriginUser)
	p.InsertParent(parent)
	p.FontInfo().SetFontFace("Terminus")

	clone := p.CopyInheritanceGraph(make(map[*Profile]*Profile))

	parent.SetTabTitle("changed")
	p.FontInfo().SetFontFace("Iosevka")

	assert.Equal(t, "orig", clone.TabTitle())
	assert.Equal(t, "Terminus", clone.FontInfo().FontFace())
	// The clone's sub-objects resolve through the clone's chain, not the
	// original's.
	assert.Same(t, clone, clone.FontInfo().SourceProfile())
	assert.Same(t, clone, clone.DefaultAppearance().SourceProfile())
}

func TestParseBellStyle(t *testing.T) {
	style, ok := ParseBellStyle("audible")
	assert.True(t, ok)
	assert.Equal(t, BellStyleAudible, style)

	style, ok = ParseBellStyle("all")
	assert.True(t, ok)
	assert.Equal(t, BellStyleAll, style)

	_, ok = ParseBellStyle("loudly")
	assert.False(t, ok)
}

func TestParseCloseOnExitMode(t *testing.T) {
	mode, ok := ParseCloseOnExitMode("graceful")
	assert.True(t, ok)
	assert.Equal(t, CloseOnExitGraceful, mode)

	_, ok = ParseCloseOnExitMode("sometimes")
	assert.False(t, ok)
}
