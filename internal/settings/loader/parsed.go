// Package loader orchestrates settings loads: it parses the inbox, user and
// fragment JSON sources into per-source stores, runs dynamic profile
// generators, merges everything into the final layered state, and hands the
// result to the settings finalizer. The stages run in strict order with no
// backward transitions; a load either succeeds (possibly with warnings) or
// fails fatally before finalization.
package loader

import (
	"github.com/google/uuid"

	"github.com/termhive/termhive/internal/settings"
)

// ParsedSettings holds the result of parsing one configuration source: its
// global settings, its base layer ("defaults") profile if any, the profiles
// in declaration order, and an identifier index. The store is loader state;
// only the finalized settings object leaves this package.
type ParsedSettings struct {
	Globals          *settings.GlobalSettings
	BaseLayerProfile *settings.Profile
	Profiles         []*settings.Profile

	// DeletedProfiles is the user's explicit deletion marker list; only
	// meaningful on the user store.
	DeletedProfiles []uuid.UUID

	byGUID map[uuid.UUID]*settings.Profile
}

func (ps *ParsedSettings) init() {
	if ps.Globals == nil {
		ps.Globals = settings.NewGlobalSettings()
	}
	if ps.byGUID == nil {
		ps.byGUID = make(map[uuid.UUID]*settings.Profile)
	}
}

// Append adds a profile to the store. It returns false without appending when
// the store already holds a profile with the same identifier.
func (ps *ParsedSettings) Append(p *settings.Profile) bool {
	ps.init()
	guid := p.Guid()
	if _, dup := ps.byGUID[guid]; dup {
		return false
	}
	ps.Profiles = append(ps.Profiles, p)
	ps.byGUID[guid] = p
	return true
}

// FindByGUID looks a profile up by identifier.
func (ps *ParsedSettings) FindByGUID(guid uuid.UUID) (*settings.Profile, bool) {
	ps.init()
	p, ok := ps.byGUID[guid]
	return p, ok
}
