package settings

// Origin records which configuration layer a profile (or the ancestor that
// supplied one of its property values) came from. The tag decides layering
// precedence during the load and whether a value is safe to duplicate or
// serialize back out.
type Origin uint8

const (
	// OriginNone marks a value that is not set anywhere in the chain.
	OriginNone Origin = iota
	// OriginInBox marks profiles shipped with the application defaults.
	OriginInBox
	// OriginGenerated marks profiles produced by a dynamic profile generator.
	OriginGenerated
	// OriginFragment marks profiles contributed by a third-party fragment.
	OriginFragment
	// OriginUser marks profiles authored in the user settings file.
	OriginUser
	// OriginProfilesDefaults marks the base layer every profile inherits from.
	OriginProfilesDefaults
)

// String returns the origin name used in diagnostics.
func (o Origin) String() string {
	switch o {
	case OriginInBox:
		return "inbox"
	case OriginGenerated:
		return "generated"
	case OriginFragment:
		return "fragment"
	case OriginUser:
		return "user"
	case OriginProfilesDefaults:
		return "profiles.defaults"
	default:
		return "none"
	}
}
