package settings

// DefaultColorSchemeName is the scheme every appearance falls back to when no
// ancestor references one, or after an unknown reference is cleared.
const DefaultColorSchemeName = "Campbell"

// ColorScheme is a named terminal color palette. Colors are serialized as
// "#rrggbb" strings; the engine treats them as opaque values.
type ColorScheme struct {
	Name                string `json:"name"`
	Foreground          string `json:"foreground,omitempty"`
	Background          string `json:"background,omitempty"`
	CursorColor         string `json:"cursorColor,omitempty"`
	SelectionBackground string `json:"selectionBackground,omitempty"`
	Black               string `json:"black,omitempty"`
	Red                 string `json:"red,omitempty"`
	Green               string `json:"green,omitempty"`
	Yellow              string `json:"yellow,omitempty"`
	Blue                string `json:"blue,omitempty"`
	Purple              string `json:"purple,omitempty"`
	Cyan                string `json:"cyan,omitempty"`
	White               string `json:"white,omitempty"`
	BrightBlack         string `json:"brightBlack,omitempty"`
	BrightRed           string `json:"brightRed,omitempty"`
	BrightGreen         string `json:"brightGreen,omitempty"`
	BrightYellow        string `json:"brightYellow,omitempty"`
	BrightBlue          string `json:"brightBlue,omitempty"`
	BrightPurple        string `json:"brightPurple,omitempty"`
	BrightCyan          string `json:"brightCyan,omitempty"`
	BrightWhite         string `json:"brightWhite,omitempty"`
}

// Copy returns an independent copy of the scheme.
func (c *ColorScheme) Copy() *ColorScheme {
	clone := *c
	return &clone
}
