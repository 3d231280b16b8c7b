package sources

import _ "embed"

// inboxSettings is the built-in settings document compiled into the binary.
// It defines the stock color schemes, the default key bindings and the
// fallback profile every installation starts from.
//
//go:embed inbox.json
var inboxSettings []byte

// InboxSettings returns the built-in settings document.
func InboxSettings() []byte {
	return inboxSettings
}
