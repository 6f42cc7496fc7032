package chord

import "strings"

// Modifier is a bit set of modifier keys. ModMeta is Cmd on macOS, the
// Windows key on Windows and Super on Linux.
type Modifier uint8

const (
	ModNone  Modifier = 0
	ModCtrl  Modifier = 1 << 0
	ModShift Modifier = 1 << 1
	ModAlt   Modifier = 1 << 2
	ModMeta  Modifier = 1 << 3
)

// Has reports whether m contains mod.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// With returns m with mod added.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// modifierFromName maps a user-settings modifier name to its bit.
func modifierFromName(name string) Modifier {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "ctrl", "control":
		return ModCtrl
	case "shift":
		return ModShift
	case "alt", "option", "opt":
		return ModAlt
	case "meta", "cmd", "command", "win", "super":
		return ModMeta
	default:
		return ModNone
	}
}

// settingsOrder is the order modifiers are written in user settings.
var settingsOrder = []struct {
	mod  Modifier
	name string
}{
	{ModCtrl, "ctrl"},
	{ModShift, "shift"},
	{ModAlt, "alt"},
	{ModMeta, "meta"},
}
