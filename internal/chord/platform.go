package chord

import (
	"fmt"
	"runtime"
	"strings"
)

// Platform selects how chords are labelled.
type Platform string

const (
	PlatformLinux   Platform = "linux"
	PlatformWindows Platform = "windows"
	PlatformMac     Platform = "mac"
)

// ValidPlatforms lists all supported platforms.
var ValidPlatforms = []Platform{PlatformLinux, PlatformWindows, PlatformMac}

// CurrentPlatform returns the platform of the running binary.
func CurrentPlatform() Platform {
	switch runtime.GOOS {
	case "darwin":
		return PlatformMac
	case "windows":
		return PlatformWindows
	default:
		return PlatformLinux
	}
}

// ParsePlatform parses a platform name. An empty name selects the current platform.
func ParsePlatform(name string) (Platform, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return CurrentPlatform(), nil
	case "linux":
		return PlatformLinux, nil
	case "windows", "win":
		return PlatformWindows, nil
	case "mac", "macos", "darwin":
		return PlatformMac, nil
	default:
		return "", fmt.Errorf("unknown platform %q (expected linux, windows or mac)", name)
	}
}

// modifierLabels describes how one platform renders modifiers.
type modifierLabels struct {
	order     []Modifier
	names     map[Modifier]string
	separator string
}

var uiLabels = map[Platform]modifierLabels{
	PlatformLinux: {
		order:     []Modifier{ModCtrl, ModShift, ModAlt, ModMeta},
		names:     map[Modifier]string{ModCtrl: "Ctrl", ModShift: "Shift", ModAlt: "Alt", ModMeta: "Super"},
		separator: "+",
	},
	PlatformWindows: {
		order:     []Modifier{ModCtrl, ModShift, ModAlt, ModMeta},
		names:     map[Modifier]string{ModCtrl: "Ctrl", ModShift: "Shift", ModAlt: "Alt", ModMeta: "Windows"},
		separator: "+",
	},
	PlatformMac: {
		order:     []Modifier{ModCtrl, ModAlt, ModShift, ModMeta},
		names:     map[Modifier]string{ModCtrl: "⌃", ModShift: "⇧", ModAlt: "⌥", ModMeta: "⌘"},
		separator: "",
	},
}

var ariaLabels = map[Platform]modifierLabels{
	PlatformLinux: {
		order:     []Modifier{ModCtrl, ModShift, ModAlt, ModMeta},
		names:     map[Modifier]string{ModCtrl: "Control", ModShift: "Shift", ModAlt: "Alt", ModMeta: "Super"},
		separator: "+",
	},
	PlatformWindows: {
		order:     []Modifier{ModCtrl, ModShift, ModAlt, ModMeta},
		names:     map[Modifier]string{ModCtrl: "Control", ModShift: "Shift", ModAlt: "Alt", ModMeta: "Windows"},
		separator: "+",
	},
	PlatformMac: {
		order:     []Modifier{ModCtrl, ModAlt, ModShift, ModMeta},
		names:     map[Modifier]string{ModCtrl: "Control", ModShift: "Shift", ModAlt: "Option", ModMeta: "Command"},
		separator: "+",
	},
}

func labelsFor(table map[Platform]modifierLabels, p Platform) modifierLabels {
	if l, ok := table[p]; ok {
		return l
	}
	return table[PlatformLinux]
}
