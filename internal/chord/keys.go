package chord

import (
	"strconv"
	"strings"
)

// namedKeys maps lower-case user-settings key names to their canonical label.
var namedKeys = map[string]string{
	"escape":      "Escape",
	"esc":         "Escape",
	"enter":       "Enter",
	"return":      "Enter",
	"tab":         "Tab",
	"space":       "Space",
	"backspace":   "Backspace",
	"delete":      "Delete",
	"del":         "Delete",
	"insert":      "Insert",
	"home":        "Home",
	"end":         "End",
	"pageup":      "PageUp",
	"pagedown":    "PageDown",
	"up":          "UpArrow",
	"down":        "DownArrow",
	"left":        "LeftArrow",
	"right":       "RightArrow",
	"uparrow":     "UpArrow",
	"downarrow":   "DownArrow",
	"leftarrow":   "LeftArrow",
	"rightarrow":  "RightArrow",
	"capslock":    "CapsLock",
	"pausebreak":  "PauseBreak",
	"contextmenu": "ContextMenu",
	"numlock":     "NumLock",
	"scrolllock":  "ScrollLock",

	"numpad_add":       "NumPad_Add",
	"numpad_subtract":  "NumPad_Subtract",
	"numpad_multiply":  "NumPad_Multiply",
	"numpad_divide":    "NumPad_Divide",
	"numpad_decimal":   "NumPad_Decimal",
	"numpad_separator": "NumPad_Separator",
}

// punctuationKeys are single-rune keys kept verbatim.
const punctuationKeys = "`-=[]\\;',./"

// macArrows replaces arrow names with glyphs in macOS UI labels.
var macArrows = map[string]string{
	"UpArrow":    "↑",
	"DownArrow":  "↓",
	"LeftArrow":  "←",
	"RightArrow": "→",
}

// canonicalKey normalizes a key name, reporting false for unknown keys.
func canonicalKey(name string) (string, bool) {
	lower := strings.ToLower(strings.TrimSpace(name))
	if lower == "" {
		return "", false
	}
	if label, ok := namedKeys[lower]; ok {
		return label, true
	}
	if len(lower) == 1 {
		r := rune(lower[0])
		switch {
		case r >= 'a' && r <= 'z':
			return strings.ToUpper(lower), true
		case r >= '0' && r <= '9':
			return lower, true
		case strings.ContainsRune(punctuationKeys, r):
			return lower, true
		}
		return "", false
	}
	if n, ok := strings.CutPrefix(lower, "f"); ok {
		if i, err := strconv.Atoi(n); err == nil && i >= 1 && i <= 24 {
			return "F" + n, true
		}
	}
	if n, ok := strings.CutPrefix(lower, "numpad"); ok && len(n) == 1 && n[0] >= '0' && n[0] <= '9' {
		return "NumPad" + n, true
	}
	return "", false
}
