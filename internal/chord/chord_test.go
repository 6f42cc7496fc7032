package chord

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLabels(t *testing.T) {
	tests := []struct {
		name     string
		keys     string
		platform Platform
		label    string
		aria     string
		settings string
	}{
		{"two part chord", "ctrl+k ctrl+s", PlatformLinux, "Ctrl+K Ctrl+S", "Control+K Control+S", "ctrl+k ctrl+s"},
		{"modifier order normalized", "alt+shift+ctrl+a", PlatformLinux, "Ctrl+Shift+Alt+A", "Control+Shift+Alt+A", "ctrl+shift+alt+a"},
		{"windows meta", "win+e", PlatformWindows, "Windows+E", "Windows+E", "meta+e"},
		{"linux meta", "meta+e", PlatformLinux, "Super+E", "Super+E", "meta+e"},
		{"mac glyphs", "cmd+shift+p", PlatformMac, "⇧⌘P", "Shift+Command+P", "shift+meta+p"},
		{"mac arrows", "alt+up", PlatformMac, "⌥↑", "Option+UpArrow", "alt+uparrow"},
		{"named key", "shift+escape", PlatformLinux, "Shift+Escape", "Shift+Escape", "shift+escape"},
		{"function key", "f12", PlatformLinux, "F12", "F12", "f12"},
		{"punctuation", "ctrl+/", PlatformLinux, "Ctrl+/", "Control+/", "ctrl+/"},
		{"plus key", "ctrl++", PlatformLinux, "Ctrl++", "Control++", "ctrl++"},
		{"extra whitespace", "  ctrl+k   v ", PlatformLinux, "Ctrl+K V", "Control+K V", "ctrl+k v"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Parse(tt.keys, tt.platform)
			require.NoError(t, err)
			assert.Equal(t, tt.label, c.Label())
			assert.Equal(t, tt.aria, c.AriaLabel())
			assert.Equal(t, tt.settings, c.String())
			assert.Equal(t, tt.platform, c.Platform())
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		keys string
		want error
	}{
		{"empty", "", ErrEmptyChord},
		{"blank", "   ", ErrEmptyChord},
		{"unknown modifier", "hyper+a", ErrUnknownModifier},
		{"unknown key", "ctrl+foo", ErrUnknownKey},
		{"dangling modifier", "ctrl+", ErrUnknownKey},
		{"three parts", "a b c", ErrTooManyParts},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.keys, PlatformLinux)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestChordParts(t *testing.T) {
	c, err := Parse("ctrl+k shift+s", PlatformLinux)
	require.NoError(t, err)
	assert.True(t, c.IsChord())

	parts := c.Parts()
	require.Len(t, parts, 2)
	assert.Equal(t, Part{Mods: ModCtrl, Key: "K"}, parts[0])
	assert.Equal(t, Part{Mods: ModShift, Key: "S"}, parts[1])

	// Parts returns a copy.
	parts[0].Key = "Z"
	assert.Equal(t, "Ctrl+K Shift+S", c.Label())
}

func TestParseDefaultsToCurrentPlatform(t *testing.T) {
	c, err := Parse("ctrl+a", "")
	require.NoError(t, err)
	assert.Equal(t, CurrentPlatform(), c.Platform())
}

func TestParsePlatform(t *testing.T) {
	p, err := ParsePlatform("macOS")
	require.NoError(t, err)
	assert.Equal(t, PlatformMac, p)

	p, err = ParsePlatform("")
	require.NoError(t, err)
	assert.Equal(t, CurrentPlatform(), p)

	_, err = ParsePlatform("amiga")
	assert.Error(t, err)
}

func TestCanonicalKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"a", "A", true},
		{"7", "7", true},
		{"PageDown", "PageDown", true},
		{"esc", "Escape", true},
		{"f24", "F24", true},
		{"f25", "", false},
		{"numpad3", "NumPad3", true},
		{"numpad_add", "NumPad_Add", true},
		{"é", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := canonicalKey(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
