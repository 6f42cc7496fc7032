// Package chord parses key-chord specifications such as "ctrl+k ctrl+s" and
// renders them as user-facing and screen-reader labels for a platform.
package chord

import (
	"errors"
	"fmt"
	"strings"
)

// Parse errors.
var (
	ErrEmptyChord      = errors.New("empty key chord")
	ErrUnknownKey      = errors.New("unknown key")
	ErrUnknownModifier = errors.New("unknown modifier")
	ErrTooManyParts    = errors.New("chord has more than two parts")
)

// maxParts is the number of key presses a chord may span.
const maxParts = 2

// Part is one key press of a chord.
type Part struct {
	Mods Modifier
	Key  string
}

// Chord is a parsed, immutable key chord.
type Chord struct {
	parts    []Part
	platform Platform
}

// Parse parses a user-settings chord string. Parts are separated by
// whitespace and keys inside a part by '+', e.g. "ctrl+k ctrl+s".
func Parse(keys string, platform Platform) (*Chord, error) {
	fields := strings.Fields(keys)
	if len(fields) == 0 {
		return nil, ErrEmptyChord
	}
	if len(fields) > maxParts {
		return nil, fmt.Errorf("%w: %q", ErrTooManyParts, keys)
	}
	parts := make([]Part, 0, len(fields))
	for _, f := range fields {
		p, err := parsePart(f)
		if err != nil {
			return nil, err
		}
		parts = append(parts, p)
	}
	if platform == "" {
		platform = CurrentPlatform()
	}
	return &Chord{parts: parts, platform: platform}, nil
}

func parsePart(s string) (Part, error) {
	// A trailing "++" binds the plus key itself.
	keyName := ""
	if strings.HasSuffix(s, "++") {
		keyName = "+"
		s = strings.TrimSuffix(s, "++")
	} else if s == "+" {
		return Part{Key: "+"}, nil
	}

	tokens := strings.Split(s, "+")
	if keyName == "" {
		keyName = tokens[len(tokens)-1]
		tokens = tokens[:len(tokens)-1]
	}

	var mods Modifier
	for _, t := range tokens {
		if t == "" {
			continue
		}
		mod := modifierFromName(t)
		if mod == ModNone {
			return Part{}, fmt.Errorf("%w: %q", ErrUnknownModifier, t)
		}
		mods = mods.With(mod)
	}

	if keyName == "+" {
		return Part{Mods: mods, Key: "+"}, nil
	}
	key, ok := canonicalKey(keyName)
	if !ok {
		return Part{}, fmt.Errorf("%w: %q", ErrUnknownKey, keyName)
	}
	return Part{Mods: mods, Key: key}, nil
}

// Parts returns a copy of the chord's key presses.
func (c *Chord) Parts() []Part {
	return append([]Part(nil), c.parts...)
}

// Platform returns the platform the chord is labelled for.
func (c *Chord) Platform() Platform {
	return c.platform
}

// IsChord reports whether the binding needs more than one key press.
func (c *Chord) IsChord() bool {
	return len(c.parts) > 1
}

// Label renders the chord the way it is shown to users, e.g. "Ctrl+K Ctrl+S".
func (c *Chord) Label() string {
	return c.render(labelsFor(uiLabels, c.platform), c.platform == PlatformMac)
}

// AriaLabel renders the chord for screen readers, e.g. "Control+K Control+S".
func (c *Chord) AriaLabel() string {
	return c.render(labelsFor(ariaLabels, c.platform), false)
}

// String renders the chord in user-settings form, e.g. "ctrl+k ctrl+s".
func (c *Chord) String() string {
	out := make([]string, 0, len(c.parts))
	for _, p := range c.parts {
		var segs []string
		for _, m := range settingsOrder {
			if p.Mods.Has(m.mod) {
				segs = append(segs, m.name)
			}
		}
		segs = append(segs, strings.ToLower(p.Key))
		out = append(out, strings.Join(segs, "+"))
	}
	return strings.Join(out, " ")
}

func (c *Chord) render(labels modifierLabels, arrowGlyphs bool) string {
	out := make([]string, 0, len(c.parts))
	for _, p := range c.parts {
		var segs []string
		for _, m := range labels.order {
			if p.Mods.Has(m) {
				segs = append(segs, labels.names[m])
			}
		}
		key := p.Key
		if arrowGlyphs {
			if glyph, ok := macArrows[key]; ok {
				key = glyph
			}
		}
		segs = append(segs, key)
		out = append(out, strings.Join(segs, labels.separator))
	}
	return strings.Join(out, " ")
}
