// Package keybinding assembles raw keybinding records into searchable
// entries, matches free-text queries against them and ranks the results.
package keybinding

import (
	"github.com/oakwood-commons/kbx/internal/chord"
	"github.com/oakwood-commons/kbx/internal/filters"
)

// Source tells where a binding was declared.
type Source int

const (
	SourceDefault Source = iota
	SourceUser
)

// String returns the lower-case source name.
func (s Source) String() string {
	if s == SourceUser {
		return "user"
	}
	return "default"
}

// ParseSource parses "user" or "default".
func ParseSource(name string) (Source, bool) {
	switch name {
	case "user":
		return SourceUser, true
	case "default", "system":
		return SourceDefault, true
	}
	return SourceDefault, false
}

// MarshalText implements encoding.TextMarshaler.
func (s Source) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// RawBinding is an unresolved keybinding record.
type RawBinding struct {
	Key       string `json:"key,omitempty" yaml:"key,omitempty" toml:"key,omitempty"`
	Command   string `json:"command" yaml:"command" toml:"command"`
	When      string `json:"when,omitempty" yaml:"when,omitempty" toml:"when,omitempty"`
	IsDefault bool   `json:"isDefault" yaml:"isDefault" toml:"isDefault"`
}

// ResolvedBinding is a raw binding together with its parsed chord. Chord is
// nil when the binding has no usable key.
type ResolvedBinding struct {
	Chord *chord.Chord
	Item  RawBinding
	// When is the serialized when condition and WhenKeys the context keys it
	// references. Hosts that do not normalize conditions leave them empty and
	// Item.When is used verbatim.
	When     string
	WhenKeys []string
}

// Entry is a normalized, immutable keybinding row.
type Entry struct {
	Chord        *chord.Chord
	Item         RawBinding
	CommandLabel string
	Command      string
	Source       Source
	When         string
	WhenKeys     []string
}

// ChordLabel returns the user-facing chord label, or "" when unbound.
func (e Entry) ChordLabel() string {
	if e.Chord == nil {
		return ""
	}
	return e.Chord.Label()
}

// ChordAriaLabel returns the screen-reader chord label, or "" when unbound.
func (e Entry) ChordAriaLabel() string {
	if e.Chord == nil {
		return ""
	}
	return e.Chord.AriaLabel()
}

// ID identifies an entry across rebuilds. Entries that agree on command,
// chord, source and condition share an ID.
func (e Entry) ID() string {
	return e.Command + e.ChordAriaLabel() + e.Source.String() + e.When
}

// Kind distinguishes list rows.
type Kind int

const (
	KindBinding Kind = iota
	KindHeader
)

// String returns the kind name.
func (k Kind) String() string {
	if k == KindHeader {
		return "header"
	}
	return "binding"
}

// Spans is an ordered set of matched rune ranges. Nil means the field did
// not match.
type Spans = []filters.Match

// ListEntry is one row of a search result.
type ListEntry struct {
	ID                  string
	Kind                Kind
	Entry               Entry
	CommandIDMatches    Spans
	CommandLabelMatches Spans
	ChordMatches        Spans
}

// Matched reports whether any field matched.
func (l ListEntry) Matched() bool {
	return l.CommandIDMatches != nil || l.CommandLabelMatches != nil || l.ChordMatches != nil
}

// BoundSet records which command ids have at least one binding.
type BoundSet map[string]struct{}

// Has reports whether command is bound.
func (b BoundSet) Has(command string) bool {
	_, ok := b[command]
	return ok
}

// LabelLookup resolves a command id to its human label.
type LabelLookup func(command string) (string, bool)
