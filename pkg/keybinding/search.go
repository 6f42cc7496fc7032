package keybinding

import (
	"strings"
)

const (
	sourcePrefix  = "@source:"
	commandPrefix = "@command:"
)

// Query is a parsed search query.
type Query struct {
	// Text is the free text matched against entry fields.
	Text string
	// Source restricts results to one source when HasSource is set.
	Source    Source
	HasSource bool
	// Command restricts results to an exact command id when non-empty.
	Command string
}

// ParseQuery trims raw and extracts @source: and @command: qualifiers. A
// qualifier with an unknown value is kept as text.
func ParseQuery(raw string) Query {
	trimmed := strings.TrimSpace(raw)
	if !strings.Contains(trimmed, "@") {
		return Query{Text: trimmed}
	}

	var q Query
	var rest []string
	found := false
	for _, field := range strings.Fields(trimmed) {
		if v, ok := strings.CutPrefix(field, sourcePrefix); ok {
			if s, ok := ParseSource(strings.ToLower(v)); ok {
				q.Source, q.HasSource, found = s, true, true
				continue
			}
		}
		if v, ok := strings.CutPrefix(field, commandPrefix); ok && v != "" {
			q.Command, found = v, true
			continue
		}
		rest = append(rest, field)
	}
	if !found {
		return Query{Text: trimmed}
	}
	q.Text = strings.Join(rest, " ")
	return q
}

func (q Query) admits(e Entry) bool {
	if q.HasSource && e.Source != q.Source {
		return false
	}
	if q.Command != "" && e.Command != q.Command {
		return false
	}
	return true
}

// Search filters entries by query, keeping their order. An empty query
// lists every entry without highlights.
func Search(entries []Entry, query string) []ListEntry {
	q := ParseQuery(query)
	out := make([]ListEntry, 0, len(entries))
	for _, e := range entries {
		if !q.admits(e) {
			continue
		}
		if q.Text == "" {
			out = append(out, ListEntry{ID: e.ID(), Kind: KindBinding, Entry: e})
			continue
		}
		if le := MatchEntry(e, q.Text); le.Matched() {
			out = append(out, le)
		}
	}
	return out
}
