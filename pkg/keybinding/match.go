package keybinding

import (
	"strings"

	"github.com/oakwood-commons/kbx/internal/filters"
)

// wholeQuery is tried against a field before the query is split into tokens.
var wholeQuery = filters.Or(
	filters.MatchesPrefix,
	filters.MatchesWords,
	filters.MatchesContiguousSubString,
)

var (
	commandIDMatcher    = filters.Or(filters.MatchesWords, filters.MatchesCamelCase)
	commandLabelMatcher = filters.Filter(filters.MatchesWordsContiguous)
	chordMatcher        = filters.Or(filters.MatchesWords, filters.MatchesCamelCase)
)

// matchField matches query against target. When the query as a whole does
// not match, it is split on sep and every token must match through word.
// Empty tokens, from doubled separators, match trivially and add no spans.
// The result is cleaned, or nil.
func matchField(query, target, sep string, word filters.Filter) Spans {
	if target == "" {
		return nil
	}
	if m := wholeQuery(query, target); len(m) > 0 {
		return CleanSpans(m)
	}

	var all Spans
	for _, token := range strings.Split(query, sep) {
		if token == "" {
			continue
		}
		m := word(token, target)
		if len(m) == 0 {
			return nil
		}
		all = append(all, m...)
	}
	return CleanSpans(all)
}

// MatchEntry matches a trimmed, non-empty query against the three searchable
// fields of e.
func MatchEntry(e Entry, query string) ListEntry {
	return ListEntry{
		ID:                  e.ID(),
		Kind:                KindBinding,
		Entry:               e,
		CommandIDMatches:    matchField(query, e.Command, " ", commandIDMatcher),
		CommandLabelMatches: matchField(query, e.CommandLabel, " ", commandLabelMatcher),
		ChordMatches:        matchField(query, e.ChordLabel(), "+", chordMatcher),
	}
}
