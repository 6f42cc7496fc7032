// Package filters provides the string matchers used by keybinding search:
// prefix, contiguous substring, word and camelCase matching. Every matcher
// returns the matched rune ranges, or nil when the word does not match.
package filters

import "unicode"

// Match is a half-open rune range [Start, End) within a target string.
type Match struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// Filter matches word against target and returns the matched ranges.
// A nil result means no match.
type Filter func(word, target string) []Match

// Or chains filters and returns the first non-empty result.
func Or(filters ...Filter) Filter {
	return func(word, target string) []Match {
		for _, f := range filters {
			if m := f(word, target); len(m) > 0 {
				return m
			}
		}
		return nil
	}
}

// MatchesPrefix reports a case-insensitive prefix match of word on target.
func MatchesPrefix(word, target string) []Match {
	w := []rune(word)
	t := []rune(target)
	if len(t) == 0 || len(t) < len(w) {
		return nil
	}
	for i := range w {
		if unicode.ToLower(w[i]) != unicode.ToLower(t[i]) {
			return nil
		}
	}
	if len(w) == 0 {
		return []Match{}
	}
	return []Match{{Start: 0, End: len(w)}}
}

// MatchesContiguousSubString reports the first case-insensitive occurrence
// of word inside target.
func MatchesContiguousSubString(word, target string) []Match {
	w := lowerRunes(word)
	t := lowerRunes(target)
	if len(w) == 0 || len(w) > len(t) {
		return nil
	}
	for i := 0; i+len(w) <= len(t); i++ {
		if runesEqual(t[i:i+len(w)], w) {
			return []Match{{Start: i, End: i + len(w)}}
		}
	}
	return nil
}

func lowerRunes(s string) []rune {
	r := []rune(s)
	for i, c := range r {
		r[i] = unicode.ToLower(c)
	}
	return r
}

func runesEqual(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// join prepends head to tail, merging it into the first range when adjacent.
func join(head Match, tail []Match) []Match {
	if len(tail) == 0 {
		return []Match{head}
	}
	if head.End == tail[0].Start {
		tail[0].Start = head.Start
		return tail
	}
	return append([]Match{head}, tail...)
}
