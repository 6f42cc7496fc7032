package filters

import "strings"

const wordSeparators = "`~!@#$%^&*()-=+[{]}\\|;:'\",.<>/?"

func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

func isWordSeparator(r rune) bool {
	return isWhitespace(r) || strings.ContainsRune(wordSeparators, r)
}

// nextWord returns the first index at or after start that begins a word:
// a separator itself, or the rune right after one.
func nextWord(t []rune, start int) int {
	for i := start; i < len(t); i++ {
		if isWordSeparator(t[i]) || (i > 0 && isWordSeparator(t[i-1])) {
			return i
		}
	}
	return len(t)
}

// MatchesWords matches word against target, allowing each matched character
// run to continue at the start of any later word of target.
// "sav fil" matches "Save File".
func MatchesWords(word, target string) []Match {
	return matchesWords(word, target, false)
}

// MatchesWordsContiguous is MatchesWords restricted to a contiguous run
// starting at a word boundary of target.
func MatchesWordsContiguous(word, target string) []Match {
	return matchesWords(word, target, true)
}

func matchesWords(word, target string, contiguous bool) []Match {
	t := lowerRunes(target)
	if len(t) == 0 {
		return nil
	}
	m := wordMatcher{
		w:          lowerRunes(word),
		t:          t,
		contiguous: contiguous,
	}
	for i := 0; i < len(t); i = nextWord(t, i+1) {
		if result := m.at(0, i); result != nil {
			return result
		}
	}
	return nil
}

// wordMatcher holds the state of one matchesWords call. The result of at
// depends only on (i, j), so failed positions are remembered and never
// retried; successes end the search and need no cache.
type wordMatcher struct {
	w, t       []rune
	contiguous bool
	failed     []bool
}

// sameWordRune reports whether a query rune matches a target rune. Any two
// word separators match each other, so "ctrl k" matches "Ctrl+K".
func sameWordRune(a, b rune) bool {
	return a == b || (isWordSeparator(a) && isWordSeparator(b))
}

func (m *wordMatcher) at(i, j int) []Match {
	if i == len(m.w) {
		return []Match{}
	}
	if j == len(m.t) || !sameWordRune(m.w[i], m.t[j]) {
		return nil
	}
	if m.failed == nil {
		m.failed = make([]bool, len(m.w)*len(m.t))
	}
	key := i*len(m.t) + j
	if m.failed[key] {
		return nil
	}

	result := m.at(i+1, j+1)
	if !m.contiguous {
		for next := j + 1; result == nil; next++ {
			next = nextWord(m.t, next)
			if next >= len(m.t) {
				break
			}
			result = m.at(i+1, next)
		}
	}
	if result == nil {
		m.failed[key] = true
		return nil
	}
	return join(Match{Start: j, End: j + 1}, result)
}
