package filters

import "unicode"

// maxCamelCaseLength bounds the backtracking search on long targets.
const maxCamelCaseLength = 60

func isUpper(r rune) bool        { return r >= 'A' && r <= 'Z' }
func isLower(r rune) bool        { return r >= 'a' && r <= 'z' }
func isDigit(r rune) bool        { return r >= '0' && r <= '9' }
func isAlphanumeric(r rune) bool { return isUpper(r) || isLower(r) || isDigit(r) }

type camelCaseAnalysis struct {
	upperPercent   float64
	lowerPercent   float64
	alphaPercent   float64
	numericPercent float64
}

func analyzeCamelCaseWord(word []rune) camelCaseAnalysis {
	var upper, lower, alpha, numeric int
	for _, r := range word {
		if isUpper(r) {
			upper++
		}
		if isLower(r) {
			lower++
		}
		if isAlphanumeric(r) {
			alpha++
		}
		if isDigit(r) {
			numeric++
		}
	}
	n := float64(len(word))
	return camelCaseAnalysis{
		upperPercent:   float64(upper) / n,
		lowerPercent:   float64(lower) / n,
		alphaPercent:   float64(alpha) / n,
		numericPercent: float64(numeric) / n,
	}
}

func (a camelCaseAnalysis) isUpperCaseWord() bool {
	return a.lowerPercent == 0 && a.upperPercent > 0.6
}

func (a camelCaseAnalysis) isCamelCaseWord() bool {
	return a.lowerPercent > 0.2 && a.upperPercent < 0.8 && a.alphaPercent > 0.6 && a.numericPercent < 0.2
}

// isCamelCasePattern rejects queries that are unlikely to be typed as
// camelCase abbreviations.
func isCamelCasePattern(word []rune) bool {
	var upper, lower, whitespace int
	for _, r := range word {
		if isUpper(r) {
			upper++
		}
		if isLower(r) {
			lower++
		}
		if isWhitespace(r) {
			whitespace++
		}
	}
	if (upper == 0 || lower == 0) && whitespace == 0 {
		return len(word) <= 30
	}
	return upper <= 5
}

// nextAnchor returns the next camelCase anchor at or after start: an
// uppercase letter, a digit, or the rune after a non-alphanumeric.
func nextAnchor(t []rune, start int) int {
	for i := start; i < len(t); i++ {
		r := t[i]
		if isUpper(r) || isDigit(r) || (i > 0 && !isAlphanumeric(t[i-1])) {
			return i
		}
	}
	return len(t)
}

// MatchesCamelCase matches word against the humps of a camelCase target, so
// "formatDoc" and "fd" both match "formatDocument".
func MatchesCamelCase(word, target string) []Match {
	t := []rune(target)
	lead := 0
	for lead < len(t) && unicode.IsSpace(t[lead]) {
		lead++
	}
	end := len(t)
	for end > lead && unicode.IsSpace(t[end-1]) {
		end--
	}
	t = t[lead:end]
	if len(t) == 0 || len(t) > maxCamelCaseLength {
		return nil
	}
	w := []rune(word)
	if !isCamelCasePattern(w) {
		return nil
	}

	analysis := analyzeCamelCaseWord(t)
	if !analysis.isCamelCaseWord() {
		if !analysis.isUpperCaseWord() {
			return nil
		}
		for i, r := range t {
			t[i] = unicode.ToLower(r)
		}
	}
	for i, r := range w {
		w[i] = unicode.ToLower(r)
	}

	var result []Match
	for i := 0; i < len(t); i = nextAnchor(t, i+1) {
		if result = matchCamelCaseAt(w, t, 0, i); result != nil {
			break
		}
	}
	for k := range result {
		result[k].Start += lead
		result[k].End += lead
	}
	return result
}

func matchCamelCaseAt(w, t []rune, i, j int) []Match {
	if i == len(w) {
		return []Match{}
	}
	if j == len(t) || w[i] != unicode.ToLower(t[j]) {
		return nil
	}
	result := matchCamelCaseAt(w, t, i+1, j+1)
	for next := j + 1; result == nil; next++ {
		next = nextAnchor(t, next)
		if next >= len(t) {
			break
		}
		result = matchCamelCaseAt(w, t, i+1, next)
	}
	if result == nil {
		return nil
	}
	return join(Match{Start: j, End: j + 1}, result)
}
