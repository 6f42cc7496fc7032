package formatter

import (
	"slices"
	"strings"

	"github.com/oakwood-commons/kbx/internal/filters"
	"github.com/oakwood-commons/kbx/pkg/keybinding"
)

// Highlight passes the matched rune ranges of text through mark and leaves
// the rest untouched. Overlapping and adjacent ranges are marked once.
func Highlight(text string, spans keybinding.Spans, mark func(string) string) string {
	return highlightWith(text, spans, func(s string) string { return s }, mark)
}

func highlightWith(text string, spans keybinding.Spans, plain, mark func(string) string) string {
	runes := []rune(text)
	merged := mergeSpans(spans, len(runes))
	if len(merged) == 0 || mark == nil {
		return plain(text)
	}
	var b strings.Builder
	pos := 0
	for _, s := range merged {
		if s.Start > pos {
			b.WriteString(plain(string(runes[pos:s.Start])))
		}
		b.WriteString(mark(string(runes[s.Start:s.End])))
		pos = s.End
	}
	if pos < len(runes) {
		b.WriteString(plain(string(runes[pos:])))
	}
	return b.String()
}

// mergeSpans clips spans to [0, n) and unions the ones that touch.
func mergeSpans(spans keybinding.Spans, n int) []filters.Match {
	if len(spans) == 0 {
		return nil
	}
	sorted := slices.Clone(spans)
	slices.SortFunc(sorted, func(a, b filters.Match) int { return a.Start - b.Start })

	var out []filters.Match
	for _, s := range sorted {
		s.Start = max(s.Start, 0)
		s.End = min(s.End, n)
		if s.Start >= s.End {
			continue
		}
		if last := len(out) - 1; last >= 0 && s.Start <= out[last].End {
			out[last].End = max(out[last].End, s.End)
			continue
		}
		out = append(out, s)
	}
	return out
}

// clipSpans drops the parts of spans at or beyond rune n.
func clipSpans(spans keybinding.Spans, n int) keybinding.Spans {
	var out keybinding.Spans
	for _, s := range spans {
		if s.Start >= n {
			continue
		}
		s.End = min(s.End, n)
		out = append(out, s)
	}
	return out
}
