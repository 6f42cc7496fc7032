package keybinding

import (
	"cmp"
	"slices"

	"github.com/oakwood-commons/kbx/internal/filters"
)

// CleanSpans removes duplicate spans and spans nested inside another span,
// then sorts the rest by start. Overlapping spans that do not nest are both
// kept. A nil or empty input yields nil.
func CleanSpans(spans Spans) Spans {
	if len(spans) == 0 {
		return nil
	}
	unique := make(Spans, 0, len(spans))
	for _, s := range spans {
		if !slices.Contains(unique, s) {
			unique = append(unique, s)
		}
	}

	out := make(Spans, 0, len(unique))
	for i, s := range unique {
		nested := false
		for j, o := range unique {
			if i != j && contains(o, s) {
				nested = true
				break
			}
		}
		if !nested {
			out = append(out, s)
		}
	}

	slices.SortStableFunc(out, func(a, b filters.Match) int {
		return cmp.Compare(a.Start, b.Start)
	})
	return out
}

func contains(outer, inner filters.Match) bool {
	return outer.Start <= inner.Start && inner.End <= outer.End
}
