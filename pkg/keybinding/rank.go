package keybinding

import (
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultLocale is the collation locale used when none is configured.
var DefaultLocale = language.English

// Compare orders two entries for display. col compares strings under the
// active locale.
//
// Bound entries come before unbound ones, labelled before unlabelled. Two
// different labels order by collation. Entries for the same command put user
// bindings first. Everything else orders by command id.
func Compare(col *collate.Collator, a, b Entry) int {
	if (a.Chord != nil) != (b.Chord != nil) {
		if a.Chord != nil {
			return -1
		}
		return 1
	}
	if (a.CommandLabel != "") != (b.CommandLabel != "") {
		if a.CommandLabel != "" {
			return -1
		}
		return 1
	}
	if a.CommandLabel != "" && b.CommandLabel != "" && a.CommandLabel != b.CommandLabel {
		if c := col.CompareString(a.CommandLabel, b.CommandLabel); c != 0 {
			return c
		}
	}
	if a.Command == b.Command {
		switch {
		case a.Source == b.Source:
			return 0
		case a.Source == SourceUser:
			return -1
		default:
			return 1
		}
	}
	return col.CompareString(a.Command, b.Command)
}

// Sort returns a sorted copy of entries. The sort is stable, so entries
// comparing equal keep their input order.
func Sort(entries []Entry, tag language.Tag) []Entry {
	out := slices.Clone(entries)
	col := collate.New(tag)
	slices.SortStableFunc(out, func(a, b Entry) int {
		return Compare(col, a, b)
	})
	return out
}
