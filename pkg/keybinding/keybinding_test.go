package keybinding

import (
	"strings"
	"testing"
	"time"

	"github.com/oakwood-commons/kbx/internal/chord"
	"github.com/oakwood-commons/kbx/internal/filters"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustChord(t *testing.T, keys string) *chord.Chord {
	t.Helper()
	c, err := chord.Parse(keys, chord.PlatformLinux)
	require.NoError(t, err)
	return c
}

func bound(t *testing.T, key, command, when string, isDefault bool) ResolvedBinding {
	t.Helper()
	return ResolvedBinding{
		Chord: mustChord(t, key),
		Item:  RawBinding{Key: key, Command: command, When: when, IsDefault: isDefault},
	}
}

func TestAssemble(t *testing.T) {
	labels := EditorFirst(
		map[string]string{"editor.action.formatDocument": "Format Document"},
		map[string]string{"workbench.action.files.save": "Save", "editor.action.formatDocument": "ignored"},
	)
	bindings := []ResolvedBinding{
		bound(t, "ctrl+s", "workbench.action.files.save", "", true),
		bound(t, "ctrl+shift+i", "editor.action.formatDocument", " editorTextFocus ", false),
		{Item: RawBinding{Key: "ctrl+q"}},
	}

	entries := Assemble(bindings, []string{"workbench.action.closeAll", ""}, labels)
	require.Len(t, entries, 3)

	assert.Equal(t, "workbench.action.files.save", entries[0].Command)
	assert.Equal(t, "Save", entries[0].CommandLabel)
	assert.Equal(t, SourceDefault, entries[0].Source)
	assert.Equal(t, "Ctrl+S", entries[0].ChordLabel())

	assert.Equal(t, "Format Document", entries[1].CommandLabel)
	assert.Equal(t, SourceUser, entries[1].Source)
	assert.Equal(t, "editorTextFocus", entries[1].When)

	unbound := entries[2]
	assert.Nil(t, unbound.Chord)
	assert.Equal(t, "workbench.action.closeAll", unbound.Command)
	assert.Equal(t, "", unbound.CommandLabel)
	assert.Equal(t, SourceDefault, unbound.Source)
	assert.Equal(t, RawBinding{Command: "workbench.action.closeAll", IsDefault: true}, unbound.Item)
	assert.Equal(t, "", unbound.ChordLabel())
}

func TestAssemblePrefersNormalizedWhen(t *testing.T) {
	b := bound(t, "f5", "workbench.action.debug.start", "!inDebugMode", true)
	b.When = "!inDebugMode"
	b.WhenKeys = []string{"inDebugMode"}
	entries := Assemble([]ResolvedBinding{b}, nil, nil)
	require.Len(t, entries, 1)
	assert.Equal(t, []string{"inDebugMode"}, entries[0].WhenKeys)
	assert.Equal(t, "", entries[0].CommandLabel)
}

func TestBound(t *testing.T) {
	set := Bound([]ResolvedBinding{
		bound(t, "ctrl+s", "save", "", true),
		{Item: RawBinding{Key: "ctrl+x"}},
	})
	assert.True(t, set.Has("save"))
	assert.False(t, set.Has(""))
	assert.Len(t, set, 1)
}

func TestEntryID(t *testing.T) {
	e := Entry{Chord: mustChord(t, "ctrl+s"), Command: "save", Source: SourceUser, When: "editorFocus"}
	assert.Equal(t, "saveControl+SusereditorFocus", e.ID())

	unbound := Entry{Command: "save", Source: SourceDefault}
	assert.Equal(t, "savedefault", unbound.ID())
}

func TestCleanSpans(t *testing.T) {
	tests := []struct {
		name string
		in   Spans
		want Spans
	}{
		{"nil", nil, nil},
		{"empty", Spans{}, nil},
		{"duplicates", Spans{{Start: 0, End: 2}, {Start: 0, End: 2}}, Spans{{Start: 0, End: 2}}},
		{"nested dropped", Spans{{Start: 1, End: 3}, {Start: 0, End: 5}}, Spans{{Start: 0, End: 5}}},
		{"overlap kept", Spans{{Start: 2, End: 5}, {Start: 0, End: 3}}, Spans{{Start: 0, End: 3}, {Start: 2, End: 5}}},
		{"sorted", Spans{{Start: 7, End: 8}, {Start: 0, End: 1}, {Start: 3, End: 4}}, Spans{{Start: 0, End: 1}, {Start: 3, End: 4}, {Start: 7, End: 8}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanSpans(tt.in))
		})
	}
}

func TestMatchField(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		target string
		sep    string
		word   filters.Filter
		want   Spans
	}{
		{"chord conjunction", "ctrl+k", "Ctrl+K Ctrl+S", "+", chordMatcher, Spans{{Start: 0, End: 6}}},
		{"chord missing token", "ctrl+z", "Ctrl+K Ctrl+S", "+", chordMatcher, nil},
		{"chord tokens out of order", "s+ctrl", "Ctrl+K Ctrl+S", "+", chordMatcher, Spans{{Start: 0, End: 4}, {Start: 12, End: 13}}},
		{"chord empty token skipped", "ctrl++k", "Ctrl+K Ctrl+S", "+", chordMatcher, Spans{{Start: 0, End: 4}, {Start: 5, End: 6}}},
		{"label double space", "sav  fil", "Save File", " ", commandLabelMatcher, Spans{{Start: 0, End: 3}, {Start: 5, End: 8}}},
		{"label words", "sav fil", "Save File", " ", commandLabelMatcher, Spans{{Start: 0, End: 3}, {Start: 4, End: 8}}},
		{"label no match", "xyz", "Save File", " ", commandLabelMatcher, nil},
		{"label substring", "ave", "Save File", " ", commandLabelMatcher, Spans{{Start: 1, End: 4}}},
		{"id separators are interchangeable", "files save", "workbench.action.files.save", " ", commandIDMatcher, Spans{{Start: 17, End: 27}}},
		{"id token split", "save files", "workbench.action.files.save", " ", commandIDMatcher, Spans{{Start: 17, End: 22}, {Start: 23, End: 27}}},
		{"id camel humps", "fd", "editor.action.formatDocument", " ", commandIDMatcher, Spans{{Start: 14, End: 15}, {Start: 20, End: 21}}},
		{"id camel token fails", "fmt doc", "editor.action.formatDocument", " ", commandIDMatcher, nil},
		{"empty target", "save", "", " ", commandIDMatcher, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, matchField(tt.query, tt.target, tt.sep, tt.word))
		})
	}
}

func TestSortExample(t *testing.T) {
	entries := []Entry{
		{Command: "c.cmd"},
		{Command: "a.cmd", Chord: mustChord(t, "ctrl+a")},
		{Command: "b.cmd", CommandLabel: "Beta", Chord: mustChord(t, "ctrl+b")},
	}
	sorted := Sort(entries, DefaultLocale)
	assert.Equal(t, []string{"b.cmd", "a.cmd", "c.cmd"}, commands(sorted))
	assert.Equal(t, "c.cmd", entries[0].Command, "input is not modified")
}

func TestSortSameCommand(t *testing.T) {
	entries := []Entry{
		{Command: "save", Source: SourceDefault, When: "first"},
		{Command: "save", Source: SourceUser},
		{Command: "save", Source: SourceDefault, When: "second"},
	}
	sorted := Sort(entries, DefaultLocale)
	assert.Equal(t, SourceUser, sorted[0].Source)
	assert.Equal(t, "first", sorted[1].When)
	assert.Equal(t, "second", sorted[2].When)
}

func TestSortLocaleAware(t *testing.T) {
	entries := []Entry{
		{Command: "z", CommandLabel: "Zebra"},
		{Command: "e", CommandLabel: "Éclair"},
		{Command: "a", CommandLabel: "apple"},
	}
	sorted := Sort(entries, DefaultLocale)
	assert.Equal(t, []string{"a", "e", "z"}, commands(sorted))
}

func TestSortIsIdempotent(t *testing.T) {
	entries := []Entry{
		{Command: "workbench.action.files.save", CommandLabel: "Save", Chord: mustChord(t, "ctrl+s")},
		{Command: "editor.action.formatDocument", CommandLabel: "Format Document"},
		{Command: "editor.action.commentLine", CommandLabel: "Toggle Line Comment", Chord: mustChord(t, "ctrl+/"), Source: SourceUser},
		{Command: "editor.action.commentLine", CommandLabel: "Toggle Line Comment", Chord: mustChord(t, "ctrl+k ctrl+c")},
		{Command: "noLabel"},
		{Command: "alsoNoLabel", Chord: mustChord(t, "f1")},
	}
	once := Sort(entries, DefaultLocale)
	twice := Sort(once, DefaultLocale)
	assert.Equal(t, commands(once), commands(twice))
	assert.Equal(t, ids(once), ids(twice))
	assert.Equal(t, ids(once), ids(Sort(entries, DefaultLocale)))
}

func TestSearchEmptyQuery(t *testing.T) {
	entries := sampleEntries(t)
	for _, q := range []string{"", "   "} {
		results := Search(entries, q)
		require.Len(t, results, len(entries))
		for i, r := range results {
			assert.Equal(t, entries[i].ID(), r.ID)
			assert.Equal(t, KindBinding, r.Kind)
			assert.Nil(t, r.CommandIDMatches)
			assert.Nil(t, r.CommandLabelMatches)
			assert.Nil(t, r.ChordMatches)
		}
	}
}

func TestSearchFilterCorrectness(t *testing.T) {
	entries := sampleEntries(t)
	for _, q := range []string{"save", "ctrl+k", "ctrl+z", "sav fil", "xyz", "fd", "format", "s", "Toggle"} {
		t.Run(q, func(t *testing.T) {
			results := Search(entries, q)
			var want []string
			for _, e := range entries {
				if MatchEntry(e, q).Matched() {
					want = append(want, e.ID())
				}
			}
			var got []string
			for _, r := range results {
				assert.True(t, r.Matched())
				got = append(got, r.ID)
			}
			assert.Equal(t, want, got)
		})
	}
}

func TestSearchSpanMaximality(t *testing.T) {
	entries := sampleEntries(t)
	for _, q := range []string{"save", "sav fil", "ctrl+k", "fd", "action", "e"} {
		for _, r := range Search(entries, q) {
			for _, spans := range []Spans{r.CommandIDMatches, r.CommandLabelMatches, r.ChordMatches} {
				for i := range spans {
					if i > 0 {
						assert.LessOrEqual(t, spans[i-1].Start, spans[i].Start)
					}
					for j := range spans {
						if i != j {
							assert.False(t, contains(spans[j], spans[i]), "span %v nested in %v", spans[i], spans[j])
						}
					}
				}
			}
		}
	}
}

func TestSearchNearMissIsFast(t *testing.T) {
	entries := []Entry{{
		Command:      strings.TrimSuffix(strings.Repeat("a.", 128), "."),
		CommandLabel: strings.TrimSpace(strings.Repeat("a ", 128)),
		Chord:        mustChord(t, "ctrl+a"),
	}}
	for _, q := range []string{strings.Repeat("a", 60) + "b", strings.Repeat("a ", 30) + "b"} {
		start := time.Now()
		assert.Empty(t, Search(entries, q))
		assert.Less(t, time.Since(start), 2*time.Second)
	}
}

func TestSearchExamples(t *testing.T) {
	entries := []Entry{
		{Command: "workbench.action.files.save", CommandLabel: "Save File", Chord: mustChord(t, "ctrl+k ctrl+s")},
	}

	results := Search(entries, "ctrl+k")
	require.Len(t, results, 1)
	assert.Equal(t, Spans{{Start: 0, End: 6}}, results[0].ChordMatches)

	assert.Empty(t, Search(entries, "ctrl+z"))

	results = Search(entries, "sav fil")
	require.Len(t, results, 1)
	assert.Equal(t, Spans{{Start: 0, End: 3}, {Start: 4, End: 8}}, results[0].CommandLabelMatches)

	assert.Empty(t, Search(entries, "xyz"))
}

func TestParseQuery(t *testing.T) {
	tests := []struct {
		raw  string
		want Query
	}{
		{"  save ", Query{Text: "save"}},
		{"@source:user save", Query{Text: "save", Source: SourceUser, HasSource: true}},
		{"@source:Default", Query{Source: SourceDefault, HasSource: true}},
		{"@command:editor.action.formatDocument", Query{Command: "editor.action.formatDocument"}},
		{"@source:nope x", Query{Text: "@source:nope x"}},
		{"a@b  c", Query{Text: "a@b  c"}},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseQuery(tt.raw))
		})
	}
}

func TestSearchQualifiers(t *testing.T) {
	entries := sampleEntries(t)

	user := Search(entries, "@source:user")
	require.Len(t, user, 1)
	assert.Equal(t, "editor.action.commentLine", user[0].Entry.Command)
	assert.Nil(t, user[0].CommandIDMatches)

	byCommand := Search(entries, "@command:editor.action.commentLine")
	assert.Len(t, byCommand, 2)

	filtered := Search(entries, "@source:default toggle")
	require.Len(t, filtered, 1)
	assert.Equal(t, SourceDefault, filtered[0].Entry.Source)
	assert.NotNil(t, filtered[0].CommandLabelMatches)
}

func sampleEntries(t *testing.T) []Entry {
	t.Helper()
	return Sort([]Entry{
		{Command: "workbench.action.files.save", CommandLabel: "Save File", Chord: mustChord(t, "ctrl+s")},
		{Command: "workbench.action.files.saveAll", CommandLabel: "Save All", Chord: mustChord(t, "ctrl+k s")},
		{Command: "editor.action.formatDocument", CommandLabel: "Format Document", Chord: mustChord(t, "ctrl+shift+i")},
		{Command: "editor.action.commentLine", CommandLabel: "Toggle Line Comment", Chord: mustChord(t, "ctrl+/"), Source: SourceUser},
		{Command: "editor.action.commentLine", CommandLabel: "Toggle Line Comment", Chord: mustChord(t, "ctrl+k ctrl+c")},
		{Command: "workbench.action.closeAll"},
	}, DefaultLocale)
}

func commands(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Command
	}
	return out
}

func ids(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID()
	}
	return out
}

func TestSuggest(t *testing.T) {
	entries := sampleEntries(t)
	assert.Empty(t, Search(entries, "sve fle"))
	assert.Equal(t, []string{"workbench.action.files.save"}, Suggest(entries, "sve fle", 3))
	assert.Nil(t, Suggest(entries, "", 3))
	assert.Nil(t, Suggest(entries, "save", 0))

	got := Suggest(entries, "@source:user cmt", 5)
	assert.Equal(t, []string{"editor.action.commentLine"}, got)
}
