package keybinding

import (
	"strings"

	"github.com/go-logr/logr"
)

// Bound returns the set of command ids that occur in bindings.
func Bound(bindings []ResolvedBinding) BoundSet {
	set := make(BoundSet, len(bindings))
	for _, b := range bindings {
		if b.Item.Command != "" {
			set[b.Item.Command] = struct{}{}
		}
	}
	return set
}

// EditorFirst composes two label registries, preferring editor over
// workbench. Either map may be nil.
func EditorFirst(editor, workbench map[string]string) LabelLookup {
	return func(command string) (string, bool) {
		if label, ok := editor[command]; ok {
			return label, true
		}
		if label, ok := workbench[command]; ok {
			return label, true
		}
		return "", false
	}
}

// Assemble builds one entry per binding followed by one unbound entry per
// command id in unbound. Order follows the inputs.
func Assemble(bindings []ResolvedBinding, unbound []string, lookup LabelLookup) []Entry {
	return assemble(bindings, unbound, lookup, logr.Discard())
}

func assemble(bindings []ResolvedBinding, unbound []string, lookup LabelLookup, log logr.Logger) []Entry {
	if lookup == nil {
		lookup = func(string) (string, bool) { return "", false }
	}
	entries := make([]Entry, 0, len(bindings)+len(unbound))

	for _, b := range bindings {
		if b.Item.Command == "" {
			log.V(1).Info("skipping binding without command", "key", b.Item.Key)
			continue
		}
		label, _ := lookup(b.Item.Command)
		source := SourceUser
		if b.Item.IsDefault {
			source = SourceDefault
		}
		when := b.When
		if when == "" {
			when = strings.TrimSpace(b.Item.When)
		}
		entries = append(entries, Entry{
			Chord:        b.Chord,
			Item:         b.Item,
			CommandLabel: label,
			Command:      b.Item.Command,
			Source:       source,
			When:         when,
			WhenKeys:     b.WhenKeys,
		})
	}

	for _, command := range unbound {
		if command == "" {
			log.V(1).Info("skipping blank unbound command id")
			continue
		}
		label, _ := lookup(command)
		entries = append(entries, Entry{
			Item:         RawBinding{Command: command, IsDefault: true},
			CommandLabel: label,
			Command:      command,
			Source:       SourceDefault,
		})
	}

	log.V(1).Info("assembled entries", "bound", len(bindings), "unbound", len(unbound), "entries", len(entries))
	return entries
}
