package catalog

import (
	_ "embed"
	"slices"

	"github.com/oakwood-commons/kbx/pkg/keybinding"
)

//go:embed default_catalog.yaml
var defaultCatalog []byte

// File is the on-disk catalog layout. JSON, YAML and TOML share the same
// keys.
type File struct {
	// EditorActions maps editor command ids to labels. They take precedence
	// over WorkbenchActions.
	EditorActions    map[string]string `json:"editorActions,omitempty" yaml:"editorActions,omitempty" toml:"editorActions,omitempty"`
	WorkbenchActions map[string]string `json:"workbenchActions,omitempty" yaml:"workbenchActions,omitempty" toml:"workbenchActions,omitempty"`
	// Commands is the command universe. Commands without a binding are
	// listed as unbound.
	Commands []string                `json:"commands,omitempty" yaml:"commands,omitempty" toml:"commands,omitempty"`
	Defaults []keybinding.RawBinding `json:"defaults,omitempty" yaml:"defaults,omitempty" toml:"defaults,omitempty"`
	User     []keybinding.RawBinding `json:"user,omitempty" yaml:"user,omitempty" toml:"user,omitempty"`
}

func (f File) empty() bool {
	return len(f.Commands) == 0 && len(f.Defaults) == 0 && len(f.User) == 0 &&
		len(f.EditorActions) == 0 && len(f.WorkbenchActions) == 0
}

// merge layers other on top of f: label maps are overridden per key and
// binding lists are appended.
func (f File) merge(other File) File {
	out := File{
		EditorActions:    mergeLabels(f.EditorActions, other.EditorActions),
		WorkbenchActions: mergeLabels(f.WorkbenchActions, other.WorkbenchActions),
		Commands:         append(slices.Clone(f.Commands), other.Commands...),
		Defaults:         append(slices.Clone(f.Defaults), other.Defaults...),
		User:             append(slices.Clone(f.User), other.User...),
	}
	return out
}

func mergeLabels(base, over map[string]string) map[string]string {
	if len(base) == 0 && len(over) == 0 {
		return nil
	}
	out := make(map[string]string, len(base)+len(over))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range over {
		out[k] = v
	}
	return out
}

// commandUniverse returns Commands followed by the registry ids it does not
// list, each id once.
func (f File) commandUniverse() []string {
	seen := make(map[string]struct{}, len(f.Commands))
	out := make([]string, 0, len(f.Commands))
	add := func(id string) {
		if id == "" {
			return
		}
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	for _, id := range f.Commands {
		add(id)
	}
	var extra []string
	for id := range f.EditorActions {
		extra = append(extra, id)
	}
	for id := range f.WorkbenchActions {
		extra = append(extra, id)
	}
	slices.Sort(extra)
	for _, id := range extra {
		add(id)
	}
	return out
}
