package keybinding

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// candidates is a fuzzy.Source over entry labels and command ids.
type candidates struct {
	text    []string
	command []string
}

func (c candidates) String(i int) string { return c.text[i] }
func (c candidates) Len() int            { return len(c.text) }

// Suggest returns up to limit command ids whose id or label loosely matches
// query, best first. It is meant for queries that Search found nothing for.
func Suggest(entries []Entry, query string, limit int) []string {
	q := ParseQuery(query)
	if q.Text == "" || limit <= 0 {
		return nil
	}

	var src candidates
	seen := make(map[string]struct{})
	for _, e := range entries {
		if !q.admits(e) {
			continue
		}
		if _, ok := seen[e.Command]; ok {
			continue
		}
		seen[e.Command] = struct{}{}
		src.text = append(src.text, e.Command)
		src.command = append(src.command, e.Command)
		if e.CommandLabel != "" {
			src.text = append(src.text, e.CommandLabel)
			src.command = append(src.command, e.Command)
		}
	}

	// Spaces in the pattern would have to match literally.
	pattern := strings.ReplaceAll(q.Text, " ", "")
	var out []string
	picked := make(map[string]struct{})
	for _, m := range fuzzy.FindFrom(pattern, src) {
		cmd := src.command[m.Index]
		if _, ok := picked[cmd]; ok {
			continue
		}
		picked[cmd] = struct{}{}
		out = append(out, cmd)
		if len(out) == limit {
			break
		}
	}
	return out
}
