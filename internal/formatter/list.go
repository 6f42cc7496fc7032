package formatter

import (
	"strings"

	"github.com/oakwood-commons/kbx/pkg/keybinding"
)

// renderList prints one block per result: the label (or the command id
// when there is none) followed by the other selected fields.
func renderList(results []keybinding.ListEntry, opts Options) string {
	if len(results) == 0 {
		return NoMatchMessage(opts.Query, opts.Suggestions) + "\n"
	}

	cols := opts.columns()
	nameWidth := 0
	for _, c := range cols {
		nameWidth = max(nameWidth, len(c)+1)
	}

	paint := func(c cell) string {
		if opts.NoColor {
			return c.text
		}
		return Highlight(c.text, c.spans, func(s string) string { return opts.Highlight.Render(s) })
	}

	var b strings.Builder
	for i, r := range results {
		if i > 0 {
			b.WriteString("\n")
		}
		titleCol := ColumnLabel
		if r.Entry.CommandLabel == "" {
			titleCol = ColumnCommand
		}
		title := paint(cellFor(r, titleCol))
		if !opts.NoColor {
			title = headerStyle.Render(title)
		}
		b.WriteString(title + "\n")

		for _, col := range cols {
			if col == titleCol || col == ColumnLabel {
				continue
			}
			c := cellFor(r, col)
			value := paint(c)
			if c.text == "" {
				if col != ColumnChord {
					continue
				}
				value = "unbound"
				if !opts.NoColor {
					value = dimStyle.Render(value)
				}
			}
			b.WriteString("  " + padRight(string(col)+":", nameWidth) + " " + value + "\n")
		}
	}
	return b.String()
}
