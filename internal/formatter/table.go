package formatter

import (
	"strings"

	runewidth "github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/kbx/pkg/keybinding"
)

const (
	sepWidth    = 2
	minColWidth = 3
	maxColWidth = 48
	ellipsis    = "…"
)

func renderTable(results []keybinding.ListEntry, opts Options) string {
	if len(results) == 0 {
		return NoMatchMessage(opts.Query, opts.Suggestions) + "\n"
	}

	cols := opts.columns()
	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = strings.ToUpper(headerName(c))
	}
	rows := make([][]cell, len(results))
	for i, r := range results {
		row := make([]cell, len(cols))
		for j, c := range cols {
			row[j] = cellFor(r, c)
		}
		rows[i] = row
	}
	widths := columnWidths(headers, rows, opts.Width)

	sep := strings.Repeat(" ", sepWidth)
	var b strings.Builder

	parts := make([]string, len(headers))
	for i, h := range headers {
		h = fit(cell{text: h}, widths[i]).text
		if i < len(headers)-1 {
			h = padRight(h, widths[i])
		}
		if !opts.NoColor {
			h = headerStyle.Render(h)
		}
		parts[i] = h
	}
	b.WriteString(strings.Join(parts, sep) + "\n")

	total := (len(widths) - 1) * sepWidth
	for _, w := range widths {
		total += w
	}
	rule := strings.Repeat("─", total)
	if !opts.NoColor {
		rule = separatorStyle.Render(rule)
	}
	b.WriteString(rule + "\n")

	for _, row := range rows {
		for i, c := range row {
			c = fit(c, widths[i])
			text := c.text
			if !opts.NoColor {
				text = Highlight(c.text, c.spans, func(s string) string { return opts.Highlight.Render(s) })
			}
			if i < len(row)-1 {
				text += strings.Repeat(" ", max(widths[i]-runewidth.StringWidth(c.text), 0))
			}
			parts[i] = text
		}
		b.WriteString(strings.TrimRight(strings.Join(parts, sep), " ") + "\n")
	}
	return b.String()
}

// columnWidths sizes each column to its widest value. When limit is set and
// the row is too wide, columns are capped and the widest ones shrink first.
func columnWidths(headers []string, rows [][]cell, limit int) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, c := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(c.text))
		}
	}
	if limit <= 0 {
		return widths
	}

	usable := limit - (len(widths)-1)*sepWidth
	if sum(widths) <= usable {
		return widths
	}
	for i := range widths {
		widths[i] = min(widths[i], maxColWidth)
	}
	for sum(widths) > usable {
		widest := 0
		for i := 1; i < len(widths); i++ {
			if widths[i] > widths[widest] {
				widest = i
			}
		}
		if widths[widest] <= minColWidth {
			break
		}
		widths[widest]--
	}
	return widths
}

func sum(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}

// fit truncates c to width display cells, ending with an ellipsis, and
// clips its spans to what is left.
func fit(c cell, width int) cell {
	if runewidth.StringWidth(c.text) <= width {
		return c
	}
	truncated := runewidth.Truncate(c.text, width, ellipsis)
	kept := len([]rune(strings.TrimSuffix(truncated, ellipsis)))
	return cell{text: truncated, spans: clipSpans(c.spans, kept)}
}

func padRight(s string, width int) string {
	if w := runewidth.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
