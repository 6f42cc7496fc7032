// Package formatter renders ranked keybinding results as tables, lists,
// structured documents, markdown and HTML.
package formatter

import (
	"fmt"
	"io"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/oakwood-commons/kbx/pkg/keybinding"
)

// Format names an output format.
type Format string

const (
	FormatTable    Format = "table"
	FormatList     Format = "list"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatTOML     Format = "toml"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// Formats lists every supported format.
var Formats = []Format{FormatTable, FormatList, FormatJSON, FormatYAML, FormatTOML, FormatMarkdown, FormatHTML}

// ParseFormat resolves a format name. "md" and "yml" are accepted aliases.
func ParseFormat(name string) (Format, error) {
	switch n := strings.ToLower(strings.TrimSpace(name)); n {
	case "":
		return FormatTable, nil
	case "md":
		return FormatMarkdown, nil
	case "yml":
		return FormatYAML, nil
	default:
		for _, f := range Formats {
			if string(f) == n {
				return f, nil
			}
		}
	}
	return "", fmt.Errorf("unknown output format %q (valid: %s)", name, formatNames())
}

func formatNames() string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// Column names a visible field of a result row.
type Column string

const (
	ColumnChord   Column = "chord"
	ColumnLabel   Column = "label"
	ColumnCommand Column = "command"
	ColumnWhen    Column = "when"
	ColumnSource  Column = "source"
)

// DefaultColumns is the column order used when Options.Columns is empty.
var DefaultColumns = []Column{ColumnChord, ColumnLabel, ColumnCommand, ColumnWhen, ColumnSource}

var (
	defaultHeaderFG   = lipgloss.Color("12")
	defaultSeparator  = lipgloss.Color("240")
	defaultDimFG      = lipgloss.Color("245")
	defaultHighlightF = lipgloss.Color("#F5A623")

	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(defaultHeaderFG)
	separatorStyle = lipgloss.NewStyle().Foreground(defaultSeparator)
	dimStyle       = lipgloss.NewStyle().Foreground(defaultDimFG)
)

// DefaultHighlight is the style applied to matched text.
var DefaultHighlight = lipgloss.NewStyle().Bold(true).Foreground(defaultHighlightF)

// HighlightStyle builds a highlight style. An empty foreground keeps the
// terminal color.
func HighlightStyle(foreground string, bold, underline bool) lipgloss.Style {
	s := lipgloss.NewStyle().Bold(bold).Underline(underline)
	if foreground != "" {
		s = s.Foreground(lipgloss.Color(foreground))
	}
	return s
}

// Options controls rendering.
type Options struct {
	Format    Format
	NoColor   bool
	Highlight lipgloss.Style
	Columns   []Column
	// Width bounds table rows. Zero disables truncation.
	Width int
	// Query is echoed in structured output and the no-match message.
	Query       string
	Suggestions []string
	// Quiet drops the no-match message from text formats.
	Quiet bool
}

// DefaultOptions returns table output with the default highlight.
func DefaultOptions() Options {
	return Options{Format: FormatTable, Highlight: DefaultHighlight}
}

func (o Options) columns() []Column {
	if len(o.Columns) == 0 {
		return DefaultColumns
	}
	return o.Columns
}

// textual reports whether the format prints a message for empty results.
func (o Options) textual() bool {
	switch o.Format {
	case FormatJSON, FormatYAML, FormatTOML:
		return false
	}
	return true
}

// Render writes results to w in the configured format.
func Render(w io.Writer, results []keybinding.ListEntry, opts Options) error {
	var (
		out string
		err error
	)
	if opts.Quiet && len(results) == 0 && opts.textual() {
		return nil
	}
	switch opts.Format {
	case FormatTable, "":
		out = renderTable(results, opts)
	case FormatList:
		out = renderList(results, opts)
	case FormatJSON:
		out, err = renderJSON(results, opts)
	case FormatYAML:
		out, err = renderYAML(results, opts)
	case FormatTOML:
		out, err = renderTOML(results, opts)
	case FormatMarkdown:
		out = renderMarkdown(results, opts)
	case FormatHTML:
		out = renderHTML(results, opts)
	default:
		return fmt.Errorf("unknown output format %q", opts.Format)
	}
	if err != nil {
		return fmt.Errorf("render %s: %w", opts.Format, err)
	}
	_, err = io.WriteString(w, out)
	return err
}

// NoMatchMessage describes an empty result, with suggestions when any.
func NoMatchMessage(query string, suggestions []string) string {
	if strings.TrimSpace(query) == "" {
		return "No keybindings."
	}
	msg := fmt.Sprintf("No keybindings match %q.", query)
	if len(suggestions) > 0 {
		msg += " Did you mean: " + strings.Join(suggestions, ", ") + "?"
	}
	return msg
}

// cell is one field of a row with its matched ranges.
type cell struct {
	text  string
	spans keybinding.Spans
}

func cellFor(r keybinding.ListEntry, col Column) cell {
	e := r.Entry
	switch col {
	case ColumnChord:
		return cell{text: e.ChordLabel(), spans: r.ChordMatches}
	case ColumnLabel:
		return cell{text: e.CommandLabel, spans: r.CommandLabelMatches}
	case ColumnCommand:
		return cell{text: e.Command, spans: r.CommandIDMatches}
	case ColumnWhen:
		return cell{text: e.When}
	case ColumnSource:
		return cell{text: e.Source.String()}
	}
	return cell{}
}

func headerName(col Column) string {
	if col == ColumnChord {
		return "Keybinding"
	}
	s := string(col)
	return strings.ToUpper(s[:1]) + s[1:]
}
