package formatter

import (
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"github.com/oakwood-commons/kbx/pkg/keybinding"
	"github.com/oakwood-commons/kbx/pkg/settings"
)

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"|", `\|`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"[", `\[`,
	"]", `\]`,
	"<", "&lt;",
	">", "&gt;",
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

func boldMarkdown(s string) string {
	return "**" + escapeMarkdown(s) + "**"
}

// renderMarkdown renders a GitHub-style table. Matched text is bold.
func renderMarkdown(results []keybinding.ListEntry, opts Options) string {
	var b strings.Builder
	if opts.Query != "" {
		b.WriteString("Results for " + escapeMarkdown(opts.Query) + "\n\n")
	}
	if len(results) == 0 {
		b.WriteString(escapeMarkdown(NoMatchMessage(opts.Query, opts.Suggestions)) + "\n")
		return b.String()
	}

	cols := opts.columns()
	headers := make([]string, len(cols))
	rule := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = headerName(c)
		rule[i] = "---"
	}
	b.WriteString("| " + strings.Join(headers, " | ") + " |\n")
	b.WriteString("|" + strings.Join(rule, "|") + "|\n")

	values := make([]string, len(cols))
	for _, r := range results {
		for i, col := range cols {
			c := cellFor(r, col)
			values[i] = highlightWith(c.text, c.spans, escapeMarkdown, boldMarkdown)
		}
		b.WriteString("| " + strings.Join(values, " | ") + " |\n")
	}
	return b.String()
}

// renderHTML converts the markdown rendering into a standalone page.
func renderHTML(results []keybinding.ListEntry, opts Options) string {
	md := renderMarkdown(results, opts)

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.NoEmptyLineBeforeBlock)
	doc := p.Parse([]byte(md))

	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.CompletePage,
		Title: settings.CliBinaryName + " keybindings",
	})
	return string(markdown.Render(doc, renderer))
}
