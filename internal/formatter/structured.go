package formatter

import (
	"bytes"
	"encoding/json"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/kbx/pkg/keybinding"
)

// Span is a matched rune range [Start, End).
type Span struct {
	Start int `json:"start" yaml:"start" toml:"start"`
	End   int `json:"end" yaml:"end" toml:"end"`
}

// Highlights holds the matched ranges per field.
type Highlights struct {
	Command []Span `json:"command,omitempty" yaml:"command,omitempty" toml:"command,omitempty"`
	Label   []Span `json:"label,omitempty" yaml:"label,omitempty" toml:"label,omitempty"`
	Chord   []Span `json:"chord,omitempty" yaml:"chord,omitempty" toml:"chord,omitempty"`
}

// Record is the structured form of one result.
type Record struct {
	ID         string      `json:"id" yaml:"id" toml:"id"`
	Command    string      `json:"command" yaml:"command" toml:"command"`
	Label      string      `json:"label,omitempty" yaml:"label,omitempty" toml:"label,omitempty"`
	Chord      string      `json:"chord,omitempty" yaml:"chord,omitempty" toml:"chord,omitempty"`
	AriaLabel  string      `json:"ariaLabel,omitempty" yaml:"ariaLabel,omitempty" toml:"ariaLabel,omitempty"`
	Key        string      `json:"key,omitempty" yaml:"key,omitempty" toml:"key,omitempty"`
	When       string      `json:"when,omitempty" yaml:"when,omitempty" toml:"when,omitempty"`
	WhenKeys   []string    `json:"whenKeys,omitempty" yaml:"whenKeys,omitempty" toml:"whenKeys,omitempty"`
	Source     string      `json:"source" yaml:"source" toml:"source"`
	Highlights *Highlights `json:"highlights,omitempty" yaml:"highlights,omitempty" toml:"highlights,omitempty"`
}

// Document is the top-level structured output.
type Document struct {
	Query       string   `json:"query,omitempty" yaml:"query,omitempty" toml:"query,omitempty"`
	Results     []Record `json:"results" yaml:"results" toml:"results"`
	Suggestions []string `json:"suggestions,omitempty" yaml:"suggestions,omitempty" toml:"suggestions,omitempty"`
}

// NewDocument converts results into their structured form.
func NewDocument(results []keybinding.ListEntry, query string, suggestions []string) Document {
	doc := Document{
		Query:       query,
		Results:     make([]Record, 0, len(results)),
		Suggestions: suggestions,
	}
	for _, r := range results {
		e := r.Entry
		rec := Record{
			ID:        r.ID,
			Command:   e.Command,
			Label:     e.CommandLabel,
			Chord:     e.ChordLabel(),
			AriaLabel: e.ChordAriaLabel(),
			When:      e.When,
			WhenKeys:  e.WhenKeys,
			Source:    e.Source.String(),
		}
		if e.Chord != nil {
			rec.Key = e.Chord.String()
		}
		if r.Matched() {
			rec.Highlights = &Highlights{
				Command: toSpans(r.CommandIDMatches),
				Label:   toSpans(r.CommandLabelMatches),
				Chord:   toSpans(r.ChordMatches),
			}
		}
		doc.Results = append(doc.Results, rec)
	}
	return doc
}

func toSpans(in keybinding.Spans) []Span {
	if len(in) == 0 {
		return nil
	}
	out := make([]Span, len(in))
	for i, m := range in {
		out[i] = Span{Start: m.Start, End: m.End}
	}
	return out
}

func renderJSON(results []keybinding.ListEntry, opts Options) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(NewDocument(results, opts.Query, opts.Suggestions)); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func renderYAML(results []keybinding.ListEntry, opts Options) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(NewDocument(results, opts.Query, opts.Suggestions)); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func renderTOML(results []keybinding.ListEntry, opts Options) (string, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(NewDocument(results, opts.Query, opts.Suggestions)); err != nil {
		return "", err
	}
	return buf.String(), nil
}
