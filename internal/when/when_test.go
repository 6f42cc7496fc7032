package when

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	n, err := NewNormalizer()
	require.NoError(t, err)

	tests := []struct {
		name      string
		expr      string
		canonical string
		keys      []string
		parsed    bool
	}{
		{
			name: "empty",
			expr: "   ",
		},
		{
			name:      "single key",
			expr:      "editorTextFocus",
			canonical: "editorTextFocus",
			keys:      []string{"editorTextFocus"},
			parsed:    true,
		},
		{
			name:      "whitespace collapsed",
			expr:      "  editorTextFocus   &&   !editorReadonly ",
			canonical: "editorTextFocus && !editorReadonly",
			keys:      []string{"editorReadonly", "editorTextFocus"},
			parsed:    true,
		},
		{
			name:      "comparison value is not a key",
			expr:      "view == 'workbench.explorer'",
			canonical: `view == "workbench.explorer"`,
			keys:      []string{"view"},
			parsed:    true,
		},
		{
			name:      "dotted key",
			expr:      "config.editor.wordWrap && editorFocus",
			canonical: "config.editor.wordWrap && editorFocus",
			keys:      []string{"config.editor.wordWrap", "editorFocus"},
			parsed:    true,
		},
		{
			name:      "duplicate keys",
			expr:      "inputFocus || inputFocus",
			canonical: "inputFocus || inputFocus",
			keys:      []string{"inputFocus"},
			parsed:    true,
		},
		{
			name:      "regex falls back",
			expr:      "resourceFilename =~ /docker/  && editorFocus",
			canonical: "resourceFilename =~ /docker/ && editorFocus",
			keys:      []string{"editorFocus", "resourceFilename"},
		},
		{
			name:      "colon key falls back",
			expr:      "sideBarVisible && view.container:explorer",
			canonical: "sideBarVisible && view.container:explorer",
			keys:      []string{"sideBarVisible", "view.container:explorer"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := n.Normalize(tt.expr)
			assert.Equal(t, tt.canonical, c.Canonical)
			assert.Equal(t, tt.keys, c.Keys)
			assert.Equal(t, tt.parsed, c.Parsed)
		})
	}
}

func TestNormalizeIsStable(t *testing.T) {
	n, err := NewNormalizer()
	require.NoError(t, err)

	first := n.Normalize("a && !b")
	second := n.Normalize(first.Canonical)
	assert.Equal(t, first.Canonical, second.Canonical)
	assert.Equal(t, first.Keys, second.Keys)
}

func TestLexicalKeys(t *testing.T) {
	got := lexicalKeys("(a == x) || !b-c:d || true || 3 > 2")
	assert.Equal(t, []string{"a", "b-c:d"}, got)
}
