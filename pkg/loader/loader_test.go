package loader

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-logr/logr/testr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type binding struct {
	Key     string `json:"key" yaml:"key" toml:"key"`
	Command string `json:"command" yaml:"command" toml:"command"`
	When    string `json:"when,omitempty" yaml:"when,omitempty" toml:"when,omitempty"`
}

type doc struct {
	Title    string    `json:"title" yaml:"title" toml:"title"`
	Bindings []binding `json:"bindings" yaml:"bindings" toml:"bindings"`
}

func TestDecode(t *testing.T) {
	want := doc{
		Title: "sample",
		Bindings: []binding{
			{Key: "ctrl+s", Command: "save"},
			{Key: "ctrl+k ctrl+s", Command: "keys", When: "editorFocus"},
		},
	}
	tests := []struct {
		name   string
		format Format
		input  string
	}{
		{
			name:   "json",
			format: FormatJSON,
			input:  `{"title":"sample","bindings":[{"key":"ctrl+s","command":"save"},{"key":"ctrl+k ctrl+s","command":"keys","when":"editorFocus"}]}`,
		},
		{
			name:   "yaml",
			format: FormatYAML,
			input: `title: sample
bindings:
  - key: ctrl+s
    command: save
  - key: ctrl+k ctrl+s
    command: keys
    when: editorFocus
`,
		},
		{
			name:   "toml",
			format: FormatTOML,
			input: `title = "sample"

[[bindings]]
key = "ctrl+s"
command = "save"

[[bindings]]
key = "ctrl+k ctrl+s"
command = "keys"
when = "editorFocus"
`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var explicit doc
			require.NoError(t, Decode([]byte(tt.input), tt.format, &explicit))
			assert.Equal(t, want, explicit)

			var detected doc
			require.NoError(t, Decode([]byte(tt.input), "", &detected))
			assert.Equal(t, want, detected)
			assert.Equal(t, tt.format, DetectFormat([]byte(tt.input)))
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	var d doc
	assert.ErrorIs(t, Decode([]byte("  \n"), "", &d), ErrEmptyInput)
	assert.Error(t, Decode([]byte(`{"title":`), FormatJSON, &d))
	assert.Error(t, Decode([]byte("title: [unclosed"), FormatYAML, &d))
	assert.Error(t, Decode([]byte("x"), Format("xml"), &d))
}

func TestDecodeJSONWithComments(t *testing.T) {
	input := `// Place your key bindings in this file
[
  {
    "key": "ctrl+/", // line comment
    "command": "editor.action.commentLine",
    /* block
       comment */
    "when": "editorTextFocus && !editorReadonly",
  },
  { "key": "ctrl+k", "command": "a//b /* not a comment */" }, // last
]`
	var got []binding
	require.NoError(t, Decode([]byte(input), FormatJSON, &got))
	assert.Equal(t, []binding{
		{Key: "ctrl+/", Command: "editor.action.commentLine", When: "editorTextFocus && !editorReadonly"},
		{Key: "ctrl+k", Command: "a//b /* not a comment */"},
	}, got)
	assert.Equal(t, FormatJSON, DetectFormat([]byte(input)))
}

func TestStandardizeJSON(t *testing.T) {
	input := []byte(`{"a": "quote \" // still string",}`)
	orig := string(input)

	std, err := StandardizeJSON(input)
	require.NoError(t, err)
	var got map[string]string
	require.NoError(t, json.Unmarshal(std, &got))
	assert.Equal(t, map[string]string{"a": `quote " // still string`}, got)
	assert.Equal(t, orig, string(input), "input is left untouched")

	_, err = StandardizeJSON([]byte(`{"a": `))
	assert.Error(t, err)
}

func TestFormatForPath(t *testing.T) {
	tests := map[string]Format{
		"keybindings.json":  FormatJSON,
		"keybindings.jsonc": FormatJSON,
		"catalog.YML":       FormatYAML,
		"catalog.yaml":      FormatYAML,
		"catalog.toml":      FormatTOML,
		"catalog":           "",
		"catalog.txt":       "",
	}
	for path, want := range tests {
		t.Run(path, func(t *testing.T) {
			assert.Equal(t, want, FormatForPath(path))
		})
	}
}

func TestDecodeFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("extension dispatch", func(t *testing.T) {
		path := filepath.Join(dir, "data.yml")
		require.NoError(t, os.WriteFile(path, []byte("title: from-yaml\n"), 0o644))
		var d doc
		require.NoError(t, DecodeFile(path, &d))
		assert.Equal(t, "from-yaml", d.Title)
	})

	t.Run("no extension sniffs content", func(t *testing.T) {
		path := filepath.Join(dir, "data")
		require.NoError(t, os.WriteFile(path, []byte(`title = "from-toml"`), 0o644))
		var d doc
		require.NoError(t, DecodeFile(path, &d))
		assert.Equal(t, "from-toml", d.Title)
	})

	t.Run("wrong extension falls back", func(t *testing.T) {
		path := filepath.Join(dir, "oops.toml")
		require.NoError(t, os.WriteFile(path, []byte(`{"title":"from-json"}`), 0o644))
		var d doc
		require.NoError(t, DecodeFileWithLogger(path, &d, testr.New(t)))
		assert.Equal(t, "from-json", d.Title)
	})

	t.Run("missing file", func(t *testing.T) {
		var d doc
		err := DecodeFile(filepath.Join(dir, "absent.json"), &d)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestIsLikelyTOML(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"section header", "[server]\nhost = \"localhost\"", true},
		{"array of tables", "[[bindings]]\nkey = \"ctrl+s\"", true},
		{"key-value assignments", "name = \"test\"\nvalue = 42", true},
		{"dotted section header", "[database.credentials]\nusername = \"admin\"", true},
		{"yaml", "name: test\nvalue: 42", false},
		{"json object", `{"name": "test"}`, false},
		{"json array", `[1, 2, 3]`, false},
		{"yaml list", "- item1\n- item2", false},
		{"comments only", "# nothing here", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isLikelyTOML(tt.input), "isLikelyTOML(%q)", tt.input)
		})
	}
}
