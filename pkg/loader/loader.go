// Package loader decodes structured files (JSON, YAML, TOML) into typed
// values, detecting the format from the file extension or the content.
package loader

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-logr/logr"
	"github.com/pelletier/go-toml/v2"
	"github.com/tailscale/hujson"
	"gopkg.in/yaml.v3"
)

// Format is a supported serialization format.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ErrEmptyInput is returned when there is nothing to decode.
var ErrEmptyInput = errors.New("empty input")

// FormatForPath returns the format implied by a file extension, or "" when
// the extension is not recognized.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	}
	return ""
}

// DetectFormat sniffs the format of data.
func DetectFormat(data []byte) Format {
	trimmed := strings.TrimSpace(string(data))
	// TOML [section] headers look like JSON arrays, so check TOML first.
	if isLikelyTOML(trimmed) {
		return FormatTOML
	}
	stripped := trimmed
	if std, err := StandardizeJSON([]byte(trimmed)); err == nil {
		stripped = strings.TrimSpace(string(std))
	}
	if strings.HasPrefix(stripped, "{") || strings.HasPrefix(stripped, "[") {
		return FormatJSON
	}
	return FormatYAML
}

// Decode decodes data in the given format into v. An empty format is
// detected from the content.
func Decode(data []byte, format Format, v any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return ErrEmptyInput
	}
	if format == "" {
		format = DetectFormat(data)
	}
	switch format {
	case FormatJSON:
		std, err := StandardizeJSON(data)
		if err != nil {
			return fmt.Errorf("invalid JSON: %w", err)
		}
		if err := json.Unmarshal(std, v); err != nil {
			return fmt.Errorf("invalid JSON: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, v); err != nil {
			return fmt.Errorf("invalid YAML: %w", err)
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, v); err != nil {
			return fmt.Errorf("invalid TOML: %w", err)
		}
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
	return nil
}

// DecodeFile reads path and decodes it into v.
func DecodeFile(path string, v any) error {
	return DecodeFileWithLogger(path, v, logr.Discard())
}

// DecodeFileWithLogger is like DecodeFile but records extension dispatch and
// fallback attempts. When the extension names a format the content does not
// parse as, the sniffed format is tried before giving up.
func DecodeFileWithLogger(path string, v any, lgr logr.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	byExt := FormatForPath(path)
	if byExt == "" {
		lgr.V(1).Info("no known extension, detecting format", "path", path)
		return Decode(data, "", v)
	}
	err = Decode(data, byExt, v)
	if err == nil || errors.Is(err, ErrEmptyInput) {
		return err
	}
	sniffed := DetectFormat(data)
	if sniffed == byExt {
		return err
	}
	lgr.V(1).Info("extension format failed, retrying with detected format",
		"path", path, "extension", byExt, "detected", sniffed, "error", err.Error())
	if ferr := Decode(data, sniffed, v); ferr != nil {
		return err
	}
	return nil
}

// StandardizeJSON turns JSON with comments and trailing commas (as editors
// write keybindings.json) into standard JSON. data is not modified.
func StandardizeJSON(data []byte) ([]byte, error) {
	return hujson.Standardize(bytes.Clone(data))
}

var (
	// [server], [[items]], ["table name"], [database.credentials]
	tomlSectionPattern = regexp.MustCompile(`^\s*\[{1,2}(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+')+(?:\.(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+'))*\]{1,2}\s*$`)
	// name = "value", "table name" = "value", database.host = "localhost"
	tomlKeyValuePattern = regexp.MustCompile(`^\s*(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+')+(?:\.(?:[a-zA-Z_][a-zA-Z0-9_-]*|"[^"]+"|'[^']+'))*\s*=\s*.+$`)
)

// isLikelyTOML reports whether input has TOML section headers, or mostly
// key = value lines.
func isLikelyTOML(input string) bool {
	sectionCount := 0
	keyValueCount := 0
	nonEmptyCount := 0

	for _, line := range strings.Split(input, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		nonEmptyCount++

		if tomlSectionPattern.MatchString(line) {
			sectionCount++
		}
		if tomlKeyValuePattern.MatchString(line) {
			keyValueCount++
		}
	}

	if sectionCount > 0 {
		return true
	}
	return nonEmptyCount > 0 && keyValueCount > nonEmptyCount/2
}
