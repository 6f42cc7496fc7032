// Package config loads kbx settings from the embedded defaults and an
// optional user file.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/kbx/internal/chord"
	"github.com/oakwood-commons/kbx/pkg/logger"
	"github.com/oakwood-commons/kbx/pkg/settings"
)

//go:embed default_config.yaml
var embeddedDefaultConfig []byte

// FileName is the config file looked up under the XDG config directory.
const FileName = "config.yaml"

// Config is the merged kbx configuration.
type Config struct {
	App    App    `yaml:"app" json:"app"`
	Output Output `yaml:"output" json:"output"`
}

// App holds catalog and ranking settings.
type App struct {
	Locale      string   `yaml:"locale" json:"locale"`
	Platform    string   `yaml:"platform" json:"platform"`
	Catalog     string   `yaml:"catalog" json:"catalog"`
	UserFiles   []string `yaml:"user_files" json:"user_files"`
	ShowUnbound bool     `yaml:"show_unbound" json:"show_unbound"`
	Suggestions int      `yaml:"suggestions" json:"suggestions"`
	LogFormat   string   `yaml:"log_format" json:"log_format"`
}

// Output holds rendering settings.
type Output struct {
	Format    string    `yaml:"format" json:"format"`
	NoColor   bool      `yaml:"no_color" json:"no_color"`
	Highlight Highlight `yaml:"highlight" json:"highlight"`
	Columns   Columns   `yaml:"columns" json:"columns"`
}

// Highlight styles the matched parts of a result.
type Highlight struct {
	Foreground string `yaml:"foreground" json:"foreground"`
	Bold       bool   `yaml:"bold" json:"bold"`
	Underline  bool   `yaml:"underline" json:"underline"`
}

// Columns toggles the table and list columns.
type Columns struct {
	Command bool `yaml:"command" json:"command"`
	Label   bool `yaml:"label" json:"label"`
	Chord   bool `yaml:"chord" json:"chord"`
	When    bool `yaml:"when" json:"when"`
	Source  bool `yaml:"source" json:"source"`
}

// DefaultYAML returns a copy of the embedded default config.
func DefaultYAML() []byte {
	return append([]byte(nil), embeddedDefaultConfig...)
}

// Default decodes the embedded default config.
func Default() (Config, error) {
	var cfg Config
	if len(embeddedDefaultConfig) == 0 {
		return cfg, errors.New("embedded default config is empty")
	}
	if err := yaml.Unmarshal(embeddedDefaultConfig, &cfg); err != nil {
		return cfg, fmt.Errorf("decode default config: %w", err)
	}
	return cfg, nil
}

// Load returns the defaults with the file at path decoded over them. Keys
// missing from the file keep their default value. An empty path returns
// the defaults.
func Load(path string) (Config, error) {
	cfg, err := Default()
	if err != nil {
		return cfg, err
	}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the values that are parsed later on.
func (c Config) Validate() error {
	var errs []error
	if _, err := language.Parse(c.App.Locale); err != nil {
		errs = append(errs, fmt.Errorf("app.locale: %w", err))
	}
	if _, err := chord.ParsePlatform(c.App.Platform); err != nil {
		errs = append(errs, fmt.Errorf("app.platform: %w", err))
	}
	if _, err := logger.ParseFormat(c.App.LogFormat); err != nil {
		errs = append(errs, fmt.Errorf("app.log_format: %w", err))
	}
	if c.App.Suggestions < 0 {
		errs = append(errs, fmt.Errorf("app.suggestions must be non-negative, got %d", c.App.Suggestions))
	}
	return errors.Join(errs...)
}

// Apply copies the config into run settings.
func (c Config) Apply(run *settings.Run) {
	run.Locale = c.App.Locale
	run.Platform = c.App.Platform
	run.Catalog.Path = c.App.Catalog
	run.Catalog.UserFiles = append([]string(nil), c.App.UserFiles...)
	run.ShowUnbound = c.App.ShowUnbound
	run.NoColor = c.Output.NoColor
}

// ResolvePath returns explicit when set, otherwise the first kbx/config.yaml
// found in the XDG config directories, otherwise "".
func ResolvePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	path, err := xdg.SearchConfigFile(filepath.Join(settings.CliBinaryName, FileName))
	if err != nil {
		return ""
	}
	return path
}
