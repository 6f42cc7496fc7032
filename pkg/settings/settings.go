// Package settings provides build metadata, per-run options, and context
// helpers shared by the kbx CLI and library packages.
package settings

// CliBinaryName is the canonical binary name for this tool.
const CliBinaryName = "kbx"

// VersionInformation is populated at build time via ldflags.
var VersionInformation = VersionInfo{
	Commit:       "unknown",
	BuildVersion: "v0.0.0-nightly",
	BuildTime:    "unknown",
}

// VersionInfo holds metadata about the build.
type VersionInfo struct {
	Commit       string
	BuildVersion string
	BuildTime    string
}

// CatalogSettings says where keybinding data comes from. An empty Path
// selects the embedded default catalog.
type CatalogSettings struct {
	Path      string
	UserFiles []string
	Watch     bool
}

// Embedded reports whether the built-in catalog is used.
func (c CatalogSettings) Embedded() bool { return c.Path == "" }

// Run holds the settings for a single execution of the application.
type Run struct {
	MinLogLevel int8
	Catalog     CatalogSettings
	Locale      string
	Platform    string
	ShowUnbound bool
	IsQuiet     bool
	NoColor     bool
}

// NewCliParams returns the defaults used when kbx runs from the command line.
func NewCliParams() *Run {
	return &Run{
		MinLogLevel: 0,
		Locale:      "en",
		ShowUnbound: true,
	}
}
