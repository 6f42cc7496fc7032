package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/oakwood-commons/kbx/internal/config"
	"github.com/oakwood-commons/kbx/internal/formatter"
	"github.com/oakwood-commons/kbx/internal/limiter"
	"github.com/oakwood-commons/kbx/pkg/logger"
	"github.com/oakwood-commons/kbx/pkg/settings"
)

// flagValues holds the root command flags.
type flagValues struct {
	catalog     string
	userFiles   []string
	output      string
	locale      string
	platform    string
	noColor     bool
	quiet       bool
	showUnbound bool
	watch       bool
	width       int
	columns     []string
	limit       int
	offset      int
	tail        int
}

var (
	rootFlags  flagValues
	configFile string
	debug      bool

	// rootCtx carries the logger and run settings prepared by PersistentPreRunE.
	rootCtx = context.Background()
	// loadedConfig is the merged config for the running command.
	loadedConfig config.Config
)

var rootCmd = &cobra.Command{
	Use:   settings.CliBinaryName + " [query...]",
	Short: settings.CliBinaryName + " - search editor keybindings",
	Long: `kbx searches a keybinding catalog the way an editor's keyboard shortcuts
editor does. The query is matched against command ids, command labels and
key chords; results are ranked with bound commands first, then labelled
ones, then by label in the configured locale.

Qualifiers narrow the search:
  @source:user       only user bindings (or @source:default)
  @command:<id>      only bindings of one command id

Without a query every entry is listed.`,
	Example: "\n  kbx format doc\n  kbx ctrl+shift\n  kbx @source:user save\n  kbx -c catalog.yaml --user-file keybindings.json -o json save\n  kbx --platform mac --watch --user-file keybindings.json\n",

	SilenceUsage: true,

	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(config.ResolvePath(configFile))
		if err != nil {
			return err
		}
		loadedConfig = cfg

		format, err := logger.ParseFormat(cfg.App.LogFormat)
		if err != nil {
			return err
		}
		// --debug maps to zap.DebugLevel (-1), otherwise zap.InfoLevel (0).
		var level int8
		if debug {
			level = -1
		}
		lgr := logger.Setup(logger.Options{Level: level, Format: format})
		lgr = logger.WithValues(lgr, logger.RootCommandKey, settings.CliBinaryName, logger.SubCommandKey, cmd.Name())

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		run := runSettings(cmd.Flags(), rootFlags, cfg)
		rootCtx = settings.IntoContext(logger.WithLogger(ctx, lgr), run)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSearch(rootCtx, cmd, strings.Join(args, " "))
	},
}

func registerSearchFlags(fs *pflag.FlagSet, v *flagValues) {
	fs.StringVarP(&v.catalog, "catalog", "c", "", "catalog file (yaml, json or toml); default is the built-in catalog")
	fs.StringArrayVar(&v.userFiles, "user-file", nil, "user keybindings file layered over the catalog (repeatable)")
	fs.StringVarP(&v.output, "output", "o", "", "output format: "+strings.Join(formatNames(), "|")+" (default from config)")
	fs.StringVar(&v.locale, "locale", "", "BCP-47 locale used to order labels (default from config)")
	fs.StringVar(&v.platform, "platform", "", "platform used to label chords: linux|windows|mac (default: running platform)")
	fs.BoolVar(&v.noColor, "no-color", false, "disable color output")
	fs.BoolVarP(&v.quiet, "quiet", "q", false, "print nothing when no keybinding matches")
	fs.BoolVar(&v.showUnbound, "show-unbound", true, "list commands that have no keybinding")
	fs.BoolVar(&v.watch, "watch", false, "re-run the query whenever a catalog file changes")
	fs.IntVar(&v.width, "width", 0, "table width in columns (default: terminal width)")
	fs.StringSliceVar(&v.columns, "columns", nil, "columns to show: chord,label,command,when,source")
	fs.IntVar(&v.limit, "limit", 0, "limit total number of results displayed")
	fs.IntVar(&v.offset, "offset", 0, "skip the first N results")
	fs.IntVar(&v.tail, "tail", 0, "show the last N results (mutually exclusive with --limit; ignores --offset)")
}

func formatNames() []string {
	names := make([]string, len(formatter.Formats))
	for i, f := range formatter.Formats {
		names[i] = string(f)
	}
	return names
}

// runSettings layers flags that were set explicitly over the config.
func runSettings(fs *pflag.FlagSet, v flagValues, cfg config.Config) *settings.Run {
	run := settings.NewCliParams()
	cfg.Apply(run)
	if fs.Changed("catalog") {
		run.Catalog.Path = v.catalog
	}
	if fs.Changed("user-file") {
		run.Catalog.UserFiles = append(run.Catalog.UserFiles, v.userFiles...)
	}
	if fs.Changed("locale") {
		run.Locale = v.locale
	}
	if fs.Changed("platform") {
		run.Platform = v.platform
	}
	if fs.Changed("show-unbound") {
		run.ShowUnbound = v.showUnbound
	}
	if fs.Changed("no-color") {
		run.NoColor = v.noColor
	}
	if fs.Changed("quiet") {
		run.IsQuiet = v.quiet
	}
	run.Catalog.Watch = v.watch
	if debug {
		run.MinLogLevel = -1
	}
	return run
}

func (v flagValues) limits() limiter.Config {
	return limiter.Config{Limit: v.limit, Offset: v.offset, Tail: v.tail}
}

func init() { //nolint:gochecknoinits
	registerSearchFlags(rootCmd.Flags(), &rootFlags)
	rootCmd.PersistentFlags().StringVar(&configFile, "config-file", "", "path to a YAML config file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "write debug logs to stderr")

	rootCmd.Version = cliVersionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.AddCommand(versionCmd, configCmd, whenCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func cliVersionString() string {
	v := settings.VersionInformation
	return fmt.Sprintf("%s %s (commit %s, built %s, %s)", settings.CliBinaryName, v.BuildVersion, v.Commit, v.BuildTime, goVersion())
}
