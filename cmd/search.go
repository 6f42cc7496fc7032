package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"strings"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/text/language"

	"github.com/oakwood-commons/kbx/internal/chord"
	"github.com/oakwood-commons/kbx/internal/config"
	"github.com/oakwood-commons/kbx/internal/formatter"
	"github.com/oakwood-commons/kbx/internal/limiter"
	"github.com/oakwood-commons/kbx/pkg/catalog"
	"github.com/oakwood-commons/kbx/pkg/keybinding"
	"github.com/oakwood-commons/kbx/pkg/logger"
	"github.com/oakwood-commons/kbx/pkg/settings"
)

// session is an opened catalog with its resolved model.
type session struct {
	catalog *catalog.Catalog
	model   *keybinding.Model
	run     *settings.Run
	log     logr.Logger
}

func openSession(ctx context.Context, run *settings.Run, log logr.Logger) (*session, error) {
	platform, err := chord.ParsePlatform(run.Platform)
	if err != nil {
		return nil, err
	}
	tag, err := language.Parse(run.Locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", run.Locale, err)
	}

	opts := []catalog.Option{catalog.WithLogger(log), catalog.WithPlatform(platform)}
	for _, f := range run.Catalog.UserFiles {
		opts = append(opts, catalog.WithUserFile(f))
	}
	var cat *catalog.Catalog
	if run.Catalog.Embedded() {
		cat = catalog.Default(ctx, opts...)
	} else {
		cat = catalog.Open(ctx, run.Catalog.Path, opts...)
	}

	model := keybinding.NewModel(cat, keybinding.WithLogger(log), keybinding.WithLocale(tag))
	if err := model.Resolve(ctx); err != nil {
		return nil, err
	}
	log.V(1).Info("catalog resolved", logger.CatalogKey, run.Catalog.Path, "entries", len(model.Entries()))
	return &session{catalog: cat, model: model, run: run, log: log}, nil
}

// query searches the model, applies the unbound filter and the limits, and
// collects suggestions when nothing matched.
func (s *session) query(q string, limits limiter.Config, suggestions int) ([]keybinding.ListEntry, []string) {
	results := s.model.Search(q)
	if !s.run.ShowUnbound {
		results = slices.DeleteFunc(results, func(le keybinding.ListEntry) bool { return le.Entry.Chord == nil })
	}
	var suggested []string
	if len(results) == 0 && suggestions > 0 {
		suggested = keybinding.Suggest(s.model.Entries(), q, suggestions)
	}
	s.log.V(1).Info("query", logger.QueryKey, q, "results", len(results), "suggestions", len(suggested))
	return limiter.Apply(limits, results), suggested
}

func (s *session) render(w io.Writer, q string, limits limiter.Config, suggestions int, opts formatter.Options) error {
	results, suggested := s.query(q, limits, suggestions)
	opts.Query = q
	opts.Suggestions = suggested
	return formatter.Render(w, results, opts)
}

func runSearch(ctx context.Context, cmd *cobra.Command, q string) error {
	limits := rootFlags.limits()
	if err := limits.Validate(); err != nil {
		return fmt.Errorf("record limiting: %w", err)
	}

	run := settings.FromContextOrDefault(ctx)
	out := cmd.OutOrStdout()
	opts, err := renderOptions(out, run, loadedConfig, rootFlags, cmd.Flags())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	log := *logger.FromContext(ctx)
	s, err := openSession(ctx, run, log)
	if err != nil {
		return err
	}
	suggestions := loadedConfig.App.Suggestions
	if err := s.render(out, q, limits, suggestions, opts); err != nil {
		return err
	}
	if !run.Catalog.Watch {
		return nil
	}
	return s.watch(ctx, out, cmd.ErrOrStderr(), q, limits, suggestions, opts)
}

// watch re-renders the query after every catalog reload until ctx is done.
func (s *session) watch(ctx context.Context, out, errOut io.Writer, q string, limits limiter.Config, suggestions int, opts formatter.Options) error {
	err := s.catalog.Watch(ctx, catalog.DefaultDebounce, func(err error) {
		if err != nil {
			fmt.Fprintf(errOut, "reload failed: %v\n", err)
			return
		}
		if err := s.model.Resolve(ctx); err != nil {
			fmt.Fprintf(errOut, "reload failed: %v\n", err)
			return
		}
		fmt.Fprintln(out)
		if err := s.render(out, q, limits, suggestions, opts); err != nil {
			fmt.Fprintf(errOut, "render failed: %v\n", err)
		}
	})
	if errors.Is(err, catalog.ErrNothingToWatch) {
		return fmt.Errorf("--watch needs --catalog or --user-file: %w", err)
	}
	return err
}

// renderOptions resolves the output settings from the config and flags.
func renderOptions(out io.Writer, run *settings.Run, cfg config.Config, v flagValues, fs *pflag.FlagSet) (formatter.Options, error) {
	name := cfg.Output.Format
	if fs.Changed("output") {
		name = v.output
	}
	format, err := formatter.ParseFormat(name)
	if err != nil {
		return formatter.Options{}, err
	}

	cols := configColumns(cfg.Output.Columns)
	if fs.Changed("columns") {
		if cols, err = parseColumns(v.columns); err != nil {
			return formatter.Options{}, err
		}
	}

	tty := isTerminal(out)
	opts := formatter.Options{
		Format:    format,
		NoColor:   run.NoColor || !tty || os.Getenv("NO_COLOR") != "",
		Highlight: formatter.HighlightStyle(cfg.Output.Highlight.Foreground, cfg.Output.Highlight.Bold, cfg.Output.Highlight.Underline),
		Columns:   cols,
		Width:     v.width,
		Quiet:     run.IsQuiet,
	}
	if opts.Width == 0 && tty {
		opts.Width, _ = detectTerminalSize()
	}
	return opts, nil
}

func configColumns(c config.Columns) []formatter.Column {
	enabled := map[formatter.Column]bool{
		formatter.ColumnChord:   c.Chord,
		formatter.ColumnLabel:   c.Label,
		formatter.ColumnCommand: c.Command,
		formatter.ColumnWhen:    c.When,
		formatter.ColumnSource:  c.Source,
	}
	var out []formatter.Column
	for _, col := range formatter.DefaultColumns {
		if enabled[col] {
			out = append(out, col)
		}
	}
	return out
}

func parseColumns(names []string) ([]formatter.Column, error) {
	var out []formatter.Column
	for _, n := range names {
		col := formatter.Column(strings.ToLower(strings.TrimSpace(n)))
		if col == "" {
			continue
		}
		if !slices.Contains(formatter.DefaultColumns, col) {
			return nil, fmt.Errorf("unknown column %q (valid: chord, label, command, when, source)", n)
		}
		if !slices.Contains(out, col) {
			out = append(out, col)
		}
	}
	return out, nil
}
