// Package catalog loads keybindings, command labels and the command universe
// from catalog files and serves them as a keybinding.Host.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-logr/logr"
	"golang.org/x/sync/errgroup"

	"github.com/oakwood-commons/kbx/internal/chord"
	"github.com/oakwood-commons/kbx/internal/when"
	"github.com/oakwood-commons/kbx/pkg/keybinding"
	"github.com/oakwood-commons/kbx/pkg/loader"
)

// ErrEmptyCatalog is returned when a catalog defines no commands, labels or
// bindings.
var ErrEmptyCatalog = errors.New("catalog is empty")

// Catalog is a keybinding.Host backed by catalog files. Loading happens in
// the background; Ready reports when it is done.
type Catalog struct {
	path      string
	userPaths []string
	platform  chord.Platform
	log       logr.Logger

	ready chan struct{}
	err   error

	mu       sync.RWMutex
	bindings []keybinding.ResolvedBinding
	lookup   keybinding.LabelLookup
	commands []string
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithLogger sets the logger. The default discards.
func WithLogger(log logr.Logger) Option {
	return func(c *Catalog) {
		c.log = log
	}
}

// WithPlatform sets the platform chords are labelled for. The default is the
// running platform.
func WithPlatform(p chord.Platform) Option {
	return func(c *Catalog) {
		c.platform = p
	}
}

// WithUserFile layers a user keybindings file on top of the catalog. The
// file is either a catalog or a plain list of {key, command, when} records,
// which are taken as user bindings.
func WithUserFile(path string) Option {
	return func(c *Catalog) {
		if path != "" {
			c.userPaths = append(c.userPaths, path)
		}
	}
}

func newCatalog(path string, opts []Option) *Catalog {
	c := &Catalog{
		path:     path,
		platform: chord.CurrentPlatform(),
		log:      logr.Discard(),
		ready:    make(chan struct{}),
		lookup:   keybinding.EditorFirst(nil, nil),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Open starts loading the catalog at path in the background. An empty path
// loads the embedded default catalog. Load errors surface from Ready.
func Open(ctx context.Context, path string, opts ...Option) *Catalog {
	c := newCatalog(path, opts)
	go func() {
		defer close(c.ready)
		c.err = c.Reload(ctx)
	}()
	return c
}

// Default opens the embedded default catalog.
func Default(ctx context.Context, opts ...Option) *Catalog {
	return Open(ctx, "", opts...)
}

// FromFile builds a ready Catalog from an in-memory catalog.
func FromFile(f File, opts ...Option) (*Catalog, error) {
	c := newCatalog("", opts)
	defer close(c.ready)
	if err := c.apply(f); err != nil {
		c.err = err
		return nil, err
	}
	return c, nil
}

// Ready blocks until loading finishes and returns its error.
func (c *Catalog) Ready(ctx context.Context) error {
	select {
	case <-c.ready:
		return c.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Paths returns the files the catalog reads, in layering order. The embedded
// catalog has no path.
func (c *Catalog) Paths() []string {
	var out []string
	if c.path != "" {
		out = append(out, c.path)
	}
	return append(out, c.userPaths...)
}

// Reload reads every catalog file again and swaps in the result. On error
// the previous contents stay in place.
func (c *Catalog) Reload(ctx context.Context) error {
	layers := make([]File, 1+len(c.userPaths))
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		f, err := c.readBase()
		layers[0] = f
		return err
	})
	for i, p := range c.userPaths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f, err := readUser(p, c.log)
			layers[i+1] = f
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	merged := layers[0]
	for _, l := range layers[1:] {
		merged = merged.merge(l)
	}
	return c.apply(merged)
}

func (c *Catalog) readBase() (File, error) {
	var f File
	if c.path == "" {
		if err := loader.Decode(defaultCatalog, loader.FormatYAML, &f); err != nil {
			return File{}, fmt.Errorf("embedded catalog: %w", err)
		}
		return f, nil
	}
	if err := loader.DecodeFileWithLogger(c.path, &f, c.log); err != nil {
		return File{}, fmt.Errorf("loading catalog %s: %w", c.path, err)
	}
	return f, nil
}

func readUser(path string, log logr.Logger) (File, error) {
	var list []keybinding.RawBinding
	if err := loader.DecodeFile(path, &list); err == nil {
		return File{User: list}, nil
	}
	var f File
	if err := loader.DecodeFileWithLogger(path, &f, log); err != nil {
		return File{}, fmt.Errorf("loading user keybindings %s: %w", path, err)
	}
	return f, nil
}

func (c *Catalog) apply(f File) error {
	if f.empty() {
		return ErrEmptyCatalog
	}
	normalizer, err := when.NewNormalizer()
	if err != nil {
		return err
	}

	bindings := make([]keybinding.ResolvedBinding, 0, len(f.Defaults)+len(f.User))
	bindings = c.resolve(bindings, f.Defaults, true, normalizer)
	bindings = c.resolve(bindings, f.User, false, normalizer)

	c.mu.Lock()
	c.bindings = bindings
	c.lookup = keybinding.EditorFirst(f.EditorActions, f.WorkbenchActions)
	c.commands = f.commandUniverse()
	c.mu.Unlock()

	c.log.V(1).Info("catalog loaded", "path", c.path, "bindings", len(bindings), "commands", len(c.commands))
	return nil
}

func (c *Catalog) resolve(out []keybinding.ResolvedBinding, raw []keybinding.RawBinding, isDefault bool, n *when.Normalizer) []keybinding.ResolvedBinding {
	for _, item := range raw {
		item.IsDefault = isDefault
		item.Command = strings.TrimSpace(item.Command)
		rb := keybinding.ResolvedBinding{Item: item}
		if item.Key != "" {
			ch, err := chord.Parse(item.Key, c.platform)
			if err != nil {
				c.log.Info("ignoring unparsable key", "key", item.Key, "command", item.Command, "error", err.Error())
			} else {
				rb.Chord = ch
			}
		}
		clause := n.Normalize(item.When)
		rb.When = clause.Canonical
		rb.WhenKeys = clause.Keys
		if item.When != "" && !clause.Parsed {
			c.log.V(1).Info("when condition kept verbatim", "command", item.Command, "when", clause.Raw)
		}
		out = append(out, rb)
	}
	return out
}

// Bindings returns the resolved bindings, defaults first.
func (c *Catalog) Bindings() []keybinding.ResolvedBinding {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.bindings
}

// LookupLabel returns the label of command, preferring editor actions.
func (c *Catalog) LookupLabel(command string) (string, bool) {
	c.mu.RLock()
	lookup := c.lookup
	c.mu.RUnlock()
	return lookup(command)
}

// UnboundCommands returns the commands of the universe missing from bound.
func (c *Catalog) UnboundCommands(bound keybinding.BoundSet) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []string
	for _, id := range c.commands {
		if !bound.Has(id) {
			out = append(out, id)
		}
	}
	return out
}
