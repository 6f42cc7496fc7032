package keybinding

import (
	"context"
	"fmt"
	"slices"
	"sync/atomic"

	"github.com/go-logr/logr"
	"golang.org/x/text/language"
)

// Host supplies the raw data a Model is built from.
type Host interface {
	// Ready blocks until the host's services are available.
	Ready(ctx context.Context) error
	Bindings() []ResolvedBinding
	LookupLabel(command string) (string, bool)
	UnboundCommands(bound BoundSet) []string
}

// Model holds the sorted entry list for a Host and answers queries over it.
// It is safe for concurrent use; Resolve publishes a new snapshot without
// disturbing readers of the previous one.
type Model struct {
	host   Host
	locale language.Tag
	log    logr.Logger

	entries atomic.Pointer[[]Entry]
}

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the logger. The default discards.
func WithLogger(log logr.Logger) Option {
	return func(m *Model) {
		m.log = log
	}
}

// WithLocale sets the collation locale used for ranking.
func WithLocale(tag language.Tag) Option {
	return func(m *Model) {
		m.locale = tag
	}
}

// NewModel creates a Model over host. Call Resolve before searching.
func NewModel(host Host, opts ...Option) *Model {
	m := &Model{
		host:   host,
		locale: DefaultLocale,
		log:    logr.Discard(),
	}
	for _, opt := range opts {
		opt(m)
	}
	empty := []Entry{}
	m.entries.Store(&empty)
	return m
}

// Resolve waits for the host, then assembles and sorts a fresh entry list.
// On error the previous snapshot stays in place.
func (m *Model) Resolve(ctx context.Context) error {
	if err := m.host.Ready(ctx); err != nil {
		return fmt.Errorf("waiting for keybinding host: %w", err)
	}
	bindings := m.host.Bindings()
	unbound := m.host.UnboundCommands(Bound(bindings))
	entries := Sort(assemble(bindings, unbound, m.host.LookupLabel, m.log), m.locale)
	m.entries.Store(&entries)
	m.log.V(1).Info("resolved keybindings", "entries", len(entries), "locale", m.locale.String())
	return nil
}

// Entries returns a copy of the current snapshot.
func (m *Model) Entries() []Entry {
	return slices.Clone(*m.entries.Load())
}

// Search runs query over the current snapshot.
func (m *Model) Search(query string) []ListEntry {
	return Search(*m.entries.Load(), query)
}
