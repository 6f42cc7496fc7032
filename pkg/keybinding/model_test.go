package keybinding

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-logr/logr/testr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

type fakeHost struct {
	ready    chan struct{}
	err      error
	bindings []ResolvedBinding
	labels   map[string]string
	commands []string
}

func (h *fakeHost) Ready(ctx context.Context) error {
	if h.ready != nil {
		select {
		case <-h.ready:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return h.err
}

func (h *fakeHost) Bindings() []ResolvedBinding { return h.bindings }

func (h *fakeHost) LookupLabel(command string) (string, bool) {
	label, ok := h.labels[command]
	return label, ok
}

func (h *fakeHost) UnboundCommands(bound BoundSet) []string {
	var out []string
	for _, c := range h.commands {
		if !bound.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

func TestModelResolve(t *testing.T) {
	host := &fakeHost{
		bindings: []ResolvedBinding{
			bound(t, "ctrl+s", "workbench.action.files.save", "", true),
			bound(t, "ctrl+k ctrl+s", "workbench.action.openGlobalKeybindings", "", true),
		},
		labels: map[string]string{
			"workbench.action.files.save":            "Save",
			"workbench.action.openGlobalKeybindings": "Open Keyboard Shortcuts",
		},
		commands: []string{"workbench.action.files.save", "workbench.action.closeAll"},
	}
	m := NewModel(host, WithLogger(testr.New(t)), WithLocale(language.English))
	assert.Empty(t, m.Entries())
	assert.Empty(t, m.Search(""))

	require.NoError(t, m.Resolve(context.Background()))
	assert.Equal(t, []string{
		"workbench.action.openGlobalKeybindings",
		"workbench.action.files.save",
		"workbench.action.closeAll",
	}, commands(m.Entries()))

	results := m.Search("ctrl+k")
	require.Len(t, results, 1)
	assert.Equal(t, "workbench.action.openGlobalKeybindings", results[0].Entry.Command)
}

func TestModelResolveWaitsForHost(t *testing.T) {
	host := &fakeHost{
		ready:    make(chan struct{}),
		commands: []string{"workbench.action.closeAll"},
	}
	m := NewModel(host)

	done := make(chan error, 1)
	go func() { done <- m.Resolve(context.Background()) }()

	select {
	case <-done:
		t.Fatal("Resolve returned before the host was ready")
	case <-time.After(20 * time.Millisecond):
	}
	close(host.ready)
	require.NoError(t, <-done)
	assert.Len(t, m.Entries(), 1)
}

func TestModelResolveError(t *testing.T) {
	loadErr := errors.New("catalog unreadable")
	host := &fakeHost{commands: []string{"a"}}
	m := NewModel(host)
	require.NoError(t, m.Resolve(context.Background()))
	before := m.Entries()

	host.err = loadErr
	err := m.Resolve(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, loadErr)
	assert.Equal(t, before, m.Entries())
}

func TestModelResolveCancelled(t *testing.T) {
	host := &fakeHost{ready: make(chan struct{})}
	m := NewModel(host)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, m.Resolve(ctx), context.Canceled)
}

func TestModelSnapshotsAreIndependent(t *testing.T) {
	host := &fakeHost{commands: []string{"a", "b"}}
	m := NewModel(host)
	require.NoError(t, m.Resolve(context.Background()))
	snapshot := m.Entries()

	host.commands = []string{"c"}
	require.NoError(t, m.Resolve(context.Background()))
	assert.Equal(t, []string{"a", "b"}, commands(snapshot))
	assert.Equal(t, []string{"c"}, commands(m.Entries()))
}
