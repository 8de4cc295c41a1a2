// Package hints provides an in-memory model of the key-hint popup: the
// optional companion UI that renders named group bindings. It satisfies the
// compiler's HintUI contract and stands in for a real popup plugin, which a
// host may swap in with its own implementation.
package hints

import (
	"errors"
	"sort"
	"sync"

	"github.com/quasar-pankaj/NormalNvim/internal/config/merge"
	"github.com/quasar-pankaj/NormalNvim/internal/input/mode"
)

// ErrNotLoaded is returned when registering against an unloaded menu.
var ErrNotLoaded = errors.New("hint menu not loaded")

// Entry is one named binding as the popup would display it.
type Entry struct {
	// Keys is the trigger sequence.
	Keys string

	// Name is the display name of the group or binding.
	Name string

	// Options carries the full registered option set.
	Options map[string]any
}

// Menu is the reference hint-UI implementation. Until Load is called it
// reports unloaded, letting tests and hosts exercise deferred flushing.
type Menu struct {
	mu     sync.RWMutex
	loaded bool
	groups map[mode.Mode]map[string]map[string]any
}

// NewMenu creates an unloaded menu.
func NewMenu() *Menu {
	return &Menu{
		groups: make(map[mode.Mode]map[string]map[string]any),
	}
}

// Load marks the menu available for registrations.
func (m *Menu) Load() {
	m.mu.Lock()
	m.loaded = true
	m.mu.Unlock()
}

// IsLoaded reports whether the menu accepts registrations.
func (m *Menu) IsLoaded() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loaded
}

// RegisterGroup merges a per-mode mapping of key sequence to options into
// the menu, overwriting per key. Registrations against an unloaded menu are
// rejected so a compiler bug cannot silently drop its queue.
func (m *Menu) RegisterGroup(md mode.Mode, group map[string]map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.loaded {
		return ErrNotLoaded
	}

	existing, ok := m.groups[md]
	if !ok {
		existing = make(map[string]map[string]any, len(group))
		m.groups[md] = existing
	}
	for keys, opts := range group {
		existing[keys] = merge.Clone(opts)
	}
	return nil
}

// Entries returns the registered bindings for a mode sorted by key
// sequence, ready for display.
func (m *Menu) Entries(md mode.Mode) []Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	group := m.groups[md]
	out := make([]Entry, 0, len(group))
	for keys, opts := range group {
		name, _ := opts["name"].(string)
		out = append(out, Entry{
			Keys:    keys,
			Name:    name,
			Options: merge.Clone(opts),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Keys < out[j].Keys })
	return out
}

// Len returns the total number of registered bindings across all modes.
func (m *Menu) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := 0
	for _, group := range m.groups {
		n += len(group)
	}
	return n
}
