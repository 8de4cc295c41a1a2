// Package keymap implements the host key binder: a registry holding at most
// one live binding per [mode, key] pair. Later registrations for the same
// pair silently replace earlier ones, matching host-native overwrite
// semantics.
package keymap

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/quasar-pankaj/NormalNvim/internal/config/merge"
	"github.com/quasar-pankaj/NormalNvim/internal/input/mode"
)

// Sentinel errors for the keymap package.
var (
	// ErrUnknownMode is returned when binding under a mode outside the
	// host's fixed mode set.
	ErrUnknownMode = errors.New("unknown mode")

	// ErrInvalidKeys is returned for malformed key notation.
	ErrInvalidKeys = errors.New("invalid key sequence")

	// ErrInvalidAction is returned when the action is neither a command
	// string nor a callback.
	ErrInvalidAction = errors.New("invalid action")
)

// Registry is the host key binder. It is safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	feat   mode.Features
	byMode map[mode.Mode]map[string]Binding
}

// NewRegistry creates a registry for a host with the given features.
func NewRegistry(feat mode.Features) *Registry {
	return &Registry{
		feat:   feat,
		byMode: make(map[mode.Mode]map[string]Binding),
	}
}

// Bind registers keys under m, replacing any previous binding for the pair.
// Options are cloned so the registry never aliases caller state.
func (r *Registry) Bind(m mode.Mode, keys string, action any, opts map[string]any) error {
	if !mode.Valid(m, r.feat) {
		return fmt.Errorf("%w: %q", ErrUnknownMode, m)
	}
	if err := validateKeys(keys); err != nil {
		return err
	}
	if err := validateAction(action); err != nil {
		return fmt.Errorf("binding %q in mode %q: %w", keys, m, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	bindings, ok := r.byMode[m]
	if !ok {
		bindings = make(map[string]Binding)
		r.byMode[m] = bindings
	}
	bindings[keys] = Binding{
		Keys:    keys,
		Action:  action,
		Options: merge.Clone(opts),
	}
	return nil
}

// Unbind removes the binding for [m, keys]. It reports whether a binding
// was present.
func (r *Registry) Unbind(m mode.Mode, keys string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	bindings, ok := r.byMode[m]
	if !ok {
		return false
	}
	if _, ok := bindings[keys]; !ok {
		return false
	}
	delete(bindings, keys)
	if len(bindings) == 0 {
		delete(r.byMode, m)
	}
	return true
}

// Get returns the live binding for [m, keys], if any.
func (r *Registry) Get(m mode.Mode, keys string) (Binding, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.byMode[m][keys]
	return b, ok
}

// Bindings returns all live bindings for a mode, sorted by key sequence.
func (r *Registry) Bindings(m mode.Mode) []Binding {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Binding, 0, len(r.byMode[m]))
	for _, b := range r.byMode[m] {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Keys < out[j].Keys
	})
	return out
}

// Len returns the total number of live bindings across all modes.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, bindings := range r.byMode {
		n += len(bindings)
	}
	return n
}
