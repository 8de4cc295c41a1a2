package bindings

import (
	"fmt"
	"sync"

	"github.com/quasar-pankaj/NormalNvim/internal/config/merge"
	"github.com/quasar-pankaj/NormalNvim/internal/input/mode"
)

// Binder is the host key binder the compiler registers direct bindings
// with. Bind replaces any previous binding for the same [mode, keys] pair;
// its error is host-defined (invalid mode or key syntax) and the compiler
// propagates it unmodified.
type Binder interface {
	Bind(m mode.Mode, keys string, action any, opts map[string]any) error
	Unbind(m mode.Mode, keys string) bool
}

// HintUI is the optional companion popup that renders named bindings
// grouped by display name. Its absence is not an error; flushing simply
// waits until it reports loaded.
type HintUI interface {
	IsLoaded() bool
	RegisterGroup(m mode.Mode, group map[string]map[string]any) error
}

// Compiler turns MapTables into binder registrations and queued group
// entries. A host typically creates one compiler and invokes Apply once per
// logical mapping set (for example once per loaded plugin).
type Compiler struct {
	mu      sync.Mutex
	binder  Binder
	hints   HintUI
	pending *PendingQueue
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithHintUI attaches the companion hint UI.
func WithHintUI(ui HintUI) Option {
	return func(c *Compiler) {
		c.hints = ui
	}
}

// WithPendingQueue supplies a caller-owned queue, letting a host share one
// queue between compilers or inspect it directly.
func WithPendingQueue(q *PendingQueue) Option {
	return func(c *Compiler) {
		if q != nil {
			c.pending = q
		}
	}
}

// NewCompiler creates a compiler bound to the given host binder.
func NewCompiler(binder Binder, opts ...Option) *Compiler {
	c := &Compiler{
		binder:  binder,
		pending: NewPendingQueue(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Pending exposes the compiler's queue for inspection.
func (c *Compiler) Pending() *PendingQueue {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

// Apply compiles a full mapping table. Direct specs are registered with the
// host binder synchronously, with base options merged under each spec's own
// options (spec wins). Named specs land in the pending queue with their
// merged options, defaulting "name" from "desc" when missing; any live
// direct binding for the same [mode, keys] is unregistered first so a key
// never has both a stale host binding and a queued entry. Unbind specs are
// skipped.
//
// Binder errors stop the walk and propagate. After a complete walk, if the
// hint UI is already loaded the queue is flushed immediately.
func (c *Compiler) Apply(table MapTable, base map[string]any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for m, specs := range table {
		for keys, spec := range specs {
			if spec.Kind == KindUnbind {
				continue
			}

			merged := merge.Options(base, spec.Options)

			// Base options may contribute a group name.
			_, named := merged["name"]
			if spec.Kind == KindNamed || named || spec.Action == nil {
				if _, ok := merged["name"]; !ok {
					if desc, ok := merged["desc"].(string); ok {
						merged["name"] = desc
					}
				}
				c.binder.Unbind(m, keys)
				c.pending.Put(m, keys, merged)
				continue
			}

			if err := c.binder.Bind(m, keys, spec.Action, merged); err != nil {
				return fmt.Errorf("compiling mapping [%s]%q: %w", m, keys, err)
			}
		}
	}

	if c.hints != nil && c.hints.IsLoaded() {
		return c.flushLocked()
	}
	return nil
}

// Flush drains the pending queue into the hint UI. Without a loaded hint UI
// it is a no-op and the queue persists for a later attempt. The drain is
// all-or-nothing: only after every mode registers successfully is the queue
// cleared; on error the queue is left untouched so the flush can be
// retried. Flushing an empty queue is a safe no-op.
func (c *Compiler) Flush() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.flushLocked()
}

func (c *Compiler) flushLocked() error {
	if c.hints == nil || !c.hints.IsLoaded() {
		return nil
	}
	if c.pending.Empty() {
		return nil
	}

	for _, m := range c.pending.Modes() {
		if err := c.hints.RegisterGroup(m, c.pending.Group(m)); err != nil {
			return fmt.Errorf("registering %s group bindings: %w", m, err)
		}
	}
	c.pending.Clear()
	return nil
}
