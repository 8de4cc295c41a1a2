package bindings

import (
	"sort"

	"github.com/quasar-pankaj/NormalNvim/internal/config/merge"
	"github.com/quasar-pankaj/NormalNvim/internal/input/mode"
)

// PendingQueue accumulates named group bindings awaiting registration with
// the key-hint UI. It is an explicit, caller-owned object: a host creates
// one (or lets the compiler create one) and decides when it is flushed.
//
// Per-mode maps are created lazily on first use. Entries persist across any
// number of compiler invocations until a flush succeeds; if the hint UI
// never becomes available they accumulate indefinitely.
type PendingQueue struct {
	entries map[mode.Mode]map[string]map[string]any
}

// NewPendingQueue creates an empty queue.
func NewPendingQueue() *PendingQueue {
	return &PendingQueue{
		entries: make(map[mode.Mode]map[string]map[string]any),
	}
}

// Put records merged options for [m, keys], overwriting any prior entry for
// the same pair. The options are cloned on the way in.
func (q *PendingQueue) Put(m mode.Mode, keys string, opts map[string]any) {
	group, ok := q.entries[m]
	if !ok {
		group = make(map[string]map[string]any)
		q.entries[m] = group
	}
	group[keys] = merge.Clone(opts)
}

// Get returns the queued options for [m, keys], if any.
func (q *PendingQueue) Get(m mode.Mode, keys string) (map[string]any, bool) {
	opts, ok := q.entries[m][keys]
	return opts, ok
}

// Empty reports whether the queue holds no entries.
func (q *PendingQueue) Empty() bool {
	return len(q.entries) == 0
}

// Len returns the total number of queued entries across all modes.
func (q *PendingQueue) Len() int {
	n := 0
	for _, group := range q.entries {
		n += len(group)
	}
	return n
}

// Modes returns the modes with queued entries, sorted for stable iteration.
func (q *PendingQueue) Modes() []mode.Mode {
	out := make([]mode.Mode, 0, len(q.entries))
	for m := range q.entries {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Group returns a deep copy of the queued entries for a mode, keyed by key
// sequence. The copy is safe to hand to the hint UI.
func (q *PendingQueue) Group(m mode.Mode) map[string]map[string]any {
	group := q.entries[m]
	out := make(map[string]map[string]any, len(group))
	for keys, opts := range group {
		out[keys] = merge.Clone(opts)
	}
	return out
}

// Clear drops every entry in one step. Called after a successful flush.
func (q *PendingQueue) Clear() {
	q.entries = make(map[mode.Mode]map[string]map[string]any)
}
