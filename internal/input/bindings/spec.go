// Package bindings implements the keybinding compiler. It consumes a nested
// {mode -> {key -> spec}} table plus base options and produces immediate
// registrations against the host key binder and a pending queue of named
// group bindings, flushed in bulk to an optional key-hint UI.
package bindings

import (
	"github.com/quasar-pankaj/NormalNvim/internal/config/merge"
	"github.com/quasar-pankaj/NormalNvim/internal/input/mode"
)

// MapTable maps each mode to its key specs. Keys are unique within a mode;
// each key maps to exactly one latest spec.
type MapTable map[mode.Mode]map[string]Spec

// EmptyMapTable returns a MapTable with an empty key map for every mode in
// the host's fixed mode set. Useful as a sparse override scaffold.
func EmptyMapTable(feat mode.Features) MapTable {
	modes := mode.All(feat)
	out := make(MapTable, len(modes))
	for _, m := range modes {
		out[m] = make(map[string]Spec)
	}
	return out
}

// Kind discriminates parsed binding specs.
type Kind int

const (
	// KindUnbind is an explicit "no binding" placeholder. The compiler
	// skips it, which lets sparse override tables avoid triggering a bind.
	KindUnbind Kind = iota

	// KindDirect is a plain action registered with the host binder.
	KindDirect

	// KindNamed is a group binding destined for the key-hint UI.
	KindNamed
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindUnbind:
		return "unbind"
	case KindDirect:
		return "direct"
	case KindNamed:
		return "named"
	default:
		return "unknown"
	}
}

// Spec is a parsed binding specification. The kind is decided once at
// ingestion rather than inferred downstream from the value's shape.
type Spec struct {
	// Kind discriminates the variant.
	Kind Kind

	// Action is the command string or callback. Nil for group headers
	// and unbinds.
	Action any

	// Options are the per-spec binder options. For KindNamed they carry
	// (or will be given) a "name" field.
	Options map[string]any
}

// Unbind returns the explicit "no binding" placeholder.
func Unbind() Spec {
	return Spec{Kind: KindUnbind}
}

// Direct returns a spec that registers action immediately with the host
// binder.
func Direct(action any, opts map[string]any) Spec {
	return Spec{Kind: KindDirect, Action: action, Options: opts}
}

// Named returns a group binding spec. An empty name defers to the "desc"
// option at compile time.
func Named(name string, action any, opts map[string]any) Spec {
	out := merge.Clone(opts)
	if name != "" {
		out["name"] = name
	}
	return Spec{Kind: KindNamed, Action: action, Options: out}
}

// ParseSpec converts the loosely shaped values the config surfaces produce
// into a tagged Spec:
//
//   - nil or false: Unbind placeholder
//   - string or func(): bare Direct action
//   - []any{action, opts?}: action plus an options map; the positional
//     action is never part of the options
//   - map[string]any: an options map whose "action" field, if present, is
//     extracted as the action
//
// A value is Named when its own options carry "name" or when it has no
// action. Every other shape parses as a bare Direct action and is left for
// the host binder to reject.
func ParseSpec(v any) Spec {
	switch val := v.(type) {
	case nil:
		return Unbind()
	case bool:
		if !val {
			return Unbind()
		}
		return Direct(val, nil)
	case string:
		return Direct(val, nil)
	case func():
		return Direct(val, nil)
	case []any:
		if len(val) == 0 {
			return Unbind()
		}
		action := val[0]
		var opts map[string]any
		if len(val) > 1 {
			opts, _ = val[1].(map[string]any)
		}
		return classify(action, merge.Clone(opts))
	case map[string]any:
		opts := merge.Clone(val)
		action, hasAction := opts["action"]
		if hasAction {
			delete(opts, "action")
		}
		return classify(action, opts)
	default:
		return Direct(val, nil)
	}
}

// classify tags an action/options pair as Direct or Named.
func classify(action any, opts map[string]any) Spec {
	if _, named := opts["name"]; named || action == nil {
		return Spec{Kind: KindNamed, Action: action, Options: opts}
	}
	return Spec{Kind: KindDirect, Action: action, Options: opts}
}
