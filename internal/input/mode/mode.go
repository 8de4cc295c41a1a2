// Package mode defines the fixed set of editor interaction modes.
//
// Modes are opaque string tags. The set is fixed at compile time; the only
// variation is a pair of abbreviation modes that exist solely when the host
// editor reports support for them.
package mode

// Mode identifies an editor interaction context under which a keybinding
// is active.
type Mode string

// Standard mode tags.
const (
	Normal          Mode = "normal"
	Insert          Mode = "insert"
	Visual          Mode = "visual"
	VisualLine      Mode = "visual-line"
	VisualBlock     Mode = "visual-block"
	Select          Mode = "select"
	OperatorPending Mode = "operator-pending"
	Command         Mode = "command"
	Terminal        Mode = "terminal"
	Replace         Mode = "replace"
)

// Abbreviation mode tags, available only on hosts that support them.
const (
	InsertAbbrev  Mode = "insert-abbrev"
	CommandAbbrev Mode = "command-abbrev"
)

// baseModes is the always-present portion of the mode set, in display order.
var baseModes = []Mode{
	Normal,
	Insert,
	Visual,
	VisualLine,
	VisualBlock,
	Select,
	OperatorPending,
	Command,
	Terminal,
	Replace,
}

// abbrevModes are gated behind the host feature probe.
var abbrevModes = []Mode{
	InsertAbbrev,
	CommandAbbrev,
}

// Features reports host editor capabilities that gate parts of the mode set.
type Features interface {
	// HasAbbrevModes reports whether the host supports abbreviation modes.
	HasAbbrevModes() bool
}

// StaticFeatures is a fixed Features implementation, useful for hosts whose
// capabilities are known up front and in tests.
type StaticFeatures struct {
	AbbrevModes bool
}

// HasAbbrevModes implements Features.
func (f StaticFeatures) HasAbbrevModes() bool {
	return f.AbbrevModes
}

// All returns the fixed mode set for the given host features, in a stable
// order. A nil feat is treated as a host without abbreviation modes.
func All(feat Features) []Mode {
	out := make([]Mode, 0, len(baseModes)+len(abbrevModes))
	out = append(out, baseModes...)
	if feat != nil && feat.HasAbbrevModes() {
		out = append(out, abbrevModes...)
	}
	return out
}

// Valid reports whether m is a member of the mode set for the given host.
func Valid(m Mode, feat Features) bool {
	for _, known := range baseModes {
		if m == known {
			return true
		}
	}
	if feat != nil && feat.HasAbbrevModes() {
		for _, known := range abbrevModes {
			if m == known {
				return true
			}
		}
	}
	return false
}
