package loader

import (
	"fmt"

	"github.com/quasar-pankaj/NormalNvim/internal/config/merge"
	"github.com/quasar-pankaj/NormalNvim/internal/input/bindings"
	"github.com/quasar-pankaj/NormalNvim/internal/input/mode"
)

// Config is a decoded user configuration: a global option table plus a
// keybinding map table ready for compilation.
type Config struct {
	Options  map[string]any
	Mappings bindings.MapTable
}

// Decode turns a raw configuration map into a Config. The "options"
// section is carried as-is. Every key under "mappings" must name a mode
// valid for feat; its entries are parsed into binding specs.
func Decode(raw map[string]any, feat mode.Features) (*Config, error) {
	cfg := &Config{Mappings: bindings.EmptyMapTable(feat)}
	if raw == nil {
		return cfg, nil
	}

	if opts, ok := raw["options"].(map[string]any); ok {
		cfg.Options = merge.Clone(opts)
	}

	mapsRaw, ok := raw["mappings"]
	if !ok {
		return cfg, nil
	}
	maps, ok := mapsRaw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("mappings section must be a table, got %T", mapsRaw)
	}

	for name, entriesRaw := range maps {
		m := mode.Mode(name)
		if !mode.Valid(m, feat) {
			return nil, fmt.Errorf("unknown mode %q in mappings", name)
		}
		entries, ok := entriesRaw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("mappings for mode %q must be a table, got %T", name, entriesRaw)
		}
		for keys, specRaw := range entries {
			cfg.Mappings[m][keys] = bindings.ParseSpec(specRaw)
		}
	}

	return cfg, nil
}

// Load reads path with a format-appropriate loader and decodes it. A
// missing file yields an empty Config.
func Load(path string, feat mode.Features) (*Config, error) {
	l, err := ForPath(path)
	if err != nil {
		return nil, err
	}
	raw, err := l.Load()
	if err != nil {
		return nil, err
	}
	return Decode(raw, feat)
}
