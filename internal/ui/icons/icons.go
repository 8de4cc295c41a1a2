// Package icons resolves display icons from two caller-supplied lookup
// tables: symbol glyphs for hosts with an icon-capable font and plain-text
// fallbacks for everything else. Which table is consulted is a process-wide
// flag owned by the provider.
package icons

import (
	"strings"
	"sync"
)

// Provider resolves icon kinds to display strings. Safe for concurrent use.
type Provider struct {
	mu       sync.RWMutex
	symbols  bool
	glyphs   map[string]string
	fallback map[string]string
}

// NewProvider creates a provider over the given tables. glyphs is used when
// symbol icons are enabled, fallback otherwise. Either table may be nil.
func NewProvider(symbols bool, glyphs, fallback map[string]string) *Provider {
	return &Provider{
		symbols:  symbols,
		glyphs:   glyphs,
		fallback: fallback,
	}
}

// SetSymbols toggles the symbol-capable flag.
func (p *Provider) SetSymbols(enabled bool) {
	p.mu.Lock()
	p.symbols = enabled
	p.mu.Unlock()
}

// Symbols reports whether symbol icons are enabled.
func (p *Provider) Symbols() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.symbols
}

// Get returns the icon for kind, followed by padding spaces. With symbols
// disabled the fallback table is consulted unless noFallbackIfDisabled is
// set, in which case the result is empty. Unknown kinds yield an empty
// string with no padding.
func (p *Provider) Get(kind string, padding int, noFallbackIfDisabled bool) string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	table := p.fallback
	if p.symbols {
		table = p.glyphs
	} else if noFallbackIfDisabled {
		return ""
	}

	icon, ok := table[kind]
	if !ok || icon == "" {
		return ""
	}
	if padding > 0 {
		icon += strings.Repeat(" ", padding)
	}
	return icon
}
