// Package highlight manages named syntax-match rules for URL highlighting.
//
// Rules all share one fixed URL pattern; what varies is which windows (or
// other scopes, identified by name) currently carry the rule, and a
// process-wide enabled flag that gates additions entirely.
package highlight

import (
	"regexp"
	"sort"
	"sync"
)

// urlPattern matches http, https and ftp URLs for display highlighting.
// Deliberately permissive; it is a highlighter, not a validator.
var urlPattern = regexp.MustCompile(`\b(?:https?|ftp)://[^\s<>"']+`)

// URLMatcher tracks named URL match rules.
type URLMatcher struct {
	mu      sync.Mutex
	enabled bool
	rules   map[string]struct{}
}

// NewURLMatcher creates a matcher with the given initial enabled state.
func NewURLMatcher(enabled bool) *URLMatcher {
	return &URLMatcher{
		enabled: enabled,
		rules:   make(map[string]struct{}),
	}
}

// SetEnabled flips the process-wide flag. Disabling removes every active
// rule so stale highlights do not linger.
func (m *URLMatcher) SetEnabled(enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.enabled = enabled
	if !enabled {
		m.rules = make(map[string]struct{})
	}
}

// Enabled reports the current flag.
func (m *URLMatcher) Enabled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.enabled
}

// Add registers the named rule. It reports whether the rule is now active;
// with the matcher disabled this is always false.
func (m *URLMatcher) Add(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.enabled {
		return false
	}
	m.rules[name] = struct{}{}
	return true
}

// Remove deletes the named rule, reporting whether it was present.
func (m *URLMatcher) Remove(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.rules[name]; !ok {
		return false
	}
	delete(m.rules, name)
	return true
}

// Active returns the names of active rules, sorted.
func (m *URLMatcher) Active() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, 0, len(m.rules))
	for name := range m.rules {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// FindURLs returns the byte ranges of URLs in text for the named rule, or
// nil when the rule is not active.
func (m *URLMatcher) FindURLs(name, text string) [][]int {
	m.mu.Lock()
	_, ok := m.rules[name]
	m.mu.Unlock()

	if !ok {
		return nil
	}
	return urlPattern.FindAllStringIndex(text, -1)
}
