package host

import (
	"path/filepath"
	"strings"
)

// NormalizeSeparators rewrites every slash and backslash in path to the
// current platform's separator. It touches separators only, never the
// path's structure.
func NormalizeSeparators(path string) string {
	return normalizeSeparators(path, filepath.Separator)
}

func normalizeSeparators(path string, sep rune) string {
	var b strings.Builder
	b.Grow(len(path))
	for _, r := range path {
		if r == '/' || r == '\\' {
			b.WriteRune(sep)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
