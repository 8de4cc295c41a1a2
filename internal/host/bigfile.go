// Package host provides small editor-host utilities: big-file detection,
// path separator normalization, and confirmation prompts.
package host

// Limits holds the thresholds above which a file is treated as "big" and
// expensive per-buffer features should be disabled.
type Limits struct {
	MaxBytes int64
	MaxLines int64
}

// DefaultLimits matches the stock thresholds: 1 MiB or 5000 lines.
var DefaultLimits = Limits{
	MaxBytes: 1024 * 1024,
	MaxLines: 5000,
}

// FileInfo describes the measured size of a buffer's backing file.
type FileInfo struct {
	Bytes int64
	Lines int64
}

// IsBigFile reports whether info exceeds either limit. A zero or negative
// threshold disables that check.
func IsBigFile(info FileInfo, limits Limits) bool {
	if limits.MaxBytes > 0 && info.Bytes > limits.MaxBytes {
		return true
	}
	if limits.MaxLines > 0 && info.Lines > limits.MaxLines {
		return true
	}
	return false
}
