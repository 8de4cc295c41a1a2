// Package shell executes OS commands on behalf of config code.
//
// Execution is synchronous: Run blocks the calling context until the
// subprocess exits, so callers must treat it as a potentially slow
// operation. On Windows the argv is routed through the command
// interpreter; elsewhere it runs directly.
package shell

import (
	"fmt"
	"os/exec"
	"regexp"
	"runtime"
	"strings"
)

// ansiPattern matches ANSI escape sequences in captured output.
var ansiPattern = regexp.MustCompile(`\x1b[\[\x9b][0-9;?]*[ -/]*[@-~]`)

// ErrorSink receives user-visible error messages for failed commands.
// The notification center satisfies it.
type ErrorSink interface {
	Error(message string) string
}

// Runner executes commands.
type Runner struct {
	goos string
	sink ErrorSink
}

// Option configures a Runner.
type Option func(*Runner)

// WithErrorSink routes command failures to a sink.
func WithErrorSink(sink ErrorSink) Option {
	return func(r *Runner) {
		r.sink = sink
	}
}

// WithGOOS overrides platform detection. Intended for tests.
func WithGOOS(goos string) Option {
	return func(r *Runner) {
		r.goos = goos
	}
}

// NewRunner creates a runner for the current platform.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{goos: runtime.GOOS}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Argv returns the platform-adjusted argv for cmd: prefixed with the
// command interpreter on Windows, unchanged elsewhere.
func (r *Runner) Argv(cmd []string) []string {
	if r.goos == "windows" {
		return append([]string{"cmd.exe", "/C"}, cmd...)
	}
	return cmd
}

// Run executes cmd and blocks until it exits. On success it returns the
// combined output with ANSI escape sequences stripped, and true. On failure
// it returns "", false after surfacing an error through the sink, unless
// suppressErr is set. An empty argv is a failure with no error surfaced.
func (r *Runner) Run(cmd []string, suppressErr bool) (string, bool) {
	if len(cmd) == 0 {
		return "", false
	}

	argv := r.Argv(cmd)
	out, err := exec.Command(argv[0], argv[1:]...).CombinedOutput()
	if err != nil {
		if !suppressErr && r.sink != nil {
			r.sink.Error(fmt.Sprintf("Error running command: %s\nError message: %s\n%s",
				strings.Join(cmd, " "), err, out))
		}
		return "", false
	}
	return StripANSI(string(out)), true
}

// Open launches the platform opener for a file path or URL. Failures are
// surfaced through the sink like any other command failure.
func (r *Runner) Open(target string) bool {
	var opener []string
	switch r.goos {
	case "darwin":
		opener = []string{"open", target}
	case "windows":
		opener = []string{"explorer", target}
	default:
		opener = []string{"xdg-open", target}
	}
	_, ok := r.Run(opener, false)
	return ok
}

// StripANSI removes ANSI escape sequences from s.
func StripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}
