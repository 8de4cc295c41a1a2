package shell

import (
	"reflect"
	"runtime"
	"strings"
	"testing"
)

type captureSink struct {
	messages []string
}

func (s *captureSink) Error(message string) string {
	s.messages = append(s.messages, message)
	return ""
}

func TestArgvPlatformPrefix(t *testing.T) {
	cmd := []string{"git", "status"}

	win := NewRunner(WithGOOS("windows"))
	if got := win.Argv(cmd); !reflect.DeepEqual(got, []string{"cmd.exe", "/C", "git", "status"}) {
		t.Errorf("windows Argv = %v", got)
	}

	nix := NewRunner(WithGOOS("linux"))
	if got := nix.Argv(cmd); !reflect.DeepEqual(got, cmd) {
		t.Errorf("linux Argv = %v, want unchanged", got)
	}
}

func TestStripANSI(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text untouched", "hello", "hello"},
		{"color codes removed", "\x1b[31mred\x1b[0m", "red"},
		{"cursor movement removed", "a\x1b[2Kb", "ab"},
		{"mixed sequences", "\x1b[1;32mok\x1b[0m done", "ok done"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripANSI(tt.in); got != tt.want {
				t.Errorf("StripANSI(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRunEmptyArgv(t *testing.T) {
	sink := &captureSink{}
	r := NewRunner(WithErrorSink(sink))

	out, ok := r.Run(nil, false)
	if ok || out != "" {
		t.Errorf("Run(nil) = (%q, %v), want failure", out, ok)
	}
	if len(sink.messages) != 0 {
		t.Error("empty argv surfaced an error message")
	}
}

func TestRunSuccess(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a POSIX echo")
	}

	r := NewRunner()
	out, ok := r.Run([]string{"echo", "hello"}, false)
	if !ok {
		t.Fatal("Run(echo) failed")
	}
	if strings.TrimSpace(out) != "hello" {
		t.Errorf("out = %q, want hello", out)
	}
}

func TestRunFailureSurfacesError(t *testing.T) {
	sink := &captureSink{}
	r := NewRunner(WithErrorSink(sink))

	_, ok := r.Run([]string{"definitely-not-a-real-command-xyz"}, false)
	if ok {
		t.Fatal("Run of missing command succeeded")
	}
	if len(sink.messages) != 1 {
		t.Fatalf("messages = %d, want 1", len(sink.messages))
	}
	if !strings.Contains(sink.messages[0], "definitely-not-a-real-command-xyz") {
		t.Errorf("message = %q, want command name included", sink.messages[0])
	}
}

func TestRunFailureSuppressed(t *testing.T) {
	sink := &captureSink{}
	r := NewRunner(WithErrorSink(sink))

	_, ok := r.Run([]string{"definitely-not-a-real-command-xyz"}, true)
	if ok {
		t.Fatal("Run of missing command succeeded")
	}
	if len(sink.messages) != 0 {
		t.Errorf("suppressed failure still surfaced: %v", sink.messages)
	}
}
