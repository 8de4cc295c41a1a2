package keymap

import (
	"fmt"
	"strings"
)

// Binding is a single live key-to-action registration in the host binder.
type Binding struct {
	// Keys is the key sequence that triggers this binding.
	// Formats: "j", "gg", "<C-s>", "<leader>a"
	Keys string

	// Action is the command to execute: a command string or a callback.
	Action any

	// Options are host binder options (silent, noremap, desc, buffer, ...).
	Options map[string]any
}

// Command returns the action as a command string, if it is one.
func (b Binding) Command() (string, bool) {
	s, ok := b.Action.(string)
	return s, ok
}

// Callback returns the action as a callback, if it is one.
func (b Binding) Callback() (func(), bool) {
	fn, ok := b.Action.(func())
	return fn, ok
}

// Desc returns the binding's description option, if set.
func (b Binding) Desc() string {
	if s, ok := b.Options["desc"].(string); ok {
		return s
	}
	return ""
}

// validateKeys checks key notation: non-empty, with every "<" opening a
// non-empty "<...>" special-key group. A bare ">" is an ordinary key.
func validateKeys(keys string) error {
	if keys == "" {
		return fmt.Errorf("%w: empty key sequence", ErrInvalidKeys)
	}
	rest := keys
	for {
		i := strings.IndexByte(rest, '<')
		if i < 0 {
			return nil
		}
		rest = rest[i+1:]
		j := strings.IndexByte(rest, '>')
		if j < 0 {
			return fmt.Errorf("%w: unterminated \"<\" in %q", ErrInvalidKeys, keys)
		}
		if j == 0 {
			return fmt.Errorf("%w: empty \"<>\" group in %q", ErrInvalidKeys, keys)
		}
		rest = rest[j+1:]
	}
}

// validateAction checks that the action has a shape the binder can execute.
func validateAction(action any) error {
	switch action.(type) {
	case string, func():
		return nil
	default:
		return fmt.Errorf("%w: %T", ErrInvalidAction, action)
	}
}
