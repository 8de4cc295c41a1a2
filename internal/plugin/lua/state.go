// Package lua hosts the embedded Lua runtime used for user configuration
// scripts, plus the value bridge between Lua and Go.
package lua

import (
	lua "github.com/yuin/gopher-lua"
)

// StateOption configures a new Lua state.
type StateOption func(*lua.Options)

// WithRegistrySize sets the initial registry size for the state.
func WithRegistrySize(n int) StateOption {
	return func(o *lua.Options) {
		o.RegistrySize = n
	}
}

// NewState creates a Lua state with the standard libraries opened, ready
// for API module injection.
func NewState(opts ...StateOption) *lua.LState {
	options := lua.Options{}
	for _, opt := range opts {
		opt(&options)
	}
	return lua.NewState(options)
}
