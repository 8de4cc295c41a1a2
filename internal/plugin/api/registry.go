// Package api exposes the configuration runtime to Lua scripts.
//
// Each Module registers itself under a _nv_<name> global; InjectAll then
// folds those globals into a single table preloaded as the "nv" module,
// so scripts write:
//
//	local nv = require("nv")
//	nv.keymap.set_mappings{ normal = { ["<leader>w"] = "write" } }
package api

import (
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"
)

// Module is a Lua API module.
type Module interface {
	// Name returns the module name (e.g. "keymap", "ui").
	Name() string

	// Register registers the module functions into the Lua state under
	// the _nv_<name> global.
	Register(L *lua.LState) error
}

// Registry manages API modules and their injection into Lua states.
type Registry struct {
	mu      sync.RWMutex
	modules map[string]Module
	order   []string
}

// NewRegistry creates an empty API registry.
func NewRegistry() *Registry {
	return &Registry{
		modules: make(map[string]Module),
	}
}

// Register adds a module to the registry.
func (r *Registry) Register(mod Module) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.modules[mod.Name()]; exists {
		return fmt.Errorf("module %q already registered", mod.Name())
	}

	r.modules[mod.Name()] = mod
	r.order = append(r.order, mod.Name())
	return nil
}

// Get returns a module by name.
func (r *Registry) Get(name string) (Module, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	mod, ok := r.modules[name]
	return mod, ok
}

// List returns registered module names in registration order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]string(nil), r.order...)
}

// InjectAll registers every module into the Lua state and installs the
// aggregated nv loader.
func (r *Registry) InjectAll(L *lua.LState) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, name := range r.order {
		if err := r.modules[name].Register(L); err != nil {
			return fmt.Errorf("registering module %q: %w", name, err)
		}
	}

	return installNvLoader(L, r.order)
}

// installNvLoader collects the _nv_* globals into one table and preloads
// it so require("nv") works.
func installNvLoader(L *lua.LState, names []string) error {
	nvModule := L.NewTable()

	for _, name := range names {
		globalName := "_nv_" + name
		val := L.GetGlobal(globalName)
		if val != lua.LNil {
			L.SetField(nvModule, name, val)
			L.SetGlobal(globalName, lua.LNil)
		}
	}

	L.SetField(nvModule, "version", lua.LString("1.0.0"))
	L.SetField(nvModule, "api_version", lua.LNumber(1))

	L.PreloadModule("nv", func(L *lua.LState) int {
		L.Push(nvModule)
		return 1
	})

	return nil
}
