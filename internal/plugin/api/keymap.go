package api

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/quasar-pankaj/NormalNvim/internal/config/loader"
	"github.com/quasar-pankaj/NormalNvim/internal/input/bindings"
	"github.com/quasar-pankaj/NormalNvim/internal/input/mode"
	luabridge "github.com/quasar-pankaj/NormalNvim/internal/plugin/lua"
)

// KeymapModule implements the nv.keymap API module. It feeds mapping
// tables from Lua into the binding compiler.
type KeymapModule struct {
	compiler *bindings.Compiler
	feat     mode.Features
}

// NewKeymapModule creates a keymap module backed by the given compiler.
func NewKeymapModule(compiler *bindings.Compiler, feat mode.Features) *KeymapModule {
	return &KeymapModule{compiler: compiler, feat: feat}
}

// Name returns the module name.
func (m *KeymapModule) Name() string {
	return "keymap"
}

// Register registers the module into the Lua state.
func (m *KeymapModule) Register(L *lua.LState) error {
	mod := L.NewTable()

	L.SetField(mod, "set_mappings", L.NewFunction(m.setMappings))
	L.SetField(mod, "flush", L.NewFunction(m.flush))
	L.SetField(mod, "empty_map_table", L.NewFunction(m.emptyMapTable))

	L.SetGlobal("_nv_keymap", mod)
	return nil
}

// set_mappings(mappings, base?) -> nil
// Compiles a {mode = {keys = spec}} table. Lua function values become
// callback actions. The optional base table supplies default binder
// options merged under each spec's own options.
func (m *KeymapModule) setMappings(L *lua.LState) int {
	tbl := L.CheckTable(1)

	bridge := luabridge.NewBridge(L)

	var base map[string]any
	if L.GetTop() >= 2 {
		baseTbl := L.CheckTable(2)
		var err error
		base, err = bridge.ToGoTable(baseTbl)
		if err != nil {
			L.ArgError(2, err.Error())
			return 0
		}
	}

	raw, err := bridge.ToGoTable(tbl)
	if err != nil {
		L.ArgError(1, err.Error())
		return 0
	}

	cfg, err := loader.Decode(map[string]any{"mappings": raw}, m.feat)
	if err != nil {
		L.RaiseError("set_mappings: %v", err)
		return 0
	}

	if err := m.compiler.Apply(cfg.Mappings, base); err != nil {
		L.RaiseError("set_mappings: %v", err)
		return 0
	}

	return 0
}

// flush() -> nil
// Flushes queued group bindings to the hint UI.
func (m *KeymapModule) flush(L *lua.LState) int {
	if err := m.compiler.Flush(); err != nil {
		L.RaiseError("flush: %v", err)
		return 0
	}
	return 0
}

// empty_map_table() -> table
// Returns a {mode = {}} scaffold covering the host's full mode set.
func (m *KeymapModule) emptyMapTable(L *lua.LState) int {
	out := L.NewTable()
	for _, md := range mode.All(m.feat) {
		out.RawSetString(string(md), L.NewTable())
	}
	L.Push(out)
	return 1
}
