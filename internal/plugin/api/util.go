package api

import (
	"sort"

	lua "github.com/yuin/gopher-lua"

	"github.com/quasar-pankaj/NormalNvim/internal/config/merge"
	luabridge "github.com/quasar-pankaj/NormalNvim/internal/plugin/lua"
)

// UtilModule implements the nv.util API module: table helpers shared by
// configuration scripts.
type UtilModule struct{}

// NewUtilModule creates a new util module.
func NewUtilModule() *UtilModule {
	return &UtilModule{}
}

// Name returns the module name.
func (m *UtilModule) Name() string {
	return "util"
}

// Register registers the module into the Lua state.
func (m *UtilModule) Register(L *lua.LState) error {
	mod := L.NewTable()

	L.SetField(mod, "merge", L.NewFunction(m.merge))
	L.SetField(mod, "keys", L.NewFunction(m.keys))
	L.SetField(mod, "is_empty", L.NewFunction(m.isEmpty))

	L.SetGlobal("_nv_util", mod)
	return nil
}

// merge(base, overrides) -> table
// Deep merges two option tables. Overrides win; nested tables merge
// recursively. Neither input is modified.
func (m *UtilModule) merge(L *lua.LState) int {
	bridge := luabridge.NewBridge(L)

	base, err := bridge.ToGoTable(L.CheckTable(1))
	if err != nil {
		L.ArgError(1, err.Error())
		return 0
	}
	overrides, err := bridge.ToGoTable(L.CheckTable(2))
	if err != nil {
		L.ArgError(2, err.Error())
		return 0
	}

	L.Push(bridge.ToLuaValue(merge.Options(base, overrides)))
	return 1
}

// keys(t) -> {string...}
// Returns the string keys of a table in sorted order.
func (m *UtilModule) keys(L *lua.LState) int {
	tbl := L.CheckTable(1)

	var keys []string
	tbl.ForEach(func(k, _ lua.LValue) {
		if s, ok := k.(lua.LString); ok {
			keys = append(keys, string(s))
		}
	})
	sort.Strings(keys)

	out := L.NewTable()
	for i, k := range keys {
		out.RawSetInt(i+1, lua.LString(k))
	}
	L.Push(out)
	return 1
}

// is_empty(t) -> bool
// Reports whether a table has no entries.
func (m *UtilModule) isEmpty(L *lua.LState) int {
	tbl := L.CheckTable(1)

	empty := true
	tbl.ForEach(func(_, _ lua.LValue) {
		empty = false
	})
	L.Push(lua.LBool(empty))
	return 1
}
