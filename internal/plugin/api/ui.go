package api

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/quasar-pankaj/NormalNvim/internal/host"
	luabridge "github.com/quasar-pankaj/NormalNvim/internal/plugin/lua"
	"github.com/quasar-pankaj/NormalNvim/internal/ui/icons"
	"github.com/quasar-pankaj/NormalNvim/internal/ui/notify"
)

// UIModule implements the nv.ui API module: notifications, icons, and
// confirmation prompts.
type UIModule struct {
	center *notify.Center
	icons  *icons.Provider
	prompt host.Prompter
}

// NewUIModule creates a UI module. Any of the backends may be nil; the
// corresponding functions degrade to no-ops or defaults.
func NewUIModule(center *notify.Center, ic *icons.Provider, prompt host.Prompter) *UIModule {
	return &UIModule{center: center, icons: ic, prompt: prompt}
}

// Name returns the module name.
func (m *UIModule) Name() string {
	return "ui"
}

// Register registers the module into the Lua state.
func (m *UIModule) Register(L *lua.LState) error {
	mod := L.NewTable()

	L.SetField(mod, "notify", L.NewFunction(m.notify))
	L.SetField(mod, "get_icon", L.NewFunction(m.getIcon))
	L.SetField(mod, "confirm", L.NewFunction(m.confirm))

	// Severity constants for notify's level argument.
	L.SetField(mod, "INFO", lua.LString(notify.LevelInfo))
	L.SetField(mod, "WARN", lua.LString(notify.LevelWarn))
	L.SetField(mod, "ERROR", lua.LString(notify.LevelError))

	L.SetGlobal("_nv_ui", mod)
	return nil
}

// notify(message, level?, opts?) -> id
// Raises a notification; delivery happens on the next host tick.
func (m *UIModule) notify(L *lua.LState) int {
	message := L.CheckString(1)
	level := notify.Level(L.OptString(2, string(notify.LevelInfo)))

	var opts map[string]any
	if L.GetTop() >= 3 {
		bridge := luabridge.NewBridge(L)
		tbl := L.CheckTable(3)
		converted, err := bridge.ToGoTable(tbl)
		if err != nil {
			L.ArgError(3, err.Error())
			return 0
		}
		opts = converted
	}

	if m.center == nil {
		L.Push(lua.LString(""))
		return 1
	}

	id := m.center.Notify(message, level, opts)
	L.Push(lua.LString(id))
	return 1
}

// get_icon(kind, padding?) -> string
// Returns the icon for kind with trailing padding spaces.
func (m *UIModule) getIcon(L *lua.LState) int {
	kind := L.CheckString(1)
	padding := L.OptInt(2, 0)

	if m.icons == nil {
		L.Push(lua.LString(""))
		return 1
	}

	L.Push(lua.LString(m.icons.Get(kind, padding, false)))
	return 1
}

// confirm(message) -> bool
// Asks the user a yes/no question. Without a prompter the answer is
// always false.
func (m *UIModule) confirm(L *lua.LState) int {
	message := L.CheckString(1)

	if m.prompt == nil {
		L.Push(lua.LFalse)
		return 1
	}

	ok, err := m.prompt.Confirm(message)
	if err != nil {
		L.Push(lua.LFalse)
		return 1
	}
	L.Push(lua.LBool(ok))
	return 1
}
