package api

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/quasar-pankaj/NormalNvim/internal/integration/shell"
)

// ShellModule implements the nv.shell API module, exposing the
// synchronous command runner to Lua.
type ShellModule struct {
	runner *shell.Runner
}

// NewShellModule creates a shell module backed by runner.
func NewShellModule(runner *shell.Runner) *ShellModule {
	return &ShellModule{runner: runner}
}

// Name returns the module name.
func (m *ShellModule) Name() string {
	return "shell"
}

// Register registers the module into the Lua state.
func (m *ShellModule) Register(L *lua.LState) error {
	mod := L.NewTable()

	L.SetField(mod, "run", L.NewFunction(m.run))
	L.SetField(mod, "open", L.NewFunction(m.open))

	L.SetGlobal("_nv_shell", mod)
	return nil
}

// run(argv, suppress_errors?) -> output|nil, ok
// Runs a command and returns its cleaned output. On failure output is
// nil and ok is false.
func (m *ShellModule) run(L *lua.LState) int {
	argvTbl := L.CheckTable(1)
	suppress := L.OptBool(2, false)

	argv := make([]string, 0, argvTbl.Len())
	argvTbl.ForEach(func(_, v lua.LValue) {
		argv = append(argv, v.String())
	})

	if m.runner == nil {
		L.Push(lua.LNil)
		L.Push(lua.LFalse)
		return 2
	}

	out, ok := m.runner.Run(argv, suppress)
	if !ok {
		L.Push(lua.LNil)
		L.Push(lua.LFalse)
		return 2
	}
	L.Push(lua.LString(out))
	L.Push(lua.LTrue)
	return 2
}

// open(target) -> ok
// Opens a file path or URL with the platform opener.
func (m *ShellModule) open(L *lua.LState) int {
	target := L.CheckString(1)

	if m.runner == nil {
		L.Push(lua.LFalse)
		return 1
	}

	L.Push(lua.LBool(m.runner.Open(target)))
	return 1
}
