package config

import (
	lua "github.com/yuin/gopher-lua"
)

// sandboxedGlobals are removed from every VM before user code runs:
// os and io reach the host, the loaders pull in external code and debug
// can be used to escape the sandbox. string, table and math stay.
var sandboxedGlobals = []string{
	"os",
	"io",
	"require",
	"dofile",
	"loadfile",
	"load",
	"loadstring",
	"debug",
}

// sandboxLuaVM configures a Lua VM to run in a restricted sandbox so a
// project config stays declarative.
func sandboxLuaVM(L *lua.LState) {
	for _, name := range sandboxedGlobals {
		L.SetGlobal(name, lua.LNil)
	}
}

// newSandboxedVM creates a new Lua VM with sandboxing applied.
func newSandboxedVM() *lua.LState {
	L := lua.NewState()
	sandboxLuaVM(L)
	return L
}
