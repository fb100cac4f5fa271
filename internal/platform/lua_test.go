package platform

import (
	"strings"
	"testing"

	lua "github.com/yuin/gopher-lua"
)

func eval(t *testing.T, L *lua.LState, code string) lua.LValue {
	t.Helper()
	if err := L.DoString(code); err != nil {
		t.Fatalf("DoString(%q) error = %v", code, err)
	}
	v := L.Get(-1)
	L.Pop(1)
	return v
}

func TestInjectPlatformTable_Linux(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	info := &Info{
		OS:            "linux",
		Arch:          "amd64",
		ArchRaw:       "amd64",
		Distro:        "ubuntu",
		Family:        FamilyDebian,
		DistroVersion: "22.04",
	}
	if err := InjectPlatformTable(L, info); err != nil {
		t.Fatalf("InjectPlatformTable() error = %v", err)
	}

	tests := []struct {
		code string
		want lua.LValue
	}{
		{`return platform.os`, lua.LString("linux")},
		{`return platform.arch`, lua.LString("amd64")},
		{`return platform.is_linux`, lua.LTrue},
		{`return platform.is_macos`, lua.LFalse},
		{`return platform.is_amd64`, lua.LTrue},
		{`return platform.is_debian_family`, lua.LTrue},
		{`return platform.is_rhel_family`, lua.LFalse},
		{`return platform.linux_family`, lua.LString("debian")},
		{`return platform.distro.id`, lua.LString("ubuntu")},
		{`return platform.distro.version`, lua.LString("22.04")},
		{`return platform.when(platform.is_linux, "yes")`, lua.LString("yes")},
		{`return platform.when(platform.is_macos, "yes")`, lua.LNil},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			if got := eval(t, L, tt.code); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInjectPlatformTable_MacOS(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	if err := InjectPlatformTable(L, &Info{OS: "darwin", Arch: "arm64"}); err != nil {
		t.Fatalf("InjectPlatformTable() error = %v", err)
	}

	if got := eval(t, L, `return platform.distro`); got != lua.LNil {
		t.Errorf("distro = %v, want nil", got)
	}
	if got := eval(t, L, `return platform.linux_family`); got != lua.LNil {
		t.Errorf("linux_family = %v, want nil", got)
	}
	if got := eval(t, L, `return platform.is_arm64`); got != lua.LTrue {
		t.Errorf("is_arm64 = %v, want true", got)
	}
}

func TestInjectPlatformTable_ReadOnly(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	if err := InjectPlatformTable(L, &Info{OS: "linux", Arch: "amd64"}); err != nil {
		t.Fatalf("InjectPlatformTable() error = %v", err)
	}

	for _, code := range []string{
		`platform.os = "windows"`,
		`platform.new_field = 1`,
		`setmetatable(platform, {})`,
	} {
		err := L.DoString(code)
		if err == nil {
			t.Errorf("%q should fail", code)
			continue
		}
		if strings.Contains(code, "platform.") && !strings.Contains(err.Error(), "read-only") {
			t.Errorf("%q: unexpected error %v", code, err)
		}
	}
}
