package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ZebulonRouseFrantzich/bvm/internal/platform"
)

func TestParser_ParseString_Minimal(t *testing.T) {
	luaCode := `
		bvm = {
			binaries = {
				"https://plugins.example.com/acme/fmt.json",
			},
		}
	`

	cfg, err := NewParser(nil).ParseString(context.Background(), luaCode)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}

	if len(cfg.Binaries) != 1 {
		t.Fatalf("Binaries length = %d, want 1", len(cfg.Binaries))
	}
	if cfg.Binaries[0].Path != "https://plugins.example.com/acme/fmt.json" {
		t.Errorf("Binaries[0].Path = %s", cfg.Binaries[0].Path)
	}
	if cfg.Binaries[0].Version != nil {
		t.Errorf("Binaries[0].Version = %v, want nil", cfg.Binaries[0].Version)
	}
}

func TestParser_ParseString_WithVersions(t *testing.T) {
	luaCode := `
		bvm = {
			binaries = {
				"https://plugins.example.com/acme/fmt.json",
				{ path = "https://plugins.example.com/acme/lint.json", version = "^2.0.0" },
				{ path = "./local/tool.json", version = "*" },
			},
		}
	`

	cfg, err := NewParser(nil).ParseString(context.Background(), luaCode)
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}

	if len(cfg.Binaries) != 3 {
		t.Fatalf("Binaries length = %d, want 3", len(cfg.Binaries))
	}

	lint := cfg.Binaries[1]
	if lint.Path != "https://plugins.example.com/acme/lint.json" {
		t.Errorf("Binaries[1].Path = %s", lint.Path)
	}
	if lint.Version == nil || lint.Version.String() != "^2.0.0" {
		t.Errorf("Binaries[1].Version = %v, want ^2.0.0", lint.Version)
	}

	tool := cfg.Binaries[2]
	if tool.Version == nil || !tool.Version.IsAny() {
		t.Errorf("Binaries[2].Version = %v, want any", tool.Version)
	}
}

func TestParser_ParseString_Platform(t *testing.T) {
	luaCode := `
		bvm = {
			binaries = {
				"https://plugins.example.com/acme/fmt.json",
				platform.when(platform.is_linux, "https://plugins.example.com/acme/strace.json"),
				platform.when(platform.is_macos, "https://plugins.example.com/acme/dtrace.json"),
			},
		}
	`

	tests := []struct {
		name string
		info *platform.Info
		want []string
	}{
		{
			name: "linux",
			info: &platform.Info{OS: "linux", Arch: "amd64"},
			want: []string{"https://plugins.example.com/acme/fmt.json", "https://plugins.example.com/acme/strace.json"},
		},
		{
			name: "macos",
			info: &platform.Info{OS: "darwin", Arch: "arm64"},
			want: []string{"https://plugins.example.com/acme/fmt.json", "https://plugins.example.com/acme/dtrace.json"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := NewParser(platform.StaticDetector{Info: tt.info})
			cfg, err := parser.ParseString(context.Background(), luaCode)
			if err != nil {
				t.Fatalf("ParseString() error = %v", err)
			}

			var got []string
			for _, b := range cfg.Binaries {
				got = append(got, b.Path)
			}
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("paths = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParser_ParseString_Errors(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
	}{
		{name: "syntax_error", code: `bvm = {`, wantMsg: "Lua syntax error"},
		{name: "missing_table", code: `x = 1`, wantMsg: "missing or invalid 'bvm' table"},
		{name: "binaries_not_table", code: `bvm = { binaries = "fmt" }`, wantMsg: "invalid 'binaries' field"},
		{name: "bad_entry_type", code: `bvm = { binaries = { 42 } }`, wantMsg: "expected string or table"},
		{name: "bad_version", code: `bvm = { binaries = { { path = "a.json", version = "abc" } } }`, wantMsg: "invalid version selector"},
		{name: "version_not_string", code: `bvm = { binaries = { { path = "a.json", version = 1 } } }`, wantMsg: "version must be a string"},
		{name: "missing_path", code: `bvm = { binaries = { { version = "1.0.0" } } }`, wantMsg: "path cannot be empty"},
		{name: "sandboxed", code: `os.exit(1)`, wantMsg: "Lua syntax error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParser(nil).ParseString(context.Background(), tt.code)
			if err == nil {
				t.Fatal("expected error but got none")
			}
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("expected *ParseError, got %T: %v", err, err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not contain %q", err, tt.wantMsg)
			}
		})
	}
}

func TestParser_ParseString_RejectsNonListKeys(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantKey string
	}{
		{
			name:    "string_keys",
			code:    `bvm = { binaries = { "a.json", x = "b.json", y = "c.json" } }`,
			wantKey: "found key",
		},
		{
			name:    "fractional_key",
			code:    `bvm = { binaries = { "a.json", [1.5] = "b.json" } }`,
			wantKey: "found key 1.5",
		},
		{
			name:    "zero_key",
			code:    `bvm = { binaries = { [0] = "a.json", "b.json" } }`,
			wantKey: "found key 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParser(nil).ParseString(context.Background(), tt.code)
			if err == nil {
				t.Fatal("expected error for non-list binaries table")
			}
			if !strings.Contains(err.Error(), "must be a list") || !strings.Contains(err.Error(), tt.wantKey) {
				t.Errorf("error %q does not name the offending key", err)
			}
		})
	}
}

func TestParser_ParseString_KeepsDeclarationOrder(t *testing.T) {
	luaCode := `
		bvm = {
			binaries = {
				"a.json",
				platform.when(false, "skipped.json"),
				{ path = "b.json" },
				"c.json",
				platform.when(true, "d.json"),
				"e.json",
			},
		}
	`
	detector := platform.StaticDetector{Info: &platform.Info{OS: "linux", Arch: "amd64"}}
	want := []string{"a.json", "b.json", "c.json", "d.json", "e.json"}

	for run := 0; run < 20; run++ {
		cfg, err := NewParser(detector).ParseString(context.Background(), luaCode)
		if err != nil {
			t.Fatalf("ParseString() error = %v", err)
		}
		var got []string
		for _, b := range cfg.Binaries {
			got = append(got, b.Path)
		}
		if strings.Join(got, ",") != strings.Join(want, ",") {
			t.Fatalf("run %d: binaries = %v, want %v", run, got, want)
		}
	}
}

func TestParser_ParseString_ErrorFieldCountsSkippedEntries(t *testing.T) {
	tests := []struct {
		name      string
		code      string
		wantField string
	}{
		{
			name:      "bad_entry_after_nil",
			code:      `bvm = { binaries = { "a.json", platform.when(false, "x.json"), { path = "" } } }`,
			wantField: "binaries[2]",
		},
		{
			name:      "duplicate_after_nil",
			code:      `bvm = { binaries = { "a.json", platform.when(false, "x.json"), "a.json" } }`,
			wantField: "binaries[2]: a.json is already declared at binaries[0]",
		},
	}

	detector := platform.StaticDetector{Info: &platform.Info{OS: "linux", Arch: "amd64"}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParser(detector).ParseString(context.Background(), tt.code)
			if err == nil {
				t.Fatal("expected error but got none")
			}
			if !strings.Contains(err.Error(), tt.wantField) {
				t.Errorf("error %q does not contain %q", err, tt.wantField)
			}
		})
	}
}

func TestParser_ParseString_PlatformDetectionFails(t *testing.T) {
	_, err := NewParser(platform.StaticDetector{}).ParseString(context.Background(), `bvm = {}`)
	if err == nil || !strings.Contains(err.Error(), "platform detection failed") {
		t.Errorf("expected platform detection error, got %v", err)
	}
}

func TestParser_ParseString_Cancelled(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := NewParser(nil).ParseString(ctx, `while true do end`)
	if err == nil {
		t.Fatal("expected error for runaway config")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}

func TestParser_ParseFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid", func(t *testing.T) {
		path := filepath.Join(dir, FileName)
		if err := os.WriteFile(path, []byte(`bvm = { binaries = { "a.json" } }`), 0o644); err != nil {
			t.Fatal(err)
		}
		cfg, err := NewParser(nil).ParseFile(context.Background(), path)
		if err != nil {
			t.Fatalf("ParseFile() error = %v", err)
		}
		if len(cfg.Binaries) != 1 {
			t.Errorf("Binaries length = %d, want 1", len(cfg.Binaries))
		}
	})

	t.Run("parse_error_names_file", func(t *testing.T) {
		path := filepath.Join(dir, "broken.lua")
		if err := os.WriteFile(path, []byte(`bvm = {`), 0o644); err != nil {
			t.Fatal(err)
		}
		_, err := NewParser(nil).ParseFile(context.Background(), path)
		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Fatalf("expected *ParseError, got %v", err)
		}
		if parseErr.File != path {
			t.Errorf("File = %q, want %q", parseErr.File, path)
		}
	})

	t.Run("missing", func(t *testing.T) {
		_, err := NewParser(nil).ParseFile(context.Background(), filepath.Join(dir, "absent.lua"))
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("expected not-exist error, got %v", err)
		}
	})

	t.Run("too_large", func(t *testing.T) {
		path := filepath.Join(dir, "huge.lua")
		data := []byte("-- " + strings.Repeat("x", MaxFileSize) + "\nbvm = {}")
		if err := os.WriteFile(path, data, 0o644); err != nil {
			t.Fatal(err)
		}
		_, err := NewParser(nil).ParseFile(context.Background(), path)
		var valErr *ValidationError
		if !errors.As(err, &valErr) {
			t.Errorf("expected *ValidationError, got %v", err)
		}
	})
}

func TestFormatError(t *testing.T) {
	err := &ParseError{
		File:    "bvm.lua",
		Message: "Lua syntax error",
		Detail:  "<string>:1: unexpected EOF\nstack traceback:\n\t[G]: ?",
	}

	short := FormatError(err, false)
	if strings.Contains(short, "stack traceback") {
		t.Errorf("short form should drop the traceback: %q", short)
	}
	if !strings.HasPrefix(short, "bvm.lua: Lua syntax error") {
		t.Errorf("short form should name the file: %q", short)
	}

	verbose := FormatError(err, true)
	if !strings.Contains(verbose, "Details:") || !strings.Contains(verbose, "stack traceback") {
		t.Errorf("verbose form should include details: %q", verbose)
	}

	plain := errors.New("boom")
	if FormatError(plain, false) != "boom" {
		t.Error("non-parse errors should be returned verbatim")
	}
}
