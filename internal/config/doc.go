// Package config parses project configuration files (bvm.lua) that declare
// which binaries a project uses.
//
// It uses gopher-lua for safe, sandboxed Lua execution with platform
// detection integration, so a project can declare platform-specific
// binaries.
//
// # Configuration Format
//
// A project config assigns a global bvm table:
//
//	bvm = {
//	    binaries = {
//	        -- pinned by URL
//	        "https://plugins.example.com/acme/fmt-1.2.0.json",
//
//	        -- pinned by URL, but any installed ^2.0.0 version is accepted
//	        { path = "https://plugins.example.com/acme/lint.json", version = "^2.0.0" },
//
//	        -- platform specific
//	        platform.when(platform.is_linux, { path = "./plugins/strace.json" }),
//	    },
//	}
//
// Each entry is either a path string or a table with a path and an optional
// version selector. nil entries (from platform.when) are skipped.
//
// # Sandbox
//
// The os, io and debug libraries and the require, dofile, loadfile, load
// and loadstring functions are removed before the file is evaluated. The
// string, table and math libraries stay available. Evaluation honours the
// caller's context, so a config that never terminates can be cancelled.
//
// # Platform Table
//
// When the parser has a platform.Detector, a read-only platform table is
// available to the config:
//
//	platform.os               -- "linux", "darwin", "windows"
//	platform.arch             -- "amd64", "arm64"
//	platform.is_linux         -- boolean
//	platform.is_macos         -- boolean
//	platform.is_windows       -- boolean
//	platform.linux_family     -- "debian", "rhel", ... or nil
//	platform.when(cond, v)    -- v when cond is true, nil otherwise
//
// # Usage
//
//	parser := config.NewParser(platform.NewDetector())
//	path, ok, err := config.Discover(".")
//	if err != nil || !ok {
//	    return err
//	}
//	cfg, err := parser.ParseFile(ctx, path)
//	if err != nil {
//	    fmt.Fprintln(os.Stderr, config.FormatError(err, verbose))
//	    return err
//	}
//
// # Error Handling
//
// Parsing failures are returned as *ParseError with a friendly Message and
// the raw Lua Detail; FormatError renders either form. Structural problems
// are reported as *ValidationError naming the offending field, such as
// "binaries[2]".
package config
