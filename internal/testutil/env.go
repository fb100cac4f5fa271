// Package testutil provides utilities for testing bvm in isolation.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// Env is an isolated bvm directory layout rooted in a test temp dir.
type Env struct {
	Root    string
	DataDir string
	ShimDir string
	// BinDir is an extra directory meant to be put on PATH for fake system
	// executables.
	BinDir string
}

// SetupTestEnv creates isolated directories and points the BVM_* variables
// and PATH at them, so tests never see the user's real installation.
// Cleanup is handled by t.TempDir and t.Setenv.
func SetupTestEnv(t *testing.T) Env {
	t.Helper()

	root := t.TempDir()
	env := Env{
		Root:    root,
		DataDir: filepath.Join(root, "data"),
		ShimDir: filepath.Join(root, "shims"),
		BinDir:  filepath.Join(root, "bin"),
	}

	t.Setenv("BVM_HOME", root)
	t.Setenv("BVM_DATA_DIR", env.DataDir)
	t.Setenv("BVM_SHIM_DIR", env.ShimDir)
	t.Setenv("BVM_DEBUG", "")
	t.Setenv("PATH", env.ShimDir+string(os.PathListSeparator)+env.BinDir)

	for _, dir := range []string{env.DataDir, env.ShimDir, env.BinDir} {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			t.Fatalf("failed to create test directory %s: %v", dir, err)
		}
	}

	return env
}

// WriteExecutable creates an executable file named name in dir and returns
// its path.
func WriteExecutable(t *testing.T, dir, name string) string {
	t.Helper()

	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		t.Fatalf("create %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write executable %s: %v", path, err)
	}
	return path
}

// WriteFile writes data to dir/name, creating dir as needed.
func WriteFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()

	if err := os.MkdirAll(dir, 0o750); err != nil {
		t.Fatalf("create %s: %v", dir, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
