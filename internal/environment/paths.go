// Package environment implements the host-facing side of resolution: where
// bvm keeps its files and how executables are found on the system PATH.
package environment

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Environment variables that override the directory layout.
const (
	EnvHome    = "BVM_HOME"
	EnvDataDir = "BVM_DATA_DIR"
	EnvShimDir = "BVM_SHIM_DIR"
)

// Paths is bvm's directory layout.
type Paths struct {
	// DataDir holds the manifest snapshot and the plugins directory.
	DataDir string
	// ShimDir holds bvm's own shims. It is placed on PATH and is skipped
	// when looking for PATH executables.
	ShimDir string
}

// DefaultPaths builds the layout from the BVM_* environment variables,
// falling back to a per-user data directory.
func DefaultPaths() (Paths, error) {
	home := os.Getenv(EnvHome)
	if home == "" {
		var err error
		home, err = defaultHome()
		if err != nil {
			return Paths{}, err
		}
	}

	p := Paths{
		DataDir: home,
		ShimDir: filepath.Join(home, "shims"),
	}
	if dir := os.Getenv(EnvDataDir); dir != "" {
		p.DataDir = dir
	}
	if dir := os.Getenv(EnvShimDir); dir != "" {
		p.ShimDir = dir
	}
	return p, nil
}

func defaultHome() (string, error) {
	if runtime.GOOS == "windows" {
		if dir := os.Getenv("LOCALAPPDATA"); dir != "" {
			return filepath.Join(dir, "bvm"), nil
		}
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory (set %s): %w", EnvHome, err)
	}
	return filepath.Join(userHome, ".local", "share", "bvm"), nil
}

// ManifestFile is the manifest snapshot's location.
func (p Paths) ManifestFile() string {
	return filepath.Join(p.DataDir, "manifest.json")
}

// PluginsDir is the root of the installed plugin cache.
func (p Paths) PluginsDir() string {
	return filepath.Join(p.DataDir, "plugins")
}
