package environment

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"syscall"

	"github.com/ZebulonRouseFrantzich/bvm/internal/manifest"
	"github.com/ZebulonRouseFrantzich/bvm/internal/version"
)

// defaultPathExt is used on Windows when PATHEXT is unset.
const defaultPathExt = ".com;.exe;.bat;.cmd"

// System is the real environment: the process's PATH and the on-disk
// layout described by Paths.
type System struct {
	paths    Paths
	pathList []string
	goos     string
	pathExt  []string
}

// NewSystem creates an environment using the current PATH and PATHEXT.
func NewSystem(paths Paths) *System {
	s := &System{paths: paths, goos: runtime.GOOS}
	s.pathList = filepath.SplitList(os.Getenv("PATH"))
	s.pathExt = splitPathExt(os.Getenv("PATHEXT"))
	return s
}

// WithPathList replaces the PATH directories searched by FindPathExecutable.
func (s *System) WithPathList(dirs []string) *System {
	s.pathList = dirs
	return s
}

// Paths returns the directory layout.
func (s *System) Paths() Paths {
	return s.paths
}

func splitPathExt(v string) []string {
	if v == "" {
		v = defaultPathExt
	}
	var exts []string
	for _, ext := range strings.Split(strings.ToLower(v), ";") {
		if ext = strings.TrimSpace(ext); ext != "" {
			exts = append(exts, ext)
		}
	}
	return exts
}

// PluginDir returns <data>/plugins/<owner>/<name>/<version>.
func (s *System) PluginDir(name manifest.BinaryName, v version.Version) (string, error) {
	for _, part := range []string{name.Owner, name.Name, v.String()} {
		if err := checkPathComponent(part); err != nil {
			return "", fmt.Errorf("plugin dir for %s@%s: %w", name, v, err)
		}
	}
	return filepath.Join(s.paths.PluginsDir(), name.Owner, name.Name, v.String()), nil
}

func checkPathComponent(part string) error {
	if part == "" || part == "." || part == ".." || strings.ContainsAny(part, `/\`) {
		return fmt.Errorf("invalid path component %q", part)
	}
	return nil
}

// FindPathExecutable searches PATH in order for command, skipping the shim
// directory and anything that resolves into it. Missing or unreadable PATH
// entries are skipped; other filesystem errors are returned.
func (s *System) FindPathExecutable(command manifest.CommandName) (string, bool, error) {
	if err := checkPathComponent(string(command)); err != nil {
		return "", false, err
	}

	for _, dir := range s.pathList {
		if dir == "" || s.isShimDir(dir) {
			continue
		}
		for _, candidate := range s.candidates(dir, string(command)) {
			ok, err := s.isExecutable(candidate)
			if err != nil {
				return "", false, err
			}
			if !ok || s.resolvesIntoShimDir(candidate) {
				continue
			}
			return candidate, true, nil
		}
	}
	return "", false, nil
}

func (s *System) candidates(dir, command string) []string {
	base := filepath.Join(dir, command)
	if s.goos != "windows" {
		return []string{base}
	}
	if ext := strings.ToLower(filepath.Ext(command)); ext != "" && slices.Contains(s.pathExt, ext) {
		return []string{base}
	}
	out := make([]string, 0, len(s.pathExt))
	for _, ext := range s.pathExt {
		out = append(out, base+ext)
	}
	return out
}

func (s *System) isExecutable(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if skippableStatError(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return false, nil
	}
	if s.goos == "windows" {
		return true, nil
	}
	return info.Mode().Perm()&0o111 != 0, nil
}

func skippableStatError(err error) bool {
	return errors.Is(err, fs.ErrNotExist) ||
		errors.Is(err, fs.ErrPermission) ||
		errors.Is(err, syscall.ENOTDIR)
}

func (s *System) isShimDir(dir string) bool {
	if s.paths.ShimDir == "" {
		return false
	}
	if filepath.Clean(dir) == filepath.Clean(s.paths.ShimDir) {
		return true
	}
	a, errA := os.Stat(dir)
	b, errB := os.Stat(s.paths.ShimDir)
	return errA == nil && errB == nil && os.SameFile(a, b)
}

// resolvesIntoShimDir reports whether a symlinked candidate points at a
// shim, which would make bvm launch itself.
func (s *System) resolvesIntoShimDir(path string) bool {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil || resolved == path {
		return false
	}
	return s.isShimDir(filepath.Dir(resolved))
}
