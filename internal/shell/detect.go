package shell

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/shirou/gopsutil/v4/process"
)

// parentProcess returns the parent process's name and executable path.
// Replaced in tests.
var parentProcess = func() (name, exe string) {
	p, err := process.NewProcess(int32(os.Getppid()))
	if err != nil {
		return "", ""
	}
	name, _ = p.Name()
	exe, _ = p.Exe()
	return name, exe
}

// DetectShell detects the user's shell using multiple methods
func DetectShell() (*DetectionResult, error) {
	// $SHELL is the login shell and the most reliable signal.
	if shell := os.Getenv("SHELL"); shell != "" {
		shellType := parseShellFromPath(shell)
		if shellType.IsValid() {
			return &DetectionResult{
				Shell:      shellType,
				Method:     "$SHELL environment variable",
				ShellPath:  shell,
				Confidence: "high",
			}, nil
		}
	}

	if shellType, shellPath := detectFromParentProcess(); shellType.IsValid() {
		return &DetectionResult{
			Shell:      shellType,
			Method:     "parent process",
			ShellPath:  shellPath,
			Confidence: "medium",
		}, nil
	}

	return &DetectionResult{
		Shell:      ShellUnknown,
		Method:     "detection failed",
		Confidence: "none",
	}, nil
}

// ParseShell maps a shell name such as "bash" to its ShellType.
func ParseShell(name string) (ShellType, error) {
	shell := ShellType(strings.ToLower(strings.TrimSpace(name)))
	if err := ValidateShell(shell); err != nil {
		return ShellUnknown, err
	}
	return shell, nil
}

// parseShellFromPath extracts the shell type from a shell binary path
// Examples:
//   - /bin/bash -> bash
//   - /usr/bin/zsh -> zsh
//   - -zsh (login shell) -> zsh
func parseShellFromPath(shellPath string) ShellType {
	baseName := strings.ToLower(filepath.Base(shellPath))
	baseName = strings.TrimPrefix(baseName, "-")
	baseName = strings.TrimSuffix(baseName, ".exe")

	switch baseName {
	case "bash":
		return ShellBash
	case "zsh":
		return ShellZsh
	case "fish":
		return ShellFish
	default:
		return ShellUnknown
	}
}

// detectFromParentProcess identifies the shell bvm was started from.
func detectFromParentProcess() (ShellType, string) {
	name, exe := parentProcess()
	if shell := parseShellFromPath(name); shell.IsValid() {
		return shell, exe
	}
	if shell := parseShellFromPath(exe); shell.IsValid() {
		return shell, exe
	}
	return ShellUnknown, ""
}

// ValidateShell validates that a shell type is supported
func ValidateShell(shell ShellType) error {
	if !shell.IsValid() {
		return &UnsupportedShellError{Shell: shell.String()}
	}
	return nil
}

// GetSupportedShells returns a list of supported shells
func GetSupportedShells() []ShellType {
	return []ShellType{ShellBash, ShellZsh, ShellFish}
}
