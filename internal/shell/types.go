package shell

import "fmt"

// ShellType names a shell bvm can activate in.
type ShellType string

const (
	ShellBash    ShellType = "bash"
	ShellZsh     ShellType = "zsh"
	ShellFish    ShellType = "fish"
	ShellUnknown ShellType = "unknown"
)

func (s ShellType) String() string {
	return string(s)
}

// IsValid reports whether an activation script exists for s.
func (s ShellType) IsValid() bool {
	return s == ShellBash || s == ShellZsh || s == ShellFish
}

// DetectionResult describes how the user's shell was found.
type DetectionResult struct {
	Shell     ShellType
	Method    string
	ShellPath string
	// Confidence is "high" for $SHELL, "medium" for the parent process and
	// "none" when detection failed.
	Confidence string
}

// UnsupportedShellError is returned for shells without an activation script.
type UnsupportedShellError struct {
	Shell string
}

func (e *UnsupportedShellError) Error() string {
	return fmt.Sprintf("unsupported shell: %s (supported: bash, zsh, fish)", e.Shell)
}
