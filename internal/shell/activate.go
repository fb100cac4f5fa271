package shell

import (
	"fmt"
	"strings"
)

// GenerateActivationCommand generates the line users add to their shell config.
func GenerateActivationCommand(shell ShellType) (string, error) {
	if err := ValidateShell(shell); err != nil {
		return "", err
	}

	switch shell {
	case ShellFish:
		return fmt.Sprintf("%s %s | source", ActivationMarker, shell), nil
	default:
		return fmt.Sprintf(`eval "$(%s %s)"`, ActivationMarker, shell), nil
	}
}

// ActivationScript returns a script that prepends shimDir to PATH when it
// is not already present.
func ActivationScript(shell ShellType, shimDir string) (string, error) {
	if err := ValidateShell(shell); err != nil {
		return "", err
	}
	if shimDir == "" {
		return "", fmt.Errorf("activation script: empty shim directory")
	}
	if strings.ContainsAny(shimDir, "\n\x00") {
		return "", fmt.Errorf("activation script: shim directory %q contains a control character", shimDir)
	}

	dir := quote(shimDir)
	switch shell {
	case ShellFish:
		return fmt.Sprintf("if not contains -- %s $PATH\n    set -gx PATH %s $PATH\nend\n", dir, dir), nil
	default:
		return fmt.Sprintf("case \":${PATH}:\" in\n  *:%s:*) ;;\n  *) export PATH=%s\"${PATH:+:${PATH}}\" ;;\nesac\n", dir, dir), nil
	}
}

// quote single-quotes s for POSIX shells and fish.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
