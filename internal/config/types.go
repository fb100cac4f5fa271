package config

import (
	"fmt"
	"strings"

	"github.com/ZebulonRouseFrantzich/bvm/internal/version"
)

// Config is a parsed project configuration.
type Config struct {
	// Binaries declared by the project, in declaration order.
	Binaries []Binary
}

// Binary is a project-level binary declaration: the plugin's path or URL
// and an optional version selector.
type Binary struct {
	// Path is the plugin file path or URL as written in the config.
	Path string

	// Version constrains which installed version may be used when the
	// version pinned by Path is not installed. Nil means no constraint was
	// declared.
	Version *version.Selector
}

// String returns "path" or "path@selector".
func (b Binary) String() string {
	if b.Version == nil {
		return b.Path
	}
	return b.Path + "@" + b.Version.String()
}

// Validate performs basic validation on a Config.
func (c *Config) Validate() error {
	if len(c.Binaries) > MaxBinaryCount {
		return &ValidationError{
			Field:   luaFieldBinaries,
			Message: fmt.Sprintf("too many binaries (%d), maximum is %d", len(c.Binaries), MaxBinaryCount),
		}
	}

	seen := make(map[string]int, len(c.Binaries))
	for i, b := range c.Binaries {
		if err := checkBinary(i, b, seen); err != nil {
			return err
		}
	}

	return nil
}

// checkBinary validates the entry at binaries[index] and records its path in
// seen so duplicates can name the earlier declaration.
func checkBinary(index int, b Binary, seen map[string]int) error {
	field := binaryField(index)
	if strings.TrimSpace(b.Path) == "" {
		return &ValidationError{Field: field, Message: "path cannot be empty"}
	}
	if len(b.Path) > MaxPathLength {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("path too long (%d chars, max %d)", len(b.Path), MaxPathLength),
		}
	}
	if prev, dup := seen[b.Path]; dup {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("%s is already declared at %s", b.Path, binaryField(prev)),
		}
	}
	seen[b.Path] = index
	return nil
}

func binaryField(index int) string {
	return fmt.Sprintf("%s[%d]", luaFieldBinaries, index)
}

// ValidationError represents a config validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return "config validation failed for " + e.Field + ": " + e.Message
	}
	return "config validation failed: " + e.Message
}
