package resolve

import (
	"errors"
	"strings"
)

// Sentinel errors, one per Kind. A *Error matches exactly one of them with
// errors.Is.
var (
	ErrNotFound        = errors.New("binary not found")
	ErrVersionMismatch = errors.New("no installed version matched")
	ErrAmbiguousOwner  = errors.New("multiple owners matched")
	ErrStaleBinding    = errors.New("global binding references a binary that is not installed")
	ErrDefect          = errors.New("manifest entry is inconsistent")
)

// Kind classifies resolution failures.
type Kind int

const (
	KindNotFound Kind = iota + 1
	KindVersionMismatch
	KindAmbiguousOwner
	KindStaleBinding
	KindDefect
)

// String returns the kind's name.
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "NotFound"
	case KindVersionMismatch:
		return "VersionMismatch"
	case KindAmbiguousOwner:
		return "AmbiguousOwner"
	case KindStaleBinding:
		return "StaleBinding"
	case KindDefect:
		return "Defect"
	default:
		return "Unknown"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindNotFound:
		return ErrNotFound
	case KindVersionMismatch:
		return ErrVersionMismatch
	case KindAmbiguousOwner:
		return ErrAmbiguousOwner
	case KindStaleBinding:
		return ErrStaleBinding
	case KindDefect:
		return ErrDefect
	default:
		return nil
	}
}

// Error is a resolution failure with enough context for the user to fix it.
type Error struct {
	Kind Kind
	// Subject is the name selector or command the resolution was about.
	Subject string
	// Installed lists the installed alternatives, already formatted by
	// DisplayBinariesVersions. Empty when there are none worth showing.
	Installed []string
	// Message is the user-facing explanation.
	Message string
}

func (e *Error) Error() string {
	if len(e.Installed) == 0 {
		return e.Message
	}
	return e.Message + "\n\nInstalled versions:\n  " + strings.Join(e.Installed, "\n  ")
}

// Is reports whether target is the sentinel for e's kind.
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}
