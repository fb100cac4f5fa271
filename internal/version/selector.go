package version

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// anySelectorText is how the match-everything selector is written.
const anySelectorText = "*"

// Selector is a version range constraint: an exact version ("1.2.3"), a
// range ("^1.2", "~1.2.0", ">=1.0.0, <2.0.0"), a partial version ("1",
// "1.2") or any version ("*"). The zero value matches every version.
type Selector struct {
	raw         string
	constraints *semver.Constraints
}

// Any returns a selector that matches every version.
func Any() Selector {
	return Selector{raw: anySelectorText}
}

// ParseSelector parses a version selector. An empty string or "*" yields
// the any selector.
func ParseSelector(s string) (Selector, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == anySelectorText {
		return Any(), nil
	}
	c, err := semver.NewConstraint(s)
	if err != nil {
		return Selector{}, fmt.Errorf("invalid version selector %q: %w", s, err)
	}
	return Selector{raw: s, constraints: c}, nil
}

// MustParseSelector is like ParseSelector but panics on error.
func MustParseSelector(s string) Selector {
	sel, err := ParseSelector(s)
	if err != nil {
		panic(err)
	}
	return sel
}

// IsAny reports whether the selector places no constraint on the version.
func (s Selector) IsAny() bool {
	return s.constraints == nil
}

// Matches reports whether v satisfies the selector. The zero Version never
// satisfies a constrained selector.
func (s Selector) Matches(v Version) bool {
	if s.constraints == nil {
		return true
	}
	if v.sv == nil {
		return false
	}
	return s.constraints.Check(v.sv)
}

// String returns the selector as written.
func (s Selector) String() string {
	if s.raw == "" {
		return anySelectorText
	}
	return s.raw
}
