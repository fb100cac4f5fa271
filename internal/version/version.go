// Package version provides the semantic versions of installed binaries and
// the selectors used to match them.
//
// Both types wrap github.com/Masterminds/semver/v3. A Version is always a
// full MAJOR.MINOR.PATCH version (partial input such as "1.2" is coerced to
// "1.2.0"), while a Selector keeps the exact text it was parsed from so it
// can be echoed back in diagnostics.
package version

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Version is a semantic version. The zero value sorts before every parsed
// version and prints as an empty string.
type Version struct {
	sv *semver.Version
}

// Parse parses a semantic version such as "1.2.0" or "v2.0.0-beta.1".
func Parse(s string) (Version, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Version{}, fmt.Errorf("empty version")
	}
	sv, err := semver.NewVersion(s)
	if err != nil {
		return Version{}, fmt.Errorf("invalid version %q: %w", s, err)
	}
	return Version{sv: sv}, nil
}

// MustParse is like Parse but panics on error. Intended for tests and
// package-level fixtures.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// IsZero reports whether v is the zero Version.
func (v Version) IsZero() bool {
	return v.sv == nil
}

// String returns the normalized version without any "v" prefix.
func (v Version) String() string {
	if v.sv == nil {
		return ""
	}
	return v.sv.String()
}

// Compare returns -1, 0 or 1 depending on whether v is less than, equal to,
// or greater than o. Build metadata is ignored.
func (v Version) Compare(o Version) int {
	switch {
	case v.sv == nil && o.sv == nil:
		return 0
	case v.sv == nil:
		return -1
	case o.sv == nil:
		return 1
	}
	return v.sv.Compare(o.sv)
}

// Equal reports whether v and o are the same version.
func (v Version) Equal(o Version) bool {
	return v.Compare(o) == 0
}

// MarshalJSON encodes the version as a JSON string.
func (v Version) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}

// UnmarshalJSON decodes a version from a JSON string. A bare integer such
// as 2 is accepted as 2.0.0. Other bare numbers are rejected: YAML sources
// reach this method through a JSON conversion that rewrites 1.10 as 1.1,
// so those versions must be quoted.
func (v *Version) UnmarshalJSON(data []byte) error {
	s, err := versionText(data)
	if err != nil {
		return err
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

func versionText(data []byte) (string, error) {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return "", fmt.Errorf("version must be a string: %w", err)
		}
		return s, nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return "", fmt.Errorf("version must be a string: %w", err)
	}
	if strings.ContainsAny(num.String(), ".eE") {
		return "", fmt.Errorf("version %s must be quoted", num)
	}
	return num.String(), nil
}
