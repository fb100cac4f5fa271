package manifest

import (
	"fmt"
	"strings"

	"github.com/ZebulonRouseFrantzich/bvm/internal/version"
)

// CommandName is the name a user types to launch a binary's executable.
type CommandName string

// String returns the command name.
func (c CommandName) String() string {
	return string(c)
}

// BinaryName is the owner-qualified name of a binary.
type BinaryName struct {
	Owner string
	Name  string
}

// ParseBinaryName parses "owner/name".
func ParseBinaryName(s string) (BinaryName, error) {
	owner, name, ok := strings.Cut(strings.TrimSpace(s), "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return BinaryName{}, fmt.Errorf("invalid binary name %q (expected owner/name)", s)
	}
	return BinaryName{Owner: owner, Name: name}, nil
}

// String returns "owner/name".
func (n BinaryName) String() string {
	return n.Owner + "/" + n.Name
}

// Selector returns a name selector that matches this exact owner and name.
func (n BinaryName) Selector() NameSelector {
	return NameSelector{Owner: n.Owner, Name: n.Name}
}

// ShortSelector returns a name selector that matches the short name under
// any owner.
func (n BinaryName) ShortSelector() NameSelector {
	return NameSelector{Name: n.Name}
}

// BinaryIdentifier uniquely names one installed binary.
type BinaryIdentifier struct {
	Name    BinaryName
	Version version.Version
}

// NewBinaryIdentifier builds an identifier from its parts.
func NewBinaryIdentifier(owner, name string, v version.Version) BinaryIdentifier {
	return BinaryIdentifier{Name: BinaryName{Owner: owner, Name: name}, Version: v}
}

// ParseBinaryIdentifier parses "owner/name@version".
func ParseBinaryIdentifier(s string) (BinaryIdentifier, error) {
	nameText, versionText, ok := strings.Cut(strings.TrimSpace(s), "@")
	if !ok {
		return BinaryIdentifier{}, fmt.Errorf("invalid binary identifier %q (expected owner/name@version)", s)
	}
	name, err := ParseBinaryName(nameText)
	if err != nil {
		return BinaryIdentifier{}, fmt.Errorf("invalid binary identifier %q: %w", s, err)
	}
	v, err := version.Parse(versionText)
	if err != nil {
		return BinaryIdentifier{}, fmt.Errorf("invalid binary identifier %q: %w", s, err)
	}
	return BinaryIdentifier{Name: name, Version: v}, nil
}

// String returns "owner/name@version". It is also the identifier's lookup key.
func (id BinaryIdentifier) String() string {
	return id.Name.String() + "@" + id.Version.String()
}

// IsZero reports whether the identifier is unset.
func (id BinaryIdentifier) IsZero() bool {
	return id.Name == BinaryName{} && id.Version.IsZero()
}

// Command is a command provided by a binary and the executable's path
// relative to the binary's plugin directory.
type Command struct {
	Name CommandName `json:"name"`
	Path string      `json:"path"`
}

// BinaryManifestItem is one installed binary.
type BinaryManifestItem struct {
	Name     BinaryName
	Version  version.Version
	Commands []Command
}

// Identifier returns the identifier of the item.
func (b *BinaryManifestItem) Identifier() BinaryIdentifier {
	return BinaryIdentifier{Name: b.Name, Version: b.Version}
}

// Command returns the command record registered under name.
func (b *BinaryManifestItem) Command(name CommandName) (Command, bool) {
	for _, c := range b.Commands {
		if c.Name == name {
			return c, true
		}
	}
	return Command{}, false
}

// HasCommand reports whether the binary provides name.
func (b *BinaryManifestItem) HasCommand(name CommandName) bool {
	_, ok := b.Command(name)
	return ok
}

// SameIdentity reports whether b and o are the same binary, possibly at
// different versions: owner and short name must both agree.
func (b *BinaryManifestItem) SameIdentity(o *BinaryManifestItem) bool {
	return b.Name == o.Name
}

// Compare orders binaries by short name and then by version. Owner does not
// take part, so binaries from different owners with equal name and version
// compare as equal.
func Compare(a, b *BinaryManifestItem) int {
	if c := strings.Compare(a.Name.Name, b.Name.Name); c != 0 {
		return c
	}
	return a.Version.Compare(b.Version)
}

// NameSelector matches binaries by short name, optionally restricted to an
// owner. An empty Owner matches any owner.
type NameSelector struct {
	Owner string
	Name  string
}

// ParseNameSelector parses "owner/name" or "name".
func ParseNameSelector(s string) (NameSelector, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return NameSelector{}, fmt.Errorf("empty binary name")
	}
	if !strings.Contains(s, "/") {
		return NameSelector{Name: s}, nil
	}
	name, err := ParseBinaryName(s)
	if err != nil {
		return NameSelector{}, err
	}
	return name.Selector(), nil
}

// Matches reports whether the selector matches a binary name.
func (s NameSelector) Matches(n BinaryName) bool {
	return s.Name == n.Name && (s.Owner == "" || s.Owner == n.Owner)
}

// String returns "owner/name" or "name" when no owner is set.
func (s NameSelector) String() string {
	if s.Owner == "" {
		return s.Name
	}
	return s.Owner + "/" + s.Name
}

// LocationKind says where a globally bound command is served from.
type LocationKind int

const (
	// LocationPath delegates to the executable on the system PATH.
	LocationPath LocationKind = iota
	// LocationBvm uses a specific installed binary.
	LocationBvm
)

// String returns the lower-case kind name.
func (k LocationKind) String() string {
	switch k {
	case LocationPath:
		return "path"
	case LocationBvm:
		return "bvm"
	default:
		return "unknown"
	}
}

// pathLocationText is how a PATH binding is written in snapshot documents.
const pathLocationText = "path"

// GlobalBinaryLocation is the manifest-level binding of a command name.
// Identifier is only meaningful when Kind is LocationBvm.
type GlobalBinaryLocation struct {
	Kind       LocationKind
	Identifier BinaryIdentifier
}

// PathLocation returns a binding to the system PATH.
func PathLocation() GlobalBinaryLocation {
	return GlobalBinaryLocation{Kind: LocationPath}
}

// BvmLocation returns a binding to an installed binary.
func BvmLocation(id BinaryIdentifier) GlobalBinaryLocation {
	return GlobalBinaryLocation{Kind: LocationBvm, Identifier: id}
}

// ParseGlobalBinaryLocation parses "path" or "owner/name@version".
func ParseGlobalBinaryLocation(s string) (GlobalBinaryLocation, error) {
	if strings.TrimSpace(s) == pathLocationText {
		return PathLocation(), nil
	}
	id, err := ParseBinaryIdentifier(s)
	if err != nil {
		return GlobalBinaryLocation{}, err
	}
	return BvmLocation(id), nil
}

// String returns "path" or the bound identifier.
func (l GlobalBinaryLocation) String() string {
	if l.Kind == LocationBvm {
		return l.Identifier.String()
	}
	return pathLocationText
}
