package manifest

import (
	"fmt"
	"slices"
	"strings"

	"github.com/ZebulonRouseFrantzich/bvm/internal/version"
)

// Binding pairs a command name with its global location.
type Binding struct {
	Command  CommandName
	Location GlobalBinaryLocation
}

// Manifest is an immutable index of installed binaries, URL associations and
// global command bindings. Query results share the manifest's items and must
// not be modified.
type Manifest struct {
	binaries []*BinaryManifestItem
	byID     map[string]*BinaryManifestItem
	urls     map[string]BinaryIdentifier
	globals  map[CommandName]GlobalBinaryLocation
}

// Empty returns a manifest with nothing installed and no bindings.
func Empty() *Manifest {
	m, _ := New(nil, nil, nil)
	return m
}

// New builds a manifest snapshot. Inputs are copied. It rejects malformed
// items and duplicate identifiers. A Bvm binding may reference an
// identifier that is not installed; resolving such a binding is reported as
// a stale binding at resolution time.
func New(binaries []BinaryManifestItem, urls map[string]BinaryIdentifier, globals map[CommandName]GlobalBinaryLocation) (*Manifest, error) {
	m := &Manifest{
		binaries: make([]*BinaryManifestItem, 0, len(binaries)),
		byID:     make(map[string]*BinaryManifestItem, len(binaries)),
		urls:     make(map[string]BinaryIdentifier, len(urls)),
		globals:  make(map[CommandName]GlobalBinaryLocation, len(globals)),
	}

	for i := range binaries {
		item := binaries[i]
		if err := validateItem(&item); err != nil {
			return nil, fmt.Errorf("binaries[%d]: %w", i, err)
		}
		key := item.Identifier().String()
		if _, exists := m.byID[key]; exists {
			return nil, fmt.Errorf("binaries[%d]: duplicate binary %s", i, key)
		}
		item.Commands = slices.Clone(item.Commands)
		m.binaries = append(m.binaries, &item)
		m.byID[key] = &item
	}

	for url, id := range urls {
		if strings.TrimSpace(url) == "" {
			return nil, fmt.Errorf("url association for %s has an empty url", id)
		}
		if err := validateIdentifier(id); err != nil {
			return nil, fmt.Errorf("url %s: %w", url, err)
		}
		m.urls[url] = id
	}

	for command, loc := range globals {
		if command == "" {
			return nil, fmt.Errorf("global binding has an empty command name")
		}
		switch loc.Kind {
		case LocationPath:
		case LocationBvm:
			if err := validateIdentifier(loc.Identifier); err != nil {
				return nil, fmt.Errorf("global binding for %s: %w", command, err)
			}
		default:
			return nil, fmt.Errorf("global binding for %s: unknown location kind %d", command, loc.Kind)
		}
		m.globals[command] = loc
	}

	return m, nil
}

func validateIdentifier(id BinaryIdentifier) error {
	if id.Name.Owner == "" || id.Name.Name == "" {
		return fmt.Errorf("identifier %q is missing owner or name", id)
	}
	if id.Version.IsZero() {
		return fmt.Errorf("identifier %q is missing a version", id)
	}
	return nil
}

func validateItem(item *BinaryManifestItem) error {
	if err := validateIdentifier(item.Identifier()); err != nil {
		return err
	}
	seen := make(map[CommandName]bool, len(item.Commands))
	for _, c := range item.Commands {
		if c.Name == "" {
			return fmt.Errorf("binary %s has a command with no name", item.Identifier())
		}
		if seen[c.Name] {
			return fmt.Errorf("binary %s lists command %s twice", item.Identifier(), c.Name)
		}
		seen[c.Name] = true
	}
	return nil
}

// IdentifierFromURL returns the identifier associated with a plugin URL.
func (m *Manifest) IdentifierFromURL(url string) (BinaryIdentifier, bool) {
	id, ok := m.urls[url]
	return id, ok
}

// Binary returns the installed binary with exactly this identifier.
func (m *Manifest) Binary(id BinaryIdentifier) (*BinaryManifestItem, bool) {
	item, ok := m.byID[id.String()]
	return item, ok
}

// BinariesMatchingNameAndVersion returns installed binaries whose name
// matches ns and whose version satisfies vs, in manifest order.
func (m *Manifest) BinariesMatchingNameAndVersion(ns NameSelector, vs version.Selector) []*BinaryManifestItem {
	return m.filter(func(b *BinaryManifestItem) bool {
		return ns.Matches(b.Name) && vs.Matches(b.Version)
	})
}

// BinariesMatchingName returns installed binaries whose name matches ns.
func (m *Manifest) BinariesMatchingName(ns NameSelector) []*BinaryManifestItem {
	return m.filter(func(b *BinaryManifestItem) bool {
		return ns.Matches(b.Name)
	})
}

// BinariesWithCommand returns installed binaries that provide command.
func (m *Manifest) BinariesWithCommand(command CommandName) []*BinaryManifestItem {
	return m.filter(func(b *BinaryManifestItem) bool {
		return b.HasCommand(command)
	})
}

// GlobalBinaryLocation returns the global binding for command, if any.
func (m *Manifest) GlobalBinaryLocation(command CommandName) (GlobalBinaryLocation, bool) {
	loc, ok := m.globals[command]
	return loc, ok
}

// Binaries returns every installed binary sorted by Compare, with owner as
// the final key so the listing is deterministic.
func (m *Manifest) Binaries() []*BinaryManifestItem {
	out := slices.Clone(m.binaries)
	slices.SortStableFunc(out, func(a, b *BinaryManifestItem) int {
		if c := Compare(a, b); c != 0 {
			return c
		}
		return strings.Compare(a.Name.Owner, b.Name.Owner)
	})
	return out
}

// Commands returns every command name provided by an installed binary,
// sorted and without duplicates.
func (m *Manifest) Commands() []CommandName {
	var out []CommandName
	for _, b := range m.binaries {
		for _, c := range b.Commands {
			out = append(out, c.Name)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// GlobalBindings returns all global bindings sorted by command name.
func (m *Manifest) GlobalBindings() []Binding {
	out := make([]Binding, 0, len(m.globals))
	for command, loc := range m.globals {
		out = append(out, Binding{Command: command, Location: loc})
	}
	slices.SortFunc(out, func(a, b Binding) int {
		return strings.Compare(string(a.Command), string(b.Command))
	})
	return out
}

func (m *Manifest) filter(keep func(*BinaryManifestItem) bool) []*BinaryManifestItem {
	var out []*BinaryManifestItem
	for _, b := range m.binaries {
		if keep(b) {
			out = append(out, b)
		}
	}
	return out
}
