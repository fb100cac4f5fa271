// Package manifest holds the in-memory index of installed binaries and the
// global command bindings that the resolver reasons over.
//
// A Manifest is an immutable snapshot. It is built once, either from Go
// values with New or from a snapshot document with Load/Decode, and then
// only queried:
//
//	m, err := manifest.Load(filepath.Join(dataDir, "manifest.json"))
//	if err != nil {
//	    return err
//	}
//
//	loc, ok := m.GlobalBinaryLocation("fmt")
//	items := m.BinariesMatchingNameAndVersion(
//	    manifest.NameSelector{Name: "fmt"},
//	    version.MustParseSelector("^1.2"),
//	)
//
// # Identity and ordering
//
// A binary is identified by owner, short name and version. Two binaries are
// the same binary when owner and short name agree (SameIdentity). Ordering
// is a separate relation: Compare sorts by short name and then by version,
// ignoring owner, so the "latest" of a same-named candidate set is simply
// the highest version. Callers that need an unambiguous pick must check
// owner uniformity themselves.
//
// Installation, uninstallation and persistence of the manifest belong to
// other components; this package never writes.
package manifest
