package resolve

import (
	"fmt"

	"github.com/ZebulonRouseFrantzich/bvm/internal/config"
	"github.com/ZebulonRouseFrantzich/bvm/internal/manifest"
	"github.com/ZebulonRouseFrantzich/bvm/internal/version"
)

// InstalledBinaryForConfig returns the installed binary a project
// configuration entry refers to. The entry's path must be associated with
// an identifier in the manifest; the exact identifier wins when installed,
// otherwise the latest binary with the same short name that satisfies the
// entry's version selector is used.
func (r *Resolver) InstalledBinaryForConfig(binary config.Binary) (*manifest.BinaryManifestItem, bool) {
	id, ok := r.manifest.IdentifierFromURL(binary.Path)
	if !ok {
		r.logger.Debug("config binary has no known identifier", "path", binary.Path)
		return nil, false
	}

	if item, ok := r.manifest.Binary(id); ok {
		r.logger.Debug("config binary resolved to pinned version", "path", binary.Path, "binary", id)
		return item, true
	}

	if binary.Version == nil {
		r.logger.Debug("pinned version not installed and no selector", "path", binary.Path, "binary", id)
		return nil, false
	}

	item, ok := r.LatestMatching(id.Name.ShortSelector(), *binary.Version)
	if ok {
		r.logger.Debug("config binary resolved by selector", "path", binary.Path, "selector", binary.Version, "binary", item.Identifier())
	}
	return item, ok
}

// LatestMatching returns the latest installed binary matching both
// selectors. An empty candidate set is not an error.
func (r *Resolver) LatestMatching(ns manifest.NameSelector, vs version.Selector) (*manifest.BinaryManifestItem, bool) {
	latest := Latest(r.manifest.BinariesMatchingNameAndVersion(ns, vs))
	return latest, latest != nil
}

// BinaryWithNameAndVersion returns the single binary that satisfies both
// selectors. Several matching versions are fine as long as they share an
// owner, in which case the latest is returned. Matches from different owners
// fail with AmbiguousOwner.
func (r *Resolver) BinaryWithNameAndVersion(ns manifest.NameSelector, vs version.Selector) (*manifest.BinaryManifestItem, error) {
	binaries := r.manifest.BinariesMatchingNameAndVersion(ns, vs)
	r.logger.Debug("strict lookup", "name", ns, "version", vs, "matches", len(binaries))

	if len(binaries) == 0 {
		named := r.manifest.BinariesMatchingName(ns)
		if len(named) == 0 {
			return nil, &Error{
				Kind:    KindNotFound,
				Subject: ns.String(),
				Message: fmt.Sprintf("Could not find any installed binaries named '%s'", ns),
			}
		}
		return nil, &Error{
			Kind:      KindVersionMismatch,
			Subject:   ns.String(),
			Installed: DisplayBinariesVersions(named),
			Message:   fmt.Sprintf("Could not find binary '%s' that matched version '%s'", ns, vs),
		}
	}

	if !HaveSameOwner(binaries) {
		return nil, &Error{
			Kind:      KindAmbiguousOwner,
			Subject:   ns.String(),
			Installed: DisplayBinariesVersions(binaries),
			Message: fmt.Sprintf(
				"There were multiple binaries with the specified name '%s' that matched version '%s'. Please include the owner (owner/name) to disambiguate.",
				ns, vs,
			),
		}
	}

	return Latest(binaries), nil
}
