package resolve

import (
	"slices"

	"github.com/ZebulonRouseFrantzich/bvm/internal/manifest"
)

// Latest returns the greatest binary under manifest.Compare, or nil for an
// empty set. On ties the earliest candidate wins. It does not check owners;
// see HaveSameOwner.
func Latest(binaries []*manifest.BinaryManifestItem) *manifest.BinaryManifestItem {
	var latest *manifest.BinaryManifestItem
	for _, b := range binaries {
		if latest == nil || manifest.Compare(latest, b) < 0 {
			latest = b
		}
	}
	return latest
}

// HaveSameOwner reports whether every binary has the same owner. An empty
// set trivially does.
func HaveSameOwner(binaries []*manifest.BinaryManifestItem) bool {
	if len(binaries) == 0 {
		return true
	}
	owner := binaries[0].Name.Owner
	for _, b := range binaries[1:] {
		if b.Name.Owner != owner {
			return false
		}
	}
	return true
}

// DisplayBinariesVersions formats candidates for diagnostics, sorted least
// to greatest. With a single owner only versions are shown; with several,
// each line is "owner/name version" because versions alone no longer tell
// the binaries apart.
func DisplayBinariesVersions(binaries []*manifest.BinaryManifestItem) []string {
	if len(binaries) == 0 {
		return []string{}
	}

	sorted := slices.Clone(binaries)
	slices.SortStableFunc(sorted, manifest.Compare)

	sameOwner := HaveSameOwner(sorted)
	lines := make([]string, 0, len(sorted))
	for _, b := range sorted {
		if sameOwner {
			lines = append(lines, b.Version.String())
		} else {
			lines = append(lines, b.Name.String()+" "+b.Version.String())
		}
	}
	return lines
}
