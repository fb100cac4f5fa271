package platform

import (
	"strings"
)

// familyMap maps distribution family strings reported by gopsutil to their
// canonical family names.
var familyMap = map[string]string{
	"debian":   FamilyDebian,
	"ubuntu":   FamilyDebian,
	"rhel":     FamilyRHEL,
	"centos":   FamilyRHEL,
	"rocky":    FamilyRHEL,
	"fedora":   FamilyFedora,
	"suse":     FamilySUSE,
	"opensuse": FamilySUSE,
	"arch":     FamilyArch,
	"manjaro":  FamilyArch,
	"alpine":   FamilyAlpine,
	"gentoo":   FamilyGentoo,
}

// normalizeArch folds architecture aliases onto GOARCH names. Unknown
// values are lower-cased and passed through.
func normalizeArch(arch string) string {
	switch a := normalizeID(arch); a {
	case "amd64", "x86_64":
		return "amd64"
	case "arm64", "aarch64":
		return "arm64"
	case "386", "i386", "i686":
		return "386"
	default:
		return a
	}
}

// normalizeID lower-cases and trims identifiers for consistency.
func normalizeID(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// mapFamily maps distribution family strings to canonical family names.
func mapFamily(family string) string {
	if canonical, ok := familyMap[normalizeID(family)]; ok {
		return canonical
	}
	return FamilyUnknown
}
