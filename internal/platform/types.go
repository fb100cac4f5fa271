// Package platform detects the host OS, architecture and Linux distribution
// and exposes them to project configs as a read-only Lua table.
//
// Distribution details come from gopsutil. Detection failures other than
// cancellation degrade to OS and architecture only.
package platform

import "context"

// Linux distribution family constants.
const (
	FamilyDebian  = "debian"  // Debian, Ubuntu, Linux Mint
	FamilyRHEL    = "rhel"    // RHEL, CentOS, Rocky Linux, AlmaLinux
	FamilyFedora  = "fedora"  // Fedora
	FamilySUSE    = "suse"    // openSUSE, SLES
	FamilyArch    = "arch"    // Arch Linux, Manjaro
	FamilyAlpine  = "alpine"  // Alpine Linux
	FamilyGentoo  = "gentoo"  // Gentoo
	FamilyUnknown = "unknown" // Unrecognized distributions
)

// Families lists the known distribution families in a stable order.
var Families = []string{
	FamilyDebian,
	FamilyRHEL,
	FamilyFedora,
	FamilySUSE,
	FamilyArch,
	FamilyAlpine,
	FamilyGentoo,
}

// Info contains platform detection information.
type Info struct {
	OS            string // "linux", "darwin", "windows"
	Arch          string // normalized: "amd64", "arm64", "386", ...
	ArchRaw       string // as reported by the runtime
	Distro        string // Linux only, e.g. "ubuntu"
	Family        string // Linux only, one of the Family constants
	DistroVersion string // Linux only, e.g. "22.04"
}

// IsLinux returns true if the platform is Linux.
func (i *Info) IsLinux() bool {
	return i.OS == "linux"
}

// IsMacOS returns true if the platform is macOS.
func (i *Info) IsMacOS() bool {
	return i.OS == "darwin"
}

// IsWindows returns true if the platform is Windows.
func (i *Info) IsWindows() bool {
	return i.OS == "windows"
}

// InFamily reports whether this is a Linux distribution of the given family.
func (i *Info) InFamily(family string) bool {
	return i.IsLinux() && i.Family == family
}

// Detector is the interface for platform detection.
type Detector interface {
	Detect(ctx context.Context) (*Info, error)
}
