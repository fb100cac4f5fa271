package resolve

import (
	"github.com/ZebulonRouseFrantzich/bvm/internal/logging"
	"github.com/ZebulonRouseFrantzich/bvm/internal/manifest"
	"github.com/ZebulonRouseFrantzich/bvm/internal/version"
)

// Manifest is the read-only query surface the resolver needs.
// *manifest.Manifest implements it.
type Manifest interface {
	IdentifierFromURL(url string) (manifest.BinaryIdentifier, bool)
	Binary(id manifest.BinaryIdentifier) (*manifest.BinaryManifestItem, bool)
	BinariesMatchingNameAndVersion(ns manifest.NameSelector, vs version.Selector) []*manifest.BinaryManifestItem
	BinariesMatchingName(ns manifest.NameSelector) []*manifest.BinaryManifestItem
	BinariesWithCommand(command manifest.CommandName) []*manifest.BinaryManifestItem
	GlobalBinaryLocation(command manifest.CommandName) (manifest.GlobalBinaryLocation, bool)
}

// PathFinder locates an executable on the system PATH, skipping the
// manager's own shims. ok is false when there is none.
type PathFinder interface {
	FindPathExecutable(command manifest.CommandName) (path string, ok bool, err error)
}

// PluginLocator returns the directory an installed binary was unpacked to.
type PluginLocator interface {
	PluginDir(name manifest.BinaryName, v version.Version) (string, error)
}

// Environment is everything the resolver asks of the host system.
type Environment interface {
	PathFinder
	PluginLocator
}

// Resolver runs resolutions against one manifest snapshot. It holds no
// mutable state and may be shared.
type Resolver struct {
	manifest Manifest
	env      Environment
	logger   logging.Logger
}

// New creates a resolver. env may be nil when only the binary lookups
// (InstalledBinaryForConfig, LatestMatching, BinaryWithNameAndVersion) are
// used.
func New(m Manifest, env Environment) *Resolver {
	return &Resolver{
		manifest: m,
		env:      env,
		logger:   logging.Noop(),
	}
}

// WithLogger sets the logger used for decision tracing.
func (r *Resolver) WithLogger(l logging.Logger) *Resolver {
	r.logger = logging.OrNoop(l)
	return r
}
