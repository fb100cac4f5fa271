// Package service orchestrates the resolution operations behind the CLI:
// it loads the manifest snapshot, wires the host environment and project
// config parser, and runs the resolver against them.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ZebulonRouseFrantzich/bvm/internal/config"
	"github.com/ZebulonRouseFrantzich/bvm/internal/logging"
	"github.com/ZebulonRouseFrantzich/bvm/internal/manifest"
	"github.com/ZebulonRouseFrantzich/bvm/internal/resolve"
	"github.com/ZebulonRouseFrantzich/bvm/internal/version"
)

// ErrNoProjectConfig is returned when no project config is found.
var ErrNoProjectConfig = errors.New("no " + config.FileName + " found")

// ConfigParser parses a project config file.
type ConfigParser interface {
	ParseFile(ctx context.Context, path string) (*config.Config, error)
}

// Options configures a Resolver.
type Options struct {
	// ManifestPath is the snapshot file. A missing file is an empty manifest.
	ManifestPath string
	// Env answers PATH and plugin directory queries.
	Env resolve.Environment
	// Parser reads project configs. Required by ProjectBinaries only.
	Parser ConfigParser
	Logger logging.Logger
}

// Resolver runs resolution operations against one manifest snapshot.
type Resolver struct {
	manifest *manifest.Manifest
	resolver *resolve.Resolver
	parser   ConfigParser
	logger   logging.Logger
}

// NewResolver loads the manifest snapshot and wires the resolver.
func NewResolver(opts Options) (*Resolver, error) {
	logger := logging.OrNoop(opts.Logger)

	m, err := manifest.Load(opts.ManifestPath)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded manifest", "path", opts.ManifestPath, "binaries", len(m.Binaries()))

	return newResolver(m, opts.Env, opts.Parser, logger), nil
}

func newResolver(m *manifest.Manifest, env resolve.Environment, parser ConfigParser, logger logging.Logger) *Resolver {
	return &Resolver{
		manifest: m,
		resolver: resolve.New(m, env).WithLogger(logger),
		parser:   parser,
		logger:   logger,
	}
}

// CommandPath resolves the executable a command launches.
func (s *Resolver) CommandPath(ctx context.Context, command manifest.CommandName) (resolve.Resolution, error) {
	if err := ctx.Err(); err != nil {
		return resolve.Resolution{}, err
	}
	return s.resolver.CommandPath(command)
}

// Which returns the single installed binary matching both selectors.
func (s *Resolver) Which(ctx context.Context, ns manifest.NameSelector, vs version.Selector) (*manifest.BinaryManifestItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.resolver.BinaryWithNameAndVersion(ns, vs)
}

// ProjectBinary pairs a project declaration with the installed binary it
// resolves to. Binary is nil when nothing installed satisfies it.
type ProjectBinary struct {
	Config config.Binary
	Binary *manifest.BinaryManifestItem
}

// Resolved reports whether an installed binary was found.
func (p ProjectBinary) Resolved() bool {
	return p.Binary != nil
}

// ProjectResult is the outcome of resolving a project config.
type ProjectResult struct {
	ConfigPath string
	Binaries   []ProjectBinary
}

// ProjectBinaries discovers the project config starting at startDir and
// resolves each declared binary, preserving declaration order.
func (s *Resolver) ProjectBinaries(ctx context.Context, startDir string) (*ProjectResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.parser == nil {
		return nil, fmt.Errorf("project binaries: no config parser configured")
	}

	path, ok, err := config.Discover(startDir)
	if err != nil {
		return nil, fmt.Errorf("discover project config: %w", err)
	}
	if !ok {
		return nil, ErrNoProjectConfig
	}

	cfg, err := s.parser.ParseFile(ctx, path)
	if err != nil {
		return nil, err
	}

	result := &ProjectResult{
		ConfigPath: path,
		Binaries:   make([]ProjectBinary, 0, len(cfg.Binaries)),
	}
	for _, b := range cfg.Binaries {
		item, _ := s.resolver.InstalledBinaryForConfig(b)
		result.Binaries = append(result.Binaries, ProjectBinary{Config: b, Binary: item})
	}
	return result, nil
}

// BinaryGroup is every installed version sharing a short name, formatted
// with resolve.DisplayBinariesVersions.
type BinaryGroup struct {
	Name     string
	Versions []string
}

// ListResult describes the installation.
type ListResult struct {
	Binaries []BinaryGroup
	Globals  []manifest.Binding
}

// List returns installed binaries grouped by short name, and the global
// command bindings.
func (s *Resolver) List(ctx context.Context) (*ListResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &ListResult{
		Binaries: []BinaryGroup{},
		Globals:  s.manifest.GlobalBindings(),
	}

	// Binaries() is ordered by short name first, so groups are contiguous.
	var group []*manifest.BinaryManifestItem
	flush := func() {
		if len(group) == 0 {
			return
		}
		result.Binaries = append(result.Binaries, BinaryGroup{
			Name:     group[0].Name.Name,
			Versions: resolve.DisplayBinariesVersions(group),
		})
		group = nil
	}
	for _, b := range s.manifest.Binaries() {
		if len(group) > 0 && group[0].Name.Name != b.Name.Name {
			flush()
		}
		group = append(group, b)
	}
	flush()

	return result, nil
}
