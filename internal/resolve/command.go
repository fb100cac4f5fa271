package resolve

import (
	"fmt"
	"path/filepath"

	"github.com/ZebulonRouseFrantzich/bvm/internal/manifest"
)

// Source says where a command's executable came from.
type Source int

const (
	// SourceBvm is an executable inside an installed binary's plugin directory.
	SourceBvm Source = iota
	// SourcePath is an executable found on the system PATH.
	SourcePath
)

// String returns the lower-case source name.
func (s Source) String() string {
	switch s {
	case SourceBvm:
		return "bvm"
	case SourcePath:
		return "path"
	default:
		return "unknown"
	}
}

// Resolution is a successfully resolved command.
type Resolution struct {
	Command manifest.CommandName
	Path    string
	Source  Source
	// Binary is the installed binary that provides Path. Nil for SourcePath.
	Binary *manifest.BinaryManifestItem
}

// CommandPath determines the executable a command name launches.
//
// A Bvm binding always wins. A Path binding delegates to the system PATH.
// Without any binding the PATH is tried first, and only when that fails are
// the installed candidates listed so the user can pick a global version.
func (r *Resolver) CommandPath(command manifest.CommandName) (Resolution, error) {
	loc, bound := r.manifest.GlobalBinaryLocation(command)
	switch {
	case bound && loc.Kind == manifest.LocationBvm:
		r.logger.Debug("command bound to installed binary", "command", command, "binary", loc.Identifier)
		return r.resolveInstalled(command, loc.Identifier)
	case bound && loc.Kind == manifest.LocationPath:
		r.logger.Debug("command bound to path", "command", command)
		return r.resolveBoundPath(command)
	default:
		r.logger.Debug("command has no global binding", "command", command)
		return r.resolveUnbound(command)
	}
}

func (r *Resolver) resolveInstalled(command manifest.CommandName, id manifest.BinaryIdentifier) (Resolution, error) {
	item, ok := r.manifest.Binary(id)
	if !ok {
		return Resolution{}, &Error{
			Kind:    KindStaleBinding,
			Subject: command.String(),
			Message: fmt.Sprintf(
				"Binary '%s' is set to use %s, which is no longer installed. Run `bvm use %s <some other version>` to select a version to run.",
				command, id, command,
			),
		}
	}

	entry, ok := item.Command(command)
	if !ok {
		return Resolution{}, &Error{
			Kind:    KindDefect,
			Subject: command.String(),
			Message: fmt.Sprintf(
				"Binary %s is selected for command '%s' but does not register an executable for it. Report this as a bug and update the version used by running `bvm use %s <some other version>`.",
				id, command, command,
			),
		}
	}

	dir, err := r.env.PluginDir(item.Name, item.Version)
	if err != nil {
		return Resolution{}, err
	}

	return Resolution{
		Command: command,
		Path:    filepath.Join(dir, entry.Path),
		Source:  SourceBvm,
		Binary:  item,
	}, nil
}

func (r *Resolver) resolveBoundPath(command manifest.CommandName) (Resolution, error) {
	path, ok, err := r.env.FindPathExecutable(command)
	if err != nil {
		return Resolution{}, err
	}
	if !ok {
		return Resolution{}, &Error{
			Kind:    KindNotFound,
			Subject: command.String(),
			Message: fmt.Sprintf(
				"Binary '%s' is configured to use the executable on the path, but only the bvm version exists on the path. Run `bvm use %s <some other version>` to select a version to run.",
				command, command,
			),
		}
	}
	return Resolution{Command: command, Path: path, Source: SourcePath}, nil
}

func (r *Resolver) resolveUnbound(command manifest.CommandName) (Resolution, error) {
	path, ok, err := r.env.FindPathExecutable(command)
	if err != nil {
		return Resolution{}, err
	}
	if ok {
		return Resolution{Command: command, Path: path, Source: SourcePath}, nil
	}

	candidates := r.manifest.BinariesWithCommand(command)
	r.logger.Debug("no executable on path", "command", command, "candidates", len(candidates))
	if len(candidates) == 0 {
		return Resolution{}, &Error{
			Kind:    KindNotFound,
			Subject: command.String(),
			Message: fmt.Sprintf("Could not find binary on the path for command '%s'", command),
		}
	}

	return Resolution{}, &Error{
		Kind:      KindNotFound,
		Subject:   command.String(),
		Installed: DisplayBinariesVersions(candidates),
		Message: fmt.Sprintf(
			"No binary is set on the path for command '%s'. Run `bvm use %s <version>` to set a global version.",
			command, command,
		),
	}
}
