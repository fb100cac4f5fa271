package resolve

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ZebulonRouseFrantzich/bvm/internal/manifest"
	"github.com/ZebulonRouseFrantzich/bvm/internal/version"
)

func item(owner, name, v string, commands ...string) *manifest.BinaryManifestItem {
	b := &manifest.BinaryManifestItem{
		Name:    manifest.BinaryName{Owner: owner, Name: name},
		Version: version.MustParse(v),
	}
	for _, c := range commands {
		b.Commands = append(b.Commands, manifest.Command{Name: manifest.CommandName(c), Path: c + "-bin"})
	}
	return b
}

func id(owner, name, v string) manifest.BinaryIdentifier {
	return manifest.NewBinaryIdentifier(owner, name, version.MustParse(v))
}

type fixture struct {
	binaries []*manifest.BinaryManifestItem
	urls     map[string]manifest.BinaryIdentifier
	globals  map[manifest.CommandName]manifest.GlobalBinaryLocation
}

func (f fixture) build(t *testing.T) *manifest.Manifest {
	t.Helper()

	m, err := manifest.New(toValues(f.binaries), f.urls, f.globals)
	require.NoError(t, err)
	return m
}

// fakeEnv is an in-memory Environment.
type fakeEnv struct {
	cacheDir  string
	onPath    map[manifest.CommandName]string
	pathErr   error
	pluginErr error
	lookups   []manifest.CommandName
}

func (e *fakeEnv) FindPathExecutable(command manifest.CommandName) (string, bool, error) {
	e.lookups = append(e.lookups, command)
	if e.pathErr != nil {
		return "", false, e.pathErr
	}
	p, ok := e.onPath[command]
	return p, ok, nil
}

func (e *fakeEnv) PluginDir(name manifest.BinaryName, v version.Version) (string, error) {
	if e.pluginErr != nil {
		return "", e.pluginErr
	}
	return filepath.Join(e.cacheDir, name.Owner, name.Name, v.String()), nil
}

func requireKind(t *testing.T, err error, kind Kind) *Error {
	t.Helper()

	var rerr *Error
	require.True(t, errors.As(err, &rerr), "expected *resolve.Error, got %v", err)
	require.Equal(t, kind, rerr.Kind, "unexpected kind: %s", rerr.Message)
	return rerr
}
