package resolve

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZebulonRouseFrantzich/bvm/internal/manifest"
)

func TestCommandPathBvmBinding(t *testing.T) {
	m := fixture{
		binaries: []*manifest.BinaryManifestItem{item("acme", "fmt", "1.2.0", "fmt")},
		globals: map[manifest.CommandName]manifest.GlobalBinaryLocation{
			"fmt": manifest.BvmLocation(id("acme", "fmt", "1.2.0")),
		},
	}.build(t)
	env := &fakeEnv{
		cacheDir: "/cache",
		onPath:   map[manifest.CommandName]string{"fmt": "/usr/bin/fmt"},
	}

	res, err := New(m, env).CommandPath("fmt")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("/cache", "acme", "fmt", "1.2.0", "fmt-bin"), res.Path)
	assert.Equal(t, SourceBvm, res.Source)
	assert.Equal(t, manifest.CommandName("fmt"), res.Command)
	require.NotNil(t, res.Binary)
	assert.Equal(t, "acme/fmt@1.2.0", res.Binary.Identifier().String())
	assert.Empty(t, env.lookups, "a bvm binding must not consult PATH")
}

func TestCommandPathStaleBinding(t *testing.T) {
	m := fixture{
		binaries: []*manifest.BinaryManifestItem{item("acme", "fmt", "1.2.0", "fmt")},
		globals: map[manifest.CommandName]manifest.GlobalBinaryLocation{
			"fmt": manifest.BvmLocation(id("acme", "fmt", "1.1.0")),
		},
	}.build(t)

	_, err := New(m, &fakeEnv{}).CommandPath("fmt")
	rerr := requireKind(t, err, KindStaleBinding)
	assert.True(t, errors.Is(err, ErrStaleBinding))
	assert.Contains(t, rerr.Message, "acme/fmt@1.1.0")
	assert.Contains(t, rerr.Message, "bvm use fmt")
}

func TestCommandPathDefect(t *testing.T) {
	m := fixture{
		binaries: []*manifest.BinaryManifestItem{item("acme", "fmt", "1.2.0", "fmt")},
		globals: map[manifest.CommandName]manifest.GlobalBinaryLocation{
			"fmt-check": manifest.BvmLocation(id("acme", "fmt", "1.2.0")),
		},
	}.build(t)

	_, err := New(m, &fakeEnv{}).CommandPath("fmt-check")
	requireKind(t, err, KindDefect)
	assert.True(t, errors.Is(err, ErrDefect))
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestCommandPathPathBinding(t *testing.T) {
	m := fixture{
		binaries: []*manifest.BinaryManifestItem{item("acme", "node", "20.0.0", "node")},
		globals: map[manifest.CommandName]manifest.GlobalBinaryLocation{
			"node": manifest.PathLocation(),
		},
	}.build(t)

	t.Run("found", func(t *testing.T) {
		env := &fakeEnv{onPath: map[manifest.CommandName]string{"node": "/usr/bin/node"}}
		res, err := New(m, env).CommandPath("node")
		require.NoError(t, err)
		assert.Equal(t, Resolution{Command: "node", Path: "/usr/bin/node", Source: SourcePath}, res)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := New(m, &fakeEnv{}).CommandPath("node")
		rerr := requireKind(t, err, KindNotFound)
		assert.Empty(t, rerr.Installed, "a path binding never lists installed versions")
		assert.Contains(t, rerr.Message, "configured to use the executable on the path")
	})
}

func TestCommandPathUnbound(t *testing.T) {
	m := fixture{
		binaries: []*manifest.BinaryManifestItem{
			item("acme", "fmt", "1.3.0", "fmt"),
			item("acme", "fmt", "1.2.0", "fmt"),
			item("acme", "lint", "0.3.0", "lint"),
		},
	}.build(t)

	t.Run("path_wins", func(t *testing.T) {
		env := &fakeEnv{onPath: map[manifest.CommandName]string{"fmt": "/usr/bin/fmt"}}
		res, err := New(m, env).CommandPath("fmt")
		require.NoError(t, err)
		assert.Equal(t, SourcePath, res.Source)
		assert.Equal(t, "/usr/bin/fmt", res.Path)
	})

	t.Run("lists_candidates", func(t *testing.T) {
		_, err := New(m, &fakeEnv{}).CommandPath("fmt")
		rerr := requireKind(t, err, KindNotFound)
		assert.Equal(t, []string{"1.2.0", "1.3.0"}, rerr.Installed)
		assert.Contains(t, err.Error(), "Installed versions:\n  1.2.0\n  1.3.0")
	})

	t.Run("single_candidate", func(t *testing.T) {
		_, err := New(m, &fakeEnv{}).CommandPath("lint")
		rerr := requireKind(t, err, KindNotFound)
		assert.Equal(t, []string{"0.3.0"}, rerr.Installed)
	})

	t.Run("nothing_anywhere", func(t *testing.T) {
		_, err := New(m, &fakeEnv{}).CommandPath("missing")
		rerr := requireKind(t, err, KindNotFound)
		assert.Empty(t, rerr.Installed)
		assert.Equal(t, "Could not find binary on the path for command 'missing'", err.Error())
	})
}

func TestCommandPathPropagatesEnvironmentErrors(t *testing.T) {
	boom := errors.New("permission denied reading PATH entry")
	m := fixture{
		binaries: []*manifest.BinaryManifestItem{item("acme", "fmt", "1.2.0", "fmt")},
		globals: map[manifest.CommandName]manifest.GlobalBinaryLocation{
			"fmt":  manifest.BvmLocation(id("acme", "fmt", "1.2.0")),
			"node": manifest.PathLocation(),
		},
	}.build(t)

	tests := []struct {
		name    string
		command manifest.CommandName
		env     *fakeEnv
	}{
		{name: "plugin_dir", command: "fmt", env: &fakeEnv{pluginErr: boom}},
		{name: "path_binding", command: "node", env: &fakeEnv{pathErr: boom}},
		{name: "unbound", command: "lint", env: &fakeEnv{pathErr: boom}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(m, tt.env).CommandPath(tt.command)
			assert.Same(t, boom, err)
		})
	}
}

func TestCommandPathEmptyManifest(t *testing.T) {
	env := &fakeEnv{onPath: map[manifest.CommandName]string{"git": "/usr/bin/git"}}
	res, err := New(manifest.Empty(), env).CommandPath("git")
	require.NoError(t, err)
	assert.Equal(t, SourcePath, res.Source)
}
