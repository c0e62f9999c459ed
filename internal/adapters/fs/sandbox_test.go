package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/adapters/fs"
	"go.trai.ch/kiln/internal/core/domain"
)

func TestResolve(t *testing.T) {
	mounts := []domain.Mount{
		{Prefix: "core", Root: "/engine/core"},
		{Prefix: "", Root: "/game/src"},
		{Prefix: "core", Root: "/shadowed"},
	}

	tests := []struct {
		name      string
		logical   string
		wantRoot  string
		wantAbs   string
		violation bool
	}{
		{name: "default mount", logical: "models/box.obj", wantRoot: "/game/src", wantAbs: "/game/src/models/box.obj"},
		{name: "prefixed mount wins by order", logical: "core/shaders/lit.glsl", wantRoot: "/engine/core", wantAbs: "/engine/core/shaders/lit.glsl"},
		{name: "inner dot segments are cleaned", logical: "models/../models/./box.obj", wantRoot: "/game/src", wantAbs: "/game/src/models/box.obj"},
		{name: "parent escape", logical: "../secret.txt", violation: true},
		{name: "escape after clean", logical: "models/../../secret.txt", violation: true},
		{name: "prefixed escape falls through to default and still escapes", logical: "core/../../x", violation: true},
		{name: "absolute", logical: "/etc/passwd", violation: true},
		{name: "empty", logical: "", violation: true},
		{name: "dot", logical: ".", violation: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, abs, err := fs.Resolve(tt.logical, mounts)
			if tt.violation {
				require.ErrorIs(t, err, domain.ErrSandboxViolation)
				assert.Empty(t, abs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantRoot, m.Root)
			assert.Equal(t, filepath.FromSlash(tt.wantAbs), abs)
		})
	}
}

func TestResolve_NoMatchingMount(t *testing.T) {
	_, _, err := fs.Resolve("assets/a.png", []domain.Mount{{Prefix: "core", Root: "/engine"}})
	require.ErrorIs(t, err, domain.ErrSandboxViolation)
}

func TestResolve_EscapeNeverSucceeds(t *testing.T) {
	mounts := []domain.Mount{{Root: "/src"}, {Prefix: "lib", Root: "/lib"}}
	escapes := []string{
		"..", "../", "../a", "a/../../b", "lib/../..", "./../a", "a/b/c/../../../../d",
		"/abs", "//double",
	}
	for _, logical := range escapes {
		_, abs, err := fs.Resolve(logical, mounts)
		require.ErrorIs(t, err, domain.ErrSandboxViolation, logical)
		assert.Empty(t, abs, logical)
	}
}

func newTree(t *testing.T) (*fs.SourceTree, string, string) {
	t.Helper()
	game := t.TempDir()
	engine := t.TempDir()

	require.NoError(t, os.MkdirAll(filepath.Join(game, "models"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(game, "models", "box.obj"), []byte("v 0 0 0"), 0o600))
	require.NoError(t, os.MkdirAll(filepath.Join(engine, "shaders"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(engine, "shaders", "lit.glsl"), []byte("void main(){}"), 0o600))

	tree, err := fs.NewSourceTree([]domain.Mount{
		{Prefix: "core", Root: engine},
		{Root: game},
	})
	require.NoError(t, err)

	mounts := tree.Mounts()
	return tree, mounts[1].Root, mounts[0].Root
}

func TestSourceTree_ReadFile(t *testing.T) {
	tree, _, _ := newTree(t)

	data, err := tree.ReadFile("models/box.obj")
	require.NoError(t, err)
	assert.Equal(t, "v 0 0 0", string(data))

	data, err = tree.ReadFile("core/shaders/lit.glsl")
	require.NoError(t, err)
	assert.Equal(t, "void main(){}", string(data))

	_, err = tree.ReadFile("models/missing.obj")
	require.ErrorIs(t, err, domain.ErrSourceReadFailure)

	_, err = tree.ReadFile("../outside.txt")
	require.ErrorIs(t, err, domain.ErrSandboxViolation)
}

func TestSourceTree_SymlinkEscape(t *testing.T) {
	tree, game, _ := newTree(t)

	outside := filepath.Join(t.TempDir(), "secret.txt")
	require.NoError(t, os.WriteFile(outside, []byte("secret"), 0o600))
	require.NoError(t, os.Symlink(outside, filepath.Join(game, "models", "link.obj")))

	_, err := tree.ReadFile("models/link.obj")
	require.ErrorIs(t, err, domain.ErrSandboxViolation)
	assert.False(t, tree.Exists("models/link.obj"))
}

func TestSourceTree_Exists(t *testing.T) {
	tree, _, _ := newTree(t)

	assert.True(t, tree.Exists("models/box.obj"))
	assert.False(t, tree.Exists("models"))
	assert.False(t, tree.Exists("models/none.obj"))
	assert.False(t, tree.Exists("../models/box.obj"))
}

func TestSourceTree_Logical(t *testing.T) {
	tree, game, engine := newTree(t)

	logical, ok := tree.Logical(filepath.Join(game, "models", "box.obj"))
	require.True(t, ok)
	assert.Equal(t, "models/box.obj", logical)

	logical, ok = tree.Logical(filepath.Join(engine, "shaders", "lit.glsl"))
	require.True(t, ok)
	assert.Equal(t, "core/shaders/lit.glsl", logical)

	// A "core" directory in the default mount is shadowed by the prefixed mount.
	_, ok = tree.Logical(filepath.Join(game, "core", "x.txt"))
	assert.False(t, ok)

	_, ok = tree.Logical("/nowhere/x.txt")
	assert.False(t, ok)
}

func TestNewSourceTree_NoMounts(t *testing.T) {
	_, err := fs.NewSourceTree(nil)
	require.ErrorIs(t, err, domain.ErrNoMounts)
}

func TestSourceTree_Resolve_Symlinks(t *testing.T) {
	tree, game, _ := newTree(t)

	outside := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(outside, "secret.txt"), []byte("secret"), 0o600))
	require.NoError(t, os.Symlink(filepath.Join(outside, "secret.txt"), filepath.Join(game, "models", "link.obj")))
	require.NoError(t, os.Symlink(outside, filepath.Join(game, "escape")))
	require.NoError(t, os.Symlink(filepath.Join(game, "models", "box.obj"), filepath.Join(game, "alias.obj")))

	tests := []struct {
		logical string
		wantErr bool
	}{
		{"models/link.obj", true},
		{"escape/secret.txt", true},
		{"escape/not-yet-created.txt", true},
		{"alias.obj", false},
		{"models/not-yet-created.obj", false},
	}
	for _, tt := range tests {
		t.Run(tt.logical, func(t *testing.T) {
			abs, err := tree.Resolve(tt.logical)
			if tt.wantErr {
				require.ErrorIs(t, err, domain.ErrSandboxViolation)
				assert.Empty(t, abs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(game, filepath.FromSlash(tt.logical)), abs)
		})
	}
}
