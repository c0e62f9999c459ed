package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/adapters/fs"
)

func TestWalker(t *testing.T) {
	root := t.TempDir()
	for _, dir := range []string{".git", "ignored", "src/models"} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, dir), 0o750))
	}
	require.NoError(t, os.WriteFile(filepath.Join(root, ".git", "config"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(root, "ignored", "file"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "models", "box.obj"), []byte("x"), 0o600))

	walker := fs.NewWalker()

	var files []string
	for p := range walker.WalkFiles(root, []string{"ignored"}) {
		rel, err := filepath.Rel(root, p)
		require.NoError(t, err)
		files = append(files, filepath.ToSlash(rel))
	}
	assert.Equal(t, []string{"src/models/box.obj"}, files)

	var dirs []string
	for p := range walker.WalkDirs(root, []string{"ignored"}) {
		rel, err := filepath.Rel(root, p)
		require.NoError(t, err)
		dirs = append(dirs, filepath.ToSlash(rel))
	}
	assert.Equal(t, []string{".", "src", "src/models"}, dirs)
}

func TestHasher_ComputeFileHash(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello world"), 0o600))

	hasher := fs.NewHasher()
	h1, err := hasher.ComputeFileHash(path)
	require.NoError(t, err)
	h2, err := hasher.ComputeFileHash(path)
	require.NoError(t, err)

	assert.NotZero(t, h1)
	assert.Equal(t, h1, h2)
}

func TestHasher_Fingerprint(t *testing.T) {
	tree, game, _ := newTree(t)
	hasher := fs.NewHasher()
	ctx := context.Background()
	deps := []string{"models/box.obj", "core/shaders/lit.glsl"}

	base, err := hasher.Fingerprint(ctx, tree, "linux", 1, deps)
	require.NoError(t, err)

	t.Run("order and duplicates do not matter", func(t *testing.T) {
		again, err := hasher.Fingerprint(ctx, tree, "linux", 1, []string{deps[1], deps[0], deps[0]})
		require.NoError(t, err)
		assert.Equal(t, base, again)
	})

	t.Run("platform changes fingerprint", func(t *testing.T) {
		other, err := hasher.Fingerprint(ctx, tree, "windows", 1, deps)
		require.NoError(t, err)
		assert.NotEqual(t, base, other)
	})

	t.Run("compiler version changes fingerprint", func(t *testing.T) {
		other, err := hasher.Fingerprint(ctx, tree, "linux", 2, deps)
		require.NoError(t, err)
		assert.NotEqual(t, base, other)
	})

	t.Run("missing dependency hashes as absent", func(t *testing.T) {
		withMissing, err := hasher.Fingerprint(ctx, tree, "linux", 1, append(deps, "models/none.mtl"))
		require.NoError(t, err)
		assert.NotEqual(t, base, withMissing)
	})

	t.Run("content change invalidates", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(game, "models", "box.obj"), []byte("v 1 1 1"), 0o600))
		changed, err := hasher.Fingerprint(ctx, tree, "linux", 1, deps)
		require.NoError(t, err)
		assert.NotEqual(t, base, changed)
	})
}
