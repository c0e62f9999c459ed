package cas_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/adapters/cas"
	"go.trai.ch/kiln/internal/adapters/fs"
	"go.trai.ch/kiln/internal/core/domain"
)

var box = domain.NewResourceID("mesh", "models/box")

func TestStore_PutGetDelete(t *testing.T) {
	store, err := cas.NewStore(t.TempDir())
	require.NoError(t, err)

	got, err := store.Get("linux", box)
	require.NoError(t, err)
	assert.Nil(t, got)

	info := domain.BuildInfo{
		Resource:        box,
		Platform:        "linux",
		CompilerVersion: 3,
		Fingerprint:     "00000000deadbeef",
		Dependencies:    []string{"models/box.mtl", "models/box.obj"},
		Requirements:    []domain.ResourceID{domain.NewResourceID("texture", "diffuse")},
		Timestamp:       time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	require.NoError(t, store.Put(info))

	got, err = store.Get("linux", box)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, info, *got)

	other, err := store.Get("windows", box)
	require.NoError(t, err)
	assert.Nil(t, other)

	require.NoError(t, store.Delete("linux", box))
	require.NoError(t, store.Delete("linux", box))
	got, err = store.Get("linux", box)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_Persistence(t *testing.T) {
	dir := t.TempDir()

	first, err := cas.NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.Put(domain.BuildInfo{Resource: box, Platform: "linux", Fingerprint: "abc"}))
	require.NoError(t, first.Close())

	second, err := cas.NewStore(dir)
	require.NoError(t, err)
	got, err := second.Get("linux", box)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "abc", got.Fingerprint)
}

func TestStore_List(t *testing.T) {
	store, err := cas.NewStore(t.TempDir())
	require.NoError(t, err)

	tex := domain.NewResourceID("texture", "diffuse")
	require.NoError(t, store.Put(domain.BuildInfo{Resource: tex, Platform: "linux"}))
	require.NoError(t, store.Put(domain.BuildInfo{Resource: box, Platform: "linux"}))
	require.NoError(t, store.Put(domain.BuildInfo{Resource: box, Platform: "android"}))

	infos, err := store.List("linux")
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, box, infos[0].Resource)
	assert.Equal(t, tex, infos[1].Resource)

	none, err := store.List("ios")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestStore_OmitZero(t *testing.T) {
	dir := t.TempDir()
	store, err := cas.NewStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Put(domain.BuildInfo{Resource: box, Platform: "linux"}))

	//nolint:gosec // Test file with controlled path
	content, err := os.ReadFile(filepath.Join(dir, "linux", box.Stem()+".json"))
	require.NoError(t, err)

	jsonStr := string(content)
	assert.Contains(t, jsonStr, `"resource": "models/box.mesh"`)
	assert.False(t, strings.Contains(jsonStr, "timestamp"))
	assert.False(t, strings.Contains(jsonStr, "dependencies"))
	assert.False(t, strings.Contains(jsonStr, "rejected"))
}

func TestObjectStore(t *testing.T) {
	data, err := fs.NewDataDir(t.TempDir())
	require.NoError(t, err)

	store, objects, err := cas.Open(data)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	assert.False(t, objects.Exists("linux", box))
	assert.Equal(t, filepath.Join(data.Root(), cas.ObjectsDir, "linux", box.Stem()), objects.Path("linux", box))

	require.NoError(t, objects.Put("linux", box, []byte("compiled")))
	assert.True(t, objects.Exists("linux", box))
	assert.False(t, objects.Exists("windows", box))

	got, err := objects.Get("linux", box)
	require.NoError(t, err)
	assert.Equal(t, "compiled", string(got))
}
