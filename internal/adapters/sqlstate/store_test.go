package sqlstate_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/adapters/sqlstate"
	"go.trai.ch/kiln/internal/core/domain"
)

func openStore(t *testing.T, path string) *sqlstate.Store {
	t.Helper()
	store, err := sqlstate.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStore_RoundTrip(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "state.db"))
	box := domain.NewResourceID("mesh", "models/box")

	got, err := store.Get("linux", box)
	require.NoError(t, err)
	assert.Nil(t, got)

	info := domain.BuildInfo{
		Resource:        box,
		Platform:        "linux",
		CompilerVersion: 7,
		Fingerprint:     "0123456789abcdef",
		Dependencies:    []string{"models/box.obj"},
		Requirements:    []domain.ResourceID{domain.NewResourceID("texture", "diffuse")},
		Timestamp:       time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.Put(info))

	got, err = store.Get("linux", box)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, info, *got)

	info.Fingerprint = "fedcba9876543210"
	info.Requirements = nil
	info.Rejected = true
	require.NoError(t, store.Put(info))

	got, err = store.Get("linux", box)
	require.NoError(t, err)
	assert.Equal(t, info, *got)

	require.NoError(t, store.Delete("linux", box))
	got, err = store.Get("linux", box)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_ListAndReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")

	first, err := sqlstate.Open(path)
	require.NoError(t, err)
	for _, name := range []string{"b", "a"} {
		require.NoError(t, first.Put(domain.BuildInfo{
			Resource: domain.NewResourceID("texture", name),
			Platform: "linux",
		}))
	}
	require.NoError(t, first.Close())

	second := openStore(t, path)
	infos, err := second.List("linux")
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, "a.texture", infos[0].Resource.String())
	assert.Equal(t, "b.texture", infos[1].Resource.String())

	none, err := second.List("windows")
	require.NoError(t, err)
	assert.Empty(t, none)
}
