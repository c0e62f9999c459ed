package watcher_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/adapters/fs"
	"go.trai.ch/kiln/internal/adapters/watcher"
	"go.trai.ch/kiln/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newWatcher(t *testing.T) *watcher.Watcher {
	t.Helper()
	log := mocks.NewMockLogger(gomock.NewController(t))
	log.EXPECT().Error(gomock.Any()).AnyTimes()
	return watcher.New(fs.NewWalker(), log, 20*time.Millisecond, watcher.DefaultIgnores)
}

func receive(t *testing.T, ch <-chan []string) []string {
	t.Helper()
	select {
	case batch, ok := <-ch:
		require.True(t, ok, "channel closed")
		return batch
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for batch")
		return nil
	}
}

func TestWatcher_DeliversChanges(t *testing.T) {
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "levels"), 0o750))
	require.NoError(t, os.MkdirAll(filepath.Join(root, ".kiln"), 0o750))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := newWatcher(t).Watch(ctx, []string{root})
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(root, ".kiln", "ignored"), []byte("x"), 0o600))
	target := filepath.Join(root, "levels", "intro.level")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0o600))

	batch := receive(t, ch)
	assert.Contains(t, batch, target)
	assert.NotContains(t, batch, filepath.Join(root, ".kiln", "ignored"))
}

func TestWatcher_FollowsNewDirectories(t *testing.T) {
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := newWatcher(t).Watch(ctx, []string{root})
	require.NoError(t, err)

	dir := filepath.Join(root, "audio")
	require.NoError(t, os.Mkdir(dir, 0o750))
	assert.Contains(t, receive(t, ch), dir)

	target := filepath.Join(dir, "theme.sound")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0o600))
	assert.Contains(t, receive(t, ch), target)
}

func TestWatcher_ClosesOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ch, err := newWatcher(t).Watch(ctx, []string{t.TempDir()})
	require.NoError(t, err)

	cancel()
	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("channel not closed")
	}
}
