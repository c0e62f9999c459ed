package shell_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/adapters/shell"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/kiln/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte("#!/bin/sh\n"+body+"\n"), 0o700))
	return p
}

func TestRunner_Run(t *testing.T) {
	t.Run("streams lines to the logger", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		log := mocks.NewMockLogger(ctrl)
		gomock.InOrder(
			log.EXPECT().Info("hello"),
			log.EXPECT().Info("world"),
		)

		r := shell.NewRunner(log)
		err := r.Run(context.Background(), t.TempDir(), "/bin/sh", []string{"-c", "echo hello; echo world"})
		require.NoError(t, err)
	})

	t.Run("joins fragmented output", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		log := mocks.NewMockLogger(ctrl)
		log.EXPECT().Info("part1part2")

		r := shell.NewRunner(log)
		err := r.Run(context.Background(), t.TempDir(), "/bin/sh", []string{"-c", "printf part1; sleep 0.05; printf 'part2\\n'"})
		require.NoError(t, err)
	})

	t.Run("stderr is logged as warnings", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		log := mocks.NewMockLogger(ctrl)
		log.EXPECT().Warn("oops")

		r := shell.NewRunner(log)
		err := r.Run(context.Background(), t.TempDir(), "/bin/sh", []string{"-c", "echo oops >&2"})
		require.NoError(t, err)
	})

	t.Run("runs in the given directory", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		log := mocks.NewMockLogger(ctrl)
		dir := t.TempDir()

		r := shell.NewRunner(log)
		err := r.Run(context.Background(), dir, "/bin/sh", []string{"-c", "touch marker"})
		require.NoError(t, err)
		assert.FileExists(t, filepath.Join(dir, "marker"))
	})

	t.Run("exit code is attached", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		log := mocks.NewMockLogger(ctrl)

		r := shell.NewRunner(log)
		err := r.Run(context.Background(), t.TempDir(), "/bin/sh", []string{"-c", "exit 3"})
		require.Error(t, err)

		var zErr *zerr.Error
		require.ErrorAs(t, err, &zErr)
		assert.Equal(t, 3, zErr.Metadata()["exit_code"])
	})

	t.Run("empty executable", func(t *testing.T) {
		r := shell.NewRunner(mocks.NewMockLogger(gomock.NewController(t)))
		require.Error(t, r.Run(context.Background(), t.TempDir(), "", nil))
	})

	t.Run("output goes to the vertex", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		log := mocks.NewMockLogger(ctrl)
		vertex := mocks.NewMockVertex(ctrl)

		var stdout, stderr bytes.Buffer
		vertex.EXPECT().Stdout().Return(&stdout)
		vertex.EXPECT().Stderr().Return(&stderr)

		ctx := ports.ContextWithVertex(context.Background(), vertex)
		r := shell.NewRunner(log)
		err := r.Run(ctx, t.TempDir(), "/bin/sh", []string{"-c", "echo out; echo err >&2"})
		require.NoError(t, err)
		assert.Equal(t, "out\n", stdout.String())
		assert.Equal(t, "err\n", stderr.String())
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		log := mocks.NewMockLogger(ctrl)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		r := shell.NewRunner(log)
		require.Error(t, r.Run(ctx, t.TempDir(), "/bin/sh", []string{"-c", "sleep 5"}))
	})
}

func TestRunner_Find(t *testing.T) {
	dir := t.TempDir()
	exe := writeScript(t, dir, "texc", "exit 0")
	plain := filepath.Join(dir, "plain")
	require.NoError(t, os.WriteFile(plain, []byte("data"), 0o600))

	r := shell.NewRunner(mocks.NewMockLogger(gomock.NewController(t)))

	t.Run("first executable candidate wins", func(t *testing.T) {
		got, ok := r.Find(filepath.Join(dir, "missing"), plain, exe)
		require.True(t, ok)
		assert.Equal(t, exe, got)
	})

	t.Run("bare names use PATH", func(t *testing.T) {
		t.Setenv("PATH", dir)
		got, ok := r.Find("missing", "texc")
		require.True(t, ok)
		assert.Equal(t, exe, got)
	})

	t.Run("directories are not executables", func(t *testing.T) {
		_, ok := r.Find(dir)
		assert.False(t, ok)
	})

	t.Run("nothing found", func(t *testing.T) {
		t.Setenv("PATH", "")
		_, ok := r.Find("", "texc", plain)
		assert.False(t, ok)
	})
}
