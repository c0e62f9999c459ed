package app_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/adapters/dot"
	"go.trai.ch/kiln/internal/adapters/fs"
	"go.trai.ch/kiln/internal/adapters/telemetry"
	"go.trai.ch/kiln/internal/adapters/uuidgen"
	"go.trai.ch/kiln/internal/adapters/workspace"
	"go.trai.ch/kiln/internal/app"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports/mocks"
	"go.trai.ch/kiln/internal/engine/scheduler"
	"go.uber.org/mock/gomock"
)

type env struct {
	project *domain.Project
	src     string
	app     *app.App
	loader  *mocks.MockConfigLoader
	watcher *mocks.MockWatcher

	mu    sync.Mutex
	infos []string
}

func (e *env) write(t *testing.T, name, content string) {
	t.Helper()
	path := filepath.Join(e.src, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func (e *env) logged() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.infos...)
}

func (e *env) object(t *testing.T, platform string, id domain.ResourceID) string {
	t.Helper()
	ws, err := workspace.NewOpener().Open(e.project, domain.BackendJSON)
	require.NoError(t, err)
	defer func() { _ = ws.Close() }()
	data, err := ws.Objects.Get(platform, id)
	require.NoError(t, err)
	return string(data)
}

func newEnv(t *testing.T, settings *domain.Settings) *env {
	t.Helper()
	ctrl := gomock.NewController(t)

	root := t.TempDir()
	e := &env{
		src: filepath.Join(root, "src"),
		project: &domain.Project{
			Root:      root,
			DataDir:   filepath.Join(root, ".kiln"),
			Platforms: []string{"linux"},
			Compilers: map[string]domain.CompilerBinding{
				"txt":     {Kind: domain.CompilerKindRaw},
				"package": {Kind: domain.CompilerKindPackage},
			},
			Resources: []domain.ResourceSpec{{ID: domain.NewResourceID("package", "a")}},
		},
	}
	e.project.Mounts = []domain.Mount{{Root: e.src}}
	require.NoError(t, os.MkdirAll(e.src, 0o750))

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).Do(func(msg string) {
		e.mu.Lock()
		defer e.mu.Unlock()
		e.infos = append(e.infos, msg)
	}).AnyTimes()
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	log.EXPECT().Error(gomock.Any()).AnyTimes()

	e.loader = mocks.NewMockConfigLoader(ctrl)
	e.loader.EXPECT().LoadProject(".").Return(e.project, nil).AnyTimes()
	e.loader.EXPECT().LoadSettings(".", gomock.Any()).Return(settings, nil).AnyTimes()
	e.watcher = mocks.NewMockWatcher(ctrl)

	sched := scheduler.NewScheduler(fs.NewHasher(), telemetry.NewNoOp(), log)
	e.app = app.New(
		e.loader,
		workspace.NewOpener(),
		sched,
		mocks.NewMockToolRunner(ctrl),
		uuidgen.New(),
		e.watcher,
		dot.NewExporter(),
		log,
	)
	return e
}

func defaultSettings() *domain.Settings {
	return &domain.Settings{Jobs: 2, Backend: domain.BackendJSON}
}

func TestApp_Build(t *testing.T) {
	e := newEnv(t, defaultSettings())
	e.write(t, "a.package", "txt: [b]\n")
	e.write(t, "b.txt", "hello")

	reports, err := e.app.Build(context.Background(), nil, app.BuildOptions{})
	require.NoError(t, err)
	require.Len(t, reports, 1)

	report := reports[0]
	assert.Equal(t, "linux", report.Platform)
	assert.Equal(t, domain.StateDone, report.State(domain.NewResourceID("package", "a")))
	assert.Equal(t, domain.StateDone, report.State(domain.NewResourceID("txt", "b")))
	assert.Equal(t, "hello", e.object(t, "linux", domain.NewResourceID("txt", "b")))
	assert.Contains(t, e.logged(), "linux: 2 done, 0 cached, 0 failed, 0 skipped")

	reports, err = e.app.Build(context.Background(), nil, app.BuildOptions{})
	require.NoError(t, err)
	assert.Equal(t, 2, reports[0].Count(domain.StateCached))
}

func TestApp_Build_Targets(t *testing.T) {
	e := newEnv(t, defaultSettings())
	e.write(t, "b.txt", "hello")

	reports, err := e.app.Build(context.Background(), []string{"b.txt", "b.txt"}, app.BuildOptions{})
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Len(t, reports[0].Results, 1)
}

func TestApp_Build_Failure(t *testing.T) {
	e := newEnv(t, defaultSettings())
	e.write(t, "a.package", "txt: [missing]\n")

	reports, err := e.app.Build(context.Background(), nil, app.BuildOptions{})
	require.ErrorIs(t, err, domain.ErrBuildFailed)
	require.Len(t, reports, 1)
	assert.Equal(t, domain.StateFailed, reports[0].State(domain.NewResourceID("txt", "missing")))
	assert.Equal(t, domain.StateSkipped, reports[0].State(domain.NewResourceID("package", "a")))
}

func TestApp_Build_MultiPlatform(t *testing.T) {
	settings := defaultSettings()
	settings.Platform = "linux,windows"
	e := newEnv(t, settings)
	e.write(t, "a.package", "txt: [b]\n")
	e.write(t, "b.txt", "hello")

	reports, err := e.app.Build(context.Background(), nil, app.BuildOptions{})
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, "linux", reports[0].Platform)
	assert.Equal(t, "windows", reports[1].Platform)
	for _, r := range reports {
		assert.Equal(t, 2, r.Count(domain.StateDone))
	}
	assert.Equal(t, "hello", e.object(t, "windows", domain.NewResourceID("txt", "b")))
}

func TestApp_Build_NoTargets(t *testing.T) {
	e := newEnv(t, defaultSettings())
	e.project.Resources = nil

	_, err := e.app.Build(context.Background(), nil, app.BuildOptions{})
	require.ErrorIs(t, err, domain.ErrNoTargetsSpecified)
}

func TestApp_Build_InvalidTarget(t *testing.T) {
	e := newEnv(t, defaultSettings())

	_, err := e.app.Build(context.Background(), []string{"noext"}, app.BuildOptions{})
	require.ErrorIs(t, err, domain.ErrInvalidResourcePath)
}

func TestApp_Clean(t *testing.T) {
	e := newEnv(t, defaultSettings())
	e.write(t, "a.package", "txt: [b]\n")
	e.write(t, "b.txt", "hello")

	_, err := e.app.Build(context.Background(), nil, app.BuildOptions{})
	require.NoError(t, err)

	require.NoError(t, e.app.Clean(context.Background()))

	entries, err := os.ReadDir(e.project.DataDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.FileExists(t, filepath.Join(e.src, "b.txt"))
}

func TestApp_Graph(t *testing.T) {
	e := newEnv(t, defaultSettings())
	e.project.Resources = []domain.ResourceSpec{
		{ID: domain.NewResourceID("package", "a")},
		{ID: domain.NewResourceID("package", "c"), Requires: []domain.ResourceID{domain.NewResourceID("txt", "d")}},
	}
	e.write(t, "a.package", "txt: [b]\n")
	e.write(t, "b.txt", "hello")

	_, err := e.app.Build(context.Background(), []string{"a.package"}, app.BuildOptions{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, e.app.Graph(context.Background(), &buf))

	out := buf.String()
	assert.Contains(t, out, `"a.package" -> "b.txt";`)
	assert.Contains(t, out, `"c.package" -> "d.txt";`)
}

func TestApp_Watch(t *testing.T) {
	e := newEnv(t, defaultSettings())
	e.write(t, "a.package", "txt: [b]\n")
	e.write(t, "b.txt", "hello")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan []string)
	e.watcher.EXPECT().Watch(gomock.Any(), []string{e.src}).Return((<-chan []string)(changes), nil)

	done := make(chan error, 1)
	go func() { done <- e.app.Watch(ctx, app.BuildOptions{}) }()

	// Each send completes only once the previous batch has been handled.
	changes <- []string{filepath.Join(e.project.Root, "elsewhere.txt")}
	e.write(t, "b.txt", "changed")
	changes <- []string{filepath.Join(e.src, "b.txt")}
	changes <- nil
	close(changes)

	require.NoError(t, <-done)
	assert.Equal(t, "changed", e.object(t, "linux", domain.NewResourceID("txt", "b")))

	logged := e.logged()
	assert.Contains(t, logged, "watching for changes")
	assert.Contains(t, logged, "rebuilding 1 resources")
	assert.Contains(t, logged, "linux: 1 done, 0 cached, 0 failed, 0 skipped")
}

func TestApp_Watch_InitialFailureKeepsWatching(t *testing.T) {
	e := newEnv(t, defaultSettings())
	e.write(t, "a.package", "txt: [b]\n")

	changes := make(chan []string)
	e.watcher.EXPECT().Watch(gomock.Any(), gomock.Any()).Return((<-chan []string)(changes), nil)

	done := make(chan error, 1)
	go func() { done <- e.app.Watch(context.Background(), app.BuildOptions{}) }()

	e.write(t, "b.txt", "fixed")
	changes <- []string{filepath.Join(e.src, "b.txt")}
	changes <- nil
	close(changes)

	require.NoError(t, <-done)
	assert.Equal(t, "fixed", e.object(t, "linux", domain.NewResourceID("txt", "b")))
}
