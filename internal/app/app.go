// Package app implements the application layer for kiln.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/pflag"
	"go.trai.ch/kiln/internal/compilers"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/kiln/internal/engine/compile"
	"go.trai.ch/kiln/internal/engine/scheduler"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	opener       ports.WorkspaceOpener
	scheduler    *scheduler.Scheduler
	tools        ports.ToolRunner
	ids          ports.IDGenerator
	watcher      ports.Watcher
	exporter     ports.GraphExporter
	logger       ports.Logger
	dir          string
}

// New creates a new App instance working on the project in the current directory.
func New(
	loader ports.ConfigLoader,
	opener ports.WorkspaceOpener,
	sched *scheduler.Scheduler,
	tools ports.ToolRunner,
	ids ports.IDGenerator,
	watcher ports.Watcher,
	exporter ports.GraphExporter,
	logger ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		opener:       opener,
		scheduler:    sched,
		tools:        tools,
		ids:          ids,
		watcher:      watcher,
		exporter:     exporter,
		logger:       logger,
		dir:          ".",
	}
}

// WithDir sets the directory holding the project manifest.
func (a *App) WithDir(dir string) *App {
	a.dir = dir
	return a
}

// BuildOptions configures Build and Watch.
type BuildOptions struct {
	// Flags override the settings file and the environment. May be nil.
	Flags *pflag.FlagSet
}

// levelSetter is implemented by loggers whose verbosity follows the settings.
type levelSetter interface {
	SetLevel(level domain.LogLevel)
}

// project is a loaded project with its workspace opened.
type project struct {
	*domain.Project
	settings  *domain.Settings
	ws        *ports.Workspace
	platforms []string
}

func (a *App) open(flags *pflag.FlagSet) (*project, error) {
	p, err := a.configLoader.LoadProject(a.dir)
	if err != nil {
		return nil, err
	}
	settings, err := a.configLoader.LoadSettings(a.dir, flags)
	if err != nil {
		return nil, err
	}
	if ls, ok := a.logger.(levelSetter); ok {
		ls.SetLevel(domain.ParseLogLevel(settings.Verbosity))
	}

	ws, err := a.opener.Open(p, settings.Backend)
	if err != nil {
		return nil, err
	}
	return &project{
		Project:   p,
		settings:  settings,
		ws:        ws,
		platforms: settings.Platforms(p.Platforms),
	}, nil
}

func (a *App) release(p *project) {
	if err := p.ws.Close(); err != nil {
		a.logger.Error(zerr.Wrap(err, "failed to close build state"))
	}
}

// Build compiles targets, or every resource listed in the manifest when targets is empty,
// for each configured platform. Platforms are built concurrently.
func (a *App) Build(ctx context.Context, targets []string, opts BuildOptions) ([]*scheduler.Report, error) {
	p, err := a.open(opts.Flags)
	if err != nil {
		return nil, err
	}
	defer a.release(p)

	ids, err := resolveTargets(p.Project, targets)
	if err != nil {
		return nil, err
	}
	registry, err := compilers.FromProject(p.Project, a.tools)
	if err != nil {
		return nil, err
	}

	reports, err := a.build(ctx, p, registry, ids, p.settings.Force)
	return slices.DeleteFunc(reports, func(r *scheduler.Report) bool { return r == nil }), err
}

func resolveTargets(p *domain.Project, targets []string) ([]domain.ResourceID, error) {
	if len(targets) == 0 {
		ids := p.Targets()
		if len(ids) == 0 {
			return nil, domain.ErrNoTargetsSpecified
		}
		return ids, nil
	}
	ids := make([]domain.ResourceID, 0, len(targets))
	for _, t := range targets {
		id, err := domain.ParseResourceID(t)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// build runs one session per platform. Reports are indexed like p.platforms; a platform
// whose session could not start has a nil report.
func (a *App) build(
	ctx context.Context,
	p *project,
	registry ports.CompilerRegistry,
	ids []domain.ResourceID,
	force bool,
) ([]*scheduler.Report, error) {
	reports := make([]*scheduler.Report, len(p.platforms))
	var g errgroup.Group
	for i, platform := range p.platforms {
		g.Go(func() error {
			report, err := a.buildPlatform(ctx, p, registry, platform, ids, force)
			reports[i] = report
			return err
		})
	}
	return reports, g.Wait()
}

func (a *App) buildPlatform(
	ctx context.Context,
	p *project,
	registry ports.CompilerRegistry,
	platform string,
	ids []domain.ResourceID,
	force bool,
) (*scheduler.Report, error) {
	session, err := compile.NewSession(ctx, compile.Options{
		Platform: platform,
		Sources:  p.ws.Sources,
		Data:     p.ws.Data,
		IDs:      a.ids,
		Tools:    a.tools,
		Logger:   a.logger,
	})
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := session.Close(); err != nil {
			a.logger.Error(err)
		}
	}()

	for _, spec := range p.Resources {
		session.Graph().Declare(spec.ID, spec.Requires...)
	}

	requests := make([]domain.CompileRequest, len(ids))
	for i, id := range ids {
		requests[i] = domain.NewCompileRequest(id, platform)
	}

	report, err := a.scheduler.Run(ctx, session, requests, scheduler.Options{
		Compilers:   registry,
		Parallelism: p.settings.Jobs,
		Force:       force,
		State:       p.ws.State,
		Objects:     p.ws.Objects,
	})
	if report != nil {
		a.logger.Info(fmt.Sprintf("%s: %d done, %d cached, %d failed, %d skipped",
			platform,
			report.Count(domain.StateDone),
			report.Count(domain.StateCached),
			report.Count(domain.StateFailed),
			report.Count(domain.StateSkipped),
		))
	}
	return report, err
}

// Watch builds every listed resource, then rebuilds the resources that depend on changed
// source files until ctx is done. Failed builds are logged and do not stop watching.
func (a *App) Watch(ctx context.Context, opts BuildOptions) error {
	p, err := a.open(opts.Flags)
	if err != nil {
		return err
	}
	defer a.release(p)

	ids, err := resolveTargets(p.Project, nil)
	if err != nil {
		return err
	}
	registry, err := compilers.FromProject(p.Project, a.tools)
	if err != nil {
		return err
	}

	index := newDependencyIndex()
	rebuild := func(ids []domain.ResourceID, force bool) error {
		reports, err := a.build(ctx, p, registry, ids, force)
		index.record(reports)
		if err != nil && !errors.Is(err, domain.ErrBuildFailed) {
			return err
		}
		if err != nil {
			a.logger.Error(err)
		}
		return nil
	}

	if err := rebuild(ids, p.settings.Force); err != nil {
		return err
	}

	mounts := p.ws.Sources.Mounts()
	roots := make([]string, len(mounts))
	for i, m := range mounts {
		roots[i] = m.Root
	}
	changes, err := a.watcher.Watch(ctx, roots)
	if err != nil {
		return err
	}
	a.logger.Info("watching for changes")

	for batch := range changes {
		logical := make([]string, 0, len(batch))
		for _, abs := range batch {
			if path, ok := p.ws.Sources.Logical(abs); ok {
				logical = append(logical, path)
			}
		}
		affected := index.affected(p.Project, logical)
		if len(affected) == 0 {
			continue
		}
		a.logger.Info(fmt.Sprintf("rebuilding %d resources", len(affected)))
		if err := rebuild(affected, false); err != nil {
			return err
		}
	}
	return nil
}

// Clean removes the compiled objects, the build state and any temporary files of the
// project's data directory.
func (a *App) Clean(_ context.Context) error {
	p, err := a.configLoader.LoadProject(a.dir)
	if err != nil {
		return err
	}
	settings, err := a.configLoader.LoadSettings(a.dir, nil)
	if err != nil {
		return err
	}
	ws, err := a.opener.Open(p, settings.Backend)
	if err != nil {
		return err
	}
	if err := ws.Close(); err != nil {
		return zerr.Wrap(err, "failed to close build state")
	}

	root := ws.Data.Root()
	if err := ws.Data.RemoveAll(root); err != nil {
		return err
	}
	a.logger.Info("cleaned " + root)
	return nil
}

// Graph writes the requirement graph of the first configured platform: the declared
// requirements of the manifest plus the edges recorded by the last successful compiles.
func (a *App) Graph(_ context.Context, w io.Writer) error {
	p, err := a.open(nil)
	if err != nil {
		return err
	}
	defer a.release(p)

	g := domain.NewBuildGraph()
	for _, spec := range p.Resources {
		g.Declare(spec.ID, spec.Requires...)
	}

	if len(p.platforms) > 0 {
		infos, err := p.ws.State.List(p.platforms[0])
		if err != nil {
			return err
		}
		for _, info := range infos {
			g.Replace(info.Resource, info.Dependencies, info.Requirements)
		}
	}

	return a.exporter.Export(w, g)
}
