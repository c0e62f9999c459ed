// Package compile implements the build session and the per-job compile context
// handed to compilers.
package compile

import (
	"context"
	"path"
	"sync"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

// Directories below the data root.
const (
	TempDir  = "temp"
	CacheDir = "cache"
)

// Options configures a Session.
type Options struct {
	Platform string
	Sources  ports.SourceFS
	Data     ports.DataFS
	IDs      ports.IDGenerator
	Tools    ports.ToolRunner
	// Logger, if set, receives every diagnostic as it is reported.
	Logger ports.Logger
}

// Session is one build session for one platform. It owns the requirement graph,
// the diagnostic sink and the session temp root shared by every compile job.
type Session struct {
	ctx         context.Context
	opts        Options
	graph       *domain.BuildGraph
	diagnostics *domain.DiagnosticLog
	tempRoot    string

	mu     sync.Mutex
	active map[domain.ResourceID]struct{}
}

// NewSession creates the session temp root below the data directory.
func NewSession(ctx context.Context, opts Options) (*Session, error) {
	tempRoot, err := opts.Data.Abs(path.Join(TempDir, opts.IDs.NewID()))
	if err != nil {
		return nil, err
	}
	if err := opts.Data.MkdirAll(tempRoot); err != nil {
		return nil, zerr.Wrap(err, "failed to create session temp root")
	}

	s := &Session{
		ctx:      ctx,
		opts:     opts,
		graph:    domain.NewBuildGraph(),
		tempRoot: tempRoot,
		active:   make(map[domain.ResourceID]struct{}),
	}
	s.diagnostics = domain.NewDiagnosticLog(s.forward)
	return s, nil
}

func (s *Session) forward(d domain.Diagnostic) {
	if s.opts.Logger == nil {
		return
	}
	err := zerr.With(zerr.New(d.Message), "resource", d.Resource.String())
	err = zerr.With(err, "kind", string(d.Kind))
	if d.Platform != "" {
		err = zerr.With(err, "platform", d.Platform)
	}
	s.opts.Logger.Error(err)
}

// Context returns the context the session was created with.
func (s *Session) Context() context.Context { return s.ctx }

// Platform returns the platform tag every job of the session compiles for.
func (s *Session) Platform() string { return s.opts.Platform }

// Graph returns the session's dependency and requirement graph.
func (s *Session) Graph() *domain.BuildGraph { return s.graph }

// Diagnostics returns the session's diagnostic sink.
func (s *Session) Diagnostics() *domain.DiagnosticLog { return s.diagnostics }

// Sources returns the sandboxed source tree.
func (s *Session) Sources() ports.SourceFS { return s.opts.Sources }

// TempRoot returns the absolute session temp root.
func (s *Session) TempRoot() string { return s.tempRoot }

// Report records a diagnostic for id, classified by the sentinel err wraps.
func (s *Session) Report(id domain.ResourceID, err error) {
	kind := domain.KindFromError(err)
	s.diagnostics.Report(domain.Diagnostic{
		Resource: id,
		Platform: s.opts.Platform,
		Kind:     kind,
		Message:  err.Error(),
	})
}

// NewContext starts the compile job for req. ctx is handed to the compiler, usually
// the session context carrying the job's telemetry vertex. The edges recorded by any
// previous compile of the resource are discarded first. At most one job per resource
// may be active; the job ends with Context.Finish.
func (s *Session) NewContext(ctx context.Context, req domain.CompileRequest) (*Context, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, busy := s.active[req.ID]; busy {
		return nil, zerr.With(zerr.New("resource is already being compiled"), "resource", req.ID.String())
	}
	s.active[req.ID] = struct{}{}
	s.graph.Reset(req.ID)

	return &Context{ctx: ctx, session: s, req: req}, nil
}

func (s *Session) release(id domain.ResourceID) {
	s.mu.Lock()
	delete(s.active, id)
	s.mu.Unlock()
}

// Close removes the session temp root. Promoted artifacts are not affected.
func (s *Session) Close() error {
	return s.opts.Data.RemoveAll(s.tempRoot)
}
