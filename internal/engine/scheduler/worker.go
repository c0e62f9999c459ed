package scheduler

import (
	"context"
	"fmt"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/kiln/internal/engine/compile"
	"go.trai.ch/zerr"
)

// execute runs one compile job on a worker. It never returns an error: every failure
// ends up in the result state and the session's diagnostics.
func (s *Scheduler) execute(
	ctx context.Context,
	session *compile.Session,
	req domain.CompileRequest,
	compiler ports.Compiler,
	opts Options,
) domain.CompileResult {
	ctx, vertex := s.telemetry.Record(ctx, fmt.Sprintf("%s [%s]", req.ID, req.Platform))

	if info, hit := s.cached(ctx, session, req, compiler, opts); hit {
		session.Graph().Replace(req.ID, info.Dependencies, info.Requirements)
		vertex.Cached()
		vertex.Complete(nil)
		return domain.CompileResult{
			Request:         req,
			State:           domain.StateCached,
			Dependencies:    info.Dependencies,
			Requirements:    session.Graph().Requirements(req.ID),
			CompilerVersion: info.CompilerVersion,
			Fingerprint:     info.Fingerprint,
		}
	}

	cc, err := session.NewContext(ctx, req)
	if err != nil {
		session.Report(req.ID, err)
		vertex.Complete(err)
		return domain.CompileResult{Request: req, State: domain.StateFailed}
	}

	res, err := cc.Finish(s.invoke(compiler, cc))
	if err != nil {
		session.Report(req.ID, err)
		vertex.Complete(err)
		return domain.CompileResult{Request: req, State: domain.StateFailed}
	}
	res.CompilerVersion = compiler.Version()

	if res.State != domain.StateDone {
		vertex.Complete(zerr.With(zerr.Wrap(domain.ErrBuildFailed, "compile failed"), "resource", req.ID.String()))
		return res
	}

	fingerprint, err := s.fingerprinter.Fingerprint(ctx, session.Sources(), req.Platform, res.CompilerVersion, res.Dependencies)
	if err != nil {
		s.logger.Warn(fmt.Sprintf("%s will not be cached: %v", req.ID, err))
	}
	res.Fingerprint = fingerprint
	vertex.Complete(nil)
	return res
}

// invoke runs the compiler, turning a panic into an error.
func (s *Scheduler) invoke(compiler ports.Compiler, cc ports.CompileContext) (err error) {
	defer zerr.Defer(func(recovered error) {
		err = zerr.With(zerr.Wrap(domain.ErrCompilerPanicked, recovered.Error()), "resource", cc.ResourceID().String())
	})
	return compiler.Compile(cc)
}

// cached reports whether a previous output of req is still valid: the build info
// was not rejected and matches the compiler version, the object exists and the
// dependency fingerprint is unchanged.
func (s *Scheduler) cached(
	ctx context.Context,
	session *compile.Session,
	req domain.CompileRequest,
	compiler ports.Compiler,
	opts Options,
) (*domain.BuildInfo, bool) {
	if opts.Force || opts.State == nil || opts.Objects == nil {
		return nil, false
	}

	info, err := opts.State.Get(req.Platform, req.ID)
	if err != nil {
		s.logger.Warn(fmt.Sprintf("ignoring build info of %s: %v", req.ID, err))
		return nil, false
	}
	if info == nil || info.Rejected || info.CompilerVersion != compiler.Version() || !opts.Objects.Exists(req.Platform, req.ID) {
		return nil, false
	}

	fingerprint, err := s.fingerprinter.Fingerprint(ctx, session.Sources(), req.Platform, info.CompilerVersion, info.Dependencies)
	if err != nil || fingerprint != info.Fingerprint {
		return nil, false
	}
	s.logger.Debug(fmt.Sprintf("%s is up to date", req.ID))
	return info, true
}
