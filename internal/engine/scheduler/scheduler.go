// Package scheduler implements the build orchestrator: it compiles the requested
// resources and their requirement closure and decides the session's outcome.
package scheduler

import (
	"context"
	"fmt"
	"slices"
	"time"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/kiln/internal/engine/compile"
	"go.trai.ch/zerr"
)

// Options configures one Run.
type Options struct {
	Compilers   ports.CompilerRegistry
	Parallelism int
	// Force bypasses the incremental cache.
	Force bool
	// State and Objects persist outputs and build info. When either is nil nothing is
	// cached or persisted.
	State   ports.BuildStateStore
	Objects ports.ObjectStore
}

// Scheduler drives compile jobs over a worker pool.
type Scheduler struct {
	fingerprinter ports.Fingerprinter
	telemetry     ports.Telemetry
	logger        ports.Logger
}

// NewScheduler creates a new Scheduler.
func NewScheduler(fingerprinter ports.Fingerprinter, telemetry ports.Telemetry, logger ports.Logger) *Scheduler {
	return &Scheduler{
		fingerprinter: fingerprinter,
		telemetry:     telemetry,
		logger:        logger,
	}
}

// Run compiles requests and everything they require, declared or discovered.
// It always processes every resource not blocked by a failure, and returns an
// ErrBuildFailed error if any resource ended Failed or Skipped.
func (s *Scheduler) Run(
	ctx context.Context,
	session *compile.Session,
	requests []domain.CompileRequest,
	opts Options,
) (*Report, error) {
	if len(requests) == 0 {
		return nil, domain.ErrNoTargetsSpecified
	}
	for _, req := range requests {
		if req.Platform != session.Platform() {
			err := zerr.With(zerr.New("request platform does not match session"), "resource", req.ID.String())
			return nil, zerr.With(err, "platform", req.Platform)
		}
	}
	opts.Parallelism = max(opts.Parallelism, 1)

	state := s.newRunState(ctx, session, opts)
	for _, req := range requests {
		state.enqueue(req)
	}

	done := ctx.Done()
	for {
		state.schedule()

		if state.active == 0 && (len(state.queue) == 0 || ctx.Err() != nil) {
			break
		}

		select {
		case res := <-state.resultsCh:
			state.handleResult(res)
		case <-done:
			// In-flight jobs run to completion; nothing new is dispatched.
			done = nil
		}
	}

	return state.finalize()
}

type runState struct {
	ctx     context.Context
	s       *Scheduler
	session *compile.Session
	opts    Options

	states    map[domain.ResourceID]domain.ResourceState
	requests  map[domain.ResourceID]domain.CompileRequest
	results   map[domain.ResourceID]*domain.CompileResult
	cyclic    map[domain.ResourceID]struct{}
	queue     []domain.ResourceID
	active    int
	dirty     bool
	resultsCh chan domain.CompileResult
}

func (s *Scheduler) newRunState(ctx context.Context, session *compile.Session, opts Options) *runState {
	return &runState{
		ctx:       ctx,
		s:         s,
		session:   session,
		opts:      opts,
		states:    make(map[domain.ResourceID]domain.ResourceState),
		requests:  make(map[domain.ResourceID]domain.CompileRequest),
		results:   make(map[domain.ResourceID]*domain.CompileResult),
		cyclic:    make(map[domain.ResourceID]struct{}),
		resultsCh: make(chan domain.CompileResult, opts.Parallelism),
	}
}

// enqueue adds req and its known requirements unless they are already part of the session.
func (state *runState) enqueue(req domain.CompileRequest) {
	if _, seen := state.states[req.ID]; seen {
		return
	}
	state.states[req.ID] = domain.StatePending
	state.requests[req.ID] = req
	state.queue = append(state.queue, req.ID)
	state.dirty = true
	state.recall(req)

	for _, dep := range state.session.Graph().Requirements(req.ID) {
		state.enqueue(domain.NewCompileRequest(dep, req.Platform))
	}
}

// recall restores the requirements recorded by the last compile of req while its
// build info is still valid, so cycles among them are found before dispatch.
func (state *runState) recall(req domain.CompileRequest) {
	if state.opts.State == nil || state.opts.Compilers == nil {
		return
	}
	info, err := state.opts.State.Get(req.Platform, req.ID)
	if err != nil || info == nil || len(info.Requirements) == 0 {
		return
	}
	compiler, ok := state.opts.Compilers.Lookup(req.ID.Type.String())
	if !ok || compiler.Version() != info.CompilerVersion {
		return
	}
	fingerprint, err := state.s.fingerprinter.Fingerprint(
		state.ctx, state.session.Sources(), req.Platform, info.CompilerVersion, info.Dependencies)
	if err != nil || fingerprint != info.Fingerprint {
		return
	}
	state.session.Graph().Replace(req.ID, info.Dependencies, info.Requirements)
}

func (state *runState) schedule() {
	state.checkCycles()

	for len(state.queue) > 0 && state.active < state.opts.Parallelism && state.ctx.Err() == nil {
		id := state.queue[0]
		state.queue = state.queue[1:]

		if state.states[id] != domain.StatePending {
			continue
		}
		if blocker, blocked := state.blockedBy(id); blocked {
			state.skip(id, blocker)
			continue
		}
		if err := state.session.Graph().Claim(id); err != nil {
			state.fail(id, err)
			continue
		}
		compiler, ok := state.opts.Compilers.Lookup(id.Type.String())
		if !ok {
			state.fail(id, zerr.With(zerr.Wrap(domain.ErrUnknownResourceType, "no compiler registered"), "type", id.Type.String()))
			continue
		}

		state.active++
		state.states[id] = domain.StateRunning

		// Cancelling the session stops dispatching, not the jobs already running.
		jobCtx := context.WithoutCancel(state.ctx)
		go func(req domain.CompileRequest) {
			state.resultsCh <- state.s.execute(jobCtx, state.session, req, compiler, state.opts)
		}(state.requests[id])
	}
}

// checkCycles fails every member of a requirement cycle. Members not yet dispatched
// are never compiled.
func (state *runState) checkCycles() {
	if !state.dirty {
		return
	}
	state.dirty = false

	for _, cycle := range state.session.Graph().FindCycles() {
		for _, id := range cycle.Members {
			if _, reported := state.cyclic[id]; reported {
				continue
			}
			if _, inSession := state.states[id]; !inSession {
				continue
			}
			state.cyclic[id] = struct{}{}

			state.session.Report(id, zerr.With(cycle.Err(), "resource", id.String()))
			if state.states[id] == domain.StateRunning {
				// the result is overridden when it arrives
				continue
			}
			state.markFailed(id)
		}
	}
}

func (state *runState) handleResult(res domain.CompileResult) {
	state.active--
	id := res.Request.ID
	state.results[id] = &res
	state.states[id] = res.State

	if _, ok := state.cyclic[id]; ok {
		state.markFailed(id)
	}
	for _, req := range res.Requirements {
		state.enqueue(domain.NewCompileRequest(req, res.Request.Platform))
	}
	state.dirty = true
}

// blockedBy returns a known requirement of id that has already failed.
func (state *runState) blockedBy(id domain.ResourceID) (domain.ResourceID, bool) {
	for _, req := range state.session.Graph().Requirements(id) {
		if st := state.states[req]; st == domain.StateFailed || st == domain.StateSkipped {
			return req, true
		}
	}
	return domain.ResourceID{}, false
}

func (state *runState) fail(id domain.ResourceID, err error) {
	state.session.Report(id, err)
	state.markFailed(id)
}

func (state *runState) markFailed(id domain.ResourceID) {
	state.states[id] = domain.StateFailed
	if res, ok := state.results[id]; ok {
		res.State = domain.StateFailed
		res.Output = nil
	}
}

func (state *runState) skip(id, blocker domain.ResourceID) {
	err := zerr.With(zerr.Wrap(domain.ErrRequirementFailed, "requirement did not succeed"), "requirement", blocker.String())
	state.session.Report(id, err)
	state.states[id] = domain.StateSkipped
	if res, ok := state.results[id]; ok {
		res.State = domain.StateSkipped
		res.Output = nil
	}
}

// finalize settles the remaining states, persists successful outputs and builds the report.
func (state *runState) finalize() (*Report, error) {
	for id, st := range state.states {
		if st == domain.StatePending {
			state.session.Report(id, zerr.Wrap(domain.ErrSessionCancelled, "resource was not compiled"))
			state.states[id] = domain.StateSkipped
		}
	}

	state.propagate()
	if state.persist() {
		state.propagate()
	}
	state.forget()

	return state.report()
}

// propagate skips every successful resource that transitively requires a failure.
func (state *runState) propagate() {
	graph := state.session.Graph()
	for id, blocker := range blockedResources(state.states, graph.Requirements) {
		state.skip(id, blocker)
	}
}

// persist stores the output and build info of every Done resource. It reports whether
// any resource failed to persist.
func (state *runState) persist() bool {
	if state.opts.State == nil || state.opts.Objects == nil {
		return false
	}

	failed := false
	for _, id := range sortedIDs(state.states) {
		res, ok := state.results[id]
		if !ok || state.states[id] != domain.StateDone {
			continue
		}
		platform := res.Request.Platform
		if err := state.opts.Objects.Put(platform, id, res.Output); err != nil {
			state.fail(id, err)
			failed = true
			continue
		}
		if res.Fingerprint == "" {
			continue
		}
		info := domain.BuildInfo{
			Resource:        id,
			Platform:        platform,
			CompilerVersion: res.CompilerVersion,
			Fingerprint:     res.Fingerprint,
			Dependencies:    res.Dependencies,
			Requirements:    res.Requirements,
			Timestamp:       time.Now(),
		}
		state.store(info)
	}

	// Cycle members keep their edges without an output, so the next session finds
	// the cycle before compiling them again.
	for _, id := range sortedIDs(state.cyclic) {
		res, ok := state.results[id]
		if !ok || res.Fingerprint == "" {
			continue
		}
		state.store(domain.BuildInfo{
			Resource:        id,
			Platform:        res.Request.Platform,
			CompilerVersion: res.CompilerVersion,
			Fingerprint:     res.Fingerprint,
			Dependencies:    res.Dependencies,
			Requirements:    res.Requirements,
			Timestamp:       time.Now(),
			Rejected:        true,
		})
	}
	return failed
}

func (state *runState) store(info domain.BuildInfo) {
	if err := state.opts.State.Put(info); err != nil {
		state.s.logger.Warn(fmt.Sprintf("failed to store build info for %s: %v", info.Resource, err))
	}
}

// forget drops the build info of resources without a valid output. Cycle members
// are kept for the next session.
func (state *runState) forget() {
	if state.opts.State == nil {
		return
	}
	for id, st := range state.states {
		if _, cyclic := state.cyclic[id]; st.IsSuccessful() || cyclic {
			continue
		}
		if err := state.opts.State.Delete(state.session.Platform(), id); err != nil {
			state.s.logger.Warn(fmt.Sprintf("failed to drop build info for %s: %v", id, err))
		}
	}
}

func (state *runState) report() (*Report, error) {
	graph := state.session.Graph()
	diagnostics := state.session.Diagnostics()

	report := &Report{
		Platform: state.session.Platform(),
		Results:  make(map[domain.ResourceID]*domain.CompileResult, len(state.states)),
	}
	failed := 0
	for id, st := range state.states {
		res, ok := state.results[id]
		if !ok {
			res = &domain.CompileResult{Request: state.requests[id]}
		}
		res.State = st
		res.Dependencies = graph.Dependencies(id)
		res.Requirements = graph.Requirements(id)
		res.Diagnostics = diagnostics.For(id)
		report.Results[id] = res
		if !st.IsSuccessful() {
			failed++
		}
	}
	report.Diagnostics = diagnostics.Entries()

	if failed > 0 {
		err := zerr.With(zerr.Wrap(domain.ErrBuildFailed, "resources did not succeed"), "failed", failed)
		return report, zerr.With(err, "platform", report.Platform)
	}
	return report, nil
}

// blockedResources returns, for every successful resource that requires a failed or skipped
// one, the requirement that blocks it. The result is a fixed point: skipping a
// resource can block the resources that require it in turn.
func blockedResources(
	states map[domain.ResourceID]domain.ResourceState,
	requirements func(domain.ResourceID) []domain.ResourceID,
) map[domain.ResourceID]domain.ResourceID {
	blocked := make(map[domain.ResourceID]domain.ResourceID)
	unsuccessful := func(id domain.ResourceID) bool {
		if _, ok := blocked[id]; ok {
			return true
		}
		st, ok := states[id]
		return ok && !st.IsSuccessful()
	}

	ids := sortedIDs(states)
	for changed := true; changed; {
		changed = false
		for _, id := range ids {
			if _, ok := blocked[id]; ok || !states[id].IsSuccessful() {
				continue
			}
			for _, req := range requirements(id) {
				if unsuccessful(req) {
					blocked[id] = req
					changed = true
					break
				}
			}
		}
	}
	return blocked
}

func sortedIDs[V any](m map[domain.ResourceID]V) []domain.ResourceID {
	ids := make([]domain.ResourceID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, domain.ResourceID.Compare)
	return ids
}
