package compile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.CompileContext = (*Context)(nil)

// Context is the compile job of one resource. It is owned by the worker running
// the job and is not safe for concurrent use; the graph and diagnostic sink it
// appends to are.
type Context struct {
	ctx     context.Context
	session *Session
	req     domain.CompileRequest
	out     bytes.Buffer

	reported  []error
	failed    bool
	fatal     bool
	finalized bool
}

// Context returns the context of the job.
func (c *Context) Context() context.Context { return c.ctx }

// ResourceID returns the resource being compiled.
func (c *Context) ResourceID() domain.ResourceID { return c.req.ID }

// SourcePath returns the logical path of the resource's own source.
func (c *Context) SourcePath() string { return c.req.SourcePath }

// Platform returns the platform tag of the job.
func (c *Context) Platform() string { return c.req.Platform }

// Read records a dependency on path and returns its content. Sandbox violations and
// read failures fail the resource. A path outside the sandbox is never recorded; a
// missing file inside it is.
func (c *Context) Read(path string) ([]byte, error) {
	if _, err := c.session.opts.Sources.Resolve(path); err != nil {
		c.fail(err)
		return nil, err
	}
	c.session.graph.AddDependency(c.req.ID, path)

	data, err := c.session.opts.Sources.ReadFile(path)
	if err != nil {
		c.fail(err)
		return nil, err
	}
	return data, nil
}

// ReadSource reads the resource's own source path.
func (c *Context) ReadSource() ([]byte, error) {
	return c.Read(c.req.SourcePath)
}

// FakeRead records a dependency on path without reading it.
func (c *Context) FakeRead(path string) {
	if _, err := c.session.opts.Sources.Resolve(path); err != nil {
		c.fail(err)
		return
	}
	c.session.graph.AddDependency(c.req.ID, path)
}

// FileExists reports whether path exists in the sandbox.
func (c *Context) FileExists(path string) bool {
	return c.session.opts.Sources.Exists(path)
}

// ResourceExists reports whether the source of name.typ exists.
func (c *Context) ResourceExists(typ, name string) bool {
	return c.session.opts.Sources.Exists(domain.NewResourceID(typ, name).SourcePath())
}

// AbsolutePath resolves path against the sandbox.
func (c *Context) AbsolutePath(path string) (string, error) {
	abs, err := c.session.opts.Sources.Resolve(path)
	if err != nil {
		c.fail(err)
		return "", err
	}
	return abs, nil
}

// AddRequirement records that name.typ must be compiled in the same session.
func (c *Context) AddRequirement(typ, name string) {
	if typ == "" || name == "" {
		err := zerr.With(zerr.Wrap(domain.ErrInvalidResourcePath, "requirement needs a type and a name"), "requirement", name+"."+typ)
		c.fail(err)
		return
	}
	c.session.graph.AddRequirement(c.req.ID, domain.NewResourceID(typ, name))
}

// Write appends p to the output buffer.
func (c *Context) Write(p []byte) (int, error) {
	if c.finalized {
		return 0, domain.ErrOutputFinalized
	}
	return c.out.Write(p)
}

// TemporaryPath returns a fresh path under the session temp root.
func (c *Context) TemporaryPath(suffix string) string {
	name := c.session.opts.IDs.NewID()
	if suffix = strings.TrimPrefix(suffix, "."); suffix != "" {
		name += "." + suffix
	}
	return filepath.Join(c.session.tempRoot, name)
}

// WriteTemporary writes a temporary artifact. Relative paths are taken from the temp root.
func (c *Context) WriteTemporary(path string, data []byte) error {
	abs, err := c.tempPath(path)
	if err != nil {
		return err
	}
	return c.session.opts.Data.WriteFile(abs, data)
}

// ReadTemporary reads a temporary artifact.
func (c *Context) ReadTemporary(path string) ([]byte, error) {
	abs, err := c.tempPath(path)
	if err != nil {
		return nil, err
	}
	return c.session.opts.Data.ReadFile(abs)
}

// PromoteTemporary moves a temporary artifact to <data>/cache/name where it outlives
// the session, and returns its new absolute path.
func (c *Context) PromoteTemporary(path, name string) (string, error) {
	src, err := c.tempPath(path)
	if err != nil {
		return "", err
	}
	cacheRoot, err := c.session.opts.Data.Abs(CacheDir)
	if err != nil {
		return "", err
	}
	dst := filepath.Join(cacheRoot, name)
	if filepath.IsAbs(name) || !within(cacheRoot, dst) || dst == cacheRoot {
		return "", zerr.With(zerr.Wrap(domain.ErrSandboxViolation, "cache name escapes the cache directory"), "name", name)
	}
	if err := c.session.opts.Data.Rename(src, dst); err != nil {
		return "", err
	}
	return dst, nil
}

// DeleteFile removes a file from the data directory. Relative paths are taken from
// the temp root.
func (c *Context) DeleteFile(path string) domain.DeleteResult {
	if !filepath.IsAbs(path) {
		path = filepath.Join(c.session.tempRoot, path)
	}
	return c.session.opts.Data.DeleteFile(path)
}

// Error records a diagnostic and marks the resource failed. Wrapping a domain
// sentinel with %w classifies it, e.g. ErrMissingToolchain; anything else is a
// compiler-reported error.
func (c *Context) Error(format string, args ...any) {
	err := fmt.Errorf(format, args...)
	if domain.KindFromError(err) == domain.KindInternal {
		err = &reportedError{msg: err.Error()}
	}
	c.fail(err)
}

// ExePath returns the first candidate that exists and is executable.
func (c *Context) ExePath(candidates ...string) (string, bool) {
	if c.session.opts.Tools == nil {
		return "", false
	}
	return c.session.opts.Tools.Find(candidates...)
}

// Failed reports whether the resource has failed so far.
func (c *Context) Failed() bool { return c.failed }

// Finish ends the job with the compiler's return value and returns its result.
// The output buffer is finalized; any further call fails with ErrOutputFinalized.
func (c *Context) Finish(compileErr error) (domain.CompileResult, error) {
	if c.finalized {
		err := zerr.Wrap(domain.ErrOutputFinalized, "compile job already finished")
		return domain.CompileResult{}, zerr.With(err, "resource", c.req.ID.String())
	}
	c.finalized = true
	defer c.session.release(c.req.ID)

	if compileErr != nil {
		c.fail(compileErr)
	}

	result := domain.CompileResult{
		Request:      c.req,
		State:        domain.StateDone,
		Dependencies: c.session.graph.Dependencies(c.req.ID),
		Requirements: c.session.graph.Requirements(c.req.ID),
		Diagnostics:  c.session.diagnostics.For(c.req.ID),
	}
	if c.failed {
		result.State = domain.StateFailed
	}
	if !c.fatal {
		result.Output = bytes.Clone(c.out.Bytes())
	}
	return result, nil
}

// fail records err once. Errors the compiler passes back after receiving them from
// the context are not reported twice.
func (c *Context) fail(err error) {
	c.failed = true
	kind := domain.KindFromError(err)
	if kind.Fatal() {
		c.fatal = true
	}
	for _, prev := range c.reported {
		if errors.Is(err, prev) {
			return
		}
	}
	c.reported = append(c.reported, err)

	c.session.diagnostics.Report(domain.Diagnostic{
		Resource: c.req.ID,
		Platform: c.req.Platform,
		Kind:     kind,
		Message:  err.Error(),
	})
}

// reportedError is a diagnostic raised through Error without a domain sentinel.
type reportedError struct {
	msg string
}

func (e *reportedError) Error() string { return e.msg }

func (e *reportedError) Is(target error) bool {
	return target == domain.ErrCompilerReported
}

func (c *Context) tempPath(p string) (string, error) {
	root := c.session.tempRoot
	if !filepath.IsAbs(p) {
		p = filepath.Join(root, p)
	}
	p = filepath.Clean(p)
	if !within(root, p) || p == root {
		return "", zerr.With(zerr.Wrap(domain.ErrSandboxViolation, "path outside the session temp root"), "path", p)
	}
	return p, nil
}

func within(root, p string) bool {
	rel, err := filepath.Rel(root, p)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
