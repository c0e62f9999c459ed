// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/kiln/internal/core/domain"
)

// CompileContext is what a compiler sees of its compile job.
// Side effects are confined to the job's output buffer, the session graph and the session
// diagnostic sink.
//
//go:generate go run go.uber.org/mock/mockgen -source=compiler.go -destination=mocks/mock_compiler.go -package=mocks
type CompileContext interface {
	// Context returns the session context. Tool invocations should honour it.
	Context() context.Context
	ResourceID() domain.ResourceID
	// SourcePath is the logical path of the job's own source.
	SourcePath() string
	Platform() string

	// Read records a dependency on path and returns its content.
	Read(path string) ([]byte, error)
	// ReadSource reads the job's own source path.
	ReadSource() ([]byte, error)
	// FakeRead records a dependency on path without reading it.
	FakeRead(path string)
	// FileExists reports whether path exists in the sandbox. No dependency is recorded.
	FileExists(path string) bool
	// ResourceExists reports whether the source of name.typ exists. No dependency is recorded.
	ResourceExists(typ, name string) bool
	// AbsolutePath resolves path against the sandbox without recording a dependency.
	AbsolutePath(path string) (string, error)
	// AddRequirement records that name.typ must be compiled in the same session.
	AddRequirement(typ, name string)

	// Write appends to the output buffer.
	Write(p []byte) (int, error)

	// TemporaryPath returns a fresh path under the session temp root ending in "."+suffix.
	TemporaryPath(suffix string) string
	WriteTemporary(path string, data []byte) error
	ReadTemporary(path string) ([]byte, error)
	// PromoteTemporary moves a temporary artifact into the persistent cache as name.
	PromoteTemporary(path, name string) (string, error)
	DeleteFile(path string) domain.DeleteResult

	// Error records a compiler diagnostic. It does not stop the compiler.
	Error(format string, args ...any)
	// ExePath returns the first candidate that exists and is executable.
	ExePath(candidates ...string) (string, bool)
}

// Compiler turns a resource source into its platform-specific output.
type Compiler interface {
	// Version is part of the cache key; bump it when the output format changes.
	Version() uint32
	// Compile runs the compiler. A returned error fails the resource and discards its output.
	Compile(cc CompileContext) error
}

// CompilerRegistry maps a resource type to its compiler.
type CompilerRegistry interface {
	Lookup(typ string) (Compiler, bool)
}
