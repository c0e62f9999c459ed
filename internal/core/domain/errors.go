package domain

import "go.trai.ch/zerr"

var (
	// ErrSandboxViolation is returned when a logical path resolves outside every mounted source root.
	ErrSandboxViolation = zerr.New("sandbox violation")

	// ErrSourceReadFailure is returned when a source file is missing or unreadable.
	ErrSourceReadFailure = zerr.New("source read failure")

	// ErrCompilerReported is recorded when a compiler reports an error through its context.
	ErrCompilerReported = zerr.New("compiler reported error")

	// ErrCycleDetected is returned when a cycle is detected in the requirement graph.
	ErrCycleDetected = zerr.New("cycle detected")

	// ErrMissingToolchain is reported by compilers that cannot locate an external tool.
	ErrMissingToolchain = zerr.New("toolchain not found")

	// ErrUnknownResourceType is returned when no compiler is registered for a resource type.
	ErrUnknownResourceType = zerr.New("unknown resource type")

	// ErrResourceIDCollision is returned when two distinct resources share an output stem.
	ErrResourceIDCollision = zerr.New("resource id collision")

	// ErrRequirementFailed is recorded on resources skipped because a requirement did not succeed.
	ErrRequirementFailed = zerr.New("requirement failed")

	// ErrBuildFailed is returned when at least one resource in a session failed or was skipped.
	ErrBuildFailed = zerr.New("build failed")

	// ErrNoTargetsSpecified is returned when a build is requested without any resources.
	ErrNoTargetsSpecified = zerr.New("no targets specified")

	// ErrInvalidResourcePath is returned when a resource path cannot be split into name and type.
	ErrInvalidResourcePath = zerr.New("invalid resource path")

	// ErrSessionCancelled is recorded on resources that were never dispatched before cancellation.
	ErrSessionCancelled = zerr.New("session cancelled")

	// ErrNoMounts is returned when a project declares no source mounts.
	ErrNoMounts = zerr.New("no source mounts configured")

	// ErrOutputFinalized is returned when a compile job's output is finalized more than once.
	ErrOutputFinalized = zerr.New("output already finalized")

	// ErrCompilerPanicked is recorded when a compiler panics during compilation.
	ErrCompilerPanicked = zerr.New("compiler panicked")
)
