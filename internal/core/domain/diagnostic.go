package domain

import (
	"errors"
	"slices"
	"sync"
)

// DiagnosticKind classifies a diagnostic.
type DiagnosticKind string

const (
	KindSandboxViolation  DiagnosticKind = "sandbox_violation"
	KindSourceReadFailure DiagnosticKind = "source_read_failure"
	KindCompilerReported  DiagnosticKind = "compiler_reported"
	KindCycleDetected     DiagnosticKind = "cycle_detected"
	KindMissingToolchain  DiagnosticKind = "missing_toolchain"
	KindRequirementFailed DiagnosticKind = "requirement_failed"
	KindCancelled         DiagnosticKind = "cancelled"
	KindInternal          DiagnosticKind = "internal"
)

// Fatal reports whether a diagnostic of this kind discards the resource's output.
// Compiler-reported errors fail the resource but leave its partial output intact.
func (k DiagnosticKind) Fatal() bool {
	return k != KindCompilerReported
}

// KindFromError classifies err by the sentinel it wraps.
func KindFromError(err error) DiagnosticKind {
	switch {
	case errors.Is(err, ErrSandboxViolation):
		return KindSandboxViolation
	case errors.Is(err, ErrSourceReadFailure):
		return KindSourceReadFailure
	case errors.Is(err, ErrCycleDetected):
		return KindCycleDetected
	case errors.Is(err, ErrMissingToolchain):
		return KindMissingToolchain
	case errors.Is(err, ErrRequirementFailed):
		return KindRequirementFailed
	case errors.Is(err, ErrSessionCancelled):
		return KindCancelled
	case errors.Is(err, ErrCompilerReported):
		return KindCompilerReported
	default:
		return KindInternal
	}
}

// Diagnostic is a message tagged with the resource and platform that produced it.
type Diagnostic struct {
	Resource ResourceID     `json:"resource"`
	Platform string         `json:"platform,omitzero"`
	Kind     DiagnosticKind `json:"kind"`
	Message  string         `json:"message"`
}

// DiagnosticLog is the session's append-only diagnostic sink.
type DiagnosticLog struct {
	mu       sync.Mutex
	entries  []Diagnostic
	onReport func(Diagnostic)
}

// NewDiagnosticLog creates a DiagnosticLog. onReport, if non-nil, observes every appended entry.
func NewDiagnosticLog(onReport func(Diagnostic)) *DiagnosticLog {
	return &DiagnosticLog{onReport: onReport}
}

// Report appends a diagnostic.
func (l *DiagnosticLog) Report(d Diagnostic) {
	l.mu.Lock()
	l.entries = append(l.entries, d)
	l.mu.Unlock()

	if l.onReport != nil {
		l.onReport(d)
	}
}

// Entries returns a snapshot of all diagnostics in report order.
func (l *DiagnosticLog) Entries() []Diagnostic {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.entries)
}

// For returns the diagnostics reported for a single resource.
func (l *DiagnosticLog) For(id ResourceID) []Diagnostic {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []Diagnostic
	for _, d := range l.entries {
		if d.Resource == id {
			out = append(out, d)
		}
	}
	return out
}
