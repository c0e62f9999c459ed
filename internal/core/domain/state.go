package domain

// ResourceState is the lifecycle state of a resource within a build session.
type ResourceState string

const (
	// StatePending indicates the resource is queued but not dispatched.
	StatePending ResourceState = "pending"
	// StateRunning indicates the resource's compiler is executing.
	StateRunning ResourceState = "running"
	// StateDone indicates the compiler completed without errors and the output was persisted.
	StateDone ResourceState = "done"
	// StateFailed indicates the compiler reported an error or resolution failed.
	StateFailed ResourceState = "failed"
	// StateSkipped indicates the resource was not completed because a requirement did not succeed.
	StateSkipped ResourceState = "skipped"
	// StateCached indicates a valid previous output was reused without compiling.
	StateCached ResourceState = "cached"
)

// IsTerminal reports whether no further transitions happen in this session.
func (s ResourceState) IsTerminal() bool {
	switch s {
	case StateDone, StateFailed, StateSkipped, StateCached:
		return true
	default:
		return false
	}
}

// IsSuccessful reports whether the resource has a valid output.
func (s ResourceState) IsSuccessful() bool {
	return s == StateDone || s == StateCached
}
