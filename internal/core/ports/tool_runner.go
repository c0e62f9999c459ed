package ports

import "context"

// ToolRunner runs external toolchain executables.
//
//go:generate go run go.uber.org/mock/mockgen -source=tool_runner.go -destination=mocks/mock_tool_runner.go -package=mocks
type ToolRunner interface {
	// Run executes exe with args in dir. A non-zero exit is an error.
	Run(ctx context.Context, dir, exe string, args []string) error
	// Find returns the first candidate that exists and is executable. Bare names are
	// looked up on PATH.
	Find(candidates ...string) (string, bool)
}
