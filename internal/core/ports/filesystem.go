package ports

import "go.trai.ch/kiln/internal/core/domain"

// SourceFS is the sandboxed, read-only view over a project's mounted source roots.
// Every logical path is resolved against the first mount that matches it.
//
//go:generate go run go.uber.org/mock/mockgen -source=filesystem.go -destination=mocks/mock_filesystem.go -package=mocks
type SourceFS interface {
	// Resolve returns the absolute path of logical, or an ErrSandboxViolation error when
	// the path or a symlink along it escapes its root. The path need not exist.
	Resolve(logical string) (string, error)
	// ReadFile reads a logical path. Failures wrap ErrSandboxViolation or ErrSourceReadFailure.
	ReadFile(logical string) ([]byte, error)
	// Exists reports whether logical resolves to an existing file inside its root.
	Exists(logical string) bool
	// Logical maps an absolute path back to its logical path under the first matching mount.
	Logical(abs string) (string, bool)
	// Mounts returns the mounts in precedence order.
	Mounts() []domain.Mount
}

// DataFS is the project's writable data directory.
// Paths may be absolute or relative to Root; either way they must stay inside Root.
type DataFS interface {
	Root() string
	Abs(p string) (string, error)
	ReadFile(p string) ([]byte, error)
	Exists(p string) bool
	// WriteFile writes data, creating parent directories.
	WriteFile(p string, data []byte) error
	DeleteFile(p string) domain.DeleteResult
	Rename(from, to string) error
	MkdirAll(p string) error
	RemoveAll(p string) error
}
