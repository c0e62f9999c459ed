package ports

import "go.trai.ch/kiln/internal/core/domain"

// BuildStateStore persists the BuildInfo of successfully compiled resources.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type BuildStateStore interface {
	// Get retrieves the build info of a resource for a platform.
	// Returns nil, nil if not found.
	Get(platform string, id domain.ResourceID) (*domain.BuildInfo, error)

	// Put stores the build info, replacing any previous record.
	Put(info domain.BuildInfo) error

	// Delete removes the build info of a resource. Deleting a missing record is not an error.
	Delete(platform string, id domain.ResourceID) error

	// List returns every record for a platform.
	List(platform string) ([]domain.BuildInfo, error)

	// Close releases the store.
	Close() error
}

// ObjectStore holds compiled resource outputs keyed by platform and ResourceID stem.
type ObjectStore interface {
	Put(platform string, id domain.ResourceID, data []byte) error
	Get(platform string, id domain.ResourceID) ([]byte, error)
	Exists(platform string, id domain.ResourceID) bool
	// Path returns the canonical location of a resource's output.
	Path(platform string, id domain.ResourceID) string
}
