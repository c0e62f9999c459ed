package cas

import (
	"path/filepath"

	"go.trai.ch/kiln/internal/core/ports"
)

// Directories below the data root.
const (
	StateDir   = "state"
	ObjectsDir = "objects"
)

// Open opens the JSON build state store and the object store of a data directory.
func Open(data ports.DataFS) (*Store, *ObjectStore, error) {
	store, err := NewStore(filepath.Join(data.Root(), StateDir))
	if err != nil {
		return nil, nil, err
	}
	return store, NewObjectStore(data, ObjectsDir), nil
}
