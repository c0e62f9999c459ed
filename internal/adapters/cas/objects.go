package cas

import (
	"path/filepath"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ObjectStore = (*ObjectStore)(nil)

// ObjectStore keeps compiled outputs at <data>/<dir>/<platform>/<stem>.
type ObjectStore struct {
	data ports.DataFS
	dir  string
}

// NewObjectStore creates an ObjectStore below dir (relative to the data root).
func NewObjectStore(data ports.DataFS, dir string) *ObjectStore {
	return &ObjectStore{data: data, dir: dir}
}

// Path returns the canonical output location of a resource.
func (o *ObjectStore) Path(platform string, id domain.ResourceID) string {
	return filepath.Join(o.data.Root(), o.dir, platform, id.Stem())
}

// Put writes a resource's output.
func (o *ObjectStore) Put(platform string, id domain.ResourceID, data []byte) error {
	if err := o.data.WriteFile(o.Path(platform, id), data); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to store object"), "resource", id.String())
	}
	return nil
}

// Get reads a resource's output.
func (o *ObjectStore) Get(platform string, id domain.ResourceID) ([]byte, error) {
	data, err := o.data.ReadFile(o.Path(platform, id))
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to load object"), "resource", id.String())
	}
	return data, nil
}

// Exists reports whether a resource's output is present.
func (o *ObjectStore) Exists(platform string, id domain.ResourceID) bool {
	return o.data.Exists(o.Path(platform, id))
}
