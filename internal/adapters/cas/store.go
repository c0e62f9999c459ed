// Package cas implements the build state store and the compiled object store.
package cas

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.BuildStateStore = (*Store)(nil)

// Store implements ports.BuildStateStore with one JSON file per resource:
// <dir>/<platform>/<stem>.json.
type Store struct {
	dir string
	mu  sync.RWMutex
}

// NewStore creates a Store rooted at dir.
func NewStore(dir string) (*Store, error) {
	s := &Store{dir: filepath.Clean(dir)}
	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return nil, zerr.Wrap(err, "failed to create build state directory")
	}
	return s, nil
}

func (s *Store) recordPath(platform string, id domain.ResourceID) string {
	return filepath.Join(s.dir, platform, id.Stem()+".json")
}

// Get retrieves the build info of a resource. Returns nil, nil if not found.
func (s *Store) Get(platform string, id domain.ResourceID) (*domain.BuildInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	path := s.recordPath(platform, id)
	info, err := readRecord(path)
	if err != nil || info == nil {
		return nil, err
	}
	if info.Resource != id {
		// stem collision with a record written by another resource
		return nil, nil
	}
	return info, nil
}

// Put stores the build info.
func (s *Store) Put(info domain.BuildInfo) error {
	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal build info")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.recordPath(info.Platform, info.Resource)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return zerr.Wrap(err, "failed to create directory for build info")
	}

	tmp := path + ".tmp"
	//nolint:gosec // Path is derived from the store root
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write build info"), "resource", info.Resource.String())
	}
	if err := os.Rename(tmp, path); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to commit build info"), "resource", info.Resource.String())
	}
	return nil
}

// Delete removes the build info of a resource.
func (s *Store) Delete(platform string, id domain.ResourceID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.recordPath(platform, id)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return zerr.With(zerr.Wrap(err, "failed to delete build info"), "resource", id.String())
	}
	return nil
}

// List returns every record stored for a platform, sorted by resource.
func (s *Store) List(platform string) ([]domain.BuildInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(filepath.Join(s.dir, platform))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.Wrap(err, "failed to list build state")
	}

	var out []domain.BuildInfo
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		info, err := readRecord(filepath.Join(s.dir, platform, e.Name()))
		if err != nil {
			return nil, err
		}
		if info != nil {
			out = append(out, *info)
		}
	}
	slices.SortFunc(out, func(a, b domain.BuildInfo) int { return a.Resource.Compare(b.Resource) })
	return out, nil
}

// Close is a no-op; every write is already on disk.
func (s *Store) Close() error {
	return nil
}

func readRecord(path string) (*domain.BuildInfo, error) {
	//nolint:gosec // Path is derived from the store root
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read build info"), "path", path)
	}

	var info domain.BuildInfo
	if err := json.Unmarshal(data, &info); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to unmarshal build info"), "path", path)
	}
	return &info, nil
}
