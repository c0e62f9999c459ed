package fs

import (
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.DataFS = (*DataDir)(nil)

// DataDir is the writable data directory of a project: compiled objects, build state,
// the persistent cache and session temp roots all live below it.
type DataDir struct {
	root string
}

// NewDataDir creates the directory if needed and returns a DataDir rooted at it.
func NewDataDir(root string) (*DataDir, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to resolve data directory"), "path", root)
	}
	if err := os.MkdirAll(abs, 0o750); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to create data directory"), "path", abs)
	}
	if target, err := filepath.EvalSymlinks(abs); err == nil {
		abs = target
	}
	return &DataDir{root: abs}, nil
}

// Root returns the absolute data directory.
func (d *DataDir) Root() string {
	return d.root
}

// Abs resolves p against the root and rejects paths outside it.
func (d *DataDir) Abs(p string) (string, error) {
	if !filepath.IsAbs(p) {
		p = filepath.Join(d.root, p)
	}
	p = filepath.Clean(p)
	if !within(d.root, p) {
		return "", zerr.With(zerr.Wrap(domain.ErrSandboxViolation, "path outside data directory"), "path", p)
	}
	return p, nil
}

// ReadFile reads a file below the root.
func (d *DataDir) ReadFile(p string) ([]byte, error) {
	abs, err := d.Abs(p)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(abs) //nolint:gosec // path is confined to the data directory
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read data file"), "path", abs)
	}
	return data, nil
}

// Exists reports whether p is an existing regular file below the root.
func (d *DataDir) Exists(p string) bool {
	abs, err := d.Abs(p)
	if err != nil {
		return false
	}
	info, err := os.Stat(abs)
	return err == nil && info.Mode().IsRegular()
}

// WriteFile writes a file below the root, creating parent directories.
func (d *DataDir) WriteFile(p string, data []byte) error {
	abs, err := d.Abs(p)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o750); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create directory"), "path", filepath.Dir(abs))
	}
	//nolint:gosec // compiled artifacts are meant to be readable
	if err := os.WriteFile(abs, data, 0o644); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write data file"), "path", abs)
	}
	return nil
}

// DeleteFile removes a single file. It never fails hard: a missing file reports
// DeleteNoEntry and any other problem DeleteFailure.
func (d *DataDir) DeleteFile(p string) domain.DeleteResult {
	abs, err := d.Abs(p)
	if err != nil {
		return domain.DeleteFailure
	}
	info, err := os.Lstat(abs)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return domain.DeleteNoEntry
		}
		return domain.DeleteFailure
	}
	if info.IsDir() {
		return domain.DeleteFailure
	}
	if err := os.Remove(abs); err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return domain.DeleteNoEntry
		}
		return domain.DeleteFailure
	}
	return domain.DeleteSuccess
}

// Rename moves a file within the root, creating the destination directory.
func (d *DataDir) Rename(from, to string) error {
	src, err := d.Abs(from)
	if err != nil {
		return err
	}
	dst, err := d.Abs(to)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o750); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create directory"), "path", filepath.Dir(dst))
	}
	if err := os.Rename(src, dst); err != nil {
		return zerr.With(zerr.With(zerr.Wrap(err, "failed to rename"), "from", src), "to", dst)
	}
	return nil
}

// MkdirAll creates a directory below the root.
func (d *DataDir) MkdirAll(p string) error {
	abs, err := d.Abs(p)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(abs, 0o750); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create directory"), "path", abs)
	}
	return nil
}

// RemoveAll removes p and everything below it. The root itself is kept.
func (d *DataDir) RemoveAll(p string) error {
	abs, err := d.Abs(p)
	if err != nil {
		return err
	}
	if abs == d.root {
		entries, err := os.ReadDir(abs)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to list data directory"), "path", abs)
		}
		for _, e := range entries {
			if err := os.RemoveAll(filepath.Join(abs, e.Name())); err != nil {
				return zerr.With(zerr.Wrap(err, "failed to remove"), "path", e.Name())
			}
		}
		return nil
	}
	if err := os.RemoveAll(abs); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to remove"), "path", abs)
	}
	return nil
}
