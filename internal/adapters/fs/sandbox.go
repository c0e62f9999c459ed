package fs

import (
	"errors"
	iofs "io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.SourceFS = (*SourceTree)(nil)

// Resolve maps a logical path onto the first mount whose prefix matches it.
// It performs no I/O. Absolute paths, paths escaping via "..", and paths no mount
// claims are sandbox violations.
func Resolve(logical string, mounts []domain.Mount) (domain.Mount, string, error) {
	if logical == "" {
		return domain.Mount{}, "", violation("empty path", logical)
	}
	if path.IsAbs(logical) || filepath.IsAbs(logical) || filepath.VolumeName(logical) != "" {
		return domain.Mount{}, "", violation("absolute path", logical)
	}

	clean := path.Clean(filepath.ToSlash(logical))
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return domain.Mount{}, "", violation("path escapes source roots", logical)
	}

	for _, m := range mounts {
		rest, ok := m.Match(clean)
		if !ok {
			continue
		}
		abs := filepath.Join(m.Root, filepath.FromSlash(rest))
		if !within(m.Root, abs) {
			return domain.Mount{}, "", violation("path escapes mount root", logical)
		}
		return m, abs, nil
	}

	return domain.Mount{}, "", violation("no mount matches path", logical)
}

func violation(msg, logical string) error {
	return zerr.With(zerr.Wrap(domain.ErrSandboxViolation, msg), "path", logical)
}

// within reports whether p is root or lies below it.
func within(root, p string) bool {
	rel, err := filepath.Rel(root, p)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}

// SourceTree is a SourceFS over an ordered list of mounted source roots.
type SourceTree struct {
	mounts []domain.Mount
}

// NewSourceTree creates a SourceTree. Mount roots are made absolute and have their
// symlinks resolved so containment checks compare like with like.
func NewSourceTree(mounts []domain.Mount) (*SourceTree, error) {
	if len(mounts) == 0 {
		return nil, domain.ErrNoMounts
	}

	resolved := make([]domain.Mount, len(mounts))
	for i, m := range mounts {
		root, err := filepath.Abs(m.Root)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to resolve mount root"), "root", m.Root)
		}
		if target, err := filepath.EvalSymlinks(root); err == nil {
			root = target
		}
		resolved[i] = domain.Mount{Prefix: strings.Trim(m.Prefix, "/"), Root: root}
	}

	return &SourceTree{mounts: resolved}, nil
}

// Mounts returns the mounts in precedence order.
func (t *SourceTree) Mounts() []domain.Mount {
	return t.mounts
}

// Resolve returns the absolute path of logical. The path need not exist, but a
// symlink along it must not lead outside the mount root.
func (t *SourceTree) Resolve(logical string) (string, error) {
	m, abs, err := Resolve(logical, t.mounts)
	if err != nil {
		return "", err
	}
	if !within(m.Root, realPath(abs)) {
		return "", violation("symlink escapes mount root", logical)
	}
	return abs, nil
}

// ReadFile reads a logical path. Symlinks are followed, but their target must stay
// inside the mount root.
func (t *SourceTree) ReadFile(logical string) ([]byte, error) {
	target, err := t.open(logical)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(target) //nolint:gosec // path is confined to a mount root
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrSourceReadFailure, err.Error()), "path", logical)
	}
	return data, nil
}

// Exists reports whether logical names a regular file inside its mount.
func (t *SourceTree) Exists(logical string) bool {
	target, err := t.open(logical)
	if err != nil {
		return false
	}
	info, err := os.Stat(target)
	return err == nil && info.Mode().IsRegular()
}

// Logical maps an absolute path back to a logical path. It fails when the file is
// shadowed by an earlier mount.
func (t *SourceTree) Logical(abs string) (string, bool) {
	for _, m := range t.mounts {
		if !within(m.Root, abs) {
			continue
		}
		rel, err := filepath.Rel(m.Root, abs)
		if err != nil || rel == "." {
			continue
		}
		logical := filepath.ToSlash(rel)
		if m.Prefix != "" {
			logical = m.Prefix + "/" + logical
		}
		if _, resolved, err := Resolve(logical, t.mounts); err == nil && resolved == filepath.Clean(abs) {
			return logical, true
		}
	}
	return "", false
}

func (t *SourceTree) open(logical string) (string, error) {
	m, abs, err := Resolve(logical, t.mounts)
	if err != nil {
		return "", err
	}

	target, err := filepath.EvalSymlinks(abs)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return "", zerr.With(zerr.Wrap(domain.ErrSourceReadFailure, "file not found"), "path", logical)
		}
		return "", zerr.With(zerr.Wrap(domain.ErrSourceReadFailure, err.Error()), "path", logical)
	}
	if !within(m.Root, target) {
		return "", violation("symlink escapes mount root", logical)
	}
	return target, nil
}

// realPath evaluates the symlinks of the longest existing prefix of abs and appends
// the rest unchanged.
func realPath(abs string) string {
	rest := ""
	for p := abs; ; p = filepath.Dir(p) {
		if target, err := filepath.EvalSymlinks(p); err == nil {
			return filepath.Join(target, rest)
		}
		if parent := filepath.Dir(p); parent == p {
			return abs
		}
		rest = filepath.Join(filepath.Base(p), rest)
	}
}
