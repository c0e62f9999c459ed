package fs

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"os"
	"runtime"
	"slices"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

var _ ports.Fingerprinter = (*Hasher)(nil)

// Hasher computes resource fingerprints from dependency file contents.
type Hasher struct {
	// files deduplicates concurrent hashing of a file shared by several jobs.
	files singleflight.Group
}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

type fileDigest struct {
	present bool
	sum     uint64
}

// ComputeFileHash computes the XXHash of a file's content.
func (h *Hasher) ComputeFileHash(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}

	return hasher.Sum64(), nil
}

// Fingerprint hashes the compiler version, the platform and every dependency's content.
// Dependencies are hashed concurrently and folded in sorted order.
func (h *Hasher) Fingerprint(
	ctx context.Context,
	sources ports.SourceFS,
	platform string,
	version uint32,
	deps []string,
) (string, error) {
	sorted := slices.Clone(deps)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	digests := make([]fileDigest, len(sorted))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, dep := range sorted {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			d, err := h.digest(sources, dep)
			if err != nil {
				return err
			}
			digests[i] = d
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", zerr.Wrap(err, "failed to fingerprint dependencies")
	}

	hasher := xxhash.New()
	if err := binary.Write(hasher, binary.LittleEndian, version); err != nil {
		return "", zerr.Wrap(err, "failed to write version to digest")
	}
	_, _ = hasher.WriteString(platform)
	_, _ = hasher.Write([]byte{0})

	for i, dep := range sorted {
		_, _ = hasher.WriteString(dep)
		_, _ = hasher.Write([]byte{0})
		if !digests[i].present {
			_, _ = hasher.Write([]byte{0})
			continue
		}
		_, _ = hasher.Write([]byte{1})
		if err := binary.Write(hasher, binary.LittleEndian, digests[i].sum); err != nil {
			return "", zerr.Wrap(err, "failed to write hash to digest")
		}
	}

	return fmt.Sprintf("%016x", hasher.Sum64()), nil
}

func (h *Hasher) digest(sources ports.SourceFS, logical string) (fileDigest, error) {
	abs, err := sources.Resolve(logical)
	if err != nil || !sources.Exists(logical) {
		return fileDigest{}, nil
	}

	v, err, _ := h.files.Do(abs, func() (any, error) {
		sum, err := h.ComputeFileHash(abs)
		if err != nil {
			if errors.Is(err, iofs.ErrNotExist) {
				return fileDigest{}, nil
			}
			return nil, err
		}
		return fileDigest{present: true, sum: sum}, nil
	})
	if err != nil {
		return fileDigest{}, err
	}
	return v.(fileDigest), nil //nolint:forcetypeassert // the group only stores fileDigest
}
