package ports

import "context"

// Fingerprinter computes the cache key of a compiled resource.
//
//go:generate go run go.uber.org/mock/mockgen -source=fingerprint.go -destination=mocks/mock_fingerprint.go -package=mocks
type Fingerprinter interface {
	// Fingerprint hashes the compiler version, the platform and the content of every
	// dependency path. Missing dependencies hash as absent rather than failing.
	Fingerprint(ctx context.Context, sources SourceFS, platform string, version uint32, deps []string) (string, error)
}
