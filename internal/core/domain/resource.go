package domain

import (
	"cmp"
	"fmt"
	"path"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"
)

// ResourceID identifies a compiled resource by its type and name.
// It is comparable and stable across builds.
type ResourceID struct {
	Type InternedString
	Name InternedString
}

// NewResourceID creates a ResourceID from a resource type and name.
func NewResourceID(typ, name string) ResourceID {
	return ResourceID{
		Type: NewInternedString(typ),
		Name: NewInternedString(name),
	}
}

// ParseResourceID parses "name.type" (for example "models/box.mesh").
// The type is everything after the last dot of the final path element.
func ParseResourceID(s string) (ResourceID, error) {
	base := path.Base(s)
	dot := strings.LastIndexByte(base, '.')
	if s == "" || dot <= 0 || dot == len(base)-1 {
		return ResourceID{}, zerr.With(zerr.Wrap(ErrInvalidResourcePath, "expected name.type"), "resource", s)
	}
	split := len(s) - len(base) + dot
	return NewResourceID(s[split+1:], s[:split]), nil
}

// String returns the resource path, "name.type".
func (id ResourceID) String() string {
	return id.Name.String() + "." + id.Type.String()
}

// SourcePath returns the logical path of the resource's own source file.
func (id ResourceID) SourcePath() string {
	return id.String()
}

// IsZero reports whether the id is unset.
func (id ResourceID) IsZero() bool {
	return id.Type.IsZero() && id.Name.IsZero()
}

// Stem returns the output filename stem derived from the type and name hashes.
func (id ResourceID) Stem() string {
	return fmt.Sprintf("%016x-%016x", xxhash.Sum64String(id.Type.String()), xxhash.Sum64String(id.Name.String()))
}

// Compare orders ids by type, then by name.
func (id ResourceID) Compare(other ResourceID) int {
	if c := cmp.Compare(id.Type.String(), other.Type.String()); c != 0 {
		return c
	}
	return cmp.Compare(id.Name.String(), other.Name.String())
}

// MarshalText implements encoding.TextMarshaler.
func (id ResourceID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ResourceID) UnmarshalText(text []byte) error {
	parsed, err := ParseResourceID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}
