// Package compilers provides the built-in compilers a project can bind resource types to.
package compilers

import (
	"maps"
	"slices"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.CompilerRegistry = (*Registry)(nil)

// Registry maps resource types to compilers.
type Registry struct {
	compilers map[string]ports.Compiler
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{compilers: make(map[string]ports.Compiler)}
}

// FromProject builds the registry described by a project's compiler bindings.
func FromProject(project *domain.Project, runner ports.ToolRunner) (*Registry, error) {
	r := NewRegistry()
	for _, typ := range slices.Sorted(maps.Keys(project.Compilers)) {
		binding := project.Compilers[typ]
		switch binding.Kind {
		case domain.CompilerKindRaw, "":
			r.Register(typ, NewRaw(binding.Version))
		case domain.CompilerKindPackage:
			r.Register(typ, NewPackage(binding.Version))
		case domain.CompilerKindTool:
			tool, ok := project.Tools[binding.Tool]
			if !ok {
				err := zerr.With(zerr.New("compiler references unknown tool"), "type", typ)
				return nil, zerr.With(err, "tool", binding.Tool)
			}
			r.Register(typ, NewTool(binding.Tool, tool, runner, binding.Version))
		default:
			return nil, zerr.With(zerr.With(zerr.New("unknown compiler kind"), "type", typ), "kind", binding.Kind)
		}
	}
	return r, nil
}

// Register binds typ to c, replacing any previous binding.
func (r *Registry) Register(typ string, c ports.Compiler) {
	r.compilers[typ] = c
}

// Lookup returns the compiler bound to typ.
func (r *Registry) Lookup(typ string) (ports.Compiler, bool) {
	c, ok := r.compilers[typ]
	return c, ok
}

// Types returns the registered types, sorted.
func (r *Registry) Types() []string {
	return slices.Sorted(maps.Keys(r.compilers))
}

// version combines a built-in format version with the version from the manifest
// binding. The high byte is the built-in version.
func version(builtin uint8, binding uint32) uint32 {
	return uint32(builtin)<<24 | binding&0x00ffffff
}
