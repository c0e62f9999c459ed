package compilers

import (
	"maps"
	"slices"
	"strings"

	"go.trai.ch/kiln/internal/core/ports"
	"gopkg.in/yaml.v3"
)

const packageVersion = 1

// Package compiles a resource list. The source maps resource types to names:
//
//	texture: [diffuse, normal]
//	mesh: [box]
//
// Every entry becomes a requirement of the package; the output is the sorted list of
// "name.type" lines.
type Package struct {
	version uint32
}

// NewPackage creates a Package compiler.
func NewPackage(binding uint32) *Package {
	return &Package{version: version(packageVersion, binding)}
}

// Version implements ports.Compiler.
func (c *Package) Version() uint32 { return c.version }

// Compile implements ports.Compiler.
func (c *Package) Compile(cc ports.CompileContext) error {
	data, err := cc.ReadSource()
	if err != nil {
		return err
	}

	var entries map[string][]string
	if err := yaml.Unmarshal(data, &entries); err != nil {
		cc.Error("invalid package %s: %v", cc.SourcePath(), err)
		return nil
	}

	var lines []string
	for _, typ := range slices.Sorted(maps.Keys(entries)) {
		for _, name := range entries[typ] {
			if name == "" {
				cc.Error("empty %s name in package %s", typ, cc.SourcePath())
				continue
			}
			cc.AddRequirement(typ, name)
			lines = append(lines, name+"."+typ)
		}
	}
	slices.Sort(lines)
	lines = slices.Compact(lines)

	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	_, err = cc.Write([]byte(b.String()))
	return err
}
