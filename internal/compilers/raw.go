package compilers

import "go.trai.ch/kiln/internal/core/ports"

const rawVersion = 1

// Raw copies a resource's source to its output unchanged.
type Raw struct {
	version uint32
}

// NewRaw creates a Raw compiler.
func NewRaw(binding uint32) *Raw {
	return &Raw{version: version(rawVersion, binding)}
}

// Version implements ports.Compiler.
func (c *Raw) Version() uint32 { return c.version }

// Compile implements ports.Compiler.
func (c *Raw) Compile(cc ports.CompileContext) error {
	data, err := cc.ReadSource()
	if err != nil {
		return err
	}
	_, err = cc.Write(data)
	return err
}
