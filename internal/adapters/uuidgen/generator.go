// Package uuidgen generates unique identifiers for temporary artifacts and sessions.
package uuidgen

import (
	"github.com/google/uuid"
	"go.trai.ch/kiln/internal/core/ports"
)

var _ ports.IDGenerator = (*Generator)(nil)

// Generator produces random (version 4) UUIDs. It is safe for concurrent use.
type Generator struct{}

// New creates a Generator.
func New() *Generator {
	return &Generator{}
}

// NewID returns a fresh UUID string.
func (g *Generator) NewID() string {
	return uuid.New().String()
}
