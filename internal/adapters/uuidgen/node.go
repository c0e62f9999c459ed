package uuidgen

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/kiln/internal/core/ports"
)

const NodeID graft.ID = "adapter.id_generator"

func init() {
	graft.Register(graft.Node[ports.IDGenerator]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.IDGenerator, error) {
			return New(), nil
		},
	})
}
