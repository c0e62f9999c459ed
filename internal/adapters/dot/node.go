package dot

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/kiln/internal/core/ports"
)

// NodeID is the unique identifier for the graph exporter Graft node.
const NodeID graft.ID = "adapter.graph_exporter"

func init() {
	graft.Register(graft.Node[ports.GraphExporter]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.GraphExporter, error) {
			return NewExporter(), nil
		},
	})
}
