package tui

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/kiln/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in ui layer
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
)

// NodeID is the unique identifier for the progress view Graft node.
const NodeID graft.ID = "ui.progress"

func init() {
	graft.Register(graft.Node[*Progress]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{progrock.NodeID},
		Run: func(ctx context.Context) (*Progress, error) {
			telemetry, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}
			recorder, ok := telemetry.(*progrock.Recorder)
			if !ok {
				return nil, zerr.New("progress view requires the progrock recorder")
			}
			return NewProgress(recorder), nil
		},
	})
}
