package ports

import (
	"io"

	"go.trai.ch/kiln/internal/core/domain"
)

// GraphExporter renders the requirement graph of a session.
//
//go:generate go run go.uber.org/mock/mockgen -source=graph_exporter.go -destination=mocks/mock_graph_exporter.go -package=mocks
type GraphExporter interface {
	Export(w io.Writer, g *domain.BuildGraph) error
}
