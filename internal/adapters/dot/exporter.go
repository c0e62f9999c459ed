// Package dot renders the requirement graph in Graphviz DOT format.
package dot

import (
	"io"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/zerr"
	"gonum.org/v1/gonum/graph/encoding"
	"gonum.org/v1/gonum/graph/encoding/dot"
	"gonum.org/v1/gonum/graph/simple"
)

var _ ports.GraphExporter = (*Exporter)(nil)

// GraphName is the DOT identifier of the exported graph.
const GraphName = "kiln"

// Exporter implements ports.GraphExporter.
type Exporter struct{}

// NewExporter creates a new Exporter.
func NewExporter() *Exporter {
	return &Exporter{}
}

// resourceNode is a resource in the exported graph. Members of a requirement
// cycle are drawn in red.
type resourceNode struct {
	id       int64
	resource domain.ResourceID
	cyclic   bool
}

func (n resourceNode) ID() int64     { return n.id }
func (n resourceNode) DOTID() string { return n.resource.String() }

func (n resourceNode) Attributes() []encoding.Attribute {
	if !n.cyclic {
		return nil
	}
	return []encoding.Attribute{{Key: "color", Value: "red"}}
}

// Export writes g with one node per resource and one edge per requirement.
// Self-requirements have no edge; the node is marked as cyclic instead.
func (e *Exporter) Export(w io.Writer, g *domain.BuildGraph) error {
	cycles := g.FindCycles()
	onCycle := func(id domain.ResourceID) bool {
		for _, c := range cycles {
			if c.Contains(id) {
				return true
			}
		}
		return false
	}

	dg := simple.NewDirectedGraph()
	nodes := make(map[domain.ResourceID]resourceNode)
	ids := g.Nodes()
	for i, id := range ids {
		n := resourceNode{id: int64(i), resource: id, cyclic: onCycle(id)}
		nodes[id] = n
		dg.AddNode(n)
	}
	for _, id := range ids {
		for _, req := range g.Requirements(id) {
			if req == id {
				continue
			}
			dg.SetEdge(simple.Edge{F: nodes[id], T: nodes[req]})
		}
	}

	out, err := dot.Marshal(dg, GraphName, "", "\t")
	if err != nil {
		return zerr.Wrap(err, "failed to encode graph")
	}
	out = append(out, '\n')
	if _, err := w.Write(out); err != nil {
		return zerr.Wrap(err, "failed to write graph")
	}
	return nil
}
