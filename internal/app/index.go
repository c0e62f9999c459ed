package app

import (
	"slices"

	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/engine/scheduler"
)

// dependencyIndex remembers, per platform, which source paths each resource read in
// its latest compile.
type dependencyIndex struct {
	graphs map[string]*domain.BuildGraph
}

func newDependencyIndex() *dependencyIndex {
	return &dependencyIndex{graphs: make(map[string]*domain.BuildGraph)}
}

func (x *dependencyIndex) record(reports []*scheduler.Report) {
	for _, report := range reports {
		if report == nil {
			continue
		}
		g, ok := x.graphs[report.Platform]
		if !ok {
			g = domain.NewBuildGraph()
			x.graphs[report.Platform] = g
		}
		for id, res := range report.Results {
			// Skipped resources never ran; keep what an earlier compile recorded.
			if res.State == domain.StateSkipped {
				continue
			}
			g.Replace(id, res.Dependencies, nil)
		}
	}
}

// affected returns the resources to rebuild after the given logical paths changed:
// every resource that read one of them, and every listed resource whose own source
// is one of them.
func (x *dependencyIndex) affected(p *domain.Project, changed []string) []domain.ResourceID {
	var out []domain.ResourceID
	add := func(id domain.ResourceID) {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	for _, path := range changed {
		for _, g := range x.graphs {
			for _, id := range g.Dependents(path) {
				add(id)
			}
		}
		for _, id := range p.Targets() {
			if id.SourcePath() == path {
				add(id)
			}
		}
	}
	slices.SortFunc(out, domain.ResourceID.Compare)
	return out
}
