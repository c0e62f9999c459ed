// Package domain contains the core domain models of the resource compilation pipeline.
package domain

import (
	"slices"
	"strings"
	"sync"

	"go.trai.ch/zerr"
)

// BuildGraph holds the dependency and requirement edges of one build session.
// It is shared by every compile job of the session; each mutation takes the lock
// for the duration of the append only.
type BuildGraph struct {
	mu           sync.RWMutex
	nodes        map[ResourceID]struct{}
	declared     map[ResourceID][]ResourceID
	requirements map[ResourceID][]ResourceID
	dependencies map[ResourceID]map[InternedString]struct{}
	stems        map[string]ResourceID
}

// Cycle is a strongly connected set of resources in the requirement graph.
type Cycle struct {
	// Members is every resource on the cycle, sorted.
	Members []ResourceID
	// Path is one traversal of the cycle, e.g. "a.package -> b.package -> a.package".
	Path string
}

// Err returns the cycle as a CycleDetected error.
func (c Cycle) Err() error {
	return zerr.With(zerr.Wrap(ErrCycleDetected, "requirement cycle "+c.Path), "cycle", c.Path)
}

// Contains reports whether id is a member of the cycle.
func (c Cycle) Contains(id ResourceID) bool {
	_, found := slices.BinarySearchFunc(c.Members, id, ResourceID.Compare)
	return found
}

// NewBuildGraph creates an empty BuildGraph.
func NewBuildGraph() *BuildGraph {
	return &BuildGraph{
		nodes:        make(map[ResourceID]struct{}),
		declared:     make(map[ResourceID][]ResourceID),
		requirements: make(map[ResourceID][]ResourceID),
		dependencies: make(map[ResourceID]map[InternedString]struct{}),
		stems:        make(map[string]ResourceID),
	}
}

// Declare adds a resource with requirements known before it is compiled.
func (g *BuildGraph) Declare(id ResourceID, requires ...ResourceID) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.nodes[id] = struct{}{}
	for _, req := range requires {
		g.nodes[req] = struct{}{}
		if !slices.Contains(g.declared[id], req) {
			g.declared[id] = append(g.declared[id], req)
		}
	}
}

// Reset discards every edge recorded by a previous compile of id.
// Declared requirements are kept.
func (g *BuildGraph) Reset(id ResourceID) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.nodes[id] = struct{}{}
	delete(g.requirements, id)
	delete(g.dependencies, id)
}

// Replace sets the recorded edges of id, discarding previous ones.
func (g *BuildGraph) Replace(id ResourceID, dependencies []string, requirements []ResourceID) {
	g.Reset(id)
	for _, dep := range dependencies {
		g.AddDependency(id, dep)
	}
	for _, req := range requirements {
		g.AddRequirement(id, req)
	}
}

// AddDependency records that id's output depends on the content of a logical source path.
func (g *BuildGraph) AddDependency(id ResourceID, logical string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	deps, ok := g.dependencies[id]
	if !ok {
		deps = make(map[InternedString]struct{})
		g.dependencies[id] = deps
	}
	deps[NewInternedString(logical)] = struct{}{}
}

// AddRequirement records that from requires to to be compiled in the same session.
func (g *BuildGraph) AddRequirement(from, to ResourceID) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.nodes[from] = struct{}{}
	g.nodes[to] = struct{}{}
	if !slices.Contains(g.requirements[from], to) {
		g.requirements[from] = append(g.requirements[from], to)
	}
}

// Dependencies returns the sorted dependency path set of id.
func (g *BuildGraph) Dependencies(id ResourceID) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]string, 0, len(g.dependencies[id]))
	for dep := range g.dependencies[id] {
		out = append(out, dep.String())
	}
	slices.Sort(out)
	return out
}

// Requirements returns the sorted union of declared and recorded requirements of id.
func (g *BuildGraph) Requirements(id ResourceID) []ResourceID {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.requirementsLocked(id)
}

func (g *BuildGraph) requirementsLocked(id ResourceID) []ResourceID {
	out := slices.Clone(g.declared[id])
	for _, req := range g.requirements[id] {
		if !slices.Contains(out, req) {
			out = append(out, req)
		}
	}
	slices.SortFunc(out, ResourceID.Compare)
	return out
}

// Dependents returns the resources whose dependency set contains logical.
func (g *BuildGraph) Dependents(logical string) []ResourceID {
	g.mu.RLock()
	defer g.mu.RUnlock()

	key := NewInternedString(logical)
	var out []ResourceID
	for id, deps := range g.dependencies {
		if _, ok := deps[key]; ok {
			out = append(out, id)
		}
	}
	slices.SortFunc(out, ResourceID.Compare)
	return out
}

// Nodes returns every resource known to the graph, sorted.
func (g *BuildGraph) Nodes() []ResourceID {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.nodesLocked()
}

func (g *BuildGraph) nodesLocked() []ResourceID {
	out := make([]ResourceID, 0, len(g.nodes))
	for id := range g.nodes {
		out = append(out, id)
	}
	slices.SortFunc(out, ResourceID.Compare)
	return out
}

// Claim reserves id's output stem. It fails if a different resource already holds the stem.
func (g *BuildGraph) Claim(id ResourceID) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	stem := id.Stem()
	if owner, ok := g.stems[stem]; ok && owner != id {
		err := zerr.With(zerr.Wrap(ErrResourceIDCollision, "output stem already claimed"), "resource", id.String())
		return zerr.With(err, "owner", owner.String())
	}
	g.stems[stem] = id
	return nil
}

// FindCycles returns every cycle in the requirement graph.
// The traversal is an iterative three-colour DFS; each back edge found is
// expanded to its strongly connected component so that every member is named.
func (g *BuildGraph) FindCycles() []Cycle {
	g.mu.RLock()
	defer g.mu.RUnlock()

	const (
		white = iota
		grey
		black
	)

	color := make(map[ResourceID]int, len(g.nodes))
	seen := make(map[string]struct{})
	var cycles []Cycle

	for _, start := range g.nodesLocked() {
		if color[start] != white {
			continue
		}
		color[start] = grey
		stack := []dfsFrame{{id: start, reqs: g.requirementsLocked(start)}}

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.next == len(top.reqs) {
				color[top.id] = black
				stack = stack[:len(stack)-1]
				continue
			}
			next := top.reqs[top.next]
			top.next++

			switch color[next] {
			case white:
				color[next] = grey
				stack = append(stack, dfsFrame{id: next, reqs: g.requirementsLocked(next)})
			case grey:
				members := g.componentLocked(next)
				key := joinIDs(members, ",")
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
				cycles = append(cycles, Cycle{Members: members, Path: cyclePath(stack, next)})
			}
		}
	}

	return cycles
}

// componentLocked returns the strongly connected component containing id:
// the nodes reachable from id that can also reach id.
func (g *BuildGraph) componentLocked(id ResourceID) []ResourceID {
	forward := g.reachLocked(id, func(n ResourceID) []ResourceID { return g.requirementsLocked(n) })
	reverse := make(map[ResourceID][]ResourceID)
	for n := range g.nodes {
		for _, req := range g.requirementsLocked(n) {
			reverse[req] = append(reverse[req], n)
		}
	}
	backward := g.reachLocked(id, func(n ResourceID) []ResourceID { return reverse[n] })

	var members []ResourceID
	for n := range forward {
		if _, ok := backward[n]; ok {
			members = append(members, n)
		}
	}
	slices.SortFunc(members, ResourceID.Compare)
	return members
}

func (g *BuildGraph) reachLocked(from ResourceID, edges func(ResourceID) []ResourceID) map[ResourceID]struct{} {
	visited := map[ResourceID]struct{}{from: {}}
	queue := []ResourceID{from}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for _, m := range edges(n) {
			if _, ok := visited[m]; !ok {
				visited[m] = struct{}{}
				queue = append(queue, m)
			}
		}
	}
	return visited
}

type dfsFrame struct {
	id   ResourceID
	reqs []ResourceID
	next int
}

// cyclePath renders the stack segment starting at closing, e.g. "a -> b -> a".
func cyclePath(stack []dfsFrame, closing ResourceID) string {
	start := 0
	for i, f := range stack {
		if f.id == closing {
			start = i
			break
		}
	}
	var b strings.Builder
	for _, f := range stack[start:] {
		b.WriteString(f.id.String())
		b.WriteString(" -> ")
	}
	b.WriteString(closing.String())
	return b.String()
}

func joinIDs(ids []ResourceID, sep string) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	return strings.Join(parts, sep)
}
