// Package graph wraps gonum's directed graph with string node ids and
// deterministic, insertion-ordered traversal helpers for the layout engine.
package graph

import (
	"sort"

	"gonum.org/v1/gonum/graph/simple"
)

// Diagram is a directed graph keyed by node id. Node ids map to gonum's
// int64 ids in insertion order, which keeps every traversal deterministic
// for a given input order.
type Diagram struct {
	graph  *simple.DirectedGraph
	ids    map[string]int64 // node id -> gonum id
	byID   map[int64]string // gonum id -> node id
	order  []string         // node ids in insertion order
	nextID int64
}

// New creates an empty diagram graph.
func New() *Diagram {
	return &Diagram{
		graph: simple.NewDirectedGraph(),
		ids:   make(map[string]int64),
		byID:  make(map[int64]string),
	}
}

// AddNode registers a node id. Adding an existing id is a no-op.
func (d *Diagram) AddNode(id string) {
	if _, exists := d.ids[id]; exists {
		return
	}
	d.ids[id] = d.nextID
	d.byID[d.nextID] = id
	d.order = append(d.order, id)
	d.graph.AddNode(simple.Node(d.nextID))
	d.nextID++
}

// AddEdge adds a directed edge. Both endpoints are created if missing.
// Duplicate edges and self-loops are ignored (gonum rejects self-loops).
func (d *Diagram) AddEdge(source, target string) {
	d.AddNode(source)
	d.AddNode(target)
	if source == target {
		return
	}
	from, to := d.ids[source], d.ids[target]
	if !d.graph.HasEdgeFromTo(from, to) {
		d.graph.SetEdge(d.graph.NewEdge(d.graph.Node(from), d.graph.Node(to)))
	}
}

// Has reports whether the node id is in the graph.
func (d *Diagram) Has(id string) bool {
	_, ok := d.ids[id]
	return ok
}

// Len returns the number of nodes.
func (d *Diagram) Len() int {
	return len(d.order)
}

// Nodes returns all node ids in insertion order.
func (d *Diagram) Nodes() []string {
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}

// Successors returns the targets of edges out of id, in insertion order.
func (d *Diagram) Successors(id string) []string {
	return d.neighbors(id, true)
}

// Predecessors returns the sources of edges into id, in insertion order.
func (d *Diagram) Predecessors(id string) []string {
	return d.neighbors(id, false)
}

func (d *Diagram) neighbors(id string, outgoing bool) []string {
	gid, ok := d.ids[id]
	if !ok {
		return nil
	}
	var out []string
	iter := d.graph.To(gid)
	if outgoing {
		iter = d.graph.From(gid)
	}
	for iter.Next() {
		out = append(out, d.byID[iter.Node().ID()])
	}
	// gonum iterates in internal map order; sort back to insertion order.
	sort.Slice(out, func(i, j int) bool {
		return d.ids[out[i]] < d.ids[out[j]]
	})
	return out
}

// Roots returns all nodes with no incoming edges, in insertion order.
// Isolated nodes count as roots.
func (d *Diagram) Roots() []string {
	var roots []string
	for _, id := range d.order {
		if len(d.Predecessors(id)) == 0 {
			roots = append(roots, id)
		}
	}
	return roots
}

// Distances computes BFS hop counts from the start node, following edges in
// both directions. Unreachable nodes are absent from the result.
func (d *Diagram) Distances(start string) map[string]int {
	if !d.Has(start) {
		return nil
	}
	dist := map[string]int{start: 0}
	queue := []string{start}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		next := append(d.Successors(id), d.Predecessors(id)...)
		for _, n := range next {
			if _, seen := dist[n]; !seen {
				dist[n] = dist[id] + 1
				queue = append(queue, n)
			}
		}
	}
	return dist
}
