package model

import (
	"fmt"
	"strings"

	"github.com/vatne/archmap/pkg/graph"
)

// Validate checks the topology's structural invariants. The topology is
// static configuration, so any failure here is a broken definition that
// should stop startup, not a runtime condition to recover from.
//
// Checked, in order:
//   - node ids are unique and non-empty
//   - every node's category is registered
//   - edge ids are unique, endpoints reference existing nodes
//   - description keys reference existing nodes
//   - the edge set is acyclic (the layered layout requires a DAG)
func (t *Topology) Validate() error {
	seen := make(map[string]bool, len(t.Nodes))
	for _, n := range t.Nodes {
		if n.ID == "" {
			return fmt.Errorf("node %q has empty id", n.Label)
		}
		if seen[n.ID] {
			return fmt.Errorf("duplicate node id %q", n.ID)
		}
		seen[n.ID] = true
		if !n.Category.Valid() {
			return fmt.Errorf("node %q has unregistered category %q", n.ID, n.Category)
		}
	}

	edgeIDs := make(map[string]bool, len(t.Edges))
	for _, e := range t.Edges {
		if e.ID == "" {
			return fmt.Errorf("edge %s->%s has empty id", e.Source, e.Target)
		}
		if edgeIDs[e.ID] {
			return fmt.Errorf("duplicate edge id %q", e.ID)
		}
		edgeIDs[e.ID] = true
		if !seen[e.Source] {
			return fmt.Errorf("edge %q references unknown source node %q", e.ID, e.Source)
		}
		if !seen[e.Target] {
			return fmt.Errorf("edge %q references unknown target node %q", e.ID, e.Target)
		}
		if e.Source == e.Target {
			return fmt.Errorf("edge %q is a self-loop on node %q", e.ID, e.Source)
		}
	}

	for id := range t.Descriptions {
		if !seen[id] {
			return fmt.Errorf("description references unknown node %q", id)
		}
	}

	if cycles := t.Graph().Cycles(); len(cycles) > 0 {
		return fmt.Errorf("topology contains a cycle: %s", strings.Join(cycles[0], " -> "))
	}

	return nil
}

// Graph builds the directed diagram graph for the topology. Nodes are added
// in declaration order so downstream traversal is deterministic.
func (t *Topology) Graph() *graph.Diagram {
	d := graph.New()
	for _, n := range t.Nodes {
		d.AddNode(n.ID)
	}
	for _, e := range t.Edges {
		d.AddEdge(e.Source, e.Target)
	}
	return d
}
