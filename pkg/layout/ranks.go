package layout

import (
	"fmt"

	"github.com/vatne/archmap/pkg/graph"
)

// assignRanks gives every node its longest-path distance from a root node.
// Roots (no incoming edges) and isolated nodes get rank 0; every other node
// sits one rank below its deepest predecessor, so every edge points from a
// strictly lower rank to a strictly higher one.
//
// The walk is a Kahn-style topological pass over the insertion-ordered
// graph. The caller has already rejected cycles; a node left unprocessed
// here would mean the check was skipped, so it is reported as an error
// rather than silently dropped.
func assignRanks(d *graph.Diagram) (map[string]int, error) {
	ranks := make(map[string]int, d.Len())
	indegree := make(map[string]int, d.Len())

	var queue []string
	for _, id := range d.Nodes() {
		indegree[id] = len(d.Predecessors(id))
		if indegree[id] == 0 {
			ranks[id] = 0
			queue = append(queue, id)
		}
	}

	processed := 0
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		processed++

		for _, succ := range d.Successors(id) {
			if r := ranks[id] + 1; r > ranks[succ] {
				ranks[succ] = r
			}
			indegree[succ]--
			if indegree[succ] == 0 {
				queue = append(queue, succ)
			}
		}
	}

	if processed != d.Len() {
		return nil, fmt.Errorf("rank assignment visited %d of %d nodes, topology is not acyclic", processed, d.Len())
	}

	return ranks, nil
}

// maxRank returns the highest assigned rank, or -1 for an empty layout.
func maxRank(ranks map[string]int) int {
	max := -1
	for _, r := range ranks {
		if r > max {
			max = r
		}
	}
	return max
}
